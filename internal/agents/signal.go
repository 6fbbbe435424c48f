package agents

import (
	"strings"

	"cryptoagents/internal/models"
)

// ExtractDecision scans free-form risk assessment text for the explicit
// decision marker. BUY is checked before SELL before HOLD; text without a
// marker defaults to HOLD.
func ExtractDecision(text string) string {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "FINAL DECISION: BUY"):
		return models.DecisionBuy
	case strings.Contains(upper, "FINAL DECISION: SELL"):
		return models.DecisionSell
	case strings.Contains(upper, "FINAL DECISION: HOLD"):
		return models.DecisionHold
	}
	return models.DecisionHold
}
