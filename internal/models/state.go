package models

import (
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
)

// TradingState is the shared record one pipeline run evolves. Each report slot
// is written by exactly one stage and treated as read-only by every stage after
// it; Messages is append-only.
type TradingState struct {
	Messages         []*schema.Message `json:"messages"`
	CryptoOfInterest string            `json:"crypto_of_interest"`
	TradeDate        string            `json:"trade_date"`

	// Analyst reports
	MarketReport       string `json:"crypto_market_report"`
	FundamentalsReport string `json:"crypto_fundamentals_report"`
	NewsReport         string `json:"crypto_news_report"`
	SocialReport       string `json:"crypto_social_report"`

	// Research reports
	ResearchConclusion string `json:"research_conclusion"`
	BullCase           string `json:"bull_case"`
	BearCase           string `json:"bear_case"`

	// Trading decision
	TradeDecision  string `json:"trade_decision"`
	RiskAssessment string `json:"risk_assessment"`
	FinalDecision  string `json:"final_decision"`
}

func NewTradingState(symbol string, date time.Time, userPrompt string) *TradingState {
	return &TradingState{
		Messages: []*schema.Message{
			schema.UserMessage(userPrompt),
		},
		CryptoOfInterest: strings.ToUpper(strings.TrimSpace(symbol)),
		TradeDate:        date.Format("2006-01-02"),
		FinalDecision:    DecisionHold,
	}
}

// AppendMessage records one conversational turn. Earlier turns are never
// removed or reordered.
func (s *TradingState) AppendMessage(msg *schema.Message) {
	if msg == nil {
		return
	}
	s.Messages = append(s.Messages, msg)
}
