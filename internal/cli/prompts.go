package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"cryptoagents/config"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// PromptForSymbol asks for a cryptocurrency symbol. An empty answer means the
// user wants to quit.
func PromptForSymbol(cfg *config.Config) (string, error) {
	var symbol string
	prompt := &survey.Input{
		Message: "Enter the cryptocurrency symbol (e.g., BTC, ETH, SOL), or leave empty to quit:",
		Help:    "Supported symbols: " + strings.Join(cfg.SupportedCryptos, ", "),
	}

	err := survey.AskOne(prompt, &symbol, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(strings.ToUpper(val.(string)))
		if str == "" {
			return nil
		}
		if len(str) > 10 {
			return fmt.Errorf("symbol too long (max 10 characters)")
		}
		if !symbolPattern.MatchString(str) {
			return fmt.Errorf("invalid symbol format (use letters, numbers, dots, and hyphens only)")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.ToUpper(symbol)), nil
}

// PromptForDate asks for the analysis date, defaulting to today.
func PromptForDate() (string, error) {
	var dateStr string
	prompt := &survey.Input{
		Message: "Enter the analysis date (YYYY-MM-DD):",
		Help:    "Format: YYYY-MM-DD (e.g., 2024-12-11). Leave the default for today.",
		Default: time.Now().Format("2006-01-02"),
	}

	err := survey.AskOne(prompt, &dateStr, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if str == "" {
			return nil
		}
		if _, err := time.Parse("2006-01-02", str); err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		dateStr = time.Now().Format("2006-01-02")
	}
	return dateStr, nil
}

// PromptForAnother asks whether to run another analysis.
func PromptForAnother() (bool, error) {
	var again bool
	prompt := &survey.Confirm{
		Message: "Analyze another cryptocurrency?",
		Default: true,
	}
	if err := survey.AskOne(prompt, &again); err != nil {
		return false, err
	}
	return again, nil
}
