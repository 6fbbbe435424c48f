package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cryptoagents/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 2)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B"))

	buyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	sellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))

	holdStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true)
)

func renderWelcomeBanner() string {
	return titleStyle.Render("CryptoAgents") + "\n" +
		"AI-powered multi-agent cryptocurrency trading analysis\n"
}

func renderAnalysisHeader(subject, date string) string {
	return headerStyle.Render(fmt.Sprintf("Analyzing %s for trading on %s", subject, date))
}

func decisionStyle(decision string) lipgloss.Style {
	switch decision {
	case models.DecisionBuy:
		return buyStyle
	case models.DecisionSell:
		return sellStyle
	case models.DecisionError:
		return errorStyle
	}
	return holdStyle
}

// RenderResult renders the decision and a risk assessment excerpt for the
// terminal. The full reports go to the markdown file.
func RenderResult(result *models.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Final Decision: "))
	b.WriteString(decisionStyle(result.FinalDecision).Render(result.FinalDecision))
	b.WriteString("\n\n")

	if result.RiskAssessment != "" {
		b.WriteString(sectionStyle.Render("Risk Assessment:"))
		b.WriteString("\n")
		b.WriteString(excerpt(result.RiskAssessment, 500))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderBatchSummary renders one line per batch entry.
func RenderBatchSummary(results []*models.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Batch Summary"))
	b.WriteString("\n")
	for _, result := range results {
		line := fmt.Sprintf("%-10s %s", result.Crypto,
			decisionStyle(result.FinalDecision).Render(result.FinalDecision))
		if result.Error != "" {
			line += "  " + pathStyle.Render(excerpt(result.Error, 80))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func excerpt(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
