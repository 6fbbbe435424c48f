package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cryptoagents/internal/models"
)

// WriteReport renders one analysis result as a markdown file under dir and
// returns the file path. Files are named <SYMBOL>_<date>.md.
func WriteReport(dir string, result *models.AnalysisResult) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.md", result.Crypto, result.Date))
	if err := os.WriteFile(path, []byte(renderMarkdown(result)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func renderMarkdown(result *models.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Trading Analysis - %s\n\n", result.Crypto, result.Date)
	fmt.Fprintf(&b, "**Final Decision: %s**\n\n", result.FinalDecision)

	sections := []struct {
		title   string
		content string
	}{
		{"Market Analysis", result.MarketAnalysis},
		{"Fundamentals Analysis", result.Fundamentals},
		{"News Analysis", result.News},
		{"Social Sentiment", result.SocialSentiment},
		{"Research Conclusion", result.ResearchConclusion},
		{"Bull Case", result.BullCase},
		{"Bear Case", result.BearCase},
		{"Trade Decision", result.TradeDecision},
		{"Risk Assessment", result.RiskAssessment},
	}

	for _, section := range sections {
		if section.content == "" {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", section.title, section.content)
	}

	b.WriteString("---\n")
	b.WriteString("*Cryptocurrency trading involves substantial risk. This report is for research purposes only and is not financial advice.*\n")
	return b.String()
}
