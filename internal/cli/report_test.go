package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cryptoagents/internal/models"
)

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	result := &models.AnalysisResult{
		Crypto:         "BTC",
		Date:           "2024-12-11",
		MarketAnalysis: "Uptrend intact above the 50-day average.",
		RiskAssessment: "Risk level: Medium\nFINAL DECISION: BUY",
		FinalDecision:  models.DecisionBuy,
	}

	path, err := WriteReport(dir, result)
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if filepath.Base(path) != "BTC_2024-12-11.md" {
		t.Fatalf("unexpected file name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "# BTC Trading Analysis - 2024-12-11") {
		t.Fatalf("missing title:\n%s", content)
	}
	if !strings.Contains(content, "**Final Decision: BUY**") {
		t.Fatalf("missing decision:\n%s", content)
	}
	if !strings.Contains(content, "## Market Analysis") {
		t.Fatalf("missing market section:\n%s", content)
	}
	if strings.Contains(content, "## News Analysis") {
		t.Fatalf("empty sections should be omitted:\n%s", content)
	}
}

func TestWriteReportCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	result := &models.AnalysisResult{Crypto: "ETH", Date: "2024-12-11", FinalDecision: models.DecisionHold}

	if _, err := WriteReport(dir, result); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ETH_2024-12-11.md")); err != nil {
		t.Fatalf("report file missing: %v", err)
	}
}
