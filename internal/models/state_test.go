package models

import (
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
)

func TestNewTradingState(t *testing.T) {
	date := time.Date(2024, 12, 11, 0, 0, 0, 0, time.UTC)
	state := NewTradingState(" sol ", date, "analyze this")

	if state.CryptoOfInterest != "SOL" {
		t.Fatalf("symbol not normalized: %q", state.CryptoOfInterest)
	}
	if state.TradeDate != "2024-12-11" {
		t.Fatalf("trade date = %q", state.TradeDate)
	}
	if state.FinalDecision != DecisionHold {
		t.Fatalf("initial decision = %q, want HOLD", state.FinalDecision)
	}
	if len(state.Messages) != 1 || state.Messages[0].Content != "analyze this" {
		t.Fatalf("initial messages = %+v", state.Messages)
	}
}

func TestAppendMessage(t *testing.T) {
	state := NewTradingState("BTC", time.Now(), "start")

	state.AppendMessage(schema.AssistantMessage("first", nil))
	state.AppendMessage(nil)
	state.AppendMessage(schema.AssistantMessage("second", nil))

	if len(state.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(state.Messages))
	}
	if state.Messages[1].Content != "first" || state.Messages[2].Content != "second" {
		t.Fatalf("messages out of order: %+v", state.Messages)
	}
}

func TestResultFromState(t *testing.T) {
	state := NewTradingState("ETH", time.Date(2024, 12, 11, 0, 0, 0, 0, time.UTC), "start")
	state.MarketReport = "market"
	state.RiskAssessment = "risk"
	state.FinalDecision = DecisionSell

	result := ResultFromState(state)
	if result.Crypto != "ETH" || result.Date != "2024-12-11" {
		t.Fatalf("identity fields: %+v", result)
	}
	if result.MarketAnalysis != "market" || result.RiskAssessment != "risk" {
		t.Fatalf("report slots not carried over: %+v", result)
	}
	if result.FinalDecision != DecisionSell {
		t.Fatalf("decision = %q", result.FinalDecision)
	}
	if result.Error != "" {
		t.Fatalf("successful run must not carry an error: %q", result.Error)
	}
}
