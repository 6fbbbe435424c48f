package agents

import "testing"

func TestCapabilitiesForAnalystStages(t *testing.T) {
	cases := []struct {
		stage  string
		online bool
		want   []Capability
	}{
		{MarketAnalyst, true, []Capability{CapPriceWindow, CapIndicators, CapCorrelation}},
		{MarketAnalyst, false, []Capability{CapPriceWindow, CapIndicators}},
		{FundamentalsAnalyst, true, []Capability{CapFundamentals, CapSentiment, CapMarketOverview}},
		{FundamentalsAnalyst, false, []Capability{CapFundamentals, CapSentiment}},
		{NewsAnalyst, true, []Capability{CapNewsSearch, CapCryptoNews, CapMarketOverview}},
		{NewsAnalyst, false, []Capability{CapCryptoNews, CapGoogleNews, CapMarketOverview}},
		{SocialAnalyst, true, []Capability{CapSocialSearch, CapRedditSentiment}},
		{SocialAnalyst, false, []Capability{CapRedditSentiment, CapGoogleNews}},
	}

	for _, tc := range cases {
		got := CapabilitiesFor(tc.stage, tc.online)
		if len(got) != len(tc.want) {
			t.Fatalf("%s online=%v: got %d capabilities, want %d", tc.stage, tc.online, len(got), len(tc.want))
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s online=%v: capability %d = %s, want %s", tc.stage, tc.online, i, got[i], tc.want[i])
			}
		}
	}
}

func TestCapabilitiesForToollessStages(t *testing.T) {
	for _, stage := range []string{ResearchManager, BullResearcher, BearResearcher, Trader, RiskManager} {
		for _, online := range []bool{true, false} {
			if got := CapabilitiesFor(stage, online); len(got) != 0 {
				t.Fatalf("%s online=%v: expected no tools, got %v", stage, online, got)
			}
		}
	}
}

func TestStagesOrder(t *testing.T) {
	stages := Stages()
	if len(stages) != 9 {
		t.Fatalf("expected 9 stages, got %d", len(stages))
	}
	if stages[0] != MarketAnalyst || stages[8] != RiskManager {
		t.Fatalf("unexpected boundary stages: first=%s last=%s", stages[0], stages[8])
	}
}
