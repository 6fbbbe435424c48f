package models

// Categorical trading decisions. DecisionError marks a batch entry whose run
// failed outright.
const (
	DecisionBuy   = "BUY"
	DecisionSell  = "SELL"
	DecisionHold  = "HOLD"
	DecisionError = "ERROR"
)

// AnalysisResult is what one pipeline run returns to the caller: every report
// slot plus the extracted decision.
type AnalysisResult struct {
	Crypto string `json:"crypto"`
	Date   string `json:"date"`

	MarketAnalysis     string `json:"market_analysis"`
	Fundamentals       string `json:"fundamentals"`
	News               string `json:"news"`
	SocialSentiment    string `json:"social_sentiment"`
	BullCase           string `json:"bull_case"`
	BearCase           string `json:"bear_case"`
	ResearchConclusion string `json:"research_conclusion"`
	TradeDecision      string `json:"trade_decision"`
	RiskAssessment     string `json:"risk_assessment"`

	FinalDecision string `json:"final_decision"`
	Error         string `json:"error,omitempty"`
}

// ResultFromState assembles the caller-facing record from a completed run.
func ResultFromState(state *TradingState) *AnalysisResult {
	return &AnalysisResult{
		Crypto:             state.CryptoOfInterest,
		Date:               state.TradeDate,
		MarketAnalysis:     state.MarketReport,
		Fundamentals:       state.FundamentalsReport,
		News:               state.NewsReport,
		SocialSentiment:    state.SocialReport,
		BullCase:           state.BullCase,
		BearCase:           state.BearCase,
		ResearchConclusion: state.ResearchConclusion,
		TradeDecision:      state.TradeDecision,
		RiskAssessment:     state.RiskAssessment,
		FinalDecision:      state.FinalDecision,
	}
}
