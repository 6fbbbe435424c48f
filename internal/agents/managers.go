package agents

import (
	"github.com/rs/zerolog"

	"cryptoagents/internal/llm"
	"cryptoagents/internal/models"
)

func NewResearchManager(gen llm.Generator, logger zerolog.Logger) Stage {
	return &reasoningStage{
		name: ResearchManager,
		build: func(state *models.TradingState) string {
			return researchManagerPrompt(
				state.MarketReport,
				state.FundamentalsReport,
				state.NewsReport,
				state.SocialReport)
		},
		assign: func(state *models.TradingState, content string) {
			state.ResearchConclusion = content
		},
		gen:    gen,
		logger: logger,
	}
}

// NewRiskManager builds the final stage. Besides the risk assessment text it
// extracts the machine-readable final decision.
func NewRiskManager(gen llm.Generator, logger zerolog.Logger) Stage {
	return &reasoningStage{
		name: RiskManager,
		build: func(state *models.TradingState) string {
			return riskManagerPrompt(state.CryptoOfInterest, state.TradeDecision)
		},
		assign: func(state *models.TradingState, content string) {
			state.RiskAssessment = content
			state.FinalDecision = ExtractDecision(content)
		},
		gen:    gen,
		logger: logger,
	}
}
