package agents

import (
	"github.com/rs/zerolog"

	"cryptoagents/internal/llm"
	"cryptoagents/internal/models"
)

func NewTrader(gen llm.Generator, logger zerolog.Logger) Stage {
	return &reasoningStage{
		name: Trader,
		build: func(state *models.TradingState) string {
			return traderPrompt(state.BullCase, state.BearCase)
		},
		assign: func(state *models.TradingState, content string) {
			state.TradeDecision = content
		},
		gen:    gen,
		logger: logger,
	}
}
