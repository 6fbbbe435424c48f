package agents

import (
	"context"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"cryptoagents/internal/llm"
	"cryptoagents/internal/models"
)

// reasoningStage covers the tool-less stages after the analysts. Each builds
// one prompt from earlier report slots and stores the model response.
type reasoningStage struct {
	name   string
	build  func(state *models.TradingState) string
	assign func(state *models.TradingState, content string)

	gen    llm.Generator
	logger zerolog.Logger
}

func (r *reasoningStage) Name() string { return r.name }

func (r *reasoningStage) Run(ctx context.Context, state *models.TradingState) error {
	resp, err := generate(ctx, r.gen, r.name, []*schema.Message{
		schema.UserMessage(r.build(state)),
	})
	if err != nil {
		return err
	}

	r.logger.Debug().Str("stage", r.name).Int("report_len", len(resp.Content)).Msg("stage response ready")
	state.AppendMessage(resp)
	r.assign(state, resp.Content)
	return nil
}

func NewBullResearcher(gen llm.Generator, logger zerolog.Logger) Stage {
	return &reasoningStage{
		name: BullResearcher,
		build: func(state *models.TradingState) string {
			return bullResearcherPrompt(state.ResearchConclusion)
		},
		assign: func(state *models.TradingState, content string) {
			state.BullCase = content
		},
		gen:    gen,
		logger: logger,
	}
}

func NewBearResearcher(gen llm.Generator, logger zerolog.Logger) Stage {
	return &reasoningStage{
		name: BearResearcher,
		build: func(state *models.TradingState) string {
			return bearResearcherPrompt(state.ResearchConclusion, state.BullCase)
		},
		assign: func(state *models.TradingState, content string) {
			state.BearCase = content
		},
		gen:    gen,
		logger: logger,
	}
}
