package agents

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"cryptoagents/internal/llm"
	"cryptoagents/internal/models"
)

// ErrGeneration marks a model call failure. Unlike tool-fetch errors it aborts
// the run, since a stage without a response has nothing to hand downstream.
var ErrGeneration = errors.New("model generation failed")

// Stage is one step of the fixed analysis pipeline. Run reads the slots
// earlier stages wrote and fills exactly one report slot of its own.
type Stage interface {
	Name() string
	Run(ctx context.Context, state *models.TradingState) error
}

func generate(ctx context.Context, gen llm.Generator, stage string, messages []*schema.Message) (*schema.Message, error) {
	resp, err := gen.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrGeneration, stage, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: %s: empty response", ErrGeneration, stage)
	}
	return resp, nil
}
