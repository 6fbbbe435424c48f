package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"cryptoagents/config"
)

// Generator is the text-generation collaborator boundary: an ordered list of
// conversational turns in, one response message out. Failures propagate as
// fatal to the current run.
type Generator interface {
	Generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error)
}

type chatModelGenerator struct {
	model model.BaseChatModel
}

func (g *chatModelGenerator) Generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	return g.model.Generate(ctx, messages)
}

// NewGenerators builds the quick-think and deep-think generators for the
// configured provider.
func NewGenerators(ctx context.Context, cfg *config.Config) (quick, deep Generator, err error) {
	switch cfg.LLMProvider {
	case "deepseek":
		quick, err = newDeepSeekGenerator(ctx, cfg, cfg.QuickThinkLLM)
		if err != nil {
			return nil, nil, err
		}
		deep, err = newDeepSeekGenerator(ctx, cfg, cfg.DeepThinkLLM)
		if err != nil {
			return nil, nil, err
		}
	default:
		quick, err = newOpenAIGenerator(ctx, cfg, cfg.QuickThinkLLM)
		if err != nil {
			return nil, nil, err
		}
		deep, err = newOpenAIGenerator(ctx, cfg, cfg.DeepThinkLLM)
		if err != nil {
			return nil, nil, err
		}
	}
	return quick, deep, nil
}

func newOpenAIGenerator(ctx context.Context, cfg *config.Config, modelName string) (Generator, error) {
	maxTokens := 8192
	conf := &openai.ChatModelConfig{
		APIKey:    cfg.OpenAIAPIKey,
		Model:     modelName,
		MaxTokens: &maxTokens,
	}
	if cfg.BackendURL != "" {
		conf.BaseURL = cfg.BackendURL
	}

	chatModel, err := openai.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("create OpenAI model %s: %w", modelName, err)
	}
	return &chatModelGenerator{model: chatModel}, nil
}

func newDeepSeekGenerator(ctx context.Context, cfg *config.Config, modelName string) (Generator, error) {
	chatModel, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
		APIKey:    cfg.DeepSeekAPIKey,
		Model:     modelName,
		MaxTokens: 8192,
	})
	if err != nil {
		return nil, fmt.Errorf("create DeepSeek model %s: %w", modelName, err)
	}
	return &chatModelGenerator{model: chatModel}, nil
}
