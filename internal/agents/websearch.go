package agents

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"cryptoagents/internal/llm"
)

const searcherSystemPrompt = "You are a cryptocurrency research assistant. Answer from your knowledge of " +
	"markets and recent events. Be explicit about uncertainty and note when information may be stale."

// AISearcher serves the online news and social tools through a chat model.
type AISearcher struct {
	gen llm.Generator
}

func NewAISearcher(gen llm.Generator) *AISearcher {
	return &AISearcher{gen: gen}
}

func (s *AISearcher) Search(ctx context.Context, prompt string) (string, error) {
	resp, err := s.gen.Generate(ctx, []*schema.Message{
		schema.SystemMessage(searcherSystemPrompt),
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", fmt.Errorf("web search: %w", err)
	}
	return resp.Content, nil
}
