package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"cryptoagents/internal/llm"
	"cryptoagents/internal/models"
)

// analystStage is the shared shape of the four analyst stages: gather the
// assigned tool data, ask the model for an analysis, store the report.
type analystStage struct {
	name    string
	role    string
	subject string
	tail    string
	assign  func(state *models.TradingState, report string)

	gen     llm.Generator
	toolkit *Toolkit
	logger  zerolog.Logger
}

func (a *analystStage) Name() string { return a.name }

func (a *analystStage) Run(ctx context.Context, state *models.TradingState) error {
	tradeDate, err := time.Parse("2006-01-02", state.TradeDate)
	if err != nil {
		return fmt.Errorf("%s: bad trade date %q: %w", a.name, state.TradeDate, err)
	}

	results := a.toolkit.Gather(ctx, a.name, state.CryptoOfInterest, tradeDate)
	sections := make([]string, len(results))
	for i, result := range results {
		sections[i] = fmt.Sprintf("%s:\n%s", result.Label, result.Content)
	}

	analysisPrompt := fmt.Sprintf(`Based on the following %s for %s, provide a comprehensive analysis:

%s

%s`, a.subject, state.CryptoOfInterest, strings.Join(sections, "\n\n"), a.tail)

	caps := CapabilitiesFor(a.name, a.toolkit.Online())
	messages := make([]*schema.Message, 0, len(state.Messages)+2)
	messages = append(messages, schema.SystemMessage(
		analystSystemPrompt(a.role, caps, state.CryptoOfInterest, state.TradeDate)))
	messages = append(messages, state.Messages...)
	messages = append(messages, schema.UserMessage(analysisPrompt))

	resp, err := generate(ctx, a.gen, a.name, messages)
	if err != nil {
		return err
	}

	a.logger.Debug().Str("stage", a.name).Int("report_len", len(resp.Content)).Msg("analyst report ready")
	state.AppendMessage(resp)
	a.assign(state, resp.Content)
	return nil
}

func NewMarketAnalyst(gen llm.Generator, toolkit *Toolkit, logger zerolog.Logger) Stage {
	return &analystStage{
		name:    MarketAnalyst,
		role:    marketAnalystRole,
		subject: "market data",
		tail:    "Please analyze trends, patterns, and potential trading opportunities. Include a summary table at the end.",
		assign: func(state *models.TradingState, report string) {
			state.MarketReport = report
		},
		gen:     gen,
		toolkit: toolkit,
		logger:  logger,
	}
}

func NewFundamentalsAnalyst(gen llm.Generator, toolkit *Toolkit, logger zerolog.Logger) Stage {
	return &analystStage{
		name:    FundamentalsAnalyst,
		role:    fundamentalsAnalystRole,
		subject: "fundamentals data",
		tail:    "Please analyze the tokenomics, project fundamentals, and long-term potential. Include specific recommendations.",
		assign: func(state *models.TradingState, report string) {
			state.FundamentalsReport = report
		},
		gen:     gen,
		toolkit: toolkit,
		logger:  logger,
	}
}

func NewNewsAnalyst(gen llm.Generator, toolkit *Toolkit, logger zerolog.Logger) Stage {
	return &analystStage{
		name:    NewsAnalyst,
		role:    newsAnalystRole,
		subject: "news data",
		tail:    "Please analyze the sentiment, key developments, and potential market impact. Focus on actionable insights.",
		assign: func(state *models.TradingState, report string) {
			state.NewsReport = report
		},
		gen:     gen,
		toolkit: toolkit,
		logger:  logger,
	}
}

func NewSocialAnalyst(gen llm.Generator, toolkit *Toolkit, logger zerolog.Logger) Stage {
	return &analystStage{
		name:    SocialAnalyst,
		role:    socialAnalystRole,
		subject: "social sentiment data",
		tail:    "Please analyze the community sentiment, trending topics, and social momentum. Identify potential catalysts or concerns.",
		assign: func(state *models.TradingState, report string) {
			state.SocialReport = report
		},
		gen:     gen,
		toolkit: toolkit,
		logger:  logger,
	}
}
