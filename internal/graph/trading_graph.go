package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"cryptoagents/config"
	"cryptoagents/internal/agents"
	"cryptoagents/internal/dataflows"
	"cryptoagents/internal/llm"
	"cryptoagents/internal/models"
)

// ErrInvalidInput marks input validation failures detected before any stage
// runs.
var ErrInvalidInput = errors.New("invalid analysis input")

// TradingAgentsGraph runs the fixed nine-stage analysis pipeline. The stage
// order never changes between runs; the order itself is part of the contract
// since each stage reads slots that earlier stages wrote.
type TradingAgentsGraph struct {
	config *config.Config
	stages []agents.Stage
	logger zerolog.Logger
}

// NewTradingAgentsGraph wires the provider clients, chat models and stages.
func NewTradingAgentsGraph(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*TradingAgentsGraph, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	quick, deep, err := llm.NewGenerators(ctx, cfg)
	if err != nil {
		return nil, err
	}

	market := dataflows.NewCMCClient(cfg, logger)
	news := dataflows.NewNewsClient(logger)
	toolkit := agents.NewToolkit(market, news, agents.NewAISearcher(quick),
		cfg.OnlineTools, cfg.DefaultLookbackDays, logger)

	return &TradingAgentsGraph{
		config: cfg,
		stages: buildStages(quick, deep, toolkit, logger),
		logger: logger.With().Str("component", "trading_graph").Logger(),
	}, nil
}

// buildStages assembles the pipeline in execution order. Analysts and
// researchers run on the quick model; synthesis and final decisions get the
// deep one.
func buildStages(quick, deep llm.Generator, toolkit *agents.Toolkit, logger zerolog.Logger) []agents.Stage {
	return []agents.Stage{
		agents.NewMarketAnalyst(quick, toolkit, logger),
		agents.NewFundamentalsAnalyst(quick, toolkit, logger),
		agents.NewNewsAnalyst(quick, toolkit, logger),
		agents.NewSocialAnalyst(quick, toolkit, logger),
		agents.NewResearchManager(deep, logger),
		agents.NewBullResearcher(quick, logger),
		agents.NewBearResearcher(quick, logger),
		agents.NewTrader(deep, logger),
		agents.NewRiskManager(deep, logger),
	}
}

// Analyze runs the full pipeline for one symbol on one trade date.
func (g *TradingAgentsGraph) Analyze(ctx context.Context, symbol, tradeDate string) (*models.AnalysisResult, error) {
	symbol = dataflows.NormalizeSymbol(symbol)
	if err := dataflows.ValidateSymbol(symbol); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	date, err := dataflows.ParseTradeDate(tradeDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !g.config.IsSupportedCrypto(symbol) {
		g.logger.Warn().Str("symbol", symbol).Msg("symbol not in the supported crypto list, proceeding anyway")
	}

	state := models.NewTradingState(symbol, date, agents.InitialPrompt(symbol, date.Format("2006-01-02")))
	g.logger.Info().Str("symbol", symbol).Str("date", state.TradeDate).Msg("starting analysis")

	for _, stage := range g.stages {
		g.logger.Debug().Str("stage", stage.Name()).Msg("running stage")
		if err := stage.Run(ctx, state); err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
	}

	g.logger.Info().Str("symbol", symbol).Str("decision", state.FinalDecision).Msg("analysis complete")
	return models.ResultFromState(state), nil
}

// AnalyzeBatch runs the pipeline for each symbol in order. A failed run does
// not abort the batch; it yields an ERROR entry in the failed symbol's slot.
func (g *TradingAgentsGraph) AnalyzeBatch(ctx context.Context, symbols []string, tradeDate string) []*models.AnalysisResult {
	results := make([]*models.AnalysisResult, 0, len(symbols))

	for _, symbol := range symbols {
		result, err := g.Analyze(ctx, symbol, tradeDate)
		if err != nil {
			g.logger.Error().Err(err).Str("symbol", symbol).Msg("analysis failed")
			result = &models.AnalysisResult{
				Crypto:        dataflows.NormalizeSymbol(symbol),
				Date:          tradeDate,
				FinalDecision: models.DecisionError,
				Error:         err.Error(),
			}
		}
		results = append(results, result)
	}
	return results
}
