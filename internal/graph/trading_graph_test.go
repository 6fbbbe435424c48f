package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"cryptoagents/config"
	"cryptoagents/internal/agents"
	"cryptoagents/internal/dataflows"
	"cryptoagents/internal/models"
)

type recordingStage struct {
	name string
	ran  *[]string
	err  error
}

func (s *recordingStage) Name() string { return s.name }

func (s *recordingStage) Run(ctx context.Context, state *models.TradingState) error {
	*s.ran = append(*s.ran, s.name)
	return s.err
}

// scriptedGenerator fails whenever a message mentions a poisoned symbol and
// otherwise answers with a fixed decision marker.
type scriptedGenerator struct {
	poison string
}

func (g *scriptedGenerator) Generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	for _, msg := range messages {
		if g.poison != "" && strings.Contains(msg.Content, g.poison) {
			return nil, errors.New("model backend unavailable")
		}
	}
	return schema.AssistantMessage("Analysis complete.\nFINAL DECISION: BUY", nil), nil
}

type downMarket struct{}

func (downMarket) HistoricalQuotes(ctx context.Context, symbol string, start, end time.Time) ([]*dataflows.OHLCV, error) {
	return nil, fmt.Errorf("%w: provider offline", dataflows.ErrProviderRequest)
}

func (downMarket) LatestQuotes(ctx context.Context, symbols []string) (map[string]*dataflows.QuoteSnapshot, error) {
	return nil, fmt.Errorf("%w: provider offline", dataflows.ErrProviderRequest)
}

func (downMarket) CryptoInfo(ctx context.Context, symbols []string) (map[string]*dataflows.AssetInfo, error) {
	return nil, fmt.Errorf("%w: provider offline", dataflows.ErrProviderRequest)
}

func (downMarket) GlobalMetrics(ctx context.Context) (*dataflows.GlobalMetrics, error) {
	return nil, fmt.Errorf("%w: provider offline", dataflows.ErrProviderRequest)
}

func (downMarket) Trending(ctx context.Context, limit int) ([]*dataflows.TrendingCoin, error) {
	return nil, fmt.Errorf("%w: provider offline", dataflows.ErrProviderRequest)
}

type downNews struct{}

func (downNews) GoogleNews(ctx context.Context, query string, start, end time.Time, maxResults int) ([]*dataflows.NewsArticle, error) {
	return nil, fmt.Errorf("%w: scraper offline", dataflows.ErrProviderRequest)
}

func testConfig() *config.Config {
	return &config.Config{
		SupportedCryptos:    []string{"BTC", "ETH"},
		DefaultLookbackDays: 7,
	}
}

func newTestGraph(gen *scriptedGenerator) *TradingAgentsGraph {
	logger := zerolog.Nop()
	toolkit := agents.NewToolkit(downMarket{}, downNews{}, agents.NewAISearcher(gen), true, 7, logger)
	return &TradingAgentsGraph{
		config: testConfig(),
		stages: buildStages(gen, gen, toolkit, logger),
		logger: logger,
	}
}

func TestAnalyzeRunsStagesInOrder(t *testing.T) {
	var ran []string
	stages := make([]agents.Stage, 0, 9)
	for _, name := range agents.Stages() {
		stages = append(stages, &recordingStage{name: name, ran: &ran})
	}
	g := &TradingAgentsGraph{config: testConfig(), stages: stages, logger: zerolog.Nop()}

	result, err := g.Analyze(context.Background(), "btc", "2024-12-11")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	want := agents.Stages()
	if len(ran) != len(want) {
		t.Fatalf("ran %d stages, want %d", len(ran), len(want))
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Fatalf("stage %d = %s, want %s", i, ran[i], want[i])
		}
	}
	if result.Crypto != "BTC" {
		t.Fatalf("symbol not normalized: %q", result.Crypto)
	}
	if result.FinalDecision != models.DecisionHold {
		t.Fatalf("default decision = %s, want HOLD", result.FinalDecision)
	}
}

func TestAnalyzeRejectsInvalidInput(t *testing.T) {
	var ran []string
	g := &TradingAgentsGraph{
		config: testConfig(),
		stages: []agents.Stage{&recordingStage{name: agents.MarketAnalyst, ran: &ran}},
		logger: zerolog.Nop(),
	}

	if _, err := g.Analyze(context.Background(), "", "2024-12-11"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty symbol: expected ErrInvalidInput, got %v", err)
	}
	if _, err := g.Analyze(context.Background(), "BTC", "12/11/2024"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad date: expected ErrInvalidInput, got %v", err)
	}
	if _, err := g.Analyze(context.Background(), "BTC", "2024-13-45"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("impossible date: expected ErrInvalidInput, got %v", err)
	}
	if len(ran) != 0 {
		t.Fatalf("no stage should run on invalid input, ran %v", ran)
	}
}

func TestAnalyzeSurvivesDeadDataSources(t *testing.T) {
	g := newTestGraph(&scriptedGenerator{})

	result, err := g.Analyze(context.Background(), "BTC", "2024-12-11")
	if err != nil {
		t.Fatalf("tool failures must degrade, not abort: %v", err)
	}
	if result.FinalDecision != models.DecisionBuy {
		t.Fatalf("final decision = %s, want BUY", result.FinalDecision)
	}
	if result.MarketAnalysis == "" || result.RiskAssessment == "" {
		t.Fatalf("report slots should still be filled: %+v", result)
	}
}

func TestAnalyzeFailsOnGenerationError(t *testing.T) {
	g := newTestGraph(&scriptedGenerator{poison: "BTC"})

	_, err := g.Analyze(context.Background(), "BTC", "2024-12-11")
	if !errors.Is(err, agents.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestAnalyzeBatchIsolatesFailures(t *testing.T) {
	g := newTestGraph(&scriptedGenerator{poison: "ZZZ999"})

	results := g.AnalyzeBatch(context.Background(), []string{"BTC", "ZZZ999", "ETH"}, "2024-12-11")
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Crypto != "BTC" || results[0].FinalDecision != models.DecisionBuy {
		t.Fatalf("first entry: %+v", results[0])
	}
	if results[1].Crypto != "ZZZ999" || results[1].FinalDecision != models.DecisionError {
		t.Fatalf("second entry should be the failed symbol: %+v", results[1])
	}
	if results[1].Error == "" {
		t.Fatalf("failed entry must carry the error text")
	}
	if results[2].Crypto != "ETH" || results[2].FinalDecision != models.DecisionBuy {
		t.Fatalf("third entry: %+v", results[2])
	}
}
