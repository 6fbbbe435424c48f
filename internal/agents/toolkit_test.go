package agents

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cryptoagents/internal/dataflows"
)

type fakeMarket struct {
	err    error
	series []*dataflows.OHLCV
}

func (f *fakeMarket) HistoricalQuotes(ctx context.Context, symbol string, start, end time.Time) ([]*dataflows.OHLCV, error) {
	return f.series, f.err
}

func (f *fakeMarket) LatestQuotes(ctx context.Context, symbols []string) (map[string]*dataflows.QuoteSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	quotes := make(map[string]*dataflows.QuoteSnapshot, len(symbols))
	for _, symbol := range symbols {
		quotes[symbol] = &dataflows.QuoteSnapshot{
			Symbol: symbol,
			Price:  decimal.NewFromInt(50000),
		}
	}
	return quotes, nil
}

func (f *fakeMarket) CryptoInfo(ctx context.Context, symbols []string) (map[string]*dataflows.AssetInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	infos := make(map[string]*dataflows.AssetInfo, len(symbols))
	for _, symbol := range symbols {
		infos[symbol] = &dataflows.AssetInfo{Symbol: symbol, Name: symbol + " Coin"}
	}
	return infos, nil
}

func (f *fakeMarket) GlobalMetrics(ctx context.Context) (*dataflows.GlobalMetrics, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dataflows.GlobalMetrics{BitcoinDominance: 55}, nil
}

func (f *fakeMarket) Trending(ctx context.Context, limit int) ([]*dataflows.TrendingCoin, error) {
	return nil, f.err
}

type fakeNews struct {
	err      error
	articles []*dataflows.NewsArticle
}

func (f *fakeNews) GoogleNews(ctx context.Context, query string, start, end time.Time, maxResults int) ([]*dataflows.NewsArticle, error) {
	return f.articles, f.err
}

type fakeSearcher struct {
	answer string
	err    error
}

func (f *fakeSearcher) Search(ctx context.Context, prompt string) (string, error) {
	return f.answer, f.err
}

func sampleSeries(days int) []*dataflows.OHLCV {
	series := make([]*dataflows.OHLCV, days)
	base := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	for i := range series {
		price := decimal.NewFromInt(int64(90000 + i*100))
		series[i] = &dataflows.OHLCV{
			Date:  base.AddDate(0, 0, i),
			Open:  price,
			High:  price.Add(decimal.NewFromInt(500)),
			Low:   price.Sub(decimal.NewFromInt(500)),
			Close: price.Add(decimal.NewFromInt(100)),
		}
	}
	return series
}

func newTestToolkit(market MarketDataProvider, news NewsProvider, searcher WebSearcher, online bool) *Toolkit {
	return NewToolkit(market, news, searcher, online, 30, zerolog.Nop())
}

func TestGatherMarketAnalystOnline(t *testing.T) {
	toolkit := newTestToolkit(&fakeMarket{series: sampleSeries(40)}, &fakeNews{}, &fakeSearcher{}, true)

	results := toolkit.Gather(context.Background(), MarketAnalyst, "BTC", time.Date(2024, 12, 11, 0, 0, 0, 0, time.UTC))
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Label != "Price Data" || results[1].Label != "Technical Indicators" || results[2].Label != "Correlation Analysis" {
		t.Fatalf("unexpected labels: %s, %s, %s", results[0].Label, results[1].Label, results[2].Label)
	}
	if !strings.Contains(results[0].Content, "Cryptocurrency Market Data for BTC") {
		t.Fatalf("price content missing header: %q", results[0].Content)
	}
}

func TestGatherFoldsFetchErrors(t *testing.T) {
	providerDown := errors.New("connection refused")
	toolkit := newTestToolkit(&fakeMarket{err: providerDown}, &fakeNews{}, &fakeSearcher{}, false)

	results := toolkit.Gather(context.Background(), MarketAnalyst, "BTC", time.Date(2024, 12, 11, 0, 0, 0, 0, time.UTC))
	if len(results) != 2 {
		t.Fatalf("failed fetches must still produce results, got %d of 2", len(results))
	}
	if !strings.HasPrefix(results[0].Content, "Error retrieving price data: ") {
		t.Fatalf("unexpected error content: %q", results[0].Content)
	}
	if !strings.Contains(results[0].Content, "connection refused") {
		t.Fatalf("error content should carry the cause: %q", results[0].Content)
	}
	if !strings.HasPrefix(results[1].Content, "Error retrieving technical indicators: ") {
		t.Fatalf("unexpected error content: %q", results[1].Content)
	}
}

func TestGatherSocialAnalystOnlineUsesSearcher(t *testing.T) {
	searcher := &fakeSearcher{answer: "community is bullish"}
	toolkit := newTestToolkit(&fakeMarket{}, &fakeNews{}, searcher, true)

	results := toolkit.Gather(context.Background(), SocialAnalyst, "ETH", time.Date(2024, 12, 11, 0, 0, 0, 0, time.UTC))
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Content != "community is bullish" {
		t.Fatalf("AI social result = %q", results[0].Content)
	}
	// Second capability proxies Reddit sentiment through news; no articles
	// means an explicit empty-result message.
	if !strings.Contains(results[1].Content, "No recent news found") {
		t.Fatalf("reddit fallback content = %q", results[1].Content)
	}
}

func TestGatherNewsOfflineMode(t *testing.T) {
	news := &fakeNews{articles: []*dataflows.NewsArticle{
		{Title: "ETF inflows surge", Source: "Example Wire", Snippet: "Funds keep buying."},
	}}
	toolkit := newTestToolkit(&fakeMarket{}, news, &fakeSearcher{err: errors.New("should not be called")}, false)

	results := toolkit.Gather(context.Background(), NewsAnalyst, "BTC", time.Date(2024, 12, 11, 0, 0, 0, 0, time.UTC))
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, result := range results[:2] {
		if !strings.Contains(result.Content, "ETF inflows surge") {
			t.Fatalf("%s content missing article: %q", result.Label, result.Content)
		}
	}
}

func TestGatherDownstreamStagesHaveNoTools(t *testing.T) {
	toolkit := newTestToolkit(&fakeMarket{}, &fakeNews{}, &fakeSearcher{}, true)

	for _, stage := range []string{ResearchManager, BullResearcher, BearResearcher, Trader, RiskManager} {
		if results := toolkit.Gather(context.Background(), stage, "BTC", time.Now()); len(results) != 0 {
			t.Fatalf("%s: expected no results, got %d", stage, len(results))
		}
	}
}
