package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cryptoagents/internal/dataflows"
)

// MarketDataProvider is the market-data dependency of the toolkit.
type MarketDataProvider interface {
	HistoricalQuotes(ctx context.Context, symbol string, start, end time.Time) ([]*dataflows.OHLCV, error)
	LatestQuotes(ctx context.Context, symbols []string) (map[string]*dataflows.QuoteSnapshot, error)
	CryptoInfo(ctx context.Context, symbols []string) (map[string]*dataflows.AssetInfo, error)
	GlobalMetrics(ctx context.Context) (*dataflows.GlobalMetrics, error)
	Trending(ctx context.Context, limit int) ([]*dataflows.TrendingCoin, error)
}

// NewsProvider supplies scraped news articles.
type NewsProvider interface {
	GoogleNews(ctx context.Context, query string, start, end time.Time, maxResults int) ([]*dataflows.NewsArticle, error)
}

// WebSearcher answers open-ended research prompts, used by the AI-backed
// news and social tools in online mode.
type WebSearcher interface {
	Search(ctx context.Context, prompt string) (string, error)
}

// FetchResult is one tool outcome. A failed fetch still yields a result whose
// Content carries the error text, so one dead data source degrades the report
// instead of aborting the run.
type FetchResult struct {
	Capability Capability
	Label      string
	Content    string
}

// Toolkit executes the data-gathering capabilities assigned to each stage.
type Toolkit struct {
	market       MarketDataProvider
	news         NewsProvider
	searcher     WebSearcher
	online       bool
	lookbackDays int
	logger       zerolog.Logger
}

func NewToolkit(market MarketDataProvider, news NewsProvider, searcher WebSearcher, online bool, lookbackDays int, logger zerolog.Logger) *Toolkit {
	if lookbackDays <= 0 {
		lookbackDays = 30
	}
	return &Toolkit{
		market:       market,
		news:         news,
		searcher:     searcher,
		online:       online,
		lookbackDays: lookbackDays,
		logger:       logger.With().Str("component", "toolkit").Logger(),
	}
}

// Online reports whether AI-backed online tools are enabled.
func (t *Toolkit) Online() bool {
	return t.online
}

// Gather runs every capability assigned to the stage and returns the results
// in assignment order. Fetch errors are folded into the content.
func (t *Toolkit) Gather(ctx context.Context, stage, symbol string, tradeDate time.Time) []*FetchResult {
	caps := CapabilitiesFor(stage, t.online)
	results := make([]*FetchResult, 0, len(caps))

	for _, cap := range caps {
		label, errLabel, content, err := t.fetch(ctx, cap, symbol, tradeDate)
		if err != nil {
			t.logger.Warn().Err(err).Str("stage", stage).Str("tool", string(cap)).Msg("tool fetch failed")
			content = fmt.Sprintf("Error retrieving %s: %s", errLabel, err.Error())
		}
		results = append(results, &FetchResult{
			Capability: cap,
			Label:      label,
			Content:    content,
		})
	}
	return results
}

func (t *Toolkit) fetch(ctx context.Context, cap Capability, symbol string, tradeDate time.Time) (label, errLabel, content string, err error) {
	switch cap {
	case CapPriceWindow:
		label, errLabel = "Price Data", "price data"
		content, err = t.fetchPriceWindow(ctx, symbol, tradeDate)
	case CapIndicators:
		label, errLabel = "Technical Indicators", "technical indicators"
		content, err = t.fetchIndicators(ctx, symbol, tradeDate)
	case CapCorrelation:
		label, errLabel = "Correlation Analysis", "correlation analysis"
		content, err = t.fetchCorrelation(ctx, symbol, tradeDate)
	case CapFundamentals:
		label, errLabel = "Fundamentals Report", "fundamentals data"
		content, err = t.fetchFundamentals(ctx, symbol)
	case CapSentiment:
		label, errLabel = "Market Sentiment", "sentiment data"
		content, err = t.fetchSentiment(ctx, symbol)
	case CapMarketOverview:
		label, errLabel = "Market Overview", "market overview data"
		content, err = t.fetchOverview(ctx)
	case CapNewsSearch:
		label, errLabel = "AI News Search", "news data"
		content, err = t.fetchNewsSearch(ctx, symbol, tradeDate)
	case CapCryptoNews:
		label, errLabel = "Crypto News", "news data"
		content, err = t.fetchCryptoNews(ctx, symbol, tradeDate)
	case CapGoogleNews:
		label, errLabel = "Google News", "news data"
		content, err = t.fetchGoogleNews(ctx, symbol, tradeDate)
	case CapSocialSearch:
		label, errLabel = "AI Social Sentiment", "social sentiment data"
		content, err = t.fetchSocialSearch(ctx, symbol, tradeDate)
	case CapRedditSentiment:
		label, errLabel = "Reddit Sentiment", "social sentiment data"
		content, err = t.fetchRedditSentiment(ctx, symbol, tradeDate)
	default:
		label, errLabel = string(cap), string(cap)
		err = fmt.Errorf("unknown capability %q", cap)
	}
	return label, errLabel, content, err
}

func (t *Toolkit) priceWindow(ctx context.Context, symbol string, tradeDate time.Time) (start, end time.Time, series []*dataflows.OHLCV, err error) {
	end = tradeDate
	start = end.AddDate(0, 0, -t.lookbackDays)
	series, err = t.market.HistoricalQuotes(ctx, symbol, start, end)
	return start, end, series, err
}

func (t *Toolkit) fetchPriceWindow(ctx context.Context, symbol string, tradeDate time.Time) (string, error) {
	start, end, series, err := t.priceWindow(ctx, symbol, tradeDate)
	if err != nil {
		return "", err
	}
	return dataflows.FormatPriceWindow(symbol, start, end, series), nil
}

func (t *Toolkit) fetchIndicators(ctx context.Context, symbol string, tradeDate time.Time) (string, error) {
	_, _, series, err := t.priceWindow(ctx, symbol, tradeDate)
	if err != nil {
		return "", err
	}
	return dataflows.TechnicalIndicators(symbol, series), nil
}

func (t *Toolkit) fetchCorrelation(ctx context.Context, symbol string, tradeDate time.Time) (string, error) {
	symbols := []string{symbol}
	for _, major := range []string{"BTC", "ETH"} {
		if major != symbol {
			symbols = append(symbols, major)
		}
	}

	start := tradeDate.AddDate(0, 0, -t.lookbackDays)
	closes := make(map[string][]float64, len(symbols))
	for _, s := range symbols {
		series, err := t.market.HistoricalQuotes(ctx, s, start, tradeDate)
		if err != nil {
			return "", err
		}
		values := make([]float64, len(series))
		for i, bar := range series {
			values[i], _ = bar.Close.Float64()
		}
		closes[s] = values
	}
	return dataflows.CorrelationReport(symbols, closes, dataflows.FormatDateRange(start, tradeDate)), nil
}

func (t *Toolkit) fetchFundamentals(ctx context.Context, symbol string) (string, error) {
	infos, err := t.market.CryptoInfo(ctx, []string{symbol})
	if err != nil {
		return "", err
	}
	quotes, err := t.market.LatestQuotes(ctx, []string{symbol})
	if err != nil {
		return "", err
	}
	return dataflows.FormatFundamentals(symbol, infos[symbol], quotes[symbol]), nil
}

func (t *Toolkit) fetchSentiment(ctx context.Context, symbol string) (string, error) {
	quotes, err := t.market.LatestQuotes(ctx, []string{symbol})
	if err != nil {
		return "", err
	}
	metrics, err := t.market.GlobalMetrics(ctx)
	if err != nil {
		return "", err
	}
	return dataflows.FormatMarketSentiment(symbol, quotes[symbol], metrics), nil
}

func (t *Toolkit) fetchOverview(ctx context.Context) (string, error) {
	metrics, err := t.market.GlobalMetrics(ctx)
	if err != nil {
		return "", err
	}
	text := dataflows.FormatMarketOverview(metrics)

	trending, err := t.market.Trending(ctx, 10)
	if err != nil {
		t.logger.Debug().Err(err).Msg("trending listing unavailable")
		return text, nil
	}
	if len(trending) > 0 {
		var b strings.Builder
		b.WriteString("\n### Trending Cryptocurrencies\n")
		for _, coin := range trending {
			fmt.Fprintf(&b, "- %s (%s), rank %d\n", coin.Name, coin.Symbol, coin.Rank)
		}
		text += b.String()
	}
	return text, nil
}

func (t *Toolkit) fetchCryptoNews(ctx context.Context, symbol string, tradeDate time.Time) (string, error) {
	return t.newsReport(ctx,
		fmt.Sprintf("%s cryptocurrency", symbol),
		fmt.Sprintf("%s News", symbol), symbol, tradeDate)
}

func (t *Toolkit) fetchGoogleNews(ctx context.Context, symbol string, tradeDate time.Time) (string, error) {
	return t.newsReport(ctx,
		fmt.Sprintf("%s crypto market", symbol),
		"Google News", symbol, tradeDate)
}

// fetchRedditSentiment proxies community sentiment through news coverage of
// Reddit discussion. There is no authenticated Reddit client in this stack.
func (t *Toolkit) fetchRedditSentiment(ctx context.Context, symbol string, tradeDate time.Time) (string, error) {
	return t.newsReport(ctx,
		fmt.Sprintf("reddit %s crypto sentiment", symbol),
		fmt.Sprintf("%s Reddit Community Sentiment", symbol), symbol, tradeDate)
}

func (t *Toolkit) newsReport(ctx context.Context, query, header, symbol string, tradeDate time.Time) (string, error) {
	start := tradeDate.AddDate(0, 0, -7)
	articles, err := t.news.GoogleNews(ctx, query, start, tradeDate, 20)
	if err != nil {
		return "", err
	}

	text := dataflows.FormatNews(header, start.Format("2006-01-02"), tradeDate.Format("2006-01-02"), articles)
	if text == "" {
		return fmt.Sprintf("No recent news found for %s", symbol), nil
	}
	return text, nil
}

func (t *Toolkit) fetchNewsSearch(ctx context.Context, symbol string, tradeDate time.Time) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the most significant news about the %s cryptocurrency in the 7 days before %s. "+
			"Cover project developments, regulatory events, exchange listings and security incidents, "+
			"and note the likely price impact of each item.",
		symbol, tradeDate.Format("2006-01-02"))
	return t.searcher.Search(ctx, prompt)
}

func (t *Toolkit) fetchSocialSearch(ctx context.Context, symbol string, tradeDate time.Time) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize social media sentiment for the %s cryptocurrency around %s. "+
			"Cover crypto Twitter, Reddit and Telegram mood, influencer opinions, trending topics, "+
			"and whether the community leans bullish or bearish.",
		symbol, tradeDate.Format("2006-01-02"))
	return t.searcher.Search(ctx, prompt)
}
