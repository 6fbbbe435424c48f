package dataflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cryptoagents/config"
)

const (
	cmcBaseURL    = "https://pro-api.coinmarketcap.com"
	cmcSandboxURL = "https://sandbox-api.coinmarketcap.com"
)

// CMCClient wraps the CoinMarketCap REST API. Symbol resolution goes through a
// lazily built symbol->id map that is populated at most once per process;
// every outbound request passes through the rate limiter first.
type CMCClient struct {
	client  *resty.Client
	limiter *RateLimiter
	logger  zerolog.Logger

	mapMu     sync.Mutex
	symbolIDs map[string]int
	mapLoaded bool
}

// NewCMCClient creates a CoinMarketCap client from the application config.
func NewCMCClient(cfg *config.Config, logger zerolog.Logger) *CMCClient {
	baseURL := cmcBaseURL
	if cfg.UseSandbox {
		baseURL = cmcSandboxURL
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(30 * time.Second)
	client.SetHeader("X-CMC_PRO_API_KEY", cfg.CoinMarketCapAPIKey)
	client.SetHeader("Accept", "application/json")

	interval := cfg.RequestInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	return &CMCClient{
		client:    client,
		limiter:   NewRateLimiter(interval),
		logger:    logger.With().Str("component", "coinmarketcap").Logger(),
		symbolIDs: make(map[string]int),
	}
}

// SetBaseURL overrides the provider endpoint. Used by tests against a fake
// server.
func (c *CMCClient) SetBaseURL(url string) {
	c.client.SetBaseURL(url)
}

func (c *CMCClient) get(ctx context.Context, endpoint string, params map[string]string, out interface{}) error {
	c.limiter.Acquire()

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrProviderRequest, endpoint, err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("%w: %s: HTTP %d", ErrProviderRequest, endpoint, resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %s: parse response: %v", ErrProviderRequest, endpoint, err)
	}
	return nil
}

type cmcMapEntry struct {
	ID     int    `json:"id"`
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// ensureSymbolMap populates the symbol->id table on first use. Entries arrive
// ranked; the first occurrence of a duplicate symbol wins. A fetch failure
// leaves the cache unpopulated so a later call may try again, but a successful
// population is final for the process lifetime.
func (c *CMCClient) ensureSymbolMap(ctx context.Context) error {
	c.mapMu.Lock()
	defer c.mapMu.Unlock()

	if c.mapLoaded {
		return nil
	}

	var payload struct {
		Data []cmcMapEntry `json:"data"`
	}
	err := c.get(ctx, "/v1/cryptocurrency/map", map[string]string{
		"limit": "5000",
		"sort":  "cmc_rank",
	}, &payload)
	if err != nil {
		return err
	}

	for _, entry := range payload.Data {
		symbol := strings.ToUpper(entry.Symbol)
		if _, ok := c.symbolIDs[symbol]; !ok {
			c.symbolIDs[symbol] = entry.ID
		}
	}
	c.mapLoaded = true
	c.logger.Debug().Int("symbols", len(c.symbolIDs)).Msg("symbol map populated")
	return nil
}

// CryptoID resolves a symbol to its CoinMarketCap id. A miss after the map is
// populated means the symbol is genuinely unsupported.
func (c *CMCClient) CryptoID(ctx context.Context, symbol string) (int, error) {
	if err := c.ensureSymbolMap(ctx); err != nil {
		return 0, err
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	id, ok := c.symbolIDs[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}
	return id, nil
}

// resolveIDs maps symbols to ids, skipping (and logging) symbols that fail
// resolution instead of aborting the batch. The returned id->symbol map keys
// responses back to the caller's symbols.
func (c *CMCClient) resolveIDs(ctx context.Context, symbols []string) ([]string, map[string]string, error) {
	var ids []string
	idToSymbol := make(map[string]string)
	for _, symbol := range symbols {
		id, err := c.CryptoID(ctx, symbol)
		if err != nil {
			if errors.Is(err, ErrUnknownSymbol) {
				c.logger.Warn().Str("symbol", symbol).Msg("symbol not found, skipping")
				continue
			}
			return nil, nil, err
		}
		idStr := strconv.Itoa(id)
		ids = append(ids, idStr)
		idToSymbol[idStr] = strings.ToUpper(strings.TrimSpace(symbol))
	}
	return ids, idToSymbol, nil
}

type cmcQuoteUSD struct {
	Price                 float64 `json:"price"`
	Volume24h             float64 `json:"volume_24h"`
	PercentChange24h      float64 `json:"percent_change_24h"`
	PercentChange7d       float64 `json:"percent_change_7d"`
	PercentChange30d      float64 `json:"percent_change_30d"`
	MarketCap             float64 `json:"market_cap"`
	MarketCapDominance    float64 `json:"market_cap_dominance"`
	FullyDilutedMarketCap float64 `json:"fully_diluted_market_cap"`
}

type cmcQuoteEntry struct {
	ID                int                    `json:"id"`
	Symbol            string                 `json:"symbol"`
	CirculatingSupply float64                `json:"circulating_supply"`
	TotalSupply       float64                `json:"total_supply"`
	MaxSupply         float64                `json:"max_supply"`
	Quote             map[string]cmcQuoteUSD `json:"quote"`
}

// LatestQuotes fetches current quotes for the given symbols in one batched
// request, returning a map keyed by symbol. Unresolvable symbols are skipped.
func (c *CMCClient) LatestQuotes(ctx context.Context, symbols []string) (map[string]*QuoteSnapshot, error) {
	ids, idToSymbol, err := c.resolveIDs(ctx, symbols)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return map[string]*QuoteSnapshot{}, nil
	}

	var payload struct {
		Data map[string]cmcQuoteEntry `json:"data"`
	}
	err = c.get(ctx, "/v2/cryptocurrency/quotes/latest", map[string]string{
		"id":      strings.Join(ids, ","),
		"convert": "USD",
	}, &payload)
	if err != nil {
		return nil, err
	}

	quotes := make(map[string]*QuoteSnapshot, len(payload.Data))
	for idStr, entry := range payload.Data {
		symbol, ok := idToSymbol[idStr]
		if !ok {
			symbol = strings.ToUpper(entry.Symbol)
		}
		usd := entry.Quote["USD"]
		quotes[symbol] = &QuoteSnapshot{
			Symbol:                symbol,
			Price:                 decimal.NewFromFloat(usd.Price),
			PercentChange24h:      usd.PercentChange24h,
			PercentChange7d:       usd.PercentChange7d,
			PercentChange30d:      usd.PercentChange30d,
			MarketCap:             decimal.NewFromFloat(usd.MarketCap),
			Volume24h:             decimal.NewFromFloat(usd.Volume24h),
			MarketCapDominance:    usd.MarketCapDominance,
			FullyDilutedMarketCap: decimal.NewFromFloat(usd.FullyDilutedMarketCap),
			CirculatingSupply:     entry.CirculatingSupply,
			TotalSupply:           entry.TotalSupply,
			MaxSupply:             entry.MaxSupply,
		}
	}
	return quotes, nil
}

type cmcOHLCVQuote struct {
	TimeOpen string `json:"time_open"`
	Quote    map[string]struct {
		Open      float64 `json:"open"`
		High      float64 `json:"high"`
		Low       float64 `json:"low"`
		Close     float64 `json:"close"`
		Volume    float64 `json:"volume"`
		MarketCap float64 `json:"market_cap"`
	} `json:"quote"`
}

// HistoricalQuotes fetches daily OHLCV records for [start, end]. An inverted
// range returns an empty series without calling the provider; an empty
// provider response is an empty series, not an error.
func (c *CMCClient) HistoricalQuotes(ctx context.Context, symbol string, start, end time.Time) ([]*OHLCV, error) {
	if start.After(end) {
		return []*OHLCV{}, nil
	}

	id, err := c.CryptoID(ctx, symbol)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data struct {
			Quotes []cmcOHLCVQuote `json:"quotes"`
		} `json:"data"`
	}
	err = c.get(ctx, "/v2/cryptocurrency/ohlcv/historical", map[string]string{
		"id":         strconv.Itoa(id),
		"time_start": strconv.FormatInt(start.Unix(), 10),
		"time_end":   strconv.FormatInt(end.Unix(), 10),
		"interval":   "daily",
		"convert":    "USD",
	}, &payload)
	if err != nil {
		return nil, err
	}

	series := make([]*OHLCV, 0, len(payload.Data.Quotes))
	for _, q := range payload.Data.Quotes {
		usd := q.Quote["USD"]
		series = append(series, &OHLCV{
			Date:      parseProviderTime(q.TimeOpen),
			Open:      decimal.NewFromFloat(usd.Open),
			High:      decimal.NewFromFloat(usd.High),
			Low:       decimal.NewFromFloat(usd.Low),
			Close:     decimal.NewFromFloat(usd.Close),
			Volume:    decimal.NewFromFloat(usd.Volume),
			MarketCap: decimal.NewFromFloat(usd.MarketCap),
		})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}

type cmcInfoEntry struct {
	Name        string              `json:"name"`
	Symbol      string              `json:"symbol"`
	Description string              `json:"description"`
	URLs        map[string][]string `json:"urls"`
	Tags        []string            `json:"tags"`
	Platform    *Platform           `json:"platform"`
	DateAdded   string              `json:"date_added"`
}

// CryptoInfo fetches descriptive metadata for the given symbols, keyed by
// symbol. Missing nested fields decay to empty values.
func (c *CMCClient) CryptoInfo(ctx context.Context, symbols []string) (map[string]*AssetInfo, error) {
	ids, idToSymbol, err := c.resolveIDs(ctx, symbols)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return map[string]*AssetInfo{}, nil
	}

	var payload struct {
		Data map[string]cmcInfoEntry `json:"data"`
	}
	err = c.get(ctx, "/v2/cryptocurrency/info", map[string]string{
		"id": strings.Join(ids, ","),
	}, &payload)
	if err != nil {
		return nil, err
	}

	infos := make(map[string]*AssetInfo, len(payload.Data))
	for idStr, entry := range payload.Data {
		symbol, ok := idToSymbol[idStr]
		if !ok {
			symbol = strings.ToUpper(entry.Symbol)
		}
		infos[symbol] = &AssetInfo{
			Symbol:       symbol,
			Name:         entry.Name,
			Description:  entry.Description,
			Website:      firstOrEmpty(entry.URLs["website"]),
			TechnicalDoc: firstOrEmpty(entry.URLs["technical_doc"]),
			Tags:         entry.Tags,
			Platform:     entry.Platform,
			DateAdded:    entry.DateAdded,
		}
	}
	return infos, nil
}

// GlobalMetrics fetches the global market snapshot.
func (c *CMCClient) GlobalMetrics(ctx context.Context) (*GlobalMetrics, error) {
	var payload struct {
		Data struct {
			BTCDominance           float64 `json:"btc_dominance"`
			ETHDominance           float64 `json:"eth_dominance"`
			ActiveCryptocurrencies int     `json:"active_cryptocurrencies"`
			ActiveExchanges        int     `json:"active_exchanges"`
			LastUpdated            string  `json:"last_updated"`
			Quote                  map[string]struct {
				TotalMarketCap          float64 `json:"total_market_cap"`
				TotalVolume24h          float64 `json:"total_volume_24h"`
				TotalMarketCapYesterday float64 `json:"total_market_cap_yesterday"`
				TotalVolume24hYesterday float64 `json:"total_volume_24h_yesterday"`
				AltcoinMarketCap        float64 `json:"altcoin_market_cap"`
				AltcoinVolume24h        float64 `json:"altcoin_volume_24h"`
				DefiMarketCap           float64 `json:"defi_market_cap"`
				DefiVolume24h           float64 `json:"defi_volume_24h"`
				StablecoinMarketCap     float64 `json:"stablecoin_market_cap"`
				StablecoinVolume24h     float64 `json:"stablecoin_volume_24h"`
			} `json:"quote"`
		} `json:"data"`
	}
	err := c.get(ctx, "/v1/global-metrics/quotes/latest", map[string]string{
		"convert": "USD",
	}, &payload)
	if err != nil {
		return nil, err
	}

	usd := payload.Data.Quote["USD"]
	return &GlobalMetrics{
		TotalMarketCap:          decimal.NewFromFloat(usd.TotalMarketCap),
		TotalVolume24h:          decimal.NewFromFloat(usd.TotalVolume24h),
		TotalMarketCapYesterday: decimal.NewFromFloat(usd.TotalMarketCapYesterday),
		TotalVolume24hYesterday: decimal.NewFromFloat(usd.TotalVolume24hYesterday),
		BitcoinDominance:        payload.Data.BTCDominance,
		EthereumDominance:       payload.Data.ETHDominance,
		ActiveCryptocurrencies:  payload.Data.ActiveCryptocurrencies,
		ActiveExchanges:         payload.Data.ActiveExchanges,
		AltcoinMarketCap:        decimal.NewFromFloat(usd.AltcoinMarketCap),
		AltcoinVolume24h:        decimal.NewFromFloat(usd.AltcoinVolume24h),
		DefiMarketCap:           decimal.NewFromFloat(usd.DefiMarketCap),
		DefiVolume24h:           decimal.NewFromFloat(usd.DefiVolume24h),
		StablecoinMarketCap:     decimal.NewFromFloat(usd.StablecoinMarketCap),
		StablecoinVolume24h:     decimal.NewFromFloat(usd.StablecoinVolume24h),
		LastUpdated:             payload.Data.LastUpdated,
	}, nil
}

// Trending fetches the currently trending assets.
func (c *CMCClient) Trending(ctx context.Context, limit int) ([]*TrendingCoin, error) {
	if limit <= 0 {
		limit = 10
	}

	var payload struct {
		Data []struct {
			Name    string `json:"name"`
			Symbol  string `json:"symbol"`
			CMCRank int    `json:"cmc_rank"`
		} `json:"data"`
	}
	err := c.get(ctx, "/v1/cryptocurrency/trending/latest", map[string]string{
		"limit": strconv.Itoa(limit),
	}, &payload)
	if err != nil {
		return nil, err
	}

	coins := make([]*TrendingCoin, 0, len(payload.Data))
	for _, entry := range payload.Data {
		coins = append(coins, &TrendingCoin{
			Symbol: strings.ToUpper(entry.Symbol),
			Name:   entry.Name,
			Rank:   entry.CMCRank,
		})
	}
	return coins, nil
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func parseProviderTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
