package dataflows

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownSymbol means the symbol is absent from the provider catalog
	// after the symbol map has been populated.
	ErrUnknownSymbol = errors.New("symbol not found in CoinMarketCap")

	// ErrProviderRequest wraps network and HTTP failures from the data provider.
	ErrProviderRequest = errors.New("provider request failed")
)

// OHLCV is one calendar day of price data for one asset.
type OHLCV struct {
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
	MarketCap decimal.Decimal `json:"market_cap"`
}

// QuoteSnapshot is the latest quote for one asset.
type QuoteSnapshot struct {
	Symbol                string          `json:"symbol"`
	Price                 decimal.Decimal `json:"price"`
	PercentChange24h      float64         `json:"percent_change_24h"`
	PercentChange7d       float64         `json:"percent_change_7d"`
	PercentChange30d      float64         `json:"percent_change_30d"`
	MarketCap             decimal.Decimal `json:"market_cap"`
	Volume24h             decimal.Decimal `json:"volume_24h"`
	MarketCapDominance    float64         `json:"market_cap_dominance"`
	FullyDilutedMarketCap decimal.Decimal `json:"fully_diluted_market_cap"`
	CirculatingSupply     float64         `json:"circulating_supply"`
	TotalSupply           float64         `json:"total_supply"`
	MaxSupply             float64         `json:"max_supply"`
}

// Platform identifies the chain a token lives on, nil for native coins.
type Platform struct {
	Name         string `json:"name"`
	TokenAddress string `json:"token_address"`
}

// AssetInfo is descriptive metadata for one asset.
type AssetInfo struct {
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Website      string    `json:"website"`
	TechnicalDoc string    `json:"technical_doc"`
	Tags         []string  `json:"tags"`
	Platform     *Platform `json:"platform,omitempty"`
	DateAdded    string    `json:"date_added"`
}

// GlobalMetrics is the global crypto market snapshot.
type GlobalMetrics struct {
	TotalMarketCap          decimal.Decimal `json:"total_market_cap"`
	TotalVolume24h          decimal.Decimal `json:"total_volume_24h"`
	TotalMarketCapYesterday decimal.Decimal `json:"total_market_cap_yesterday"`
	TotalVolume24hYesterday decimal.Decimal `json:"total_volume_24h_yesterday"`
	BitcoinDominance        float64         `json:"btc_dominance"`
	EthereumDominance       float64         `json:"eth_dominance"`
	ActiveCryptocurrencies  int             `json:"active_cryptocurrencies"`
	ActiveExchanges         int             `json:"active_exchanges"`
	AltcoinMarketCap        decimal.Decimal `json:"altcoin_market_cap"`
	AltcoinVolume24h        decimal.Decimal `json:"altcoin_volume_24h"`
	DefiMarketCap           decimal.Decimal `json:"defi_market_cap"`
	DefiVolume24h           decimal.Decimal `json:"defi_volume_24h"`
	StablecoinMarketCap     decimal.Decimal `json:"stablecoin_market_cap"`
	StablecoinVolume24h     decimal.Decimal `json:"stablecoin_volume_24h"`
	LastUpdated             string          `json:"last_updated"`
}

// TrendingCoin is one entry from the trending listing.
type TrendingCoin struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Rank   int    `json:"rank"`
}

// NewsArticle represents one scraped news item.
type NewsArticle struct {
	Title       string    `json:"title"`
	Snippet     string    `json:"snippet"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}
