package dataflows

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Report formatters render typed records into the markdown-ish text the stage
// prompts embed. Layouts follow the provider-facing report sections the
// analysts expect.

// FormatPriceWindow renders a daily OHLCV series as a table.
func FormatPriceWindow(symbol string, start, end time.Time, series []*OHLCV) string {
	if len(series) == 0 {
		return fmt.Sprintf("No price data available for %s in the specified date range", symbol)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Cryptocurrency Market Data for %s from %s to %s:\n\n",
		symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	b.WriteString("Date        Open        High        Low         Close       Volume            Market Cap\n")
	for _, bar := range series {
		fmt.Fprintf(&b, "%s  %-10s  %-10s  %-10s  %-10s  %-16s  %s\n",
			bar.Date.Format("2006-01-02"),
			bar.Open.StringFixed(4),
			bar.High.StringFixed(4),
			bar.Low.StringFixed(4),
			bar.Close.StringFixed(4),
			bar.Volume.StringFixed(0),
			bar.MarketCap.StringFixed(0))
	}
	return b.String()
}

// FormatFundamentals renders asset metadata plus the latest quote as the
// fundamentals report section.
func FormatFundamentals(symbol string, info *AssetInfo, quote *QuoteSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s Cryptocurrency Fundamentals\n\n", symbol)

	b.WriteString("### Basic Information\n")
	if info != nil {
		fmt.Fprintf(&b, "- Name: %s\n", info.Name)
		fmt.Fprintf(&b, "- Symbol: %s\n", symbol)
		fmt.Fprintf(&b, "- Date Added: %s\n", info.DateAdded)
		if info.Website != "" {
			fmt.Fprintf(&b, "- Website: %s\n", info.Website)
		}
		if info.TechnicalDoc != "" {
			fmt.Fprintf(&b, "- Technical Documentation: %s\n", info.TechnicalDoc)
		}
		tags := "N/A"
		if len(info.Tags) > 0 {
			tags = strings.Join(info.Tags, ", ")
		}
		fmt.Fprintf(&b, "- Tags: %s\n\n", tags)
	}

	if quote != nil {
		b.WriteString("### Supply Metrics\n")
		fmt.Fprintf(&b, "- Circulating Supply: %.0f\n", quote.CirculatingSupply)
		fmt.Fprintf(&b, "- Total Supply: %.0f\n", quote.TotalSupply)
		if quote.MaxSupply > 0 {
			fmt.Fprintf(&b, "- Max Supply: %.0f\n\n", quote.MaxSupply)
		} else {
			b.WriteString("- Max Supply: Unlimited\n\n")
		}

		b.WriteString("### Valuation Metrics\n")
		fmt.Fprintf(&b, "- Current Price: $%s\n", quote.Price.StringFixed(4))
		fmt.Fprintf(&b, "- Market Cap: $%s\n", quote.MarketCap.StringFixed(0))
		fmt.Fprintf(&b, "- Fully Diluted Market Cap: $%s\n", quote.FullyDilutedMarketCap.StringFixed(0))
		fmt.Fprintf(&b, "- 24h Trading Volume: $%s\n\n", quote.Volume24h.StringFixed(0))
	}

	if info != nil && info.Platform != nil {
		b.WriteString("### Platform Information\n")
		fmt.Fprintf(&b, "- Platform: %s\n", info.Platform.Name)
		fmt.Fprintf(&b, "- Token Address: %s\n\n", info.Platform.TokenAddress)
	}

	if info != nil && info.Description != "" {
		b.WriteString("### Project Description\n")
		description := info.Description
		if len(description) > 500 {
			description = description[:500] + "..."
		}
		fmt.Fprintf(&b, "%s\n", description)
	}

	return b.String()
}

// FormatMarketSentiment renders price performance and market position for one
// asset against the global market context.
func FormatMarketSentiment(symbol string, quote *QuoteSnapshot, metrics *GlobalMetrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s Market Sentiment Analysis\n\n", symbol)

	if quote != nil {
		b.WriteString("### Price Performance\n")
		fmt.Fprintf(&b, "- 24h Change: %.2f%%\n", quote.PercentChange24h)
		fmt.Fprintf(&b, "- 7d Change: %.2f%%\n", quote.PercentChange7d)
		fmt.Fprintf(&b, "- 30d Change: %.2f%%\n\n", quote.PercentChange30d)

		b.WriteString("### Market Position\n")
		fmt.Fprintf(&b, "- Market Cap: $%s\n", quote.MarketCap.StringFixed(0))
		fmt.Fprintf(&b, "- 24h Volume: $%s\n", quote.Volume24h.StringFixed(0))
		fmt.Fprintf(&b, "- Market Cap Dominance: %.2f%%\n\n", quote.MarketCapDominance)
	}

	if metrics != nil {
		b.WriteString("### Global Crypto Market Context\n")
		fmt.Fprintf(&b, "- Total Market Cap: $%s\n", metrics.TotalMarketCap.StringFixed(0))
		fmt.Fprintf(&b, "- Bitcoin Dominance: %.2f%%\n", metrics.BitcoinDominance)
		fmt.Fprintf(&b, "- Total 24h Volume: $%s\n", metrics.TotalVolume24h.StringFixed(0))
		fmt.Fprintf(&b, "- DeFi Market Cap: $%s\n", metrics.DefiMarketCap.StringFixed(0))
	}

	return b.String()
}

// FormatMarketOverview renders the global market snapshot.
func FormatMarketOverview(metrics *GlobalMetrics) string {
	if metrics == nil {
		return "No global market data available"
	}

	var b strings.Builder
	b.WriteString("## Global Cryptocurrency Market Overview\n\n")

	b.WriteString("### Market Size\n")
	fmt.Fprintf(&b, "- Total Market Cap: $%s\n", metrics.TotalMarketCap.StringFixed(0))
	fmt.Fprintf(&b, "- 24h Trading Volume: $%s\n", metrics.TotalVolume24h.StringFixed(0))
	fmt.Fprintf(&b, "- Active Cryptocurrencies: %d\n", metrics.ActiveCryptocurrencies)
	fmt.Fprintf(&b, "- Active Exchanges: %d\n\n", metrics.ActiveExchanges)

	b.WriteString("### Market Dominance\n")
	fmt.Fprintf(&b, "- Bitcoin Dominance: %.2f%%\n", metrics.BitcoinDominance)
	fmt.Fprintf(&b, "- Ethereum Dominance: %.2f%%\n", metrics.EthereumDominance)
	fmt.Fprintf(&b, "- Altcoin Market Cap: $%s\n\n", metrics.AltcoinMarketCap.StringFixed(0))

	b.WriteString("### Sector Performance\n")
	fmt.Fprintf(&b, "- DeFi Market Cap: $%s\n", metrics.DefiMarketCap.StringFixed(0))
	fmt.Fprintf(&b, "- DeFi 24h Volume: $%s\n", metrics.DefiVolume24h.StringFixed(0))
	fmt.Fprintf(&b, "- Stablecoin Market Cap: $%s\n", metrics.StablecoinMarketCap.StringFixed(0))
	fmt.Fprintf(&b, "- Stablecoin 24h Volume: $%s\n\n", metrics.StablecoinVolume24h.StringFixed(0))

	b.WriteString("### 24h Market Changes\n")
	if !metrics.TotalMarketCapYesterday.IsZero() {
		change := metrics.TotalMarketCap.Sub(metrics.TotalMarketCapYesterday).
			Div(metrics.TotalMarketCapYesterday).Mul(hundred)
		fmt.Fprintf(&b, "- Market Cap Change: %s%%\n", change.StringFixed(2))
	}
	if !metrics.TotalVolume24hYesterday.IsZero() {
		change := metrics.TotalVolume24h.Sub(metrics.TotalVolume24hYesterday).
			Div(metrics.TotalVolume24hYesterday).Mul(hundred)
		fmt.Fprintf(&b, "- Volume Change: %s%%\n", change.StringFixed(2))
	}
	fmt.Fprintf(&b, "- Last Updated: %s\n", metrics.LastUpdated)

	return b.String()
}

// FormatNews renders scraped articles as a news report section. An empty
// result renders as empty text so the prompt carries no stale header.
func FormatNews(header string, from, to string, articles []*NewsArticle) string {
	if len(articles) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s, from %s to %s:\n\n", header, from, to)
	for _, article := range articles {
		fmt.Fprintf(&b, "### %s (source: %s) \n\n%s\n\n", article.Title, article.Source, article.Snippet)
	}
	return b.String()
}
