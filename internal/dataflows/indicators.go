package dataflows

import (
	"fmt"
	"strings"

	talib "github.com/markcheno/go-talib"
)

// indicatorDescriptions explain the indicators included in the report text.
var indicatorDescriptions = map[string]string{
	"rsi":           "RSI: Relative Strength Index measures momentum. Values above 70 indicate overbought, below 30 indicate oversold.",
	"macd":          "MACD: Moving Average Convergence Divergence shows trend changes through the relationship between two moving averages.",
	"boll":          "Bollinger Bands: Middle band (20-day SMA) with upper/lower bands showing volatility.",
	"atr":           "ATR: Average True Range measures volatility. Higher values indicate higher volatility.",
	"close_50_sma":  "50-day Simple Moving Average: Medium-term trend indicator.",
	"close_200_sma": "200-day Simple Moving Average: Long-term trend indicator.",
}

// TechnicalIndicators computes the standard indicator set over a daily OHLCV
// series and renders it as a report section. The series must be ordered by
// date; short series yield whatever indicators have enough data.
func TechnicalIndicators(symbol string, series []*OHLCV) string {
	if len(series) == 0 {
		return fmt.Sprintf("No price data available for %s to calculate indicators", symbol)
	}

	closes := make([]float64, len(series))
	highs := make([]float64, len(series))
	lows := make([]float64, len(series))
	for i, bar := range series {
		closes[i], _ = bar.Close.Float64()
		highs[i], _ = bar.High.Float64()
		lows[i], _ = bar.Low.Float64()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Technical Indicators for %s\n\n", symbol)

	appendSeries := func(name string, values []float64) {
		last := lastValid(values)
		if last < 0 {
			return
		}
		fmt.Fprintf(&b, "- %s (%s): %.4f\n", name, series[last].Date.Format("2006-01-02"), values[last])
	}

	if len(closes) >= 15 {
		appendSeries("rsi", talib.Rsi(closes, 14))
	}
	if len(closes) >= 34 {
		macd, signal, hist := talib.Macd(closes, 12, 26, 9)
		appendSeries("macd", macd)
		appendSeries("macds", signal)
		appendSeries("macdh", hist)
	}
	if len(closes) >= 20 {
		upper, middle, lower := talib.BBands(closes, 20, 2, 2, talib.SMA)
		appendSeries("boll_ub", upper)
		appendSeries("boll", middle)
		appendSeries("boll_lb", lower)
	}
	if len(closes) >= 15 {
		appendSeries("atr", talib.Atr(highs, lows, closes, 14))
	}
	if len(closes) >= 50 {
		appendSeries("close_50_sma", talib.Sma(closes, 50))
	}
	if len(closes) >= 200 {
		appendSeries("close_200_sma", talib.Sma(closes, 200))
	}

	b.WriteString("\n")
	for _, name := range []string{"rsi", "macd", "boll", "atr", "close_50_sma", "close_200_sma"} {
		fmt.Fprintf(&b, "%s\n", indicatorDescriptions[name])
	}
	return b.String()
}

// CorrelationReport renders pairwise price correlations for the given close
// series, keyed by symbol.
func CorrelationReport(symbols []string, closesBySymbol map[string][]float64, period string) string {
	available := 0
	for _, symbol := range symbols {
		if len(closesBySymbol[symbol]) > 1 {
			available++
		}
	}
	if available < 2 {
		return "Not enough data to calculate correlations"
	}

	var b strings.Builder
	b.WriteString("## Cryptocurrency Correlation Analysis\n")
	fmt.Fprintf(&b, "Period: %s\n\n", period)
	b.WriteString("### Key Findings\n")

	for i := 0; i < len(symbols); i++ {
		for j := i + 1; j < len(symbols); j++ {
			x, y := closesBySymbol[symbols[i]], closesBySymbol[symbols[j]]
			n := len(x)
			if len(y) < n {
				n = len(y)
			}
			if n < 2 {
				continue
			}
			corr := talib.Correl(x[len(x)-n:], y[len(y)-n:], n)
			value := corr[len(corr)-1]
			fmt.Fprintf(&b, "- %s/%s: %.3f\n", symbols[i], symbols[j], value)
		}
	}

	b.WriteString("\n### Interpretation\n")
	b.WriteString("- Values close to 1: Strong positive correlation\n")
	b.WriteString("- Values close to -1: Strong negative correlation\n")
	b.WriteString("- Values close to 0: Little to no correlation\n")
	return b.String()
}

func lastValid(values []float64) int {
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] != 0 {
			return i
		}
	}
	return -1
}
