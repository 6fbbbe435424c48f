package agents

// Stage names, in pipeline order.
const (
	MarketAnalyst       = "market_analyst"
	FundamentalsAnalyst = "fundamentals_analyst"
	NewsAnalyst         = "news_analyst"
	SocialAnalyst       = "social_analyst"
	ResearchManager     = "research_manager"
	BullResearcher      = "bull_researcher"
	BearResearcher      = "bear_researcher"
	Trader              = "trader"
	RiskManager         = "risk_manager"
)

// Capability identifies one data-gathering tool a stage may use.
type Capability string

const (
	CapPriceWindow     Capability = "get_crypto_price_data_window"
	CapIndicators      Capability = "get_crypto_technical_indicators"
	CapCorrelation     Capability = "get_crypto_correlation_analysis"
	CapFundamentals    Capability = "get_crypto_fundamentals_report"
	CapSentiment       Capability = "get_crypto_market_sentiment"
	CapMarketOverview  Capability = "get_crypto_market_overview"
	CapNewsSearch      Capability = "get_crypto_news_openai"
	CapCryptoNews      Capability = "get_crypto_news"
	CapGoogleNews      Capability = "get_google_news"
	CapSocialSearch    Capability = "get_crypto_social_sentiment_openai"
	CapRedditSentiment Capability = "get_reddit_crypto_sentiment"
)

type toolAssignment struct {
	online  []Capability
	offline []Capability
}

// toolTable assigns capabilities per stage and mode. Downstream stages reason
// over the analyst reports and carry no tools of their own.
var toolTable = map[string]toolAssignment{
	MarketAnalyst: {
		online:  []Capability{CapPriceWindow, CapIndicators, CapCorrelation},
		offline: []Capability{CapPriceWindow, CapIndicators},
	},
	FundamentalsAnalyst: {
		online:  []Capability{CapFundamentals, CapSentiment, CapMarketOverview},
		offline: []Capability{CapFundamentals, CapSentiment},
	},
	NewsAnalyst: {
		online:  []Capability{CapNewsSearch, CapCryptoNews, CapMarketOverview},
		offline: []Capability{CapCryptoNews, CapGoogleNews, CapMarketOverview},
	},
	SocialAnalyst: {
		online:  []Capability{CapSocialSearch, CapRedditSentiment},
		offline: []Capability{CapRedditSentiment, CapGoogleNews},
	},
}

// CapabilitiesFor returns the tool list for a stage in the given mode. Stages
// without tools get an empty list; the lookup is total over the nine stages.
func CapabilitiesFor(stage string, online bool) []Capability {
	assignment, ok := toolTable[stage]
	if !ok {
		return nil
	}
	if online {
		return assignment.online
	}
	return assignment.offline
}

// Stages returns the nine pipeline stage names in execution order.
func Stages() []string {
	return []string{
		MarketAnalyst,
		FundamentalsAnalyst,
		NewsAnalyst,
		SocialAnalyst,
		ResearchManager,
		BullResearcher,
		BearResearcher,
		Trader,
		RiskManager,
	}
}
