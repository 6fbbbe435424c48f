package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectDir string `json:"project_dir"`
	ResultsDir string `json:"results_dir"`

	LLMProvider   string `json:"llm_provider"`
	DeepThinkLLM  string `json:"deep_think_llm"`
	QuickThinkLLM string `json:"quick_think_llm"`
	BackendURL    string `json:"backend_url"`

	OnlineTools bool `json:"online_tools"`
	Debug       bool `json:"debug"`

	// AI model API keys
	OpenAIAPIKey   string `json:"openai_api_key"`
	DeepSeekAPIKey string `json:"deepseek_api_key"`

	// CoinMarketCap configuration
	CoinMarketCapAPIKey string        `json:"coinmarketcap_api_key"`
	UseSandbox          bool          `json:"use_sandbox"`
	RequestInterval     time.Duration `json:"request_interval"`

	// Data fetching parameters
	DefaultLookbackDays int `json:"default_lookback_days"`

	SupportedCryptos []string `json:"supported_cryptos"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		ProjectDir: currentDir,
		ResultsDir: filepath.Join(currentDir, "results"),

		LLMProvider:   "openai",
		DeepThinkLLM:  "o4-mini",
		QuickThinkLLM: "gpt-4o-mini",
		BackendURL:    "",

		OnlineTools: true,
		Debug:       false,

		UseSandbox:      false,
		RequestInterval: 100 * time.Millisecond,

		DefaultLookbackDays: 30,

		SupportedCryptos: []string{
			"BTC", "ETH", "BNB", "XRP", "ADA", "SOL", "DOGE", "DOT", "MATIC", "AVAX",
			"LINK", "UNI", "ATOM", "LTC", "ETC", "XLM", "ALGO", "VET", "FIL", "AAVE",
		},
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("PROJECT_DIR"); val != "" {
		c.ProjectDir = val
	}
	if val := os.Getenv("RESULTS_DIR"); val != "" {
		c.ResultsDir = val
	}

	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("DEEP_THINK_LLM"); val != "" {
		c.DeepThinkLLM = val
	}
	if val := os.Getenv("QUICK_THINK_LLM"); val != "" {
		c.QuickThinkLLM = val
	}
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}

	if val := os.Getenv("ONLINE_TOOLS"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.OnlineTools = enabled
		}
	}
	if val := os.Getenv("CRYPTOAGENTS_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}

	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}
	if val := os.Getenv("COINMARKETCAP_API_KEY"); val != "" {
		c.CoinMarketCapAPIKey = val
	}
	if val := os.Getenv("CMC_USE_SANDBOX"); val != "" {
		if sandbox, err := strconv.ParseBool(val); err == nil {
			c.UseSandbox = sandbox
		}
	}
	if val := os.Getenv("CMC_REQUEST_INTERVAL_MS"); val != "" {
		if ms, err := strconv.Atoi(val); err == nil && ms > 0 {
			c.RequestInterval = time.Duration(ms) * time.Millisecond
		}
	}
	if val := os.Getenv("DEFAULT_LOOKBACK_DAYS"); val != "" {
		if days, err := strconv.Atoi(val); err == nil && days > 0 {
			c.DefaultLookbackDays = days
		}
	}
}

// Validate checks that the secrets the pipeline cannot run without are present.
// Missing keys are a startup failure, not a per-call one.
func (c *Config) Validate() error {
	var missing []string

	switch c.LLMProvider {
	case "deepseek":
		if c.DeepSeekAPIKey == "" {
			missing = append(missing, "DEEPSEEK_API_KEY")
		}
	default:
		if c.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	}

	if c.CoinMarketCapAPIKey == "" {
		missing = append(missing, "COINMARKETCAP_API_KEY")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsSupportedCrypto reports whether a symbol is on the curated list. The list
// is advisory: unsupported symbols are warned about, not rejected.
func (c *Config) IsSupportedCrypto(symbol string) bool {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, s := range c.SupportedCryptos {
		if s == symbol {
			return true
		}
	}
	return false
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.ProjectDir, c.ResultsDir}
	for _, dir := range dirs {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}
