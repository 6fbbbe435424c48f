package config

import (
	"testing"
	"time"
)

func TestValidateRequiresSecrets(t *testing.T) {
	cfg := &Config{LLMProvider: "openai"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error with no keys set")
	}

	cfg.OpenAIAPIKey = "sk-test"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error without CoinMarketCap key")
	}

	cfg.CoinMarketCapAPIKey = "cmc-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateDeepSeekProvider(t *testing.T) {
	cfg := &Config{
		LLMProvider:         "deepseek",
		OpenAIAPIKey:        "sk-test",
		CoinMarketCapAPIKey: "cmc-test",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("deepseek provider should require DEEPSEEK_API_KEY")
	}

	cfg.DeepSeekAPIKey = "ds-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestIsSupportedCrypto(t *testing.T) {
	cfg := &Config{SupportedCryptos: []string{"BTC", "ETH"}}

	if !cfg.IsSupportedCrypto("btc") {
		t.Fatalf("btc should be supported regardless of case")
	}
	if !cfg.IsSupportedCrypto(" ETH ") {
		t.Fatalf("symbol should be trimmed before lookup")
	}
	if cfg.IsSupportedCrypto("ZZZ999") {
		t.Fatalf("ZZZ999 should not be supported")
	}
}

func TestDefaultConfigRequestInterval(t *testing.T) {
	t.Setenv("CMC_REQUEST_INTERVAL_MS", "250")
	cfg := DefaultConfig()
	if cfg.RequestInterval != 250*time.Millisecond {
		t.Fatalf("expected 250ms interval, got %v", cfg.RequestInterval)
	}
}
