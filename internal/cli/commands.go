package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cryptoagents/config"
	"cryptoagents/internal/graph"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "cryptoagents",
		Short: "CryptoAgents - AI-Powered Crypto Trading Analysis",
		Long: `CryptoAgents is a multi-agent cryptocurrency analysis system powered by Large Language Models.
It runs a fixed pipeline of analyst, researcher and risk-management agents over live market data
and produces a BUY/SELL/HOLD recommendation with full supporting reports.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveMode(cfg)
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(cfg))
	rootCmd.AddCommand(newBatchCmd(cfg))
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")

	return rootCmd
}

func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [SYMBOL]",
		Short: "Run trading analysis for a cryptocurrency",
		Long: `Run the full agent pipeline for a given cryptocurrency symbol.
Example: cryptoagents analyze BTC --date=2024-12-11`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			return runAnalyzeCommand(cfg, args[0], date)
		},
	}

	cmd.Flags().String("date", "", "Analysis date in YYYY-MM-DD format (today if not provided)")

	return cmd
}

func newBatchCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [SYMBOL...]",
		Short: "Analyze multiple cryptocurrencies in one run",
		Long: `Run the full agent pipeline for several symbols sequentially. A failed symbol
does not stop the batch; it is reported as ERROR in the summary.
Example: cryptoagents batch BTC ETH SOL --date=2024-12-11`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			return runBatchCommand(cfg, args, date)
		},
	}

	cmd.Flags().String("date", "", "Analysis date in YYYY-MM-DD format (today if not provided)")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("CryptoAgents v1.0.0")
			fmt.Println("AI-Powered Cryptocurrency Trading Analysis")
		},
	}
}

func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cfg)
		},
	})

	return configCmd
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func runAnalyzeCommand(cfg *config.Config, symbol, date string) error {
	ctx := context.Background()
	logger := newLogger(cfg)

	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	g, err := graph.NewTradingAgentsGraph(ctx, cfg, logger)
	if err != nil {
		return err
	}

	fmt.Println(renderAnalysisHeader(symbol, date))
	result, err := g.Analyze(ctx, symbol, date)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Println(RenderResult(result))

	path, err := WriteReport(cfg.ResultsDir, result)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to write report file")
	} else {
		fmt.Println(pathStyle.Render("Report saved to " + path))
	}
	return nil
}

func runBatchCommand(cfg *config.Config, symbols []string, date string) error {
	ctx := context.Background()
	logger := newLogger(cfg)

	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	g, err := graph.NewTradingAgentsGraph(ctx, cfg, logger)
	if err != nil {
		return err
	}

	fmt.Println(renderAnalysisHeader(strings.Join(symbols, ", "), date))
	results := g.AnalyzeBatch(ctx, symbols, date)

	for _, result := range results {
		if result.Error != "" {
			continue
		}
		if path, err := WriteReport(cfg.ResultsDir, result); err != nil {
			logger.Warn().Err(err).Str("symbol", result.Crypto).Msg("failed to write report file")
		} else {
			logger.Info().Str("symbol", result.Crypto).Str("path", path).Msg("report saved")
		}
	}

	fmt.Println(RenderBatchSummary(results))
	return nil
}

func showConfig(cfg *config.Config) {
	fmt.Println("Current CryptoAgents Configuration:")
	fmt.Println("===================================")
	fmt.Printf("Project Directory:    %s\n", cfg.ProjectDir)
	fmt.Printf("Results Directory:    %s\n", cfg.ResultsDir)
	fmt.Println()
	fmt.Printf("LLM Provider:         %s\n", cfg.LLMProvider)
	fmt.Printf("Deep Think Model:     %s\n", cfg.DeepThinkLLM)
	fmt.Printf("Quick Think Model:    %s\n", cfg.QuickThinkLLM)
	fmt.Printf("Backend URL:          %s\n", cfg.BackendURL)
	fmt.Println()
	fmt.Printf("Online Tools:         %t\n", cfg.OnlineTools)
	fmt.Printf("Sandbox API:          %t\n", cfg.UseSandbox)
	fmt.Printf("Request Interval:     %s\n", cfg.RequestInterval)
	fmt.Printf("Lookback Days:        %d\n", cfg.DefaultLookbackDays)
	fmt.Printf("Debug Mode:           %t\n", cfg.Debug)
	fmt.Println()

	fmt.Println("API Configuration:")
	fmt.Println("------------------")
	printKeyStatus("OpenAI API", cfg.OpenAIAPIKey)
	printKeyStatus("DeepSeek API", cfg.DeepSeekAPIKey)
	printKeyStatus("CoinMarketCap API", cfg.CoinMarketCapAPIKey)
}

func printKeyStatus(name, key string) {
	status := "not configured"
	if key != "" {
		status = "configured"
	}
	fmt.Printf("%-22s%s\n", name+":", status)
}

func validateConfig(cfg *config.Config) error {
	fmt.Println("Validating CryptoAgents configuration...")

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("directory validation failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Println("Configuration is valid.")
	return nil
}

// runInteractiveMode prompts for a symbol and date in a loop.
func runInteractiveMode(cfg *config.Config) error {
	fmt.Println(renderWelcomeBanner())

	for {
		symbol, err := PromptForSymbol(cfg)
		if err != nil {
			return err
		}
		if symbol == "" {
			fmt.Println("Goodbye!")
			return nil
		}

		date, err := PromptForDate()
		if err != nil {
			return err
		}

		if err := runAnalyzeCommand(cfg, symbol, date); err != nil {
			fmt.Println(errorStyle.Render("Analysis failed: " + err.Error()))
		}

		again, err := PromptForAnother()
		if err != nil || !again {
			fmt.Println("Goodbye!")
			return err
		}
	}
}
