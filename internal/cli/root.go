package cli

import (
	"fmt"
	"os"

	"github.com/jengzang/tour-planner-go/internal/config"
	"github.com/jengzang/tour-planner-go/internal/logging"
	"github.com/jengzang/tour-planner-go/internal/provider"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tour-planner",
	Short: "Trip planning backend: itineraries, transit routes and forecasts.",
	Long: `tour-planner serves the trip planning API: day-by-day itineraries, transit route
search between picked places, per-leg fare estimates, weather forecasts and the
community board.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "loglevel", "l", "", "override log level: debug, info, warn, error")
}

// bootstrap loads the configuration and builds the logger every command runs with
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, err := logging.New(cfg.LogLevel, cfg.DevLog)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func providerOptions(cfg *config.Config) provider.ClientOptions {
	return provider.ClientOptions{RetryMax: cfg.RetryMax, Timeout: cfg.HTTPTimeout}
}
