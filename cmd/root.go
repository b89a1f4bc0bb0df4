package cmd

import (
	"fmt"
	"os"
	"time"

	cfgpkg "github.com/KaramelBytes/pipeview/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags (override config when set)
	cfgFile        string
	debug          bool
	flagSource     string
	flagEncoding   string
	flagThreshold  int
	flagDemo       bool
	flagNoFallback bool
	flagHTTPSec    int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "pipeview",
	Short: "Pipeline snapshot of stalled deals from a leads CSV",
	Long: `pipeview loads lead records from a CSV file or URL (or a reproducible demo set),
filters them, flags deals stalled in open stages and exports the filtered view.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default is ~/.pipeview/config.yaml)")
	f.BoolVar(&debug, "debug", false, "enable debug logging")
	f.StringVar(&flagSource, "source", "", "leads CSV path or http(s) URL (overrides config)")
	f.StringVar(&flagEncoding, "encoding", "", "input charset: utf-8 | windows-1251 | windows-1252 | latin1 (overrides config)")
	f.IntVar(&flagThreshold, "threshold", 0, "stalled threshold in days (overrides config)")
	f.BoolVar(&flagDemo, "demo", false, "use the synthetic demo data set instead of the source")
	f.BoolVar(&flagNoFallback, "no-fallback", false, "fail instead of falling back to demo data when the source is unavailable")
	f.IntVar(&flagHTTPSec, "http-timeout", 0, "HTTP fetch timeout in seconds (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{Source: "data/leads.csv", StalledThreshold: 7, DemoCount: 88, PageSize: 25}
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("source") && flagSource != "" {
		cfg.Source = flagSource
	}
	if f.Changed("encoding") && flagEncoding != "" {
		cfg.Encoding = flagEncoding
	}
	if f.Changed("threshold") {
		cfg.StalledThreshold = flagThreshold
	}
	if f.Changed("http-timeout") && flagHTTPSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPSec
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to build logger: %v\n", err)
		return
	}
	zap.ReplaceGlobals(logger)
}

func newLogger(level, format string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	switch format {
	case "json":
	case "", "console":
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	default:
		return nil, fmt.Errorf("unknown log format: %s (use console or json)", format)
	}
	return zc.Build()
}
