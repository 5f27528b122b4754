package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/config"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/logging"
)

var (
	// Global flags
	cfgFile  string
	logLevel string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "fabrica",
	Short: "Fabrica Alfa: production statistics service and CLI",
	Long: `fabrica loads factory production spreadsheets (CSV or XLSX) and computes
descriptive statistics, distributions, confidence intervals, t-tests, ANOVA,
correlation and regression, over an HTTP API or an interactive menu.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.fabrica/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands that need config report it themselves
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
	if rootCmd.PersistentFlags().Changed("log-level") && logLevel != "" {
		cfg.LogLevel = logLevel
	}
}

// requireConfig returns the loaded config or the load error.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

func newLogger(c *cfgpkg.Global) (*zap.Logger, error) {
	return logging.New(logging.Options{Level: c.LogLevel, File: c.LogFile})
}
