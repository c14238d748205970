package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	version  = "dev"
	settings config.Settings
	logFile  *os.File
	rootCmd  = &cobra.Command{
		Use:   "finsight",
		Short: "📈 Stock risk analysis from your terminal",
		Long: `FinSight uploads a CSV of daily stock prices to an analysis service and
shows the volatility risk it reports.

Run "finsight ui" for the interactive screen, or "finsight analyze prices.csv"
for a one-shot result.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/finsight/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", config.DefaultBaseURL, "analysis service base URL")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyAPIBaseURL, rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(uiCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(stubServerCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if logFile != nil {
		_ = logFile.Close()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.Dir())
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return common.NewUserError("Invalid configuration", err)
	}
	settings = loaded

	// The TUI owns the terminal, so its logs go to a file.
	var out io.Writer = os.Stderr
	if cmd.Name() == "ui" {
		f, err := openLogFile(settings.LogFile)
		if err != nil {
			return err
		}
		logFile = f
		out = f
	}

	if err := setupLogging(out); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging(w io.Writer) error {
	level, err := common.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	return common.SetupLogger(w, level, settings.LogFormat)
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingConfig, config.KeyLogFile)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	// #nosec G304 - path comes from configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			slog.Info("finsight version", "version", version)
		},
	}
}
