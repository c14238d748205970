package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/finsight/internal/cli"
	"github.com/Veraticus/finsight/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the configuration file",
		Long: `Show the configuration FinSight resolved from defaults, config file,
environment and flags, or write a starter config file.`,
	}

	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configInitCmd())
	cmd.AddCommand(configPathCmd())

	return cmd
}

func configShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Example: `  finsight config show
  finsight config show --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := settings.File().Marshal(format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")

	return cmd
}

func configInitCmd() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default values",
		Example: `  finsight config init
  finsight config init --output ./config.yaml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outputPath == "" {
				outputPath = filepath.Join(config.Dir(), "config.yaml")
			}
			return writeSampleConfig(outputPath, force, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default: $HOME/.config/finsight/config.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := viper.ConfigFileUsed()
			if path == "" {
				path = "(none, using defaults)"
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func writeSampleConfig(path string, force bool, out io.Writer) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}

	content, err := config.SampleConfig()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Configuration file created at %s", path)))
	return err
}
