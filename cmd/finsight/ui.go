package main

import (
	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/tui"
	"github.com/Veraticus/finsight/internal/tui/themes"
	"github.com/spf13/cobra"
)

func uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui [file.csv]",
		Short: "Open the interactive analysis screen",
		Long: `Open the FinSight terminal interface. Choose a CSV of daily stock prices,
submit it for analysis and review the risk card and charts.

When a file is given it is preselected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUI,
	}
}

func runUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	opts := []tui.Option{
		tui.WithAnalyzer(analyzer),
		tui.WithTheme(themes.GetTheme(settings.Theme)),
	}
	if history := historyStore(store); history != nil {
		opts = append(opts, tui.WithHistory(history, settings.HistoryLimit))
	}
	if len(args) == 1 {
		opts = append(opts, tui.WithInitialFile(args[0]))
	}

	common.LogInfo("Starting interactive session", common.Fields{
		"api":     analyzer.BaseURL(),
		"history": settings.HistoryEnabled,
	})

	return tui.Run(ctx, opts...)
}
