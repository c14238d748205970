package main

import (
	"fmt"

	"github.com/Veraticus/finsight/internal/cli"
	"github.com/Veraticus/finsight/internal/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent analyses",
		Long: `Show the most recent analyses recorded in the local history database,
newest first. Both successful and failed analyses are recorded.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "number of analyses to show")
	cmd.Flags().Bool("clear", false, "delete all recorded analyses")

	_ = viper.BindPFlag("history.list_limit", cmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("history.clear", cmd.Flags().Lookup("clear"))

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if !settings.HistoryEnabled {
		return common.NewUserError("History is disabled", fmt.Errorf("%w: history.enabled is false", common.ErrInvalidConfig))
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	out := cmd.OutOrStdout()

	if viper.GetBool("history.clear") {
		removed, err := store.ClearAnalyses(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Removed %d analyses", removed)))
		return err
	}

	limit := viper.GetInt("history.list_limit")
	if limit <= 0 {
		return common.NewUserError("--limit must be positive", fmt.Errorf("%w: limit %d", common.ErrInvalidConfig, limit))
	}

	records, err := store.ListAnalyses(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	return cli.RenderHistory(out, records)
}
