package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/finsight/internal/cli"
	"github.com/Veraticus/finsight/internal/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file.csv>",
		Short: "Re-analyze a CSV every time it changes",
		Long: `Analyze a CSV once, then keep watching it and submit it again whenever it
is saved. Only one analysis runs at a time. Press Ctrl+C to stop watching.

Examples:
  finsight watch prices.csv
  finsight watch --debounce 1s exports/AAPL.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "wait this long after the last change before submitting")
	_ = viper.BindPFlag("watch.debounce", cmd.Flags().Lookup("debounce"))

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), "Stopped watching")

	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	history := historyStore(store)
	out := cmd.OutOrStdout()

	w, err := watch.New(args[0], func(ctx context.Context, path string) error {
		_, _ = fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Analyzing %s at %s", path, time.Now().Format("15:04:05"))))
		return analyzeFile(ctx, path, analyzer, history, out, cmd.ErrOrStderr())
	}, watch.WithRunOnStart(), watch.WithDebounce(viper.GetDuration("watch.debounce")))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Watching %s", w.Path())))
	return w.Run(ctx)
}
