package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/finsight/internal/api"
	"github.com/Veraticus/finsight/internal/cli"
	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/service"
	"github.com/Veraticus/finsight/internal/session"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file.csv>",
		Short: "Analyze a CSV of stock prices once",
		Long: `Upload a CSV with Date, Open, High, Low, Close and Volume columns to the
analysis service and print the reported risk level.

The exit status is non-zero when the analysis fails.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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

	return analyzeFile(ctx, args[0], analyzer, historyStore(store), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// analyzeFile runs one upload/result exchange for path and prints the outcome
// to out. Read progress is drawn on progress. history may be nil.
func analyzeFile(ctx context.Context, path string, analyzer api.Analyzer, history service.HistoryStore, out, progress io.Writer) error {
	file, err := cli.LoadWithProgress(path, progress)
	if err != nil {
		return common.NewUserError("Could not read file", err)
	}

	controller := session.NewController()
	if !controller.Select(file) {
		return common.NewUserError("Only CSV files can be analyzed", fmt.Errorf("%w: %s", common.ErrNotCSV, file.Name))
	}

	notification, ok := controller.Run(ctx, analyzer)
	if !ok {
		return fmt.Errorf("analysis of %s was not submitted", file.Name)
	}

	state := controller.State()
	record := model.NewAnalysisRecord(file, state.Result, state.Error)
	if history != nil {
		if err := history.SaveAnalysis(ctx, &record); err != nil {
			common.LogError(err, "Failed to record analysis", common.Fields{"file": file.Name})
		}
	}

	if state.Status != session.StatusSuccess {
		if err := cli.RenderFailure(out, file, state.Error); err != nil {
			return err
		}
		return fmt.Errorf("%s: %s", notification.Title, notification.Description)
	}

	return cli.RenderResult(out, file, *state.Result)
}
