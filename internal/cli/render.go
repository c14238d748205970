package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/tui/components"
	"github.com/Veraticus/finsight/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// RenderResult writes the risk card for a finished analysis.
func RenderResult(w io.Writer, file model.UploadedFile, result model.AnalysisResult) error {
	card := components.NewRiskCard(result, themes.Default)
	card.Resize(72)

	out := lipgloss.JoinVertical(
		lipgloss.Left,
		FormatTitle("Analysis Results"),
		SubtleStyle.Render(fmt.Sprintf("%s %s (%s)", FileIcon, file.Name, file.SizeKB())),
		card.View(),
	)

	_, err := fmt.Fprintln(w, out)
	return err
}

// RenderFailure writes the message for a failed analysis.
func RenderFailure(w io.Writer, file model.UploadedFile, message string) error {
	out := lipgloss.JoinVertical(
		lipgloss.Left,
		FormatError("Analysis Failed"),
		SubtleStyle.Render(fmt.Sprintf("%s %s (%s)", FileIcon, file.Name, file.SizeKB())),
		message,
	)

	_, err := fmt.Fprintln(w, out)
	return err
}

// RenderHistory writes recent analyses as a table, newest first.
func RenderHistory(w io.Writer, records []model.AnalysisRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No analyses recorded yet"))
		return err
	}

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		TableHeaderStyle.Width(18).Render("WHEN"),
		TableHeaderStyle.Width(30).Render("FILE"),
		TableHeaderStyle.Width(10).Render("SIZE"),
		TableHeaderStyle.Render("OUTCOME"),
	)

	rows := []string{header}
	for _, r := range records {
		rows = append(rows, lipgloss.JoinHorizontal(
			lipgloss.Top,
			TableCellStyle.Width(18).Render(r.CreatedAt.Local().Format("2006-01-02 15:04")),
			TableCellStyle.Width(30).Render(r.FileName),
			TableCellStyle.Width(10).Render(fmt.Sprintf("%.1f KB", float64(r.FileSize)/1024)),
			outcome(r),
		))
	}

	_, err := fmt.Fprintln(w, strings.Join(rows, "\n"))
	return err
}

func outcome(r model.AnalysisRecord) string {
	if r.Succeeded() {
		return RiskStyle(r.RiskLevel).Render(r.RiskLevel.Upper())
	}
	return ErrorStyle.Render(ErrorIcon + " " + r.ErrorMessage)
}
