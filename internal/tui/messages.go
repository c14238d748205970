package tui

import "github.com/Veraticus/finsight/internal/model"

// fileLoadedMsg carries a file read from disk for the upload surface.
type fileLoadedMsg struct {
	err  error
	file model.UploadedFile
}

// analysisCompletedMsg carries the outcome of the single in-flight exchange.
type analysisCompletedMsg struct {
	err    error
	file   model.UploadedFile
	result model.AnalysisResult
}

// historyLoadedMsg carries recent analyses for the idle screen.
type historyLoadedMsg struct {
	err     error
	records []model.AnalysisRecord
}
