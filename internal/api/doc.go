// Package api implements the client for the remote stock analysis service.
//
// A client performs exactly one multipart POST per Analyze call and maps every
// outcome onto either a model.AnalysisResult or an *AnalysisError. It never retries
// and sets no timeout of its own; cancellation comes only from the caller's context.
package api
