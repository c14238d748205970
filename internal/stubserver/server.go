// Package stubserver serves a local stand-in for the remote analysis endpoint.
// It classifies uploads by the volatility of daily returns so the client can
// be exercised end to end without the real model.
package stubserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/finsight/internal/api"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/gin-gonic/gin"
)

// DefaultFeatures is the feature list reported with every result.
var DefaultFeatures = []string{
	"daily_return",
	"volatility_20d",
	"rsi_14",
	"macd",
	"moving_avg_50",
	"volume_change",
	"bollinger_width",
}

// MaxUploadBytes bounds the multipart form kept in memory.
const MaxUploadBytes = 32 << 20

const shutdownTimeout = 5 * time.Second

// Server answers analysis requests.
type Server struct {
	features []string
}

// Option configures a Server.
type Option func(*Server)

// WithFeatures overrides the reported feature list.
func WithFeatures(features []string) Option {
	return func(s *Server) {
		s.features = append([]string(nil), features...)
	}
}

// New creates a Server.
func New(opts ...Option) *Server {
	s := &Server{features: DefaultFeatures}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router constructs the gin engine with middleware and routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.MaxMultipartMemory = MaxUploadBytes

	r.Use(
		RequestID(),
		Logging(),
		Recovery(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST(api.AnalyzePath, s.analyze)

	return r
}

func (s *Server) analyze(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "missing file")
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unreadable file")
		return
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close upload", "error", cerr)
		}
	}()

	closes, err := ReadCloses(f)
	switch {
	case errors.Is(err, ErrInvalidColumns):
		respondError(c, http.StatusBadRequest, ErrInvalidColumns.Error())
		return
	case err != nil:
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	volatility := DailyReturnVolatility(closes)
	level := Classify(volatility)

	slog.Info("Classified upload",
		"request_id", RequestIDFromContext(c),
		"file", fh.Filename,
		"rows", len(closes),
		"volatility", volatility,
		"risk_level", string(level))

	c.JSON(http.StatusOK, model.AnalysisResult{
		RiskLevel:    level,
		FeaturesUsed: s.features,
	})
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Stub analysis server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("stub server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("stub server shutdown: %w", err)
	}
	return nil
}
