package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/Veraticus/finsight/internal/model"
)

// AnalyzePath is appended to the configured base URL.
const AnalyzePath = "/api/analyze"

// Analyzer submits a file for analysis.
type Analyzer interface {
	Analyze(ctx context.Context, file model.UploadedFile) (model.AnalysisResult, error)
}

// Client talks to the remote analysis endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("analysis base URL is required")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("analysis base URL must be http(s): %s", baseURL)
	}

	c := &Client{
		baseURL: baseURL,
		// No Timeout: a hung exchange stays in flight until the caller's context ends.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Analyze uploads file and returns the decoded result.
// Every failure is returned as *AnalysisError.
func (c *Client) Analyze(ctx context.Context, file model.UploadedFile) (model.AnalysisResult, error) {
	body, contentType, err := encodeUpload(file)
	if err != nil {
		return model.AnalysisResult{}, transportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+AnalyzePath, body)
	if err != nil {
		return model.AnalysisResult{}, transportError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	slog.Debug("Submitting file for analysis",
		"file", file.Name,
		"bytes", file.Size(),
		"url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.AnalysisResult{}, transportError(fmt.Errorf("request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.AnalysisResult{}, transportError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.AnalysisResult{}, protocolFailure(resp.StatusCode, respBody)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return model.AnalysisResult{}, decodeError(resp.StatusCode, err)
	}
	if result.RiskLevel == "" {
		return model.AnalysisResult{}, decodeError(resp.StatusCode, fmt.Errorf("%w %q", model.ErrUnknownRiskLevel, ""))
	}
	if result.FeaturesUsed == nil {
		result.FeaturesUsed = []string{}
	}

	slog.Debug("Analysis complete",
		"file", file.Name,
		"risk_level", result.RiskLevel,
		"features", len(result.FeaturesUsed))

	return result, nil
}

// protocolFailure builds the error for a non-2xx response. The server's "error"
// field wins; a JSON body without it gets the generic failure message, and a body
// that is not JSON at all gets the network error message.
func protocolFailure(status int, body []byte) *AnalysisError {
	cause := fmt.Errorf("analysis service returned status %d", status)

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return protocolError(status, MessageNetworkError, cause)
	}

	raw, ok := payload["error"]
	if !ok {
		return protocolError(status, MessageAnalysisFailed, cause)
	}

	var message string
	if err := json.Unmarshal(raw, &message); err != nil || message == "" {
		return protocolError(status, MessageAnalysisFailed, cause)
	}

	return protocolError(status, message, cause)
}

// encodeUpload builds the multipart body with a single "file" part.
func encodeUpload(file model.UploadedFile) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Name)))
	header.Set("Content-Type", file.ContentType())

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write form part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
