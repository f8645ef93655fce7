package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-obesense/pkg/schema"
)

const (
	// DefaultPath is appended to the base URL when no path is configured.
	DefaultPath = "/predict"

	// RequestIDHeader carries a per-call identifier for log correlation.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 1 << 20
	bodySnippetBytes = 256
)

// Predictor turns a validated request into a category.
type Predictor interface {
	Predict(ctx context.Context, req schema.Request) (Category, error)
}

// PredictorFunc adapts a function into a Predictor.
type PredictorFunc func(ctx context.Context, req schema.Request) (Category, error)

// Predict calls fn.
func (fn PredictorFunc) Predict(ctx context.Context, req schema.Request) (Category, error) {
	return fn(ctx, req)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithPath overrides the endpoint path appended to the base URL.
func WithPath(path string) Option {
	return func(c *Client) {
		if strings.TrimSpace(path) != "" {
			c.path = path
		}
	}
}

// WithTimeout bounds each prediction call. Zero leaves calls unbounded beyond
// the caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// WithLogger attaches a logger for request and failure events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBareLabelResponses also accepts replies whose body is the label itself,
// either as a JSON string or plain text.
func WithBareLabelResponses() Option {
	return func(c *Client) { c.bareLabels = true }
}

// WithRequestIDs overrides the generator used for the X-Request-ID header.
func WithRequestIDs(next func() string) Option {
	return func(c *Client) {
		if next != nil {
			c.requestID = next
		}
	}
}

// Client posts requests to the remote prediction service.
type Client struct {
	endpoint   string
	path       string
	http       *http.Client
	timeout    time.Duration
	logger     *zap.Logger
	bareLabels bool
	requestID  func() string
}

// NewClient builds a client for the service rooted at baseURL.
func NewClient(baseURL string, options ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("predict: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("predict: parse base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("predict: unsupported base URL scheme %q", parsed.Scheme)
	}

	client := &Client{
		path:      DefaultPath,
		http:      http.DefaultClient,
		logger:    zap.NewNop(),
		requestID: uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(client)
		}
	}
	client.endpoint = strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(client.path, "/")
	return client, nil
}

// Endpoint returns the absolute URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Predict posts req and interprets the reply.
func (c *Client) Predict(ctx context.Context, req schema.Request) (Category, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("predict: encode request: %w", err)
	}

	requestID := c.requestID()
	logger := c.logger.With(zap.String("request_id", requestID), zap.String("endpoint", c.endpoint))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("predict: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		logger.Warn("prediction request failed", zap.Error(err))
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		logger.Warn("prediction response unreadable", zap.Int("status", resp.StatusCode), zap.Error(err))
		return "", &NetworkError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("prediction service returned error status", zap.Int("status", resp.StatusCode))
		return "", &NetworkError{Status: resp.StatusCode}
	}

	label, err := c.decode(payload)
	if err != nil {
		return "", err
	}
	category := Category(strings.TrimSpace(label))
	logger.Debug("prediction received",
		zap.String("category", category.String()),
		zap.Bool("known", category.Known()),
		zap.Duration("elapsed", time.Since(started)),
	)
	return category, nil
}

type predictionBody struct {
	Prediction *string `json:"prediction"`
}

func (c *Client) decode(payload []byte) (string, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return "", &ResponseShapeError{Reason: "empty body"}
	}

	switch trimmed[0] {
	case '{':
		var body predictionBody
		if err := json.Unmarshal(trimmed, &body); err != nil {
			return "", shapeError("malformed JSON object", trimmed)
		}
		if body.Prediction == nil {
			return "", shapeError("missing prediction field", trimmed)
		}
		if strings.TrimSpace(*body.Prediction) == "" {
			return "", shapeError("empty prediction", trimmed)
		}
		return *body.Prediction, nil
	case '"':
		if !c.bareLabels {
			return "", shapeError("bare label replies are not enabled", trimmed)
		}
		var label string
		if err := json.Unmarshal(trimmed, &label); err != nil || strings.TrimSpace(label) == "" {
			return "", shapeError("malformed label", trimmed)
		}
		return label, nil
	case '[':
		return "", shapeError("unexpected JSON array", trimmed)
	default:
		if !c.bareLabels || !plainLabel(trimmed) {
			return "", shapeError("unexpected body", trimmed)
		}
		return string(trimmed), nil
	}
}

// plainLabel accepts a single line of printable text that is not markup.
func plainLabel(body []byte) bool {
	if !utf8.Valid(body) || bytes.ContainsAny(body, "\r\n<>{}") {
		return false
	}
	for _, r := range string(body) {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func shapeError(reason string, body []byte) error {
	if len(body) > bodySnippetBytes {
		body = body[:bodySnippetBytes]
	}
	return &ResponseShapeError{Reason: reason, Body: string(body)}
}
