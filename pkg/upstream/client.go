package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/noah-isme/erolls-portal/pkg/config"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

// Observer receives timing for every upstream round trip.
type Observer interface {
	ObserveUpstream(endpoint string, status int, duration time.Duration)
}

// Request describes a single call against the electoral backend.
type Request struct {
	Method   string
	Path     string
	Endpoint string
	Token    string
	Query    url.Values
	Body     interface{}
	Result   interface{}
}

// File is a multipart attachment streamed upstream.
type File struct {
	Field  string
	Name   string
	Reader io.Reader
}

type requestIDKey struct{}

// WithRequestID returns a context whose upstream calls carry the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Client wraps resty with the backend's error contract ({"detail": ...}).
// Calls are never retried.
type Client struct {
	http     *resty.Client
	logger   *zap.Logger
	observer Observer
}

// Option customises the client.
type Option func(*Client)

// WithObserver attaches latency instrumentation.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// New builds an upstream client for the configured backend.
func New(cfg config.UpstreamConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	c := &Client{http: httpClient, logger: logger}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// Do executes the request and decodes the JSON reply into req.Result.
func (c *Client) Do(ctx context.Context, req Request) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	r := c.http.R().SetContext(ctx).SetError(&errorBody{})
	if req.Token != "" {
		r.SetAuthToken(req.Token)
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}
	if req.Result != nil {
		r.SetResult(req.Result)
	}
	return c.execute(r, method, req.Path, req.Endpoint)
}

// Upload posts a multipart form with a single file attachment.
func (c *Client) Upload(ctx context.Context, path, endpoint, token string, fields map[string]string, file File, result interface{}) error {
	r := c.http.R().
		SetContext(ctx).
		SetError(&errorBody{}).
		SetMultipartFormData(fields).
		SetFileReader(file.Field, file.Name, file.Reader)
	if token != "" {
		r.SetAuthToken(token)
	}
	if result != nil {
		r.SetResult(result)
	}
	return c.execute(r, http.MethodPost, path, endpoint)
}

func (c *Client) execute(r *resty.Request, method, path, endpoint string) error {
	if endpoint == "" {
		endpoint = path
	}
	if id := requestIDFrom(r.Context()); id != "" {
		r.SetHeader("X-Request-ID", id)
	}
	start := time.Now()
	resp, err := r.Execute(method, path)
	duration := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}
	if c.observer != nil {
		c.observer.ObserveUpstream(endpoint, status, duration)
	}

	if err != nil {
		c.logger.Error("upstream call failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return appErrors.Wrap(err, appErrors.ErrUpstreamDown.Code, appErrors.ErrUpstreamDown.Status, appErrors.ErrUpstreamDown.Message)
	}

	if resp.IsError() {
		detail := extractDetail(resp)
		c.logger.Warn("upstream returned error",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status_code", status),
			zap.String("detail", detail),
		)
		return appErrors.Upstream(status, detail)
	}

	c.logger.Debug("upstream call succeeded",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status_code", status),
		zap.Duration("latency", duration),
	)
	return nil
}

func extractDetail(resp *resty.Response) string {
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		if msg := decodeDetail(body.Detail); msg != "" {
			return msg
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return http.StatusText(resp.StatusCode())
}

// decodeDetail accepts both a plain string and the list-of-issues shape
// ([{"msg": ...}]) some backend validators emit.
func decodeDetail(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var issues []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &issues); err == nil {
		msgs := make([]string, 0, len(issues))
		for _, issue := range issues {
			if issue.Msg != "" {
				msgs = append(msgs, issue.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return string(raw)
}
