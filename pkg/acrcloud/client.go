package acrcloud

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const (
	opBuild  = "build request"
	opSend   = "send request"
	opStatus = "identify"
	opRead   = "read response"
	opDecode = "decode response"
)

// Client talks to the provider's identify endpoint. It holds no mutable
// state and is safe for concurrent use.
type Client struct {
	creds      Credentials
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	now        func() time.Time
	logger     *zap.Logger
	onLatency  func(time.Duration)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each Identify call. Zero leaves the call bounded only by
// the caller's context and the transport defaults.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithLatencyObserver registers a callback invoked with the round-trip time
// of every provider request that reached the network.
func WithLatencyObserver(fn func(time.Duration)) Option {
	return func(c *Client) { c.onLatency = fn }
}

func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		creds:      creds,
		baseURL:    "https://" + creds.Host,
		httpClient: http.DefaultClient,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Identify signs and sends one identify request. There are no retries.
func (c *Client) Identify(ctx context.Context, audio []byte, filename string) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	material := NewSignedMaterial(c.creds, c.now())
	body, contentType, err := BuildIdentifyForm(c.creds, audio, filename, material)
	if err != nil {
		return nil, &TransportError{Op: opBuild, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+identifyPath, body)
	if err != nil {
		return nil, &TransportError{Op: opBuild, Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("sending identify request",
		zap.String("host", c.creds.Host),
		zap.Int("sample_bytes", len(audio)),
		zap.String("timestamp", material.Timestamp))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.onLatency != nil {
		c.onLatency(time.Since(start))
	}
	if err != nil {
		return nil, &TransportError{Op: opSend, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &TransportError{
			Op:         opStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("request failed: %s", truncate(snippet, 200)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: opRead, Err: err}
	}

	parsed, err := decodeResponse(data)
	if err != nil {
		return nil, &TransportError{Op: opDecode, Err: err}
	}
	return parsed, nil
}

// IdentifyFile reads an audio file from disk and identifies it.
func (c *Client) IdentifyFile(ctx context.Context, path string) (*Response, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}
	return c.Identify(ctx, audio, filepath.Base(path))
}
