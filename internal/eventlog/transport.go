package eventlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const maxResponseBody = 64 << 10

// Payload is the JSON body posted to the collector.
type Payload struct {
	Stack   string `json:"stack"`
	Level   string `json:"level"`
	Package string `json:"package"`
	Message string `json:"message"`
}

// Transport delivers a single payload to the collector.
type Transport interface {
	Send(ctx context.Context, p Payload) error
}

// StatusError is returned when the collector answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("collector returned status %d: %s", e.StatusCode, e.Body)
}

// HTTPTransport posts payloads as JSON to the collector endpoint.
type HTTPTransport struct {
	url    string
	token  string
	client *http.Client
	logger *zap.Logger
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a transport for cfg.URL. A nil logger disables the
// debug output of collector responses.
func NewHTTPTransport(cfg Config, logger *zap.Logger) *HTTPTransport {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100

	return &HTTPTransport{
		url:   cfg.URL,
		token: cfg.Token,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: t,
		},
		logger: logger,
	}
}

// Send posts p and returns an error for transport failures and non-2xx
// responses. The response body is only used for debug output.
func (t *HTTPTransport) Send(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	t.logger.Debug("collector accepted event",
		zap.Int("status", resp.StatusCode),
		zap.ByteString("response", respBody),
	)
	return nil
}

// Close releases idle collector connections.
func (t *HTTPTransport) Close() {
	t.client.CloseIdleConnections()
}
