// Package client is the authenticated RPC client for internal services.
//
// A Client holds only immutable state: the resolved base address and a
// shared *http.Client whose connection pool is reused across calls. The
// bearer credential is a per-call argument and is set on each request, so
// concurrent calls with different credentials never observe each other.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/seantiz/proposalgw/internal/token"
)

// maxErrorBody caps how much of a failed response body is kept on StatusError.
const maxErrorBody = 4 << 10

var (
	// ErrUnexpectedStatus matches any *StatusError via errors.Is.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrDecode is wrapped when a response body does not fit the expected type.
	ErrDecode = errors.New("decode response")
)

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected response status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected response status %d: %s", e.StatusCode, e.Body)
}

// Is reports whether target is ErrUnexpectedStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Validator is implemented by response types that carry required fields.
// Post rejects a decoded response whose Validate method fails.
type Validator interface {
	Validate() error
}

// Client sends authenticated JSON requests to one service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New returns a Client bound to baseURL. hc may be shared with other
// components.
func New(baseURL string, hc *http.Client, logger *slog.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: hc, logger: logger}
}

// BaseURL returns the address the client was constructed with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Post sends payload as JSON to endpoint with cred as bearer authorization and
// decodes the response into TRes. It makes exactly one attempt. A non-2xx
// status returns a *StatusError. A body that is null, carries trailing data,
// does not fit TRes, or fails TRes's Validate method returns an error
// wrapping ErrDecode.
func Post[TReq, TRes any](ctx context.Context, c *Client, endpoint string, payload TReq, cred token.Credential) (TRes, error) {
	var out TRes

	body, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", cred.Bearer())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return out, fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("rpc",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return out, &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(b))}
	}

	if err := decodeStrict(resp.Body, &out); err != nil {
		var zero TRes
		return zero, fmt.Errorf("%w from %s: %v", ErrDecode, endpoint, err)
	}

	return out, nil
}

// decodeStrict decodes exactly one non-null JSON value from r into out.
func decodeStrict(r io.Reader, out any) error {
	dec := json.NewDecoder(r)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errors.New("body is null")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("trailing data after response")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}

	if v, ok := out.(Validator); ok {
		return v.Validate()
	}
	return nil
}
