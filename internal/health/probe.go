// Package health probes the calculation engine's liveness endpoint.
package health

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 3 * time.Second

// Path is appended to the engine base address.
const Path = "/health"

// maxDrain caps how much of a probe response is read before the connection
// is returned to the pool.
const maxDrain = 64 << 10

var probesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gateway_engine_probes_total",
		Help: "Total number of engine health probes by result.",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(probesTotal)
}

// Probe performs single, stateless liveness checks. It is safe for
// concurrent use.
type Probe struct {
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewProbe returns a Probe using hc for transport; nil selects
// http.DefaultClient. A non-positive timeout selects DefaultTimeout.
func NewProbe(hc *http.Client, timeout time.Duration, logger *slog.Logger) *Probe {
	if hc == nil {
		hc = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Probe{client: hc, timeout: timeout, logger: logger}
}

// Check reports whether GET {baseURL}/health answered with a 2xx status
// within the probe timeout. It never returns an error: every failure,
// including timeouts and refused connections, reports false.
func (p *Probe) Check(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+Path, nil)
	if err != nil {
		p.logger.Warn("engine probe: bad request", "base_url", baseURL, "error", err)
		probesTotal.WithLabelValues("error").Inc()
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		result := "error"
		if ctx.Err() == context.DeadlineExceeded {
			result = "timeout"
		}
		p.logger.Warn("engine probe: offline, contingency mode", "base_url", baseURL, "result", result, "error", err)
		probesTotal.WithLabelValues(result).Inc()
		return false
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Warn("engine probe: unhealthy status", "base_url", baseURL, "status", resp.StatusCode)
		probesTotal.WithLabelValues("unhealthy").Inc()
		return false
	}

	p.logger.Info("engine probe: online", "base_url", baseURL)
	probesTotal.WithLabelValues("healthy").Inc()
	return true
}
