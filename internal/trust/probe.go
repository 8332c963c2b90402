package trust

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wayfinder-support/wayfinder/internal/cache"
	"github.com/wayfinder-support/wayfinder/internal/model"
	"github.com/wayfinder-support/wayfinder/internal/util"
	"github.com/wayfinder-support/wayfinder/internal/worker"
)

// ProbeResult is the outcome of a source reachability check
type ProbeResult int

const (
	ProbeUnknown ProbeResult = iota // Not checked, disallowed, or transient failure: contributes neutrally
	ProbeReachable
	ProbeUnreachable
)

// Prober checks whether a cited source URL is reachable. Implementations
// must fail open: a network problem is ProbeUnknown, never an error.
type Prober interface {
	Check(ctx context.Context, rawURL string) ProbeResult
}

// HTTPProber probes source URLs with HEAD requests, subject to robots.txt
// and per-domain rate limits. Results are cached via the injected cache.
type HTTPProber struct {
	client    *http.Client
	cache     cache.Cache
	ttl       time.Duration
	robots    *util.RobotsChecker
	limiter   *worker.Limiter
	userAgent string
}

// NewHTTPProber creates a prober from configuration. The cache is injected
// so tests can run without real network or shared state.
func NewHTTPProber(cfg *model.Config, store cache.Cache) *HTTPProber {
	timeout := cfg.Probe.Timeout
	if timeout <= 0 {
		timeout = 1500 * time.Millisecond
	}

	return &HTTPProber{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		cache:     store,
		ttl:       cfg.Probe.CacheTTL,
		robots:    util.NewRobotsChecker(cfg.HTTP.UserAgent, timeout),
		limiter:   worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
		userAgent: cfg.HTTP.UserAgent,
	}
}

// Check probes a URL, consulting the cache first
func (p *HTTPProber) Check(ctx context.Context, rawURL string) ProbeResult {
	key := cache.Key(rawURL)
	if p.cache != nil {
		if val, ok := p.cache.Get(key); ok {
			return decodeResult(val)
		}
	}

	result := p.probe(ctx, rawURL)

	if p.cache != nil {
		_ = p.cache.Set(key, encodeResult(result), p.ttl)
	}
	return result
}

func (p *HTTPProber) probe(ctx context.Context, rawURL string) ProbeResult {
	if !p.robots.Allowed(ctx, rawURL) {
		return ProbeUnknown
	}
	if err := p.limiter.Wait(ctx, rawURL); err != nil {
		return ProbeUnknown
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return ProbeUnreachable
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		// Timeouts and network errors are neutral, not negative
		return ProbeUnknown
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		return ProbeReachable
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ProbeUnreachable
	default:
		return ProbeUnknown
	}
}

// IsURL reports whether a cited source is a URL rather than a named
// authority
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func encodeResult(r ProbeResult) []byte {
	switch r {
	case ProbeReachable:
		return []byte("reachable")
	case ProbeUnreachable:
		return []byte("unreachable")
	default:
		return []byte("unknown")
	}
}

func decodeResult(val []byte) ProbeResult {
	switch string(val) {
	case "reachable":
		return ProbeReachable
	case "unreachable":
		return ProbeUnreachable
	default:
		return ProbeUnknown
	}
}
