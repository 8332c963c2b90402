package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewProxyFunc_ExplicitProxies(t *testing.T) {
	proxyFunc := NewProxyFunc("http://http-proxy:8080", "http://https-proxy:8443", "")

	httpReq := httptest.NewRequest(http.MethodGet, "http://example.org/", nil)
	httpsReq := httptest.NewRequest(http.MethodGet, "https://example.org/", nil)

	u, err := proxyFunc(httpReq)
	if err != nil || u == nil || u.Host != "http-proxy:8080" {
		t.Errorf("expected http proxy, got %v (%v)", u, err)
	}

	u, err = proxyFunc(httpsReq)
	if err != nil || u == nil || u.Host != "https-proxy:8443" {
		t.Errorf("expected https proxy, got %v (%v)", u, err)
	}
}

func TestNewProxyFunc_HTTPProxyCoversHTTPS(t *testing.T) {
	proxyFunc := NewProxyFunc("http://only-proxy:8080", "", "")

	httpsReq := httptest.NewRequest(http.MethodGet, "https://example.org/", nil)
	u, err := proxyFunc(httpsReq)
	if err != nil || u == nil || u.Host != "only-proxy:8080" {
		t.Errorf("expected fallthrough to http proxy, got %v (%v)", u, err)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	tests := []struct {
		name    string
		noProxy string
		target  string
		direct  bool
	}{
		{"exact host", "internal.example.org", "http://internal.example.org/", true},
		{"domain suffix", "example.org", "http://api.example.org/", true},
		{"leading dot matches subdomains", ".example.org", "http://api.example.org/", true},
		{"leading dot excludes bare domain", ".example.org", "http://example.org/", false},
		{"wildcard", "*", "http://anything.test/", true},
		{"unlisted host proxied", "internal.example.org", "http://public.example.com/", false},
		{"whitespace and case", " Internal.Example.Org , other.test", "http://internal.example.org/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proxyFunc := NewProxyFunc("http://proxy:8080", "", tt.noProxy)
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)

			u, err := proxyFunc(req)
			if err != nil {
				t.Fatalf("proxy func failed: %v", err)
			}
			if tt.direct && u != nil {
				t.Errorf("expected direct connection, got proxy %v", u)
			}
			if !tt.direct && (u == nil || u.Host != "proxy:8080") {
				t.Errorf("expected proxy:8080, got %v", u)
			}
		})
	}
}
