package client

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// DefaultCandidates is the ordered fallback list of base addresses tried
// when no explicit address is configured.
var DefaultCandidates = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// Candidates builds the ordered list of base addresses to try. A persisted
// user override always goes first.
func Candidates(override string, fallbacks ...string) []string {
	if len(fallbacks) == 0 {
		fallbacks = DefaultCandidates
	}
	candidates := make([]string, 0, len(fallbacks)+1)
	if override != "" {
		candidates = append(candidates, strings.TrimRight(override, "/"))
	}
	for _, addr := range fallbacks {
		addr = strings.TrimRight(addr, "/")
		if addr != "" && (len(candidates) == 0 || candidates[0] != addr) {
			candidates = append(candidates, addr)
		}
	}
	return candidates
}

// Resolve probes each candidate's health endpoint in order and returns the
// first that answers. Any HTTP response counts as reachable; only transport
// failures move on to the next candidate.
func Resolve(ctx context.Context, httpClient *http.Client, candidates []string) (string, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}

	var lastErr error
	for _, base := range candidates {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/api/health", nil)
		if err != nil {
			lastErr = err
			continue
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()
		return base, nil
	}

	if lastErr == nil {
		lastErr = context.DeadlineExceeded
	}
	return "", networkError(lastErr)
}
