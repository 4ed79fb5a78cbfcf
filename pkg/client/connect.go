package client

import (
	"context"
	"net/http"
	"time"
)

// Options configures Connect.
type Options struct {
	// StateDir overrides the state directory; empty uses the user config dir.
	StateDir string
	// Fallbacks overrides the candidate base addresses.
	Fallbacks []string
	// OfflinePath is the local database file used when no server answers.
	OfflinePath string
	// OfflineSecret signs local session tokens in offline mode.
	OfflineSecret string
}

// Connect picks the Gateway implementation at startup: the first reachable
// server wins, otherwise the embedded local store takes over.
func Connect(ctx context.Context, opts Options) (Gateway, error) {
	state, err := NewStateStore(opts.StateDir)
	if err != nil {
		return nil, err
	}

	probe := &http.Client{Timeout: 3 * time.Second}
	if _, err := Resolve(ctx, probe, Candidates(state.BaseURL(), opts.Fallbacks...)); err == nil {
		return NewHTTPClient(state, opts.Fallbacks...), nil
	}

	offlinePath := opts.OfflinePath
	if offlinePath == "" {
		offlinePath = "data/booknotion-local.db"
	}
	secret := opts.OfflineSecret
	if secret == "" {
		secret = "local_only_secret"
	}
	return NewOffline(offlinePath, secret, state)
}
