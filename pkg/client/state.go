package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// State is the durable client-side key/value state: the session token and an
// optional user-configured base address override.
type State struct {
	Token   string `json:"token,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
}

// StateStore persists State as a JSON file under the user config directory.
type StateStore struct {
	path       string
	legacyPath string
	state      State
}

// NewStateStore loads state from dir/state.json, creating the directory when
// missing. When no state file exists yet, a legacy single-file state from an
// earlier layout is migrated once and then removed.
func NewStateStore(dir string) (*StateStore, error) {
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("client: resolving config dir: %w", err)
		}
		dir = filepath.Join(configDir, "booknotion")
	}
	return newStateStoreAt(filepath.Join(dir, "state.json"), legacyStatePath())
}

func newStateStoreAt(path, legacyPath string) (*StateStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("client: creating state dir: %w", err)
	}

	s := &StateStore{
		path:       path,
		legacyPath: legacyPath,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func legacyStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".booknotion-state.json")
}

func (s *StateStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s.migrateLegacy()
	}
	if err != nil {
		return fmt.Errorf("client: reading state: %w", err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		// A corrupt state file is discarded rather than blocking startup.
		s.state = State{}
	}
	return nil
}

// migrateLegacy moves state from the old location into the current one. Runs
// at most once: the legacy file is deleted after a successful migration.
func (s *StateStore) migrateLegacy() error {
	if s.legacyPath == "" {
		return nil
	}
	data, err := os.ReadFile(s.legacyPath)
	if err != nil {
		return nil // nothing to migrate
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		s.state = State{}
		return nil
	}
	if err := s.save(); err != nil {
		return err
	}
	os.Remove(s.legacyPath)
	return nil
}

func (s *StateStore) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("client: writing state: %w", err)
	}
	return nil
}

func (s *StateStore) Token() string {
	return s.state.Token
}

func (s *StateStore) SetToken(token string) error {
	s.state.Token = token
	return s.save()
}

func (s *StateStore) BaseURL() string {
	return s.state.BaseURL
}

func (s *StateStore) SetBaseURL(baseURL string) error {
	s.state.BaseURL = baseURL
	return s.save()
}
