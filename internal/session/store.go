// Package session keeps the backend's cookies between bookcat invocations.
package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// storedCookie is the on-disk form of a cookie.
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Expires time.Time `json:"expires,omitempty"`
}

// file is the JSON document written to disk.
type file struct {
	BaseURL string         `json:"base_url"`
	Cookies []storedCookie `json:"cookies"`
	SavedAt time.Time      `json:"saved_at"`
}

// Store persists cookies for a single backend in a JSON file.
type Store struct {
	path    string
	baseURL string
	now     func() time.Time
}

// DefaultPath returns ~/.bookcat/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".bookcat", "session.json"), nil
}

// NewStore returns a store at path scoped to baseURL. An empty path means
// DefaultPath.
func NewStore(path, baseURL string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{path: path, baseURL: baseURL, now: time.Now}, nil
}

// Path returns the session file location.
func (s *Store) Path() string { return s.path }

// Load returns the saved cookies. A missing file, a file saved for another
// backend, and expired cookies all yield nothing.
func (s *Store) Load() ([]*http.Cookie, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	if f.BaseURL != s.baseURL {
		return nil, nil
	}

	now := s.now()
	var cookies []*http.Cookie
	for _, c := range f.Cookies {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Expires: c.Expires})
	}
	return cookies, nil
}

// Save writes cookies with restricted permissions.
func (s *Store) Save(cookies []*http.Cookie) error {
	f := file{BaseURL: s.baseURL, SavedAt: s.now().UTC()}
	for _, c := range cookies {
		sc := storedCookie{Name: c.Name, Value: c.Value}
		switch {
		case c.MaxAge > 0:
			sc.Expires = s.now().Add(time.Duration(c.MaxAge) * time.Second).UTC()
		case !c.Expires.IsZero():
			sc.Expires = c.Expires.UTC()
		}
		f.Cookies = append(f.Cookies, sc)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Clear removes the session file.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
