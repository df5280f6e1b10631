package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mythoscribe/mythoscribe"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Compile-time interface verification.
var _ mythoscribe.PreferenceStore = (*Preferences)(nil)

// PreferencesFile is the file name used inside the config directory.
const PreferencesFile = "preferences.json"

// Preferences is a PreferenceStore backed by a flat JSON object on disk.
// Keys must not contain gjson path syntax such as '.' or '*'.
type Preferences struct {
	path string
	mu   sync.Mutex
}

// NewPreferences returns a store reading and writing path. The file is
// created on the first Set.
func NewPreferences(path string) *Preferences {
	return &Preferences{path: path}
}

// Path returns the backing file.
func (p *Preferences) Path() string {
	return p.path
}

// Get returns the string stored under key. A missing file or key is not an
// error.
func (p *Preferences) Get(key string) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := p.read()
	if err != nil {
		return "", false, err
	}
	res := gjson.GetBytes(data, key)
	if !res.Exists() {
		return "", false, nil
	}
	return res.String(), true, nil
}

// Set stores value under key, replacing the file atomically.
func (p *Preferences) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := p.read()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		data = []byte("{}")
	}
	data, err = sjson.SetBytes(data, key, value)
	if err != nil {
		return fmt.Errorf("set preference %q: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}

func (p *Preferences) read() ([]byte, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	if len(data) > 0 && !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("read preferences: %s is not valid JSON", p.path)
	}
	return data, nil
}
