package mock

import (
	"sync"

	"github.com/mythoscribe/mythoscribe"
)

// Compile-time interface verification.
var _ mythoscribe.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore is a mock implementation of mythoscribe.PreferenceStore.
type PreferenceStore struct {
	GetFn func(key string) (string, bool, error)
	SetFn func(key, value string) error
}

func (s *PreferenceStore) Get(key string) (string, bool, error) {
	return s.GetFn(key)
}

func (s *PreferenceStore) Set(key, value string) error {
	return s.SetFn(key, value)
}

// MemoryPreferences is an in-memory mythoscribe.PreferenceStore that records
// how many times each key was written.
type MemoryPreferences struct {
	mu     sync.Mutex
	values map[string]string
	writes map[string]int
}

// NewMemoryPreferences returns a store seeded with values.
func NewMemoryPreferences(values map[string]string) *MemoryPreferences {
	p := &MemoryPreferences{values: map[string]string{}, writes: map[string]int{}}
	for k, v := range values {
		p.values[k] = v
	}
	return p
}

func (p *MemoryPreferences) Get(key string) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.values[key]
	return v, ok, nil
}

func (p *MemoryPreferences) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
	p.writes[key]++
	return nil
}

// Writes returns how many times key was set.
func (p *MemoryPreferences) Writes(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes[key]
}
