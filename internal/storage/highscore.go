package storage

import "sync"

// VariantScores is the store seen through one variant. It satisfies the
// loop driver's high score store.
type VariantScores struct {
	store   *Store
	variant string
}

// ForVariant scopes the store to a variant.
func (s *Store) ForVariant(variantID string) *VariantScores {
	return &VariantScores{store: s, variant: variantID}
}

// Get returns the variant's high score, 0 if none.
func (v *VariantScores) Get() (int, error) {
	return v.store.HighScore(v.variant)
}

// Set stores a new high score.
func (v *VariantScores) Set(score int) error {
	return v.store.SetHighScore(v.variant, score)
}

// MemoryScores keeps a high score in memory. It stands in for the database
// when it cannot be opened.
type MemoryScores struct {
	mu   sync.Mutex
	high int
}

// NewMemoryScores creates an empty in-memory store.
func NewMemoryScores() *MemoryScores {
	return &MemoryScores{}
}

// Get returns the high score.
func (m *MemoryScores) Get() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.high, nil
}

// Set raises the high score. Lower values are ignored.
func (m *MemoryScores) Set(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.high = max(m.high, score)
	return nil
}
