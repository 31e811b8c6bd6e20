package storage

import (
	"sort"
	"sync"
)

// Scores is a single variant's high score. It satisfies the loop driver's
// high score store.
type Scores interface {
	Get() (int, error)
	Set(score int) error
}

// Book hands out per-variant high score stores. It is backed by the
// SQLite store when one is open and by in-memory scores otherwise, so a
// missing database only costs persistence.
type Book struct {
	store *Store

	mu  sync.Mutex
	mem map[string]*MemoryScores
}

// NewBook creates a score book. store may be nil.
func NewBook(store *Store) *Book {
	return &Book{
		store: store,
		mem:   make(map[string]*MemoryScores),
	}
}

// Persistent reports whether scores survive a restart of the process.
func (b *Book) Persistent() bool {
	return b.store != nil
}

// For returns the high score store for a variant.
func (b *Book) For(variantID string) Scores {
	if b.store != nil {
		return b.store.ForVariant(variantID)
	}
	return b.memory(variantID)
}

func (b *Book) memory(variantID string) *MemoryScores {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.mem[variantID]
	if !ok {
		m = NewMemoryScores()
		b.mem[variantID] = m
	}
	return m
}

// Get returns a variant's high score, 0 if none or unreadable.
func (b *Book) Get(variantID string) int {
	v, err := b.For(variantID).Get()
	if err != nil {
		return 0
	}
	return v
}

// HighScores lists recorded high scores, best first.
func (b *Book) HighScores() ([]HighScoreEntry, error) {
	if b.store != nil {
		return b.store.HighScores()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	entries := make([]HighScoreEntry, 0, len(b.mem))
	for id, m := range b.mem {
		v, _ := m.Get()
		if v > 0 {
			entries = append(entries, HighScoreEntry{Variant: id, Value: v})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Variant < entries[j].Variant
	})
	return entries, nil
}

// Clear removes a variant's high score.
func (b *Book) Clear(variantID string) error {
	if b.store != nil {
		return b.store.ClearHighScore(variantID)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.mem, variantID)
	return nil
}
