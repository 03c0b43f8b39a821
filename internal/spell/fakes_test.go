// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spell_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/spellbook/internal/spell"
	"github.com/taibuivan/spellbook/pkg/predicate"
)

// memoryRepository evaluates predicates in memory with [predicate.Match].
type memoryRepository struct {
	mu        sync.Mutex
	spells    map[string]*spell.Spell
	lastWhere predicate.Predicate
	finds     int
}

func newMemoryRepository(spells ...*spell.Spell) *memoryRepository {
	repository := &memoryRepository{spells: make(map[string]*spell.Spell)}
	for _, entry := range spells {
		repository.spells[entry.Index] = entry
	}
	return repository
}

func (repository *memoryRepository) List(_ context.Context, where predicate.Predicate, limit, offset int) ([]*spell.Spell, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.lastWhere = where

	var matched []*spell.Spell
	for _, entry := range repository.spells {
		if predicate.Match(where, entry.Record()) {
			matched = append(matched, entry)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Level != matched[j].Level {
			return matched[i].Level < matched[j].Level
		}
		return matched[i].Name < matched[j].Name
	})

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

func (repository *memoryRepository) FindByIndex(_ context.Context, index string) (*spell.Spell, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.finds++

	entry, ok := repository.spells[index]
	if !ok {
		return nil, spell.ErrSpellNotFound
	}
	return entry, nil
}

func (repository *memoryRepository) Upsert(_ context.Context, entry *spell.Spell) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if existing, ok := repository.spells[entry.Index]; ok {
		entry.ID = existing.ID
	}
	repository.spells[entry.Index] = entry
	return nil
}

// memoryCache records every interaction.
type memoryCache struct {
	entries     map[string]*spell.Spell
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*spell.Spell)}
}

func (cache *memoryCache) Get(_ context.Context, index string) (*spell.Spell, bool) {
	entry, ok := cache.entries[index]
	return entry, ok
}

func (cache *memoryCache) Set(_ context.Context, entry *spell.Spell) {
	cache.entries[entry.Index] = entry
}

func (cache *memoryCache) Invalidate(_ context.Context, index string) {
	delete(cache.entries, index)
	cache.invalidated = append(cache.invalidated, index)
}

// seedRepository loads the bundled development spells.
func seedRepository(t *testing.T) *memoryRepository {
	t.Helper()
	spells, err := spell.LoadSeedFile("../../data/seed/spells.yaml")
	require.NoError(t, err)
	return newMemoryRepository(spells...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
