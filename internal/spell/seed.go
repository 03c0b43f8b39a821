// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spell

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/spellbook/pkg/slug"
)

// # Seed Data

// LoadSeed parses a YAML list of spells.
//
// Unknown keys are rejected. A spell without an index gets one derived from
// its name; two spells sharing an index is an error.
func LoadSeed(reader io.Reader) ([]*Spell, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var spells []*Spell
	if err := decoder.Decode(&spells); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("seed: decode: %w", err)
	}

	seen := make(map[string]int, len(spells))
	for position, spell := range spells {
		if spell == nil {
			return nil, fmt.Errorf("seed: entry %d is empty", position)
		}
		if spell.Index == "" {
			spell.Index = slug.From(spell.Name)
		}
		if previous, ok := seen[spell.Index]; ok {
			return nil, fmt.Errorf("seed: entries %d and %d share index %q", previous, position, spell.Index)
		}
		seen[spell.Index] = position
	}

	return spells, nil
}

// LoadSeedFile opens path and parses it with [LoadSeed].
func LoadSeedFile(path string) ([]*Spell, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	defer file.Close()

	return LoadSeed(file)
}
