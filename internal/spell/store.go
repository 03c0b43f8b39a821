// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spell

import (
	"context"

	"github.com/taibuivan/spellbook/pkg/predicate"
)

// # Spell Data Access

// Repository defines the data access contract for the spell catalogue.
type Repository interface {

	/*
		List returns the spells matching a compiled predicate and the total count.

		Parameters:
		  - context: context.Context
		  - where: predicate.Predicate (Output of [Compile])
		  - limit: int
		  - offset: int

		Returns:
		  - []*Spell: Page of matching spells ordered by level then name
		  - int: Total count of spells matching the predicate
		  - error: Translation or database failures
	*/
	List(context context.Context, where predicate.Predicate, limit, offset int) ([]*Spell, int, error)

	/*
		FindByIndex returns the spell with the given index slug.

		Parameters:
		  - context: context.Context
		  - index: string (e.g. "fireball")

		Returns:
		  - *Spell: The hydrated entity
		  - error: ErrSpellNotFound if missing
	*/
	FindByIndex(context context.Context, index string) (*Spell, error)

	/*
		Upsert inserts a spell or updates the existing row with the same index.

		Parameters:
		  - context: context.Context
		  - spell: *Spell (ID is kept from the existing row on update)

		Returns:
		  - error: Storage or constraint failures
	*/
	Upsert(context context.Context, spell *Spell) error
}

// # Spell Cache

// Cache stores spell details keyed by index.
//
// Implementations must treat every failure as a miss; the database stays the
// source of truth.
type Cache interface {
	Get(context context.Context, index string) (*Spell, bool)
	Set(context context.Context, spell *Spell)
	Invalidate(context context.Context, index string)
}
