// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spell

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/taibuivan/spellbook/internal/platform/constants"
	"github.com/taibuivan/spellbook/internal/platform/validate"
	"github.com/taibuivan/spellbook/pkg/pointer"
	"github.com/taibuivan/spellbook/pkg/slice"
	"github.com/taibuivan/spellbook/pkg/slug"
	"github.com/taibuivan/spellbook/pkg/uuid"
)

// # Service Layer

// Service orchestrates spell search and catalogue maintenance.
type Service struct {
	repository Repository
	cache      Cache
	logger     *slog.Logger
}

// NewService constructs a [Service]. cache may be nil, in which case every
// detail lookup goes to the repository.
func NewService(repository Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		cache:      cache,
		logger:     logger,
	}
}

// # Spell Lookups

/*
ListSpells runs a spell search.

Description: The filter is compiled into a predicate tree which the repository
translates into its own query language. A nil filter lists every spell.

Parameters:
  - context: context.Context
  - filter: *Filter (Search criteria, all optional)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Spell: Matching spells ordered by level then name
  - int: Total count of matching spells
  - error: Repository errors
*/
func (service *Service) ListSpells(context context.Context, filter *Filter, limit, offset int) ([]*Spell, int, error) {
	where := Compile(filter)

	service.logger.DebugContext(context, "spell_list_compiled",
		slog.String("predicate", where.String()),
		slog.Any("fields", where.Fields()),
		slog.Bool("match_all", where.IsMatchAll()),
	)

	return service.repository.List(context, where, limit, offset)
}

/*
GetSpell fetches a single spell by its index slug.

Description: Reads through the cache. A cache miss, including one caused by
Redis being unavailable, falls back to the repository and refills the cache.

Parameters:
  - context: context.Context
  - index: string (e.g. "fireball")

Returns:
  - *Spell: The spell
  - error: ErrSpellNotFound if missing
*/
func (service *Service) GetSpell(context context.Context, index string) (*Spell, error) {
	if service.cache != nil {
		if spell, ok := service.cache.Get(context, index); ok {
			return spell, nil
		}
	}

	spell, err := service.repository.FindByIndex(context, index)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		service.cache.Set(context, spell)
	}

	return spell, nil
}

// # Spell Management

/*
CreateSpell inserts a spell, or replaces the one with the same index.

Description: Validates the struct tags and the domain rules, derives the index
from the name when missing and assigns a UUID v7 identity before persisting.

Parameters:
  - context: context.Context
  - spell: *Spell

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateSpell(context context.Context, spell *Spell) error {

	// Index generation
	if spell.Index == "" {
		spell.Index = slug.From(spell.Name)
	}

	// A blank material description means no material at all
	if strings.TrimSpace(pointer.Val(spell.Material)) == "" {
		spell.Material = nil
	}

	// Tag and business validation
	validator := &validate.Validator{}
	validator.Struct(spell).
		Required("name", spell.Name).
		MaxLen("name", spell.Name, constants.SpellNameMaxLen).
		Slug("index", spell.Index).
		Range("level", spell.Level, 0, constants.SpellMaxLevel).
		OneOf("school", string(spell.School), slice.As[string](Schools)...).
		Custom("id", spell.ID != "" && !uuid.Valid(spell.ID), "Must be a UUID").
		Custom("material", spell.Material != nil && !slices.Contains(spell.Components, ComponentMaterial),
			"Material description requires the M component")

	if err := validator.Err(); err != nil {
		return err
	}

	// Identity
	if spell.ID == "" {
		spell.ID = uuid.New()
	}

	if err := service.repository.Upsert(context, spell); err != nil {
		return err
	}

	if service.cache != nil {
		service.cache.Invalidate(context, spell.Index)
	}

	service.logger.InfoContext(context, "spell_saved",
		slog.String("index", spell.Index),
		slog.String("id", spell.ID),
	)

	return nil
}
