// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spell_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/spellbook/internal/platform/apperr"
	"github.com/taibuivan/spellbook/internal/spell"
	"github.com/taibuivan/spellbook/pkg/pointer"
)

func indexes(spells []*spell.Spell) []string {
	result := make([]string, len(spells))
	for i, entry := range spells {
		result[i] = entry.Index
	}
	return result
}

/*
TestService_ListSpells verifies that the compiled filter reaches the repository.
*/
func TestService_ListSpells(t *testing.T) {
	tests := []struct {
		name     string
		filter   *spell.Filter
		expected []string
	}{
		{
			name:   "nil_filter_lists_everything",
			filter: nil,
			expected: []string{
				"fire-bolt", "cure-wounds", "detect-magic", "shield",
				"counterspell", "fireball", "teleportation-circle", "wish",
			},
		},
		{
			name:     "name_substring",
			filter:   &spell.Filter{Name: "FIRE"},
			expected: []string{"fire-bolt", "fireball"},
		},
		{
			name:     "ritual_and_class",
			filter:   &spell.Filter{Ritual: pointer.To(true), Classes: []string{"cleric"}},
			expected: []string{"detect-magic"},
		},
		{
			name:     "material_with_short_or_self_range",
			filter:   &spell.Filter{HasMaterial: pointer.To(true), RangeCategories: []spell.RangeCategory{spell.RangeShort, spell.RangeSelf}},
			expected: []string{"teleportation-circle"},
		},
		{
			name: "instantaneous_single_action",
			filter: &spell.Filter{
				Levels:                []int{0, 9},
				DurationCategories:    []spell.DurationCategory{spell.DurationInstantaneous},
				CastingTimeCategories: []spell.CastingTimeCategory{spell.CastingTimeAction},
			},
			expected: []string{"fire-bolt", "wish"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := seedRepository(t)
			service := spell.NewService(repository, nil, discardLogger())

			spells, total, err := service.ListSpells(context.Background(), tt.filter, 50, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, indexes(spells))
			assert.Equal(t, len(tt.expected), total)
			assert.Equal(t, spell.Compile(tt.filter), repository.lastWhere)
		})
	}
}

/*
TestService_ListSpells_Pagination verifies that the total ignores limit and offset.
*/
func TestService_ListSpells_Pagination(t *testing.T) {
	service := spell.NewService(seedRepository(t), nil, discardLogger())

	spells, total, err := service.ListSpells(context.Background(), &spell.Filter{}, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, total)
	assert.Equal(t, []string{"shield", "counterspell", "fireball"}, indexes(spells))
}

/*
TestService_GetSpell checks the read-through cache and the not found path.
*/
func TestService_GetSpell(t *testing.T) {
	repository := seedRepository(t)
	cache := newMemoryCache()
	service := spell.NewService(repository, cache, discardLogger())
	ctx := context.Background()

	first, err := service.GetSpell(ctx, "wish")
	require.NoError(t, err)
	assert.Equal(t, "Wish", first.Name)
	assert.Equal(t, 1, repository.finds)

	second, err := service.GetSpell(ctx, "wish")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, repository.finds, "second lookup must be served from cache")

	_, err = service.GetSpell(ctx, "chronal-shift")
	require.ErrorIs(t, err, spell.ErrSpellNotFound)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_CreateSpell covers index derivation, identity and cache invalidation.
*/
func TestService_CreateSpell(t *testing.T) {
	repository := newMemoryRepository()
	cache := newMemoryCache()
	service := spell.NewService(repository, cache, discardLogger())
	ctx := context.Background()

	entry := &spell.Spell{
		Name:        "Magic Missile",
		Level:       1,
		School:      spell.SchoolEvocation,
		CastingTime: "1 action",
		Range:       "120 feet",
		Duration:    "Instantaneous",
		Components:  []string{spell.ComponentVerbal, spell.ComponentSomatic},
		Material:    pointer.To("  "),
	}
	require.NoError(t, service.CreateSpell(ctx, entry))

	assert.Equal(t, "magic-missile", entry.Index)
	assert.NotEmpty(t, entry.ID)
	assert.Nil(t, entry.Material, "blank material is dropped")
	assert.Equal(t, []string{"magic-missile"}, cache.invalidated)

	stored, err := repository.FindByIndex(ctx, "magic-missile")
	require.NoError(t, err)
	assert.Same(t, entry, stored)
}

/*
TestService_CreateSpell_Validation verifies that every broken rule is reported.
*/
func TestService_CreateSpell_Validation(t *testing.T) {
	repository := newMemoryRepository()
	service := spell.NewService(repository, newMemoryCache(), discardLogger())

	entry := &spell.Spell{
		Name:        "Broken",
		Level:       12,
		School:      "chronurgy",
		CastingTime: "1 action",
		Range:       "Self",
		Duration:    "Instantaneous",
		Components:  []string{spell.ComponentVerbal, "X"},
		Material:    pointer.To("a feather"),
	}

	err := service.CreateSpell(context.Background(), entry)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)

	fields := make(map[string]bool)
	for _, detail := range appError.Details {
		fields[detail.Field] = true
	}
	assert.True(t, fields["level"])
	assert.True(t, fields["school"])
	assert.True(t, fields["material"])
	assert.True(t, fields["components[1]"])

	assert.Empty(t, repository.spells, "invalid spells must not be stored")
}

/*
TestService_CreateSpell_Rules checks each domain rule in isolation.
*/
func TestService_CreateSpell_Rules(t *testing.T) {
	valid := func() *spell.Spell {
		return &spell.Spell{
			Name:        "Shield",
			Level:       1,
			School:      spell.SchoolAbjuration,
			CastingTime: "1 reaction, which you take when you are hit by an attack",
			Range:       "Self",
			Duration:    "1 round",
			Components:  []string{spell.ComponentVerbal, spell.ComponentSomatic},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*spell.Spell)
		field   string
		message string
	}{
		{"name_blank", func(s *spell.Spell) { s.Name, s.Index = "  ", "shield" }, "name", "This field is required"},
		{"name_too_long", func(s *spell.Spell) { s.Name, s.Index = strings.Repeat("a", 201), "shield" }, "name", "Maximum 200 characters"},
		{"unknown_school", func(s *spell.Spell) { s.School = "chronurgy" }, "school", "Must be one of: abjuration, conjuration, divination, enchantment, evocation, illusion, necromancy, transmutation"},
		{"malformed_id", func(s *spell.Spell) { s.ID = "shield-1" }, "id", "Must be a UUID"},
		{"level_out_of_range", func(s *spell.Spell) { s.Level = -1 }, "level", "Must be between 0 and 9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := valid()
			tt.mutate(entry)

			err := spell.NewService(newMemoryRepository(), nil, discardLogger()).CreateSpell(context.Background(), entry)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			require.Len(t, appError.Details, 1)
			assert.Equal(t, apperr.FieldError{Field: tt.field, Message: tt.message}, appError.Details[0])
		})
	}

	// A client-supplied UUID is kept.
	entry := valid()
	entry.ID = "01890a5d-ac96-774b-bcce-b302099a8057"
	require.NoError(t, spell.NewService(newMemoryRepository(), nil, discardLogger()).CreateSpell(context.Background(), entry))
	assert.Equal(t, "01890a5d-ac96-774b-bcce-b302099a8057", entry.ID)
}

/*
TestService_ListSpells_MatchAllLog reports match_all from the compiled tree,
so a filter holding only unknown keys is logged as matching everything.
*/
func TestService_ListSpells_MatchAllLog(t *testing.T) {
	tests := []struct {
		name     string
		filter   *spell.Filter
		matchAll bool
	}{
		{"nil_filter", nil, true},
		{"unknown_keys_only", &spell.Filter{RangeCategories: []spell.RangeCategory{"bogus"}}, true},
		{"level", &spell.Filter{Levels: []int{3}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buffer bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
			service := spell.NewService(seedRepository(t), nil, logger)

			_, _, err := service.ListSpells(context.Background(), tt.filter, 20, 0)
			require.NoError(t, err)

			var entry struct {
				Msg      string `json:"msg"`
				MatchAll bool   `json:"match_all"`
			}
			require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
			assert.Equal(t, "spell_list_compiled", entry.Msg)
			assert.Equal(t, tt.matchAll, entry.MatchAll)
		})
	}
}
