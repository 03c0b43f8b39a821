// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package spell defines the spell catalogue used by character sheets.

It owns the spell entity, the search [Filter] and the compiler that turns a
filter into a [predicate.Predicate] the storage layer can execute.

Core Responsibility:

  - Catalogue: Spell metadata (level, school, components, casting rules).
  - Discovery: Category tables mapping coarse buckets (e.g. "short" range) to
    the literal strings stored on each spell.
  - Search: [Compile] builds the condition tree for a spell search request.

The compiler is pure; everything that touches Postgres, Redis or HTTP lives in
the store_*, service and http files of this package.
*/
package spell

import (
	"time"

	"github.com/taibuivan/spellbook/pkg/predicate"
)

// # Domain Enums

// School is the school of magic a spell belongs to.
type School string

const (
	SchoolAbjuration    School = "abjuration"
	SchoolConjuration   School = "conjuration"
	SchoolDivination    School = "divination"
	SchoolEnchantment   School = "enchantment"
	SchoolEvocation     School = "evocation"
	SchoolIllusion      School = "illusion"
	SchoolNecromancy    School = "necromancy"
	SchoolTransmutation School = "transmutation"
)

// Schools lists every recognised [School] value.
var Schools = []School{
	SchoolAbjuration,
	SchoolConjuration,
	SchoolDivination,
	SchoolEnchantment,
	SchoolEvocation,
	SchoolIllusion,
	SchoolNecromancy,
	SchoolTransmutation,
}

// Spell components as stored in [Spell.Components].
const (
	ComponentVerbal   = "V"
	ComponentSomatic  = "S"
	ComponentMaterial = "M"
)

// # Core Entities

// Spell is a single entry of the spell catalogue.
type Spell struct {
	ID            string    `json:"id"              yaml:"-"`
	Index         string    `json:"index"           yaml:"index"          validate:"omitempty,max=120"`
	Name          string    `json:"name"            yaml:"name"`
	Level         int       `json:"level"           yaml:"level"`
	School        School    `json:"school"          yaml:"school"`
	CastingTime   string    `json:"casting_time"    yaml:"casting_time"   validate:"required"`
	Range         string    `json:"range"           yaml:"range"          validate:"required"`
	Duration      string    `json:"duration"        yaml:"duration"       validate:"required"`
	Components    []string  `json:"components"      yaml:"components"     validate:"dive,oneof=V S M"`
	Material      *string   `json:"material"        yaml:"material"`
	Ritual        bool      `json:"ritual"          yaml:"ritual"`
	Concentration bool      `json:"concentration"   yaml:"concentration"`
	Description   []string  `json:"desc"            yaml:"desc"`
	HigherLevel   []string  `json:"higher_level"    yaml:"higher_level"`
	ClassIndexes  []string  `json:"class_indexes"   yaml:"classes"`
	CreatedAt     time.Time `json:"created_at"      yaml:"-"`
	UpdatedAt     time.Time `json:"updated_at"      yaml:"-"`
}

// # Field Identifiers

// Logical field names referenced by compiled predicates.
const (
	FieldName          = "name"
	FieldLevel         = "level"
	FieldClassIndexes  = "classIndexes"
	FieldRitual        = "ritual"
	FieldHigherLevel   = "higherLevel"
	FieldComponents    = "components"
	FieldMaterial      = "material"
	FieldConcentration = "concentration"
	FieldRange         = "range"
	FieldDuration      = "duration"
	FieldCastingTime   = "castingTime"
)

// Record exposes the spell's searchable attributes for [predicate.Match].
func (s *Spell) Record() predicate.Record {
	return predicate.Record{
		FieldName:          s.Name,
		FieldLevel:         s.Level,
		FieldClassIndexes:  s.ClassIndexes,
		FieldRitual:        s.Ritual,
		FieldHigherLevel:   s.HigherLevel,
		FieldComponents:    s.Components,
		FieldMaterial:      s.Material,
		FieldConcentration: s.Concentration,
		FieldRange:         s.Range,
		FieldDuration:      s.Duration,
		FieldCastingTime:   s.CastingTime,
	}
}
