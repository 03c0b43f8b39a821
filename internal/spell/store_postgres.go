// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spell

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/spellbook/internal/platform/apperr"
	"github.com/taibuivan/spellbook/internal/platform/database/schema"
	"github.com/taibuivan/spellbook/internal/platform/dberr"
	"github.com/taibuivan/spellbook/pkg/predicate"
)

// ErrSpellNotFound is returned when no spell has the requested index.
var ErrSpellNotFound = apperr.NotFound("Spell")

// spellColumns maps the logical predicate fields onto core.spell columns.
var spellColumns = predicate.ColumnMap{
	FieldName:          "s." + schema.CoreSpell.Name,
	FieldLevel:         "s." + schema.CoreSpell.Level,
	FieldClassIndexes:  "s." + schema.CoreSpell.ClassIndexes,
	FieldRitual:        "s." + schema.CoreSpell.Ritual,
	FieldHigherLevel:   "s." + schema.CoreSpell.HigherLevel,
	FieldComponents:    "s." + schema.CoreSpell.Components,
	FieldMaterial:      "s." + schema.CoreSpell.Material,
	FieldConcentration: "s." + schema.CoreSpell.Concentration,
	FieldRange:         "s." + schema.CoreSpell.Range,
	FieldDuration:      "s." + schema.CoreSpell.Duration,
	FieldCastingTime:   "s." + schema.CoreSpell.CastingTime,
}

// # PostgreSQL Repository

// spellRepository implements the [Repository] interface using pgx.
type spellRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed spell store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &spellRepository{pool: pool}
}

// selectColumns returns the qualified column list shared by every read query.
func selectColumns() string {
	columns := schema.CoreSpell.Columns()
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = "s." + column
	}
	return strings.Join(qualified, ", ")
}

/*
List returns the spells matching a compiled predicate and the total count.

Description: The predicate is rendered by [predicate.SQL] into a parameterised
WHERE clause. COUNT(*) OVER() returns the total alongside the page so a second
query is not needed.

Parameters:
  - context: context.Context
  - where: predicate.Predicate
  - limit: int
  - offset: int

Returns:
  - []*Spell: Page of spells
  - int: Total matching rows
  - error: Translation or database errors
*/
func (repository *spellRepository) List(context context.Context, where predicate.Predicate, limit, offset int) ([]*Spell, int, error) {

	// Translate the predicate tree into SQL
	clause, args, err := predicate.SQL(where, spellColumns, 1)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to translate spell predicate: %w", err)
	}
	argID := len(args) + 1

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s s
		WHERE %s
		ORDER BY s.%s ASC, s.%s ASC
		LIMIT $%d OFFSET $%d`,
		selectColumns(),
		schema.CoreSpell.Table,
		clause,
		schema.CoreSpell.Level, schema.CoreSpell.Name,
		argID, argID+1,
	)
	args = append(args, limit, offset)

	// Query Execution
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list spells", nil)
	}
	defer rows.Close()

	var spells []*Spell
	var totalCount int

	for rows.Next() {
		spell := &Spell{}
		if err := rows.Scan(append(scanTargets(spell), &totalCount)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan spell", nil)
		}
		spells = append(spells, spell)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate spells", nil)
	}

	return spells, totalCount, nil
}

// FindByIndex returns the spell with the given index slug.
func (repository *spellRepository) FindByIndex(context context.Context, index string) (*Spell, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s s WHERE s.%s = $1`,
		selectColumns(), schema.CoreSpell.Table, schema.CoreSpell.Index)

	spell := &Spell{}
	if err := repository.pool.QueryRow(context, query, index).Scan(scanTargets(spell)...); err != nil {
		return nil, dberr.Wrap(err, "find spell "+index, ErrSpellNotFound)
	}

	return spell, nil
}

/*
Upsert inserts a spell or updates the row that already owns its index.

Description: Uses INSERT ... ON CONFLICT on the unique index column. The
existing ID and CreatedAt survive an update; the returned values are written
back into spell.

Parameters:
  - context: context.Context
  - spell: *Spell

Returns:
  - error: Database errors
*/
func (repository *spellRepository) Upsert(context context.Context, spell *Spell) error {
	table := schema.CoreSpell
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = NOW()
		RETURNING %s, %s, %s`,
		table.Table,
		table.ID, table.Index, table.Name, table.Level, table.School, table.CastingTime, table.Range,
		table.Duration, table.Components, table.Material, table.Ritual, table.Concentration,
		table.Description, table.HigherLevel, table.ClassIndexes,
		table.Index,
		table.Name, table.Name, table.Level, table.Level, table.School, table.School, table.CastingTime, table.CastingTime,
		table.Range, table.Range, table.Duration, table.Duration, table.Components, table.Components, table.Material, table.Material,
		table.Ritual, table.Ritual, table.Concentration, table.Concentration, table.Description, table.Description, table.HigherLevel, table.HigherLevel,
		table.ClassIndexes, table.ClassIndexes, table.UpdatedAt,
		table.ID, table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		spell.ID, spell.Index, spell.Name, spell.Level, spell.School, spell.CastingTime, spell.Range,
		spell.Duration, nonNil(spell.Components), spell.Material, spell.Ritual, spell.Concentration,
		nonNil(spell.Description), nonNil(spell.HigherLevel), nonNil(spell.ClassIndexes),
	).Scan(&spell.ID, &spell.CreatedAt, &spell.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "upsert spell "+spell.Index, nil)
	}

	return nil
}

// scanTargets lists the destinations matching [schema.CoreSpellTable.Columns].
func scanTargets(spell *Spell) []any {
	return []any{
		&spell.ID,
		&spell.Index,
		&spell.Name,
		&spell.Level,
		&spell.School,
		&spell.CastingTime,
		&spell.Range,
		&spell.Duration,
		&spell.Components,
		&spell.Material,
		&spell.Ritual,
		&spell.Concentration,
		&spell.Description,
		&spell.HigherLevel,
		&spell.ClassIndexes,
		&spell.CreatedAt,
		&spell.UpdatedAt,
	}
}

// nonNil turns a nil slice into an empty one so NOT NULL array columns accept it.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
