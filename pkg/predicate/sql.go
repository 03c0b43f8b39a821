// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package predicate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned by [SQL] when a node references a field that has no column.
var ErrUnknownField = errors.New("predicate: unknown field")

// ColumnMap resolves logical field names to qualified SQL column expressions (e.g. "s.name").
type ColumnMap map[string]string

// likeEscaper escapes the LIKE wildcards so literals match verbatim.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

/*
SQL renders p as a PostgreSQL boolean expression using $n placeholders.

Description: Placeholders are numbered from firstArg so the clause can be
appended to a query that already binds parameters. Array operands are passed
through untouched and rely on pgx to encode Go slices as Postgres arrays.

Parameters:
  - p: Predicate
  - columns: ColumnMap (Logical field name -> column expression)
  - firstArg: int (Index of the first placeholder, usually 1)

Returns:
  - string: The rendered expression ("TRUE" for a match-all tree)
  - []any: Bind arguments in placeholder order
  - error: ErrUnknownField for unmapped fields
*/
func SQL(p Predicate, columns ColumnMap, firstArg int) (string, []any, error) {
	renderer := &sqlRenderer{columns: columns, next: firstArg}
	if err := renderer.render(p); err != nil {
		return "", nil, err
	}
	return renderer.builder.String(), renderer.args, nil
}

type sqlRenderer struct {
	builder strings.Builder
	columns ColumnMap
	args    []any
	next    int
}

// bind registers an argument and returns its placeholder.
func (renderer *sqlRenderer) bind(value any) string {
	renderer.args = append(renderer.args, value)
	placeholder := fmt.Sprintf("$%d", renderer.next)
	renderer.next++
	return placeholder
}

func (renderer *sqlRenderer) column(field string) (string, error) {
	column, ok := renderer.columns[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return column, nil
}

func (renderer *sqlRenderer) render(p Predicate) error {

	// Combinators
	if p.Kind == KindAnd || p.Kind == KindOr {
		return renderer.renderGroup(p)
	}

	column, err := renderer.column(p.Field)
	if err != nil {
		return err
	}

	switch p.Kind {
	case KindEquals:
		fmt.Fprintf(&renderer.builder, "%s = %s", column, renderer.bind(p.Value))

	case KindContains:
		operator := "LIKE"
		if p.CaseInsensitive {
			operator = "ILIKE"
		}
		pattern := "%" + likeEscaper.Replace(fmt.Sprint(p.Value)) + "%"
		fmt.Fprintf(&renderer.builder, "%s %s %s", column, operator, renderer.bind(pattern))

	case KindInSet:
		fmt.Fprintf(&renderer.builder, "%s = ANY(%s)", column, renderer.bind(p.Values))

	case KindIntersects:
		fmt.Fprintf(&renderer.builder, "%s && %s::text[]", column, renderer.bind(p.Values))

	case KindStartsWith:
		pattern := likeEscaper.Replace(fmt.Sprint(p.Value)) + "%"
		fmt.Fprintf(&renderer.builder, "%s LIKE %s", column, renderer.bind(pattern))

	case KindIsEmpty:
		operator := ">"
		if p.Expected {
			operator = "="
		}
		fmt.Fprintf(&renderer.builder, "COALESCE(cardinality(%s), 0) %s 0", column, operator)

	case KindIsNull:
		if p.Expected {
			fmt.Fprintf(&renderer.builder, "%s IS NULL", column)
		} else {
			fmt.Fprintf(&renderer.builder, "%s IS NOT NULL", column)
		}

	default:
		return fmt.Errorf("predicate: unsupported node kind %s", p.Kind)
	}

	return nil
}

func (renderer *sqlRenderer) renderGroup(p Predicate) error {

	// Identities: an empty And is always true, an empty Or is always false
	if len(p.Children) == 0 {
		if p.Kind == KindAnd {
			renderer.builder.WriteString("TRUE")
		} else {
			renderer.builder.WriteString("FALSE")
		}
		return nil
	}

	joiner := " AND "
	if p.Kind == KindOr {
		joiner = " OR "
	}

	renderer.builder.WriteByte('(')
	for i, child := range p.Children {
		if i > 0 {
			renderer.builder.WriteString(joiner)
		}
		if err := renderer.render(child); err != nil {
			return err
		}
	}
	renderer.builder.WriteByte(')')

	return nil
}
