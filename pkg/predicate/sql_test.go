// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package predicate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/spellbook/pkg/predicate"
)

var columns = predicate.ColumnMap{
	"name":       "s.name",
	"level":      "s.level",
	"classes":    "s.classindexes",
	"ritual":     "s.ritual",
	"higher":     "s.higherlevel",
	"material":   "s.material",
	"range":      "s.range",
	"components": "s.components",
}

/*
TestSQL_Nodes checks the rendering of every node kind.
*/
func TestSQL_Nodes(t *testing.T) {
	tests := []struct {
		name   string
		input  predicate.Predicate
		clause string
		args   []any
	}{
		{"match_all", predicate.And(), "TRUE", nil},
		{"match_none", predicate.Or(), "FALSE", nil},
		{"equals", predicate.Equals("ritual", true), "s.ritual = $1", []any{true}},
		{"contains_ci", predicate.Contains("name", "fire", true), "s.name ILIKE $1", []any{"%fire%"}},
		{"contains_cs", predicate.Contains("name", "Fire", false), "s.name LIKE $1", []any{"%Fire%"}},
		{"contains_escapes_wildcards", predicate.Contains("name", `50%_off\`, true), "s.name ILIKE $1", []any{`%50\%\_off\\%`}},
		{"in_set", predicate.InSet("level", []int{1, 2}), "s.level = ANY($1)", []any{[]int{1, 2}}},
		{"intersects", predicate.Intersects("classes", []string{"wizard"}), "s.classindexes && $1::text[]", []any{[]string{"wizard"}}},
		{"starts_with", predicate.StartsWith("range", "Self"), "s.range LIKE $1", []any{"Self%"}},
		{"is_empty_true", predicate.IsEmpty("higher", true), "COALESCE(cardinality(s.higherlevel), 0) = 0", nil},
		{"is_empty_false", predicate.IsEmpty("higher", false), "COALESCE(cardinality(s.higherlevel), 0) > 0", nil},
		{"is_null_true", predicate.IsNull("material", true), "s.material IS NULL", nil},
		{"is_null_false", predicate.IsNull("material", false), "s.material IS NOT NULL", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args, err := predicate.SQL(tt.input, columns, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.clause, clause)
			assert.Equal(t, tt.args, args)
		})
	}
}

/*
TestSQL_NestedGroups verifies grouping, parenthesisation and placeholder numbering.
*/
func TestSQL_NestedGroups(t *testing.T) {
	tree := predicate.And(
		predicate.Contains("name", "bolt", true),
		predicate.Or(
			predicate.StartsWith("range", "Self"),
			predicate.InSet("range", []string{"Touch"}),
		),
		predicate.IsNull("material", true),
	)

	clause, args, err := predicate.SQL(tree, columns, 3)
	require.NoError(t, err)

	assert.Equal(t, "(s.name ILIKE $3 AND (s.range LIKE $4 OR s.range = ANY($5)) AND s.material IS NULL)", clause)
	assert.Equal(t, []any{"%bolt%", "Self%", []string{"Touch"}}, args)
}

/*
TestSQL_UnknownField ensures unmapped fields surface as ErrUnknownField.
*/
func TestSQL_UnknownField(t *testing.T) {
	_, _, err := predicate.SQL(predicate.And(predicate.Equals("school", "evocation")), columns, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, predicate.ErrUnknownField)
}
