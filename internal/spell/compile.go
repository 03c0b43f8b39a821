// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spell

import (
	"github.com/taibuivan/spellbook/pkg/predicate"
	"github.com/taibuivan/spellbook/pkg/slice"
)

/*
Compile turns a search filter into the predicate handed to the repository.

Description: Simple field conditions come first, in a fixed order, followed by
one OR group per active category dimension (range, duration, casting time).
Each group is a direct child of the top-level And, so two active dimensions
require a match in both. Unrecognised keys, empty sets and a nil filter only
ever drop conditions; the function has no failure mode.

Parameters:
  - filter: *Filter (nil matches every spell)

Returns:
  - predicate.Predicate: Always an And node; And() when nothing constrains the search
*/
func Compile(filter *Filter) predicate.Predicate {
	if filter == nil {
		return predicate.And()
	}

	conditions := simpleConditions(filter)

	// One OR group per dimension that resolved to at least one condition
	var activeGroups []predicate.Predicate
	requested := map[Dimension][]string{
		DimensionRange:       slice.As[string](filter.RangeCategories),
		DimensionDuration:    slice.As[string](filter.DurationCategories),
		DimensionCastingTime: slice.As[string](filter.CastingTimeCategories),
	}
	for _, dimension := range Dimensions {
		if members := BuildOr(dimension, requested[dimension]); len(members) > 0 {
			activeGroups = append(activeGroups, predicate.Or(members...))
		}
	}

	// A single group is appended as-is; several groups each become their own
	// And child, which yields "one match per active dimension".
	switch len(activeGroups) {
	case 0:
	case 1:
		conditions = append(conditions, activeGroups[0])
	default:
		conditions = append(conditions, activeGroups...)
	}

	return predicate.And(conditions...)
}

// simpleConditions emits at most one condition per populated scalar or set field.
func simpleConditions(filter *Filter) []predicate.Predicate {
	var conditions []predicate.Predicate

	if filter.Name != "" {
		conditions = append(conditions, predicate.Contains(FieldName, filter.Name, true))
	}

	if len(filter.Levels) > 0 {
		conditions = append(conditions, predicate.InSet(FieldLevel, filter.Levels))
	}

	if len(filter.Classes) > 0 {
		conditions = append(conditions, predicate.Intersects(FieldClassIndexes, filter.Classes))
	}

	if filter.Ritual != nil {
		conditions = append(conditions, predicate.Equals(FieldRitual, *filter.Ritual))
	}

	// hasHigherLevel=true means the higher-level text must NOT be empty
	if filter.HasHigherLevel != nil {
		conditions = append(conditions, predicate.IsEmpty(FieldHigherLevel, !*filter.HasHigherLevel))
	}

	if len(filter.Components) > 0 {
		conditions = append(conditions, predicate.Intersects(FieldComponents, filter.Components))
	}

	// hasMaterial=true means the material column must NOT be null
	if filter.HasMaterial != nil {
		conditions = append(conditions, predicate.IsNull(FieldMaterial, !*filter.HasMaterial))
	}

	if filter.Concentration != nil {
		conditions = append(conditions, predicate.Equals(FieldConcentration, *filter.Concentration))
	}

	return conditions
}
