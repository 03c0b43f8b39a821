// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spell

import (
	"slices"

	"github.com/taibuivan/spellbook/pkg/predicate"
)

// # Category Dimensions

// Dimension identifies one of the three category groupings of a spell search.
type Dimension string

const (
	DimensionRange       Dimension = "range"
	DimensionDuration    Dimension = "duration"
	DimensionCastingTime Dimension = "casting_time"
)

// Dimensions lists every dimension in compilation order.
var Dimensions = []Dimension{DimensionRange, DimensionDuration, DimensionCastingTime}

// Field returns the spell field a dimension's conditions apply to.
func (d Dimension) Field() string {
	switch d {
	case DimensionRange:
		return FieldRange
	case DimensionDuration:
		return FieldDuration
	case DimensionCastingTime:
		return FieldCastingTime
	}
	return ""
}

// # Table Entries

// EntryKind tells how a category key matches stored values.
type EntryKind string

const (
	// EntryPrefix matches every stored value beginning with a literal.
	EntryPrefix EntryKind = "prefix"

	// EntryExact matches one of an enumerated list of stored values.
	EntryExact EntryKind = "exact"
)

// TableEntry is the matching rule for one category key.
type TableEntry struct {
	Kind   EntryKind `json:"kind"`
	Prefix string    `json:"prefix,omitempty"`
	Values []string  `json:"values,omitempty"`
}

func prefixMatch(literal string) TableEntry {
	return TableEntry{Kind: EntryPrefix, Prefix: literal}
}

func exactSet(values ...string) TableEntry {
	return TableEntry{Kind: EntryExact, Values: values}
}

// # Category Value Tables
//
// The literals below are exactly what the spell data stores. Changing them
// silently breaks search against existing rows.

var rangeTable = map[string]TableEntry{
	string(RangeSelf):    prefixMatch("Self"),
	string(RangeTouch):   exactSet("Touch"),
	string(RangeShort):   exactSet("5 feet", "10 feet", "15 feet", "20 feet", "30 feet"),
	string(RangeMedium):  exactSet("60 feet", "90 feet", "100 feet", "120 feet", "150 feet"),
	string(RangeLong):    exactSet("300 feet", "500 feet", "1 mile", "500 miles"),
	string(RangeSight):   exactSet("Sight"),
	string(RangeSpecial): exactSet("Special", "Unlimited"),
}

var durationTable = map[string]TableEntry{
	string(DurationInstantaneous):  exactSet("Instantaneous", "Instantaneous (see below)", "Instantaneous or 1 hour"),
	string(DurationOneRound):       exactSet("1 round", "Up to 1 round"),
	string(DurationUpToOneMinute):  exactSet("1 minute", "Up to 1 minute"),
	string(DurationUpToTenMinutes): exactSet("10 minutes", "Up to 10 minutes"),
	string(DurationUpToOneHour):    exactSet("1 hour", "Up to 1 hour"),
	string(DurationUpToEightHours): exactSet("8 hours", "Up to 8 hours"),
	string(DurationUpToOneDay):     exactSet("24 hours", "Up to 24 hours"),
	string(DurationDaysPlus):       exactSet("7 days", "10 days", "30 days"),
	string(DurationUntilDispelled): exactSet("Until dispelled", "Until dispelled or triggered"),
	string(DurationSpecial):        exactSet("Special"),
}

var castingTimeTable = map[string]TableEntry{
	string(CastingTimeAction):      exactSet("1 action"),
	string(CastingTimeBonusAction): exactSet("1 bonus action"),
	string(CastingTimeReaction):    prefixMatch("1 reaction"),
	string(CastingTimeOneMinute):   exactSet("1 minute"),
	string(CastingTimeTenMinutes):  exactSet("10 minutes"),
	string(CastingTimeHourPlus):    exactSet("1 hour", "8 hours", "12 hours", "24 hours"),
}

func tableFor(dimension Dimension) map[string]TableEntry {
	switch dimension {
	case DimensionRange:
		return rangeTable
	case DimensionDuration:
		return durationTable
	case DimensionCastingTime:
		return castingTimeTable
	}
	return nil
}

// # Table Access

// Lookup returns the matching rule for key in the given dimension.
// Unknown dimensions and keys report false; they are not errors.
func Lookup(dimension Dimension, key string) (TableEntry, bool) {
	entry, ok := tableFor(dimension)[key]
	if !ok {
		return TableEntry{}, false
	}
	entry.Values = slices.Clone(entry.Values)
	return entry, true
}

// Table returns a copy of a dimension's full table.
func Table(dimension Dimension) map[string]TableEntry {
	source := tableFor(dimension)
	if source == nil {
		return nil
	}

	table := make(map[string]TableEntry, len(source))
	for key, entry := range source {
		entry.Values = slices.Clone(entry.Values)
		table[key] = entry
	}
	return table
}

// Keys returns the sorted category keys of a dimension.
func Keys(dimension Dimension) []string {
	source := tableFor(dimension)
	result := make([]string, 0, len(source))
	for key := range source {
		result = append(result, key)
	}
	slices.Sort(result)
	return result
}

// # Category OR Builder

/*
BuildOr compiles the requested keys of one dimension into its OR-group members.

Description: Keys are processed in caller order. Unknown keys and keys whose
exact set is empty contribute nothing, so the result is never longer than the
input and is empty for an empty request.

Parameters:
  - dimension: Dimension
  - requested: []string (Category keys as sent by the client)

Returns:
  - []predicate.Predicate: StartsWith or InSet conditions on the dimension's field
*/
func BuildOr(dimension Dimension, requested []string) []predicate.Predicate {
	return buildOr(tableFor(dimension), dimension.Field(), requested)
}

func buildOr(table map[string]TableEntry, field string, requested []string) []predicate.Predicate {
	if len(requested) == 0 {
		return nil
	}

	var conditions []predicate.Predicate
	for _, key := range requested {
		entry, ok := table[key]
		if !ok {
			continue
		}

		switch entry.Kind {
		case EntryPrefix:
			conditions = append(conditions, predicate.StartsWith(field, entry.Prefix))
		case EntryExact:
			// An empty exact set contributes nothing rather than an InSet that matches no row
			if len(entry.Values) > 0 {
				conditions = append(conditions, predicate.InSet(field, slices.Clone(entry.Values)))
			}
		}
	}

	return conditions
}
