// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spell

// # Search & Filtering

// RangeCategory is a coarse range bucket (e.g. "self", "short").
type RangeCategory string

const (
	RangeSelf    RangeCategory = "self"
	RangeTouch   RangeCategory = "touch"
	RangeShort   RangeCategory = "short"
	RangeMedium  RangeCategory = "medium"
	RangeLong    RangeCategory = "long"
	RangeSight   RangeCategory = "sight"
	RangeSpecial RangeCategory = "special"
)

// DurationCategory is a coarse duration bucket (e.g. "instantaneous").
type DurationCategory string

const (
	DurationInstantaneous  DurationCategory = "instantaneous"
	DurationOneRound       DurationCategory = "1_round"
	DurationUpToOneMinute  DurationCategory = "up_to_1_minute"
	DurationUpToTenMinutes DurationCategory = "up_to_10_minutes"
	DurationUpToOneHour    DurationCategory = "up_to_1_hour"
	DurationUpToEightHours DurationCategory = "up_to_8_hours"
	DurationUpToOneDay     DurationCategory = "up_to_24_hours"
	DurationDaysPlus       DurationCategory = "days_plus"
	DurationUntilDispelled DurationCategory = "until_dispelled"
	DurationSpecial        DurationCategory = "special"
)

// CastingTimeCategory is a coarse casting time bucket (e.g. "1_action").
type CastingTimeCategory string

const (
	CastingTimeAction      CastingTimeCategory = "1_action"
	CastingTimeBonusAction CastingTimeCategory = "1_bonus_action"
	CastingTimeReaction    CastingTimeCategory = "1_reaction"
	CastingTimeOneMinute   CastingTimeCategory = "1_minute"
	CastingTimeTenMinutes  CastingTimeCategory = "10_minutes"
	CastingTimeHourPlus    CastingTimeCategory = "1_hour_plus"
)

// Filter holds the criteria of a spell search. Every field is optional.
//
// Tri-state booleans use nil for "no condition". Empty slices are treated the
// same as absent ones.
type Filter struct {
	Name                  string                `json:"name,omitempty"                    yaml:"name"`
	Levels                []int                 `json:"levels,omitempty"                  yaml:"levels"`
	Classes               []string              `json:"classes,omitempty"                 yaml:"classes"`
	Ritual                *bool                 `json:"ritual,omitempty"                  yaml:"ritual"`
	Concentration         *bool                 `json:"concentration,omitempty"           yaml:"concentration"`
	HasHigherLevel        *bool                 `json:"has_higher_level,omitempty"        yaml:"has_higher_level"`
	Components            []string              `json:"components,omitempty"              yaml:"components"`
	HasMaterial           *bool                 `json:"has_material,omitempty"            yaml:"has_material"`
	RangeCategories       []RangeCategory       `json:"range_categories,omitempty"        yaml:"range_categories"`
	DurationCategories    []DurationCategory    `json:"duration_categories,omitempty"     yaml:"duration_categories"`
	CastingTimeCategories []CastingTimeCategory `json:"casting_time_categories,omitempty" yaml:"casting_time_categories"`
}
