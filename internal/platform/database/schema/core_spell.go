package schema

import "github.com/taibuivan/spellbook/internal/platform/constants"

// CoreSpellTable represents the 'core.spell' table
type CoreSpellTable struct {
	Table         string
	ID            string
	Index         string
	Name          string
	Level         string
	School        string
	CastingTime   string
	Range         string
	Duration      string
	Components    string
	Material      string
	Ritual        string
	Concentration string
	Description   string
	HigherLevel   string
	ClassIndexes  string
	CreatedAt     string
	UpdatedAt     string
}

// CoreSpell is the schema definition for core.spell
var CoreSpell = CoreSpellTable{
	Table:         constants.SchemaCore + ".spell",
	ID:            "id",
	Index:         `"index"`,
	Name:          "name",
	Level:         "level",
	School:        "school",
	CastingTime:   "castingtime",
	Range:         `"range"`,
	Duration:      "duration",
	Components:    "components",
	Material:      "material",
	Ritual:        "ritual",
	Concentration: "concentration",
	Description:   "description",
	HigherLevel:   "higherlevel",
	ClassIndexes:  "classindexes",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t CoreSpellTable) Columns() []string {
	return []string{
		t.ID, t.Index, t.Name, t.Level, t.School, t.CastingTime, t.Range,
		t.Duration, t.Components, t.Material, t.Ritual, t.Concentration,
		t.Description, t.HigherLevel, t.ClassIndexes, t.CreatedAt, t.UpdatedAt,
	}
}
