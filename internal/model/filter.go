package model

import (
	"strings"
	"time"
)

// Field names a filterable or sortable player attribute
type Field string

const (
	FieldID         Field = "id"
	FieldName       Field = "name"
	FieldTitle      Field = "title"
	FieldRace       Field = "race"
	FieldProfession Field = "profession"
	FieldExperience Field = "experience"
	FieldLevel      Field = "level"
	FieldBirthday   Field = "birthday"
	FieldBanned     Field = "banned"
)

// Op is a comparison operator used in a filter clause
type Op string

const (
	OpContains Op = "contains" // case-sensitive substring
	OpEq       Op = "eq"
	OpGte      Op = "gte"
	OpLte      Op = "lte"
)

// Clause is a single {field, operator, value} condition.
// Value holds a string, Race, Profession, bool, int or time.Time depending on Field.
type Clause struct {
	Field Field
	Op    Op
	Value any
}

// Filter holds the optional constraints of a list or count request.
// A nil field is not applied.
type Filter struct {
	Name          *string
	Title         *string
	Race          *Race
	Profession    *Profession
	After         *time.Time // birthday >= After
	Before        *time.Time // birthday <= Before
	Banned        *bool
	MinExperience *int
	MaxExperience *int
	MinLevel      *int
	MaxLevel      *int
}

// Clauses returns the active conditions of the filter. They are meant to be
// combined with AND; an empty result matches every player.
func (f Filter) Clauses() []Clause {
	var clauses []Clause
	add := func(field Field, op Op, value any) {
		clauses = append(clauses, Clause{Field: field, Op: op, Value: value})
	}

	if f.Name != nil {
		add(FieldName, OpContains, *f.Name)
	}
	if f.Title != nil {
		add(FieldTitle, OpContains, *f.Title)
	}
	if f.Race != nil {
		add(FieldRace, OpEq, *f.Race)
	}
	if f.Profession != nil {
		add(FieldProfession, OpEq, *f.Profession)
	}
	if f.After != nil {
		add(FieldBirthday, OpGte, *f.After)
	}
	if f.Before != nil {
		add(FieldBirthday, OpLte, *f.Before)
	}
	if f.Banned != nil {
		add(FieldBanned, OpEq, *f.Banned)
	}
	if f.MinExperience != nil {
		add(FieldExperience, OpGte, *f.MinExperience)
	}
	if f.MaxExperience != nil {
		add(FieldExperience, OpLte, *f.MaxExperience)
	}
	if f.MinLevel != nil {
		add(FieldLevel, OpGte, *f.MinLevel)
	}
	if f.MaxLevel != nil {
		add(FieldLevel, OpLte, *f.MaxLevel)
	}
	return clauses
}

// Match reports whether the player satisfies every clause of the filter
func (f Filter) Match(p *Player) bool {
	for _, c := range f.Clauses() {
		if !c.Match(p) {
			return false
		}
	}
	return true
}

// Match evaluates a single clause against a player.
// Clauses with an unknown field, operator or value type never match.
func (c Clause) Match(p *Player) bool {
	switch c.Field {
	case FieldName, FieldTitle:
		want, ok := c.Value.(string)
		if !ok || c.Op != OpContains {
			return false
		}
		got := p.Name
		if c.Field == FieldTitle {
			got = p.Title
		}
		return strings.Contains(got, want)
	case FieldRace:
		want, ok := c.Value.(Race)
		return ok && c.Op == OpEq && p.Race == want
	case FieldProfession:
		want, ok := c.Value.(Profession)
		return ok && c.Op == OpEq && p.Profession == want
	case FieldBanned:
		want, ok := c.Value.(bool)
		return ok && c.Op == OpEq && p.Banned == want
	case FieldBirthday:
		want, ok := c.Value.(time.Time)
		if !ok {
			return false
		}
		return compareInt(p.Birthday.UnixMilli(), c.Op, want.UnixMilli())
	case FieldExperience:
		want, ok := c.Value.(int)
		return ok && compareInt(int64(p.Experience), c.Op, int64(want))
	case FieldLevel:
		want, ok := c.Value.(int)
		return ok && compareInt(int64(p.Level), c.Op, int64(want))
	default:
		return false
	}
}

func compareInt(got int64, op Op, want int64) bool {
	switch op {
	case OpEq:
		return got == want
	case OpGte:
		return got >= want
	case OpLte:
		return got <= want
	default:
		return false
	}
}
