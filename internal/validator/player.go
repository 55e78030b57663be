package validator

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mcoot/playerbase/internal/model"
)

// Player field limits
const (
	MaxNameLength  = 12
	MaxTitleLength = 30
	MinExperience  = 0
	MaxExperience  = 10_000_000
	MinBirthYear   = 2000
	MaxBirthYear   = 3000
)

// ValidateCreate checks a payload for a new player. Every field except
// banned must be present.
func ValidateCreate(in model.PlayerInput) error {
	v := New()
	v.Check(in.Name != nil, "name", "must be provided")
	v.Check(in.Title != nil, "title", "must be provided")
	v.Check(in.Race != nil, "race", "must be provided")
	v.Check(in.Profession != nil, "profession", "must be provided")
	v.Check(in.Birthday != nil, "birthday", "must be provided")
	v.Check(in.Experience != nil, "experience", "must be provided")
	checkFields(v, in)
	return v.Err()
}

// ValidateUpdate checks a partial payload. Only supplied fields are checked,
// so an empty payload is always valid.
func ValidateUpdate(in model.PlayerInput) error {
	v := New()
	checkFields(v, in)
	return v.Err()
}

func checkFields(v *Validator, in model.PlayerInput) {
	if in.Name != nil {
		v.Check(strings.TrimSpace(*in.Name) != "", "name", "must not be blank")
		v.Check(utf8.RuneCountInString(*in.Name) <= MaxNameLength, "name", "must not be more than 12 characters long")
	}
	if in.Title != nil {
		v.Check(utf8.RuneCountInString(*in.Title) <= MaxTitleLength, "title", "must not be more than 30 characters long")
	}
	if in.Experience != nil {
		v.Check(*in.Experience >= MinExperience, "experience", "must not be negative")
		v.Check(*in.Experience <= MaxExperience, "experience", "must not be greater than 10000000")
	}
	if in.Birthday != nil {
		checkBirthday(v, *in.Birthday)
	}
}

func checkBirthday(v *Validator, birthday time.Time) {
	v.Check(birthday.UnixMilli() >= 0, "birthday", "must not be before the Unix epoch")
	year := birthday.UTC().Year()
	v.Check(year >= MinBirthYear && year <= MaxBirthYear, "birthday", "year must be between 2000 and 3000")
}
