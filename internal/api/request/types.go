package request

import (
	"time"

	"github.com/mcoot/playerbase/internal/model"
)

// PlayerRequest is the request body for creating or updating a player.
// Omitted and null fields decode to nil and count as not supplied.
type PlayerRequest struct {
	Name       *string `json:"name"`
	Title      *string `json:"title"`
	Race       *string `json:"race"`
	Profession *string `json:"profession"`
	Birthday   *int64  `json:"birthday"` // Unix millis
	Experience *int    `json:"experience"`
	Banned     *bool   `json:"banned"`
}

// ToInput converts the request into a model.PlayerInput.
// Unknown race or profession names are rejected.
func (r PlayerRequest) ToInput() (model.PlayerInput, error) {
	in := model.PlayerInput{
		Name:       r.Name,
		Title:      r.Title,
		Experience: r.Experience,
		Banned:     r.Banned,
	}

	if r.Race != nil {
		race, err := model.ParseRace(*r.Race)
		if err != nil {
			return model.PlayerInput{}, err
		}
		in.Race = &race
	}
	if r.Profession != nil {
		prof, err := model.ParseProfession(*r.Profession)
		if err != nil {
			return model.PlayerInput{}, err
		}
		in.Profession = &prof
	}
	if r.Birthday != nil {
		birthday := time.UnixMilli(*r.Birthday).UTC()
		in.Birthday = &birthday
	}

	return in, nil
}
