package model

import "time"

// PlayerInput carries client-supplied player fields.
// A nil field was not supplied; on update it leaves the stored value untouched.
// Level and UntilNextLevel are never accepted from clients.
type PlayerInput struct {
	Name       *string
	Title      *string
	Race       *Race
	Profession *Profession
	Birthday   *time.Time
	Experience *int
	Banned     *bool
}

// IsEmpty reports whether no field was supplied
func (in PlayerInput) IsEmpty() bool {
	return in.Name == nil && in.Title == nil && in.Race == nil && in.Profession == nil &&
		in.Birthday == nil && in.Experience == nil && in.Banned == nil
}

// ApplyTo copies every supplied field onto p, recomputing the derived
// attributes when experience is among them.
func (in PlayerInput) ApplyTo(p *Player) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Race != nil {
		p.Race = *in.Race
	}
	if in.Profession != nil {
		p.Profession = *in.Profession
	}
	if in.Birthday != nil {
		p.Birthday = *in.Birthday
	}
	if in.Banned != nil {
		p.Banned = *in.Banned
	}
	if in.Experience != nil {
		p.SetExperience(*in.Experience)
	}
}
