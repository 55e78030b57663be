package model

import (
	"strings"
	"time"
)

// PlayerID uniquely identifies a player. IDs are assigned by storage and start at 1.
type PlayerID int64

// Race is the closed set of player races
type Race string

const (
	RaceHuman  Race = "HUMAN"
	RaceDwarf  Race = "DWARF"
	RaceElf    Race = "ELF"
	RaceGiant  Race = "GIANT"
	RaceOrc    Race = "ORC"
	RaceTroll  Race = "TROLL"
	RaceHobbit Race = "HOBBIT"
)

// Races lists every valid race in declaration order
var Races = []Race{RaceHuman, RaceDwarf, RaceElf, RaceGiant, RaceOrc, RaceTroll, RaceHobbit}

// ParseRace converts a case-insensitive race name into a Race
func ParseRace(s string) (Race, error) {
	want := Race(strings.ToUpper(strings.TrimSpace(s)))
	for _, r := range Races {
		if r == want {
			return r, nil
		}
	}
	return "", ErrInvalidRace
}

// Profession is the closed set of player professions
type Profession string

const (
	ProfessionWarrior  Profession = "WARRIOR"
	ProfessionRogue    Profession = "ROGUE"
	ProfessionSorcerer Profession = "SORCERER"
	ProfessionCleric   Profession = "CLERIC"
	ProfessionPaladin  Profession = "PALADIN"
	ProfessionNazgul   Profession = "NAZGUL"
	ProfessionWarlock  Profession = "WARLOCK"
	ProfessionDruid    Profession = "DRUID"
)

// Professions lists every valid profession in declaration order
var Professions = []Profession{
	ProfessionWarrior, ProfessionRogue, ProfessionSorcerer, ProfessionCleric,
	ProfessionPaladin, ProfessionNazgul, ProfessionWarlock, ProfessionDruid,
}

// ParseProfession converts a case-insensitive profession name into a Profession
func ParseProfession(s string) (Profession, error) {
	want := Profession(strings.ToUpper(strings.TrimSpace(s)))
	for _, p := range Professions {
		if p == want {
			return p, nil
		}
	}
	return "", ErrInvalidProfession
}

// Player is a persisted character record.
// Level and UntilNextLevel are derived from Experience and must only be
// changed through SetExperience.
type Player struct {
	ID             PlayerID
	Name           string
	Title          string
	Race           Race
	Profession     Profession
	Experience     int
	Level          int // derived from Experience
	UntilNextLevel int // derived from Experience and Level
	Birthday       time.Time
	Banned         bool
}

// SetExperience updates experience and recomputes the derived attributes
func (p *Player) SetExperience(experience int) {
	p.Experience = experience
	p.Level = LevelFor(experience)
	p.UntilNextLevel = UntilNextLevel(p.Level, experience)
}

// Clone returns a copy of the player that shares no state with the original
func (p *Player) Clone() *Player {
	c := *p
	return &c
}
