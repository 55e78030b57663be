package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerbase/internal/model"
)

type LevelSuite struct {
	suite.Suite
}

func TestLevelSuite(t *testing.T) {
	suite.Run(t, new(LevelSuite))
}

func (s *LevelSuite) TestLevelForKnownThresholds() {
	// Level L starts at 50*L*(L+1) experience
	s.Equal(0, model.LevelFor(0))
	s.Equal(0, model.LevelFor(99))
	s.Equal(1, model.LevelFor(100))
	s.Equal(1, model.LevelFor(299))
	s.Equal(2, model.LevelFor(300))
	s.Equal(3, model.LevelFor(600))
	s.Equal(9, model.LevelFor(5499))
	s.Equal(10, model.LevelFor(5500))
}

func (s *LevelSuite) TestLevelForMaxExperienceMatchesFormula() {
	exp := 10_000_000
	want := int((math.Sqrt(2500+200*float64(exp)) - 50) / 100)
	s.Equal(want, model.LevelFor(exp))
}

func (s *LevelSuite) TestUntilNextLevel() {
	s.Equal(100, model.UntilNextLevel(0, 0))
	s.Equal(1, model.UntilNextLevel(0, 99))
	s.Equal(200, model.UntilNextLevel(1, 100))
	s.Equal(50*11*12-5500, model.UntilNextLevel(10, 5500))
}

func (s *LevelSuite) TestUntilNextLevelNeverNegativeAndLevelMonotonic() {
	prev := 0
	for exp := 0; exp <= 10_000_000; exp++ {
		lvl := model.LevelFor(exp)
		if lvl < prev {
			s.FailNowf("level decreased", "experience %d: level %d < %d", exp, lvl, prev)
		}
		if rest := model.UntilNextLevel(lvl, exp); rest < 0 {
			s.FailNowf("negative until-next-level", "experience %d: %d", exp, rest)
		}
		prev = lvl
	}
}

func (s *LevelSuite) TestSetExperienceRecomputesDerivedFields() {
	p := &model.Player{Experience: 0, Level: 42, UntilNextLevel: -1}

	p.SetExperience(1000)

	s.Equal(1000, p.Experience)
	s.Equal(model.LevelFor(1000), p.Level)
	s.Equal(model.UntilNextLevel(p.Level, 1000), p.UntilNextLevel)
}
