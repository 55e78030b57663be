package model_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/playerbase/internal/model"
)

func TestParsePlayerOrder(t *testing.T) {
	o, err := model.ParsePlayerOrder("experience")
	require.NoError(t, err)
	assert.Equal(t, model.OrderExperience, o)
	assert.Equal(t, model.FieldExperience, o.Field())

	_, err = model.ParsePlayerOrder("race")
	assert.ErrorIs(t, err, model.ErrInvalidOrder)
}

func TestParseEnums(t *testing.T) {
	r, err := model.ParseRace("Elf")
	require.NoError(t, err)
	assert.Equal(t, model.RaceElf, r)

	_, err = model.ParseRace("GOBLIN")
	assert.ErrorIs(t, err, model.ErrInvalidRace)

	p, err := model.ParseProfession("nazgul")
	require.NoError(t, err)
	assert.Equal(t, model.ProfessionNazgul, p)

	_, err = model.ParseProfession("")
	assert.ErrorIs(t, err, model.ErrInvalidProfession)
}

func TestPageValidateAndOffset(t *testing.T) {
	page := model.DefaultPage()
	require.NoError(t, page.Validate())
	assert.Equal(t, 0, page.Offset())

	page.Number = 1
	assert.Equal(t, 3, page.Offset())

	page.Number = math.MaxInt / 2
	assert.Equal(t, math.MaxInt, page.Offset())

	assert.ErrorIs(t, model.Page{Order: model.OrderID, Number: -1, Size: 3}.Validate(), model.ErrInvalidPage)
	assert.ErrorIs(t, model.Page{Order: model.OrderID, Number: 0, Size: 0}.Validate(), model.ErrInvalidPage)
	assert.ErrorIs(t, model.Page{Order: "AGE", Number: 0, Size: 3}.Validate(), model.ErrInvalidOrder)
}

func TestOrderCompareBreaksTiesByID(t *testing.T) {
	day := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &model.Player{ID: 1, Name: "Bob", Birthday: day}
	b := &model.Player{ID: 2, Name: "Bob", Birthday: day}
	c := &model.Player{ID: 3, Name: "Al", Birthday: day.AddDate(1, 0, 0)}

	assert.Negative(t, model.OrderName.Compare(a, b))
	assert.Positive(t, model.OrderName.Compare(a, c))
	assert.Negative(t, model.OrderBirthday.Compare(b, c))
	assert.Negative(t, model.OrderID.Compare(a, c))
}
