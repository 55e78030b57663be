package request

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/playerbase/internal/model"
)

func TestParseFilterAllParams(t *testing.T) {
	values := url.Values{
		"name":          {"Bil"},
		"title":         {"the"},
		"race":          {"hobbit"},
		"profession":    {"ROGUE"},
		"after":         {"946684800000"},
		"before":        {"1262304000000"},
		"banned":        {"true"},
		"minExperience": {"10"},
		"maxExperience": {"500"},
		"minLevel":      {"1"},
		"maxLevel":      {"2"},
	}

	f, err := ParseFilter(values)
	require.NoError(t, err)

	assert.Equal(t, "Bil", *f.Name)
	assert.Equal(t, "the", *f.Title)
	assert.Equal(t, model.RaceHobbit, *f.Race)
	assert.Equal(t, model.ProfessionRogue, *f.Profession)
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), *f.After)
	assert.Equal(t, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), *f.Before)
	assert.True(t, *f.Banned)
	assert.Equal(t, 10, *f.MinExperience)
	assert.Equal(t, 500, *f.MaxExperience)
	assert.Equal(t, 1, *f.MinLevel)
	assert.Equal(t, 2, *f.MaxLevel)
	assert.Len(t, f.Clauses(), 11)
}

func TestParseFilterEmptyValuesAreAbsent(t *testing.T) {
	f, err := ParseFilter(url.Values{"name": {""}, "minLevel": {""}})
	require.NoError(t, err)
	assert.Empty(t, f.Clauses())
}

func TestParseFilterRejectsMalformedValues(t *testing.T) {
	cases := map[string]string{
		"minExperience": "ten",
		"maxLevel":      "1.5",
		"banned":        "maybe",
		"after":         "yesterday",
		"race":          "WIZARD",
		"profession":    "BARD",
	}
	for param, value := range cases {
		_, err := ParseFilter(url.Values{param: {value}})
		var perr *ParamError
		require.ErrorAs(t, err, &perr, param)
		assert.Equal(t, param, perr.Param)
		assert.Equal(t, value, perr.Value)
	}

	_, err := ParseFilter(url.Values{"race": {"WIZARD"}})
	assert.ErrorIs(t, err, model.ErrInvalidRace)
}

func TestParsePageDefaults(t *testing.T) {
	page, err := ParsePage(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPage(), page)
}

func TestParsePageValues(t *testing.T) {
	page, err := ParsePage(url.Values{"order": {"level"}, "pageNumber": {"2"}, "pageSize": {"10"}})
	require.NoError(t, err)
	assert.Equal(t, model.Page{Order: model.OrderLevel, Number: 2, Size: 10}, page)
}

func TestParsePageRejectsMalformedValues(t *testing.T) {
	_, err := ParsePage(url.Values{"order": {"AGE"}})
	assert.ErrorIs(t, err, model.ErrInvalidOrder)

	_, err = ParsePage(url.Values{"pageSize": {"three"}})
	var perr *ParamError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ParamPageSize, perr.Param)
}

func TestPlayerRequestToInput(t *testing.T) {
	race, prof := "elf", "Druid"
	birthday := int64(1262304000000)
	in, err := PlayerRequest{Race: &race, Profession: &prof, Birthday: &birthday}.ToInput()
	require.NoError(t, err)
	assert.Equal(t, model.RaceElf, *in.Race)
	assert.Equal(t, model.ProfessionDruid, *in.Profession)
	assert.Equal(t, birthday, in.Birthday.UnixMilli())
	assert.Nil(t, in.Name)

	bad := "WIZARD"
	_, err = PlayerRequest{Race: &bad}.ToInput()
	assert.ErrorIs(t, err, model.ErrInvalidRace)
}
