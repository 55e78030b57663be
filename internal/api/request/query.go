package request

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/mcoot/playerbase/internal/model"
)

// Query parameter names accepted by the list and count endpoints
const (
	ParamName          = "name"
	ParamTitle         = "title"
	ParamRace          = "race"
	ParamProfession    = "profession"
	ParamAfter         = "after"
	ParamBefore        = "before"
	ParamBanned        = "banned"
	ParamMinExperience = "minExperience"
	ParamMaxExperience = "maxExperience"
	ParamMinLevel      = "minLevel"
	ParamMaxLevel      = "maxLevel"
	ParamOrder         = "order"
	ParamPageNumber    = "pageNumber"
	ParamPageSize      = "pageSize"
)

// ParamError reports a query parameter that could not be parsed
type ParamError struct {
	Param string
	Value string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid value %q for parameter %s", e.Value, e.Param)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

type queryParser struct {
	values url.Values
	err    error
}

// lookup returns the parameter value; empty values count as absent
func (p *queryParser) lookup(name string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v := p.values.Get(name)
	return v, v != ""
}

func (p *queryParser) fail(name, value string, err error) {
	p.err = &ParamError{Param: name, Value: value, Err: err}
}

func (p *queryParser) optString(name string) *string {
	v, ok := p.lookup(name)
	if !ok {
		return nil
	}
	return &v
}

func (p *queryParser) optInt(name string) *int {
	v, ok := p.lookup(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(name, v, err)
		return nil
	}
	return &n
}

func (p *queryParser) optBool(name string) *bool {
	v, ok := p.lookup(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(name, v, err)
		return nil
	}
	return &b
}

// optMillis parses a Unix-millisecond timestamp
func (p *queryParser) optMillis(name string) *time.Time {
	v, ok := p.lookup(name)
	if !ok {
		return nil
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.fail(name, v, err)
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}

func (p *queryParser) optRace(name string) *model.Race {
	v, ok := p.lookup(name)
	if !ok {
		return nil
	}
	r, err := model.ParseRace(v)
	if err != nil {
		p.fail(name, v, err)
		return nil
	}
	return &r
}

func (p *queryParser) optProfession(name string) *model.Profession {
	v, ok := p.lookup(name)
	if !ok {
		return nil
	}
	prof, err := model.ParseProfession(v)
	if err != nil {
		p.fail(name, v, err)
		return nil
	}
	return &prof
}

// ParseFilter reads the optional filter parameters shared by list and count
func ParseFilter(values url.Values) (model.Filter, error) {
	p := &queryParser{values: values}
	f := model.Filter{
		Name:          p.optString(ParamName),
		Title:         p.optString(ParamTitle),
		Race:          p.optRace(ParamRace),
		Profession:    p.optProfession(ParamProfession),
		After:         p.optMillis(ParamAfter),
		Before:        p.optMillis(ParamBefore),
		Banned:        p.optBool(ParamBanned),
		MinExperience: p.optInt(ParamMinExperience),
		MaxExperience: p.optInt(ParamMaxExperience),
		MinLevel:      p.optInt(ParamMinLevel),
		MaxLevel:      p.optInt(ParamMaxLevel),
	}
	if p.err != nil {
		return model.Filter{}, p.err
	}
	return f, nil
}

// ParsePage reads order and paging parameters, applying defaults for absent ones
func ParsePage(values url.Values) (model.Page, error) {
	p := &queryParser{values: values}
	page := model.DefaultPage()

	if v, ok := p.lookup(ParamOrder); ok {
		order, err := model.ParsePlayerOrder(v)
		if err != nil {
			return model.Page{}, &ParamError{Param: ParamOrder, Value: v, Err: err}
		}
		page.Order = order
	}
	if n := p.optInt(ParamPageNumber); n != nil {
		page.Number = *n
	}
	if n := p.optInt(ParamPageSize); n != nil {
		page.Size = *n
	}
	if p.err != nil {
		return model.Page{}, p.err
	}
	return page, nil
}
