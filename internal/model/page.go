package model

import (
	"cmp"
	"math"
	"strings"
)

// PlayerOrder selects the field a player listing is sorted by (ascending)
type PlayerOrder string

const (
	OrderID         PlayerOrder = "ID"
	OrderName       PlayerOrder = "NAME"
	OrderTitle      PlayerOrder = "TITLE"
	OrderExperience PlayerOrder = "EXPERIENCE"
	OrderBirthday   PlayerOrder = "BIRTHDAY"
	OrderLevel      PlayerOrder = "LEVEL"
)

var orderFields = map[PlayerOrder]Field{
	OrderID:         FieldID,
	OrderName:       FieldName,
	OrderTitle:      FieldTitle,
	OrderExperience: FieldExperience,
	OrderBirthday:   FieldBirthday,
	OrderLevel:      FieldLevel,
}

// ParsePlayerOrder converts a case-insensitive order name into a PlayerOrder
func ParsePlayerOrder(s string) (PlayerOrder, error) {
	o := PlayerOrder(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := orderFields[o]; !ok {
		return "", ErrInvalidOrder
	}
	return o, nil
}

// Field returns the player attribute the order sorts by
func (o PlayerOrder) Field() Field {
	if f, ok := orderFields[o]; ok {
		return f
	}
	return FieldID
}

// Compare orders two players by the selected field, falling back to ID on ties
func (o PlayerOrder) Compare(a, b *Player) int {
	var c int
	switch o.Field() {
	case FieldName:
		c = strings.Compare(a.Name, b.Name)
	case FieldTitle:
		c = strings.Compare(a.Title, b.Title)
	case FieldExperience:
		c = cmp.Compare(a.Experience, b.Experience)
	case FieldBirthday:
		c = a.Birthday.Compare(b.Birthday)
	case FieldLevel:
		c = cmp.Compare(a.Level, b.Level)
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Default paging values used when a request omits them
const (
	DefaultPageNumber = 0
	DefaultPageSize   = 3
)

// Page selects one ordered slice of a player listing.
// Number is zero-based.
type Page struct {
	Order  PlayerOrder
	Number int
	Size   int
}

// DefaultPage returns the first page ordered by ID
func DefaultPage() Page {
	return Page{
		Order:  OrderID,
		Number: DefaultPageNumber,
		Size:   DefaultPageSize,
	}
}

// Validate checks the page bounds
func (p Page) Validate() error {
	if p.Number < 0 || p.Size < 1 {
		return ErrInvalidPage
	}
	if _, ok := orderFields[p.Order]; !ok {
		return ErrInvalidOrder
	}
	return nil
}

// Offset returns the number of records skipped before this page.
// It saturates at math.MaxInt instead of overflowing.
func (p Page) Offset() int {
	if p.Size > 0 && p.Number > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Number * p.Size
}
