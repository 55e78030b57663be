package sqlstore

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcoot/playerbase/internal/model"
)

const playerColumns = "id, name, title, race, profession, experience, level, until_next_level, birthday, banned"

// columns maps filterable and sortable fields to their column
var columns = map[model.Field]string{
	model.FieldID:         "id",
	model.FieldName:       "name",
	model.FieldTitle:      "title",
	model.FieldRace:       "race",
	model.FieldProfession: "profession",
	model.FieldExperience: "experience",
	model.FieldLevel:      "level",
	model.FieldBirthday:   "birthday",
	model.FieldBanned:     "banned",
}

var textColumns = map[string]bool{"name": true, "title": true}

// whereClause compiles the filter into an AND-joined condition using ?
// placeholders. An empty filter yields an empty string.
func (d Dialect) whereClause(filter model.Filter) (string, []any, error) {
	clauses := filter.Clauses()
	conds := make([]string, 0, len(clauses))
	args := make([]any, 0, len(clauses))

	for _, c := range clauses {
		column, ok := columns[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("unsupported filter field %q", c.Field)
		}

		var cond string
		switch c.Op {
		case model.OpContains:
			cond = d.containsExpr(column)
		case model.OpEq:
			cond = column + " = ?"
		case model.OpGte:
			cond = column + " >= ?"
		case model.OpLte:
			cond = column + " <= ?"
		default:
			return "", nil, fmt.Errorf("unsupported filter operator %q", c.Op)
		}

		conds = append(conds, cond)
		args = append(args, sqlValue(c.Value))
	}

	return strings.Join(conds, " AND "), args, nil
}

func sqlValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.UnixMilli()
	case model.Race:
		return string(val)
	case model.Profession:
		return string(val)
	default:
		return val
	}
}

func (d Dialect) orderByClause(order model.PlayerOrder) string {
	column := columns[order.Field()]
	if column == "id" {
		return "id ASC"
	}
	return d.orderExpr(column, textColumns[column]) + " ASC, id ASC"
}

func (d Dialect) listQuery(filter model.Filter, page model.Page) (string, []any, error) {
	where, args, err := d.whereClause(filter)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT " + playerColumns + " FROM players")
	if where != "" {
		b.WriteString(" WHERE " + where)
	}
	b.WriteString(" ORDER BY " + d.orderByClause(page.Order))
	b.WriteString(" LIMIT ? OFFSET ?")

	return b.String(), append(args, page.Size, page.Offset()), nil
}

func (d Dialect) countQuery(filter model.Filter) (string, []any, error) {
	where, args, err := d.whereClause(filter)
	if err != nil {
		return "", nil, err
	}
	query := "SELECT COUNT(*) FROM players"
	if where != "" {
		query += " WHERE " + where
	}
	return query, args, nil
}
