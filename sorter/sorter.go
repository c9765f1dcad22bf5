// Package sorter provides utilities for parsing and working with sorting options.
// It supports parsing sorting strings (e.g., "name:asc,created_at:desc") into structured
// sorting options and applying them to bun queries as ORDER BY clauses.
package sorter

import (
	"slices"
	"strings"

	"github.com/uptrace/bun"
)

type (
	SortOpts []Opt

	SortDirection string
)

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"

	// expectedPartsCount is the expected number of parts in a sort option (field:direction).
	expectedPartsCount = 2
)

// MakeFromStr parses a sorting string (e.g., "name:asc,created_at:desc") into a slice of Opt.
// It filters out invalid or disallowed fields and directions, ensuring only valid options are returned.
// The allowedFields parameter specifies the list of fields that are permitted for sorting.
func MakeFromStr(sortString string, allowedFields ...string) SortOpts {
	if sortString == "" {
		return nil
	}

	var options []Opt
	pairs := strings.SplitSeq(sortString, ",")
	for pair := range pairs {
		parts := strings.Split(pair, ":")
		if len(parts) != expectedPartsCount {
			continue
		}

		field := strings.TrimSpace(parts[0])
		if !slices.Contains(allowedFields, field) {
			continue
		}

		direction := strings.ToLower(strings.TrimSpace(parts[1]))
		if direction != string(Asc) && direction != string(Desc) {
			continue
		}

		options = append(options, Opt{
			Field: field,
			Dir:   SortDirection(direction),
		})
	}

	return options
}

// Make creates a slice of Opt from a variadic list of Opt.
// It is a convenience function for creating a slice of sorting options
// without manually initializing a slice.
func Make(sortOptions ...Opt) SortOpts {
	return sortOptions
}

// Apply adds the sorting options to a bun select query as ORDER BY clauses,
// preserving option order. It matches the crud package's Query customizer
// signature, so parsed options plug straight into list operations.
func (s SortOpts) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	for _, opt := range s {
		q = q.OrderExpr("? ?", bun.Ident(opt.Field), bun.Safe(strings.ToUpper(string(opt.Dir))))
	}
	return q
}

// Opt represents a single sorting option, consisting of a field and a direction.
type Opt struct {
	Field string        // Field is the column to sort by.
	Dir   SortDirection // Dir is the sorting direction (asc or desc).
}

// ToSQL converts an Opt into an SQL-compatible clause (e.g., "name asc").
func (o Opt) ToSQL() string {
	return o.Field + " " + string(o.Dir)
}
