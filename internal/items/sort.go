package items

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortField string

const (
	SortByID        SortField = "id"
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "created_at"
)

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == Asc {
		return Desc
	}
	return Asc
}

func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByID, SortByName, SortByCreatedAt:
		return f, nil
	default:
		return "", fmt.Errorf("unknown sort field %q", s)
	}
}

func ParseSortDirection(s string) (SortDirection, error) {
	switch d := SortDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case Asc, Desc:
		return d, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

// collationTag is the locale names are ordered by.
var collationTag = language.English

// SortRows returns a sorted copy of rows; the input is left untouched.
//
// Names are compared with locale collation, ids and timestamps numerically.
// Equal keys keep their input order.
func SortRows(rows []Row, field SortField, dir SortDirection) []Row {
	out := slices.Clone(rows)
	if len(out) < 2 {
		return out
	}

	var compare func(a, b Row) int
	switch field {
	case SortByName:
		// A Collator keeps internal buffers, so each sort gets its own.
		c := collate.New(collationTag)
		compare = func(a, b Row) int { return c.CompareString(a.Name, b.Name) }
	case SortByCreatedAt:
		compare = func(a, b Row) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		compare = func(a, b Row) int { return cmp.Compare(a.ID, b.ID) }
	}

	if dir == Desc {
		asc := compare
		compare = func(a, b Row) int { return asc(b, a) }
	}

	slices.SortStableFunc(out, compare)
	return out
}

// FilterRows keeps the rows whose lowercased name contains the lowercased
// query, or whose decimal id contains it. An empty query keeps everything.
func FilterRows(rows []Row, query string) []Row {
	if query == "" {
		return slices.Clone(rows)
	}

	q := strings.ToLower(query)
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(fmt.Sprint(r.ID), q) {
			out = append(out, r)
		}
	}
	return out
}

// IsModificationQuery reports whether query starts with INSERT, UPDATE or
// DELETE, ignoring case and surrounding whitespace.
func IsModificationQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return strings.HasPrefix(q, "insert") ||
		strings.HasPrefix(q, "update") ||
		strings.HasPrefix(q, "delete")
}
