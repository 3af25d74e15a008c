package items

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func ids(rows []Row) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func sampleRows() []Row {
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	return []Row{
		{ID: 3, Name: "Charlie", CreatedAt: base.Add(2 * time.Hour)},
		{ID: 1, Name: "Alice", CreatedAt: base},
		{ID: 2, Name: "bob", CreatedAt: base.Add(time.Hour)},
	}
}

func TestSortRowsByNameUsesCollation(t *testing.T) {
	got := SortRows(sampleRows(), SortByName, Asc)
	assert.Equal(t, []string{"Alice", "bob", "Charlie"}, names(got))

	got = SortRows(sampleRows(), SortByName, Desc)
	assert.Equal(t, []string{"Charlie", "bob", "Alice"}, names(got))
}

func TestSortRowsByIDDirectionsAreReverses(t *testing.T) {
	asc := SortRows(sampleRows(), SortByID, Asc)
	desc := SortRows(sampleRows(), SortByID, Desc)

	assert.Equal(t, []int64{1, 2, 3}, ids(asc))

	reversed := slices.Clone(desc)
	slices.Reverse(reversed)
	assert.Equal(t, asc, reversed)
}

func TestSortRowsByCreatedAt(t *testing.T) {
	got := SortRows(sampleRows(), SortByCreatedAt, Desc)
	assert.Equal(t, []int64{3, 2, 1}, ids(got))
}

func TestSortRowsDoesNotMutateInput(t *testing.T) {
	in := sampleRows()
	before := slices.Clone(in)

	_ = SortRows(in, SortByName, Asc)

	assert.Equal(t, before, in)
}

func TestSortRowsKeepsInputOrderOnTies(t *testing.T) {
	in := []Row{
		{ID: 7, Name: "same"},
		{ID: 4, Name: "same"},
		{ID: 9, Name: "same"},
	}
	assert.Equal(t, []int64{7, 4, 9}, ids(SortRows(in, SortByName, Asc)))
}

func TestFilterRows(t *testing.T) {
	rows := []Row{
		{ID: 2, Name: "two"},
		{ID: 12, Name: "twelve"},
		{ID: 20, Name: "twenty"},
		{ID: 3, Name: "item 2b"},
		{ID: 5, Name: "five"},
	}

	assert.Equal(t, []int64{2, 12, 20, 3}, ids(FilterRows(rows, "2")))
	assert.Equal(t, []int64{12, 20}, ids(FilterRows(rows, "TWE")))
	assert.Len(t, FilterRows(rows, ""), len(rows))
	assert.Empty(t, FilterRows(rows, "zzz"))
}

func TestIsModificationQuery(t *testing.T) {
	cases := map[string]bool{
		"INSERT INTO test_table (name) VALUES ('x')": true,
		"  update test_table SET name = 'y'":         true,
		"\n\tDelete FROM test_table":                 true,
		"SELECT * FROM test_table":                   false,
		"with x as (delete from t) select 1":         false,
		"":                                           false,
	}
	for query, want := range cases {
		assert.Equal(t, want, IsModificationQuery(query), query)
	}
}

func TestParseSortFieldAndDirection(t *testing.T) {
	f, err := ParseSortField(" Name ")
	require.NoError(t, err)
	assert.Equal(t, SortByName, f)

	_, err = ParseSortField("email")
	assert.Error(t, err)

	d, err := ParseSortDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, Desc, d)
	assert.Equal(t, Asc, d.Flip())

	_, err = ParseSortDirection("up")
	assert.Error(t, err)
}
