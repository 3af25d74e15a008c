package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	got := Render([]string{"id", "name"}, [][]string{{"1", "Alice"}, {"12", "bob"}}, 1)

	want := "" +
		"+----+-------+\n" +
		"| id | name  |\n" +
		"+----+-------+\n" +
		"| 1  | Alice |\n" +
		"> 12 | bob   |\n" +
		"+----+-------+\n"
	assert.Equal(t, want, got)
}

func TestRenderPadsShortRowsAndWideRunes(t *testing.T) {
	got := Render([]string{"a", "b"}, [][]string{{"日本"}}, NoCursor)

	want := "" +
		"+------+---+\n" +
		"| a    | b |\n" +
		"+------+---+\n" +
		"| 日本 |   |\n" +
		"+------+---+\n"
	assert.Equal(t, want, got)
}

func TestRenderWithoutColumns(t *testing.T) {
	assert.Equal(t, "(No columns)\n", Render(nil, nil, NoCursor))
}

func TestApplyHorizontalScroll(t *testing.T) {
	s := "abcdef\nxy"

	assert.Equal(t, s, ApplyHorizontalScroll(s, 2, 0))
	assert.Equal(t, "cde\n", ApplyHorizontalScroll(s, 2, 3))
	assert.Equal(t, "abc\nxy", ApplyHorizontalScroll(s, -1, 3))
}
