package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hrutik5321/rowdeck/internal/db/sqlite"
	"github.com/hrutik5321/rowdeck/internal/items"
	"github.com/hrutik5321/rowdeck/internal/viewstate"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	store, err := sqlite.Open(sqlite.DriverModernc, filepath.Join(t.TempDir(), "app.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	repo := items.NewRepository(store, zerolog.Nop())
	ctrl := viewstate.New(repo, zerolog.Nop())

	m := initialModel(ctrl, repo)
	next, _ := m.Update(initializeCmd(ctrl)())
	return next.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// settle runs cmd and feeds its message back, as the tea runtime would.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	return m
}

func addItem(t *testing.T, m Model, name string) Model {
	t.Helper()
	m, _ = send(t, m, keyRunes("a"))
	m, _ = send(t, m, keyRunes(name))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return settle(t, m, cmd)
}

func TestInitializeLoadsEmptyTable(t *testing.T) {
	m := newTestModel(t)

	assert.False(t, m.busy)
	assert.True(t, m.ctrl.Initialized())
	assert.Equal(t, "0 row(s) loaded.", m.status)
	assert.Contains(t, m.View(), "(No rows)")
}

func TestAddAndDeleteItem(t *testing.T) {
	m := newTestModel(t)

	m = addItem(t, m, "widget")
	require.Len(t, m.ctrl.Items(), 1)
	assert.Equal(t, "Item added. 1 row(s) loaded.", m.status)
	assert.Contains(t, m.View(), "widget")

	m, cmd := send(t, m, keyRunes("d"))
	assert.True(t, m.busy)
	m = settle(t, m, cmd)

	assert.Empty(t, m.ctrl.Items())
	assert.Equal(t, "Item deleted. 0 row(s) loaded.", m.status)
}

func TestAddBlankNameDoesNothing(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, keyRunes("a"))
	m, _ = send(t, m, keyRunes("   "))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, modeItems, m.mode)
	assert.Equal(t, "Name is empty, nothing added.", m.status)
}

func TestSearchFiltersLive(t *testing.T) {
	m := newTestModel(t)
	m = addItem(t, m, "apple")
	m = addItem(t, m, "banana")

	m, _ = send(t, m, keyRunes("/"))
	assert.Equal(t, modeSearch, m.mode)

	m, _ = send(t, m, keyRunes("ban"))
	assert.Equal(t, "ban", m.ctrl.SearchQuery())
	require.Len(t, m.ctrl.Items(), 1)
	assert.Equal(t, "banana", m.ctrl.Items()[0].Name)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeItems, m.mode)
	assert.Empty(t, m.ctrl.SearchQuery())
	assert.Len(t, m.ctrl.Items(), 2)
}

func TestSortKeys(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, keyRunes("2"))
	field, dir := m.ctrl.Sort()
	assert.Equal(t, items.SortByName, field)
	assert.Equal(t, items.Asc, dir)
	assert.Contains(t, m.View(), "name ▲")

	m, _ = send(t, m, keyRunes("2"))
	_, dir = m.ctrl.Sort()
	assert.Equal(t, items.Desc, dir)
	assert.Contains(t, m.View(), "name ▼")
}

func TestRawSelectShowsResult(t *testing.T) {
	m := newTestModel(t)
	m = addItem(t, m, "gizmo")

	m, _ = send(t, m, keyRunes(":"))
	m, _ = send(t, m, keyRunes("SELECT name FROM test_table"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(t, m, cmd)

	assert.Equal(t, [][]string{{"gizmo"}}, m.queryRows)
	assert.Contains(t, m.View(), "Result of: SELECT name FROM test_table")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.queryRows)
}

func TestRawModificationReloadsRows(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, keyRunes(":"))
	m, _ = send(t, m, keyRunes("INSERT INTO test_table (name) VALUES ('raw')"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, reload := send(t, m, cmd())
	assert.True(t, m.busy)
	m = settle(t, m, reload)

	require.Len(t, m.ctrl.Items(), 1)
	assert.Equal(t, "raw", m.ctrl.Items()[0].Name)
}

func TestRawQueryErrorIsShown(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, keyRunes(":"))
	m, _ = send(t, m, keyRunes("SELECT * FROM nope"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(t, m, cmd)

	assert.True(t, strings.HasPrefix(m.status, "Failed to execute raw query: "))
}

func TestOperationErrorIsRenderedAndCleared(t *testing.T) {
	m := newTestModel(t)

	// without the table the next reload fails
	_, err := m.repo.ExecuteRawQuery(context.Background(), "DROP TABLE test_table")
	require.NoError(t, err)

	m, cmd := send(t, m, keyRunes("r"))
	m = settle(t, m, cmd)

	assert.Empty(t, m.status)
	assert.Contains(t, m.View(), "Failed to load data")

	m, _ = send(t, m, keyRunes("c"))
	assert.Empty(t, m.ctrl.ErrorMessage())
	assert.NotContains(t, m.View(), "Failed to load data")
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "NULL", formatCell(nil))
	assert.Equal(t, "abc", formatCell([]byte("abc")))
	assert.Equal(t, "42", formatCell(int64(42)))
	assert.Equal(t, "2026-03-01 09:30:00", formatCell(time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)))
}
