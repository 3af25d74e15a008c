package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hrutik5321/rowdeck/internal/items"
	"github.com/hrutik5321/rowdeck/internal/ui/table"
	"github.com/hrutik5321/rowdeck/internal/viewstate"
)

// ----- Modes -----

type mode int

const (
	modeItems mode = iota
	modeSearch
	modeAdd
	modeQuery
)

// ----- Messages from async commands -----

type opResultMsg struct {
	op  viewstate.Op
	err error
}

type queryResultMsg struct {
	query    string
	rows     [][]any
	modified bool
	err      error
}

// ----- Styles -----

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// ----- Model -----

type Model struct {
	ctrl *viewstate.Controller
	repo *items.Repository

	mode    mode
	input   textinput.Model
	spinner spinner.Model

	// busy is set while a command is in flight; new operations wait for it.
	busy   bool
	status string
	cursor int

	// last raw query result
	queryText string
	queryRows [][]string

	// terminal / scroll
	width       int
	horizOffset int
}

// ----- Initial model -----

func initialModel(ctrl *viewstate.Controller, repo *items.Repository) Model {
	input := textinput.New()
	input.CharLimit = 512

	return Model{
		ctrl:    ctrl,
		repo:    repo,
		mode:    modeItems,
		input:   input,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		busy:    true,
		status:  "Opening database...",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(initializeCmd(m.ctrl), m.spinner.Tick)
}

// ----- Commands (async operations) -----

func initializeCmd(ctrl *viewstate.Controller) tea.Cmd {
	return func() tea.Msg {
		return opResultMsg{op: viewstate.OpInitialize, err: ctrl.Initialize(context.Background())}
	}
}

func loadCmd(ctrl *viewstate.Controller) tea.Cmd {
	return func() tea.Msg {
		return opResultMsg{op: viewstate.OpLoad, err: ctrl.LoadItems(context.Background())}
	}
}

func addCmd(ctrl *viewstate.Controller, name string) tea.Cmd {
	return func() tea.Msg {
		return opResultMsg{op: viewstate.OpAdd, err: ctrl.AddItem(context.Background(), name)}
	}
}

func deleteCmd(ctrl *viewstate.Controller, id int64) tea.Cmd {
	return func() tea.Msg {
		return opResultMsg{op: viewstate.OpDelete, err: ctrl.DeleteItem(context.Background(), id)}
	}
}

func rawQueryCmd(repo *items.Repository, query string) tea.Cmd {
	return func() tea.Msg {
		rows, err := repo.ExecuteRawQuery(context.Background(), query)
		return queryResultMsg{
			query:    query,
			rows:     rows,
			modified: repo.IsModificationQuery(query),
			err:      err,
		}
	}
}

// ----- Update -----

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case opResultMsg:
		m.busy = false
		m.clampCursor()
		if msg.err != nil {
			// the controller keeps the error text; show it instead of a status
			m.status = ""
			return m, nil
		}
		m.status = opStatus(msg.op, len(m.ctrl.Snapshot().Rows))
		return m, nil

	case queryResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		if msg.modified {
			m.queryText, m.queryRows = "", nil
			m.busy = true
			m.status = "Statement executed. Reloading rows..."
			return m, loadCmd(m.ctrl)
		}
		m.queryText = msg.query
		m.queryRows = formatTuples(msg.rows)
		m.status = fmt.Sprintf("Query returned %d row(s). Esc to dismiss.", len(msg.rows))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// window size
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func opStatus(op viewstate.Op, n int) string {
	switch op {
	case viewstate.OpAdd:
		return fmt.Sprintf("Item added. %d row(s) loaded.", n)
	case viewstate.OpDelete:
		return fmt.Sprintf("Item deleted. %d row(s) loaded.", n)
	default:
		return fmt.Sprintf("%d row(s) loaded.", n)
	}
}

// ----- Key handling dispatcher -----

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.updateSearchKey(msg)
	case modeAdd, modeQuery:
		return m.updatePromptKey(msg)
	default:
		return m.updateItemsKey(msg)
	}
}

// --- items mode ---

func (m Model) updateItemsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ctrl.Items())-1 {
			m.cursor++
		}

	case "/":
		m.mode = modeSearch
		m.input.Prompt = "Search: "
		m.input.Placeholder = "name or id"
		m.input.SetValue(m.ctrl.SearchQuery())
		return m, m.input.Focus()

	case "a":
		m.mode = modeAdd
		m.input.Prompt = "Name: "
		m.input.Placeholder = "new item"
		m.input.SetValue("")
		return m, m.input.Focus()

	case ":":
		m.mode = modeQuery
		m.input.Prompt = "SQL> "
		m.input.Placeholder = "SELECT * FROM test_table"
		m.input.SetValue("")
		return m, m.input.Focus()

	case "d":
		if m.busy {
			return m, nil
		}
		rows := m.ctrl.Items()
		if len(rows) == 0 {
			return m, nil
		}
		m.cursor = min(m.cursor, len(rows)-1)
		id := rows[m.cursor].ID
		m.busy = true
		m.status = fmt.Sprintf("Deleting row %d...", id)
		return m, deleteCmd(m.ctrl, id)

	case "r":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Reloading rows..."
		return m, loadCmd(m.ctrl)

	case "1":
		m.ctrl.ToggleSort(items.SortByID)
	case "2":
		m.ctrl.ToggleSort(items.SortByName)
	case "3":
		m.ctrl.ToggleSort(items.SortByCreatedAt)

	case "c":
		m.ctrl.ClearError()

	case "esc":
		m.queryText, m.queryRows = "", nil

	// fast horizontal scroll
	case "left", "h":
		m.horizOffset = max(m.horizOffset-4, 0)
	case "right", "l":
		m.horizOffset += 4
	case "shift+left":
		m.horizOffset = max(m.horizOffset-16, 0)
	case "shift+right":
		m.horizOffset += 16
	}

	return m, nil
}

// --- search mode: the filter follows every keystroke ---

func (m Model) updateSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = modeItems
		m.input.Blur()
		m.ctrl.SetSearchQuery("")
		m.cursor = 0
		return m, nil
	case "enter":
		m.mode = modeItems
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetSearchQuery(m.input.Value())
	m.cursor = 0
	return m, cmd
}

// --- add / raw query prompts ---

func (m Model) updatePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = modeItems
		m.input.Blur()
		m.status = "Cancelled."
		return m, nil

	case "enter":
		value := m.input.Value()
		current := m.mode
		m.mode = modeItems
		m.input.Blur()
		if m.busy {
			m.status = "Still working, try again in a moment."
			return m, nil
		}

		if current == modeAdd {
			if strings.TrimSpace(value) == "" {
				m.status = "Name is empty, nothing added."
				return m, nil
			}
			m.busy = true
			m.status = "Adding item..."
			return m, addCmd(m.ctrl, value)
		}

		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		m.busy = true
		m.status = "Running query..."
		return m, rawQueryCmd(m.repo, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ----- Views -----

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("rowdeck: test_table"))
	sb.WriteString("\n\n")

	var body strings.Builder
	state := m.ctrl.Snapshot()
	if state.SearchQuery != "" {
		fmt.Fprintf(&body, "Search: %q\n\n", state.SearchQuery)
	}

	rows := m.ctrl.Items()
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.Cells()
	}
	body.WriteString(table.Render(m.headers(state), cells, m.cursor))
	if len(rows) == 0 {
		body.WriteString("(No rows)\n")
	}

	if m.queryRows != nil || m.queryText != "" {
		fmt.Fprintf(&body, "\nResult of: %s\n", m.queryText)
		body.WriteString(table.Render(tupleHeaders(m.queryRows), m.queryRows, table.NoCursor))
	}

	sb.WriteString(table.ApplyHorizontalScroll(body.String(), m.horizOffset, m.width))

	if m.mode != modeItems {
		sb.WriteString("\n" + m.input.View() + "\n")
	}

	if m.busy || state.Loading {
		sb.WriteString("\n" + m.spinner.View() + " Working...\n")
	}

	if msg := m.ctrl.ErrorMessage(); msg != "" {
		sb.WriteString("\n" + errorStyle.Render(msg) + "  (c to clear)\n")
	}

	if m.status != "" {
		sb.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	sb.WriteString("\n↑/↓ move  / search  a add  d delete  1/2/3 sort id/name/created  r reload  : sql  q quit\n")

	return sb.String()
}

func (m Model) headers(state viewstate.State) []string {
	headers := make([]string, len(items.Columns))
	for i, col := range items.Columns {
		headers[i] = col
		if items.SortField(col) == state.SortField {
			if state.SortDirection == items.Asc {
				headers[i] += " ▲"
			} else {
				headers[i] += " ▼"
			}
		}
	}
	return headers
}

func tupleHeaders(rows [][]string) []string {
	n := 0
	for _, r := range rows {
		n = max(n, len(r))
	}
	if n == 0 {
		return []string{"(empty)"}
	}
	headers := make([]string, n)
	for i := range headers {
		headers[i] = fmt.Sprintf("#%d", i+1)
	}
	return headers
}

func formatTuples(rows [][]any) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		r := make([]string, len(row))
		for j, v := range row {
			r[j] = formatCell(v)
		}
		out[i] = r
	}
	return out
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}
