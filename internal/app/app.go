package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hrutik5321/rowdeck/internal/items"
	"github.com/hrutik5321/rowdeck/internal/viewstate"
)

func New(ctrl *viewstate.Controller, repo *items.Repository) tea.Model {
	return initialModel(ctrl, repo)
}

func NewProgram(ctrl *viewstate.Controller, repo *items.Repository) *tea.Program {
	return tea.NewProgram(New(ctrl, repo), tea.WithAltScreen())
}
