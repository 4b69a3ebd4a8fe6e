package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	title string
	page  string
}

type MenuModel struct {
	items []menuItem
	idx   int
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{title: "Users", page: pageUsers},
			{title: "Devices", page: pageDevices},
			{title: "Reservations", page: pageReservations},
			{title: "Maintenance", page: pageMaintenance},
			{title: "Quit"},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.enter):
		item := m.items[m.idx]
		if item.page == "" {
			return m, tea.Quit
		}
		return m, func() tea.Msg { return NavigateTo{Page: item.page} }
	}

	return m, nil
}

func (m *MenuModel) View() string {
	rows := make([][]string, 0, len(m.items))
	for i, item := range m.items {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), item.title})
	}

	body := renderTable([]string{"#", "Section"}, rows, m.idx)
	return renderPage("EQUIPMENT POOL", strings.TrimRight(body, "\n"), "enter: open │ ↑/↓: navigate │ v: version │ q: quit")
}
