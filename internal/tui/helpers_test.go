package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	ctrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// drain runs cmd and every command it yields, feeding the resulting
// messages back into m. Spinner ticks are dropped so nothing sleeps.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) (tea.Model, []tea.Msg) {
	t.Helper()

	var seen []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		msg := c()
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case spinner.TickMsg, nil:
			continue
		}

		seen = append(seen, msg)
		var next tea.Cmd
		m, next = m.Update(msg)
		queue = append(queue, next)
	}
	return m, seen
}

// press sends a key and drains the commands it triggers.
func press(t *testing.T, m tea.Model, k tea.KeyMsg) (tea.Model, []tea.Msg) {
	t.Helper()
	m, cmd := m.Update(k)
	return drain(t, m, cmd)
}

func hasNavigation(msgs []tea.Msg, page string) bool {
	for _, msg := range msgs {
		if nav, ok := msg.(NavigateTo); ok && nav.Page == page {
			return true
		}
	}
	return false
}

func containsAll(t *testing.T, view string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(view, p) {
			t.Errorf("view does not contain %q:\n%s", p, view)
		}
	}
}
