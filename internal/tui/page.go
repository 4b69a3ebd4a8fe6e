package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	defaultClipboard = clipboard.WriteAll

	// writeClipboard is swapped out in tests.
	writeClipboard = defaultClipboard
)

// pageState is the part every list page shares: cursor, loading spinner,
// status line, open form and pending delete confirmation.
type pageState struct {
	cursor  int
	loading bool
	spinner spinner.Model
	status  string
	errMsg  string

	form    *formModel
	confirm *confirmModel
}

func newPageState() pageState {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return pageState{spinner: s}
}

func (p *pageState) startLoading() tea.Cmd {
	p.loading = true
	return p.spinner.Tick
}

func (p *pageState) move(delta, n int) {
	p.cursor += delta
	p.clamp(n)
}

func (p *pageState) clamp(n int) {
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// finish applies the outcome of a load or mutation. It reports whether the
// message carried a fresh list.
func (p *pageState) finish(notice string, err error, refreshed bool) bool {
	p.loading = false
	if p.form != nil {
		p.form.submitting = false
	}

	if err != nil {
		p.status = ""
		if p.form != nil {
			p.form.err = humanizeError(err)
		} else {
			p.errMsg = humanizeError(err)
		}
		return refreshed
	}

	p.form = nil
	p.errMsg = ""
	p.status = notice
	return true
}

func (p *pageState) updateSpinner(msg tea.Msg) (tea.Cmd, bool) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil, false
	}
	if !p.loading {
		return nil, true
	}
	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(tick)
	return cmd, true
}

func (p *pageState) copied(msg copiedMsg) {
	if msg.err != nil {
		p.errMsg = "Copy failed: " + msg.err.Error()
		return
	}
	p.errMsg = ""
	p.status = "Copied " + msg.value
}

func (p pageState) footer() string {
	var b strings.Builder
	if p.loading {
		b.WriteString("\n")
		b.WriteString(p.spinner.View())
		b.WriteString(" working...")
	}
	if p.status != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render("OK: " + p.status))
	}
	if p.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + p.errMsg))
	}
	if p.confirm != nil {
		b.WriteString("\n\n")
		b.WriteString(p.confirm.View())
	}
	return b.String()
}

func cmdCopy(value string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{value: value, err: writeClipboard(value)}
	}
}

func navigateTo(page string) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page} }
}
