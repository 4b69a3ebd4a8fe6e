package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nJurisch/equipment-pool/models"
)

type formField struct {
	label       string
	placeholder string
	value       string
}

// formModel is a column of labelled text inputs with tab focus cycling.
type formModel struct {
	title      string
	labels     []string
	inputs     []textinput.Model
	focus      int
	submitting bool
	err        string
}

type formResult int

const (
	formEditing formResult = iota
	formSubmitted
	formCancelled
)

func newForm(title string, fields ...formField) formModel {
	f := formModel{title: title}
	for _, field := range fields {
		in := textinput.New()
		in.Placeholder = field.placeholder
		in.Width = 40
		in.CharLimit = 256
		in.SetValue(field.value)
		f.labels = append(f.labels, field.label)
		f.inputs = append(f.inputs, in)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *formModel) Update(msg tea.Msg) (formResult, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return formCancelled, nil
		case key.Matches(keyMsg, keys.tab):
			f.focusNext()
			return formEditing, nil
		case key.Matches(keyMsg, keys.backtab):
			f.focusPrev()
			return formEditing, nil
		case key.Matches(keyMsg, keys.enter):
			if f.submitting {
				return formEditing, nil
			}
			return formSubmitted, nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return formEditing, cmd
}

func (f *formModel) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *formModel) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f formModel) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f formModel) dateValue(i int) (models.Date, error) {
	d, err := models.ParseDate(f.value(i))
	if err != nil {
		return models.Date{}, fmt.Errorf("%s: %w", f.labels[i], err)
	}
	return d, nil
}

func (f formModel) intValue(i int) (int, error) {
	n, err := strconv.Atoi(f.value(i))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", f.labels[i])
	}
	return n, nil
}

func (f formModel) floatValue(i int) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(f.value(i), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", f.labels[i])
	}
	return v, nil
}

func (f formModel) View() string {
	labelWidth := 0
	for _, l := range f.labels {
		if w := lipgloss.Width(l); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	for i, in := range f.inputs {
		b.WriteString(fmt.Sprintf("%-*s │ [%s]\n", labelWidth, f.labels[i], in.View()))
	}

	if f.submitting {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + f.err))
		b.WriteString("\n")
	}

	return renderPage(f.title, strings.TrimRight(b.String(), "\n"), "esc: cancel │ tab: next field │ enter: save")
}
