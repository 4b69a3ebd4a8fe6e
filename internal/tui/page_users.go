package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nJurisch/equipment-pool/internal/service"
	"github.com/nJurisch/equipment-pool/models"
)

// UsersModel lists users and lets the operator add and remove them.
type UsersModel struct {
	ctx   context.Context
	users service.UserService

	items []models.User
	pageState
}

func NewUsersModel(ctx context.Context, users service.UserService) *UsersModel {
	return &UsersModel{
		ctx:       ctx,
		users:     users,
		pageState: newPageState(),
	}
}

func (m *UsersModel) Init() tea.Cmd {
	m.form, m.confirm = nil, nil
	return tea.Batch(m.startLoading(), m.cmdLoad(""))
}

func (m *UsersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.updateSpinner(msg); ok {
		return m, cmd
	}

	switch msg := msg.(type) {
	case usersMsg:
		if m.finish(msg.notice, msg.err, msg.users != nil) {
			m.items = msg.users
			m.clamp(len(m.items))
		}
		return m, nil
	case copiedMsg:
		m.copied(msg)
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirm != nil {
		return m.updateConfirm(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		return m, navigateTo(pageMenu)
	case key.Matches(keyMsg, keys.up):
		m.move(-1, len(m.items))
	case key.Matches(keyMsg, keys.down):
		m.move(1, len(m.items))
	case key.Matches(keyMsg, keys.newItem):
		form := newForm("NEW USER",
			formField{label: "E-mail (id)", placeholder: "ada@example.org"},
			formField{label: "Name", placeholder: "Ada Lovelace"},
		)
		m.form = &form
	case key.Matches(keyMsg, keys.delete):
		if u, ok := m.selected(); ok {
			m.confirm = &confirmModel{message: "user \"" + u.ID + "\""}
		}
	case key.Matches(keyMsg, keys.copy):
		if u, ok := m.selected(); ok {
			return m, cmdCopy(u.ID)
		}
	}

	return m, nil
}

func (m *UsersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	result, cmd := m.form.Update(msg)
	switch result {
	case formCancelled:
		m.form = nil
		return m, nil
	case formSubmitted:
		m.form.submitting = true
		m.form.err = ""
		return m, tea.Batch(m.startLoading(), m.cmdCreate(m.form.value(0), m.form.value(1)))
	}
	return m, cmd
}

func (m *UsersModel) updateConfirm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		m.confirm = nil
		if m.loading {
			return m, nil
		}
		if u, ok := m.selected(); ok {
			return m, tea.Batch(m.startLoading(), m.cmdDelete(u.ID))
		}
	case key.Matches(keyMsg, keys.no):
		m.confirm = nil
	}
	return m, nil
}

func (m *UsersModel) selected() (models.User, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return models.User{}, false
	}
	return m.items[m.cursor], true
}

func (m *UsersModel) View() string {
	if m.form != nil {
		return m.form.View()
	}

	rows := make([][]string, 0, len(m.items))
	for _, u := range m.items {
		rows = append(rows, []string{fitText(u.ID, 40), fitText(u.Name, 30)})
	}

	body := "No users yet"
	if len(rows) > 0 {
		body = renderTable([]string{"E-mail", "Name"}, rows, m.cursor)
	}

	return renderPage("USERS", body+m.footer(), "n: new │ d: delete │ c: copy id │ esc: back")
}

func (m *UsersModel) cmdLoad(notice string) tea.Cmd {
	ctx, svc := m.ctx, m.users
	return func() tea.Msg {
		users, err := svc.ListAll(ctx)
		return usersMsg{users: users, notice: notice, err: err}
	}
}

func (m *UsersModel) cmdCreate(id, name string) tea.Cmd {
	ctx, svc := m.ctx, m.users
	return func() tea.Msg {
		created, err := svc.Create(ctx, id, name)
		if err != nil {
			return usersMsg{err: err}
		}
		users, err := svc.ListAll(ctx)
		return usersMsg{users: users, notice: "User " + created.ID + " created", err: err}
	}
}

func (m *UsersModel) cmdDelete(id string) tea.Cmd {
	ctx, svc := m.ctx, m.users
	return func() tea.Msg {
		if err := svc.Delete(ctx, id); err != nil {
			return usersMsg{err: err}
		}
		users, err := svc.ListAll(ctx)
		return usersMsg{users: users, notice: "User " + id + " deleted", err: err}
	}
}
