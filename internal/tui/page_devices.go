package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nJurisch/equipment-pool/internal/service"
	"github.com/nJurisch/equipment-pool/models"
)

const (
	deviceFormName = iota
	deviceFormUser
	deviceFormEndOfLife
	deviceFormInterval
	deviceFormFirst
	deviceFormCost
	deviceFormPolicy
)

// DevicesModel lists devices. New devices book their maintenance according
// to the policy entered in the form.
type DevicesModel struct {
	ctx     context.Context
	devices service.DeviceService

	items      []models.Device
	reassignID string
	pageState
}

func NewDevicesModel(ctx context.Context, devices service.DeviceService) *DevicesModel {
	return &DevicesModel{
		ctx:       ctx,
		devices:   devices,
		pageState: newPageState(),
	}
}

func (m *DevicesModel) Init() tea.Cmd {
	m.form, m.confirm, m.reassignID = nil, nil, ""
	return tea.Batch(m.startLoading(), m.cmdLoad(""))
}

func (m *DevicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.updateSpinner(msg); ok {
		return m, cmd
	}

	switch msg := msg.(type) {
	case devicesMsg:
		if m.finish(msg.notice, msg.err, msg.devices != nil) {
			m.items = msg.devices
			m.clamp(len(m.items))
		}
		if m.form == nil {
			m.reassignID = ""
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
		form := newDeviceForm()
		m.form = &form
	case key.Matches(keyMsg, keys.reassign):
		if d, ok := m.selected(); ok {
			form := newForm("REASSIGN "+strings.ToUpper(d.Name),
				formField{label: "Responsible user", placeholder: "e-mail", value: d.ManagedByUserID},
			)
			m.form = &form
			m.reassignID = d.ID
		}
	case key.Matches(keyMsg, keys.delete):
		if d, ok := m.selected(); ok {
			m.confirm = &confirmModel{message: "device \"" + d.Name + "\" and all its reservations"}
		}
	case key.Matches(keyMsg, keys.copy):
		if d, ok := m.selected(); ok {
			return m, cmdCopy(d.ID)
		}
	}

	return m, nil
}

func newDeviceForm() formModel {
	return newForm("NEW DEVICE",
		formField{label: "Name", placeholder: "Microscope"},
		formField{label: "Responsible user", placeholder: "e-mail"},
		formField{label: "End of life", placeholder: models.DateLayout},
		formField{label: "Interval (days)", placeholder: "90"},
		formField{label: "First maintenance", placeholder: models.DateLayout},
		formField{label: "Cost per maintenance", placeholder: "0.00"},
		formField{label: "Reserve maintenance", placeholder: "next | all | none", value: "next"},
	)
}

func (m *DevicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	result, cmd := m.form.Update(msg)
	switch result {
	case formCancelled:
		m.form = nil
		m.reassignID = ""
		return m, nil
	case formSubmitted:
		if m.reassignID != "" {
			m.form.submitting = true
			m.form.err = ""
			return m, tea.Batch(m.startLoading(), m.cmdReassign(m.reassignID, m.form.value(0)))
		}

		in, policy, err := parseDeviceForm(*m.form)
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.form.submitting = true
		m.form.err = ""
		return m, tea.Batch(m.startLoading(), m.cmdCreate(in, policy))
	}
	return m, cmd
}

func parseDeviceForm(f formModel) (models.DeviceInput, models.ReservePolicy, error) {
	in := models.DeviceInput{
		Name:            f.value(deviceFormName),
		ManagedByUserID: f.value(deviceFormUser),
	}

	var err error
	if in.EndOfLife, err = f.dateValue(deviceFormEndOfLife); err != nil {
		return in, 0, err
	}
	if in.MaintenanceInterval, err = f.intValue(deviceFormInterval); err != nil {
		return in, 0, err
	}
	if in.FirstMaintenance, err = f.dateValue(deviceFormFirst); err != nil {
		return in, 0, err
	}
	if in.MaintenanceCost, err = f.floatValue(deviceFormCost); err != nil {
		return in, 0, err
	}

	policy, err := parsePolicy(f.value(deviceFormPolicy))
	return in, policy, err
}

func parsePolicy(s string) (models.ReservePolicy, error) {
	switch strings.ToLower(s) {
	case "", "next":
		return models.ReserveNext, nil
	case "all":
		return models.ReserveAll, nil
	case "none":
		return models.ReserveNone, nil
	default:
		return 0, fmt.Errorf("reserve maintenance must be next, all or none, got %q", s)
	}
}

func (m *DevicesModel) updateConfirm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		m.confirm = nil
		if m.loading {
			return m, nil
		}
		if d, ok := m.selected(); ok {
			return m, tea.Batch(m.startLoading(), m.cmdDelete(d))
		}
	case key.Matches(keyMsg, keys.no):
		m.confirm = nil
	}
	return m, nil
}

func (m *DevicesModel) selected() (models.Device, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return models.Device{}, false
	}
	return m.items[m.cursor], true
}

func (m *DevicesModel) View() string {
	if m.form != nil {
		return m.form.View()
	}

	rows := make([][]string, 0, len(m.items))
	for _, d := range m.items {
		rows = append(rows, []string{
			fitText(d.Name, 30),
			fitText(d.ManagedByUserID, 30),
			strconv.Itoa(d.MaintenanceInterval),
			d.NextMaintenance.String(),
			d.EndOfLife.String(),
		})
	}

	body := "No devices yet"
	if len(rows) > 0 {
		body = renderTable([]string{"Device", "Responsible", "Interval", "Next maintenance", "End of life"}, rows, m.cursor)
	}

	return renderPage("DEVICES", body+m.footer(), "n: new │ r: reassign │ d: delete │ c: copy id │ esc: back")
}

func (m *DevicesModel) cmdLoad(notice string) tea.Cmd {
	ctx, svc := m.ctx, m.devices
	return func() tea.Msg {
		devices, err := svc.ListAll(ctx)
		return devicesMsg{devices: devices, notice: notice, err: err}
	}
}

func (m *DevicesModel) cmdCreate(in models.DeviceInput, policy models.ReservePolicy) tea.Cmd {
	ctx, svc := m.ctx, m.devices
	return func() tea.Msg {
		created, booked, err := svc.Create(ctx, in, policy)
		if err != nil {
			return devicesMsg{err: err}
		}
		devices, err := svc.ListAll(ctx)
		notice := fmt.Sprintf("Device %s created, %d maintenance slot(s) booked", created.Name, len(booked))
		return devicesMsg{devices: devices, notice: notice, err: err}
	}
}

func (m *DevicesModel) cmdReassign(deviceID, userID string) tea.Cmd {
	ctx, svc := m.ctx, m.devices
	return func() tea.Msg {
		updated, err := svc.UpdateResponsibleUser(ctx, deviceID, userID)
		if err != nil {
			return devicesMsg{err: err}
		}
		devices, err := svc.ListAll(ctx)
		return devicesMsg{devices: devices, notice: updated.Name + " is now managed by " + updated.ManagedByUserID, err: err}
	}
}

func (m *DevicesModel) cmdDelete(d models.Device) tea.Cmd {
	ctx, svc := m.ctx, m.devices
	return func() tea.Msg {
		if err := svc.Delete(ctx, d.ID); err != nil {
			return devicesMsg{err: err}
		}
		devices, err := svc.ListAll(ctx)
		return devicesMsg{devices: devices, notice: "Device " + d.Name + " deleted", err: err}
	}
}
