package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nJurisch/equipment-pool/internal/service"
	"github.com/nJurisch/equipment-pool/models"
)

// ReservationsModel is the booking ledger view.
type ReservationsModel struct {
	ctx          context.Context
	reservations service.ReservationService
	devices      service.DeviceService

	items        []models.ReservationView
	filter       models.ReservationFilter
	filterDevice string
	pageState
}

func NewReservationsModel(ctx context.Context, reservations service.ReservationService, devices service.DeviceService) *ReservationsModel {
	return &ReservationsModel{
		ctx:          ctx,
		reservations: reservations,
		devices:      devices,
		pageState:    newPageState(),
	}
}

func (m *ReservationsModel) Init() tea.Cmd {
	m.form, m.confirm = nil, nil
	return tea.Batch(m.startLoading(), m.cmdLoad(""))
}

func (m *ReservationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.updateSpinner(msg); ok {
		return m, cmd
	}

	switch msg := msg.(type) {
	case reservationsMsg:
		if m.finish(msg.notice, msg.err, msg.views != nil) {
			m.items = msg.views
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
		deviceName := ""
		if v, ok := m.selected(); ok && v.DeviceName != models.UnknownDeviceName {
			deviceName = v.DeviceName
		}
		form := newForm("NEW RESERVATION",
			formField{label: "Device", placeholder: "device name", value: deviceName},
			formField{label: "Reserved by", placeholder: "name"},
			formField{label: "From", placeholder: models.DateLayout},
			formField{label: "Until", placeholder: models.DateLayout},
		)
		m.form = &form
	case key.Matches(keyMsg, keys.maintenance):
		m.filter.MaintenanceOnly = !m.filter.MaintenanceOnly
		return m, tea.Batch(m.startLoading(), m.cmdLoad(""))
	case key.Matches(keyMsg, keys.filter):
		if m.filter.DeviceID != "" {
			m.filter.DeviceID, m.filterDevice = "", ""
		} else if v, ok := m.selected(); ok {
			m.filter.DeviceID, m.filterDevice = v.DeviceID, v.DeviceName
		}
		m.cursor = 0
		return m, tea.Batch(m.startLoading(), m.cmdLoad(""))
	case key.Matches(keyMsg, keys.delete):
		if v, ok := m.selected(); ok {
			m.confirm = &confirmModel{message: fmt.Sprintf("reservation of %s by %s (%s - %s)", v.DeviceName, v.Reserver, v.StartDate, v.EndDate)}
		}
	case key.Matches(keyMsg, keys.copy):
		if v, ok := m.selected(); ok {
			return m, cmdCopy(v.ID)
		}
	}

	return m, nil
}

func (m *ReservationsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	result, cmd := m.form.Update(msg)
	switch result {
	case formCancelled:
		m.form = nil
		return m, nil
	case formSubmitted:
		start, err := m.form.dateValue(2)
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		end, err := m.form.dateValue(3)
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}

		m.form.submitting = true
		m.form.err = ""
		return m, tea.Batch(m.startLoading(), m.cmdCreate(m.form.value(0), m.form.value(1), start, end))
	}
	return m, cmd
}

func (m *ReservationsModel) updateConfirm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		m.confirm = nil
		if m.loading {
			return m, nil
		}
		if v, ok := m.selected(); ok {
			return m, tea.Batch(m.startLoading(), m.cmdDelete(v.ID))
		}
	case key.Matches(keyMsg, keys.no):
		m.confirm = nil
	}
	return m, nil
}

func (m *ReservationsModel) selected() (models.ReservationView, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return models.ReservationView{}, false
	}
	return m.items[m.cursor], true
}

func (m *ReservationsModel) title() string {
	title := "RESERVATIONS"
	if m.filter.MaintenanceOnly {
		title += " · maintenance only"
	}
	if m.filterDevice != "" {
		title += " · " + m.filterDevice
	}
	return title
}

func (m *ReservationsModel) View() string {
	if m.form != nil {
		return m.form.View()
	}

	rows := make([][]string, 0, len(m.items))
	for _, v := range m.items {
		rows = append(rows, []string{
			fitText(v.DeviceName, 30),
			fitText(v.Reserver, 30),
			v.StartDate.String(),
			v.EndDate.String(),
		})
	}

	body := "No reservations"
	if len(rows) > 0 {
		body = renderTable([]string{"Device", "Reserved by", "From", "Until"}, rows, m.cursor)
	}

	return renderPage(m.title(), body+m.footer(), "n: new │ d: delete │ m: maintenance only │ f: this device │ c: copy id │ esc: back")
}

func (m *ReservationsModel) cmdLoad(notice string) tea.Cmd {
	ctx, svc, filter := m.ctx, m.reservations, m.filter
	return func() tea.Msg {
		views, err := svc.List(ctx, filter)
		return reservationsMsg{views: views, notice: notice, err: err}
	}
}

func (m *ReservationsModel) cmdCreate(deviceName, reserver string, start, end models.Date) tea.Cmd {
	ctx, svc, devices, filter := m.ctx, m.reservations, m.devices, m.filter
	return func() tea.Msg {
		device, err := devices.FindByName(ctx, deviceName)
		if err != nil {
			return reservationsMsg{err: err}
		}
		if _, err = svc.Create(ctx, device.ID, reserver, start, end); err != nil {
			return reservationsMsg{err: err}
		}
		views, err := svc.List(ctx, filter)
		return reservationsMsg{views: views, notice: device.Name + " reserved for " + reserver, err: err}
	}
}

func (m *ReservationsModel) cmdDelete(id string) tea.Cmd {
	ctx, svc, filter := m.ctx, m.reservations, m.filter
	return func() tea.Msg {
		if err := svc.Delete(ctx, id); err != nil {
			return reservationsMsg{err: err}
		}
		views, err := svc.List(ctx, filter)
		return reservationsMsg{views: views, notice: "Reservation deleted", err: err}
	}
}
