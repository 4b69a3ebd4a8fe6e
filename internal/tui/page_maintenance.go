package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nJurisch/equipment-pool/internal/maintenance"
	"github.com/nJurisch/equipment-pool/internal/service"
	"github.com/nJurisch/equipment-pool/models"
)

// MaintenanceModel shows every device with its next maintenance and
// annual cost estimate, and books or completes maintenance.
type MaintenanceModel struct {
	ctx         context.Context
	maintenance service.MaintenanceService
	devices     service.DeviceService
	currency    string

	items    []models.Device
	report   models.CostReport
	schedule []models.Date
	pageState
}

func NewMaintenanceModel(ctx context.Context, maintenance service.MaintenanceService, devices service.DeviceService, currency string) *MaintenanceModel {
	return &MaintenanceModel{
		ctx:         ctx,
		maintenance: maintenance,
		devices:     devices,
		currency:    currency,
		pageState:   newPageState(),
	}
}

func (m *MaintenanceModel) Init() tea.Cmd {
	m.schedule = nil
	return tea.Batch(m.startLoading(), m.cmdLoad(""))
}

func (m *MaintenanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.updateSpinner(msg); ok {
		return m, cmd
	}

	switch msg := msg.(type) {
	case maintenanceMsg:
		if m.finish(msg.notice, msg.err, msg.devices != nil) {
			m.items = msg.devices
			m.report = msg.report
			m.clamp(len(m.items))
		}
		if msg.schedule != nil {
			m.schedule = msg.schedule
		}
		return m, nil
	case copiedMsg:
		m.copied(msg)
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.loading {
		return m, nil
	}

	d, hasSelection := m.selected()

	switch {
	case key.Matches(keyMsg, keys.esc):
		return m, navigateTo(pageMenu)
	case key.Matches(keyMsg, keys.up):
		m.move(-1, len(m.items))
		m.schedule = nil
	case key.Matches(keyMsg, keys.down):
		m.move(1, len(m.items))
		m.schedule = nil
	case !hasSelection:
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		return m, tea.Batch(m.startLoading(), m.cmdSchedule(d))
	case key.Matches(keyMsg, keys.reserveAll):
		return m, tea.Batch(m.startLoading(), m.cmdReserveAll(d))
	case key.Matches(keyMsg, keys.reserveNext):
		return m, tea.Batch(m.startLoading(), m.cmdReserveNext(d))
	case key.Matches(keyMsg, keys.advance):
		return m, tea.Batch(m.startLoading(), m.cmdAdvance(d))
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopy(d.ID)
	}

	return m, nil
}

func (m *MaintenanceModel) selected() (models.Device, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return models.Device{}, false
	}
	return m.items[m.cursor], true
}

func (m *MaintenanceModel) annualCost(deviceID string) string {
	for _, c := range m.report.Devices {
		if c.DeviceID == deviceID {
			return formatMoney(maintenance.RoundCents(c.AnnualEstimate), m.currency)
		}
	}
	return "-"
}

func (m *MaintenanceModel) View() string {
	rows := make([][]string, 0, len(m.items))
	for _, d := range m.items {
		rows = append(rows, []string{
			fitText(d.Name, 30),
			strconv.Itoa(d.MaintenanceInterval),
			d.NextMaintenance.String(),
			formatMoney(d.MaintenanceCost, m.currency),
			m.annualCost(d.ID),
		})
	}

	var b strings.Builder
	if len(rows) == 0 {
		b.WriteString("No devices yet")
	} else {
		b.WriteString(renderTable([]string{"Device", "Interval", "Next", "Per event", "Per year"}, rows, m.cursor))
		b.WriteString("\n\n")
		b.WriteString(titleStyle.Render("Estimated total per year: " + formatMoney(maintenance.RoundCents(m.report.Total), m.currency)))
	}

	if len(m.schedule) > 0 {
		dates := make([]string, 0, len(m.schedule))
		for _, d := range m.schedule {
			dates = append(dates, d.String())
		}
		b.WriteString("\n\nSchedule: ")
		b.WriteString(strings.Join(dates, ", "))
	}

	b.WriteString(m.footer())

	return renderPage("MAINTENANCE", b.String(), "enter: schedule │ a: reserve all │ n: reserve next │ u: mark done │ c: copy id │ esc: back")
}

// refreshMaintenance reloads devices and the cost report after a mutation.
func refreshMaintenance(ctx context.Context, svc service.MaintenanceService, devices service.DeviceService, notice string) maintenanceMsg {
	list, err := devices.ListAll(ctx)
	if err != nil {
		return maintenanceMsg{err: err}
	}
	report, err := svc.CostReport(ctx)
	if err != nil {
		return maintenanceMsg{err: err}
	}
	return maintenanceMsg{devices: list, report: report, notice: notice}
}

func (m *MaintenanceModel) cmdLoad(notice string) tea.Cmd {
	ctx, svc, devices := m.ctx, m.maintenance, m.devices
	return func() tea.Msg {
		return refreshMaintenance(ctx, svc, devices, notice)
	}
}

func (m *MaintenanceModel) cmdSchedule(d models.Device) tea.Cmd {
	ctx, svc, devices := m.ctx, m.maintenance, m.devices
	return func() tea.Msg {
		dates, err := svc.Schedule(ctx, d.ID)
		if err != nil {
			return maintenanceMsg{err: err}
		}
		msg := refreshMaintenance(ctx, svc, devices, fmt.Sprintf("%d maintenance date(s) until %s", len(dates), d.EndOfLife))
		msg.schedule = dates
		return msg
	}
}

func (m *MaintenanceModel) cmdReserveAll(d models.Device) tea.Cmd {
	ctx, svc, devices := m.ctx, m.maintenance, m.devices
	return func() tea.Msg {
		booked, err := svc.MaterializeAll(ctx, d.ID)
		if err != nil {
			return maintenanceMsg{err: err}
		}
		return refreshMaintenance(ctx, svc, devices, fmt.Sprintf("%d maintenance slot(s) booked for %s", len(booked), d.Name))
	}
}

func (m *MaintenanceModel) cmdReserveNext(d models.Device) tea.Cmd {
	ctx, svc, devices := m.ctx, m.maintenance, m.devices
	return func() tea.Msg {
		booked, err := svc.MaterializeNext(ctx, d.ID)
		if err != nil {
			return maintenanceMsg{err: err}
		}
		return refreshMaintenance(ctx, svc, devices, "Next maintenance of "+d.Name+" booked for "+booked.StartDate.String())
	}
}

func (m *MaintenanceModel) cmdAdvance(d models.Device) tea.Cmd {
	ctx, svc, devices := m.ctx, m.maintenance, m.devices
	return func() tea.Msg {
		updated, err := svc.Advance(ctx, d.ID)
		if err != nil {
			return maintenanceMsg{err: err}
		}
		return refreshMaintenance(ctx, svc, devices, d.Name+" maintained, next due "+updated.NextMaintenance.String())
	}
}
