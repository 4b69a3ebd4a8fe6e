package tui

import (
	"github.com/nJurisch/equipment-pool/models"
)

// NavigateTo asks [RootModel] to switch to another page.
type NavigateTo struct {
	Page string
}

// Every mutation answers with the page's refreshed list. A non-nil err with
// no list means the mutation failed and the page keeps what it shows.

type usersMsg struct {
	users  []models.User
	notice string
	err    error
}

type devicesMsg struct {
	devices []models.Device
	notice  string
	err     error
}

type reservationsMsg struct {
	views  []models.ReservationView
	notice string
	err    error
}

type maintenanceMsg struct {
	devices  []models.Device
	report   models.CostReport
	schedule []models.Date
	notice   string
	err      error
}

type copiedMsg struct {
	value string
	err   error
}
