package models

// DeviceCost is the annual maintenance estimate of one device.
type DeviceCost struct {
	DeviceID        string  `json:"device_id"`
	DeviceName      string  `json:"device_name"`
	IntervalDays    int     `json:"interval_days"`
	CostPerEvent    float64 `json:"cost_per_event"`
	AnnualEstimate  float64 `json:"annual_estimate"`
	NextMaintenance Date    `json:"next_maintenance"`
}

// CostReport summarises the estimated annual maintenance cost of the pool.
// Estimates use 365/interval events per year and are not calendar exact.
type CostReport struct {
	Devices []DeviceCost `json:"devices"`
	Total   float64      `json:"total"`
}
