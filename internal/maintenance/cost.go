package maintenance

import (
	"math"

	"github.com/nJurisch/equipment-pool/models"
)

// DaysPerYear is the year length used by the annual estimate.
const DaysPerYear = 365

// AnnualCost estimates the yearly maintenance cost as
// costPerEvent * 365 / intervalDays.
//
// This is an approximation: 365/interval is generally fractional and does
// not count the events that actually fall into a calendar year.
func AnnualCost(intervalDays int, costPerEvent float64) (float64, error) {
	if intervalDays <= 0 {
		return 0, ErrNonPositiveInterval
	}
	return costPerEvent * DaysPerYear / float64(intervalDays), nil
}

// TotalCost sums [AnnualCost] over devices using each device's own
// per-event cost. Devices with an invalid interval contribute nothing.
func TotalCost(devices []models.Device) float64 {
	var total float64
	for _, d := range devices {
		cost, err := AnnualCost(d.MaintenanceInterval, d.MaintenanceCost)
		if err != nil {
			continue
		}
		total += cost
	}
	return total
}

// BuildCostReport computes the per-device estimates and their total.
func BuildCostReport(devices []models.Device) models.CostReport {
	report := models.CostReport{Devices: make([]models.DeviceCost, 0, len(devices))}
	for _, d := range devices {
		annual, err := AnnualCost(d.MaintenanceInterval, d.MaintenanceCost)
		if err != nil {
			continue
		}
		report.Devices = append(report.Devices, models.DeviceCost{
			DeviceID:        d.ID,
			DeviceName:      d.Name,
			IntervalDays:    d.MaintenanceInterval,
			CostPerEvent:    d.MaintenanceCost,
			AnnualEstimate:  annual,
			NextMaintenance: d.NextMaintenance,
		})
	}
	report.Total = TotalCost(devices)
	return report
}

// RoundCents rounds v to two decimals for display.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
