package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/nJurisch/equipment-pool/models"
)

// psql is the statement builder shared by all repositories. SQLite uses
// positional "?" placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var (
	userColumns = []string{"id", "name", "created_at"}

	deviceColumns = []string{
		"id",
		"device_name",
		"managed_by_user_id",
		"end_of_life",
		"maintenance_interval",
		"first_maintenance",
		"next_maintenance",
		"maintenance_cost",
		"created_at",
		"updated_at",
	}

	reservationColumns = []string{"id", "device_id", "reserver", "start_date", "end_date", "created_at"}
)

func toSQL(b sq.Sqlizer) (string, []any, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(u models.User) (string, []any, error) {
	return toSQL(psql.Insert(u.TableName()).
		Columns(userColumns...).
		Values(u.ID, u.Name, u.CreatedAt))
}

func buildSelectUsersQuery(where sq.Sqlizer) (string, []any, error) {
	b := psql.Select(userColumns...).
		From(models.User{}.TableName()).
		OrderBy("name", "id")
	if where != nil {
		b = b.Where(where)
	}
	return toSQL(b)
}

func buildDeleteUserQuery(id string) (string, []any, error) {
	return toSQL(psql.Delete(models.User{}.TableName()).Where(sq.Eq{"id": id}))
}

// ── devices ───────────────────────────────────────────────────────────────────

func buildInsertDeviceQuery(d models.Device) (string, []any, error) {
	return toSQL(psql.Insert(d.TableName()).
		Columns(deviceColumns...).
		Values(
			d.ID,
			d.Name,
			d.ManagedByUserID,
			d.EndOfLife,
			d.MaintenanceInterval,
			d.FirstMaintenance,
			d.NextMaintenance,
			d.MaintenanceCost,
			d.CreatedAt,
			d.UpdatedAt,
		))
}

func buildSelectDevicesQuery(where sq.Sqlizer) (string, []any, error) {
	b := psql.Select(deviceColumns...).
		From(models.Device{}.TableName()).
		OrderBy("device_name", "id")
	if where != nil {
		b = b.Where(where)
	}
	return toSQL(b)
}

func buildUpdateDeviceQuery(d models.Device) (string, []any, error) {
	return toSQL(psql.Update(d.TableName()).
		Set("device_name", d.Name).
		Set("managed_by_user_id", d.ManagedByUserID).
		Set("end_of_life", d.EndOfLife).
		Set("maintenance_interval", d.MaintenanceInterval).
		Set("first_maintenance", d.FirstMaintenance).
		Set("next_maintenance", d.NextMaintenance).
		Set("maintenance_cost", d.MaintenanceCost).
		Set("updated_at", d.UpdatedAt).
		Where(sq.Eq{"id": d.ID}))
}

func buildDeleteDeviceQuery(id string) (string, []any, error) {
	return toSQL(psql.Delete(models.Device{}.TableName()).Where(sq.Eq{"id": id}))
}

// ── reservations ──────────────────────────────────────────────────────────────

func buildInsertReservationQuery(r models.Reservation) (string, []any, error) {
	return toSQL(psql.Insert(r.TableName()).
		Columns(reservationColumns...).
		Values(r.ID, r.DeviceID, r.Reserver, r.StartDate, r.EndDate, r.CreatedAt))
}

func buildSelectReservationsQuery(where sq.Sqlizer) (string, []any, error) {
	b := psql.Select(reservationColumns...).
		From(models.Reservation{}.TableName()).
		OrderBy("start_date", "end_date", "id")
	if where != nil {
		b = b.Where(where)
	}
	return toSQL(b)
}

// buildSelectReservationViewsQuery joins every reservation with the name of
// its device. Reservations of deleted devices keep [models.UnknownDeviceName].
func buildSelectReservationViewsQuery(filter models.ReservationFilter) (string, []any, error) {
	b := psql.Select(
		"r.id",
		"r.device_id",
		"r.reserver",
		"r.start_date",
		"r.end_date",
		"r.created_at",
	).
		Column("COALESCE(d.device_name, ?) AS device_name", models.UnknownDeviceName).
		From("reservations r").
		LeftJoin("devices d ON d.id = r.device_id").
		OrderBy("r.start_date", "r.end_date", "r.id")

	if filter.DeviceID != "" {
		b = b.Where(sq.Eq{"r.device_id": filter.DeviceID})
	}
	if filter.MaintenanceOnly {
		b = b.Where(sq.Eq{"r.reserver": models.MaintenanceReserver})
	}

	return toSQL(b)
}

// overlapPredicate matches reservations of deviceID sharing at least one day
// with [start, end]. Both ranges are inclusive.
func overlapPredicate(deviceID string, start, end models.Date) sq.Sqlizer {
	return sq.And{
		sq.Eq{"device_id": deviceID},
		sq.LtOrEq{"start_date": end},
		sq.GtOrEq{"end_date": start},
	}
}

func buildDeleteReservationsQuery(where sq.Sqlizer) (string, []any, error) {
	return toSQL(psql.Delete(models.Reservation{}.TableName()).Where(where))
}
