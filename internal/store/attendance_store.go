package store

import (
	"context"

	"dicel-erp/internal/models"
)

type AttendanceStore struct {
	db DB
}

func NewAttendanceStore(db DB) *AttendanceStore {
	return &AttendanceStore{db: db}
}

// GetDayForUpdate locks the active record of employeeID on date.
func (s *AttendanceStore) GetDayForUpdate(ctx context.Context, tx Getter, employeeID, date string) (models.AttendanceDay, error) {
	var row models.AttendanceDay
	err := tx.GetContext(ctx, &row, `
		SELECT id, employee_id, date::text AS date, check_in_time::text AS check_in_time,
		       check_out_time::text AS check_out_time, status
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2 AND is_active
		FOR UPDATE
	`, employeeID, date)
	return row, err
}

func (s *AttendanceStore) InsertCheckIn(ctx context.Context, tx Execer, id, employeeID, date, checkIn string, location *string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO attendance_records (id, employee_id, date, check_in_time, status, location)
		VALUES ($1, $2, $3, $4, 'Present', $5)
	`, id, employeeID, date, checkIn, location)
	return err
}

func (s *AttendanceStore) SetCheckIn(ctx context.Context, tx Execer, id, checkIn string, location *string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE attendance_records
		SET check_in_time = $2,
		    location = COALESCE($3, location),
		    status = CASE WHEN status = 'Absent' THEN 'Present' ELSE status END,
		    updated_at = NOW()
		WHERE id = $1
	`, id, checkIn, location)
	return err
}

func (s *AttendanceStore) SetCheckOut(ctx context.Context, tx Execer, id, checkOut, totalHours string, overtime *string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE attendance_records
		SET check_out_time = $2, total_hours = $3, overtime = $4, updated_at = NOW()
		WHERE id = $1
	`, id, checkOut, totalHours, overtime)
	return err
}
