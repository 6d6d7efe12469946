package store

import (
	"context"

	"dicel-erp/internal/models"
)

type EnrollmentStore struct {
	db DB
}

func NewEnrollmentStore(db DB) *EnrollmentStore {
	return &EnrollmentStore{db: db}
}

// CourseForUpdate locks an active course and counts its active enrollments.
func (s *EnrollmentStore) CourseForUpdate(ctx context.Context, tx Getter, courseID string) (models.CourseCapacity, error) {
	var row models.CourseCapacity
	err := tx.GetContext(ctx, &row, `
		SELECT c.id, c.status, c.max_participants,
		       (SELECT COUNT(*) FROM training_enrollments n WHERE n.course_id = c.id AND n.is_active) AS enrolled
		FROM training_courses c
		WHERE c.id = $1 AND c.is_active
		FOR UPDATE
	`, courseID)
	return row, err
}

func (s *EnrollmentStore) IsEnrolled(ctx context.Context, tx Getter, courseID, employeeID string) (bool, error) {
	var count int
	err := tx.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM training_enrollments
		WHERE course_id = $1 AND employee_id = $2 AND is_active
	`, courseID, employeeID)
	return count > 0, err
}

func (s *EnrollmentStore) Insert(ctx context.Context, tx Execer, id, courseID, employeeID, enrollmentDate string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO training_enrollments (id, course_id, employee_id, enrollment_date, status)
		VALUES ($1, $2, $3, $4, 'Enrolled')
	`, id, courseID, employeeID, enrollmentDate)
	return err
}
