package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Role         string    `db:"role" json:"role"`
	DepartmentID *string   `db:"department_id" json:"departmentId,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// AttendanceDay is the slice of an attendance record the check-in/out flow
// works with. Dates and clock times are rendered as text by the query.
type AttendanceDay struct {
	ID           string  `db:"id"`
	EmployeeID   string  `db:"employee_id"`
	Date         string  `db:"date"`
	CheckInTime  *string `db:"check_in_time"`
	CheckOutTime *string `db:"check_out_time"`
	Status       string  `db:"status"`
}

type LeaveRequest struct {
	ID          string  `db:"id"`
	EmployeeID  string  `db:"employee_id"`
	LeaveTypeID string  `db:"leave_type_id"`
	Days        int     `db:"days"`
	Status      string  `db:"status"`
	CreatedBy   *string `db:"created_by"`
}

type LeaveBalance struct {
	ID            string `db:"id"`
	DaysUsed      int    `db:"days_used"`
	DaysRemaining int    `db:"days_remaining"`
}

type PayrollCandidate struct {
	EmployeeID  string `db:"id"`
	BasicSalary string `db:"basic_salary"`
}

type CourseCapacity struct {
	ID              string `db:"id"`
	Status          string `db:"status"`
	MaxParticipants *int   `db:"max_participants"`
	Enrolled        int    `db:"enrolled"`
}

type AuditEntry struct {
	ID          string    `db:"id" json:"id"`
	ActorUserID *string   `db:"actor_user_id" json:"actorUserId"`
	Action      string    `db:"action" json:"action"`
	EntityType  string    `db:"entity_type" json:"entityType"`
	EntityID    string    `db:"entity_id" json:"entityId"`
	Data        string    `db:"data" json:"data"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// DashboardSummary is the cross-module overview shown on the landing page.
// Counts are integers, monetary totals are decimal strings.
type DashboardSummary struct {
	AsOf    string         `json:"asOf"`
	Metrics map[string]any `json:"metrics"`
}
