package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"dicel-erp/internal/errs"
	"dicel-erp/internal/resource"
	"dicel-erp/internal/services"

	"github.com/stretchr/testify/require"
)

func actionsFixture() *fixture {
	f := newFixture()
	f.records = []RecordService{
		&stubRecords{entity: resource.AttendanceRecords},
		&stubRecords{entity: resource.LeaveRequests},
		&stubRecords{entity: resource.PayrollRecords},
		&stubRecords{entity: resource.TrainingCourses},
	}
	return f
}

func TestCheckInWithoutBody(t *testing.T) {
	f := actionsFixture()
	rec := f.do(t, http.MethodPost, "/api/attendance/check-in", "emp-user", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, []services.CheckInRequest{{UserID: "emp-user"}}, f.attendance.checkIn)
}

func TestCheckInWithLocation(t *testing.T) {
	f := actionsFixture()
	rec := f.do(t, http.MethodPost, "/api/attendance/check-in", "emp-user", `{"employeeId":"emp-9","location":"HQ"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := f.attendance.checkIn[0]
	require.Equal(t, "emp-9", got.EmployeeID)
	require.Equal(t, "HQ", *got.Location)
}

func TestCheckOutSurfacesBusinessRule(t *testing.T) {
	f := actionsFixture()
	f.attendance.err = errs.BusinessRule("Already checked out today")
	rec := f.do(t, http.MethodPost, "/api/attendance/check-out", "emp-user", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Already checked out today", decodeBody(t, rec).Error)
}

func TestLeaveStatusRoute(t *testing.T) {
	f := actionsFixture()
	rec := f.do(t, http.MethodPut, "/api/leave/lr-1/status", "admin-1", `{"status":"Approved","comments":"enjoy"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, f.leave.requests, 1)
	got := f.leave.requests[0]
	require.Equal(t, "lr-1", got.RequestID)
	require.Equal(t, "admin-1", got.ActorID)
	require.Equal(t, "Approved", got.Status)

	rec = f.do(t, http.MethodPatch, "/api/leave/lr-1/status", "admin-1", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "status is required", decodeBody(t, rec).Error)
}

func TestProcessPayrollRequiresAdmin(t *testing.T) {
	f := actionsFixture()
	rec := f.do(t, http.MethodPost, "/api/payroll/process", "emp-user", `{"month":3,"year":2024}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Zero(t, f.payroll.month)
}

func TestProcessPayroll(t *testing.T) {
	f := actionsFixture()
	rec := f.do(t, http.MethodPost, "/api/payroll/process", "admin-1", `{"month":3,"year":2024}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 3, f.payroll.month)
	require.Equal(t, 2024, f.payroll.year)
	var run services.PayrollRun
	require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &run))
	require.Equal(t, 3, run.Processed)

	rec = f.do(t, http.MethodPost, "/api/payroll/process", "admin-1", `{"month":2.5,"year":2024}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "month and year must be integers", decodeBody(t, rec).Error)

	rec = f.do(t, http.MethodPost, "/api/payroll/process", "admin-1", `{"year":2024}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnroll(t *testing.T) {
	f := actionsFixture()
	rec := f.do(t, http.MethodPost, "/api/training/enroll", "emp-user", `{"courseId":"crs-1","employeeId":"emp-9"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, services.EnrollRequest{ActorID: "emp-user", CourseID: "crs-1", EmployeeID: "emp-9"}, f.training.requests[0])

	rec = f.do(t, http.MethodPost, "/api/training/enroll", "emp-user", `{"courseId":"crs-1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardSummary(t *testing.T) {
	f := newFixture()
	rec := f.do(t, http.MethodGet, "/api/dashboard/summary", "emp-user", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"asOf":"2024-03-01","metrics":{"totalEmployees":4}}`, string(decodeBody(t, rec).Data))
}
