package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dicel-erp/internal/auth"
	"dicel-erp/internal/config"
	"dicel-erp/internal/models"
	"dicel-erp/internal/query"
	"dicel-erp/internal/resource"
	"dicel-erp/internal/services"
	"dicel-erp/internal/store"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig() config.Config {
	return config.Config{
		AppEnv:             "test",
		JWTSecret:          testSecret,
		TokenTTLMinutes:    60,
		AllowedOrigins:     "*",
		DefaultPageSize:    10,
		MaxPageSize:        100,
		LoginRatePerMinute: 100,
		ServiceName:        "dicel-erp-api",
		ServiceVersion:     "test",
	}
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(_ context.Context, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

type stubUsers struct {
	users   map[string]models.User
	created []store.UserInput
	err     error
}

func (s *stubUsers) Create(_ context.Context, _ store.Execer, input store.UserInput) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, input)
	s.users[input.ID] = models.User{ID: input.ID, Name: input.Name, Email: input.Email, Role: input.Role, IsActive: true}
	return nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, sql.ErrNoRows
}

func (s *stubUsers) GetByID(_ context.Context, userID string) (models.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return models.User{}, sql.ErrNoRows
	}
	return user, nil
}

type stubAdmin struct {
	hasAdmin bool
	roles    map[string]string
	setErr   error
	users    []models.User
}

func (s *stubAdmin) HasAnyAdmin(context.Context, store.Getter) (bool, error) {
	return s.hasAdmin, nil
}

func (s *stubAdmin) ListUsers(_ context.Context, limit, offset int) ([]models.User, error) {
	return s.users, nil
}

func (s *stubAdmin) CountUsers(context.Context) (int, error) {
	return len(s.users), nil
}

func (s *stubAdmin) SetRole(_ context.Context, _ store.Execer, userID, role string) error {
	if s.setErr != nil {
		return s.setErr
	}
	if s.roles == nil {
		s.roles = map[string]string{}
	}
	s.roles[userID] = role
	return nil
}

type auditCall struct {
	action     string
	entityType string
	entityID   string
}

type stubAudit struct {
	calls   []auditCall
	entries []models.AuditEntry
}

func (s *stubAudit) Log(_ context.Context, _ store.Execer, _ *string, action, entityType, entityID, _ string) error {
	s.calls = append(s.calls, auditCall{action: action, entityType: entityType, entityID: entityID})
	return nil
}

func (s *stubAudit) List(context.Context, int, int) ([]models.AuditEntry, error) {
	return s.entries, nil
}

func (s *stubAudit) Count(context.Context) (int, error) {
	return len(s.entries), nil
}

type stubHealth struct{ err error }

func (s stubHealth) Ping(context.Context) error { return s.err }

type stubRecords struct {
	entity   *resource.Entity
	listFn   func(query.ListOptions) (query.Page, error)
	getFn    func(id string) (map[string]any, error)
	createFn func(actorID string, body map[string]any) (map[string]any, error)
	updateFn func(actorID, id string, body map[string]any) (map[string]any, error)
	deleteFn func(actorID, id string) error
}

func (s *stubRecords) Entity() *resource.Entity { return s.entity }

func (s *stubRecords) List(_ context.Context, opts query.ListOptions) (query.Page, error) {
	return s.listFn(opts)
}

func (s *stubRecords) Get(_ context.Context, id string) (map[string]any, error) {
	return s.getFn(id)
}

func (s *stubRecords) Create(_ context.Context, actorID string, body map[string]any) (map[string]any, error) {
	return s.createFn(actorID, body)
}

func (s *stubRecords) Update(_ context.Context, actorID, id string, body map[string]any) (map[string]any, error) {
	return s.updateFn(actorID, id, body)
}

func (s *stubRecords) Delete(_ context.Context, actorID, id string) error {
	return s.deleteFn(actorID, id)
}

func (s *stubRecords) Stats(context.Context) (store.Stats, error) {
	return store.Stats{Total: 2, By: map[string][]store.Bucket{}}, nil
}

type stubAttendance struct {
	checkIn  []services.CheckInRequest
	checkOut []services.CheckOutRequest
	err      error
}

func (s *stubAttendance) CheckIn(_ context.Context, req services.CheckInRequest) (map[string]any, error) {
	s.checkIn = append(s.checkIn, req)
	return map[string]any{"id": "att-1", "status": "Present"}, s.err
}

func (s *stubAttendance) CheckOut(_ context.Context, req services.CheckOutRequest) (map[string]any, error) {
	s.checkOut = append(s.checkOut, req)
	return map[string]any{"id": "att-1"}, s.err
}

type stubLeave struct {
	requests []services.LeaveStatusRequest
}

func (s *stubLeave) UpdateStatus(_ context.Context, req services.LeaveStatusRequest) (map[string]any, error) {
	s.requests = append(s.requests, req)
	return map[string]any{"id": req.RequestID, "status": req.Status}, nil
}

type stubPayroll struct {
	month, year int
}

func (s *stubPayroll) Process(_ context.Context, _ string, month, year int) (services.PayrollRun, error) {
	s.month, s.year = month, year
	return services.PayrollRun{Month: month, Year: year, Processed: 3}, nil
}

type stubTraining struct {
	requests []services.EnrollRequest
}

func (s *stubTraining) Enroll(_ context.Context, req services.EnrollRequest) (map[string]any, error) {
	s.requests = append(s.requests, req)
	return map[string]any{"id": "enr-1", "courseId": req.CourseID}, nil
}

type stubDashboard struct{}

func (stubDashboard) Summary(context.Context) (models.DashboardSummary, error) {
	return models.DashboardSummary{AsOf: "2024-03-01", Metrics: map[string]any{"totalEmployees": 4}}, nil
}

// fixture wires a Handler over stubs with an admin and an employee account.
type fixture struct {
	users      *stubUsers
	admin      *stubAdmin
	audit      *stubAudit
	health     stubHealth
	records    []RecordService
	attendance *stubAttendance
	leave      *stubLeave
	payroll    *stubPayroll
	training   *stubTraining
}

func newFixture() *fixture {
	return &fixture{
		users: &stubUsers{users: map[string]models.User{
			"admin-1":  {ID: "admin-1", Name: "Ada", Email: "ada@dicel.test", Role: models.RoleAdmin, IsActive: true},
			"emp-user": {ID: "emp-user", Name: "Eve", Email: "eve@dicel.test", Role: models.RoleEmployee, IsActive: true},
		}},
		admin:      &stubAdmin{hasAdmin: true},
		audit:      &stubAudit{},
		attendance: &stubAttendance{},
		leave:      &stubLeave{},
		payroll:    &stubPayroll{},
		training:   &stubTraining{},
	}
}

func (f *fixture) handler() http.Handler {
	return New(Deps{
		Config:     testConfig(),
		TxRunner:   fakeTxRunner{},
		Health:     f.health,
		Users:      f.users,
		Admin:      f.admin,
		Audit:      f.audit,
		Records:    f.records,
		Attendance: f.attendance,
		Leave:      f.leave,
		Payroll:    f.payroll,
		Training:   f.training,
		Dashboard:  stubDashboard{},
	}).Routes()
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}, time.Hour)
	require.NoError(t, err)
	return token
}

// do sends a request as userID; an empty userID sends no token.
func (f *fixture) do(t *testing.T, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, f.users.users[userID]))
	}
	rec := httptest.NewRecorder()
	f.handler().ServeHTTP(rec, req)
	return rec
}

type decodedEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Kind    string          `json:"kind"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) decodedEnvelope {
	t.Helper()
	var env decodedEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}
