package handlers

import (
	"encoding/json"
	"net/http"

	"dicel-erp/internal/services"
	"dicel-erp/internal/validator"

	"github.com/go-chi/chi/v5"
)

type checkInRequest struct {
	EmployeeID string  `json:"employeeId"`
	Location   *string `json:"location" validate:"omitempty,max=200"`
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := validator.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}
	doc, err := h.attendance.CheckIn(r.Context(), services.CheckInRequest{
		UserID:     actorID(r),
		EmployeeID: req.EmployeeID,
		Location:   req.Location,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, doc)
}

type checkOutRequest struct {
	EmployeeID string `json:"employeeId"`
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req checkOutRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	doc, err := h.attendance.CheckOut(r.Context(), services.CheckOutRequest{
		UserID:     actorID(r),
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, doc)
}

type leaveStatusRequest struct {
	Status   string  `json:"status" validate:"required"`
	Comments *string `json:"comments" validate:"omitempty,max=1000"`
}

func (h *Handler) UpdateLeaveStatus(w http.ResponseWriter, r *http.Request) {
	var req leaveStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := validator.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}
	doc, err := h.leave.UpdateStatus(r.Context(), services.LeaveStatusRequest{
		ActorID:   actorID(r),
		RequestID: chi.URLParam(r, "id"),
		Status:    req.Status,
		Comments:  req.Comments,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, doc)
}

type payrollRequest struct {
	Month json.Number `json:"month" validate:"required"`
	Year  json.Number `json:"year" validate:"required"`
}

func (h *Handler) ProcessPayroll(w http.ResponseWriter, r *http.Request) {
	var req payrollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := validator.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}
	month, monthErr := req.Month.Int64()
	year, yearErr := req.Year.Int64()
	if monthErr != nil || yearErr != nil {
		h.respondError(w, r, errPeriod)
		return
	}
	run, err := h.payroll.Process(r.Context(), actorID(r), int(month), int(year))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, run)
}

type enrollRequest struct {
	CourseID   string `json:"courseId" validate:"required"`
	EmployeeID string `json:"employeeId" validate:"required"`
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := validator.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}
	doc, err := h.training.Enroll(r.Context(), services.EnrollRequest{
		ActorID:    actorID(r),
		CourseID:   req.CourseID,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, doc)
}

func (h *Handler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, summary)
}
