package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"dicel-erp/internal/errs"
	"dicel-erp/internal/middleware"
	"dicel-erp/internal/query"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, envelope{Success: true, Data: data})
}

// respondError writes the error envelope. Internal errors are logged with
// the route and request id and reach the client only as a generic message.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if errs.IsInternal(err) {
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		h.log.Errorw("request failed",
			"method", r.Method,
			"route", route,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
	}
	respondJSON(w, errs.HTTPStatus(err), envelope{
		Success: false,
		Error:   errs.Message(err),
		Kind:    errs.Kind(err),
	})
}

var (
	errNoResource = errs.NotFound("Resource")
	errPeriod     = errs.Validation("month and year must be integers")
)

// decodeJSON reads a request body into dest. Unknown fields are rejected
// and numbers keep their literal text.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	return decode(w, r, dest, false)
}

// decodeOptionalJSON accepts an empty body and leaves dest untouched.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	return decode(w, r, dest, true)
}

func decode(w http.ResponseWriter, r *http.Request, dest any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			if optional {
				return nil
			}
			return errs.Validation("request body is required")
		}
		return errs.Validation("invalid JSON body")
	}
	if dec.More() {
		return errs.Validation("invalid JSON body")
	}
	return nil
}

func auditData(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func actorID(r *http.Request) string {
	userID, _ := middleware.UserIDFromContext(r.Context())
	return userID
}

// listPage mirrors query.Page for typed items.
type listPage[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Limit       int `json:"limit"`
}

func newListPage[T any](items []T, total int, opts query.ListOptions) listPage[T] {
	if items == nil {
		items = []T{}
	}
	return listPage[T]{
		Items:       items,
		Total:       total,
		CurrentPage: opts.Page,
		TotalPages:  query.TotalPages(total, opts.Limit),
		Limit:       opts.Limit,
	}
}
