package handlers

import (
	"database/sql"
	"net/http"

	"dicel-erp/internal/auth"
	"dicel-erp/internal/errs"
	"dicel-erp/internal/middleware"
	"dicel-erp/internal/models"
	"dicel-erp/internal/query"
	"dicel-erp/internal/validator"
	"dicel-erp/internal/websocket"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	opts, err := query.ParsePage(r.URL.Query(), h.defaults)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	users, err := h.admin.ListUsers(r.Context(), opts.Limit, opts.Offset())
	if err != nil {
		h.respondError(w, r, errs.Wrap(err, "list users"))
		return
	}
	total, err := h.admin.CountUsers(r.Context())
	if err != nil {
		h.respondError(w, r, errs.Wrap(err, "count users"))
		return
	}
	respondData(w, http.StatusOK, newListPage(users, total, opts))
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin employee"`
}

func (h *Handler) AdminSetRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := validator.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}
	actor := actorID(r)
	targetID := chi.URLParam(r, "id")
	if targetID == actor && req.Role != models.RoleAdmin {
		h.respondError(w, r, errs.BusinessRule("Admins cannot demote themselves"))
		return
	}
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.admin.SetRole(r.Context(), tx, targetID, req.Role); err != nil {
			return err
		}
		return h.audit.Log(r.Context(), tx, &actor, "set_role", "users", targetID, auditData(map[string]string{"role": req.Role}))
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.respondError(w, r, errs.NotFound("User"))
			return
		}
		h.respondError(w, r, errs.Wrap(err, "set role"))
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": targetID, "role": req.Role})
}

func (h *Handler) AdminListAudit(w http.ResponseWriter, r *http.Request) {
	opts, err := query.ParsePage(r.URL.Query(), h.defaults)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	entries, err := h.audit.List(r.Context(), opts.Limit, opts.Offset())
	if err != nil {
		h.respondError(w, r, errs.Wrap(err, "list audit"))
		return
	}
	total, err := h.audit.Count(r.Context())
	if err != nil {
		h.respondError(w, r, errs.Wrap(err, "count audit"))
		return
	}
	respondData(w, http.StatusOK, newListPage(entries, total, opts))
}

// WSEvents upgrades to a websocket. Browsers cannot set headers on the
// handshake, so the token may also arrive as a query parameter.
func (h *Handler) WSEvents(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token, _ = middleware.BearerToken(r.Header.Get("Authorization"))
	}
	if token == "" {
		h.respondError(w, r, errs.Unauthorized("missing token"))
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		h.respondError(w, r, errs.Unauthorized("invalid token"))
		return
	}
	websocket.ServeWS(w, r, h.upgrader, h.hub, claims.UserID)
}
