package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"dicel-erp/internal/auth"
	"dicel-erp/internal/errs"
	"dicel-erp/internal/models"
	"dicel-erp/internal/store"
	"dicel-erp/internal/validator"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var errInvalidCredentials = errs.Unauthorized("Invalid credentials")

type registerRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Email        string  `json:"email" validate:"required,email,max=254"`
	Password     string  `json:"password" validate:"required,password"`
	DepartmentID *string `json:"departmentId"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates a login. The very first account becomes the admin;
// everyone after that starts as an employee.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	userID := uuid.NewString()
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		role := models.RoleEmployee
		hasAdmin, err := h.admin.HasAnyAdmin(r.Context(), tx)
		if err != nil {
			return err
		}
		if !hasAdmin {
			role = models.RoleAdmin
		}
		if err := h.users.Create(r.Context(), tx, store.UserInput{
			ID:           userID,
			Name:         req.Name,
			Email:        req.Email,
			Role:         role,
			DepartmentID: req.DepartmentID,
			PasswordHash: passwordHash,
		}); err != nil {
			return err
		}
		return h.audit.Log(r.Context(), tx, &userID, "register", "users", userID, auditData(map[string]string{
			"ip":         r.RemoteAddr,
			"user_agent": r.UserAgent(),
			"role":       role,
		}))
	})
	if err != nil {
		switch {
		case errs.IsUniqueViolation(err):
			h.respondError(w, r, errs.BusinessRule("Email already registered"))
		case errs.IsForeignKeyViolation(err):
			h.respondError(w, r, errs.Validation("departmentId does not exist"))
		default:
			h.respondError(w, r, errs.Wrap(err, "register"))
		}
		return
	}
	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, errs.Wrap(err, "load registered user"))
		return
	}
	h.issueToken(w, r, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login answers unknown emails and wrong passwords identically.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := validator.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}
	user, err := h.users.GetByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.respondError(w, r, errInvalidCredentials)
			return
		}
		h.respondError(w, r, errs.Wrap(err, "login"))
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		h.respondError(w, r, errInvalidCredentials)
		return
	}
	if err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.audit.Log(r.Context(), tx, &user.ID, "login", "users", user.ID, auditData(map[string]string{
			"ip":         r.RemoteAddr,
			"user_agent": r.UserAgent(),
		}))
	}); err != nil {
		h.respondError(w, r, errs.Wrap(err, "audit login"))
		return
	}
	h.issueToken(w, r, http.StatusOK, user)
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, status int, user models.User) {
	token, err := auth.GenerateToken(h.cfg.JWTSecret, auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}, h.cfg.TokenTTL())
	if err != nil {
		h.respondError(w, r, errs.Wrap(err, "generate token"))
		return
	}
	respondData(w, status, authResponse{Token: token, User: user})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), actorID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.respondError(w, r, errs.NotFound("User"))
			return
		}
		h.respondError(w, r, errs.Wrap(err, "load user"))
		return
	}
	respondData(w, http.StatusOK, user)
}
