package handlers

import (
	"net/http"

	"dicel-erp/internal/config"
	"dicel-erp/internal/db"
	"dicel-erp/internal/logger"
	"dicel-erp/internal/middleware"
	"dicel-erp/internal/models"
	"dicel-erp/internal/query"
	"dicel-erp/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	gorillaws "github.com/gorilla/websocket"
)

type Handler struct {
	log        *logger.Logger
	cfg        config.Config
	defaults   query.Defaults
	txRunner   db.TxRunner
	health     HealthChecker
	users      UserStore
	admin      AdminStore
	audit      AuditStore
	records    map[string]RecordService
	order      []RecordService
	attendance AttendanceService
	leave      LeaveService
	payroll    PayrollService
	training   TrainingService
	dashboard  DashboardService
	hub        *websocket.Hub
	upgrader   gorillaws.Upgrader
	limiter    *middleware.RateLimiter
}

// Deps carries everything the router needs. Records are mounted in order.
type Deps struct {
	Log        *logger.Logger
	Config     config.Config
	TxRunner   db.TxRunner
	Health     HealthChecker
	Users      UserStore
	Admin      AdminStore
	Audit      AuditStore
	Records    []RecordService
	Attendance AttendanceService
	Leave      LeaveService
	Payroll    PayrollService
	Training   TrainingService
	Dashboard  DashboardService
	Hub        *websocket.Hub
	Limiter    *middleware.RateLimiter
}

func New(deps Deps) *Handler {
	records := make(map[string]RecordService, len(deps.Records))
	for _, svc := range deps.Records {
		records[svc.Entity().Path] = svc
	}
	log := deps.Log
	if log == nil {
		log = logger.NewNop()
	}
	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(deps.Config.LoginRatePerMinute)
	}
	return &Handler{
		log:        log,
		cfg:        deps.Config,
		defaults:   query.Defaults{Limit: deps.Config.DefaultPageSize, MaxLimit: deps.Config.MaxPageSize},
		txRunner:   deps.TxRunner,
		health:     deps.Health,
		users:      deps.Users,
		admin:      deps.Admin,
		audit:      deps.Audit,
		records:    records,
		order:      deps.Records,
		attendance: deps.Attendance,
		leave:      deps.Leave,
		payroll:    deps.Payroll,
		training:   deps.Training,
		dashboard:  deps.Dashboard,
		hub:        deps.Hub,
		upgrader:   websocket.NewUpgrader(deps.Config.Origins()),
		limiter:    limiter,
	}
}

// actions returns the entity specific routes mounted ahead of /{id}.
func (h *Handler) actions(path string) func(chi.Router) {
	switch path {
	case "attendance":
		return func(r chi.Router) {
			r.Post("/check-in", h.CheckIn)
			r.Post("/check-out", h.CheckOut)
		}
	case "leave":
		return func(r chi.Router) {
			r.Post("/{id}/status", h.UpdateLeaveStatus)
			r.Put("/{id}/status", h.UpdateLeaveStatus)
			r.Patch("/{id}/status", h.UpdateLeaveStatus)
		}
	case "payroll":
		return func(r chi.Router) {
			r.With(middleware.RequireRole(h.users, models.RoleAdmin)).Post("/process", h.ProcessPayroll)
		}
	case "training":
		return func(r chi.Router) {
			r.Post("/enroll", h.Enroll)
		}
	}
	return nil
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(h.log))
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.Origins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.respondError(w, r, errNoResource)
	})

	router.Route("/api", func(api chi.Router) {
		api.Get("/health", h.Health)
		api.Route("/auth", func(r chi.Router) {
			r.With(h.limiter.Middleware).Post("/register", h.Register)
			r.With(h.limiter.Middleware).Post("/login", h.Login)
			r.With(middleware.Auth(h.cfg.JWTSecret)).Get("/me", h.Me)
		})
		api.Get("/ws/events", h.WSEvents)

		api.Group(func(r chi.Router) {
			r.Use(middleware.Auth(h.cfg.JWTSecret))
			r.Get("/dashboard/summary", h.DashboardSummary)
			for _, svc := range h.order {
				h.mountRecords(r, svc, h.actions(svc.Entity().Path))
			}
		})

		api.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(h.cfg.JWTSecret))
			r.Use(middleware.RequireRole(h.users, models.RoleAdmin))
			r.Get("/users", h.AdminListUsers)
			r.Put("/users/{id}/role", h.AdminSetRole)
			r.Get("/audit", h.AdminListAudit)
			r.Get("/records/{path}", h.AdminListRecords)
		})
	})
	return router
}
