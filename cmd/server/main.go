package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dicel-erp/internal/cache"
	"dicel-erp/internal/config"
	"dicel-erp/internal/db"
	"dicel-erp/internal/handlers"
	"dicel-erp/internal/logger"
	"dicel-erp/internal/middleware"
	"dicel-erp/internal/resource"
	"dicel-erp/internal/services"
	"dicel-erp/internal/store"
	"dicel-erp/internal/websocket"

	"github.com/joho/godotenv"
)

const (
	connectTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DatabaseURL, connectTimeout)
	if err != nil {
		logg.Fatalw("failed to connect database", "error", err)
	}
	defer database.Close()

	txRunner := db.NewTxRunner(database)
	stats := cache.New(cfg.StatsCacheTTL())
	hub := websocket.NewHub()
	audit := store.NewAuditStore(database)
	employees := store.NewEmployeeStore(database)
	dashboardStore := store.NewDashboardStore(database)
	ledger := store.NewLedgerStore(database)
	leaveStore := store.NewLeaveStore(database)

	readers := make(map[string]*store.RecordStore)
	records := make([]handlers.RecordService, 0, len(resource.All()))
	for _, entity := range resource.All() {
		recordStore := store.NewRecordStore(database, entity)
		readers[entity.Path] = recordStore
		svc := services.NewRecordService(txRunner, recordStore, audit, stats, hub)
		switch entity {
		case resource.Transactions:
			svc = svc.WithHooks(services.LedgerHooks(ledger))
		case resource.LeaveRequests:
			svc = svc.WithHooks(services.LeaveHooks(leaveStore))
		}
		records = append(records, svc)
	}

	loc := cfg.Location()
	attendance := services.NewAttendanceService(txRunner, store.NewAttendanceStore(database),
		readers[resource.AttendanceRecords.Path], employees, audit, stats, hub, loc)
	leave := services.NewLeaveService(txRunner, leaveStore,
		readers[resource.LeaveRequests.Path], audit, stats, hub)
	payroll := services.NewPayrollService(txRunner, store.NewPayrollStore(database), audit, stats, hub, cfg.PayrollBatchSize)
	training := services.NewTrainingService(txRunner, store.NewEnrollmentStore(database),
		readers[resource.TrainingEnrollments.Path], employees, audit, stats, hub, loc)

	handler := handlers.New(handlers.Deps{
		Log:        logg,
		Config:     cfg,
		TxRunner:   txRunner,
		Health:     dashboardStore,
		Users:      store.NewUserStore(database),
		Admin:      store.NewAdminStore(database),
		Audit:      audit,
		Records:    records,
		Attendance: attendance,
		Leave:      leave,
		Payroll:    payroll,
		Training:   training,
		Dashboard:  services.NewDashboardService(dashboardStore, stats, loc),
		Hub:        hub,
		Limiter:    middleware.NewRateLimiter(cfg.LoginRatePerMinute),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logg.Infow("dicel erp api listening", "addr", server.Addr, "environment", cfg.AppEnv, "version", cfg.ServiceVersion)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatalw("server error", "error", err)
		}
	}()

	<-ctx.Done()
	logg.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Errorw("shutdown error", "error", err)
	}
}
