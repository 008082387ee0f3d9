package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/trainer-scheduler/internal/config"
	"github.com/BruksfildServices01/trainer-scheduler/internal/domain/policy"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/trainer-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/trainer-scheduler/internal/middleware"
	"github.com/BruksfildServices01/trainer-scheduler/internal/observability"
	ucBooking "github.com/BruksfildServices01/trainer-scheduler/internal/usecase/booking"
	ucSession "github.com/BruksfildServices01/trainer-scheduler/internal/usecase/session"
)

type Dependencies struct {
	DB      *gorm.DB
	Config  *config.Config
	Events  domain.EventEmitter
	Logger  *slog.Logger
	Metrics *observability.Metrics

	// Now overrides the wall clock. Nil means time.Now.
	Now func() time.Time
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	sessionRepo := infraRepo.NewGormRepository(
		deps.DB,
		infraRepo.WithLockTimeout(cfg.LockTimeout),
		infraRepo.WithTxTimeout(cfg.TxTimeout),
	)
	assignmentRepo := infraRepo.NewAssignmentGormRepository(deps.DB)
	engine := policy.NewEngine(cfg.Policy())

	// ======================================================
	// USE CASES: BOOKING
	// ======================================================
	bookRecurringUC := ucBooking.NewBookRecurring(
		sessionRepo,
		assignmentRepo,
		deps.Events,
		ucBooking.WithClock(now),
		ucBooking.WithMetrics(deps.Metrics),
		ucBooking.WithLogger(logger),
		ucBooking.WithDefaultDuration(time.Duration(cfg.SessionDurationMin)*time.Minute),
	)
	bookSingleUC := ucBooking.NewBookSingle(bookRecurringUC)
	getBalanceUC := ucBooking.NewGetBalance(sessionRepo, assignmentRepo)
	allocateUC := ucBooking.NewAllocateCredit(
		sessionRepo,
		deps.Events,
		ucBooking.WithMetrics(deps.Metrics),
		ucBooking.WithLogger(logger),
	)

	// ======================================================
	// USE CASES: SESSIONS
	// ======================================================
	sessionOpts := []ucSession.Option{
		ucSession.WithClock(now),
		ucSession.WithMetrics(deps.Metrics),
		ucSession.WithLogger(logger),
	}

	sessionHandler := handlers.NewSessionHandler(handlers.SessionUseCases{
		BookRecurring:    bookRecurringUC,
		BookSingle:       bookSingleUC,
		GetSession:       ucSession.NewGetSession(sessionRepo),
		Preview:          ucSession.NewEvaluateCancellation(sessionRepo, engine, sessionOpts...),
		Cancel:           ucSession.NewCancel(sessionRepo, engine, deps.Events, sessionOpts...),
		CancelGroup:      ucSession.NewCancelGroup(sessionRepo, engine, deps.Events, sessionOpts...),
		Confirm:          ucSession.NewConfirm(sessionRepo, deps.Events, sessionOpts...),
		RecordAttendance: ucSession.NewRecordAttendance(sessionRepo, deps.Events, sessionOpts...),
		WaiveNoShow:      ucSession.NewWaiveNoShow(sessionRepo, deps.Events, sessionOpts...),
		Report:           ucSession.NewGetAttendanceReport(sessionRepo),
		Reschedule:       ucSession.NewReschedule(sessionRepo, engine, deps.Events, sessionOpts...),
		ListGroups:       ucSession.NewListRecurringGroups(sessionRepo, sessionOpts...),
	})
	clientHandler := handlers.NewClientHandler(getBalanceUC, allocateUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	secured := api.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.GET("/clients/:id/balance", clientHandler.Balance)
		secured.POST("/clients/:id/credits", clientHandler.AllocateCredits)

		// ------------------------------
		// SESSIONS
		// ------------------------------
		secured.POST("/sessions", sessionHandler.Book)
		secured.POST("/sessions/recurring", sessionHandler.BookRecurring)
		secured.GET("/sessions/recurring", sessionHandler.ListRecurring)
		secured.DELETE("/sessions/recurring/:groupId", sessionHandler.CancelGroup)
		secured.GET("/sessions/attendance-report", sessionHandler.AttendanceReport)

		secured.GET("/sessions/:id", sessionHandler.Get)
		secured.GET("/sessions/:id/cancel-preview", sessionHandler.CancelPreview)
		secured.PATCH("/sessions/:id/cancel", sessionHandler.Cancel)
		secured.PATCH("/sessions/:id/confirm", sessionHandler.Confirm)
		secured.PATCH("/sessions/:id/reschedule", sessionHandler.Reschedule)
		secured.POST("/sessions/:id/attendance", sessionHandler.RecordAttendance)
		secured.POST("/sessions/:id/waive-no-show", sessionHandler.WaiveNoShow)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}
