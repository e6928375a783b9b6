package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/clinicbase/clinic-scheduler/internal/config"
	"github.com/clinicbase/clinic-scheduler/internal/handlers"
	infraRepo "github.com/clinicbase/clinic-scheduler/internal/infra/repository"
	"github.com/clinicbase/clinic-scheduler/internal/middleware"
	"github.com/clinicbase/clinic-scheduler/internal/realtime"
	"github.com/clinicbase/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/clinicbase/clinic-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	pub realtime.Publisher,
	ws *realtime.Handler,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	repo := infraRepo.NewSchedulerGormRepository(db)
	loc := timezone.Location(cfg.ClinicTimezone)

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(repo, pub, loc, cfg.DefaultGender)
	updateUC := ucAppointment.NewUpdateAppointment(repo, pub, loc)
	deleteUC := ucAppointment.NewDeleteAppointment(repo, pub, loc)
	getUC := ucAppointment.NewGetAppointment(repo)
	listUC := ucAppointment.NewListAppointments(repo)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(repo, loc)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(repo, loc)
	importUC := ucAppointment.NewImportAppointments(createUC, repo)
	importLedgerUC := ucAppointment.NewImportReschedules(createUC, repo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		updateUC,
		deleteUC,
		getUC,
		listUC,
		listByDateUC,
		listByMonthUC,
		importUC,
	)
	rescheduleHandler := handlers.NewRescheduleHandler(db, importLedgerUC)
	clientHandler := handlers.NewClientHandler(db)

	// ======================================================
	// OPERATIONAL SURFACE
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws", ws.Serve)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// APPOINTMENTS (open booking surface; identity, when
		// present, feeds scheduleBy attribution)
		// ------------------------------
		appointments := api.Group("/appointments")
		appointments.Use(middleware.OptionalAuth(cfg))
		{
			appointments.POST("", appointmentHandler.Create)
			appointments.GET("", appointmentHandler.List)
			appointments.GET("/filter-by-date", appointmentHandler.ListByDate)
			appointments.GET("/filter", appointmentHandler.ListByMonth)
			appointments.GET("/:id", appointmentHandler.GetByID)
			appointments.PUT("/:id", appointmentHandler.Update)
			appointments.DELETE("/:id", appointmentHandler.Delete)
			appointments.POST("/import", appointmentHandler.Import)
		}

		// ------------------------------
		// RESCHEDULE LEDGER
		// ------------------------------
		reschedule := api.Group("/reschedule")
		{
			reschedule.GET("", rescheduleHandler.List)
			reschedule.GET("/:id", rescheduleHandler.GetByID)
			reschedule.POST("/import", middleware.AuthMiddleware(cfg), rescheduleHandler.Import)
			reschedule.DELETE("/:id", middleware.AuthMiddleware(cfg), rescheduleHandler.Delete)
		}

		// ------------------------------
		// CLIENTS (staff only)
		// ------------------------------
		clients := api.Group("/clients")
		clients.Use(middleware.AuthMiddleware(cfg))
		{
			clients.GET("", clientHandler.List)
			clients.GET("/:id", clientHandler.GetByID)
			clients.PUT("/:id", clientHandler.Update)
			clients.DELETE("/:id", clientHandler.Delete)
		}
	}
}
