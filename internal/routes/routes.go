package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trimsync/barbershop-api/internal/audit"
	"github.com/trimsync/barbershop-api/internal/catalog"
	"github.com/trimsync/barbershop-api/internal/config"
	"github.com/trimsync/barbershop-api/internal/engine"
	"github.com/trimsync/barbershop-api/internal/handlers"
	infraRepo "github.com/trimsync/barbershop-api/internal/infra/repository"
	"github.com/trimsync/barbershop-api/internal/middleware"
	"github.com/trimsync/barbershop-api/internal/validators"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	catalogStore := catalog.NewStore(db, rdb, log)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	requestValidator := validators.NewRequest()

	// ======================================================
	// SCHEDULING ENGINE
	// ======================================================
	createUC := engine.NewCreateAppointment(appointmentRepo, catalogStore, auditDispatcher)
	confirmUC := engine.NewConfirmAppointment(appointmentRepo, auditDispatcher)
	cancelUC := engine.NewCancelAppointment(appointmentRepo, auditDispatcher)
	completeUC := engine.NewCompleteAppointment(appointmentRepo, auditDispatcher)
	rescheduleUC := engine.NewRescheduleAppointment(appointmentRepo, auditDispatcher)
	detailsUC := engine.NewGetAppointmentDetails(appointmentRepo, auditDispatcher)
	scheduleUC := engine.NewGetBarberSchedule(appointmentRepo, catalogStore, auditDispatcher)
	historyUC := engine.NewGetCustomerHistory(appointmentRepo, catalogStore, auditDispatcher)
	availabilityUC := engine.NewGetAvailability(appointmentRepo, catalogStore, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	barbershopHandler := handlers.NewBarbershopHandler(db)
	catalogHandler := handlers.NewCatalogHandler(db, catalogStore)
	customerHandler := handlers.NewCustomerHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		requestValidator,
		createUC,
		confirmUC,
		cancelUC,
		completeUC,
		rescheduleUC,
		detailsUC,
		scheduleUC,
		historyUC,
		availabilityUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/barbershop", barbershopHandler.Get)
			secured.PATCH("/me/barbershop", barbershopHandler.Update)

			secured.GET("/me/barbers", catalogHandler.ListBarbers)
			secured.POST("/me/barbers", catalogHandler.CreateBarber)
			secured.PATCH("/me/barbers/:id", catalogHandler.UpdateBarber)
			secured.GET("/me/barbers/:id/schedule", appointmentHandler.BarberSchedule)

			secured.GET("/me/services", catalogHandler.ListServices)
			secured.POST("/me/services", catalogHandler.CreateService)
			secured.PATCH("/me/services/:id", catalogHandler.UpdateService)

			secured.GET("/me/customers", customerHandler.List)
			secured.POST("/me/customers", customerHandler.Create)
			secured.GET("/me/customers/:id/appointments", appointmentHandler.CustomerHistory)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.GET("/me/availability", appointmentHandler.Availability)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
