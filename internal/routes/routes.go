package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/phucdtWork/clinic-scheduler/internal/config"
	"github.com/phucdtWork/clinic-scheduler/internal/handlers"
	infraRepo "github.com/phucdtWork/clinic-scheduler/internal/infra/repository"
	"github.com/phucdtWork/clinic-scheduler/internal/lock"
	"github.com/phucdtWork/clinic-scheduler/internal/middleware"
	"github.com/phucdtWork/clinic-scheduler/internal/models"
	"github.com/phucdtWork/clinic-scheduler/internal/notify"
	ucBooking "github.com/phucdtWork/clinic-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	notifyStore := notify.New(db)
	dispatcher := notify.NewDispatcher(notifyStore)

	slotLocker := lock.New(rdb)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	getSlotsUC := ucBooking.NewGetSlots(bookingRepo)
	getSlotsRangeUC := ucBooking.NewGetSlotsRange(bookingRepo)
	getScheduleUC := ucBooking.NewGetSchedule(bookingRepo)
	upsertScheduleUC := ucBooking.NewUpsertSchedule(bookingRepo)

	createAppointmentUC := ucBooking.NewCreateAppointment(
		bookingRepo,
		dispatcher,
		slotLocker,
	)

	updateStatusUC := ucBooking.NewUpdateStatus(
		bookingRepo,
		dispatcher,
	)

	cancelAppointmentUC := ucBooking.NewCancelAppointment(
		bookingRepo,
		dispatcher,
	)

	rescheduleAppointmentUC := ucBooking.NewRescheduleAppointment(
		bookingRepo,
		dispatcher,
		slotLocker,
	)

	listForPatientUC := ucBooking.NewListForPatient(bookingRepo)
	listForDoctorUC := ucBooking.NewListForDoctor(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	scheduleHandler := handlers.NewScheduleHandler(
		getSlotsUC,
		getSlotsRangeUC,
		getScheduleUC,
		upsertScheduleUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateStatusUC,
		cancelAppointmentUC,
		rescheduleAppointmentUC,
		listForPatientUC,
		listForDoctorUC,
	)

	notificationHandler := handlers.NewNotificationHandler(db)

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
		// PUBLIC AVAILABILITY
		// ------------------------------
		api.GET("/schedules/doctor/:doctorId/slots", scheduleHandler.GetSlots)
		api.GET("/schedules/doctor/:doctorId/slots/range", scheduleHandler.GetSlotsRange)
		api.GET("/schedules/doctor/:doctorId", scheduleHandler.GetByDoctor)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/notifications", notificationHandler.List)
			secured.PATCH("/me/notifications/read", notificationHandler.MarkRead)

			// ------------------------------
			// SCHEDULES (doctor)
			// ------------------------------
			secured.POST("/schedules",
				middleware.RequireRole(models.RoleDoctor),
				scheduleHandler.Upsert,
			)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments",
				middleware.RequireRole(models.RolePatient),
				appointmentHandler.Create,
			)
			secured.GET("/appointments/my",
				middleware.RequireRole(models.RolePatient),
				appointmentHandler.ListMine,
			)
			secured.GET("/appointments/doctor",
				middleware.RequireRole(models.RoleDoctor),
				appointmentHandler.ListForDoctor,
			)
			secured.PATCH("/appointments/:id/status",
				middleware.RequireRole(models.RoleDoctor),
				appointmentHandler.UpdateStatus,
			)
			secured.PUT("/appointments/:id",
				middleware.RequireRole(models.RolePatient),
				appointmentHandler.PatientUpdate,
			)
		}
	}
}
