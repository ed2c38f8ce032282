package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinicore/clinic-scheduler/internal/audit"
	"github.com/clinicore/clinic-scheduler/internal/config"
	subdomain "github.com/clinicore/clinic-scheduler/internal/domain/subscription"
	"github.com/clinicore/clinic-scheduler/internal/handlers"
	"github.com/clinicore/clinic-scheduler/internal/infra/cache"
	infraRepo "github.com/clinicore/clinic-scheduler/internal/infra/repository"
	"github.com/clinicore/clinic-scheduler/internal/infra/storage"
	"github.com/clinicore/clinic-scheduler/internal/middleware"
	"github.com/clinicore/clinic-scheduler/internal/notify"
	ucAvailability "github.com/clinicore/clinic-scheduler/internal/usecase/availability"
	ucBooking "github.com/clinicore/clinic-scheduler/internal/usecase/booking"
	ucSubscription "github.com/clinicore/clinic-scheduler/internal/usecase/subscription"
)

const availabilityCacheTTL = 5 * time.Minute

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	logger *zap.Logger,
	rdb *redis.Client,
	gateway subdomain.PaymentGateway,
	uploader *storage.S3Uploader,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	subscriptionRepo := infraRepo.NewSubscriptionGormRepository(db)

	availabilityCache := cache.NewAvailabilityCache(rdb, availabilityCacheTTL)

	mailer := notify.NewSMTPMailer(cfg.SMTPAddr, cfg.MailFrom, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	notifyDispatcher := notify.NewDispatcher(db, mailer, logger)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	// ======================================================
	// USE CASES — AVAILABILITY
	// ======================================================
	setAvailabilityUC := ucAvailability.NewSetAvailability(
		bookingRepo,
		availabilityCache,
		auditDispatcher,
		logger,
	)

	getAvailabilityUC := ucAvailability.NewGetAvailability(
		bookingRepo,
		availabilityCache,
	)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	checkFreeBookingUC := ucBooking.NewCheckFreeBooking(
		bookingRepo,
		subscriptionRepo,
	)

	bookAppointmentUC := ucBooking.NewBookAppointment(
		bookingRepo,
		subscriptionRepo,
		checkFreeBookingUC,
		notifyDispatcher,
		availabilityCache,
		auditDispatcher,
		logger,
	)

	cancelAppointmentUC := ucBooking.NewCancelAppointment(
		bookingRepo,
		subscriptionRepo,
		notifyDispatcher,
		availabilityCache,
		auditDispatcher,
		logger,
	)

	completeAppointmentUC := ucBooking.NewCompleteAppointment(
		bookingRepo,
		notifyDispatcher,
		auditDispatcher,
		logger,
	)

	listAppointmentsUC := ucBooking.NewListAppointments(bookingRepo)

	removeSlotUC := ucAvailability.NewRemoveSlot(
		bookingRepo,
		cancelAppointmentUC,
		availabilityCache,
		auditDispatcher,
		logger,
	)

	updateSlotUC := ucAvailability.NewUpdateSlot(
		bookingRepo,
		notifyDispatcher,
		availabilityCache,
		auditDispatcher,
		logger,
	)

	// ======================================================
	// USE CASES — SUBSCRIPTIONS
	// ======================================================
	purchaseSubscriptionUC := ucSubscription.NewPurchaseSubscription(
		subscriptionRepo,
		bookingRepo,
		gateway,
		notifyDispatcher,
		auditDispatcher,
		logger,
	)

	cancelSubscriptionUC := ucSubscription.NewCancelSubscription(
		subscriptionRepo,
		gateway,
		notifyDispatcher,
		auditDispatcher,
		logger,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	doctorHandler := handlers.NewDoctorHandler(db, uploader)
	planHandler := handlers.NewPlanHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)

	availabilityHandler := handlers.NewAvailabilityHandler(
		setAvailabilityUC,
		removeSlotUC,
		updateSlotUC,
		getAvailabilityUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		checkFreeBookingUC,
		listAppointmentsUC,
	)

	subscriptionHandler := handlers.NewSubscriptionHandler(
		db,
		purchaseSubscriptionUC,
		cancelSubscriptionUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/doctors/:id/availability", availabilityHandler.Get)
		api.GET("/doctors/:id/plans", planHandler.ListByDoctor)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/doctors/register", authHandler.RegisterDoctor)
		api.POST("/auth/doctors/login", authHandler.LoginDoctor)
		api.POST("/auth/patients/register", authHandler.RegisterPatient)
		api.POST("/auth/patients/login", authHandler.LoginPatient)

		// ------------------------------
		// DOCTOR AREA
		// ------------------------------
		doctor := api.Group("/me")
		doctor.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(middleware.RoleDoctor))
		{
			doctor.GET("", doctorHandler.GetMe)
			doctor.PATCH("", doctorHandler.UpdateMe)
			doctor.POST("/avatar", doctorHandler.UploadAvatar)

			doctor.POST("/availability", availabilityHandler.Set)
			doctor.DELETE("/availability/:id/slots/:index", availabilityHandler.RemoveSlot)
			doctor.PATCH("/availability/:id/slots/:index", availabilityHandler.UpdateSlot)

			doctor.GET("/appointments", appointmentHandler.ListForDoctor)
			doctor.PATCH("/appointments/:id/cancel", appointmentHandler.CancelByDoctor)
			doctor.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			doctor.POST("/plans", planHandler.Create)

			doctor.GET("/notifications", notificationHandler.List)
		}

		// ------------------------------
		// PATIENT AREA
		// ------------------------------
		patient := api.Group("/patient")
		patient.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(middleware.RolePatient))
		{
			patient.POST("/appointments", appointmentHandler.Book)
			patient.GET("/appointments", appointmentHandler.ListForPatient)
			patient.PATCH("/appointments/:id/cancel", appointmentHandler.CancelByPatient)

			patient.GET("/doctors/:id/free-booking", appointmentHandler.CheckFreeBooking)

			patient.POST("/subscriptions", subscriptionHandler.Purchase)
			patient.GET("/subscriptions", subscriptionHandler.ListMine)
			patient.PATCH("/subscriptions/:id/cancel", subscriptionHandler.Cancel)

			patient.GET("/notifications", notificationHandler.List)
		}
	}
}
