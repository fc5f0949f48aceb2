package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/auth"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	"github.com/BruksfildServices01/salon-platform/internal/config"
	"github.com/BruksfildServices01/salon-platform/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-platform/internal/infra/repository"
	"github.com/BruksfildServices01/salon-platform/internal/metrics"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/notification"
	"github.com/BruksfildServices01/salon-platform/internal/storage"
)

// Deps are the process singletons the routes are built from.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *logrus.Logger
	Tokens   *auth.TokenService
	Authz    *authz.Authorizer
	Audit    audit.Recorder
	Notifier *notification.Service
	Limiter  middleware.Limiter
	Storage  storage.Presigner
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestLogger(d.Log),
		middleware.Metrics(),
		middleware.CORSMiddleware(d.Config.CORSAllowOrigins),
		middleware.RequireJSON(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// HANDLERS
	// ======================================================
	db, az, rec := d.DB, d.Authz, d.Audit

	authHandler := handlers.NewAuthHandler(db, d.Config, d.Tokens, d.Limiter, d.Log)
	meHandler := handlers.NewMeHandler(db, d.Storage)

	salonHandler := handlers.NewSalonHandler(db, rec, az)
	staffHandler := handlers.NewStaffHandler(db, rec, az)
	serviceHandler := handlers.NewServiceHandler(db, rec, az)
	productHandler := handlers.NewProductHandler(db, rec, az)
	customerHandler := handlers.NewCustomerHandler(db, az)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, az)

	appointmentHandler := handlers.NewAppointmentHandler(db, rec, az, d.Notifier)
	cartHandler := handlers.NewCartHandler(db, rec, az)

	loyaltyRepo := infraRepo.NewLoyaltyGormRepository(db)
	loyaltyHandler := handlers.NewLoyaltyHandler(loyaltyRepo)
	promotionHandler := handlers.NewPromotionHandler(db, rec, az, loyaltyRepo, d.Notifier, d.Log)

	reviewHandler := handlers.NewReviewHandler(db, rec, az, d.Notifier)
	notificationHandler := handlers.NewNotificationHandler(d.DB, d.Notifier, az)

	adminHandler := handlers.NewAdminHandler(db)

	// ======================================================
	// AUTH
	// ======================================================
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", middleware.RateLimit(d.Limiter, "signup", d.Log), authHandler.Signup)
		authGroup.POST("/login", middleware.RateLimit(d.Limiter, "login-ip", d.Log), authHandler.Login)
	}

	// ======================================================
	// PUBLIC CATALOG
	// ======================================================
	r.GET("/salons", salonHandler.List)
	r.GET("/salons/:id", salonHandler.Get)
	r.GET("/salons/:id/staff", staffHandler.List)
	r.GET("/salons/:id/services", serviceHandler.List)
	r.GET("/salons/:id/products", productHandler.List)
	r.GET("/salons/:id/reviews", reviewHandler.ListForSalon)
	r.GET("/salons/:id/promotions", promotionHandler.List)

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(d.Tokens))
	{
		secured.GET("/auth/me", authHandler.Me)
		secured.POST("/users/me/profile-picture", meHandler.ProfilePictureUpload)

		// ------------------------------
		// SALONS
		// ------------------------------
		secured.POST("/salons", middleware.Authorize(az, authz.ActionSalonCreate), salonHandler.Create)
		secured.PATCH("/salons/:id/approve", middleware.Authorize(az, authz.ActionSalonApprove), salonHandler.Approve)
		secured.PATCH("/salons/:id/settings", salonHandler.UpdateSettings)

		secured.POST("/salons/:id/staff", staffHandler.Add)
		secured.POST("/salons/:id/services", serviceHandler.Create)
		secured.POST("/salons/:id/products", productHandler.Create)
		secured.PATCH("/salons/:id/products/:productId", productHandler.Update)
		secured.POST("/salons/:id/promotions", promotionHandler.Create)

		secured.GET("/salons/:id/customers", customerHandler.List)
		secured.GET("/salons/:id/customers/:customerId/history", appointmentHandler.CustomerHistory)
		secured.GET("/salons/:id/audit-logs", auditLogsHandler.List)

		// ------------------------------
		// STAFF
		// ------------------------------
		secured.PATCH("/staff/:id/assign", staffHandler.Assign)
		secured.GET("/staff/:id/availability", staffHandler.GetAvailability)
		secured.POST("/staff/:id/availability", staffHandler.AddAvailability)
		secured.PATCH("/staff/availability/:id", staffHandler.UpdateAvailability)
		secured.GET("/staff/:id/appointments", appointmentHandler.StaffDay)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		secured.POST("/appointments", appointmentHandler.Book)
		secured.GET("/appointments", appointmentHandler.List)
		secured.GET("/users/me/appointments", appointmentHandler.History)
		secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		secured.PATCH("/appointments/:id/complete",
			middleware.Authorize(az, authz.ActionAppointmentFinish),
			appointmentHandler.Complete,
		)

		// ------------------------------
		// COMMERCE
		// ------------------------------
		secured.POST("/carts", cartHandler.Open)
		secured.GET("/carts/active", cartHandler.Active)
		secured.POST("/carts/:id/items", cartHandler.AddItem)
		secured.DELETE("/carts/items/:itemId", cartHandler.RemoveItem)
		secured.POST("/checkout", cartHandler.Checkout)

		secured.GET("/loyalty", loyaltyHandler.List)
		secured.GET("/loyalty/:salonId", loyaltyHandler.Get)

		// ------------------------------
		// FEEDBACK & MESSAGING
		// ------------------------------
		secured.POST("/reviews", reviewHandler.Create)
		secured.PATCH("/reviews/:id/respond", middleware.Authorize(az, authz.ActionReviewRespond), reviewHandler.Respond)

		secured.GET("/notifications", notificationHandler.List)
		secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
		secured.POST("/notifications/send",
			middleware.Authorize(az, authz.ActionNotificationSend),
			notificationHandler.Send,
		)
	}

	// ======================================================
	// ADMIN
	// ======================================================
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(d.Tokens), middleware.Authorize(az, authz.ActionAdminStats))
	{
		admin.GET("/stats/engagement", adminHandler.Engagement)
		admin.GET("/stats/appointments", adminHandler.Appointments)
		admin.GET("/stats/revenue", adminHandler.Revenue)
		admin.GET("/stats/loyalty", adminHandler.Loyalty)
		admin.GET("/stats/demographics", adminHandler.Demographics)
		admin.GET("/stats/retention", adminHandler.Retention)
		admin.GET("/reports/summary", adminHandler.Summary)
		admin.GET("/system/health", adminHandler.SystemHealth)
	}
}
