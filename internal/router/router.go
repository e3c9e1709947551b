package router

import (
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gymwarriors/fitnesshub-backend/internal/config"
	"github.com/gymwarriors/fitnesshub-backend/internal/handler"
	"github.com/gymwarriors/fitnesshub-backend/internal/middleware"
	"github.com/gymwarriors/fitnesshub-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Class    *handler.ClassHandler
	Booking  *handler.BookingHandler
	Trainer  *handler.TrainerHandler
	User     *handler.UserHandler
	Staff    *handler.StaffHandler
	Invoice  *handler.InvoiceHandler
	Carousel *handler.CarouselHandler
	WS       *handler.WSHandler
	System   *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	verifier middleware.TokenVerifier,
	authLimiter *middleware.RateLimiter,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli(brotli.DefaultCompression))

	router.GET("/health", handlers.System.Health)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/signup", authLimiter.Middleware(), handlers.Auth.Signup)
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)

		auth.POST("/logout", middleware.RequireAuth(verifier), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(verifier), middleware.NoStore(), handlers.Auth.Me)
	}

	// ─── 2. Public Catalogue ───────────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.GET("/classes", handlers.Class.ListClasses)
		api.GET("/classes/:id", handlers.Class.GetClass)
		api.GET("/trainers", middleware.CacheControl(60), handlers.Trainer.ListTrainers)
		api.GET("/carousel", middleware.CacheControl(60), handlers.Carousel.ListImages)
	}

	// ─── 3. Member Group (User JWT + Session) ──────────────────────────
	member := router.Group("/api/v1")
	member.Use(middleware.RequireUserJWT(verifier), middleware.NoStore())
	{
		member.POST("/classes/:id/bookings", handlers.Booking.BookClass)
		member.DELETE("/bookings/:id", handlers.Booking.CancelBooking)
		member.GET("/me/bookings", handlers.Class.ListMyBookings)
	}

	// ─── 4. Staff Group (Staff JWT + Role) ─────────────────────────────
	staff := router.Group("/api/v1/staff")
	staff.Use(middleware.RequireStaffJWT(verifier), middleware.NoStore())
	{
		staff.POST("/classes",
			middleware.RequireStaffPermission(middleware.ManageClasses),
			handlers.Class.CreateClass,
		)
		staff.GET("/users",
			middleware.RequireStaffPermission(middleware.ManageUsers),
			handlers.User.ListUsers,
		)
		staff.PATCH("/users/:id/status",
			middleware.RequireStaffPermission(middleware.ManageUsers),
			handlers.User.UpdateUserStatus,
		)

		trainers := staff.Group("/trainers", middleware.RequireStaffPermission(middleware.ManageUsers))
		trainers.GET("", handlers.Staff.ListStaff)
		trainers.POST("", handlers.Staff.CreateStaff)
		trainers.PATCH("/:id", handlers.Staff.UpdateStaff)
		trainers.DELETE("/:id", handlers.Staff.DeactivateStaff)

		invoices := staff.Group("/invoices", middleware.RequireStaffPermission(middleware.ManageInvoices))
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/earnings", handlers.Invoice.MonthlyEarnings)
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.PATCH("/:id/paid", handlers.Invoice.MarkInvoicePaid)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)

		carousel := staff.Group("/carousel", middleware.RequireStaffPermission(middleware.ManageContent))
		carousel.POST("", handlers.Carousel.AddImage)
		carousel.PUT("/order", handlers.Carousel.ReorderImages)
		carousel.DELETE("/:id", handlers.Carousel.DeleteImage)
	}

	// ─── 5. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAuth(verifier))
	{
		ws.GET("/classes/stream", handlers.WS.SlotStream)
	}

	return router
}
