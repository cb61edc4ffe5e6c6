package router

import (
	"time"

	"github.com/Aniket-89/recrm/internal/config"
	"github.com/Aniket-89/recrm/internal/handler"
	"github.com/Aniket-89/recrm/internal/middleware"
	"github.com/Aniket-89/recrm/internal/repository"
	"github.com/Aniket-89/recrm/internal/service"
	"github.com/Aniket-89/recrm/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	plotRepo := repository.NewPlotRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	rmRepo := repository.NewRMRepository(db)
	planRepo := repository.NewPlanRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentEntryRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	projectSvc := service.NewProjectService(projectRepo)
	plotSvc := service.NewPlotService(plotRepo, projectRepo)
	customerSvc := service.NewCustomerService(customerRepo, bookingRepo, paymentRepo, documentRepo)
	rmSvc := service.NewRMService(rmRepo, bookingRepo)
	planSvc := service.NewPlanService(planRepo)
	bookingSvc := service.NewBookingService(bookingRepo, plotRepo, planRepo, paymentRepo)
	paymentSvc := service.NewPaymentService(bookingRepo, paymentRepo, dispatcher)
	sweepSvc := service.NewSweepService(bookingRepo, rmRepo, dispatcher)
	reportSvc := service.NewReportService(reportRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	projectsH := handler.NewProjectsHandler(projectSvc)
	plotsH := handler.NewPlotsHandler(plotSvc, rdb)
	customersH := handler.NewCustomersHandler(customerSvc)
	documentsH := handler.NewDocumentsHandler(documentRepo)
	rmsH := handler.NewRMsHandler(rmSvc)
	plansH := handler.NewPlansHandler(planSvc)
	bookingsH := handler.NewBookingsHandler(bookingSvc, paymentSvc, plotSvc, rdb)
	reportsH := handler.NewReportsHandler(reportSvc)
	adminH := handler.NewAdminHandler(sweepSvc, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Public plot availability check — no auth, read-only
	r.GET("/v1/plot-lookup", plotsH.Lookup)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: sales, accounts, admin — declared per-endpoint
		anyStaff := middleware.RequireRole("sales", "accounts", "admin")

		// Projects — all staff read, admin writes
		v1.GET("/projects", anyStaff, projectsH.List)
		v1.GET("/projects/:id", anyStaff, projectsH.Get)
		projects := v1.Group("/projects", middleware.RequireRole("admin"))
		{
			projects.POST("", projectsH.Create)
			projects.PUT("/:id", projectsH.Update)
		}

		// Plots — all staff read, sales/admin write (manual status change is
		// enforced admin-only inside the service)
		v1.GET("/plots", anyStaff, plotsH.List)
		v1.GET("/plots/:id", anyStaff, plotsH.Get)
		plots := v1.Group("/plots", middleware.RequireRole("sales", "admin"))
		{
			plots.POST("", plotsH.Create)
			plots.PUT("/:id", plotsH.Update)
		}

		// Customers — all staff
		v1.GET("/customers", anyStaff, customersH.List)
		v1.GET("/customers/:id", anyStaff, customersH.Get)
		v1.GET("/customers/:id/documents", anyStaff, documentsH.ListByCustomer)
		v1.GET("/customers/:id/summary", anyStaff, customersH.Summary)
		customers := v1.Group("/customers", middleware.RequireRole("sales", "admin"))
		{
			customers.POST("", customersH.Create)
			customers.PUT("/:id", customersH.Update)
		}

		// Documents
		v1.POST("/documents", middleware.RequireRole("sales", "admin"), documentsH.Create)
		v1.DELETE("/documents/:id", middleware.RequireRole("admin"), documentsH.Delete)

		// Relationship managers — all staff read, admin writes
		v1.GET("/relationship-managers", anyStaff, rmsH.List)
		v1.GET("/relationship-managers/:id", anyStaff, rmsH.Get)
		v1.GET("/relationship-managers/:id/performance", anyStaff, rmsH.Performance)
		rms := v1.Group("/relationship-managers", middleware.RequireRole("admin"))
		{
			rms.POST("", rmsH.Create)
			rms.PUT("/:id", rmsH.Update)
			rms.DELETE("/:id", rmsH.Deactivate)
		}

		// Payment plans — all staff read, admin writes
		v1.GET("/payment-plans", anyStaff, plansH.List)
		v1.GET("/payment-plans/:id", anyStaff, plansH.Get)
		plans := v1.Group("/payment-plans", middleware.RequireRole("admin"))
		{
			plans.POST("", plansH.Create)
			plans.PUT("/:id", plansH.Update)
			plans.DELETE("/:id", plansH.Deactivate)
		}

		// Bookings — sales drive the lifecycle, accounts record money
		v1.GET("/bookings", anyStaff, bookingsH.List)
		v1.GET("/bookings/:id", anyStaff, bookingsH.Get)
		v1.POST("/bookings", middleware.RequireRole("sales", "admin"), bookingsH.Create)
		v1.PUT("/bookings/:id", middleware.RequireRole("sales", "admin"), bookingsH.Update)
		v1.POST("/bookings/:id/submit", middleware.RequireRole("sales", "admin"), bookingsH.Submit)
		v1.DELETE("/bookings/:id", middleware.RequireRole("admin"), bookingsH.Cancel)
		v1.POST("/bookings/:id/refresh-status", anyStaff, bookingsH.RefreshStatus)

		// Payments — accounts/admin only
		v1.GET("/bookings/:id/payments", anyStaff, bookingsH.ListPayments)
		v1.POST("/bookings/:id/schedule/:row_id/payments",
			middleware.RequireRole("accounts", "admin"), bookingsH.ReceivePayment)
		v1.POST("/bookings/:id/invoice",
			middleware.RequireRole("accounts", "admin"), bookingsH.GenerateInvoice)

		// Reports — all staff
		v1.GET("/reports/:name", anyStaff, reportsH.Run)

		// Users + operations — admin only
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
		}
		v1.POST("/admin/sweep-overdue", middleware.RequireRole("admin"), adminH.RunSweep)
		v1.GET("/admin/queues", middleware.RequireRole("admin"), adminH.QueueStats)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
