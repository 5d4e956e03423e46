package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/adityarahman/gighub_be/internal/config"
	"github.com/adityarahman/gighub_be/internal/handlers"
	"github.com/adityarahman/gighub_be/internal/middleware"
	"github.com/adityarahman/gighub_be/internal/realtime"
	"github.com/adityarahman/gighub_be/internal/services/payments"
	"github.com/adityarahman/gighub_be/internal/store"
)

// New assembles the fiber app with every route wired. main and the tests
// share this so they always run the same router.
func New(cfg config.Config, stores store.Stores, hub *realtime.Hub, notifier *realtime.Notifier) *fiber.App {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	pay := payments.NewService(stores)

	authH := &handlers.AuthHandler{
		Stores:    stores,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		Stores:          stores,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	serviceH := handlers.NewServiceHandler(stores)
	categoryH := handlers.NewCategoryHandler(stores)
	jobH := handlers.NewJobHandler(stores)
	applicationH := handlers.NewApplicationHandler(stores, notifier)
	orderH := handlers.NewOrderHandler(stores, pay, notifier, cfg.PlatformFeePct)
	reviewH := handlers.NewReviewHandler(stores, notifier)
	walletH := handlers.NewWalletHandler(stores)
	dashboardH := handlers.NewDashboardHandler(stores)
	adminH := handlers.NewAdminHandler(stores)
	notifyH := handlers.NewNotifyWSHandler(hub, cfg.JWTSecret)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/categories", categoryH.GetCategories)
	api.Get("/services", serviceH.ListPublic)
	api.Get("/services/:id", serviceH.GetDetail)
	api.Get("/services/:id/reviews", serviceH.GetReviews)
	api.Get("/jobs", jobH.ListPublic)
	api.Get("/jobs/:id", jobH.GetDetail)

	// protected (JWT cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", authH.Me)
	protected.Get("/me/wallet", walletH.Me)
	protected.Post("/wallet/topup", walletH.Topup)

	// freelancer side
	protected.Post("/freelancer/services",
		middleware.RequireRoles("freelancer"), serviceH.Create)
	protected.Get("/freelancer/services",
		middleware.RequireRoles("freelancer"), serviceH.ListMine)
	protected.Get("/freelancer/services/:id",
		middleware.RequireRoles("freelancer"), serviceH.GetMine)
	protected.Put("/freelancer/services/:id",
		middleware.RequireRoles("freelancer"), serviceH.Update)
	protected.Delete("/freelancer/services/:id",
		middleware.RequireRoles("freelancer"), serviceH.Delete)
	protected.Get("/freelancer/dashboard",
		middleware.RequireRoles("freelancer"), dashboardH.Freelancer)
	protected.Post("/jobs/:id/applications",
		middleware.RequireRoles("freelancer"), applicationH.Apply)
	protected.Get("/applications",
		middleware.RequireRoles("freelancer"), applicationH.ListMine)
	protected.Delete("/applications/:id",
		middleware.RequireRoles("freelancer"), applicationH.Withdraw)

	// employer side
	protected.Post("/employer/jobs",
		middleware.RequireRoles("employer"), jobH.Create)
	protected.Get("/employer/jobs",
		middleware.RequireRoles("employer"), jobH.ListMine)
	protected.Put("/employer/jobs/:id",
		middleware.RequireRoles("employer"), jobH.Update)
	protected.Patch("/employer/jobs/:id/close",
		middleware.RequireRoles("employer"), jobH.Close)
	protected.Get("/jobs/:id/applications",
		middleware.RequireRoles("employer"), applicationH.ListForJob)
	protected.Patch("/applications/:id",
		middleware.RequireRoles("employer"), applicationH.Decide)

	// orders, any authenticated user
	protected.Post("/orders", orderH.Create)
	protected.Get("/orders", orderH.List)
	protected.Get("/orders/:id", orderH.Get)
	protected.Post("/orders/:id/pay", orderH.Pay)
	protected.Patch("/orders/:id/status", orderH.UpdateStatus)
	protected.Post("/orders/:id/review", reviewH.Create)

	// admin
	admin := protected.Group("/admin", middleware.RequireRoles("admin"))
	admin.Get("/users", adminH.ListUsers)
	admin.Patch("/users/:id/status", adminH.SetUserStatus)
	admin.Get("/stats", adminH.Stats)
	admin.Patch("/services/:id/archive", adminH.ArchiveService)
	admin.Patch("/jobs/:id/close", adminH.CloseJob)

	// websocket, auth via query token
	app.Get("/ws/notify", websocket.New(notifyH.Handle))

	return app
}
