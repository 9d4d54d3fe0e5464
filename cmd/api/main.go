package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-market-api/internal/gateway"
	"go-market-api/internal/handler"
	"go-market-api/internal/middleware"
	"go-market-api/internal/model"
	"go-market-api/internal/notify"
	"go-market-api/internal/repository"
	"go-market-api/internal/service"
	"go-market-api/internal/ws"
	"go-market-api/pkg/database"
	"go-market-api/pkg/logger"
	"go-market-api/pkg/response"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Get().Warn(".env file not found")
	}
	log := logger.Get()

	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{}, &model.SubCategory{},
		&model.State{}, &model.Postcode{},
		&model.Unit{}, &model.Filter{},
		&model.Product{},
		&model.GiftBox{}, &model.GiftBoxItem{},
		&model.Order{}, &model.OrderItem{},
		&model.StockMovement{},
		&model.RedeemEntry{},
		&model.Wishlist{}, &model.CheckoutItem{},
	); err != nil {
		log.WithField("error", err.Error()).Fatal("auto migration failed")
	}

	seedAdmin(db)

	wsHub := ws.NewHub()
	go wsHub.Run()

	// Repositories
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	subCategoryRepo := repository.NewSubCategoryRepo(db)
	stateRepo := repository.NewStateRepo(db)
	postcodeRepo := repository.NewPostcodeRepo(db)
	unitRepo := repository.NewUnitRepo(db)
	filterRepo := repository.NewFilterRepo(db)
	giftBoxRepo := repository.NewGiftBoxRepo(db)
	productRepo := repository.NewProductRepo(db)
	ledgerRepo := repository.NewLedgerRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	redeemRepo := repository.NewRedeemRepo(db)
	wishlistRepo := repository.NewWishlistRepo(db)
	checkoutRepo := repository.NewCheckoutRepo(db)

	// External adapters
	paymentGateway := gateway.NewRapidGateway()
	mailer := notify.NewSMTPSender()
	smsSender := notify.NewRestSMSSender()

	// Services
	inventory := service.NewInventoryEngine(ledgerRepo, productRepo, db, wsHub, log)
	loyalty := service.NewLoyaltyLedger(redeemRepo)
	authService := service.NewAuthService(userRepo, mailer, log)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(categoryRepo, subCategoryRepo, stateRepo, postcodeRepo, unitRepo, filterRepo, giftBoxRepo)
	productService := service.NewProductService(productRepo, categoryRepo, inventory, db, log)
	orderService := service.NewOrderService(orderRepo, productRepo, paymentGateway, log)
	fulfillment := service.NewFulfillmentService(paymentGateway, orderRepo, inventory, loyalty, userRepo, mailer, smsSender, db, log)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, inventory, log)
	checkoutService := service.NewCheckoutService(checkoutRepo, productRepo, inventory)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(catalogService)
	regionHandler := handler.NewRegionHandler(catalogService)
	unitHandler := handler.NewUnitHandler(catalogService)
	giftBoxHandler := handler.NewGiftBoxHandler(catalogService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService, fulfillment)
	stockHandler := handler.NewStockHandler(inventory)
	redeemHandler := handler.NewRedeemHandler(loyalty)
	wishlistHandler := handler.NewWishlistHandler(wishlistService, checkoutService)

	app := fiber.New(fiber.Config{
		AppName: "Go Market API v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/verify-otp", authHandler.ConfirmRegistration)
	auth.Post("/resend-otp", authHandler.ResendOTP)
	auth.Post("/login", authHandler.Login)

	api.Get("/category/", categoryHandler.List)
	api.Get("/subcategory/", categoryHandler.ListSub)
	api.Get("/subcategory/bycategory/:id", categoryHandler.ListSubByCategory)
	api.Get("/state/", regionHandler.ListStates)
	api.Get("/postcode/", regionHandler.ListPostcodes)
	api.Get("/postcode/bystate/:id", regionHandler.PostcodesByState)
	api.Get("/postcode/lookup/:code", regionHandler.LookupPostcode)
	api.Get("/unit/", unitHandler.ListUnits)
	api.Get("/filter/", unitHandler.ListFilters)
	api.Get("/giftbox/", giftBoxHandler.List)
	api.Get("/giftbox/:id", giftBoxHandler.Get)
	api.Get("/item/", productHandler.ListActive)
	api.Get("/item/all", productHandler.List)
	api.Get("/item/bycategory/:id", productHandler.ListByCategory)
	api.Get("/item/search", productHandler.Search)
	api.Get("/item/:id", productHandler.Get)

	// Authenticated routes
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Post("/auth/change-password", authHandler.ChangePassword)
	protected.Get("/user/profile", userHandler.GetProfile)
	protected.Put("/user/profile", userHandler.UpdateProfile)

	protected.Post("/order/create", orderHandler.Create)
	protected.Get("/order/", orderHandler.MyOrders)
	protected.Post("/order/verify-token", orderHandler.VerifyToken)

	protected.Get("/redeem/", redeemHandler.Entries)
	protected.Get("/redeem/totalpoints", redeemHandler.TotalPoints)

	protected.Post("/wishlist/", wishlistHandler.Toggle)
	protected.Get("/wishlist/", wishlistHandler.List)
	protected.Post("/checkout/", wishlistHandler.AddToCheckout)
	protected.Get("/checkout/", wishlistHandler.ListCheckout)
	protected.Delete("/checkout/:id", wishlistHandler.RemoveFromCheckout)
	protected.Delete("/checkout/", wishlistHandler.ClearCheckout)

	protected.Get("/stock/byproduct/:id", stockHandler.ByProduct)
	protected.Get("/stock/movement/:id", stockHandler.MovementHistory)

	// Admin routes
	admin := protected.Group("", middleware.RequireAdmin())

	admin.Get("/user/", userHandler.ListUsers)

	admin.Post("/category/", categoryHandler.Create)
	admin.Put("/category/:id", categoryHandler.Update)
	admin.Delete("/category/:id", categoryHandler.Remove)
	admin.Post("/subcategory/", categoryHandler.CreateSub)
	admin.Put("/subcategory/:id", categoryHandler.UpdateSub)
	admin.Delete("/subcategory/:id", categoryHandler.RemoveSub)

	admin.Post("/state/", regionHandler.CreateState)
	admin.Put("/state/:id", regionHandler.UpdateState)
	admin.Delete("/state/:id", regionHandler.RemoveState)
	admin.Post("/postcode/", regionHandler.CreatePostcode)
	admin.Put("/postcode/:id", regionHandler.UpdatePostcode)
	admin.Delete("/postcode/:id", regionHandler.RemovePostcode)

	admin.Post("/unit/", unitHandler.CreateUnit)
	admin.Put("/unit/:id", unitHandler.UpdateUnit)
	admin.Delete("/unit/:id", unitHandler.RemoveUnit)
	admin.Post("/filter/", unitHandler.CreateFilter)
	admin.Put("/filter/:id", unitHandler.UpdateFilter)
	admin.Delete("/filter/:id", unitHandler.RemoveFilter)

	admin.Post("/giftbox/", giftBoxHandler.Create)
	admin.Put("/giftbox/:id", giftBoxHandler.Update)
	admin.Delete("/giftbox/:id", giftBoxHandler.Remove)

	admin.Post("/item/", productHandler.Create)
	admin.Put("/item/:id", productHandler.Update)
	admin.Delete("/item/:id", productHandler.Remove)

	admin.Get("/order/all", orderHandler.AllOrders)
	admin.Post("/order/filter-by-date", orderHandler.FilterByDate)
	admin.Post("/order/update-status", orderHandler.UpdateStatus)

	admin.Get("/stock/", stockHandler.AllStock)
	admin.Post("/stock/stock-adjustment", stockHandler.Adjust)

	// WebSocket stock feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// Unmatched routes still answer with the response envelope.
	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route not found")
	})

	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.WithField("error", err.Error()).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.WithField("error", err.Error()).Fatal("forced shutdown")
	}
	log.Info("server exited")
}

// seedAdmin creates the initial admin account when none exists. Credentials
// come from ADMIN_EMAIL / ADMIN_PASSWORD.
func seedAdmin(db *gorm.DB) {
	log := logger.Get()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	userRepo := repository.NewUserRepo(db)
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	admin := &model.User{
		FirstName:   "Admin",
		LastName:    "User",
		Email:       email,
		Role:        model.RoleAdmin,
		IsActive:    true,
		IsConfirmed: true,
	}
	if err := admin.SetPassword(password); err != nil {
		log.WithField("error", err.Error()).Warn("failed to hash admin password")
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.WithField("error", err.Error()).Warn("failed to seed admin user")
		return
	}
	log.WithField("email", email).Info("admin user seeded")
}
