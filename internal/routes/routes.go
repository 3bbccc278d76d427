// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers.
package routes

import (
	"bazaar/internal/handlers"
	"bazaar/internal/metrics"
	"bazaar/internal/repositories"
	"bazaar/internal/services/deal"
	"bazaar/internal/services/exchange"
	"bazaar/internal/services/interest"
	"bazaar/internal/services/otp"
	"bazaar/internal/services/post"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It wires repositories into services and services into handlers.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	categoryRepo := repositories.NewCategoryRepository(db)
	postRepo := repositories.NewPostRepository(db)
	interestRepo := repositories.NewInterestRepository(db)
	dealRepo := repositories.NewDealRepository(db)
	exchangeRepo := repositories.NewExchangeRepository(db)

	// Initialize services. The concrete cache pointer is converted explicitly
	// so an unset global becomes a nil interface, not a typed nil.
	var postCache post.Cache
	if repositories.CacheService != nil {
		postCache = repositories.CacheService
	}
	postService := post.NewService(postRepo, categoryRepo, userRepo, postCache)
	interestService := interest.NewService(interestRepo, postRepo)
	dealService := deal.NewService(dealRepo, postRepo, interestRepo, deal.Config{}, metrics.Collector{})
	otpService := otp.NewService(dealRepo, otp.Config{}, metrics.Collector{})
	exchangeService := exchange.NewService(exchangeRepo, dealRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userRepo)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo)
	postHandler := handlers.NewPostHandler(postService)
	interestHandler := handlers.NewInterestHandler(interestService)
	dealHandler := handlers.NewDealHandler(dealService)
	otpHandler := handlers.NewOTPHandler(otpService)
	exchangeHandler := handlers.NewExchangeHandler(exchangeService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Legacy endpoint kept for the existing web client.
	api.Post("/categoryPosts", postHandler.GetCategoryPosts)

	// Users
	api.Post("/users", userHandler.CreateUser)
	api.Get("/users", userHandler.ListUsers)
	api.Get("/users/:id", userHandler.GetUser)

	// Categories
	api.Post("/categories", categoryHandler.CreateCategory)
	api.Get("/categories", categoryHandler.ListCategories)

	// Posts
	api.Post("/posts", postHandler.CreatePost)
	api.Get("/posts", postHandler.ListPosts)
	api.Get("/posts/:id", postHandler.GetPost)
	api.Patch("/posts/:id", postHandler.UpdatePost)
	api.Delete("/posts/:id", postHandler.DeletePost)

	// Interests
	api.Post("/interests", interestHandler.ExpressInterest)
	api.Delete("/interests", interestHandler.WithdrawInterest)
	api.Get("/posts/:id/interests", interestHandler.ListInterestedUsers)
	api.Get("/posts/:id/deal", dealHandler.GetPostDeal)

	// Deals
	api.Post("/deals", dealHandler.OpenDeal)
	api.Get("/deals/:id", dealHandler.GetDeal)
	api.Post("/deals/:id/confirm", dealHandler.ConfirmDeal)
	api.Post("/deals/:id/cancel", dealHandler.CancelDeal)

	// OTP confirmation
	api.Post("/deals/:id/otp", otpHandler.IssueOTP)
	api.Post("/deals/:id/otp/validate", otpHandler.ValidateOTP)

	// Exchanges
	api.Post("/deals/:id/exchange", exchangeHandler.RecordPayment)
	api.Get("/deals/:id/exchange", exchangeHandler.GetDealExchange)
	api.Post("/exchanges/:id/settle", exchangeHandler.MarkSettled)
}
