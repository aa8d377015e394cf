package routes

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/allthebeans/app/controllers"
	"github.com/shashiranjanraj/allthebeans/app/repositories"
	"github.com/shashiranjanraj/allthebeans/app/services"
	"github.com/shashiranjanraj/allthebeans/pkg/middleware"
	"github.com/shashiranjanraj/allthebeans/pkg/rbac"
	"github.com/shashiranjanraj/allthebeans/pkg/router"
)

// RegisterAPI mounts the storefront API under /api.
// Catalogue reads are public; catalogue writes require an admin token.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	beanRepo := repositories.NewBeanRepository(db)
	botdRepo := repositories.NewBOTDRepository(db)
	userRepo := repositories.NewUserRepository(db)

	botdService := services.NewBOTDService(beanRepo, botdRepo)
	beanService := services.NewBeanService(beanRepo, botdService)
	authService := services.NewAuthService(userRepo)
	orderService := services.NewOrderService(beanRepo)

	beans := controllers.NewBeanController(beanService, botdService)
	auth := controllers.NewAuthController(authService)
	orders := controllers.NewOrderController(orderService)
	health := controllers.NewHealthController(db)

	api := r.Group("/api")

	// Public catalogue reads.
	api.Get("/beans", "beans.index", beans.Index)
	api.Get("/beans/botd", "beans.botd", beans.BOTD)
	api.Get("/beans/search", "beans.search", beans.Search)
	api.Get("/beans/{id}", "beans.show", beans.Show)

	// Admin-only catalogue writes.
	admin := api.Group("", middleware.Auth, rbac.HasRole("admin"))
	admin.Post("/beans", "beans.store", beans.Store)
	admin.Put("/beans/botd", "beans.botd.set", beans.SetBOTD)
	admin.Put("/beans/{id}", "beans.update", beans.Update)
	admin.Delete("/beans/{id}", "beans.destroy", beans.Destroy)

	// Checkout sink.
	api.Post("/orders", "orders.store", orders.Store)

	// Auth.
	api.Post("/auth/register", "auth.register", auth.Register)
	api.Post("/auth/login", "auth.login", auth.Login)
	api.Post("/auth/token", "auth.token", auth.Token)
	api.Get("/auth/profile", "auth.profile", auth.Profile, middleware.Auth)

	// Health.
	api.Get("/health", "health.check", health.Check)
}
