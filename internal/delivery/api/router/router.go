// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"estate/config"
	"estate/internal/delivery/api/middleware"
	"estate/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	HealthHandler   *handler.HealthHandler
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	SellerHandler   *handler.SellerHandler
	CustomerHandler *handler.CustomerHandler
	PropertyHandler *handler.PropertyHandler
	ChatHandler     *handler.ChatHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Config          *config.Config
	Gatherer        prometheus.Gatherer `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	healthHandler   *handler.HealthHandler
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	sellerHandler   *handler.SellerHandler
	customerHandler *handler.CustomerHandler
	propertyHandler *handler.PropertyHandler
	chatHandler     *handler.ChatHandler
	authMiddleware  *middleware.AuthMiddleware
	config          *config.Config
	gatherer        prometheus.Gatherer
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		healthHandler:   params.HealthHandler,
		authHandler:     params.AuthHandler,
		userHandler:     params.UserHandler,
		sellerHandler:   params.SellerHandler,
		customerHandler: params.CustomerHandler,
		propertyHandler: params.PropertyHandler,
		chatHandler:     params.ChatHandler,
		authMiddleware:  params.AuthMiddleware,
		config:          params.Config,
		gatherer:        params.Gatherer,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Role and ownership checks happen in the use cases; the router only requires a session.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.Check)

	if r.config.Metrics.Enabled && r.gatherer != nil {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	authenticated := r.authMiddleware.Authenticate

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register/seller", r.authHandler.RegisterSeller)
		authGroup.POST("/register/customer", r.authHandler.RegisterCustomer)
		authGroup.POST("/login", r.authHandler.Login, middleware.NewLoginRateLimiter(r.config))
		authGroup.POST("/logout", r.authHandler.Logout, authenticated)
		authGroup.GET("/me", r.authHandler.Me, authenticated)
		authGroup.PUT("/password", r.authHandler.ChangePassword, authenticated)
	}

	usersGroup := e.Group("/users", authenticated)
	{
		usersGroup.GET("", r.userHandler.List)
		usersGroup.POST("", r.userHandler.Create)
		usersGroup.GET("/:id", r.userHandler.Get)
		usersGroup.PUT("/:id", r.userHandler.Update)
		usersGroup.DELETE("/:id", r.userHandler.Delete)
	}

	sellersGroup := e.Group("/sellers", authenticated)
	{
		sellersGroup.GET("", r.sellerHandler.List)
		sellersGroup.GET("/:id", r.sellerHandler.Get)
		sellersGroup.PUT("/:id", r.sellerHandler.Update)
		sellersGroup.PATCH("/:id/status", r.sellerHandler.UpdateStatus)
		sellersGroup.DELETE("/:id", r.sellerHandler.Delete)
	}

	customersGroup := e.Group("/customers", authenticated)
	{
		customersGroup.GET("", r.customerHandler.List)
		customersGroup.GET("/:id", r.customerHandler.Get)
		customersGroup.PUT("/:id", r.customerHandler.Update)
		customersGroup.DELETE("/:id", r.customerHandler.Delete)
	}

	propertiesGroup := e.Group("/properties")
	{
		propertiesGroup.GET("", r.propertyHandler.List)
		propertiesGroup.GET("/:id", r.propertyHandler.Get)
		propertiesGroup.POST("", r.propertyHandler.Create, authenticated)
		propertiesGroup.PUT("/:id", r.propertyHandler.Update, authenticated)
		propertiesGroup.PATCH("/:id/availability", r.propertyHandler.SetAvailability, authenticated)
		propertiesGroup.DELETE("/:id", r.propertyHandler.Delete, authenticated)
	}

	chatsGroup := e.Group("/chats", authenticated)
	{
		chatsGroup.POST("", r.chatHandler.Create)
		chatsGroup.GET("", r.chatHandler.List)
		chatsGroup.GET("/:id", r.chatHandler.Get)
		chatsGroup.POST("/:id/messages", r.chatHandler.PostMessage)
		chatsGroup.DELETE("/:id", r.chatHandler.Delete)
	}
}
