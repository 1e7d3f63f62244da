package httpserver

import (
	"context"
	"net/http"
	"time"

	"fireworks-storefront/internal/logger"
	"fireworks-storefront/internal/metrics"
	"fireworks-storefront/internal/storefront"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the collaborators of the storefront host.
type Deps struct {
	App     *storefront.App
	Metrics *metrics.Storefront
	Logger  *logger.Logger
	// CORSOrigins lists allowed browser origins; empty or ["*"] allows all.
	CORSOrigins []string
	Ready       func(context.Context) error
}

// buildRouter wires routes for the storefront host.
func buildRouter(deps Deps) *gin.Engine {
	log := logger.OrNop(deps.Logger)
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestIDMiddleware(log), accessLogMiddleware(log, deps.Metrics), gin.Recovery(), corsMiddleware(deps.CORSOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Ready))
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	h := &handlers{app: deps.App}
	api := router.Group("/api")

	api.GET("/products", h.listProducts)
	api.GET("/products/categories", h.listCategories)
	api.GET("/products/:id", h.getProduct)

	api.GET("/cart", h.getCart)
	api.POST("/cart/items", h.addCartItem)
	api.PUT("/cart/items/:productId", h.updateCartItem)
	api.DELETE("/cart/items/:productId", h.removeCartItem)
	api.DELETE("/cart", h.clearCart)

	api.GET("/session", h.getSession)
	api.PUT("/session/user", h.updateProfile)
	api.GET("/guard", h.guard)
	api.POST("/auth/login", h.login)
	api.POST("/auth/register", h.register)
	api.POST("/auth/admin/login", h.adminLogin)
	api.POST("/auth/logout", h.logout)

	api.GET("/track/:ref", h.track)

	customer := api.Group("", guardMiddleware(deps.App, false))
	customer.GET("/checkout", h.previewCheckout)
	customer.POST("/checkout", h.checkout)
	customer.GET("/payment", h.currentOrder)
	customer.POST("/payment", h.pay)
	customer.GET("/orders", h.myOrders)

	admin := api.Group("/admin", guardMiddleware(deps.App, true))
	admin.GET("/dashboard", h.dashboard)
	admin.GET("/orders", h.adminOrders)
	admin.PUT("/orders/:id/status", h.updateOrderStatus)
	admin.GET("/products", h.adminProducts)
	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.DELETE("/products/:id", h.deleteProduct)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
