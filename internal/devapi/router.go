package devapi

import (
	"net/http"
	"strings"
	"time"

	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/logger"
	"github.com/gin-gonic/gin"
)

const claimsKey = "devapi.claims"

func (a *API) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), accessLog(a.log))

	h := &handlers{api: a}
	api := router.Group("/api")

	api.GET("/products", h.listProducts)
	api.GET("/products/categories", h.listCategories)
	api.GET("/products/:id", h.getProduct)

	api.POST("/auth/login", h.login)
	api.POST("/auth/admin/login", h.adminLogin)
	api.POST("/auth/register", h.register)
	api.POST("/auth/create-admin", h.createAdmin)

	api.POST("/orders", h.createOrder)
	api.GET("/orders/track/:orderNumber", h.trackOrder)
	api.GET("/orders/:id", h.getOrder)

	authed := api.Group("", a.requireToken(false))
	authed.GET("/orders", h.listOrders)

	admin := api.Group("", a.requireToken(true))
	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.DELETE("/products/:id", h.deleteProduct)
	admin.PUT("/orders/:id/status", h.updateOrderStatus)

	return router
}

// requireToken rejects requests without a valid bearer token. With admin set,
// the token must also carry the admin role.
func (a *API) requireToken(admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(raw, "Bearer ") {
			abort(c, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}
		claims, err := a.tokens.Parse(strings.TrimSpace(strings.TrimPrefix(raw, "Bearer ")))
		if err != nil {
			abort(c, http.StatusUnauthorized, "Invalid token")
			return
		}
		if admin && claims.Role != domain.RoleAdmin {
			abort(c, http.StatusForbidden, "Access denied. Admin only.")
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func claimsFrom(c *gin.Context) *Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}

func accessLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Base().Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("devapi request")
	}
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}
