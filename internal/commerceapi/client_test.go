package commerceapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fireworks-storefront/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, register func(r *gin.Engine)) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestListProducts_SendsFilters(t *testing.T) {
	var gotQuery map[string]string
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/api/products", func(c *gin.Context) {
			gotQuery = map[string]string{
				"category": c.Query("category"),
				"search":   c.Query("search"),
				"minPrice": c.Query("minPrice"),
				"maxPrice": c.Query("maxPrice"),
				"sortBy":   c.Query("sortBy"),
			}
			c.JSON(http.StatusOK, []gin.H{{"id": 3, "name": "Sky Rocket", "price": 250.5, "category": "Rockets", "inStock": true}})
		})
	})

	minPrice := decimal.NewFromInt(100)
	client := New(srv.URL + "/api")
	products, err := client.ListProducts(context.Background(), domain.ProductFilter{
		Category: "Rockets",
		Search:   "sky",
		MinPrice: &minPrice,
		SortBy:   domain.SortByPriceAsc,
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(3), products[0].ID)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("250.5")))

	assert.Equal(t, "Rockets", gotQuery["category"])
	assert.Equal(t, "sky", gotQuery["search"])
	assert.Equal(t, "100", gotQuery["minPrice"])
	assert.Equal(t, "", gotQuery["maxPrice"])
	assert.Equal(t, "price-low", gotQuery["sortBy"])
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var auth atomic.Value
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/orders", func(c *gin.Context) {
			auth.Store(c.GetHeader("Authorization"))
			c.JSON(http.StatusOK, []gin.H{})
		})
	})

	token := ""
	client := New(srv.URL, WithTokenSource(func() string { return token }))

	_, err := client.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", auth.Load())

	token = "abc"
	_, err = client.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", auth.Load())
}

func TestErrorMapping(t *testing.T) {
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/products/:id", func(c *gin.Context) {
			switch c.Param("id") {
			case "404":
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			case "401":
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			case "403":
				c.JSON(http.StatusForbidden, gin.H{"message": "Admin only"})
			case "400":
				c.JSON(http.StatusBadRequest, gin.H{"message": "Bad id"})
			case "500":
				c.String(http.StatusInternalServerError, "boom")
			}
		})
	})
	client := New(srv.URL, WithBreaker(BreakerSettings{MaxFailures: 100}))
	ctx := context.Background()

	_, err := client.GetProduct(ctx, 404)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = client.GetProduct(ctx, 401)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = client.GetProduct(ctx, 403)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = client.GetProduct(ctx, 400)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Bad id", apiErr.Message)
	assert.False(t, errors.Is(err, domain.ErrNotFound))

	_, err = client.GetProduct(ctx, 500)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "boom", apiErr.Message)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var failures []string
	client := New(url, WithFailureHook(func(op string) { failures = append(failures, op) }))
	_, err := client.ListCategories(context.Background())
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
	assert.Equal(t, []string{"list categories"}, failures)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/products/categories", func(c *gin.Context) {
			hits.Add(1)
			c.Status(http.StatusBadGateway)
		})
	})
	client := New(srv.URL, WithBreaker(BreakerSettings{MaxFailures: 2, OpenTimeout: time.Minute}))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.ListCategories(ctx)
		require.Error(t, err)
	}
	_, err := client.ListCategories(ctx)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
	assert.Equal(t, int32(2), hits.Load(), "open breaker must not reach the server")
}

func TestClientErrorsDoNotTripBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/orders/track/:number", func(c *gin.Context) {
			hits.Add(1)
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		})
	})
	client := New(srv.URL, WithBreaker(BreakerSettings{MaxFailures: 1}))
	for i := 0; i < 3; i++ {
		_, err := client.TrackOrder(context.Background(), "FW-1")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	}
	assert.Equal(t, int32(3), hits.Load())
}

func TestCreateOrder_SendsDraftAndDecodesReceipt(t *testing.T) {
	var draft domain.OrderDraft
	srv := newTestServer(t, func(r *gin.Engine) {
		r.POST("/orders", func(c *gin.Context) {
			if err := c.ShouldBindJSON(&draft); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			c.JSON(http.StatusCreated, gin.H{"id": 11, "orderNumber": "FW-000011", "status": "Pending", "createdAt": "2026-10-01T10:00:00Z"})
		})
	})

	client := New(srv.URL)
	receipt, err := client.CreateOrder(context.Background(), domain.OrderDraft{
		UserID:   7,
		Items:    []domain.OrderItem{{ProductID: 1, Quantity: 2, Price: decimal.NewFromInt(500)}},
		Subtotal: decimal.NewFromInt(1000),
		Tax:      decimal.NewFromInt(180),
		Shipping: decimal.NewFromInt(99),
		Total:    decimal.NewFromInt(1279),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), receipt.ID)
	assert.Equal(t, "FW-000011", receipt.OrderNumber)
	assert.Equal(t, domain.OrderStatusPending, receipt.Status)

	assert.Equal(t, int64(7), draft.UserID)
	assert.True(t, draft.Total.Equal(decimal.NewFromInt(1279)))
}

func TestUpdateOrderStatus_Body(t *testing.T) {
	var body struct {
		Status string `json:"status"`
	}
	srv := newTestServer(t, func(r *gin.Engine) {
		r.PUT("/orders/:id/status", func(c *gin.Context) {
			_ = c.ShouldBindJSON(&body)
			c.JSON(http.StatusOK, gin.H{"id": 5, "status": body.Status})
		})
	})
	order, err := New(srv.URL).UpdateOrderStatus(context.Background(), 5, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, "Shipped", body.Status)
	assert.Equal(t, domain.OrderStatusShipped, order.Status)
}

func TestLogin_FlattenedUserAndToken(t *testing.T) {
	srv := newTestServer(t, func(r *gin.Engine) {
		r.POST("/auth/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": 9, "firstName": "Asha", "email": "asha@example.com", "role": "Customer", "token": "jwt"})
		})
	})
	res, err := New(srv.URL).Login(context.Background(), domain.Credentials{Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), res.ID)
	assert.Equal(t, "jwt", res.Token)
	assert.False(t, res.IsAdmin())
}

func TestContextCancellation(t *testing.T) {
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/products", func(c *gin.Context) {
			time.Sleep(200 * time.Millisecond)
			c.JSON(http.StatusOK, []gin.H{})
		})
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := New(srv.URL).ListProducts(ctx, domain.ProductFilter{})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
