package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/forms"
	"fireworks-storefront/internal/storefront"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type handlers struct {
	app *storefront.App
}

type cartItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type paymentRequest struct {
	Method string `json:"method" binding:"required"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// productFilter parses the catalog query. Unparseable prices are ignored.
func productFilter(c *gin.Context) domain.ProductFilter {
	f := domain.ProductFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
		SortBy:   strings.TrimSpace(c.Query("sortBy")),
	}
	if v, err := decimal.NewFromString(c.Query("minPrice")); err == nil {
		f.MinPrice = &v
	}
	if v, err := decimal.NewFromString(c.Query("maxPrice")); err == nil {
		f.MaxPrice = &v
	}
	return f
}

func (h *handlers) listProducts(c *gin.Context) {
	list, err := h.app.Products(c.Request.Context(), productFilter(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) listCategories(c *gin.Context) {
	list, err := h.app.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) getProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.app.Product(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.Cart())
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req cartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.app.AddToCart(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) updateCartItem(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	var req quantityRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.app.UpdateCartQuantity(c.Request.Context(), id, req.Quantity))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.app.RemoveFromCart(c.Request.Context(), id))
}

func (h *handlers) clearCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.ClearCart(c.Request.Context()))
}

func (h *handlers) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.Session())
}

func (h *handlers) guard(c *gin.Context) {
	admin, _ := strconv.ParseBool(c.Query("admin"))
	c.JSON(http.StatusOK, h.app.Guard(admin, c.Query("path")))
}

func (h *handlers) login(c *gin.Context) {
	var creds domain.Credentials
	if !bindJSON(c, &creds) {
		return
	}
	s, err := h.app.Login(c.Request.Context(), creds)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handlers) adminLogin(c *gin.Context) {
	var creds domain.Credentials
	if !bindJSON(c, &creds) {
		return
	}
	s, err := h.app.AdminLogin(c.Request.Context(), creds)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handlers) register(c *gin.Context) {
	var form forms.RegistrationForm
	if !bindJSON(c, &form) {
		return
	}
	s, err := h.app.Register(c.Request.Context(), form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *handlers) logout(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.Logout(c.Request.Context()))
}

func (h *handlers) updateProfile(c *gin.Context) {
	var user domain.User
	if !bindJSON(c, &user) {
		return
	}
	s, err := h.app.UpdateProfile(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handlers) track(c *gin.Context) {
	view, err := h.app.Track(c.Request.Context(), c.Param("ref"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) previewCheckout(c *gin.Context) {
	view, err := h.app.PreviewCheckout()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) checkout(c *gin.Context) {
	var addr domain.ShippingAddress
	if !bindJSON(c, &addr) {
		return
	}
	order, err := h.app.Checkout(c.Request.Context(), addr)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order, "redirect": "/payment"})
}

func (h *handlers) currentOrder(c *gin.Context) {
	order, err := h.app.CurrentOrder()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "methods": storefront.PaymentMethods()})
}

func (h *handlers) pay(c *gin.Context) {
	var req paymentRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.app.Pay(c.Request.Context(), req.Method)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) myOrders(c *gin.Context) {
	view, err := h.app.MyOrders()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) dashboard(c *gin.Context) {
	d, err := h.app.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *handlers) adminOrders(c *gin.Context) {
	var f storefront.OrderFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter"})
		return
	}
	list, err := h.app.AdminOrders(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.app.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) adminProducts(c *gin.Context) {
	list, err := h.app.AdminProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) createProduct(c *gin.Context) {
	var p domain.Product
	if !bindJSON(c, &p) {
		return
	}
	created, err := h.app.CreateProduct(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) updateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var p domain.Product
	if !bindJSON(c, &p) {
		return
	}
	updated, err := h.app.UpdateProduct(c.Request.Context(), id, p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.app.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
