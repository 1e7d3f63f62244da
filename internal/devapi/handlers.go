package devapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/forms"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type handlers struct {
	api *API
}

func (h *handlers) listProducts(c *gin.Context) {
	f := domain.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		SortBy:   c.Query("sortBy"),
	}
	for key, dest := range map[string]**decimal.Decimal{"minPrice": &f.MinPrice, "maxPrice": &f.MaxPrice} {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			abort(c, http.StatusBadRequest, "invalid "+key)
			return
		}
		*dest = &d
	}
	c.JSON(http.StatusOK, h.api.Catalog.List(f))
}

func (h *handlers) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.api.Catalog.Categories())
}

func (h *handlers) getProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.api.Catalog.Get(id)
	if err != nil {
		abort(c, http.StatusNotFound, "Product not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) createProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		abort(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := forms.ValidateProduct(p); err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, h.api.Catalog.Create(p))
}

func (h *handlers) updateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		abort(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := forms.ValidateProduct(p); err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.api.Catalog.Update(id, p)
	if err != nil {
		abort(c, http.StatusNotFound, "Product not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.api.Catalog.Delete(id); err != nil {
		abort(c, http.StatusNotFound, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *handlers) login(c *gin.Context) {
	h.authenticate(c, false)
}

func (h *handlers) adminLogin(c *gin.Context) {
	h.authenticate(c, true)
}

func (h *handlers) authenticate(c *gin.Context, admin bool) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		abort(c, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.api.Accounts.Authenticate(creds.Email, creds.Password)
	if err != nil {
		abort(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if admin && !u.IsAdmin() {
		abort(c, http.StatusForbidden, "Access denied. Admin only.")
		return
	}
	h.issue(c, http.StatusOK, u)
}

func (h *handlers) register(c *gin.Context) {
	h.createAccount(c, domain.RoleCustomer)
}

// createAdmin bootstraps the first administrator; later calls are refused.
func (h *handlers) createAdmin(c *gin.Context) {
	if h.api.Accounts.HasAdmin() {
		abort(c, http.StatusConflict, "Admin already exists")
		return
	}
	h.createAccount(c, domain.RoleAdmin)
}

func (h *handlers) createAccount(c *gin.Context, role string) {
	var reg domain.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		abort(c, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.api.Accounts.Register(reg, role)
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		abort(c, http.StatusConflict, "User already exists")
		return
	case err != nil:
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	h.issue(c, http.StatusCreated, u)
}

func (h *handlers) issue(c *gin.Context, status int, u domain.User) {
	token, err := h.api.tokens.Mint(u)
	if err != nil {
		h.api.log.Error(c.Request.Context(), "mint token", err)
		abort(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(status, domain.AuthResult{User: u, Token: token})
}

func (h *handlers) createOrder(c *gin.Context) {
	var draft domain.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		abort(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(draft.Items) == 0 {
		abort(c, http.StatusBadRequest, "Order has no items")
		return
	}
	receipt := h.api.Orders.Create(draft)
	h.api.log.Base().Info().Int64("order_id", receipt.ID).Str("order_number", receipt.OrderNumber).Msg("order created")
	c.JSON(http.StatusCreated, receipt)
}

func (h *handlers) getOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	o, err := h.api.Orders.Get(id)
	if err != nil {
		abort(c, http.StatusNotFound, "Order not found")
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *handlers) trackOrder(c *gin.Context) {
	o, err := h.api.Orders.ByNumber(c.Param("orderNumber"))
	if err != nil {
		abort(c, http.StatusNotFound, "Order not found")
		return
	}
	c.JSON(http.StatusOK, o)
}

// listOrders returns every order to admins and the caller's own orders otherwise.
func (h *handlers) listOrders(c *gin.Context) {
	all := h.api.Orders.List()
	claims := claimsFrom(c)
	if claims != nil && claims.Role == domain.RoleAdmin {
		c.JSON(http.StatusOK, all)
		return
	}
	own := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if claims != nil && o.UserID == claims.UserID() {
			own = append(own, o)
		}
	}
	c.JSON(http.StatusOK, own)
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, "invalid request body")
		return
	}
	status, err := domain.ParseOrderStatus(body.Status)
	if err != nil {
		abort(c, http.StatusBadRequest, "Invalid status")
		return
	}
	o, err := h.api.Orders.SetStatus(id, status)
	if err != nil {
		abort(c, http.StatusNotFound, "Order not found")
		return
	}
	c.JSON(http.StatusOK, o)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abort(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
