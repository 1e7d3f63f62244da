package httpserver

import (
	"context"
	"errors"
	"net/http"

	"fireworks-storefront/internal/commerceapi"
	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/forms"
	"fireworks-storefront/internal/storefront"
	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, err error) {
	var (
		verr     *forms.ValidationError
		redirect *storefront.RedirectError
		apiErr   *commerceapi.Error
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Please fill all required fields correctly", "fields": verr.Fields})
	case errors.As(err, &redirect):
		body := gin.H{"error": redirectMessage(redirect), "redirect": redirect.To}
		if redirect.From != "" {
			body["from"] = redirect.From
		}
		c.JSON(redirectStatus(redirect), body)
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": messageOr(err, "Invalid credentials")})
	case errors.Is(err, storefront.ErrAdminRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
	case errors.Is(err, storefront.ErrOutOfStock), errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": messageOr(err, err.Error())})
	case errors.Is(err, storefront.ErrInvalidStatus), errors.Is(err, storefront.ErrInvalidPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Network error. Please check if the API server is running."})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	case errors.As(err, &apiErr):
		status := apiErr.Status
		if status < 400 || status > 499 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": messageOr(err, "An error occurred")})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// messageOr prefers the commerce API's own message.
func messageOr(err error, fallback string) string {
	var apiErr *commerceapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func redirectStatus(r *storefront.RedirectError) int {
	switch {
	case errors.Is(r, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(r, storefront.ErrAdminRequired):
		return http.StatusForbidden
	}
	return http.StatusConflict
}

func redirectMessage(r *storefront.RedirectError) string {
	switch {
	case errors.Is(r, domain.ErrUnauthorized):
		return "Please login to continue"
	case errors.Is(r, storefront.ErrAdminRequired):
		return "Admin access required"
	case errors.Is(r, storefront.ErrEmptyCart):
		return "Your cart is empty"
	case errors.Is(r, storefront.ErrNoCurrentOrder):
		return "No order awaiting payment"
	}
	return r.Error()
}
