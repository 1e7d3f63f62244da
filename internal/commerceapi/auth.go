package commerceapi

import (
	"context"
	"net/http"

	"fireworks-storefront/internal/domain"
)

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	var out domain.AuthResult
	err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, creds, &out)
	return out, err
}

// AdminLogin only succeeds for accounts holding the Admin role.
func (c *Client) AdminLogin(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	var out domain.AuthResult
	err := c.do(ctx, "admin login", http.MethodPost, "/auth/admin/login", nil, creds, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.AuthResult, error) {
	var out domain.AuthResult
	err := c.do(ctx, "register", http.MethodPost, "/auth/register", nil, reg, &out)
	return out, err
}

// CreateAdmin bootstraps the first administrator account.
func (c *Client) CreateAdmin(ctx context.Context, reg domain.Registration) (domain.AuthResult, error) {
	var out domain.AuthResult
	err := c.do(ctx, "create admin", http.MethodPost, "/auth/create-admin", nil, reg, &out)
	return out, err
}
