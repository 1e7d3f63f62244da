package storefront

import (
	"fmt"

	"fireworks-storefront/internal/auth"
	"fireworks-storefront/internal/domain"
)

// Client routes the guard redirects to.
const (
	RouteHome       = "/"
	RouteLogin      = "/login"
	RouteAdminLogin = "/admin/login"
	RouteCart       = "/cart"
)

// Decision is the outcome of a route guard check.
type Decision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
	// From is the path to return to after logging in.
	From   string `json:"from,omitempty"`
	Reason error  `json:"-"`
}

// Evaluate applies the protected-route rules to a session.
func Evaluate(s auth.Session, requireAdmin bool, from string) Decision {
	if !s.IsAuthenticated {
		to := RouteLogin
		if requireAdmin {
			to = RouteAdminLogin
		}
		return Decision{Redirect: to, From: from, Reason: domain.ErrUnauthorized}
	}
	if requireAdmin && !s.IsAdmin {
		return Decision{Redirect: RouteHome, Reason: ErrAdminRequired}
	}
	return Decision{Allowed: true}
}

// Err converts a refusal into a *RedirectError.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &RedirectError{To: d.Redirect, From: d.From, Reason: d.Reason}
}

// Guard checks the current session against a protected route.
func (a *App) Guard(requireAdmin bool, from string) Decision {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Evaluate(a.auth.Session(), requireAdmin, from)
}

// RedirectError means the action cannot run in the current state and the
// client should navigate to To.
type RedirectError struct {
	To     string
	From   string
	Reason error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s: %v", e.To, e.Reason)
}

func (e *RedirectError) Unwrap() error {
	return e.Reason
}

// require evaluates the guard and returns the session. Caller holds mu.
func (a *App) require(requireAdmin bool, from string) (auth.Session, error) {
	s := a.auth.Session()
	if err := Evaluate(s, requireAdmin, from).Err(); err != nil {
		return s, err
	}
	return s, nil
}
