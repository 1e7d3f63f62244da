package storefront

import (
	"context"
	"strings"

	"fireworks-storefront/internal/auth"
	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/forms"
)

func (a *App) Session() auth.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.auth.Session()
}

func (a *App) Login(ctx context.Context, creds domain.Credentials) (auth.Session, error) {
	if err := forms.ValidateCredentials(creds); err != nil {
		return auth.Session{}, err
	}
	res, err := a.api.Login(ctx, creds)
	if err != nil {
		return auth.Session{}, a.apiFailed(ctx, "login", err)
	}
	return a.commitLogin(ctx, res), nil
}

// AdminLogin signs in through the back-office endpoint and refuses accounts
// without the Admin role.
func (a *App) AdminLogin(ctx context.Context, creds domain.Credentials) (auth.Session, error) {
	if err := forms.ValidateCredentials(creds); err != nil {
		return auth.Session{}, err
	}
	res, err := a.api.AdminLogin(ctx, creds)
	if err != nil {
		return auth.Session{}, a.apiFailed(ctx, "admin login", err)
	}
	if !res.IsAdmin() {
		return auth.Session{}, ErrAdminRequired
	}
	return a.commitLogin(ctx, res), nil
}

func (a *App) Register(ctx context.Context, form forms.RegistrationForm) (auth.Session, error) {
	if err := forms.ValidateRegistration(form); err != nil {
		return auth.Session{}, err
	}
	res, err := a.api.Register(ctx, form.Registration)
	if err != nil {
		return auth.Session{}, a.apiFailed(ctx, "register", err)
	}
	return a.commitLogin(ctx, res), nil
}

func (a *App) commitLogin(ctx context.Context, res domain.AuthResult) auth.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.auth.Login(ctx, res.User, res.Token)
	a.logger.Info(a.logger.WithUserID(ctx, res.ID), "signed in")
	return a.auth.Session()
}

func (a *App) Logout(ctx context.Context) auth.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.auth.Logout(ctx)
	a.orders.ClearCurrent()
	return a.auth.Session()
}

// UpdateProfile changes the signed-in user's contact fields. Id and role
// stay as issued by the commerce API; the token is kept.
func (a *App) UpdateProfile(ctx context.Context, profile domain.User) (auth.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.require(false, "/profile")
	if err != nil {
		return auth.Session{}, err
	}
	updated := *s.User
	updated.FirstName = strings.TrimSpace(profile.FirstName)
	updated.LastName = strings.TrimSpace(profile.LastName)
	updated.Email = strings.TrimSpace(profile.Email)
	updated.Phone = strings.TrimSpace(profile.Phone)
	a.auth.UpdateUser(ctx, updated)
	return a.auth.Session(), nil
}
