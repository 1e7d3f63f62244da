package devapi

import (
	"errors"
	"strings"
	"sync"

	"fireworks-storefront/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when email/password do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

type account struct {
	user         domain.User
	passwordHash []byte
}

// Accounts stores users with bcrypt-hashed passwords.
type Accounts struct {
	mu      sync.RWMutex
	byEmail map[string]*account
	nextID  int64
	cost    int
}

func NewAccounts() *Accounts {
	return &Accounts{byEmail: map[string]*account{}, cost: bcrypt.DefaultCost}
}

// Register creates an account with the given role. Emails are unique,
// case-insensitively.
func (a *Accounts) Register(reg domain.Registration, role string) (domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(reg.Email))
	if email == "" {
		return domain.User{}, errors.New("email required")
	}
	if len(strings.TrimSpace(reg.Password)) < 6 {
		return domain.User{}, errors.New("password must be at least 6 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), a.cost)
	if err != nil {
		return domain.User{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.byEmail[email]; exists {
		return domain.User{}, domain.ErrAlreadyExists
	}
	a.nextID++
	u := domain.User{
		ID:        a.nextID,
		FirstName: strings.TrimSpace(reg.FirstName),
		LastName:  strings.TrimSpace(reg.LastName),
		Email:     email,
		Phone:     strings.TrimSpace(reg.Phone),
		Role:      role,
	}
	a.byEmail[email] = &account{user: u, passwordHash: hashed}
	return u, nil
}

// Authenticate checks the password and returns the user.
func (a *Accounts) Authenticate(email, password string) (domain.User, error) {
	a.mu.RLock()
	acc, ok := a.byEmail[strings.TrimSpace(strings.ToLower(email))]
	a.mu.RUnlock()
	if !ok {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return acc.user, nil
}

// HasAdmin reports whether any administrator account exists.
func (a *Accounts) HasAdmin() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, acc := range a.byEmail {
		if acc.user.IsAdmin() {
			return true
		}
	}
	return false
}
