package domain

// Roles assigned by the commerce API.
const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

// User is the identity returned by the authentication endpoints.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
}

// IsAdmin reports whether the user carries the administrator role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,looseemail"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up payload sent to the commerce API.
type Registration struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,looseemail"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,phone10"`
}

// AuthResult is what login/register return: the user fields plus the token,
// flattened into one JSON object.
type AuthResult struct {
	User
	Token string `json:"token"`
}
