package forms

import (
	"strings"

	"fireworks-storefront/internal/domain"
)

var shippingLabels = map[string]string{
	"firstName": "First name",
	"lastName":  "Last name",
	"email":     "Email",
	"phone":     "Phone",
	"address":   "Address",
	"city":      "City",
	"state":     "State",
	"pincode":   "Pincode",
}

// NormalizeShipping trims every field of the checkout form.
func NormalizeShipping(a domain.ShippingAddress) domain.ShippingAddress {
	return domain.ShippingAddress{
		FirstName: strings.TrimSpace(a.FirstName),
		LastName:  strings.TrimSpace(a.LastName),
		Email:     strings.TrimSpace(a.Email),
		Phone:     strings.TrimSpace(a.Phone),
		Address:   strings.TrimSpace(a.Address),
		City:      strings.TrimSpace(a.City),
		State:     strings.TrimSpace(a.State),
		Pincode:   strings.TrimSpace(a.Pincode),
		Landmark:  strings.TrimSpace(a.Landmark),
	}
}

// ValidateShipping applies the checkout rules. It returns a *ValidationError
// listing every offending field, or nil.
func ValidateShipping(a domain.ShippingAddress) error {
	a = NormalizeShipping(a)
	return check(&a, shippingLabels).orNil()
}

// ValidateCredentials checks a login payload.
func ValidateCredentials(c domain.Credentials) error {
	c.Email = strings.TrimSpace(c.Email)
	return check(&c, map[string]string{"email": "Email", "password": "Password"}).orNil()
}

// RegistrationForm is the sign-up form including the confirmation field that is
// never sent to the commerce API.
type RegistrationForm struct {
	domain.Registration
	ConfirmPassword string `json:"confirmPassword"`
}

// ValidateRegistration checks the sign-up form, including that both password
// entries match.
func ValidateRegistration(f RegistrationForm) error {
	reg := f.Registration
	reg.Email = strings.TrimSpace(reg.Email)
	reg.FirstName = strings.TrimSpace(reg.FirstName)
	reg.LastName = strings.TrimSpace(reg.LastName)
	reg.Phone = strings.TrimSpace(reg.Phone)
	verr := check(&reg, map[string]string{
		"firstName": "First name",
		"lastName":  "Last name",
		"email":     "Email",
		"password":  "Password",
		"phone":     "Phone",
	})
	if f.Password != f.ConfirmPassword {
		verr.Add("confirmPassword", "Passwords do not match")
	}
	return verr.orNil()
}

// ValidateProduct checks the back-office product form.
func ValidateProduct(p domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	verr := check(&p, map[string]string{
		"name":        "Name",
		"description": "Description",
		"category":    "Category",
		"price":       "Price",
		"rating":      "Rating",
		"reviews":     "Reviews",
	})
	if p.OriginalPrice != nil && p.OriginalPrice.IsNegative() {
		verr.Add("originalPrice", "Original price must not be negative")
	}
	return verr.orNil()
}
