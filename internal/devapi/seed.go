package devapi

import (
	"context"
	"fmt"

	"fireworks-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type productSeed struct {
	Name          string
	Description   string
	Category      string
	Price         string
	OriginalPrice string
	Rating        float64
	Reviews       int
	InStock       bool
	Features      []string
}

var catalogSeed = []productSeed{
	{
		Name:          "Sky Rocket 10 Pack",
		Description:   "Whistling rockets that burst into golden crowns",
		Category:      "Rockets",
		Price:         "450",
		OriginalPrice: "550",
		Rating:        4.5,
		Reviews:       128,
		InStock:       true,
		Features:      []string{"Whistle effect", "Golden crown burst"},
	},
	{
		Name:        "Color Sparklers 50cm",
		Description: "Long-burning sparklers in five colours",
		Category:    "Sparklers",
		Price:       "120",
		Rating:      4.2,
		Reviews:     310,
		InStock:     true,
		Features:    []string{"Low smoke", "90 second burn"},
	},
	{
		Name:          "Peacock Fountain",
		Description:   "Ground fountain with multi-colour plumes",
		Category:      "Fountains",
		Price:         "299",
		OriginalPrice: "349",
		Rating:        4.7,
		Reviews:       86,
		InStock:       true,
	},
	{
		Name:        "Chakra Spinner Deluxe",
		Description: "Ground spinner with crackling tail",
		Category:    "Ground Spinners",
		Price:       "180",
		Rating:      4.0,
		Reviews:     54,
		InStock:     true,
	},
	{
		Name:        "Thunder Shell 25 Shots",
		Description: "Aerial shell cake with 25 loud breaks",
		Category:    "Aerial Shells",
		Price:       "1850",
		Rating:      4.8,
		Reviews:     41,
		InStock:     false,
		Features:    []string{"25 shots", "Outdoor only"},
	},
	{
		Name:          "Festival Gift Box",
		Description:   "Assorted family pack for the festival night",
		Category:      "Gift Boxes",
		Price:         "2499",
		OriginalPrice: "2999",
		Rating:        4.6,
		Reviews:       203,
		InStock:       true,
	},
}

// SeedCatalog inserts the demo fireworks catalog. It is idempotent via Upsert.
func SeedCatalog(ctx context.Context, c *Catalog) error {
	for _, s := range catalogSeed {
		p, err := s.product()
		if err != nil {
			return fmt.Errorf("seed product %s: %w", s.Name, err)
		}
		if _, err := c.Upsert(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", s.Name, err)
		}
	}
	return nil
}

func (s productSeed) product() (domain.Product, error) {
	price, err := decimal.NewFromString(s.Price)
	if err != nil {
		return domain.Product{}, err
	}
	p := domain.Product{
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Price:       price,
		Rating:      s.Rating,
		Reviews:     s.Reviews,
		InStock:     s.InStock,
		Features:    append([]string(nil), s.Features...),
	}
	if s.OriginalPrice != "" {
		orig, err := decimal.NewFromString(s.OriginalPrice)
		if err != nil {
			return domain.Product{}, err
		}
		p.OriginalPrice = &orig
	}
	return p, nil
}

// SeedAdmin creates the administrator account unless one already exists.
func SeedAdmin(a *Accounts, email, password string) error {
	if email == "" || a.HasAdmin() {
		return nil
	}
	_, err := a.Register(domain.Registration{
		FirstName: "Store",
		LastName:  "Admin",
		Email:     email,
		Password:  password,
	}, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
