package devapi

import (
	"context"
	"strings"
	"testing"
	"time"

	"fireworks-storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seededCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	require.NoError(t, SeedCatalog(context.Background(), c))
	return c
}

func names(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestCatalogList_Filters(t *testing.T) {
	c := seededCatalog(t)
	require.Equal(t, len(catalogSeed), c.Len())

	rockets := c.List(domain.ProductFilter{Category: "rockets"})
	assert.Equal(t, []string{"Sky Rocket 10 Pack"}, names(rockets))

	all := c.List(domain.ProductFilter{Category: "All"})
	assert.Len(t, all, len(catalogSeed))

	search := c.List(domain.ProductFilter{Search: "GROUND"})
	assert.ElementsMatch(t, []string{"Peacock Fountain", "Chakra Spinner Deluxe"}, names(search))

	minPrice, maxPrice := decimal.NewFromInt(180), decimal.NewFromInt(450)
	ranged := c.List(domain.ProductFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
	assert.Equal(t, []string{"Sky Rocket 10 Pack", "Peacock Fountain", "Chakra Spinner Deluxe"}, names(ranged))
}

func TestCatalogList_Sorting(t *testing.T) {
	c := seededCatalog(t)

	byPrice := c.List(domain.ProductFilter{SortBy: domain.SortByPriceAsc})
	assert.Equal(t, "Color Sparklers 50cm", byPrice[0].Name)
	assert.Equal(t, "Festival Gift Box", byPrice[len(byPrice)-1].Name)

	byPriceDesc := c.List(domain.ProductFilter{SortBy: domain.SortByPriceDesc})
	assert.Equal(t, "Festival Gift Box", byPriceDesc[0].Name)

	byRating := c.List(domain.ProductFilter{SortBy: domain.SortByRating})
	assert.Equal(t, "Thunder Shell 25 Shots", byRating[0].Name)

	byName := c.List(domain.ProductFilter{SortBy: domain.SortByName})
	assert.Equal(t, "Chakra Spinner Deluxe", byName[0].Name)
}

func TestCatalog_UpsertMatchesName(t *testing.T) {
	c := seededCatalog(t)
	before := c.Len()

	updated, err := c.Upsert(context.Background(), domain.Product{Name: "peacock fountain", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.Equal(t, before, c.Len())

	got, err := c.Get(updated.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(1)))

	created, err := c.Upsert(context.Background(), domain.Product{Name: "Snake Tablets", Price: decimal.NewFromInt(60)})
	require.NoError(t, err)
	assert.Equal(t, before+1, c.Len())
	assert.Greater(t, created.ID, updated.ID)
}

func TestCatalog_CRUD(t *testing.T) {
	c := NewCatalog()
	p := c.Create(domain.Product{Name: "Rocket", Category: "Rockets", Price: decimal.NewFromInt(10)})
	assert.Equal(t, int64(1), p.ID)

	_, err := c.Update(99, p)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p.Name = "Big Rocket"
	updated, err := c.Update(p.ID, p)
	require.NoError(t, err)
	assert.Equal(t, "Big Rocket", updated.Name)
	assert.Equal(t, []string{"Rockets"}, c.Categories())

	require.NoError(t, c.Delete(p.ID))
	assert.ErrorIs(t, c.Delete(p.ID), domain.ErrNotFound)
	_, err = c.Get(p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func fastAccounts() *Accounts {
	a := NewAccounts()
	a.cost = bcrypt.MinCost
	return a
}

func TestAccounts_RegisterAndAuthenticate(t *testing.T) {
	a := fastAccounts()
	u, err := a.Register(domain.Registration{FirstName: "Asha", Email: " Asha@Example.com ", Password: "secret1"}, domain.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.False(t, a.HasAdmin())

	_, err = a.Register(domain.Registration{Email: "asha@example.com", Password: "another"}, domain.RoleCustomer)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := a.Authenticate("ASHA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = a.Authenticate("asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = a.Authenticate("nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Register(domain.Registration{Email: "short@example.com", Password: "123"}, domain.RoleCustomer)
	assert.Error(t, err)
}

func TestSeedAdmin_OnlyOnce(t *testing.T) {
	a := fastAccounts()
	require.NoError(t, SeedAdmin(a, "admin@fireworks.test", "admin123"))
	assert.True(t, a.HasAdmin())
	require.NoError(t, SeedAdmin(a, "other@fireworks.test", "admin123"))

	_, err := a.Authenticate("other@fireworks.test", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	signed, err := tokens.Mint(domain.User{ID: 42, Role: domain.RoleAdmin})
	require.NoError(t, err)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID())
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)

	_, err = NewTokens("other-secret", time.Hour).Parse(signed)
	assert.Error(t, err)
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("test-secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	tokens.now = func() time.Time { return issued }
	signed, err := tokens.Mint(domain.User{ID: 1})
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Parse(signed)
	assert.Error(t, err)
}

func TestTokens_RequireSecret(t *testing.T) {
	_, err := NewTokens("", time.Hour).Mint(domain.User{ID: 1})
	assert.Error(t, err)
}

func TestOrderBook(t *testing.T) {
	b := NewOrderBook()
	first := b.Create(domain.OrderDraft{UserID: 7, Items: []domain.OrderItem{{ProductID: 1, Quantity: 1}}})
	second := b.Create(domain.OrderDraft{UserID: 8, Items: []domain.OrderItem{{ProductID: 2, Quantity: 2}}})

	assert.Equal(t, domain.OrderStatusPending, first.Status)
	assert.Regexp(t, `^FW\d{6}[0-9A-F]{6}$`, first.OrderNumber)
	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)

	list := b.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")

	got, err := b.ByNumber(strings.ToLower(first.OrderNumber))
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	shipped, err := b.SetStatus(first.ID, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, shipped.Status)

	_, err = b.Get(999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = b.SetStatus(999, domain.OrderStatusShipped)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
