package cart

import (
	"math/rand"
	"testing"

	"fireworks-storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int64, price string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "Product",
		Category: "Rockets",
		Price:    decimal.RequireFromString(price),
		InStock:  true,
	}
}

func TestAddItem_IncrementsExistingLine(t *testing.T) {
	s := New()
	s.AddItem(product(1, "100"), 1)
	s.AddItem(product(2, "50"), 2)
	s.AddItem(product(1, "100"), 3)

	require.Equal(t, 2, s.Len())
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, 4, got.Quantity)
	assert.Equal(t, 6, s.ItemCount())
	assert.Equal(t, []int64{1, 2}, ids(s.Items()))
}

func TestAddItem_DefaultsToOneUnit(t *testing.T) {
	s := New()
	s.AddItem(product(1, "100"), 0)
	got, _ := s.Get(1)
	assert.Equal(t, 1, got.Quantity)
}

func TestAddItem_SnapshotsOriginalPrice(t *testing.T) {
	p := product(7, "80")
	orig := decimal.NewFromInt(120)
	p.OriginalPrice = &orig
	p.Image = "/img/fountain.png"

	s := New()
	s.AddItem(p, 1)
	got, _ := s.Get(7)
	require.NotNil(t, got.OriginalUnitPrice)
	assert.True(t, got.OriginalUnitPrice.Equal(orig))
	assert.Equal(t, "/img/fountain.png", got.ImageRef)
	assert.Equal(t, "Rockets", got.Category)
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	s := New()
	s.AddItem(product(1, "10"), 1)
	s.RemoveItem(42)
	assert.Equal(t, 1, s.Len())
}

func TestUpdateQuantity_ReplacesExactly(t *testing.T) {
	s := New()
	s.AddItem(product(1, "10"), 5)
	s.UpdateQuantity(1, 2)
	got, _ := s.Get(1)
	assert.Equal(t, 2, got.Quantity)
}

func TestUpdateQuantity_UnknownIDIgnored(t *testing.T) {
	s := New()
	s.UpdateQuantity(9, 3)
	assert.True(t, s.IsEmpty())
}

func TestUpdateQuantityZero_EquivalentToRemove(t *testing.T) {
	build := func() *State {
		s := New()
		s.AddItem(product(1, "10"), 2)
		s.AddItem(product(2, "20"), 1)
		s.AddItem(product(3, "30"), 4)
		return s
	}
	a := build()
	a.UpdateQuantity(2, 0)
	b := build()
	b.RemoveItem(2)

	assert.Equal(t, b.Items(), a.Items())
	assert.True(t, a.Total().Equal(b.Total()))

	c := build()
	c.UpdateQuantity(2, -3)
	assert.Equal(t, b.Items(), c.Items())
}

func TestClear(t *testing.T) {
	s := New()
	s.AddItem(product(1, "10"), 2)
	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Zero(t, s.ItemCount())
	assert.True(t, s.Total().IsZero())

	s.AddItem(product(2, "5"), 1)
	assert.Equal(t, []int64{2}, ids(s.Items()))
}

func TestTotalAndSummary(t *testing.T) {
	s := New()
	s.AddItem(product(1, "500"), 2)
	s.AddItem(product(2, "1200"), 1)

	assert.Equal(t, "2200", s.Total().String())
	sum := s.Summary()
	assert.Equal(t, "396", sum.Tax.String())
	assert.True(t, sum.Shipping.IsZero())
	assert.Equal(t, "2596", sum.Total.String())
	// reads are idempotent
	assert.Equal(t, s.Total().String(), s.Total().String())
}

func TestRestore_MergesDuplicatesAndDropsEmptyLines(t *testing.T) {
	s := Restore([]domain.CartLineItem{
		{ProductID: 1, UnitPrice: decimal.NewFromInt(10), Quantity: 1},
		{ProductID: 2, UnitPrice: decimal.NewFromInt(20), Quantity: 0},
		{ProductID: 1, UnitPrice: decimal.NewFromInt(10), Quantity: 2},
	})
	require.Equal(t, 1, s.Len())
	got, _ := s.Get(1)
	assert.Equal(t, 3, got.Quantity)
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := New()
	for step := 0; step < 2000; step++ {
		id := int64(rng.Intn(8) + 1)
		switch rng.Intn(3) {
		case 0:
			s.AddItem(product(id, "12.50"), rng.Intn(4))
		case 1:
			s.RemoveItem(id)
		case 2:
			s.UpdateQuantity(id, rng.Intn(6)-2)
		}

		seen := map[int64]bool{}
		expected := decimal.Zero
		count := 0
		for _, item := range s.Items() {
			require.False(t, seen[item.ProductID], "duplicate product %d at step %d", item.ProductID, step)
			seen[item.ProductID] = true
			require.GreaterOrEqual(t, item.Quantity, 1, "step %d", step)
			expected = expected.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
			count += item.Quantity
		}
		require.True(t, expected.Equal(s.Total()), "step %d: total %s != %s", step, s.Total(), expected)
		require.Equal(t, count, s.ItemCount())
		require.Equal(t, len(seen), s.Len())
	}
}

func ids(items []domain.CartLineItem) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ProductID)
	}
	return out
}
