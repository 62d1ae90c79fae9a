package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestAddItemNewLine(t *testing.T) {
	c := New()

	outcome := c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000})
	require.Equal(t, StatusSuccess, outcome.Status)

	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, 1, items[0].Quantity)
	require.Equal(t, float64(10000), items[0].Price)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	c := New()
	c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000})

	outcome := c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000})
	require.Equal(t, StatusSuccess, outcome.Status)

	items := c.Items()
	require.Len(t, items, 1, "no duplicate line for the same product id")
	require.Equal(t, 2, items[0].Quantity)
}

func TestAddItemRejectsAtStockCeiling(t *testing.T) {
	c := New()
	c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000, TotalStock: intPtr(1)})

	outcome := c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000, TotalStock: intPtr(1)})
	require.Equal(t, StatusError, outcome.Status)
	require.NotEmpty(t, outcome.Message)

	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, 1, items[0].Quantity, "rejected add must not mutate")
}

func TestAddItemRefreshesStockCeiling(t *testing.T) {
	c := New()
	c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000, TotalStock: intPtr(1)})

	// A restock between adds raises the ceiling for the existing line.
	outcome := c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000, TotalStock: intPtr(3)})
	require.Equal(t, StatusSuccess, outcome.Status)
	require.Equal(t, 2, c.Items()[0].Quantity)

	// And an adjustment downward is honored immediately.
	outcome = c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000, TotalStock: intPtr(2)})
	require.Equal(t, StatusError, outcome.Status)
	require.Equal(t, 2, c.Items()[0].Quantity)
}

func TestAddItemOutOfStockProduct(t *testing.T) {
	c := New()

	outcome := c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000, TotalStock: intPtr(0)})
	require.Equal(t, StatusError, outcome.Status)
	require.Empty(t, c.Items())
}

func TestAddItemUnknownStockIsUnbounded(t *testing.T) {
	c := New()
	for i := 0; i < 50; i++ {
		outcome := c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000})
		require.Equal(t, StatusSuccess, outcome.Status)
	}
	require.Equal(t, 50, c.Items()[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	c := New()
	c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000})
	c.AddItem(Product{ID: 2, Name: "Latte", Price: 15000})

	c.RemoveItem(1)
	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].ID)

	// Removing an absent id is not an error.
	c.RemoveItem(99)
	require.Len(t, c.Items(), 1)
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000, TotalStock: intPtr(5)})

	outcome := c.UpdateQuantity(1, 4)
	require.Equal(t, StatusSuccess, outcome.Status)
	require.Equal(t, 4, c.Items()[0].Quantity)

	outcome = c.UpdateQuantity(1, 6)
	require.Equal(t, StatusError, outcome.Status)
	require.Equal(t, 4, c.Items()[0].Quantity, "rejected update must not mutate")
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	c := New()
	c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000})

	outcome := c.UpdateQuantity(1, 0)
	require.Equal(t, StatusSuccess, outcome.Status)
	require.Empty(t, c.Items())
}

func TestUpdateQuantityNegativeRemovesLine(t *testing.T) {
	c := New()
	c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000})

	c.UpdateQuantity(1, -3)
	require.Empty(t, c.Items())
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	c := New()
	outcome := c.UpdateQuantity(42, 1)
	require.Equal(t, StatusError, outcome.Status)
}

func TestSubtotal(t *testing.T) {
	c := New()
	require.Equal(t, float64(0), c.Subtotal())

	c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000})
	c.UpdateQuantity(1, 2)
	c.AddItem(Product{ID: 2, Name: "Latte", Price: 5000})

	require.Equal(t, float64(25000), c.Subtotal())
}

func TestReset(t *testing.T) {
	c := New()
	c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000})
	c.Reset()
	require.Empty(t, c.Items())
	require.Equal(t, float64(0), c.Subtotal())
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	c.AddItem(Product{ID: 1, Name: "Americano", Price: 10000})

	items := c.Items()
	items[0].Quantity = 99

	require.Equal(t, 1, c.Items()[0].Quantity)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	a := r.Get("session-a")
	b := r.Get("session-b")
	require.NotSame(t, a, b)
	require.Same(t, a, r.Get("session-a"))

	a.AddItem(Product{ID: 1, Name: "Americano", Price: 10000})
	r.Drop("session-a")

	require.Empty(t, a.Items(), "dropped cart is reset for anyone still holding it")
	require.NotSame(t, a, r.Get("session-a"))
}
