// Package cart owns the line items of one in-progress sale. A cart lives in
// memory only: it is created empty when a session first touches it and is
// dropped on logout, never persisted across restarts.
package cart

import (
	"fmt"
	"sync"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Outcome reports a mutation result to the caller. Stock-ceiling
// rejections are business outcomes, not errors, so the UI can branch on
// Status without a try/catch equivalent.
type Outcome struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Item is one product line. TotalStock is nil when the ceiling is unknown,
// in which case quantity is unbounded.
type Item struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	TotalStock *int    `json:"total_stock,omitempty"`
}

// Product is what the catalog hands to AddItem.
type Product struct {
	ID         int
	Name       string
	Price      float64
	TotalStock *int
}

// Cart keeps items in insertion order with at most one line per product id.
// The mutex makes each check-then-mutate atomic: no caller ever observes a
// quantity above the stock ceiling.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) find(productID int) *Item {
	for i := range c.items {
		if c.items[i].ID == productID {
			return &c.items[i]
		}
	}
	return nil
}

// AddItem appends a new line with quantity 1, or bumps an existing line by
// one. The incoming product carries the freshest stock figure, so the
// line's ceiling is refreshed before the check; a bump past it leaves the
// quantity untouched and reports the violation.
func (c *Cart) AddItem(product Product) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item := c.find(product.ID); item != nil {
		item.TotalStock = product.TotalStock
		if item.TotalStock != nil && item.Quantity+1 > *item.TotalStock {
			return Outcome{
				Message: fmt.Sprintf("Only %d of %q in stock", *item.TotalStock, item.Name),
				Status:  StatusError,
			}
		}
		item.Quantity++
		return Outcome{Message: "Quantity updated", Status: StatusSuccess}
	}

	if product.TotalStock != nil && *product.TotalStock < 1 {
		return Outcome{
			Message: fmt.Sprintf("%q is out of stock", product.Name),
			Status:  StatusError,
		}
	}

	c.items = append(c.items, Item{
		ID:         product.ID,
		Name:       product.Name,
		Price:      product.Price,
		Quantity:   1,
		TotalStock: product.TotalStock,
	})
	return Outcome{Message: "Item added to cart", Status: StatusSuccess}
}

// RemoveItem deletes the line for the product if present. A missing line is
// not an error.
func (c *Cart) RemoveItem(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
}

func (c *Cart) remove(productID int) {
	for i := range c.items {
		if c.items[i].ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line to an exact quantity. Zero or less removes
// the line; above the stock ceiling rejects without mutating.
func (c *Cart) UpdateQuantity(productID, quantity int) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.find(productID)
	if item == nil {
		return Outcome{Message: "Item is not in the cart", Status: StatusError}
	}

	if quantity <= 0 {
		c.remove(productID)
		return Outcome{Message: "Item removed from cart", Status: StatusSuccess}
	}

	if item.TotalStock != nil && quantity > *item.TotalStock {
		return Outcome{
			Message: fmt.Sprintf("Only %d of %q in stock", *item.TotalStock, item.Name),
			Status:  StatusError,
		}
	}

	item.Quantity = quantity
	return Outcome{Message: "Quantity updated", Status: StatusSuccess}
}

// Items returns a copy; callers cannot mutate cart state through it.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Subtotal is recomputed on every read, never cached.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (c *Cart) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
