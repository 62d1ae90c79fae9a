package posapi

import (
	"context"
	"fmt"
	"net/http"
)

// Products

func (c *Client) ListProducts(ctx context.Context, token string, opts ListOptions) ([]Product, *Meta, error) {
	var products []Product
	meta, err := c.do(ctx, http.MethodGet, "/products?"+opts.query(), token, nil, &products, "Failed to fetch products")
	return products, meta, err
}

func (c *Client) CreateProduct(ctx context.Context, token string, product Product) (*Product, error) {
	var created Product
	_, err := c.do(ctx, http.MethodPost, "/products", token, product, &created, "Failed to create product")
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id int, product Product) (*Product, error) {
	var updated Product
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), token, product, &updated, "Failed to update product")
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), token, nil, nil, "Failed to delete product")
	return err
}

// Product categories

func (c *Client) ListCategories(ctx context.Context, token string, opts ListOptions) ([]Category, *Meta, error) {
	var categories []Category
	meta, err := c.do(ctx, http.MethodGet, "/product-categories?"+opts.query(), token, nil, &categories, "Failed to fetch categories")
	return categories, meta, err
}

func (c *Client) CreateCategory(ctx context.Context, token string, category Category) (*Category, error) {
	var created Category
	_, err := c.do(ctx, http.MethodPost, "/product-categories", token, category, &created, "Failed to create category")
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateCategory(ctx context.Context, token string, id int, category Category) (*Category, error) {
	var updated Category
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/product-categories/%d", id), token, category, &updated, "Failed to update category")
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token string, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/product-categories/%d", id), token, nil, nil, "Failed to delete category")
	return err
}

// Discounts

func (c *Client) ListDiscounts(ctx context.Context, token string, opts ListOptions) ([]Discount, *Meta, error) {
	var discounts []Discount
	meta, err := c.do(ctx, http.MethodGet, "/discounts?"+opts.query(), token, nil, &discounts, "Failed to fetch discounts")
	return discounts, meta, err
}

func (c *Client) CreateDiscount(ctx context.Context, token string, discount Discount) (*Discount, error) {
	var created Discount
	_, err := c.do(ctx, http.MethodPost, "/discounts", token, discount, &created, "Failed to create discount")
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteDiscount(ctx context.Context, token string, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/discounts/%d", id), token, nil, nil, "Failed to delete discount")
	return err
}

// Users

func (c *Client) ListUsers(ctx context.Context, token string, opts ListOptions) ([]User, *Meta, error) {
	var users []User
	meta, err := c.do(ctx, http.MethodGet, "/users?"+opts.query(), token, nil, &users, "Failed to fetch users")
	return users, meta, err
}

func (c *Client) ListUsersByRole(ctx context.Context, token string, role int) ([]User, error) {
	var users []User
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/role/%d", role), token, nil, &users, "Failed to fetch users")
	return users, err
}

func (c *Client) CreateUser(ctx context.Context, token string, user User, password string) (*User, error) {
	body := struct {
		User
		Password string `json:"password"`
	}{User: user, Password: password}

	var created User
	_, err := c.do(ctx, http.MethodPost, "/users", token, body, &created, "Failed to create user")
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int, user User) (*User, error) {
	var updated User
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), token, user, &updated, "Failed to update user")
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), token, nil, nil, "Failed to delete user")
	return err
}

// Shifts

func (c *Client) ListShifts(ctx context.Context, token string, opts ListOptions) ([]Shift, *Meta, error) {
	var shifts []Shift
	meta, err := c.do(ctx, http.MethodGet, "/shifts?"+opts.query(), token, nil, &shifts, "Failed to fetch shifts")
	return shifts, meta, err
}

func (c *Client) GetShift(ctx context.Context, token string, id int) (*Shift, error) {
	var shift Shift
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/shifts/%d", id), token, nil, &shift, "Failed to fetch shift detail")
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// GetShiftForUser resolves the open shift of one cashier, or nil when the
// cashier has no shift today.
func (c *Client) GetShiftForUser(ctx context.Context, token string, userID int) (*Shift, error) {
	var shift Shift
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/shifts/user/%d", userID), token, nil, &shift, "Failed to fetch shift")
	if err != nil {
		return nil, err
	}
	if shift.ID == 0 {
		return nil, nil
	}
	return &shift, nil
}

func (c *Client) OpenShift(ctx context.Context, token string, cashBalance float64) (*Shift, error) {
	body := map[string]float64{"cash_balance": cashBalance}
	var shift Shift
	_, err := c.do(ctx, http.MethodPost, "/shifts", token, body, &shift, "Failed to open shift")
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (c *Client) CloseShift(ctx context.Context, token string, id int, finalCashBalance float64) (*Shift, error) {
	body := map[string]float64{"final_cash_balance": finalCashBalance}
	var shift Shift
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/shifts/%d", id), token, body, &shift, "Failed to close shift")
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (c *Client) ListShiftHistories(ctx context.Context, token string, shiftID int) ([]ShiftHistory, error) {
	var histories []ShiftHistory
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/shift-histories?shift_id=%d", shiftID), token, nil, &histories, "Failed to fetch cash reports")
	return histories, err
}

func (c *Client) CreateShiftHistory(ctx context.Context, token string, shiftID int, history ShiftHistory) (*ShiftHistory, error) {
	var created ShiftHistory
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/shifts/%d/histories", shiftID), token, history, &created, "Failed to create cash report")
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Stock

func (c *Client) ListStockAdjustments(ctx context.Context, token string, opts ListOptions) ([]StockAdjustment, *Meta, error) {
	var adjustments []StockAdjustment
	meta, err := c.do(ctx, http.MethodGet, "/adjustment-products?"+opts.query(), token, nil, &adjustments, "Failed to fetch stock adjustments")
	return adjustments, meta, err
}

func (c *Client) CreateStockAdjustment(ctx context.Context, token string, adjustment StockAdjustment) (*StockAdjustment, error) {
	var created StockAdjustment
	_, err := c.do(ctx, http.MethodPost, "/adjustment-products", token, adjustment, &created, "Failed to create stock adjustment")
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListStockProducts(ctx context.Context, token string, opts ListOptions) ([]StockProduct, *Meta, error) {
	var stock []StockProduct
	meta, err := c.do(ctx, http.MethodGet, "/stock-products?"+opts.query(), token, nil, &stock, "Failed to fetch stock")
	return stock, meta, err
}

// Transactions

func (c *Client) ListTransactions(ctx context.Context, token string, opts ListOptions) ([]Transaction, *Meta, error) {
	var transactions []Transaction
	meta, err := c.do(ctx, http.MethodGet, "/transactions?"+opts.query(), token, nil, &transactions, "Failed to fetch transactions")
	return transactions, meta, err
}

func (c *Client) CreateTransaction(ctx context.Context, token string, payload TransactionPayload) (*Transaction, error) {
	var created Transaction
	_, err := c.do(ctx, http.MethodPost, "/transactions", token, payload, &created, "Failed to create transaction")
	if err != nil {
		return nil, err
	}
	return &created, nil
}
