package posapi

import (
	"encoding/json"
	"strconv"
	"strings"
)

const (
	RoleAdmin   = 0
	RoleCashier = 1
)

// Price tolerates the API sending decimals as JSON strings, which the
// backend does for money columns. It always unmarshals to a float64.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

type Meta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Role  int    `json:"role"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       Price      `json:"price"`
	Image       string     `json:"image"`
	Category    []Category `json:"category"`
	Quantity    int        `json:"quantity"`
	TotalStock  *int       `json:"total_stock,omitempty"`
}

type Discount struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Type   int    `json:"type"`
	Amount Price  `json:"amount"`
}

type Shift struct {
	ID                  int    `json:"id"`
	UserID              int    `json:"user_id"`
	CashBalance         Price  `json:"cash_balance"`
	ExpectedCashBalance Price  `json:"expected_cash_balance"`
	FinalCashBalance    Price  `json:"final_cash_balance"`
	CashDifference      Price  `json:"cash_difference"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
	User                *User  `json:"user,omitempty"`
}

// IsOpen reports whether the shift is still accepting sales. Closing a
// shift is the only update the API performs on it, so a set updated_at
// means closed even though the row is the cashier's latest.
func (s *Shift) IsOpen() bool {
	return s != nil && s.UpdatedAt == ""
}

type ShiftHistory struct {
	ID      int    `json:"id"`
	ShiftID int    `json:"shift_id"`
	Type    string `json:"type"`
	Amount  Price  `json:"amount"`
	Note    string `json:"note"`
	Date    string `json:"created_at"`
}

type StockAdjustment struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
	Date      string `json:"created_at"`
}

type StockProduct struct {
	ProductID  int    `json:"product_id"`
	Name       string `json:"name"`
	TotalStock int    `json:"total_stock"`
	UpdatedAt  string `json:"updated_at"`
}

type TransactionItem struct {
	ProductID int   `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     Price `json:"price"`
}

// TransactionPayload is built once at checkout and never mutated after.
type TransactionPayload struct {
	Items          []TransactionItem `json:"items"`
	Subtotal       float64           `json:"subtotal"`
	TypeDiscount   int               `json:"type_discount"`
	AmountDiscount float64           `json:"amount_discount"`
	Tax            float64           `json:"tax"`
	Total          float64           `json:"total"`
	TotalPayment   float64           `json:"total_payment"`
	Change         float64           `json:"change"`
	PaymentMethod  string            `json:"payment_method"`
}

type TransactionDetail struct {
	ID       int     `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Price    Price   `json:"price"`
	Subtotal Price   `json:"subtotal"`
}

type Transaction struct {
	ID            int                 `json:"id"`
	User          User                `json:"user"`
	PaymentStatus string              `json:"payment_status"`
	TotalPrice    Price               `json:"total_price"`
	Date          string              `json:"date"`
	Details       []TransactionDetail `json:"details"`
}

type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TransactionStatus struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Fixed lookup tables the UI renders in filters and forms.
var (
	Roles = []Role{
		{ID: RoleAdmin, Name: "Admin"},
		{ID: RoleCashier, Name: "Cashier"},
	}

	PaymentMethods = []PaymentMethod{
		{ID: "bank_transfer", Name: "Bank Transfer"},
		{ID: "e_wallet", Name: "E-Wallets"},
		{ID: "qris", Name: "QRIS"},
		{ID: "cash", Name: "Cash"},
	}

	TransactionStatuses = []TransactionStatus{
		{ID: "paid", Name: "Paid"},
		{ID: "refunded", Name: "Refunded"},
	}
)

type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta *Meta           `json:"meta"`
}

type apiError struct {
	Message string `json:"message"`
}
