// Package checkout turns the session's cart into a transaction: it prices
// the sale, rejects underpayment, submits the payload once, journals the
// outcome and clears the cart. The payload is built in full before
// submission and never mutated after.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vincentputra/pos-app-new/internal/cart"
	"github.com/vincentputra/pos-app-new/internal/events"
	"github.com/vincentputra/pos-app-new/internal/journal"
	"github.com/vincentputra/pos-app-new/internal/posapi"
	"github.com/vincentputra/pos-app-new/internal/pricing"
	"github.com/vincentputra/pos-app-new/internal/session"
)

var (
	ErrEmptyCart           = errors.New("Cart is empty")
	ErrInsufficientPayment = errors.New("Payment is less than the total due")
	ErrNotAuthenticated    = errors.New("No auth token found")
)

type Request struct {
	TypeDiscount   int     `json:"type_discount"`
	AmountDiscount float64 `json:"amount_discount"`
	TotalPayment   float64 `json:"total_payment"`
	PaymentMethod  string  `json:"payment_method"`
}

type Result struct {
	Transaction   posapi.Transaction `json:"transaction"`
	ReceiptNumber string             `json:"receipt_number"`
	Subtotal      float64            `json:"subtotal"`
	Discount      float64            `json:"discount"`
	Tax           float64            `json:"tax"`
	Total         float64            `json:"total"`
	Change        float64            `json:"change"`
}

type Service struct {
	API           *posapi.Client
	Carts         *cart.Registry
	Sessions      *session.Manager
	Journal       *journal.Journal
	Producer      *events.Producer
	Log           *slog.Logger
	TaxRate       float64
	ReceiptPrefix string
}

// Checkout runs the whole flow for one sale. There is no retry and no
// idempotency key: a failed submission surfaces immediately and the cart
// is kept so the cashier can try again.
func (s *Service) Checkout(ctx context.Context, sessionID string, req Request) (*Result, error) {
	token, err := s.Sessions.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	state, err := s.Sessions.Init(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.Authenticated {
		return nil, ErrNotAuthenticated
	}

	c := s.Carts.Get(sessionID)
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := c.Subtotal()
	tax := subtotal * s.TaxRate
	discount := pricing.Discount(subtotal, req.TypeDiscount, req.AmountDiscount)
	total := pricing.Total(subtotal, tax, req.TypeDiscount, req.AmountDiscount)
	change := pricing.Change(total, req.TotalPayment)
	if change < 0 {
		return nil, ErrInsufficientPayment
	}

	payload := posapi.TransactionPayload{
		Items:          make([]posapi.TransactionItem, 0, len(items)),
		Subtotal:       subtotal,
		TypeDiscount:   req.TypeDiscount,
		AmountDiscount: req.AmountDiscount,
		Tax:            tax,
		Total:          total,
		TotalPayment:   req.TotalPayment,
		Change:         change,
		PaymentMethod:  req.PaymentMethod,
	}
	for _, item := range items {
		payload.Items = append(payload.Items, posapi.TransactionItem{
			ProductID: item.ID,
			Quantity:  item.Quantity,
			Price:     posapi.Price(item.Price),
		})
	}

	tx, err := s.API.CreateTransaction(ctx, token, payload)
	if err != nil {
		return nil, err
	}

	txDate := time.Now()
	if parsed, perr := time.Parse(time.RFC3339, tx.Date); perr == nil {
		txDate = parsed
	}
	receipt := pricing.ReceiptNumber(s.ReceiptPrefix, state.User.ID, txDate, tx.ID)

	record := &journal.TransactionRecord{
		TransactionID:  tx.ID,
		UserID:         state.User.ID,
		ReceiptNumber:  receipt,
		Subtotal:       subtotal,
		TypeDiscount:   req.TypeDiscount,
		AmountDiscount: req.AmountDiscount,
		Tax:            tax,
		Total:          total,
		TotalPayment:   req.TotalPayment,
		Change:         change,
		PaymentMethod:  req.PaymentMethod,
	}
	if s.Journal != nil {
		if err := s.Journal.RecordTransaction(ctx, record); err != nil {
			// The sale went through upstream; a journal failure must not
			// fail the checkout.
			s.Log.Error("failed to journal transaction", "transaction_id", tx.ID, "error", err)
		}
	}

	if err := s.Producer.Publish(ctx, events.TopicTransactionEvents, sessionID, map[string]any{
		"type":           "transaction_created",
		"transaction_id": tx.ID,
		"user_id":        state.User.ID,
		"receipt_number": receipt,
		"total":          total,
	}); err != nil {
		s.Log.Warn("failed to publish transaction event", "error", err)
	}

	c.Reset()

	return &Result{
		Transaction:   *tx,
		ReceiptNumber: receipt,
		Subtotal:      subtotal,
		Discount:      discount,
		Tax:           tax,
		Total:         total,
		Change:        change,
	}, nil
}
