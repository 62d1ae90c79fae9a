package checkout

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vincentputra/pos-app-new/internal/cart"
	"github.com/vincentputra/pos-app-new/internal/history"
	"github.com/vincentputra/pos-app-new/internal/journal"
	"github.com/vincentputra/pos-app-new/internal/kvstore"
	"github.com/vincentputra/pos-app-new/internal/posapi"
	"github.com/vincentputra/pos-app-new/internal/session"
)

type fixture struct {
	service  *Service
	sessions *session.Manager
	carts    *cart.Registry
	store    *kvstore.MemoryStore
}

func newFixture(t *testing.T, upstream http.Handler) *fixture {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	store := kvstore.NewMemoryStore()
	carts := cart.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := posapi.NewClient(srv.URL)
	sessions := session.NewManager(store, api, carts, history.New(store), []byte("test-secret"), logger)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	j, err := journal.FromDB(db)
	require.NoError(t, err)

	return &fixture{
		service: &Service{
			API:           api,
			Carts:         carts,
			Sessions:      sessions,
			Journal:       j,
			Producer:      nil,
			Log:           logger,
			TaxRate:       0.11,
			ReceiptPrefix: "CS",
		},
		sessions: sessions,
		carts:    carts,
		store:    store,
	}
}

func (f *fixture) openSession(t *testing.T, sid string, userID int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.sessions.SetToken(ctx, sid, "upstream-token", false))
	raw, err := json.Marshal(posapi.User{ID: userID, Name: "Cashier", Role: posapi.RoleCashier})
	require.NoError(t, err)
	require.NoError(t, f.store.Set(ctx, "user:"+sid, string(raw)))
}

func acceptingUpstream(t *testing.T, captured *posapi.TransactionPayload) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		tx := posapi.Transaction{
			ID:            42,
			PaymentStatus: "paid",
			TotalPrice:    posapi.Price(26100),
			Date:          time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC).Format(time.RFC3339),
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"data": tx})
	})
	return mux
}

func TestCheckout(t *testing.T) {
	var payload posapi.TransactionPayload
	f := newFixture(t, acceptingUpstream(t, &payload))
	f.openSession(t, "sid", 3)
	ctx := context.Background()

	c := f.carts.Get("sid")
	c.AddItem(cart.Product{ID: 1, Name: "Americano", Price: 10000})
	c.AddItem(cart.Product{ID: 1, Name: "Americano", Price: 10000})
	c.AddItem(cart.Product{ID: 2, Name: "Croissant", Price: 5000})

	result, err := f.service.Checkout(ctx, "sid", Request{
		TypeDiscount:   2,
		AmountDiscount: 10,
		TotalPayment:   30000,
		PaymentMethod:  "cash",
	})
	require.NoError(t, err)

	// 25000 subtotal, 2500 percentage discount, 2750 tax.
	require.Equal(t, 25000.0, result.Subtotal)
	require.Equal(t, 2500.0, result.Discount)
	require.Equal(t, 2750.0, result.Tax)
	require.Equal(t, 25250.0, result.Total)
	require.Equal(t, 4750.0, result.Change)
	require.Equal(t, "CS/3/20250314/0042", result.ReceiptNumber)
	require.Equal(t, 42, result.Transaction.ID)

	require.Len(t, payload.Items, 2)
	require.Equal(t, 25250.0, payload.Total)

	require.Empty(t, c.Items(), "a completed sale empties the cart")

	records, err := f.service.Journal.Transactions(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 42, records[0].TransactionID)
	require.Equal(t, "CS/3/20250314/0042", records[0].ReceiptNumber)
}

func TestCheckoutRejectsUnderpayment(t *testing.T) {
	f := newFixture(t, acceptingUpstream(t, nil))
	f.openSession(t, "sid", 3)

	c := f.carts.Get("sid")
	c.AddItem(cart.Product{ID: 1, Name: "Americano", Price: 10000})

	_, err := f.service.Checkout(context.Background(), "sid", Request{
		TotalPayment:  5000,
		PaymentMethod: "cash",
	})
	require.ErrorIs(t, err, ErrInsufficientPayment)
	require.Len(t, c.Items(), 1, "a rejected sale keeps the cart")
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	f := newFixture(t, acceptingUpstream(t, nil))
	f.openSession(t, "sid", 3)

	_, err := f.service.Checkout(context.Background(), "sid", Request{TotalPayment: 10000})
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutRequiresSession(t *testing.T) {
	f := newFixture(t, acceptingUpstream(t, nil))

	_, err := f.service.Checkout(context.Background(), "nobody", Request{TotalPayment: 10000})
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCheckoutKeepsCartOnUpstreamFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "The shift is already closed."})
	})

	f := newFixture(t, mux)
	f.openSession(t, "sid", 3)

	c := f.carts.Get("sid")
	c.AddItem(cart.Product{ID: 1, Name: "Americano", Price: 10000})

	_, err := f.service.Checkout(context.Background(), "sid", Request{
		TotalPayment:  20000,
		PaymentMethod: "cash",
	})
	require.EqualError(t, err, "The shift is already closed.")
	require.Len(t, c.Items(), 1)
}
