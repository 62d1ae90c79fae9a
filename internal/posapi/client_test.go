package posapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "admin@pos.test", body["email"])

		json.NewEncoder(w).Encode(LoginResponse{
			Token: "abc",
			User:  User{ID: 1, Email: body["email"], Role: RoleAdmin},
		})
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).Login(context.Background(), "admin@pos.test", "secret")
	require.NoError(t, err)
	require.Equal(t, "abc", resp.Token)
	require.Equal(t, 1, resp.User.ID)
}

func TestLoginServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "These credentials do not match our records."})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.c", "wrong")
	require.EqualError(t, err, "These credentials do not match our records.")
}

func TestLoginFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.c", "wrong")
	require.EqualError(t, err, "Invalid credentials")
}

func TestLoginEmptyTokenRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(LoginResponse{})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.c", "secret")
	require.EqualError(t, err, "Invalid credentials")
}

func TestConnectivityFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, _, err := NewClient(addr).ListProducts(context.Background(), "token", ListOptions{})
	require.ErrorIs(t, err, ErrConnectivity)
}

func TestEnvelopeAndMetaDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": 1, "name": "Americano", "price": "10000.00", "total_stock": 5},
				{"id": 2, "name": "Latte", "price": 15000},
			},
			"meta": map[string]any{"current_page": 2, "last_page": 4, "total": 37},
		})
	}))
	defer srv.Close()

	products, meta, err := NewClient(srv.URL).ListProducts(context.Background(), "token-123", ListOptions{Page: 2})
	require.NoError(t, err)
	require.Len(t, products, 2)

	// String and numeric prices both decode.
	require.Equal(t, Price(10000), products[0].Price)
	require.Equal(t, Price(15000), products[1].Price)
	require.NotNil(t, products[0].TotalStock)
	require.Equal(t, 5, *products[0].TotalStock)
	require.Nil(t, products[1].TotalStock)

	require.NotNil(t, meta)
	require.Equal(t, 2, meta.CurrentPage)
	require.Equal(t, 37, meta.Total)
}

func TestErrorMessageFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, _, err := NewClient(srv.URL).ListProducts(context.Background(), "token", ListOptions{})
	require.EqualError(t, err, "Failed to fetch products")
}

func TestListOptionsQuery(t *testing.T) {
	tests := []struct {
		name string
		opts ListOptions
		want url.Values
	}{
		{
			name: "defaults",
			opts: ListOptions{},
			want: url.Values{"page": {"1"}, "per_page": {"10"}},
		},
		{
			name: "status all is omitted",
			opts: ListOptions{Page: 3, PerPage: 25, Status: "all"},
			want: url.Values{"page": {"3"}, "per_page": {"25"}},
		},
		{
			name: "filters",
			opts: ListOptions{Page: 1, PerPage: 10, Status: "open", UserID: 7, Search: "latte"},
			want: url.Values{
				"page": {"1"}, "per_page": {"10"},
				"status": {"open"}, "user_id": {"7"}, "search": {"latte"},
			},
		},
		{
			name: "date range",
			opts: ListOptions{DateFrom: "2025-03-01", DateTo: "2025-03-31"},
			want: url.Values{
				"page": {"1"}, "per_page": {"10"},
				"date_from": {"2025-03-01"}, "date_to": {"2025-03-31"},
			},
		},
		{
			name: "open-ended date bounds",
			opts: ListOptions{DateTo: "2025-03-31"},
			want: url.Values{
				"page": {"1"}, "per_page": {"10"},
				"date_to": {"2025-03-31"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := url.ParseQuery(tt.opts.query())
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPriceUnmarshal(t *testing.T) {
	var p Price
	require.NoError(t, json.Unmarshal([]byte(`"12500.50"`), &p))
	require.Equal(t, Price(12500.5), p)

	require.NoError(t, json.Unmarshal([]byte(`null`), &p))
	require.Equal(t, Price(0), p)

	require.Error(t, json.Unmarshal([]byte(`"abc"`), &p))
}
