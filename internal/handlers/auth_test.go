package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/vincentputra/pos-app-new/internal/cart"
	"github.com/vincentputra/pos-app-new/internal/history"
	"github.com/vincentputra/pos-app-new/internal/kvstore"
	"github.com/vincentputra/pos-app-new/internal/posapi"
	"github.com/vincentputra/pos-app-new/internal/session"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *cart.Registry) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "These credentials do not match our records."})
			return
		}
		json.NewEncoder(w).Encode(posapi.LoginResponse{
			Token: "upstream-token",
			User:  posapi.User{ID: 7, Email: req.Email, Name: "Admin", Role: posapi.RoleAdmin},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := kvstore.NewMemoryStore()
	carts := cart.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewManager(store, posapi.NewClient(srv.URL), carts, history.New(store), []byte("test-secret"), logger)

	return &AuthHandler{Sessions: sessions}, carts
}

func postJSON(target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoginSetsCookie(t *testing.T) {
	h, _ := newAuthHandler(t)

	c, rec := postJSON("/login", `{"email":"admin@pos.test","password":"secret"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var result session.LoginResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.AccessToken)
	require.Equal(t, 7, result.User.ID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "accessToken", cookies[0].Name)
	require.Equal(t, result.AccessToken, cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h, _ := newAuthHandler(t)

	c, _ := postJSON("/login", `{"email":"admin@pos.test","password":"wrong"}`)
	err := h.Login(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
	require.Equal(t, "These credentials do not match our records.", httpErr.Message)
}

func TestLogoutClearsEverything(t *testing.T) {
	h, carts := newAuthHandler(t)

	c, rec := postJSON("/login", `{"email":"admin@pos.test","password":"secret"}`)
	require.NoError(t, h.Login(c))
	var result session.LoginResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	sid := result.SessionID

	carts.Get(sid).AddItem(cart.Product{ID: 1, Name: "Americano", Price: 10000})

	c, rec = postJSON("/logout", "")
	c.Set("sessionID", sid)
	require.NoError(t, h.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"redirect":"/login"}`, rec.Body.String())

	// The cookie is expired and the cart is gone.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "", cookies[0].Value)
	require.Empty(t, carts.Get(sid).Items())
}

func TestLockAndUnlock(t *testing.T) {
	h, _ := newAuthHandler(t)

	c, rec := postJSON("/login", `{"email":"admin@pos.test","password":"secret"}`)
	require.NoError(t, h.Login(c))
	var result session.LoginResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	sid := result.SessionID

	c, _ = postJSON("/session/lock", `{"pin":"1234"}`)
	c.Set("sessionID", sid)
	require.NoError(t, h.Lock(c))

	c, _ = postJSON("/session/unlock", `{"pin":"0000"}`)
	c.Set("sessionID", sid)
	err := h.Unlock(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusForbidden, httpErr.Code)

	c, rec = postJSON("/session/unlock", `{"pin":"1234"}`)
	c.Set("sessionID", sid)
	require.NoError(t, h.Unlock(c))
	require.JSONEq(t, `{"locked":false}`, rec.Body.String())
}
