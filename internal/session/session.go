// Package session owns the cashier's authentication state: the upstream
// bearer token with its expiry, the cached user profile, and the PIN lock.
// State lives in the key-value store so a terminal restart keeps the
// session; the cart does not survive restarts on purpose.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vincentputra/pos-app-new/internal/cart"
	"github.com/vincentputra/pos-app-new/internal/hash"
	"github.com/vincentputra/pos-app-new/internal/history"
	"github.com/vincentputra/pos-app-new/internal/kvstore"
	"github.com/vincentputra/pos-app-new/internal/posapi"
)

const (
	sessionTTL    = 24 * time.Hour
	rememberedTTL = 7 * 24 * time.Hour
)

// StoredToken is the persisted credential. ExpiresAt is unix milliseconds,
// strictly in the future while the token is valid.
type StoredToken struct {
	Value     string `json:"value"`
	ExpiresAt int64  `json:"expiresAt"`
}

type State struct {
	Authenticated bool         `json:"is_authenticated"`
	Locked        bool         `json:"is_locked"`
	User          *posapi.User `json:"user,omitempty"`
}

type LoginResult struct {
	SessionID   string      `json:"session_id"`
	AccessToken string      `json:"access_token"`
	ExpiresAt   int64       `json:"expires_at"`
	User        posapi.User `json:"user"`
}

type Manager struct {
	store   kvstore.Store
	api     *posapi.Client
	carts   *cart.Registry
	history *history.Tracker
	secret  []byte
	log     *slog.Logger

	// now is swapped in tests to drive token expiry.
	now func() time.Time
}

func NewManager(store kvstore.Store, api *posapi.Client, carts *cart.Registry, tracker *history.Tracker, secret []byte, log *slog.Logger) *Manager {
	return &Manager{
		store:   store,
		api:     api,
		carts:   carts,
		history: tracker,
		secret:  secret,
		log:     log,
		now:     time.Now,
	}
}

func tokenKey(sessionID string) string { return "auth_token:" + sessionID }
func userKey(sessionID string) string  { return "user:" + sessionID }
func pinKey(sessionID string) string   { return "pin:" + sessionID }

// SetToken persists an upstream token with a computed expiry: one day, or
// seven with rememberMe. The token value itself is opaque to us.
func (m *Manager) SetToken(ctx context.Context, sessionID, token string, rememberMe bool) error {
	ttl := sessionTTL
	if rememberMe {
		ttl = rememberedTTL
	}
	data, err := json.Marshal(StoredToken{
		Value:     token,
		ExpiresAt: m.now().Add(ttl).UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	return m.store.Set(ctx, tokenKey(sessionID), string(data))
}

// Token resolves the upstream bearer token, purging on the way out if it
// has expired or no longer parses. A dead token always takes the cached
// profile with it; a profile without a token is a state nothing else has
// to reason about. Returns "" when no valid token exists.
func (m *Manager) Token(ctx context.Context, sessionID string) (string, error) {
	raw, err := m.store.Get(ctx, tokenKey(sessionID))
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if raw == "" {
		return "", nil
	}

	var stored StoredToken
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		m.purge(ctx, sessionID)
		return "", nil
	}

	if m.now().UnixMilli() > stored.ExpiresAt {
		m.purge(ctx, sessionID)
		return "", nil
	}
	return stored.Value, nil
}

// Init resolves the full session state. Either piece missing or corrupt
// forces the session to logged-out; corruption self-heals by clearing
// rather than erroring at the cashier.
func (m *Manager) Init(ctx context.Context, sessionID string) (State, error) {
	token, err := m.Token(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	rawUser, err := m.store.Get(ctx, userKey(sessionID))
	if err != nil {
		return State{}, fmt.Errorf("read user: %w", err)
	}

	if token == "" || rawUser == "" {
		m.purge(ctx, sessionID)
		return State{}, nil
	}

	var user posapi.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		m.log.Error("failed to parse stored user", "error", err)
		m.purge(ctx, sessionID)
		return State{}, nil
	}

	locked, err := m.isLocked(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	return State{Authenticated: true, Locked: locked, User: &user}, nil
}

// Login authenticates against the POS API and opens a fresh session. The
// terminal access token expires together with the stored upstream token.
func (m *Manager) Login(ctx context.Context, email, password string, rememberMe bool) (*LoginResult, error) {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	if err := m.SetToken(ctx, sessionID, resp.Token, rememberMe); err != nil {
		return nil, err
	}

	rawUser, err := json.Marshal(resp.User)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.Set(ctx, userKey(sessionID), string(rawUser)); err != nil {
		return nil, err
	}

	ttl := sessionTTL
	if rememberMe {
		ttl = rememberedTTL
	}
	exp := m.now().Add(ttl)
	access, err := SignAccessToken(sessionID, resp.User.ID, resp.User.Role, exp.Unix(), m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	m.log.Info("session opened", "user_id", resp.User.ID, "role", resp.User.Role)
	return &LoginResult{
		SessionID:   sessionID,
		AccessToken: access,
		ExpiresAt:   exp.UnixMilli(),
		User:        resp.User,
	}, nil
}

// Logout tears the session down in strict order: storage first, then the
// cart, so a back-navigation after the caller redirects can never observe
// stale session or cart state. The cart is dropped even if storage fails.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	err := m.purge(ctx, sessionID)
	if herr := m.history.Clear(ctx, sessionID); err == nil {
		err = herr
	}
	m.carts.Drop(sessionID)
	if err != nil {
		m.log.Error("logout failed", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// purge clears token, profile and PIN together.
func (m *Manager) purge(ctx context.Context, sessionID string) error {
	err := m.store.Remove(ctx, tokenKey(sessionID))
	if uerr := m.store.Remove(ctx, userKey(sessionID)); err == nil {
		err = uerr
	}
	if perr := m.store.Remove(ctx, pinKey(sessionID)); err == nil {
		err = perr
	}
	return err
}

// Lock protects an authenticated session behind a PIN until Unlock. Only
// the bcrypt hash is stored.
func (m *Manager) Lock(ctx context.Context, sessionID, pin string) error {
	if len(pin) < 4 {
		return fmt.Errorf("PIN must be at least 4 digits")
	}
	hashed, err := hash.HashPIN(pin)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}
	return m.store.Set(ctx, pinKey(sessionID), hashed)
}

func (m *Manager) Unlock(ctx context.Context, sessionID, pin string) (bool, error) {
	stored, err := m.store.Get(ctx, pinKey(sessionID))
	if err != nil {
		return false, fmt.Errorf("read pin: %w", err)
	}
	if stored == "" {
		return true, nil
	}
	if !hash.CheckPIN(stored, pin) {
		return false, nil
	}
	return true, m.store.Remove(ctx, pinKey(sessionID))
}

func (m *Manager) isLocked(ctx context.Context, sessionID string) (bool, error) {
	stored, err := m.store.Get(ctx, pinKey(sessionID))
	if err != nil {
		return false, err
	}
	return stored != "", nil
}

// Secret exposes the signing key to the route guard.
func (m *Manager) Secret() []byte { return m.secret }
