// Package guard decides, before every request, whether the session may see
// the route: unauthenticated sessions are sent to the login page,
// authenticated ones are kept off it, and cashiers are told admin pages do
// not exist.
package guard

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vincentputra/pos-app-new/internal/history"
	"github.com/vincentputra/pos-app-new/internal/logging"
	"github.com/vincentputra/pos-app-new/internal/posapi"
	"github.com/vincentputra/pos-app-new/internal/session"
)

const LoginPath = "/login"

// DefaultAdminRoutes are the pages a cashier must not reach. Discounts and
// products stay open to cashiers, who read both at the register.
var DefaultAdminRoutes = map[string]bool{
	"/employees": true,
	"/reports":   true,
	"/settings":  true,
}

type Guard struct {
	Sessions    *session.Manager
	History     *history.Tracker
	AdminRoutes map[string]bool
	Log         *slog.Logger
}

func New(sessions *session.Manager, tracker *history.Tracker, log *slog.Logger) *Guard {
	return &Guard{
		Sessions:    sessions,
		History:     tracker,
		AdminRoutes: DefaultAdminRoutes,
		Log:         log,
	}
}

// adminOnly matches the restricted page and everything under it.
func (g *Guard) adminOnly(path string) bool {
	for route := range g.AdminRoutes {
		if path == route || strings.HasPrefix(path, route+"/") {
			return true
		}
	}
	return false
}

// accessToken pulls the terminal JWT from the cookie set at login, or from
// the Authorization header for non-browser clients.
func accessToken(c echo.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Middleware resolves session state on every request. Resolution may purge
// an expired token as a side effect: the first request after expiry is the
// one that logs the cashier out.
func (g *Guard) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		path := c.Request().URL.Path

		var state session.State
		var sessionID string
		if raw := accessToken(c); raw != "" {
			claims, err := session.ParseAccessToken(raw, g.Sessions.Secret())
			if err == nil {
				sessionID = claims.SessionID
				state, err = g.Sessions.Init(ctx, sessionID)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
				}
			}
		}

		if !state.Authenticated {
			if path == LoginPath {
				return next(c)
			}
			return c.Redirect(http.StatusFound, LoginPath)
		}

		if path == LoginPath {
			return c.Redirect(http.StatusFound, "/")
		}

		if state.User.Role != posapi.RoleAdmin && g.adminOnly(path) {
			// Denial is disguised as a missing page so the route set does
			// not leak to cashiers.
			return echo.NewHTTPError(http.StatusNotFound, "page not found")
		}

		c.Set("sessionID", sessionID)
		c.Set("userID", state.User.ID)
		c.Set("role", state.User.Role)
		c.Set("locked", state.Locked)

		reqLog := g.Log.With("session_id", sessionID, "user_id", state.User.ID)
		c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, reqLog)))

		if g.History != nil && path != "/" {
			if err := g.History.AddRoute(ctx, sessionID, path); err != nil {
				g.Log.Warn("failed to record route", "error", err)
			}
		}

		return next(c)
	}
}
