package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vincentputra/pos-app-new/internal/session"
)

func CreateCookie(name string, value string, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionID reads the session id the route guard resolved for this request.
func sessionID(c echo.Context) (string, error) {
	sid, ok := c.Get("sessionID").(string)
	if !ok || sid == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}
	return sid, nil
}

// upstreamToken resolves the bearer token for the external POS API. The
// guard has already vetted the session, but the token can expire between
// the guard and the handler, so the read can still come back empty.
func upstreamToken(c echo.Context, sessions *session.Manager) (string, error) {
	sid, err := sessionID(c)
	if err != nil {
		return "", err
	}
	token, err := sessions.Token(c.Request().Context(), sid)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "No auth token found")
	}
	return token, nil
}
