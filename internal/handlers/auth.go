package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vincentputra/pos-app-new/internal/events"
	"github.com/vincentputra/pos-app-new/internal/logging"
	"github.com/vincentputra/pos-app-new/internal/session"
)

type AuthHandler struct {
	Sessions *session.Manager
	Producer *events.Producer
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RememberMe bool   `json:"remember_me"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	result, err := h.Sessions.Login(ctx, req.Email, req.Password, req.RememberMe)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	c.SetCookie(CreateCookie("accessToken", result.AccessToken, "/", time.UnixMilli(result.ExpiresAt)))

	if err := h.Producer.Publish(ctx, events.TopicSessionEvents, result.SessionID, map[string]any{
		"type":    "session_opened",
		"user_id": result.User.ID,
		"role":    result.User.Role,
	}); err != nil {
		logging.FromContext(ctx).Warn("failed to publish session event", "error", err)
	}

	return c.JSON(http.StatusOK, result)
}

// Logout purges the session and cart before telling the client where to
// go, so no later request can observe stale state.
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.Sessions.Logout(ctx, sid); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.SetCookie(CreateCookie("accessToken", "", "/", time.Unix(0, 0)))

	if err := h.Producer.Publish(ctx, events.TopicSessionEvents, sid, map[string]any{
		"type": "session_closed",
	}); err != nil {
		logging.FromContext(ctx).Warn("failed to publish session event", "error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"redirect": "/login"})
}

func (h *AuthHandler) Session(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	state, err := h.Sessions.Init(c.Request().Context(), sid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, state)
}

func (h *AuthHandler) Lock(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}

	var req struct {
		PIN string `json:"pin"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.Sessions.Lock(c.Request().Context(), sid, req.PIN); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"locked": true})
}

func (h *AuthHandler) Unlock(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}

	var req struct {
		PIN string `json:"pin"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.Sessions.Unlock(c.Request().Context(), sid, req.PIN)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "Incorrect PIN")
	}
	return c.JSON(http.StatusOK, echo.Map{"locked": false})
}
