package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vincentputra/pos-app-new/internal/posapi"
	"github.com/vincentputra/pos-app-new/internal/session"
)

// StaffHandler proxies employee management. All of its routes sit behind
// the guard's admin-only set.
type StaffHandler struct {
	API      *posapi.Client
	Sessions *session.Manager
}

func (h *StaffHandler) ListUsers(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	users, meta, err := h.API.ListUsers(c.Request().Context(), token, listOptions(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": users, "meta": meta})
}

func (h *StaffHandler) ListUsersByRole(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	role, err := strconv.Atoi(c.Param("role"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	users, err := h.API.ListUsersByRole(c.Request().Context(), token, role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": users})
}

func (h *StaffHandler) Roles(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"data": posapi.Roles})
}

func (h *StaffHandler) CreateUser(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	var req struct {
		posapi.User
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.API.CreateUser(c.Request().Context(), token, req.User, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": created})
}

func (h *StaffHandler) UpdateUser(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var user posapi.User
	if err := c.Bind(&user); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.API.UpdateUser(c.Request().Context(), token, id, user)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

func (h *StaffHandler) DeleteUser(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.API.DeleteUser(c.Request().Context(), token, id); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
