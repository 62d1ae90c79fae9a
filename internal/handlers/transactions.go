package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vincentputra/pos-app-new/internal/journal"
	"github.com/vincentputra/pos-app-new/internal/posapi"
	"github.com/vincentputra/pos-app-new/internal/session"
)

type TransactionHandler struct {
	API      *posapi.Client
	Sessions *session.Manager
	Journal  *journal.Journal
}

func (h *TransactionHandler) List(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	transactions, meta, err := h.API.ListTransactions(c.Request().Context(), token, listOptions(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": transactions, "meta": meta})
}

// Options serves the fixed filter tables the transactions screen renders.
func (h *TransactionHandler) Options(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"statuses":        posapi.TransactionStatuses,
		"payment_methods": posapi.PaymentMethods,
	})
}

// LocalJournal lists this terminal's own record of submitted transactions,
// available even when the POS API is unreachable.
func (h *TransactionHandler) LocalJournal(c echo.Context) error {
	if h.Journal == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "journal is not configured")
	}

	userID, _ := c.Get("userID").(int)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	records, err := h.Journal.Transactions(c.Request().Context(), userID, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": records})
}
