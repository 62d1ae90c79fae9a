package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vincentputra/pos-app-new/internal/checkout"
	"github.com/vincentputra/pos-app-new/internal/pricing"
)

type CheckoutHandler struct {
	Service *checkout.Service
}

// receiptDisplay carries the printable strings for the receipt, so the UI
// renders them as-is instead of re-implementing the formatting.
type receiptDisplay struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
	Payment  string `json:"payment"`
	Change   string `json:"change"`
	Date     string `json:"date"`
}

func displayFor(result *checkout.Result, payment float64) receiptDisplay {
	date := time.Now()
	if parsed, err := time.Parse(time.RFC3339, result.Transaction.Date); err == nil {
		date = parsed
	}
	return receiptDisplay{
		Subtotal: pricing.FormatPrice(result.Subtotal),
		Discount: pricing.FormatPrice(result.Discount),
		Tax:      pricing.FormatPrice(result.Tax),
		Total:    pricing.FormatPrice(result.Total),
		Payment:  pricing.FormatPrice(payment),
		Change:   pricing.FormatPrice(result.Change),
		Date:     pricing.FormatDateTime(date),
	}
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}

	var req checkout.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.Service.Checkout(c.Request().Context(), sid, req)
	switch {
	case err == nil:
	case errors.Is(err, checkout.ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrInsufficientPayment):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		// Upstream rejection or connectivity; the message is already
		// humanized by the API client.
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"result":  result,
		"display": displayFor(result, req.TotalPayment),
	})
}
