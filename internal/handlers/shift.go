package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vincentputra/pos-app-new/internal/events"
	"github.com/vincentputra/pos-app-new/internal/journal"
	"github.com/vincentputra/pos-app-new/internal/logging"
	"github.com/vincentputra/pos-app-new/internal/posapi"
	"github.com/vincentputra/pos-app-new/internal/session"
)

type ShiftHandler struct {
	API      *posapi.Client
	Sessions *session.Manager
	Journal  *journal.Journal
	Producer *events.Producer
}

// MyShift reports whether the current cashier has an open shift, which the
// register checks before allowing sales.
func (h *ShiftHandler) MyShift(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	userID, _ := c.Get("userID").(int)
	shift, err := h.API.GetShiftForUser(c.Request().Context(), token, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"shift": shift, "is_open": shift.IsOpen()})
}

func (h *ShiftHandler) Open(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	var req struct {
		CashBalance float64 `json:"cash_balance"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	shift, err := h.API.OpenShift(ctx, token, req.CashBalance)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	h.record(c, shift, "opened", req.CashBalance)
	return c.JSON(http.StatusOK, echo.Map{"data": shift})
}

func (h *ShiftHandler) Close(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		FinalCashBalance float64 `json:"final_cash_balance"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shift, err := h.API.CloseShift(c.Request().Context(), token, id, req.FinalCashBalance)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	h.record(c, shift, "closed", req.FinalCashBalance)
	return c.JSON(http.StatusOK, echo.Map{"data": shift})
}

func (h *ShiftHandler) record(c echo.Context, shift *posapi.Shift, event string, balance float64) {
	ctx := c.Request().Context()
	log := logging.FromContext(ctx)
	userID, _ := c.Get("userID").(int)

	if h.Journal != nil {
		err := h.Journal.RecordShift(ctx, &journal.ShiftRecord{
			ShiftID:     shift.ID,
			UserID:      userID,
			Event:       event,
			CashBalance: balance,
		})
		if err != nil {
			log.Error("failed to journal shift", "shift_id", shift.ID, "error", err)
		}
	}

	sid, _ := c.Get("sessionID").(string)
	if err := h.Producer.Publish(ctx, events.TopicSessionEvents, sid, map[string]any{
		"type":     "shift_" + event,
		"shift_id": shift.ID,
		"user_id":  userID,
	}); err != nil {
		log.Warn("failed to publish shift event", "error", err)
	}
}

func (h *ShiftHandler) List(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	shifts, meta, err := h.API.ListShifts(c.Request().Context(), token, listOptions(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": shifts, "meta": meta})
}

func (h *ShiftHandler) Detail(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	shift, err := h.API.GetShift(c.Request().Context(), token, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": shift})
}

func (h *ShiftHandler) Histories(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	histories, err := h.API.ListShiftHistories(c.Request().Context(), token, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": histories})
}

func (h *ShiftHandler) CreateHistory(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var history posapi.ShiftHistory
	if err := c.Bind(&history); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.API.CreateShiftHistory(c.Request().Context(), token, id, history)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": created})
}
