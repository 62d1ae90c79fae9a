package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vincentputra/pos-app-new/internal/logging"
	"github.com/vincentputra/pos-app-new/internal/posapi"
	"github.com/vincentputra/pos-app-new/internal/search"
	"github.com/vincentputra/pos-app-new/internal/session"
	"github.com/vincentputra/pos-app-new/internal/util"
)

type CatalogHandler struct {
	API      *posapi.Client
	Sessions *session.Manager
	Products *search.Index
}

func listOptions(c echo.Context) posapi.ListOptions {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	userID, _ := strconv.Atoi(c.QueryParam("user_id"))
	return posapi.ListOptions{
		Page:     page,
		PerPage:  perPage,
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		UserID:   userID,
		DateFrom: c.QueryParam("date_from"),
		DateTo:   c.QueryParam("date_to"),
	}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	products, meta, err := h.API.ListProducts(ctx, token, listOptions(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	// Keep the local search index warm with whatever page we just saw.
	if h.Products != nil {
		if err := h.Products.UpsertProducts(ctx, products); err != nil {
			logging.FromContext(ctx).Warn("failed to index products", "error", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"data": products, "meta": meta})
}

func (h *CatalogHandler) SearchProducts(c echo.Context) error {
	if h.Products == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query error")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Window(page, size)

	total, products, err := h.Products.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	var product posapi.Product
	if err := c.Bind(&product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.API.CreateProduct(c.Request().Context(), token, product)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": created})
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var product posapi.Product
	if err := c.Bind(&product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.API.UpdateProduct(c.Request().Context(), token, id, product)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.API.DeleteProduct(c.Request().Context(), token, id); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// Categories

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	categories, meta, err := h.API.ListCategories(c.Request().Context(), token, listOptions(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": categories, "meta": meta})
}

func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	var category posapi.Category
	if err := c.Bind(&category); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.API.CreateCategory(c.Request().Context(), token, category)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": created})
}

func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var category posapi.Category
	if err := c.Bind(&category); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.API.UpdateCategory(c.Request().Context(), token, id, category)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.API.DeleteCategory(c.Request().Context(), token, id); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// Discounts

func (h *CatalogHandler) ListDiscounts(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	discounts, meta, err := h.API.ListDiscounts(c.Request().Context(), token, listOptions(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": discounts, "meta": meta})
}

func (h *CatalogHandler) CreateDiscount(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	var discount posapi.Discount
	if err := c.Bind(&discount); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.API.CreateDiscount(c.Request().Context(), token, discount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": created})
}

func (h *CatalogHandler) DeleteDiscount(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.API.DeleteDiscount(c.Request().Context(), token, id); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// Stock

func (h *CatalogHandler) ListStockProducts(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	stock, meta, err := h.API.ListStockProducts(c.Request().Context(), token, listOptions(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": stock, "meta": meta})
}

func (h *CatalogHandler) ListStockAdjustments(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	adjustments, meta, err := h.API.ListStockAdjustments(c.Request().Context(), token, listOptions(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": adjustments, "meta": meta})
}

func (h *CatalogHandler) CreateStockAdjustment(c echo.Context) error {
	token, err := upstreamToken(c, h.Sessions)
	if err != nil {
		return err
	}

	var adjustment posapi.StockAdjustment
	if err := c.Bind(&adjustment); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.API.CreateStockAdjustment(c.Request().Context(), token, adjustment)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"data": created})
}
