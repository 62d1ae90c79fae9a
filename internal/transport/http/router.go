package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vincentputra/pos-app-new/internal/guard"
	"github.com/vincentputra/pos-app-new/internal/handlers"
)

type Deps struct {
	Guard              *guard.Guard
	AuthHandler        *handlers.AuthHandler
	CartHandler        *handlers.CartHandler
	CheckoutHandler    *handlers.CheckoutHandler
	CatalogHandler     *handlers.CatalogHandler
	StaffHandler       *handlers.StaffHandler
	ShiftHandler       *handlers.ShiftHandler
	TransactionHandler *handlers.TransactionHandler
}

// Register wires every route behind the guard except the health probes.
// Paths are flat, page-style, because the guard's redirect and admin rules
// are written against the paths the UI navigates to.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	g := e.Group("", d.Guard.Middleware)

	g.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	g.POST("/login", d.AuthHandler.Login)
	g.POST("/logout", d.AuthHandler.Logout)
	g.GET("/session", d.AuthHandler.Session)
	g.POST("/session/lock", d.AuthHandler.Lock)
	g.POST("/session/unlock", d.AuthHandler.Unlock)

	g.GET("/cart", d.CartHandler.GetCart)
	g.POST("/cart", d.CartHandler.AddItem)
	g.PATCH("/cart/:id", d.CartHandler.UpdateQuantity)
	g.DELETE("/cart/:id", d.CartHandler.RemoveItem)
	g.DELETE("/cart", d.CartHandler.Reset)

	g.POST("/checkout", d.CheckoutHandler.Checkout)

	g.GET("/products", d.CatalogHandler.ListProducts)
	g.GET("/products/search", d.CatalogHandler.SearchProducts)
	g.POST("/products", d.CatalogHandler.CreateProduct)
	g.PUT("/products/:id", d.CatalogHandler.UpdateProduct)
	g.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)

	g.GET("/categories", d.CatalogHandler.ListCategories)
	g.POST("/categories", d.CatalogHandler.CreateCategory)
	g.PUT("/categories/:id", d.CatalogHandler.UpdateCategory)
	g.DELETE("/categories/:id", d.CatalogHandler.DeleteCategory)

	g.GET("/discounts", d.CatalogHandler.ListDiscounts)
	g.POST("/discounts", d.CatalogHandler.CreateDiscount)
	g.DELETE("/discounts/:id", d.CatalogHandler.DeleteDiscount)

	g.GET("/stock", d.CatalogHandler.ListStockProducts)
	g.GET("/stock/adjustments", d.CatalogHandler.ListStockAdjustments)
	g.POST("/stock/adjustments", d.CatalogHandler.CreateStockAdjustment)

	// Employee management; the guard 404s these for cashiers.
	g.GET("/employees", d.StaffHandler.ListUsers)
	g.POST("/employees", d.StaffHandler.CreateUser)
	g.PUT("/employees/:id", d.StaffHandler.UpdateUser)
	g.DELETE("/employees/:id", d.StaffHandler.DeleteUser)
	g.GET("/employees/role/:role", d.StaffHandler.ListUsersByRole)
	g.GET("/employees/roles", d.StaffHandler.Roles)

	g.GET("/shifts", d.ShiftHandler.List)
	g.GET("/shifts/me", d.ShiftHandler.MyShift)
	g.POST("/shifts", d.ShiftHandler.Open)
	g.PUT("/shifts/:id", d.ShiftHandler.Close)
	g.GET("/shifts/:id", d.ShiftHandler.Detail)
	g.GET("/shifts/:id/histories", d.ShiftHandler.Histories)
	g.POST("/shifts/:id/histories", d.ShiftHandler.CreateHistory)

	g.GET("/transactions", d.TransactionHandler.List)
	g.GET("/transactions/options", d.TransactionHandler.Options)
	g.GET("/transactions/journal", d.TransactionHandler.LocalJournal)
}
