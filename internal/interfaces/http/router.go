package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Queries   InventoryQueries
	Adjuster  StockAdjuster
	Pricing   PriceAverager
	Units     UnitStatusChanger
	Reports   InventoryReporter
	JWTSecret string
}

// Router registra las rutas de la API. Todo /api/inventory requiere Bearer Token;
// las escrituras de stock y precios quedan para admin y estoquista.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	inv := protected.Group("/inventory")
	h := NewInventoryHandler(deps.Queries, deps.Adjuster, deps.Pricing, deps.Units, deps.Reports)
	stockWriters := RequireRole(RoleAdmin, RoleEstoquista)

	inv.Get("/groups", h.ListGroups)
	inv.Get("/stats", h.Stats)
	inv.Get("/report.pdf", h.DownloadReport)
	inv.Get("/movements", h.ListMovements)
	inv.Get("/price-history", h.ListPriceHistory)

	inv.Post("/adjustments", stockWriters, h.AdjustStock)
	inv.Post("/entries", stockWriters, h.RegisterEntry)
	inv.Post("/average-prices", stockWriters, h.UpdateAveragePrices)

	// el vendedor marca unidades como vendidas o reservadas
	inv.Patch("/units/:id/status", RequireRole(RoleAdmin, RoleEstoquista, RoleVendedor), h.ChangeUnitStatus)
}
