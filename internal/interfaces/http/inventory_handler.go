package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mercadodovale/estoque-api/internal/application/dto"
	appinv "github.com/mercadodovale/estoque-api/internal/application/inventory"
	"github.com/mercadodovale/estoque-api/internal/domain"
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	dominv "github.com/mercadodovale/estoque-api/internal/domain/inventory"
)

// Puertos que consume el handler (implementados por los casos de uso de application/inventory).
type (
	InventoryQueries interface {
		ListGroups(ctx context.Context, f dominv.GroupFilters) ([]entity.InventoryGroup, error)
		Stats(ctx context.Context, f dominv.GroupFilters) (entity.InventoryStats, error)
	}
	StockAdjuster interface {
		AdjustStock(ctx context.Context, in appinv.AdjustmentInput) (*entity.StockMovement, error)
		ListMovements(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
	}
	PriceAverager interface {
		UpdateAveragePrices(ctx context.Context, in appinv.StockEntryInput) (*appinv.AverageResult, error)
		RegisterStockEntry(ctx context.Context, in appinv.NewRecordInput) (*entity.ProductRecord, *appinv.AverageResult, error)
		ListPriceHistory(ctx context.Context, key entity.VariationKey, limit int) ([]*entity.PriceHistory, error)
	}
	UnitStatusChanger interface {
		ChangeUnitStatus(ctx context.Context, productID, status string) (*entity.ProductRecord, error)
	}
	InventoryReporter interface {
		DownloadInventoryPDF(ctx context.Context, f dominv.GroupFilters) ([]byte, string, error)
	}
)

// InventoryHandler maneja las peticiones HTTP de inventario (protegido).
type InventoryHandler struct {
	queries  InventoryQueries
	adjuster StockAdjuster
	pricing  PriceAverager
	units    UnitStatusChanger
	reports  InventoryReporter
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	queries InventoryQueries,
	adjuster StockAdjuster,
	pricing PriceAverager,
	units UnitStatusChanger,
	reports InventoryReporter,
) *InventoryHandler {
	return &InventoryHandler{queries: queries, adjuster: adjuster, pricing: pricing, units: units, reports: reports}
}

// ListGroups godoc
// @Summary      Vista agrupada del inventario
// @Description  Unidades serializadas agrupadas por marca/modelo/color/almacenamiento; ítems a granel uno por grupo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search               query  string  false  "Busca en nombre, SKU, IMEI y serie"
// @Param        category_id          query  string  false  "Categoría"
// @Param        brand                query  string  false  "Marca (sin distinguir mayúsculas)"
// @Param        status               query  string  false  "available, reserved, sold, maintenance, defective"
// @Param        only_available       query  bool    false  "Solo grupos con unidades disponibles"
// @Param        only_serialized      query  bool    false  "Solo grupos serializados"
// @Param        only_non_serialized  query  bool    false  "Solo grupos a granel"
// @Param        sort_by              query  string  false  "name, sku, quantity, value"
// @Param        sort_order           query  string  false  "asc, desc"
// @Success      200  {object}  dto.InventoryGroupsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/groups [get]
func (h *InventoryHandler) ListGroups(c *fiber.Ctx) error {
	var q dto.GroupFiltersQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
	}
	groups, err := h.queries.ListGroups(c.Context(), toGroupFilters(q))
	if err != nil {
		return writeError(c, err)
	}
	out := dto.InventoryGroupsResponse{Total: len(groups), Groups: make([]dto.InventoryGroupResponse, 0, len(groups))}
	for _, g := range groups {
		out.Groups = append(out.Groups, toGroupResponse(g))
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Resumen del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "Busca en nombre, SKU, IMEI y serie"
// @Param        category_id  query  string  false  "Categoría"
// @Param        brand        query  string  false  "Marca"
// @Param        status       query  string  false  "Estado de unidad"
// @Success      200  {object}  dto.InventoryStatsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/stats [get]
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	var q dto.GroupFiltersQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
	}
	st, err := h.queries.Stats(c.Context(), toGroupFilters(q))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStatsResponse(st))
}

// DownloadReport godoc
// @Summary      Reporte PDF del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        search      query  string  false  "Mismos filtros que /groups"
// @Param        sort_by     query  string  false  "name, sku, quantity, value"
// @Param        sort_order  query  string  false  "asc, desc"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/report.pdf [get]
func (h *InventoryHandler) DownloadReport(c *fiber.Ctx) error {
	var q dto.GroupFiltersQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
	}
	pdf, filename, err := h.reports.DownloadInventoryPDF(c.Context(), toGroupFilters(q))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// AdjustStock godoc
// @Summary      Ajustar stock de un ítem a granel
// @Description  in suma, out resta (sin bajar de cero), adjustment fija el valor. Registra el movimiento en la misma transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id, type, quantity, reason"
// @Success      201  {object}  dto.StockMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	productID, err := parseProductID(in.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	mov, err := h.adjuster.AdjustStock(c.Context(), appinv.AdjustmentInput{
		ProductID:   productID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Notes:       in.Notes,
		ReferenceID: in.ReferenceID,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// ListMovements godoc
// @Summary      Ledger de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "Producto"
// @Param        limit       query  int     false  "Máx. 100 (default 20)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	productID, err := parseProductID(c.Query("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.adjuster.ListMovements(c.Context(), productID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.MovementListResponse{
		Items: make([]dto.StockMovementResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, m := range list {
		out.Items = append(out.Items, toMovementResponse(m))
	}
	return c.JSON(out)
}

// RegisterEntry godoc
// @Summary      Alta de registro con entrada de stock
// @Description  Crea el registro y, si trae model_id, ram y storage, recalcula el precio promedio de la variación.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockEntryRequest  true  "Registro y precios en centavos"
// @Success      201  {object}  dto.StockEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.StockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, res, err := h.pricing.RegisterStockEntry(c.Context(), toNewRecordInput(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockEntryResponse{
		Product:  toProductResponse(record),
		Averages: toAverageResponse(res),
	})
}

// UpdateAveragePrices godoc
// @Summary      Recalcular precios promedio de una variación
// @Description  Promedio ponderado por stock de costo, varejo, revenda y atacado; se escribe en todos los registros activos de la variación.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AveragePriceRequest  true  "model_id, ram, storage, stock_quantity y precios de la entrada"
// @Success      200  {object}  dto.AverageResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/average-prices [post]
func (h *InventoryHandler) UpdateAveragePrices(c *fiber.Ctx) error {
	var in dto.AveragePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.pricing.UpdateAveragePrices(c.Context(), appinv.StockEntryInput{
		ModelID:       strings.TrimSpace(in.ModelID),
		RAM:           strings.TrimSpace(in.RAM),
		Storage:       strings.TrimSpace(in.Storage),
		StockQuantity: in.StockQuantity,
		Prices:        fromPricesDTO(in.PricesDTO),
	})
	if err != nil {
		return writeError(c, err)
	}
	if res == nil {
		return c.JSON(fiber.Map{"skipped": true, "message": "variación incompleta: no se recalculan promedios"})
	}
	return c.JSON(toAverageResponse(res))
}

// ListPriceHistory godoc
// @Summary      Historial de promedios de una variación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        model_id  query  string  true   "Modelo"
// @Param        ram       query  string  true   "RAM"
// @Param        storage   query  string  true   "Almacenamiento"
// @Param        limit     query  int     false  "Máx. 100 (default 20)"
// @Success      200  {array}   dto.PriceHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/price-history [get]
func (h *InventoryHandler) ListPriceHistory(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit")}
	page.DefaultPage()
	key := entity.VariationKey{ModelID: c.Query("model_id"), RAM: c.Query("ram"), Storage: c.Query("storage")}
	list, err := h.pricing.ListPriceHistory(c.Context(), key, page.Limit)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.PriceHistoryResponse, 0, len(list))
	for _, ph := range list {
		out = append(out, toPriceHistoryResponse(ph))
	}
	return c.JSON(out)
}

// ChangeUnitStatus godoc
// @Summary      Cambiar estado de una unidad serializada
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del registro"
// @Param        body  body  dto.UnitStatusRequest  true  "unit_status"
// @Success      200  {object}  dto.ProductRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/units/{id}/status [patch]
func (h *InventoryHandler) ChangeUnitStatus(c *fiber.Ctx) error {
	var in dto.UnitStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	productID, err := parseProductID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	p, err := h.units.ChangeUnitStatus(c.Context(), productID, in.UnitStatus)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toProductResponse(p))
}

// parseProductID products.id es UUID: un id mal formado es un 400, no un error de Postgres.
// Devuelve la forma canónica (minúsculas, con guiones).
func parseProductID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", domain.ErrInvalidInput
	}
	return id.String(), nil
}

// writeError traduce errores de dominio a HTTP.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: err.Error()})
	case errors.Is(err, domain.ErrMissingVariation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_VARIATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	case errors.Is(err, domain.ErrNotTrackable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_TRACKABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotSerialized):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_SERIALIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
