package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/mercadodovale/estoque-api/internal/domain"
	"github.com/mercadodovale/estoque-api/internal/domain/entity"
	"github.com/mercadodovale/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productColumns orden de columnas compartido por todos los SELECT (ver scanProduct).
const productColumns = `id, COALESCE(model_id, ''), COALESCE(category_id, ''), name, COALESCE(sku, ''),
	COALESCE(brand, ''), COALESCE(model, ''), specs, COALESCE(unit_status, ''), status,
	stock_quantity, track_inventory, price_cost, price_retail, price_reseller, price_wholesale,
	COALESCE(notes, ''), created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo registro.
func (r *ProductRepo) Create(ctx context.Context, p *entity.ProductRecord) error {
	query := `
		INSERT INTO products (id, model_id, category_id, name, sku, brand, model, specs, unit_status, status,
			stock_quantity, track_inventory, price_cost, price_retail, price_reseller, price_wholesale,
			notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		p.ID, nullable(p.ModelID), nullable(p.CategoryID), p.Name, nullable(p.SKU),
		nullable(p.Brand), nullable(p.Model), p.Specs, nullable(p.UnitStatus), p.Status,
		p.StockQuantity, p.TrackInventory, p.Prices.Cost, p.Prices.Retail, p.Prices.Reseller, p.Prices.Wholesale,
		nullable(p.Notes), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.ProductRecord, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductRecord, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query, id string) (*entity.ProductRecord, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListActive lista los registros activos empujando al WHERE los filtros de igualdad.
// Orden estable por created_at, id: la agrupación respeta el orden de primera aparición.
func (r *ProductRepo) ListActive(ctx context.Context, q repository.RecordQuery) ([]entity.ProductRecord, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE status = 'active'`
	var args []any
	pos := 1
	if q.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", pos)
		args = append(args, q.CategoryID)
		pos++
	}
	if q.Brand != "" {
		query += fmt.Sprintf(" AND lower(brand) = lower($%d)", pos)
		args = append(args, q.Brand)
		pos++
	}
	if q.UnitStatus != "" {
		query += fmt.Sprintf(" AND COALESCE(NULLIF(unit_status, ''), 'available') = $%d", pos)
		args = append(args, q.UnitStatus)
	}
	query += " ORDER BY created_at, id"
	return r.list(ctx, "list active products", query, args...)
}

// ListActiveByVariation lista los registros activos de una variación (model_id, specs.ram, specs.storage).
func (r *ProductRepo) ListActiveByVariation(ctx context.Context, key entity.VariationKey, forUpdate bool) ([]entity.ProductRecord, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + productColumns + ` FROM products
		WHERE status = 'active' AND model_id = $1 AND specs->>'ram' = $2 AND specs->>'storage' = $3
		ORDER BY created_at, id`)
	if forUpdate {
		b.WriteString(" FOR UPDATE")
	}
	return r.list(ctx, "list variation", b.String(), key.ModelID, key.RAM, key.Storage)
}

// LockVariation toma un advisory lock transaccional sobre la clave de variación.
// Cubre también la primera entrada de una variación, cuando FOR UPDATE no tiene filas que bloquear.
func (r *ProductRepo) LockVariation(ctx context.Context, key entity.VariationKey) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key.String()); err != nil {
		return fmt.Errorf("lock variation %s: %w", key, err)
	}
	return nil
}

// UpdateStockQuantity fija la cantidad a granel de un registro.
func (r *ProductRepo) UpdateStockQuantity(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePrices sobrescribe los cuatro precios de todos los ids en un solo UPDATE.
func (r *ProductRepo) UpdatePrices(ctx context.Context, ids []string, prices entity.Prices) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		UPDATE products
		SET price_cost = $1, price_retail = $2, price_reseller = $3, price_wholesale = $4, updated_at = now()
		WHERE id = ANY($5)`,
		prices.Cost, prices.Retail, prices.Reseller, prices.Wholesale, ids,
	)
	if err != nil {
		return fmt.Errorf("update prices: %w", err)
	}
	return nil
}

// UpdateUnitStatus cambia el estado de una unidad serializada.
func (r *ProductRepo) UpdateUnitStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET unit_status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update unit status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]entity.ProductRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []entity.ProductRecord
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

// scanProduct lee una fila con el orden de productColumns. specs (JSONB) se decodifica directo en entity.Specs.
func scanProduct(row pgx.Row) (*entity.ProductRecord, error) {
	var p entity.ProductRecord
	err := row.Scan(
		&p.ID, &p.ModelID, &p.CategoryID, &p.Name, &p.SKU,
		&p.Brand, &p.Model, &p.Specs, &p.UnitStatus, &p.Status,
		&p.StockQuantity, &p.TrackInventory, &p.Prices.Cost, &p.Prices.Retail, &p.Prices.Reseller, &p.Prices.Wholesale,
		&p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
