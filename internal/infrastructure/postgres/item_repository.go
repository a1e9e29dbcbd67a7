package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (tablas items, item_taxes, stock_levels).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemsByCodesQuery = `
	SELECT i.code, i.name, i.uom, i.standard_rate, i.min_order_qty, i.max_order_qty, s.available_qty
	FROM items i
	LEFT JOIN (
		SELECT item_code, SUM(actual_qty) AS available_qty
		FROM stock_levels
		GROUP BY item_code
	) s ON s.item_code = i.code
	WHERE i.code = ANY($1) AND NOT i.disabled`

const taxesByCodesQuery = `
	SELECT item_code, rule_name, rate
	FROM item_taxes
	WHERE item_code = ANY($1)
	ORDER BY item_code, idx`

// ListByCodes obtiene los artículos activos y su desglose de impuestos en dos consultas.
func (r *ItemRepo) ListByCodes(ctx context.Context, codes []string) (map[string]*entity.Item, error) {
	codes = uniqueCodes(codes)
	items := make(map[string]*entity.Item, len(codes))
	if len(codes) == 0 {
		return items, nil
	}

	rows, err := r.q.Query(ctx, itemsByCodesQuery, codes)
	if err != nil {
		return nil, queryError("list items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.Item
		var minQty, maxQty, avail decimal.NullDecimal
		if err := rows.Scan(&it.Code, &it.Name, &it.UOM, &it.StandardRate, &minQty, &maxQty, &avail); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.MinOrderQty = nullable(minQty)
		it.MaxOrderQty = nullable(maxQty)
		it.AvailableQty = nullable(avail)
		items[it.Code] = &it
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if len(items) == 0 {
		return items, nil
	}

	taxRows, err := r.q.Query(ctx, taxesByCodesQuery, codes)
	if err != nil {
		return nil, queryError("list item taxes", err)
	}
	defer taxRows.Close()
	for taxRows.Next() {
		var code string
		var tc entity.TaxComponent
		if err := taxRows.Scan(&code, &tc.RuleName, &tc.Rate); err != nil {
			return nil, fmt.Errorf("scan item tax: %w", err)
		}
		if it, ok := items[code]; ok {
			it.TaxBreakup = append(it.TaxBreakup, tc)
		}
	}
	return items, taxRows.Err()
}
