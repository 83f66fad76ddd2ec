package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

var _ repository.InventoryEventRepository = (*InventoryEventRepo)(nil)

// InventoryEventRepo implementación de InventoryEventRepository sobre
// PostgreSQL. La tabla es append-only: solo INSERT y SELECT.
type InventoryEventRepo struct {
	q Querier
}

func NewInventoryEventRepository(q Querier) *InventoryEventRepo {
	return &InventoryEventRepo{q: q}
}

// Create inserta un evento de inventario. Los deltas llegan ya post-clamp.
func (r *InventoryEventRepo) Create(event *entity.InventoryEvent) error {
	query := `
		INSERT INTO inventory_events (id, outlet_id, product_id, delta_filled, delta_empty, reason, sale_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.OutletID, event.ProductID, event.DeltaFilled,
		event.DeltaEmpty, event.Reason, event.SaleID, event.Note, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory event: %w", err)
	}
	return nil
}

// ListByProduct lista los eventos de un producto, del más reciente al más antiguo.
func (r *InventoryEventRepo) ListByProduct(outletID, productID string, limit, offset int) ([]*entity.InventoryEvent, error) {
	query := `SELECT id, outlet_id, product_id, delta_filled, delta_empty, reason, COALESCE(sale_id, ''), note, created_at
		FROM inventory_events
		WHERE outlet_id = $1 AND product_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, outletID, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory events: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryEvent
	for rows.Next() {
		var e entity.InventoryEvent
		if err := rows.Scan(&e.ID, &e.OutletID, &e.ProductID, &e.DeltaFilled, &e.DeltaEmpty, &e.Reason, &e.SaleID, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
