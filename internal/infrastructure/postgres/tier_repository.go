package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

var _ repository.TierRepository = (*TierRepo)(nil)

// TierRepo implementación de TierRepository sobre PostgreSQL. Maneja los
// tiers de cliente y sus overrides de precio por producto.
type TierRepo struct {
	q Querier
}

func NewTierRepository(q Querier) *TierRepo {
	return &TierRepo{q: q}
}

// Create persiste un nuevo tier.
func (r *TierRepo) Create(tier *entity.CustomerTier) error {
	query := `
		INSERT INTO customer_tiers (id, outlet_id, name, global_discount_percent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		tier.ID, tier.OutletID, tier.Name, tier.GlobalDiscountPercent,
		tier.CreatedAt, tier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tier: %w", err)
	}
	return nil
}

// GetByID obtiene un tier por ID.
func (r *TierRepo) GetByID(id string) (*entity.CustomerTier, error) {
	var t entity.CustomerTier
	query := `SELECT id, outlet_id, name, global_discount_percent, created_at, updated_at
		FROM customer_tiers WHERE id = $1`
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.OutletID, &t.Name, &t.GlobalDiscountPercent, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tier: %w", err)
	}
	return &t, nil
}

// ListByOutlet lista los tiers del outlet.
func (r *TierRepo) ListByOutlet(outletID string) ([]*entity.CustomerTier, error) {
	query := `SELECT id, outlet_id, name, global_discount_percent, created_at, updated_at
		FROM customer_tiers WHERE outlet_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, outletID)
	if err != nil {
		return nil, fmt.Errorf("list tiers: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomerTier
	for rows.Next() {
		var t entity.CustomerTier
		if err := rows.Scan(&t.ID, &t.OutletID, &t.Name, &t.GlobalDiscountPercent, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tier: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza nombre y descuento global del tier.
func (r *TierRepo) Update(tier *entity.CustomerTier) error {
	query := `
		UPDATE customer_tiers SET name = $2, global_discount_percent = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		tier.ID, tier.Name, tier.GlobalDiscountPercent, tier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tier: %w", err)
	}
	return nil
}

// Delete elimina un tier y, por FK en cascada, sus overrides.
func (r *TierRepo) Delete(id string) error {
	ct, err := r.q.Exec(context.Background(), `DELETE FROM customer_tiers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tier: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpsertOverride crea o reemplaza el override de la tripleta
// (outlet, producto, tier). Máximo uno por constraint único.
func (r *TierRepo) UpsertOverride(ov *entity.TierPriceOverride) error {
	query := `
		INSERT INTO tier_price_overrides (id, outlet_id, product_id, tier_id, discount_kind, discount_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (outlet_id, product_id, tier_id) DO UPDATE
		SET discount_kind = EXCLUDED.discount_kind,
		    discount_value = EXCLUDED.discount_value,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		ov.ID, ov.OutletID, ov.ProductID, ov.TierID, ov.DiscountKind,
		ov.DiscountValue, ov.CreatedAt, ov.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert tier override: %w", err)
	}
	return nil
}

// GetOverride obtiene el override de la tripleta, nil si no existe.
func (r *TierRepo) GetOverride(outletID, productID, tierID string) (*entity.TierPriceOverride, error) {
	var ov entity.TierPriceOverride
	query := `SELECT id, outlet_id, product_id, tier_id, discount_kind, discount_value, created_at, updated_at
		FROM tier_price_overrides WHERE outlet_id = $1 AND product_id = $2 AND tier_id = $3`
	err := r.q.QueryRow(context.Background(), query, outletID, productID, tierID).Scan(
		&ov.ID, &ov.OutletID, &ov.ProductID, &ov.TierID, &ov.DiscountKind,
		&ov.DiscountValue, &ov.CreatedAt, &ov.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tier override: %w", err)
	}
	return &ov, nil
}

// ListOverridesByTier lista los overrides vigentes de un tier en el outlet.
func (r *TierRepo) ListOverridesByTier(outletID, tierID string) ([]*entity.TierPriceOverride, error) {
	query := `SELECT id, outlet_id, product_id, tier_id, discount_kind, discount_value, created_at, updated_at
		FROM tier_price_overrides WHERE outlet_id = $1 AND tier_id = $2 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, outletID, tierID)
	if err != nil {
		return nil, fmt.Errorf("list tier overrides: %w", err)
	}
	defer rows.Close()
	var list []*entity.TierPriceOverride
	for rows.Next() {
		var ov entity.TierPriceOverride
		if err := rows.Scan(&ov.ID, &ov.OutletID, &ov.ProductID, &ov.TierID, &ov.DiscountKind, &ov.DiscountValue, &ov.CreatedAt, &ov.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tier override: %w", err)
		}
		list = append(list, &ov)
	}
	return list, rows.Err()
}

// DeleteOverride elimina el override de la tripleta.
func (r *TierRepo) DeleteOverride(outletID, productID, tierID string) error {
	query := `DELETE FROM tier_price_overrides WHERE outlet_id = $1 AND product_id = $2 AND tier_id = $3`
	ct, err := r.q.Exec(context.Background(), query, outletID, productID, tierID)
	if err != nil {
		return fmt.Errorf("delete tier override: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
