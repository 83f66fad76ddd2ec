package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

var _ repository.OutletRepository = (*OutletRepo)(nil)

// OutletRepo implementación de OutletRepository sobre PostgreSQL (usable con pool o tx).
type OutletRepo struct {
	q Querier
}

// NewOutletRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOutletRepository(q Querier) *OutletRepo {
	return &OutletRepo{q: q}
}

const outletColumns = `id, name, address, phone, status, created_at, updated_at`

// Create persiste un nuevo outlet.
func (r *OutletRepo) Create(outlet *entity.Outlet) error {
	query := `
		INSERT INTO outlets (id, name, address, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		outlet.ID, outlet.Name, outlet.Address, outlet.Phone, outlet.Status,
		outlet.CreatedAt, outlet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert outlet: %w", err)
	}
	return nil
}

// GetByID obtiene un outlet por ID.
func (r *OutletRepo) GetByID(id string) (*entity.Outlet, error) {
	return r.get(`SELECT `+outletColumns+` FROM outlets WHERE id = $1`, id)
}

// GetForUpdate obtiene el outlet y bloquea la fila (SELECT FOR UPDATE).
// El ledger de capital lo usa para serializar balance-check + insert.
func (r *OutletRepo) GetForUpdate(id string) (*entity.Outlet, error) {
	return r.get(`SELECT `+outletColumns+` FROM outlets WHERE id = $1 FOR UPDATE`, id)
}

func (r *OutletRepo) get(query, id string) (*entity.Outlet, error) {
	var o entity.Outlet
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Name, &o.Address, &o.Phone, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outlet: %w", err)
	}
	return &o, nil
}

// Update actualiza los datos editables del outlet.
func (r *OutletRepo) Update(outlet *entity.Outlet) error {
	query := `
		UPDATE outlets SET name = $2, address = $3, phone = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		outlet.ID, outlet.Name, outlet.Address, outlet.Phone, outlet.Status, outlet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update outlet: %w", err)
	}
	return nil
}

// List lista outlets con paginación.
func (r *OutletRepo) List(limit, offset int) ([]*entity.Outlet, error) {
	query := `SELECT ` + outletColumns + ` FROM outlets ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list outlets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Outlet
	for rows.Next() {
		var o entity.Outlet
		if err := rows.Scan(&o.ID, &o.Name, &o.Address, &o.Phone, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan outlet: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
