package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL. Las ventas y
// sus líneas se insertan dentro del mismo tx que los eventos de inventario.
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, outlet_id, COALESCE(customer_id, ''), total_amount, total_cost, total_profit,
	payment_method, cash_tendered, change_amount, status, created_at, voided_at`

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, outlet_id, customer_id, total_amount, total_cost, total_profit,
			payment_method, cash_tendered, change_amount, status, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.OutletID, sale.CustomerID, sale.TotalAmount, sale.TotalCost,
		sale.TotalProfit, sale.PaymentMethod, sale.CashTendered, sale.ChangeAmount,
		sale.Status, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de venta con precio y costo congelados.
func (r *SaleRepo) CreateLine(line *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (id, sale_id, product_id, product_name, quantity,
			unit_price, unit_cost, discount_amount, subtotal, profit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.SaleID, line.ProductID, line.ProductName, line.Quantity,
		line.UnitPrice, line.UnitCost, line.DiscountAmount, line.Subtotal, line.Profit,
	)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.get(`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la venta y bloquea la fila. La anulación lo usa
// para que la transición paid -> void sea única ante requests concurrentes.
func (r *SaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) {
	return r.get(`SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) get(query, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.OutletID, &s.CustomerID, &s.TotalAmount, &s.TotalCost, &s.TotalProfit,
		&s.PaymentMethod, &s.CashTendered, &s.ChangeAmount, &s.Status, &s.CreatedAt, &s.VoidedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetLinesBySaleID devuelve las líneas de una venta en orden de inserción.
func (r *SaleRepo) GetLinesBySaleID(saleID string) ([]*entity.SaleLine, error) {
	query := `SELECT id, sale_id, product_id, product_name, quantity,
			unit_price, unit_cost, discount_amount, subtotal, profit
		FROM sale_lines WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.ProductName, &l.Quantity,
			&l.UnitPrice, &l.UnitCost, &l.DiscountAmount, &l.Subtotal, &l.Profit); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// ListByOutlet lista las ventas del outlet en el rango [from, to), más
// recientes primero.
func (r *SaleRepo) ListByOutlet(outletID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE outlet_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, outletID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.OutletID, &s.CustomerID, &s.TotalAmount, &s.TotalCost,
			&s.TotalProfit, &s.PaymentMethod, &s.CashTendered, &s.ChangeAmount, &s.Status,
			&s.CreatedAt, &s.VoidedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}

// UpdateStatus cambia el estado de la venta (paid -> void). Los montos no
// se tocan nunca después del commit original.
func (r *SaleRepo) UpdateStatus(id, status string, voidedAt time.Time) error {
	query := `UPDATE sales SET status = $2, voided_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, voidedAt)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}
