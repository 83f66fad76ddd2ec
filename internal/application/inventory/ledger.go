// Package inventory implementa el ledger de stock dual (unidades llenas +
// envases vacíos). Toda mutación de InventoryState pasa por ApplyDelta: el
// invariante de no-negatividad y la escritura del log de auditoría se
// refuerzan en un solo lugar.
package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

// WarningEmptyStockUnderflow código del warning cuando el contador de vacíos
// habría quedado negativo y se recortó a cero. No es un error: la contabilidad
// de envases puede desfasarse de la realidad física (envases perdidos, canjes
// sin registrar) y no debe bloquear la operación.
const WarningEmptyStockUnderflow = "EMPTY_STOCK_UNDERFLOW"

// Delta un cambio de stock solicitado. ProductName solo se usa para mensajes
// de error; SaleID liga el evento a una venta cuando Reason es sale o return.
type Delta struct {
	OutletID    string
	ProductID   string
	ProductName string
	DeltaFilled int64
	DeltaEmpty  int64
	Reason      string
	SaleID      string
	Note        string
}

// SaleConsumption construye el delta de una venta: vender una unidad llena de
// categoría retornable la convierte en un vacío pendiente de canje; en
// categoría general solo descuenta llenas.
func SaleConsumption(product *entity.Product, outletID, saleID string, qty int64) Delta {
	d := Delta{
		OutletID:    outletID,
		ProductID:   product.ID,
		ProductName: product.Name,
		DeltaFilled: -qty,
		Reason:      entity.ReasonSale,
		SaleID:      saleID,
	}
	if product.IsReturnable() {
		d.DeltaEmpty = qty
	}
	return d
}

// RestockDelta construye el delta de una recepción: entra stock lleno y, en
// retornables, se asume canje de vacíos por hasta la misma cantidad. Si llegan
// más llenas que vacíos disponibles, el clamp del ledger recorta a cero y
// reporta el faltante como warning.
func RestockDelta(product *entity.Product, outletID string, qty int64, note string) Delta {
	d := Delta{
		OutletID:    outletID,
		ProductID:   product.ID,
		ProductName: product.Name,
		DeltaFilled: qty,
		Reason:      entity.ReasonManualRestock,
		Note:        note,
	}
	if product.IsReturnable() {
		d.DeltaEmpty = -qty
	}
	return d
}

// ReturnDelta construye el delta inverso de una línea vendida (anulación de
// venta): vuelve la unidad llena y se descuenta el vacío que la venta había
// generado.
func ReturnDelta(product *entity.Product, outletID, saleID string, qty int64) Delta {
	d := Delta{
		OutletID:    outletID,
		ProductID:   product.ID,
		ProductName: product.Name,
		DeltaFilled: qty,
		Reason:      entity.ReasonReturn,
		SaleID:      saleID,
	}
	if product.IsReturnable() {
		d.DeltaEmpty = -qty
	}
	return d
}

// ApplyDelta aplica un delta sobre la fila bloqueada (GetForUpdate) y escribe
// exactamente un InventoryEvent con los deltas efectivamente aplicados
// (post-clamp). Llamar siempre dentro de una transacción.
//
//   - StockFilled < 0 post-delta es fallo duro: nada se escribe.
//   - StockEmpty < 0 post-delta se recorta a cero y degrada a warning.
func ApplyDelta(
	stockRepo repository.InventoryStateRepository,
	eventRepo repository.InventoryEventRepository,
	d Delta,
	now time.Time,
) (*entity.InventoryState, string, error) {
	state, err := stockRepo.GetForUpdate(d.OutletID, d.ProductID)
	if err != nil {
		return nil, "", err
	}

	newFilled := state.StockFilled + d.DeltaFilled
	if newFilled < 0 {
		return nil, "", &domain.InsufficientStockError{Shortages: []domain.StockShortage{{
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Available:   state.StockFilled,
			Requested:   -d.DeltaFilled,
		}}}
	}

	appliedEmpty := d.DeltaEmpty
	warning := ""
	if state.StockEmpty+d.DeltaEmpty < 0 {
		appliedEmpty = -state.StockEmpty
		warning = WarningEmptyStockUnderflow
	}

	state.StockFilled = newFilled
	state.StockEmpty += appliedEmpty
	state.UpdatedAt = now
	if err := stockRepo.Upsert(state); err != nil {
		return nil, "", err
	}

	event := &entity.InventoryEvent{
		ID:          uuid.New().String(),
		OutletID:    d.OutletID,
		ProductID:   d.ProductID,
		DeltaFilled: d.DeltaFilled,
		DeltaEmpty:  appliedEmpty,
		Reason:      d.Reason,
		SaleID:      d.SaleID,
		Note:        d.Note,
		CreatedAt:   now,
	}
	if err := eventRepo.Create(event); err != nil {
		return nil, "", err
	}
	return state, warning, nil
}
