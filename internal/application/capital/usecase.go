// Package capital implementa el ledger de capital de trabajo por outlet:
// asientos in/out append-only y balance derivado sum(in) - sum(out).
package capital

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Puntoventa-api/internal/application/dto"
	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

// TTL del balance cacheado. Corto: el cache solo amortigua lecturas de
// dashboard, la verdad sigue siendo el replay de asientos.
const balanceCacheTTL = 5 * time.Minute

// UseCase ledger de capital con cache de balance opcional.
type UseCase struct {
	txRunner    TxRunner
	capitalRepo repository.CapitalRepository
	cache       BalanceCache // nil = sin cache
}

// NewUseCase construye el ledger. capitalRepo se usa para lecturas fuera de
// transacción; RecordEntry escribe siempre vía txRunner.
func NewUseCase(txRunner TxRunner, capitalRepo repository.CapitalRepository, cache BalanceCache) *UseCase {
	return &UseCase{txRunner: txRunner, capitalRepo: capitalRepo, cache: cache}
}

// RecordEntry registra un asiento in/out. Amount debe ser > 0. Un out que
// dejaría el balance negativo se rechaza con ErrInsufficientCapital antes de
// escribir fila alguna; el chequeo corre con la fila del outlet bloqueada en
// la misma transacción que el insert.
func (uc *UseCase) RecordEntry(ctx context.Context, outletID string, in dto.CapitalEntryRequest) (*dto.CapitalBalanceResponse, error) {
	if in.Kind != entity.CapitalIn && in.Kind != entity.CapitalOut {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var newBalance decimal.Decimal
	err := uc.txRunner.RunCapital(ctx, func(
		outletRepo repository.OutletRepository,
		capitalRepo repository.CapitalRepository,
	) error {
		// Bloquea la fila del outlet: serializa balance-check + insert frente
		// a otros asientos concurrentes del mismo outlet.
		outlet, err := outletRepo.GetForUpdate(outletID)
		if err != nil {
			return err
		}
		if outlet == nil {
			return domain.ErrNotFound
		}
		balance, err := capitalRepo.SumBalance(outletID)
		if err != nil {
			return err
		}
		if in.Kind == entity.CapitalOut && in.Amount.GreaterThan(balance) {
			return domain.ErrInsufficientCapital
		}
		entry := &entity.CapitalEntry{
			ID:        uuid.New().String(),
			OutletID:  outletID,
			Kind:      in.Kind,
			Amount:    in.Amount,
			Note:      in.Note,
			CreatedAt: now,
		}
		if err := capitalRepo.Create(entry); err != nil {
			return err
		}
		if in.Kind == entity.CapitalIn {
			newBalance = balance.Add(in.Amount)
		} else {
			newBalance = balance.Sub(in.Amount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, outletID); err != nil {
			log.Warn().Err(err).Str("outlet_id", outletID).Msg("invalidar cache de balance")
		}
	}
	return &dto.CapitalBalanceResponse{Balance: newBalance}, nil
}

// GetBalance devuelve el balance derivado del outlet, con cache read-through.
func (uc *UseCase) GetBalance(ctx context.Context, outletID string) (*dto.CapitalBalanceResponse, error) {
	if uc.cache != nil {
		if balance, ok, err := uc.cache.Get(ctx, outletID); err == nil && ok {
			return &dto.CapitalBalanceResponse{Balance: balance}, nil
		}
	}
	balance, err := uc.capitalRepo.SumBalance(outletID)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, outletID, balance, balanceCacheTTL); err != nil {
			log.Warn().Err(err).Str("outlet_id", outletID).Msg("cachear balance")
		}
	}
	return &dto.CapitalBalanceResponse{Balance: balance}, nil
}

// ListEntries lista los asientos del outlet (más reciente primero) junto con
// el balance actual.
func (uc *UseCase) ListEntries(ctx context.Context, outletID string, limit, offset int) (*dto.CapitalEntryListResponse, error) {
	entries, err := uc.capitalRepo.ListByOutlet(outletID, limit, offset)
	if err != nil {
		return nil, err
	}
	balance, err := uc.capitalRepo.SumBalance(outletID)
	if err != nil {
		return nil, err
	}
	out := &dto.CapitalEntryListResponse{
		Items:   make([]dto.CapitalEntryResponse, 0, len(entries)),
		Balance: balance,
		Page:    dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, e := range entries {
		out.Items = append(out.Items, dto.CapitalEntryResponse{
			ID:        e.ID,
			Kind:      e.Kind,
			Amount:    e.Amount,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}
