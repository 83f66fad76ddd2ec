package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalEntryRequest body para POST /api/capital/entries.
type CapitalEntryRequest struct {
	Kind   string          `json:"kind" validate:"required,oneof=in out"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Note   string          `json:"note,omitempty"`
}

// CapitalBalanceResponse balance derivado del outlet tras la operación.
type CapitalBalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// CapitalEntryResponse asiento de capital.
type CapitalEntryResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CapitalEntryListResponse lista paginada de asientos.
type CapitalEntryListResponse struct {
	Items   []CapitalEntryResponse `json:"items"`
	Balance decimal.Decimal        `json:"balance"`
	Page    PageResponse           `json:"page"`
}
