package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento de capital.
const (
	CapitalIn  = "in"
	CapitalOut = "out"
)

// CapitalEntry asiento append-only del capital de trabajo de un outlet.
// Nunca se edita ni se borra; el balance es siempre sum(in) - sum(out),
// reproducible por replay completo.
type CapitalEntry struct {
	ID        string
	OutletID  string
	Kind      string // in, out
	Amount    decimal.Decimal // > 0
	Note      string
	CreatedAt time.Time
}
