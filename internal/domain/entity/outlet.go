package entity

import "time"

// Outlet representa un punto de venta / depósito (tenant del sistema).
// Todas las entidades del núcleo están particionadas por OutletID.
type Outlet struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
