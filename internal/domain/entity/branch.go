package entity

import "time"

// Branch representa una sucursal del restaurante.
type Branch struct {
	ID        string
	Name      string
	Address   string
	Active    bool
	CreatedAt time.Time
}
