package model

import "time"

// Tenant is an isolated customer organization. All items, warehouses and
// users reference exactly one tenant; data never crosses tenant boundaries.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
