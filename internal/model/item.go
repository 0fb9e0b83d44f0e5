package model

import "time"

// InventoryItem is a stock record owned by exactly one tenant and stored in
// zero or more warehouses. TenantID is stamped by the server at creation time
// and never changes afterwards.
type InventoryItem struct {
	ID           int64     `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	Quantity     int       `json:"quantity"`
	Category     string    `json:"category,omitempty"`
	WarehouseIDs []int64   `json:"warehouse_ids,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
