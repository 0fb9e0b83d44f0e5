package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mlakar/zaloga/internal/model"
)

// CreateWarehouse creates a warehouse for a tenant.
func CreateWarehouse(ctx context.Context, db *sql.DB, tenantID, name, location string) (*model.Warehouse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO warehouses (tenant_id, name, location) VALUES (?, ?, ?)`,
		tenantID, name, location,
	)
	if err != nil {
		return nil, fmt.Errorf("creating warehouse: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting warehouse id: %w", err)
	}

	return GetWarehouse(ctx, db, tenantID, id)
}

// GetWarehouse returns a tenant's warehouse by ID.
func GetWarehouse(ctx context.Context, db *sql.DB, tenantID string, id int64) (*model.Warehouse, error) {
	w := &model.Warehouse{}
	var location sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, tenant_id, name, location, created_at, updated_at
		 FROM warehouses WHERE id = ? AND tenant_id = ?`, id, tenantID,
	).Scan(&w.ID, &w.TenantID, &w.Name, &location, &w.CreatedAt, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Entity: "warehouse", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("getting warehouse: %w", err)
	}
	w.Location = location.String
	return w, nil
}

// ListWarehouses returns all of a tenant's warehouses.
func ListWarehouses(ctx context.Context, db *sql.DB, tenantID string) ([]model.Warehouse, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, tenant_id, name, location, created_at, updated_at
		 FROM warehouses WHERE tenant_id = ? ORDER BY name`, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing warehouses: %w", err)
	}
	defer rows.Close()

	var warehouses []model.Warehouse
	for rows.Next() {
		var w model.Warehouse
		var location sql.NullString
		if err := rows.Scan(&w.ID, &w.TenantID, &w.Name, &location, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning warehouse: %w", err)
		}
		w.Location = location.String
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

// UpdateWarehouse updates a tenant's warehouse's name and location.
func UpdateWarehouse(ctx context.Context, db *sql.DB, tenantID string, id int64, name, location string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	result, err := db.ExecContext(ctx,
		`UPDATE warehouses SET name = ?, location = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND tenant_id = ?`,
		name, location, id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("updating warehouse: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating warehouse: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "warehouse", ID: id}
	}
	return nil
}

// DeleteWarehouse removes a tenant's warehouse. Association rows cascade;
// the items themselves survive.
func DeleteWarehouse(ctx context.Context, db *sql.DB, tenantID string, id int64) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM warehouses WHERE id = ? AND tenant_id = ?`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("deleting warehouse: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting warehouse: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "warehouse", ID: id}
	}
	return nil
}

// ListWarehouseItems returns the items associated with a tenant's warehouse.
// The warehouse itself must resolve within the tenant.
func ListWarehouseItems(ctx context.Context, db *sql.DB, tenantID string, warehouseID int64) ([]model.InventoryItem, error) {
	if _, err := GetWarehouse(ctx, db, tenantID, warehouseID); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT i.id, i.tenant_id, i.name, i.description, i.price, i.quantity, i.category, i.created_at, i.updated_at
		 FROM inventory_items i
		 JOIN warehouse_items wi ON wi.item_id = i.id
		 WHERE wi.warehouse_id = ? AND i.tenant_id = ?
		 ORDER BY i.name`, warehouseID, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing warehouse items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}
