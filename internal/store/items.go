package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mlakar/zaloga/internal/model"
)

// validateItemFields checks the writable fields shared by create and update.
func validateItemFields(name string, price float64, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if price <= 0 {
		return &ValidationError{Field: "price", Reason: "must be greater than 0"}
	}
	if quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be greater than 0"}
	}
	return nil
}

// CreateItem creates an inventory item for a tenant and links it to the given
// warehouses. The item row and all association rows are written in a single
// transaction: if any warehouse id does not resolve within the tenant, nothing
// is persisted and the returned error names the offending id.
func CreateItem(ctx context.Context, db *sql.DB, tenantID, name, description string, price float64, quantity int, category string, warehouseIDs []int64) (*model.InventoryItem, error) {
	if err := validateItemFields(name, price, quantity); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO inventory_items (tenant_id, name, description, price, quantity, category)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tenantID, name, description, price, quantity, category,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	for _, wid := range warehouseIDs {
		var one int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM warehouses WHERE id = ? AND tenant_id = ?`,
			wid, tenantID,
		).Scan(&one)
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "warehouse", ID: wid}
		}
		if err != nil {
			return nil, fmt.Errorf("resolving warehouse %d: %w", wid, err)
		}

		// OR IGNORE tolerates the same warehouse id appearing twice in the request.
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO warehouse_items (warehouse_id, item_id) VALUES (?, ?)`,
			wid, id,
		); err != nil {
			return nil, fmt.Errorf("linking warehouse %d: %w", wid, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item: %w", err)
	}

	return GetItem(ctx, db, tenantID, id)
}

// GetItem returns a tenant's item by ID, including its warehouse associations.
func GetItem(ctx context.Context, db *sql.DB, tenantID string, id int64) (*model.InventoryItem, error) {
	item := &model.InventoryItem{}
	var description, category sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, tenant_id, name, description, price, quantity, category, created_at, updated_at
		 FROM inventory_items WHERE id = ? AND tenant_id = ?`, id, tenantID,
	).Scan(&item.ID, &item.TenantID, &item.Name, &description, &item.Price,
		&item.Quantity, &category, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Entity: "item", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Description = description.String
	item.Category = category.String

	item.WarehouseIDs, err = itemWarehouseIDs(ctx, db, id)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns all of a tenant's items.
func ListItems(ctx context.Context, db *sql.DB, tenantID string) ([]model.InventoryItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, tenant_id, name, description, price, quantity, category, created_at, updated_at
		 FROM inventory_items WHERE tenant_id = ? ORDER BY name`, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListItemsByCategory returns a tenant's items in the given category.
func ListItemsByCategory(ctx context.Context, db *sql.DB, tenantID, category string) ([]model.InventoryItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, tenant_id, name, description, price, quantity, category, created_at, updated_at
		 FROM inventory_items WHERE tenant_id = ? AND category = ? ORDER BY name`,
		tenantID, category,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items by category: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// SearchItemsByName returns a tenant's items whose name contains the given
// substring, case-insensitively. instr avoids LIKE wildcard escaping.
func SearchItemsByName(ctx context.Context, db *sql.DB, tenantID, name string) ([]model.InventoryItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, tenant_id, name, description, price, quantity, category, created_at, updated_at
		 FROM inventory_items WHERE tenant_id = ? AND instr(lower(name), lower(?)) > 0 ORDER BY name`,
		tenantID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateItem overwrites a tenant's item's mutable fields. The tenant stamp
// itself is never updated.
func UpdateItem(ctx context.Context, db *sql.DB, tenantID string, id int64, name, description string, price float64, quantity int, category string) error {
	if err := validateItemFields(name, price, quantity); err != nil {
		return err
	}

	result, err := db.ExecContext(ctx,
		`UPDATE inventory_items
		 SET name = ?, description = ?, price = ?, quantity = ?, category = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND tenant_id = ?`,
		name, description, price, quantity, category, id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "item", ID: id}
	}
	return nil
}

// DeleteItem removes a tenant's item. Association rows cascade with the row.
func DeleteItem(ctx context.Context, db *sql.DB, tenantID string, id int64) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM inventory_items WHERE id = ? AND tenant_id = ?`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "item", ID: id}
	}
	return nil
}

func itemWarehouseIDs(ctx context.Context, db *sql.DB, itemID int64) ([]int64, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT warehouse_id FROM warehouse_items WHERE item_id = ? ORDER BY warehouse_id`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting item warehouses: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning warehouse id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanItems(rows *sql.Rows) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	for rows.Next() {
		var item model.InventoryItem
		var description, category sql.NullString
		if err := rows.Scan(&item.ID, &item.TenantID, &item.Name, &description,
			&item.Price, &item.Quantity, &category, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Description = description.String
		item.Category = category.String
		items = append(items, item)
	}
	return items, rows.Err()
}
