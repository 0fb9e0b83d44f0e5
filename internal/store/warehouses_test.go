package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mlakar/zaloga/internal/db"
)

func TestCreateAndGetWarehouse(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	seedTenant(t, database, "tenant1")

	w, err := CreateWarehouse(ctx, database, "tenant1", "Warehouse A", "Location A")
	if err != nil {
		t.Fatalf("CreateWarehouse: %v", err)
	}
	if w.Name != "Warehouse A" {
		t.Errorf("expected name 'Warehouse A', got %q", w.Name)
	}
	if w.TenantID != "tenant1" {
		t.Errorf("expected tenant 'tenant1', got %q", w.TenantID)
	}

	got, err := GetWarehouse(ctx, database, "tenant1", w.ID)
	if err != nil {
		t.Fatalf("GetWarehouse: %v", err)
	}
	if got.Location != "Location A" {
		t.Errorf("expected location 'Location A', got %q", got.Location)
	}
}

func TestCreateWarehouseEmptyName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	seedTenant(t, database, "tenant1")

	_, err := CreateWarehouse(ctx, database, "tenant1", "", "Location A")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGetWarehouseCrossTenant(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	seedTenant(t, database, "tenant1")
	seedTenant(t, database, "tenant2")

	w, _ := CreateWarehouse(ctx, database, "tenant1", "Warehouse A", "")

	_, err := GetWarehouse(ctx, database, "tenant2", w.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for cross-tenant access, got %v", err)
	}
}

func TestListWarehousesScopedByTenant(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	seedTenant(t, database, "tenant1")
	seedTenant(t, database, "tenant2")

	CreateWarehouse(ctx, database, "tenant1", "Warehouse A", "")
	CreateWarehouse(ctx, database, "tenant1", "Warehouse B", "")
	CreateWarehouse(ctx, database, "tenant2", "Warehouse C", "")

	warehouses, err := ListWarehouses(ctx, database, "tenant1")
	if err != nil {
		t.Fatalf("ListWarehouses: %v", err)
	}
	if len(warehouses) != 2 {
		t.Errorf("expected 2 warehouses, got %d", len(warehouses))
	}
}

func TestUpdateWarehouse(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	seedTenant(t, database, "tenant1")

	w, _ := CreateWarehouse(ctx, database, "tenant1", "Warehouse A", "Old Town")

	if err := UpdateWarehouse(ctx, database, "tenant1", w.ID, "Warehouse A2", "New Town"); err != nil {
		t.Fatalf("UpdateWarehouse: %v", err)
	}

	got, _ := GetWarehouse(ctx, database, "tenant1", w.ID)
	if got.Name != "Warehouse A2" || got.Location != "New Town" {
		t.Errorf("update not applied: %+v", got)
	}

	if err := UpdateWarehouse(ctx, database, "tenant1", 999, "X", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing warehouse, got %v", err)
	}
}

func TestDeleteWarehouseKeepsItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	seedTenant(t, database, "tenant1")
	w := seedWarehouse(t, database, "tenant1", "Warehouse A")

	item, err := CreateItem(ctx, database, "tenant1", "Widget", "", 9.99, 5, "", []int64{w.ID})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if err := DeleteWarehouse(ctx, database, "tenant1", w.ID); err != nil {
		t.Fatalf("DeleteWarehouse: %v", err)
	}

	// Association rows cascade, the item survives.
	if n := countRows(t, database, "warehouse_items"); n != 0 {
		t.Errorf("expected 0 association rows, got %d", n)
	}
	got, err := GetItem(ctx, database, "tenant1", item.ID)
	if err != nil {
		t.Fatalf("GetItem after warehouse delete: %v", err)
	}
	if len(got.WarehouseIDs) != 0 {
		t.Errorf("expected no warehouse associations, got %v", got.WarehouseIDs)
	}
}

func TestListWarehouseItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	seedTenant(t, database, "tenant1")
	seedTenant(t, database, "tenant2")
	w := seedWarehouse(t, database, "tenant1", "Warehouse A")

	CreateItem(ctx, database, "tenant1", "Stored", "", 10, 5, "", []int64{w.ID})
	CreateItem(ctx, database, "tenant1", "Unstored", "", 10, 5, "", nil)

	items, err := ListWarehouseItems(ctx, database, "tenant1", w.ID)
	if err != nil {
		t.Fatalf("ListWarehouseItems: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Stored" {
		t.Errorf("expected only the stored item, got %+v", items)
	}

	// Another tenant cannot enumerate the warehouse at all.
	if _, err := ListWarehouseItems(ctx, database, "tenant2", w.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for cross-tenant listing, got %v", err)
	}
}
