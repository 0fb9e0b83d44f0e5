package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlakar/zaloga/internal/model"
	"github.com/mlakar/zaloga/internal/store"
)

func seedTestWarehouse(t *testing.T, database *sql.DB, tenantID, name string) *model.Warehouse {
	t.Helper()
	w, err := store.CreateWarehouse(context.Background(), database, tenantID, name, "")
	require.NoError(t, err)
	return w
}

func decodeItem(t *testing.T, resp *http.Response) model.InventoryItem {
	t.Helper()
	defer resp.Body.Close()
	var item model.InventoryItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	return item
}

func TestListItemsRequiresTenantHeader(t *testing.T) {
	server, _, _ := setupTestServer(t)

	resp := doRequest(t, "GET", server.URL+"/api/inventory", "", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateItemFlow(t *testing.T) {
	server, database, _ := setupTestServer(t)
	w := seedTestWarehouse(t, database, "tenant1", "Warehouse A")

	resp := doRequest(t, "POST", server.URL+"/api/inventory", "tenant1", "", map[string]any{
		"name":          "Widget",
		"price":         9.99,
		"quantity":      5,
		"category":      "Tools",
		"warehouse_ids": []int64{w.ID},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeItem(t, resp)
	assert.Equal(t, "tenant1", created.TenantID)
	assert.Equal(t, []int64{w.ID}, created.WarehouseIDs)

	// Fetch it back by the returned id.
	resp = doRequest(t, "GET", fmt.Sprintf("%s/api/inventory/%d", server.URL, created.ID), "tenant1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeItem(t, resp)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 9.99, got.Price)
	assert.Equal(t, 5, got.Quantity)
	assert.Equal(t, "Tools", got.Category)
}

func TestCreateItemIgnoresBodyTenant(t *testing.T) {
	server, _, _ := setupTestServer(t)

	// A tenant_id smuggled into the body must not override the header.
	resp := doRequest(t, "POST", server.URL+"/api/inventory", "tenant1", "", map[string]any{
		"name":      "Widget",
		"price":     9.99,
		"quantity":  5,
		"tenant_id": "tenant2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeItem(t, resp)
	assert.Equal(t, "tenant1", created.TenantID)
}

func TestCreateItemValidationErrors(t *testing.T) {
	server, _, _ := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"price": 9.99, "quantity": 5}},
		{"zero price", map[string]any{"name": "Widget", "price": 0, "quantity": 5}},
		{"zero quantity", map[string]any{"name": "Widget", "price": 9.99, "quantity": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, "POST", server.URL+"/api/inventory", "tenant1", "", tt.body)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCreateItemUnknownWarehouse(t *testing.T) {
	server, _, _ := setupTestServer(t)

	resp := doRequest(t, "POST", server.URL+"/api/inventory", "tenant1", "", map[string]any{
		"name":          "Widget",
		"price":         9.99,
		"quantity":      5,
		"warehouse_ids": []int64{999},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "999")
}

func TestCreateItemCrossTenantWarehouse(t *testing.T) {
	server, database, _ := setupTestServer(t)
	foreign := seedTestWarehouse(t, database, "tenant2", "Foreign Warehouse")

	resp := doRequest(t, "POST", server.URL+"/api/inventory", "tenant1", "", map[string]any{
		"name":          "Widget",
		"price":         9.99,
		"quantity":      5,
		"warehouse_ids": []int64{foreign.ID},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetItemCrossTenant(t *testing.T) {
	server, database, _ := setupTestServer(t)

	item, err := store.CreateItem(context.Background(), database, "tenant1", "Secret", "", 9.99, 5, "", nil)
	require.NoError(t, err)

	resp := doRequest(t, "GET", fmt.Sprintf("%s/api/inventory/%d", server.URL, item.ID), "tenant2", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateItemRequiresAdmin(t *testing.T) {
	server, database, token := setupTestServer(t)

	item, err := store.CreateItem(context.Background(), database, "tenant1", "Widget", "", 9.99, 5, "", nil)
	require.NoError(t, err)

	body := map[string]any{"id": item.ID, "name": "Widget v2", "price": 12.5, "quantity": 8}

	// No token: unauthorized.
	resp := doRequest(t, "PUT", fmt.Sprintf("%s/api/inventory/%d", server.URL, item.ID), "", "", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Admin token: updated.
	resp = doRequest(t, "PUT", fmt.Sprintf("%s/api/inventory/%d", server.URL, item.ID), "", token, body)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	got, err := store.GetItem(context.Background(), database, "tenant1", item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", got.Name)
}

func TestUpdateItemIDMismatch(t *testing.T) {
	server, database, token := setupTestServer(t)

	item, err := store.CreateItem(context.Background(), database, "tenant1", "Widget", "", 9.99, 5, "", nil)
	require.NoError(t, err)

	resp := doRequest(t, "PUT", fmt.Sprintf("%s/api/inventory/%d", server.URL, item.ID), "", token, map[string]any{
		"id":       item.ID + 1,
		"name":     "Widget v2",
		"price":    12.5,
		"quantity": 8,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The mismatch was rejected before any write.
	got, err := store.GetItem(context.Background(), database, "tenant1", item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
}

func TestDeleteItem(t *testing.T) {
	server, database, token := setupTestServer(t)

	item, err := store.CreateItem(context.Background(), database, "tenant1", "Widget", "", 9.99, 5, "", nil)
	require.NoError(t, err)

	resp := doRequest(t, "DELETE", fmt.Sprintf("%s/api/inventory/%d", server.URL, item.ID), "", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// Deleting again reports absence, not success.
	resp = doRequest(t, "DELETE", fmt.Sprintf("%s/api/inventory/%d", server.URL, item.ID), "", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchAndCategoryEndpoints(t *testing.T) {
	server, database, _ := setupTestServer(t)
	ctx := context.Background()

	_, err := store.CreateItem(ctx, database, "tenant1", "Blue Widget", "", 10, 10, "Tools", nil)
	require.NoError(t, err)
	_, err = store.CreateItem(ctx, database, "tenant1", "Gadget", "", 30, 2, "Electronics", nil)
	require.NoError(t, err)
	_, err = store.CreateItem(ctx, database, "tenant2", "Widget", "", 30, 2, "Tools", nil)
	require.NoError(t, err)

	resp := doRequest(t, "GET", server.URL+"/api/inventory/search?name=widget", "tenant1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []model.InventoryItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	resp.Body.Close()
	require.Len(t, items, 1)
	assert.Equal(t, "Blue Widget", items[0].Name)

	resp = doRequest(t, "GET", server.URL+"/api/inventory/category/Tools", "tenant1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	resp.Body.Close()
	require.Len(t, items, 1)
	assert.Equal(t, "Blue Widget", items[0].Name)

	// Search without the name parameter is rejected.
	resp = doRequest(t, "GET", server.URL+"/api/inventory/search", "tenant1", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestTenantHeaderClaimsMismatch(t *testing.T) {
	server, _, token := setupTestServer(t)

	// An admin of tenant1 presenting a tenant2 header is forbidden.
	resp := doRequest(t, "DELETE", server.URL+"/api/inventory/1", "tenant2", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
