package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mlakar/zaloga/internal/model"
	"github.com/mlakar/zaloga/internal/store"
)

// WarehousesHandler handles warehouse CRUD endpoints.
type WarehousesHandler struct {
	DB     *sql.DB
	Logger *zap.Logger
}

type warehouseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// List handles GET /api/warehouses.
func (h *WarehousesHandler) List(w http.ResponseWriter, r *http.Request) {
	warehouses, err := store.ListWarehouses(r.Context(), h.DB, TenantID(r.Context()))
	if err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}
	if warehouses == nil {
		warehouses = []model.Warehouse{}
	}
	jsonResponse(w, http.StatusOK, warehouses)
}

// Create handles POST /api/warehouses.
func (h *WarehousesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req warehouseRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	warehouse, err := store.CreateWarehouse(r.Context(), h.DB, TenantID(r.Context()), req.Name, req.Location)
	if err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}

	jsonResponse(w, http.StatusCreated, warehouse)
}

// Get handles GET /api/warehouses/{id}.
func (h *WarehousesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid warehouse id")
		return
	}

	warehouse, err := store.GetWarehouse(r.Context(), h.DB, TenantID(r.Context()), id)
	if err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}

	jsonResponse(w, http.StatusOK, warehouse)
}

// Update handles PUT /api/warehouses/{id}.
func (h *WarehousesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid warehouse id")
		return
	}

	var req warehouseRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.UpdateWarehouse(r.Context(), h.DB, TenantID(r.Context()), id, req.Name, req.Location); err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}

	warehouse, err := store.GetWarehouse(r.Context(), h.DB, TenantID(r.Context()), id)
	if err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}
	jsonResponse(w, http.StatusOK, warehouse)
}

// Delete handles DELETE /api/warehouses/{id}.
func (h *WarehousesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid warehouse id")
		return
	}

	if err := store.DeleteWarehouse(r.Context(), h.DB, TenantID(r.Context()), id); err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListItems handles GET /api/warehouses/{id}/items.
func (h *WarehousesHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid warehouse id")
		return
	}

	items, err := store.ListWarehouseItems(r.Context(), h.DB, TenantID(r.Context()), id)
	if err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}
	if items == nil {
		items = []model.InventoryItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}
