package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mlakar/zaloga/internal/model"
	"github.com/mlakar/zaloga/internal/store"
)

// ItemsHandler handles inventory item CRUD and search endpoints.
type ItemsHandler struct {
	DB     *sql.DB
	Logger *zap.Logger
}

// createItemRequest deliberately has no tenant field: the tenant is resolved
// from the request, never taken from the body.
type createItemRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Category     string  `json:"category"`
	WarehouseIDs []int64 `json:"warehouse_ids"`
}

type updateItemRequest struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
}

// List handles GET /api/inventory.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB, TenantID(r.Context()))
	if err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}
	if items == nil {
		items = []model.InventoryItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/inventory.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, TenantID(r.Context()),
		req.Name, req.Description, req.Price, req.Quantity, req.Category, req.WarehouseIDs)
	if err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/inventory/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, TenantID(r.Context()), id)
	if err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/inventory/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The body must identify the same item as the path; rejected before any
	// storage call.
	if req.ID != id {
		jsonError(w, http.StatusBadRequest, "body id does not match path id")
		return
	}

	err = store.UpdateItem(r.Context(), h.DB, TenantID(r.Context()), id,
		req.Name, req.Description, req.Price, req.Quantity, req.Category)
	if err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/inventory/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, TenantID(r.Context()), id); err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByCategory handles GET /api/inventory/category/{category}.
func (h *ItemsHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")

	items, err := store.ListItemsByCategory(r.Context(), h.DB, TenantID(r.Context()), category)
	if err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}
	if items == nil {
		items = []model.InventoryItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Search handles GET /api/inventory/search?name=.
func (h *ItemsHandler) Search(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		jsonError(w, http.StatusBadRequest, "name query parameter required")
		return
	}

	items, err := store.SearchItemsByName(r.Context(), h.DB, TenantID(r.Context()), name)
	if err != nil {
		respondStoreError(w, h.Logger, err)
		return
	}
	if items == nil {
		items = []model.InventoryItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}
