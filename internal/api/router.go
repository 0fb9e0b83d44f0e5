package api

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"

	"github.com/mlakar/zaloga/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
//
// Tenant resolution: read endpoints and item creation take the tenant from
// the TenantId header; admin-gated endpoints take it from the token claims.
// TenantMiddleware handles both, so it sits innermost on every tenant-scoped
// route.
func NewRouter(db *sql.DB, jwtSecret string, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret, Logger: logger}
	itemsHandler := &ItemsHandler{DB: db, Logger: logger}
	warehousesHandler := &WarehousesHandler{DB: db, Logger: logger}
	usersHandler := &UsersHandler{DB: db, Logger: logger}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)

	tenant := func(h http.HandlerFunc) http.Handler {
		return TenantMiddleware(h)
	}
	authTenant := func(minimum string, h http.HandlerFunc) http.Handler {
		role := RequireRole(minimum)
		return authMW(role(TenantMiddleware(h)))
	}

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated session management.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Inventory items: reads and creation are header-scoped, destructive
	// operations require an admin token.
	mux.Handle("GET /api/inventory", tenant(itemsHandler.List))
	mux.Handle("POST /api/inventory", tenant(itemsHandler.Create))
	mux.Handle("GET /api/inventory/search", tenant(itemsHandler.Search))
	mux.Handle("GET /api/inventory/category/{category}", tenant(itemsHandler.ListByCategory))
	mux.Handle("GET /api/inventory/{id}", tenant(itemsHandler.Get))
	mux.Handle("PUT /api/inventory/{id}", authTenant(model.RoleAdmin, itemsHandler.Update))
	mux.Handle("DELETE /api/inventory/{id}", authTenant(model.RoleAdmin, itemsHandler.Delete))

	// Warehouses: reads are header-scoped, writes need manager+, deletion
	// needs admin.
	mux.Handle("GET /api/warehouses", tenant(warehousesHandler.List))
	mux.Handle("POST /api/warehouses", authTenant(model.RoleManager, warehousesHandler.Create))
	mux.Handle("GET /api/warehouses/{id}", tenant(warehousesHandler.Get))
	mux.Handle("PUT /api/warehouses/{id}", authTenant(model.RoleManager, warehousesHandler.Update))
	mux.Handle("DELETE /api/warehouses/{id}", authTenant(model.RoleAdmin, warehousesHandler.Delete))
	mux.Handle("GET /api/warehouses/{id}/items", tenant(warehousesHandler.ListItems))

	// Users (admin only, scoped to the admin's tenant).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	return mux
}
