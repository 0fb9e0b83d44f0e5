package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mlakar/zaloga/internal/model"
)

// CreateTenant creates a tenant. A blank id gets a generated UUID; callers
// may supply a stable slug instead.
func CreateTenant(ctx context.Context, db *sql.DB, id, name string) (*model.Tenant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if id == "" {
		id = uuid.NewString()
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO tenants (id, name) VALUES (?, ?)`,
		id, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating tenant: %w", err)
	}

	return GetTenant(ctx, db, id)
}

// GetTenant returns a tenant by ID.
func GetTenant(ctx context.Context, db *sql.DB, id string) (*model.Tenant, error) {
	t := &model.Tenant{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM tenants WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tenant %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting tenant: %w", err)
	}
	return t, nil
}

// ListTenants returns all tenants.
func ListTenants(ctx context.Context, db *sql.DB) ([]model.Tenant, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, created_at FROM tenants ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer rows.Close()

	var tenants []model.Tenant
	for rows.Next() {
		var t model.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}
