package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlakar/zaloga/internal/model"
)

// CreateUser creates a new user within a tenant.
func CreateUser(ctx context.Context, db *sql.DB, tenantID, username, passwordHash, role string) (*model.User, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (tenant_id, username, password_hash, role) VALUES (?, ?, ?, ?)`,
		tenantID, username, passwordHash, role,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID. Not tenant-scoped: the caller identifies the
// user through validated token claims, not through request input.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, tenant_id, username, password_hash, role, created_at, deleted_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.TenantID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByUsername returns a user by username (including soft-deleted, so
// login can distinguish bad credentials from deactivated accounts).
func GetUserByUsername(ctx context.Context, db *sql.DB, username string) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, tenant_id, username, password_hash, role, created_at, deleted_at
		 FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.TenantID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by username: %w", err)
	}
	return u, nil
}

// ListUsers returns a tenant's non-deleted users.
func ListUsers(ctx context.Context, db *sql.DB, tenantID string) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, tenant_id, username, password_hash, role, created_at, deleted_at
		 FROM users WHERE tenant_id = ? AND deleted_at IS NULL ORDER BY id`, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.TenantID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUserRole updates a user's role within a tenant.
func UpdateUserRole(ctx context.Context, db *sql.DB, tenantID string, id int64, role string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET role = ? WHERE id = ? AND tenant_id = ? AND deleted_at IS NULL`,
		role, id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("updating user role: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating user role: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "user", ID: id}
	}
	return nil
}

// UpdateUserPassword updates a user's password hash.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ? AND deleted_at IS NULL`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}

// DeleteUser soft-deletes a user within a tenant.
func DeleteUser(ctx context.Context, db *sql.DB, tenantID string, id int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET deleted_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND tenant_id = ? AND deleted_at IS NULL`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "user", ID: id}
	}
	return nil
}
