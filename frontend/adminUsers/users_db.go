package adminusers

import (
	"context"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"billable/frontend/login"
	"billable/infrastructure/argon"
	"billable/infrastructure/rbac"
	"billable/infrastructure/sqlite"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidRole      = errors.New("role must be Employee or Admin")
	ErrUsernameExists   = errors.New("username already exists")
)

func LoadUsers(ctx context.Context, db *sqlite.DB) ([]UserView, error) {
	users := make([]UserView, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw("SELECT id, username, role FROM users ORDER BY id ASC").Scan(ctx, &users)
	})
	return users, err
}

// CreateUser stores a new account with a hashed password. Usernames are
// unique case-insensitively.
func CreateUser(ctx context.Context, db *sqlite.DB, username, password, role string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}
	if strings.TrimSpace(password) == "" {
		return ErrPasswordRequired
	}
	if role != rbac.RoleEmployee && role != rbac.RoleAdmin {
		return ErrInvalidRole
	}
	if err := login.ValidatePasswordPolicy(password); err != nil {
		return err
	}

	hash, err := argon.CreateHash(password, argon.DefaultParams)
	if err != nil {
		return err
	}

	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var count int64
		if err := tx.NewRaw(`SELECT COUNT(*) FROM users WHERE LOWER(username) = LOWER(?)`, username).Scan(ctx, &count); err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameExists
		}
		_, err := tx.ExecContext(ctx, `
INSERT INTO users (username, password_hash, role, created_at, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`, username, hash, role)
		return err
	})
}
