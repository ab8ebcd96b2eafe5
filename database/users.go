package database

import (
	"database/sql"
	"errors"
	"fmt"

	"guardrail-quote/types"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

func CreateUser(username, passwordHash, role string) error {
	_, err := DB.Exec("INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)", username, passwordHash, role)
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", username, err)
	}
	return nil
}

func FindUser(username string) (types.User, error) {
	var u types.User
	err := DB.QueryRow("SELECT id, username, password_hash, role FROM users WHERE username=?", username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}
