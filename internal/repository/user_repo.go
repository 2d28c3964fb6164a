package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carematch/internal/database"
	"carematch/internal/models"
)

const userColumns = "user_id, email, given_name, surname, city, phone_number, profile_description, password"

// UserRepository handles database operations for users
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// ListUsers returns every user ordered by id
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetUserByID returns nil when no user has the id
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE user_id = ?", id), &u)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts u and sets its generated id
func (r *UserRepository) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (email, given_name, surname, city, phone_number, profile_description, password)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, "user_id", query,
		u.Email, u.GivenName, u.Surname, u.City, u.PhoneNumber, u.ProfileDescription, u.Password)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.UserID = id
	return nil
}

// InsertUser inserts u keeping its id. Used when restoring a backup.
func (r *UserRepository) InsertUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (user_id, email, given_name, surname, city, phone_number, profile_description, password)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.UserID, u.Email, u.GivenName, u.Surname, u.City, u.PhoneNumber, u.ProfileDescription, u.Password)
	if err != nil {
		return fmt.Errorf("failed to insert user %d: %w", u.UserID, err)
	}
	return nil
}

// UpdateUser replaces every non-key column and reports whether the row exists
func (r *UserRepository) UpdateUser(ctx context.Context, id int64, u *models.User) (bool, error) {
	query := `
		UPDATE users
		SET email = ?, given_name = ?, surname = ?, city = ?, phone_number = ?, profile_description = ?, password = ?
		WHERE user_id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		u.Email, u.GivenName, u.Surname, u.City, u.PhoneNumber, u.ProfileDescription, u.Password, id)
	if err != nil {
		return false, fmt.Errorf("failed to update user: %w", err)
	}
	return affected(res)
}

// DeleteUser reports whether a row was removed
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE user_id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return affected(res)
}

func scanUser(s scanner, u *models.User) error {
	return s.Scan(&u.UserID, &u.Email, &u.GivenName, &u.Surname, &u.City, &u.PhoneNumber, &u.ProfileDescription, &u.Password)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
