package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carematch/internal/database"
	"carematch/internal/models"
)

const caregiverColumns = "caregiver_user_id, photo, gender, caregiving_type, COALESCE(hourly_rate, 0)"

// CaregiverRepository handles database operations for caregivers
type CaregiverRepository struct {
	db database.DBTX
}

func NewCaregiverRepository(db database.DBTX) *CaregiverRepository {
	return &CaregiverRepository{db: db}
}

func (r *CaregiverRepository) ListCaregivers(ctx context.Context) ([]models.Caregiver, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+caregiverColumns+" FROM caregivers ORDER BY caregiver_user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query caregivers: %w", err)
	}
	defer rows.Close()

	caregivers := []models.Caregiver{}
	for rows.Next() {
		var c models.Caregiver
		if err := scanCaregiver(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan caregiver: %w", err)
		}
		caregivers = append(caregivers, c)
	}
	return caregivers, rows.Err()
}

// GetCaregiverByID returns nil when the user is not a caregiver
func (r *CaregiverRepository) GetCaregiverByID(ctx context.Context, userID int64) (*models.Caregiver, error) {
	var c models.Caregiver
	err := scanCaregiver(r.db.QueryRowContext(ctx, "SELECT "+caregiverColumns+" FROM caregivers WHERE caregiver_user_id = ?", userID), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get caregiver: %w", err)
	}
	return &c, nil
}

// CreateCaregiver inserts c under the key of an existing user
func (r *CaregiverRepository) CreateCaregiver(ctx context.Context, c *models.Caregiver) error {
	query := `
		INSERT INTO caregivers (caregiver_user_id, photo, gender, caregiving_type, hourly_rate)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, c.CaregiverUserID, c.Photo, c.Gender, c.CaregivingType, c.HourlyRate); err != nil {
		return fmt.Errorf("failed to create caregiver: %w", err)
	}
	return nil
}

func (r *CaregiverRepository) UpdateCaregiver(ctx context.Context, userID int64, c *models.Caregiver) (bool, error) {
	query := `
		UPDATE caregivers
		SET photo = ?, gender = ?, caregiving_type = ?, hourly_rate = ?
		WHERE caregiver_user_id = ?
	`
	res, err := r.db.ExecContext(ctx, query, c.Photo, c.Gender, c.CaregivingType, c.HourlyRate, userID)
	if err != nil {
		return false, fmt.Errorf("failed to update caregiver: %w", err)
	}
	return affected(res)
}

func (r *CaregiverRepository) DeleteCaregiver(ctx context.Context, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM caregivers WHERE caregiver_user_id = ?", userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete caregiver: %w", err)
	}
	return affected(res)
}

func scanCaregiver(s scanner, c *models.Caregiver) error {
	return s.Scan(&c.CaregiverUserID, &c.Photo, &c.Gender, &c.CaregivingType, &c.HourlyRate)
}
