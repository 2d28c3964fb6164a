package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carematch/internal/database"
	"carematch/internal/models"
)

// AddressRepository handles database operations for member addresses
type AddressRepository struct {
	db database.DBTX
}

func NewAddressRepository(db database.DBTX) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) ListAddresses(ctx context.Context) ([]models.Address, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT member_user_id, house_number, street, town FROM addresses ORDER BY member_user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	addresses := []models.Address{}
	for rows.Next() {
		var a models.Address
		if err := rows.Scan(&a.MemberUserID, &a.HouseNumber, &a.Street, &a.Town); err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *AddressRepository) GetAddressByMemberID(ctx context.Context, memberID int64) (*models.Address, error) {
	var a models.Address
	err := r.db.QueryRowContext(ctx,
		"SELECT member_user_id, house_number, street, town FROM addresses WHERE member_user_id = ?", memberID,
	).Scan(&a.MemberUserID, &a.HouseNumber, &a.Street, &a.Town)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	return &a, nil
}

func (r *AddressRepository) CreateAddress(ctx context.Context, a *models.Address) error {
	query := "INSERT INTO addresses (member_user_id, house_number, street, town) VALUES (?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, query, a.MemberUserID, a.HouseNumber, a.Street, a.Town); err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

func (r *AddressRepository) UpdateAddress(ctx context.Context, memberID int64, a *models.Address) (bool, error) {
	query := "UPDATE addresses SET house_number = ?, street = ?, town = ? WHERE member_user_id = ?"
	res, err := r.db.ExecContext(ctx, query, a.HouseNumber, a.Street, a.Town, memberID)
	if err != nil {
		return false, fmt.Errorf("failed to update address: %w", err)
	}
	return affected(res)
}

func (r *AddressRepository) DeleteAddress(ctx context.Context, memberID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM addresses WHERE member_user_id = ?", memberID)
	if err != nil {
		return false, fmt.Errorf("failed to delete address: %w", err)
	}
	return affected(res)
}
