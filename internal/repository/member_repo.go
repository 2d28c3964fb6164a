package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carematch/internal/database"
	"carematch/internal/models"
)

// MemberRepository handles database operations for members
type MemberRepository struct {
	db database.DBTX
}

func NewMemberRepository(db database.DBTX) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT member_user_id, house_rules, dependent_description FROM members ORDER BY member_user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.MemberUserID, &m.HouseRules, &m.DependentDescription); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *MemberRepository) GetMemberByID(ctx context.Context, userID int64) (*models.Member, error) {
	var m models.Member
	err := r.db.QueryRowContext(ctx,
		"SELECT member_user_id, house_rules, dependent_description FROM members WHERE member_user_id = ?", userID,
	).Scan(&m.MemberUserID, &m.HouseRules, &m.DependentDescription)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &m, nil
}

func (r *MemberRepository) CreateMember(ctx context.Context, m *models.Member) error {
	query := "INSERT INTO members (member_user_id, house_rules, dependent_description) VALUES (?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, query, m.MemberUserID, m.HouseRules, m.DependentDescription); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *MemberRepository) UpdateMember(ctx context.Context, userID int64, m *models.Member) (bool, error) {
	query := "UPDATE members SET house_rules = ?, dependent_description = ? WHERE member_user_id = ?"
	res, err := r.db.ExecContext(ctx, query, m.HouseRules, m.DependentDescription, userID)
	if err != nil {
		return false, fmt.Errorf("failed to update member: %w", err)
	}
	return affected(res)
}

func (r *MemberRepository) DeleteMember(ctx context.Context, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM members WHERE member_user_id = ?", userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete member: %w", err)
	}
	return affected(res)
}
