package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carematch/internal/database"
	"carematch/internal/models"
)

// JobApplicationRepository handles database operations for job applications.
// Rows are keyed by (caregiver_user_id, job_id).
type JobApplicationRepository struct {
	db database.DBTX
}

func NewJobApplicationRepository(db database.DBTX) *JobApplicationRepository {
	return &JobApplicationRepository{db: db}
}

func (r *JobApplicationRepository) ListJobApplications(ctx context.Context) ([]models.JobApplication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT caregiver_user_id, job_id, date_applied
		FROM job_applications
		ORDER BY caregiver_user_id, job_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query job applications: %w", err)
	}
	defer rows.Close()

	apps := []models.JobApplication{}
	for rows.Next() {
		var a models.JobApplication
		if err := rows.Scan(&a.CaregiverUserID, &a.JobID, &a.DateApplied); err != nil {
			return nil, fmt.Errorf("failed to scan job application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *JobApplicationRepository) GetJobApplication(ctx context.Context, key models.JobApplicationKey) (*models.JobApplication, error) {
	var a models.JobApplication
	err := r.db.QueryRowContext(ctx, `
		SELECT caregiver_user_id, job_id, date_applied
		FROM job_applications
		WHERE caregiver_user_id = ? AND job_id = ?
	`, key.CaregiverUserID, key.JobID).Scan(&a.CaregiverUserID, &a.JobID, &a.DateApplied)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job application: %w", err)
	}
	return &a, nil
}

func (r *JobApplicationRepository) CreateJobApplication(ctx context.Context, a *models.JobApplication) error {
	query := "INSERT INTO job_applications (caregiver_user_id, job_id, date_applied) VALUES (?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, query, a.CaregiverUserID, a.JobID, a.DateApplied); err != nil {
		return fmt.Errorf("failed to create job application: %w", err)
	}
	return nil
}

// UpdateJobApplication only touches date_applied; the key never changes.
func (r *JobApplicationRepository) UpdateJobApplication(ctx context.Context, key models.JobApplicationKey, dateApplied *models.Date) (bool, error) {
	query := "UPDATE job_applications SET date_applied = ? WHERE caregiver_user_id = ? AND job_id = ?"
	res, err := r.db.ExecContext(ctx, query, dateApplied, key.CaregiverUserID, key.JobID)
	if err != nil {
		return false, fmt.Errorf("failed to update job application: %w", err)
	}
	return affected(res)
}

func (r *JobApplicationRepository) DeleteJobApplication(ctx context.Context, key models.JobApplicationKey) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM job_applications WHERE caregiver_user_id = ? AND job_id = ?", key.CaregiverUserID, key.JobID)
	if err != nil {
		return false, fmt.Errorf("failed to delete job application: %w", err)
	}
	return affected(res)
}
