package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carematch/internal/database"
	"carematch/internal/models"
)

const jobColumns = "job_id, member_user_id, required_caregiving_type, other_requirements, date_posted"

// JobRepository handles database operations for job postings
type JobRepository struct {
	db database.DBTX
}

func NewJobRepository(db database.DBTX) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) ListJobs(ctx context.Context) ([]models.Job, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+jobColumns+" FROM jobs ORDER BY job_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		var j models.Job
		if err := scanJob(rows, &j); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	var j models.Job
	err := scanJob(r.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE job_id = ?", id), &j)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// CreateJob inserts j and sets its generated id
func (r *JobRepository) CreateJob(ctx context.Context, j *models.Job) error {
	query := `
		INSERT INTO jobs (member_user_id, required_caregiving_type, other_requirements, date_posted)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, "job_id", query, j.MemberUserID, j.RequiredCaregivingType, j.OtherRequirements, j.DatePosted)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	j.JobID = id
	return nil
}

// InsertJob keeps j's id. Used when restoring a backup.
func (r *JobRepository) InsertJob(ctx context.Context, j *models.Job) error {
	query := `
		INSERT INTO jobs (job_id, member_user_id, required_caregiving_type, other_requirements, date_posted)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, j.JobID, j.MemberUserID, j.RequiredCaregivingType, j.OtherRequirements, j.DatePosted); err != nil {
		return fmt.Errorf("failed to insert job %d: %w", j.JobID, err)
	}
	return nil
}

func (r *JobRepository) UpdateJob(ctx context.Context, id int64, j *models.Job) (bool, error) {
	query := `
		UPDATE jobs
		SET member_user_id = ?, required_caregiving_type = ?, other_requirements = ?, date_posted = ?
		WHERE job_id = ?
	`
	res, err := r.db.ExecContext(ctx, query, j.MemberUserID, j.RequiredCaregivingType, j.OtherRequirements, j.DatePosted, id)
	if err != nil {
		return false, fmt.Errorf("failed to update job: %w", err)
	}
	return affected(res)
}

func (r *JobRepository) DeleteJob(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM jobs WHERE job_id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}
	return affected(res)
}

func scanJob(s scanner, j *models.Job) error {
	return s.Scan(&j.JobID, &j.MemberUserID, &j.RequiredCaregivingType, &j.OtherRequirements, &j.DatePosted)
}
