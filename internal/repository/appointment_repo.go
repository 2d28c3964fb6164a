package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carematch/internal/database"
	"carematch/internal/models"
)

const appointmentColumns = "appointment_id, caregiver_user_id, member_user_id, appointment_date, appointment_time, work_hours, status"

// AppointmentRepository handles database operations for appointments
type AppointmentRepository struct {
	db database.DBTX
}

func NewAppointmentRepository(db database.DBTX) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+appointmentColumns+" FROM appointments ORDER BY appointment_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		var a models.Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func (r *AppointmentRepository) GetAppointmentByID(ctx context.Context, id int64) (*models.Appointment, error) {
	var a models.Appointment
	err := scanAppointment(r.db.QueryRowContext(ctx, "SELECT "+appointmentColumns+" FROM appointments WHERE appointment_id = ?", id), &a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &a, nil
}

// CreateAppointment inserts a and sets its generated id
func (r *AppointmentRepository) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	query := `
		INSERT INTO appointments (caregiver_user_id, member_user_id, appointment_date, appointment_time, work_hours, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, "appointment_id", query,
		a.CaregiverUserID, a.MemberUserID, a.AppointmentDate, a.AppointmentTime, a.WorkHours, a.Status)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	a.AppointmentID = id
	return nil
}

// InsertAppointment keeps a's id. Used when restoring a backup.
func (r *AppointmentRepository) InsertAppointment(ctx context.Context, a *models.Appointment) error {
	query := `
		INSERT INTO appointments (appointment_id, caregiver_user_id, member_user_id, appointment_date, appointment_time, work_hours, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.AppointmentID, a.CaregiverUserID, a.MemberUserID, a.AppointmentDate, a.AppointmentTime, a.WorkHours, a.Status)
	if err != nil {
		return fmt.Errorf("failed to insert appointment %d: %w", a.AppointmentID, err)
	}
	return nil
}

func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, id int64, a *models.Appointment) (bool, error) {
	query := `
		UPDATE appointments
		SET caregiver_user_id = ?, member_user_id = ?, appointment_date = ?, appointment_time = ?, work_hours = ?, status = ?
		WHERE appointment_id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		a.CaregiverUserID, a.MemberUserID, a.AppointmentDate, a.AppointmentTime, a.WorkHours, a.Status, id)
	if err != nil {
		return false, fmt.Errorf("failed to update appointment: %w", err)
	}
	return affected(res)
}

func (r *AppointmentRepository) DeleteAppointment(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM appointments WHERE appointment_id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete appointment: %w", err)
	}
	return affected(res)
}

func scanAppointment(s scanner, a *models.Appointment) error {
	return s.Scan(&a.AppointmentID, &a.CaregiverUserID, &a.MemberUserID, &a.AppointmentDate, &a.AppointmentTime, &a.WorkHours, &a.Status)
}
