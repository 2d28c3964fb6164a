package models

import "carematch/internal/apperror"

// Status values offered by the appointment form. Any string is stored.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

var AppointmentStatuses = []string{StatusPending, StatusAccepted, StatusDeclined}

// Appointment books a caregiver for a member.
type Appointment struct {
	AppointmentID   int64      `json:"appointment_id"`
	CaregiverUserID int64      `json:"caregiver_user_id"`
	MemberUserID    int64      `json:"member_user_id"`
	AppointmentDate *Date      `json:"appointment_date"`
	AppointmentTime *TimeOfDay `json:"appointment_time"`
	WorkHours       int        `json:"work_hours"`
	Status          *string    `json:"status"`
}

func (a *Appointment) Validate() error {
	if err := requireID("caregiver_user_id", a.CaregiverUserID); err != nil {
		return err
	}
	if err := requireID("member_user_id", a.MemberUserID); err != nil {
		return err
	}
	if a.AppointmentDate == nil {
		return apperror.ValidationFailed("appointment_date", "appointment_date is required")
	}
	if a.AppointmentTime == nil {
		return apperror.ValidationFailed("appointment_time", "appointment_time is required")
	}
	if a.WorkHours < 0 {
		return apperror.ValidationFailed("work_hours", "work_hours must not be negative")
	}
	return nil
}
