// Package forms turns submitted form values into typed entity inputs.
//
// Malformed text for a typed field yields an apperror ParseError naming the
// field. A missing required field yields a ValidationError. Empty optional
// fields become nil (SQL NULL), except hourly_rate and work_hours which
// default to 0.
package forms

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"carematch/internal/apperror"
	"carematch/internal/models"
)

// ParseID parses a required positive integer key.
func ParseID(field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperror.ValidationFailed(field, field+" is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ParseFailed(field, raw, "id")
	}
	return id, nil
}

// ParseJobApplicationKey parses the two halves of an application key.
func ParseJobApplicationKey(caregiverUserID, jobID string) (models.JobApplicationKey, error) {
	c, err := ParseID("caregiver_user_id", caregiverUserID)
	if err != nil {
		return models.JobApplicationKey{}, err
	}
	j, err := ParseID("job_id", jobID)
	if err != nil {
		return models.JobApplicationKey{}, err
	}
	return models.JobApplicationKey{CaregiverUserID: c, JobID: j}, nil
}

func ParseUser(v url.Values) (*models.User, error) {
	u := &models.User{
		Email:              v.Get("email"),
		GivenName:          v.Get("given_name"),
		Surname:            v.Get("surname"),
		City:               optional(v, "city"),
		PhoneNumber:        optional(v, "phone_number"),
		ProfileDescription: optional(v, "profile_description"),
		Password:           v.Get("password"),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

func ParseCaregiver(v url.Values) (*models.Caregiver, error) {
	id, err := ParseID("caregiver_user_id", v.Get("caregiver_user_id"))
	if err != nil {
		return nil, err
	}
	rate, err := parseFloat(v, "hourly_rate")
	if err != nil {
		return nil, err
	}
	c := &models.Caregiver{
		CaregiverUserID: id,
		Photo:           optional(v, "photo"),
		Gender:          optional(v, "gender"),
		CaregivingType:  optional(v, "caregiving_type"),
		HourlyRate:      rate,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func ParseMember(v url.Values) (*models.Member, error) {
	id, err := ParseID("member_user_id", v.Get("member_user_id"))
	if err != nil {
		return nil, err
	}
	return &models.Member{
		MemberUserID:         id,
		HouseRules:           optional(v, "house_rules"),
		DependentDescription: optional(v, "dependent_description"),
	}, nil
}

func ParseAddress(v url.Values) (*models.Address, error) {
	id, err := ParseID("member_user_id", v.Get("member_user_id"))
	if err != nil {
		return nil, err
	}
	return &models.Address{
		MemberUserID: id,
		HouseNumber:  optional(v, "house_number"),
		Street:       optional(v, "street"),
		Town:         optional(v, "town"),
	}, nil
}

func ParseJob(v url.Values) (*models.Job, error) {
	member, err := ParseID("member_user_id", v.Get("member_user_id"))
	if err != nil {
		return nil, err
	}
	posted, err := parseDate(v, "date_posted")
	if err != nil {
		return nil, err
	}
	return &models.Job{
		MemberUserID:           member,
		RequiredCaregivingType: optional(v, "required_caregiving_type"),
		OtherRequirements:      optional(v, "other_requirements"),
		DatePosted:             posted,
	}, nil
}

func ParseJobApplication(v url.Values) (*models.JobApplication, error) {
	key, err := ParseJobApplicationKey(v.Get("caregiver_user_id"), v.Get("job_id"))
	if err != nil {
		return nil, err
	}
	applied, err := parseDate(v, "date_applied")
	if err != nil {
		return nil, err
	}
	return &models.JobApplication{CaregiverUserID: key.CaregiverUserID, JobID: key.JobID, DateApplied: applied}, nil
}

func ParseAppointment(v url.Values) (*models.Appointment, error) {
	caregiver, err := ParseID("caregiver_user_id", v.Get("caregiver_user_id"))
	if err != nil {
		return nil, err
	}
	member, err := ParseID("member_user_id", v.Get("member_user_id"))
	if err != nil {
		return nil, err
	}
	date, err := parseDate(v, "appointment_date")
	if err != nil {
		return nil, err
	}
	at, err := parseTime(v, "appointment_time")
	if err != nil {
		return nil, err
	}
	hours, err := parseInt(v, "work_hours")
	if err != nil {
		return nil, err
	}
	a := &models.Appointment{
		CaregiverUserID: caregiver,
		MemberUserID:    member,
		AppointmentDate: date,
		AppointmentTime: at,
		WorkHours:       hours,
		Status:          optional(v, "status"),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func optional(v url.Values, field string) *string {
	s := strings.TrimSpace(v.Get(field))
	if s == "" {
		return nil
	}
	return &s
}

func parseDate(v url.Values, field string) (*models.Date, error) {
	raw := strings.TrimSpace(v.Get(field))
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, apperror.ParseFailed(field, raw, "date (YYYY-MM-DD)")
	}
	return &d, nil
}

func parseTime(v url.Values, field string) (*models.TimeOfDay, error) {
	raw := strings.TrimSpace(v.Get(field))
	if raw == "" {
		return nil, nil
	}
	t, err := models.ParseTimeOfDay(raw)
	if err != nil {
		return nil, apperror.ParseFailed(field, raw, "time (HH:MM)")
	}
	return &t, nil
}

func parseInt(v url.Values, field string) (int, error) {
	raw := strings.TrimSpace(v.Get(field))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.ParseFailed(field, raw, "integer")
	}
	return n, nil
}

func parseFloat(v url.Values, field string) (float64, error) {
	raw := strings.TrimSpace(v.Get(field))
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, apperror.ParseFailed(field, raw, "number")
	}
	return f, nil
}
