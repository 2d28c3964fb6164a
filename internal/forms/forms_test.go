package forms

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carematch/internal/apperror"
	"carematch/internal/models"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "not an AppError: %v", err)
	return appErr.Field
}

func TestParseUser(t *testing.T) {
	u, err := ParseUser(url.Values{
		"email":      {"a@x.com"},
		"given_name": {"A"},
		"surname":    {"B"},
		"password":   {"p"},
		"city":       {""},
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Nil(t, u.City, "blank optional field is NULL")

	_, err = ParseUser(url.Values{"email": {"a@x.com"}, "given_name": {"A"}, "password": {"p"}})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, "surname", fieldOf(t, err))
}

func TestParseCaregiver(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		wantRate  float64
		wantErr   error
		wantField string
	}{
		{name: "rate given", values: url.Values{"caregiver_user_id": {"1"}, "hourly_rate": {"20.5"}}, wantRate: 20.5},
		{name: "rate omitted", values: url.Values{"caregiver_user_id": {"1"}}, wantRate: 0},
		{name: "rate malformed", values: url.Values{"caregiver_user_id": {"1"}, "hourly_rate": {"cheap"}}, wantErr: apperror.ErrParse, wantField: "hourly_rate"},
		{name: "rate NaN", values: url.Values{"caregiver_user_id": {"1"}, "hourly_rate": {"NaN"}}, wantErr: apperror.ErrParse, wantField: "hourly_rate"},
		{name: "rate Inf", values: url.Values{"caregiver_user_id": {"1"}, "hourly_rate": {"Inf"}}, wantErr: apperror.ErrParse, wantField: "hourly_rate"},
		{name: "rate -Infinity", values: url.Values{"caregiver_user_id": {"1"}, "hourly_rate": {"-Infinity"}}, wantErr: apperror.ErrParse, wantField: "hourly_rate"},
		{name: "key missing", values: url.Values{"hourly_rate": {"3"}}, wantErr: apperror.ErrValidation, wantField: "caregiver_user_id"},
		{name: "key malformed", values: url.Values{"caregiver_user_id": {"one"}}, wantErr: apperror.ErrParse, wantField: "caregiver_user_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCaregiver(tt.values)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantField, fieldOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRate, c.HourlyRate)
			assert.Nil(t, c.Photo)
		})
	}
}

func TestParseAppointment(t *testing.T) {
	base := func() url.Values {
		return url.Values{
			"caregiver_user_id": {"1"},
			"member_user_id":    {"2"},
			"appointment_date":  {"2024-03-01"},
			"appointment_time":  {"14:30"},
		}
	}

	a, err := ParseAppointment(base())
	require.NoError(t, err)
	assert.Equal(t, models.Date{Year: 2024, Month: time.March, Day: 1}, *a.AppointmentDate)
	assert.Equal(t, models.TimeOfDay{Hour: 14, Minute: 30}, *a.AppointmentTime)
	assert.Equal(t, 0, a.WorkHours)
	assert.Nil(t, a.Status)

	tests := []struct {
		name      string
		field     string
		value     string
		wantErr   error
		wantField string
	}{
		{"bad date", "appointment_date", "01/03/2024", apperror.ErrParse, "appointment_date"},
		{"bad time", "appointment_time", "2pm", apperror.ErrParse, "appointment_time"},
		{"bad hours", "work_hours", "three", apperror.ErrParse, "work_hours"},
		{"missing date", "appointment_date", "", apperror.ErrValidation, "appointment_date"},
		{"missing time", "appointment_time", "", apperror.ErrValidation, "appointment_time"},
		{"negative hours", "work_hours", "-2", apperror.ErrValidation, "work_hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base()
			v.Set(tt.field, tt.value)
			_, err := ParseAppointment(v)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantField, fieldOf(t, err))
		})
	}
}

func TestParseJobAndApplicationDates(t *testing.T) {
	j, err := ParseJob(url.Values{"member_user_id": {"4"}, "date_posted": {""}})
	require.NoError(t, err)
	assert.Nil(t, j.DatePosted, "empty date stays NULL")

	_, err = ParseJob(url.Values{"member_user_id": {"4"}, "date_posted": {"2024-02-30"}})
	assert.ErrorIs(t, err, apperror.ErrParse)

	app, err := ParseJobApplication(url.Values{"caregiver_user_id": {"1"}, "job_id": {"9"}, "date_applied": {"2024-03-02"}})
	require.NoError(t, err)
	assert.Equal(t, models.JobApplicationKey{CaregiverUserID: 1, JobID: 9}, app.Key())
	assert.Equal(t, "2024-03-02", app.DateApplied.String())
}

func TestParseKeys(t *testing.T) {
	key, err := ParseJobApplicationKey("3", "7")
	require.NoError(t, err)
	assert.Equal(t, "3/7", key.String())

	_, err = ParseJobApplicationKey("3", "x")
	assert.ErrorIs(t, err, apperror.ErrParse)

	_, err = ParseID("user_id", "0")
	assert.ErrorIs(t, err, apperror.ErrParse)

	m, err := ParseMember(url.Values{"member_user_id": {"5"}, "house_rules": {"  quiet  "}})
	require.NoError(t, err)
	assert.Equal(t, "quiet", *m.HouseRules)

	addr, err := ParseAddress(url.Values{"member_user_id": {"5"}, "town": {"Shymkent"}})
	require.NoError(t, err)
	assert.Nil(t, addr.Street)
}
