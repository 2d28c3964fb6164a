package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carematch/internal/apperror"
	"carematch/internal/database/dbtest"
	"carematch/internal/models"
)

func strPtr(s string) *string { return &s }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	return NewGateway(dbtest.New(t), quietLogger())
}

// fixture holds one member and one caregiver with distinct users.
type fixture struct {
	member    *models.Member
	caregiver *models.Caregiver
}

func seed(t *testing.T, g *Gateway) fixture {
	t.Helper()
	ctx := context.Background()

	mu, err := g.CreateUser(ctx, &models.User{Email: "member@x.com", GivenName: "Aigerim", Surname: "S", Password: "p"})
	require.NoError(t, err)
	cu, err := g.CreateUser(ctx, &models.User{Email: "carer@x.com", GivenName: "Dana", Surname: "K", Password: "p"})
	require.NoError(t, err)

	m, err := g.CreateMember(ctx, &models.Member{MemberUserID: mu.UserID})
	require.NoError(t, err)
	c, err := g.CreateCaregiver(ctx, &models.Caregiver{CaregiverUserID: cu.UserID, HourlyRate: 15})
	require.NoError(t, err)
	return fixture{member: m, caregiver: c}
}

func TestScenarioUserThenCaregiver(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	u, err := g.CreateUser(ctx, &models.User{Email: "a@x.com", GivenName: "A", Surname: "B", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.UserID)

	_, err = g.CreateCaregiver(ctx, &models.Caregiver{CaregiverUserID: 1, HourlyRate: 20.5})
	require.NoError(t, err)

	got, err := g.GetCaregiver(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &models.Caregiver{CaregiverUserID: 1, HourlyRate: 20.5}, got)
}

func TestScenarioJobForMissingMember(t *testing.T) {
	g := newTestGateway(t)

	_, err := g.CreateJob(context.Background(), &models.Job{MemberUserID: 999, OtherRequirements: strPtr("none")})
	assert.True(t, apperror.IsConstraint(err, apperror.ConstraintForeignKey), "got %v", err)

	jobs, err := g.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestScenarioAppointmentWorkHoursDefault(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	f := seed(t, g)

	date, err := models.ParseDate("2024-03-01")
	require.NoError(t, err)
	at, err := models.ParseTimeOfDay("14:30")
	require.NoError(t, err)

	created, err := g.CreateAppointment(ctx, &models.Appointment{
		CaregiverUserID: f.caregiver.CaregiverUserID,
		MemberUserID:    f.member.MemberUserID,
		AppointmentDate: &date,
		AppointmentTime: &at,
	})
	require.NoError(t, err)

	got, err := g.GetAppointment(ctx, created.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.WorkHours)
	assert.Nil(t, got.Status)
	assert.Equal(t, "2024-03-01", got.AppointmentDate.String())
	assert.Equal(t, "14:30", got.AppointmentTime.String())
}

func TestRoundTripWithOptionalFieldsOmitted(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	f := seed(t, g)

	addr, err := g.CreateAddress(ctx, &models.Address{MemberUserID: f.member.MemberUserID, Town: strPtr("Almaty")})
	require.NoError(t, err)
	got, err := g.GetAddress(ctx, f.member.MemberUserID)
	require.NoError(t, err)
	assert.Equal(t, addr, got)
	assert.Nil(t, got.Street)

	job, err := g.CreateJob(ctx, &models.Job{MemberUserID: f.member.MemberUserID})
	require.NoError(t, err)
	assert.Nil(t, job.DatePosted, "missing dates stay NULL")
	assert.Nil(t, job.RequiredCaregivingType)

	app, err := g.CreateJobApplication(ctx, &models.JobApplication{CaregiverUserID: f.caregiver.CaregiverUserID, JobID: job.JobID})
	require.NoError(t, err)
	assert.Nil(t, app.DateApplied)

	gotApp, err := g.GetJobApplication(ctx, app.Key())
	require.NoError(t, err)
	assert.Equal(t, app, gotApp)
}

func TestUpdateIsFullReplace(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	u, err := g.CreateUser(ctx, &models.User{
		Email: "full@x.com", GivenName: "F", Surname: "R", Password: "p",
		City: strPtr("Astana"), PhoneNumber: strPtr("+7 700"), ProfileDescription: strPtr("hello"),
	})
	require.NoError(t, err)

	replacement := &models.User{Email: "new@x.com", GivenName: "N", Surname: "W", Password: "q"}
	updated, err := g.UpdateUser(ctx, u.UserID, replacement)
	require.NoError(t, err)

	got, err := g.GetUser(ctx, u.UserID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Equal(t, u.UserID, got.UserID)
	assert.Equal(t, "new@x.com", got.Email)
	assert.Nil(t, got.City, "omitted optional fields are cleared, not kept")
	assert.Nil(t, got.PhoneNumber)
	assert.Nil(t, got.ProfileDescription)
}

func TestKeyedUpdatesKeepTheirKey(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	f := seed(t, g)

	c, err := g.UpdateCaregiver(ctx, f.caregiver.CaregiverUserID, &models.Caregiver{CaregiverUserID: 12345, Gender: strPtr("female")})
	require.NoError(t, err)
	assert.Equal(t, f.caregiver.CaregiverUserID, c.CaregiverUserID)
	assert.Equal(t, 0.0, c.HourlyRate)
	assert.Equal(t, "female", *c.Gender)

	job, err := g.CreateJob(ctx, &models.Job{MemberUserID: f.member.MemberUserID})
	require.NoError(t, err)
	_, err = g.CreateJobApplication(ctx, &models.JobApplication{CaregiverUserID: f.caregiver.CaregiverUserID, JobID: job.JobID})
	require.NoError(t, err)

	key := models.JobApplicationKey{CaregiverUserID: f.caregiver.CaregiverUserID, JobID: job.JobID}
	applied := models.Date{Year: 2024, Month: time.April, Day: 2}
	updated, err := g.UpdateJobApplication(ctx, key, &models.JobApplication{CaregiverUserID: 777, JobID: 888, DateApplied: &applied})
	require.NoError(t, err)
	assert.Equal(t, key, updated.Key())
	assert.Equal(t, applied, *updated.DateApplied)

	_, err = g.GetJobApplication(ctx, models.JobApplicationKey{CaregiverUserID: 777, JobID: 888})
	assert.True(t, apperror.IsNotFound(err))
}

func TestJobMayMoveToAnotherMember(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	f := seed(t, g)

	other, err := g.CreateUser(ctx, &models.User{Email: "other@x.com", GivenName: "O", Surname: "T", Password: "p"})
	require.NoError(t, err)
	_, err = g.CreateMember(ctx, &models.Member{MemberUserID: other.UserID})
	require.NoError(t, err)

	job, err := g.CreateJob(ctx, &models.Job{MemberUserID: f.member.MemberUserID})
	require.NoError(t, err)

	moved, err := g.UpdateJob(ctx, job.JobID, &models.Job{MemberUserID: other.UserID})
	require.NoError(t, err)
	assert.Equal(t, other.UserID, moved.MemberUserID)

	_, err = g.UpdateJob(ctx, job.JobID, &models.Job{MemberUserID: 999})
	assert.True(t, apperror.IsConstraint(err, apperror.ConstraintForeignKey), "got %v", err)
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	f := seed(t, g)

	job, err := g.CreateJob(ctx, &models.Job{MemberUserID: f.member.MemberUserID})
	require.NoError(t, err)

	require.NoError(t, g.DeleteJob(ctx, job.JobID))
	_, err = g.GetJob(ctx, job.JobID)
	assert.True(t, apperror.IsNotFound(err))

	err = g.DeleteJob(ctx, job.JobID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestMissingKeysAreNotFound(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	date := models.Date{Year: 2024, Month: time.March, Day: 1}
	at := models.TimeOfDay{Hour: 9}
	missingApp := models.JobApplicationKey{CaregiverUserID: 5, JobID: 6}

	tests := []struct {
		name string
		call func() error
	}{
		{"get user", func() error { _, err := g.GetUser(ctx, 404); return err }},
		{"update user", func() error {
			_, err := g.UpdateUser(ctx, 404, &models.User{Email: "e", GivenName: "g", Surname: "s", Password: "p"})
			return err
		}},
		{"delete user", func() error { return g.DeleteUser(ctx, 404) }},
		{"get caregiver", func() error { _, err := g.GetCaregiver(ctx, 404); return err }},
		{"update caregiver", func() error { _, err := g.UpdateCaregiver(ctx, 404, &models.Caregiver{}); return err }},
		{"delete caregiver", func() error { return g.DeleteCaregiver(ctx, 404) }},
		{"get member", func() error { _, err := g.GetMember(ctx, 404); return err }},
		{"update member", func() error { _, err := g.UpdateMember(ctx, 404, &models.Member{}); return err }},
		{"delete member", func() error { return g.DeleteMember(ctx, 404) }},
		{"get address", func() error { _, err := g.GetAddress(ctx, 404); return err }},
		{"update address", func() error { _, err := g.UpdateAddress(ctx, 404, &models.Address{}); return err }},
		{"delete address", func() error { return g.DeleteAddress(ctx, 404) }},
		{"get job", func() error { _, err := g.GetJob(ctx, 404); return err }},
		{"update job", func() error { _, err := g.UpdateJob(ctx, 404, &models.Job{MemberUserID: 1}); return err }},
		{"delete job", func() error { return g.DeleteJob(ctx, 404) }},
		{"get application", func() error { _, err := g.GetJobApplication(ctx, missingApp); return err }},
		{"update application", func() error {
			_, err := g.UpdateJobApplication(ctx, missingApp, &models.JobApplication{})
			return err
		}},
		{"delete application", func() error { return g.DeleteJobApplication(ctx, missingApp) }},
		{"get appointment", func() error { _, err := g.GetAppointment(ctx, 404); return err }},
		{"update appointment", func() error {
			_, err := g.UpdateAppointment(ctx, 404, &models.Appointment{
				CaregiverUserID: 1, MemberUserID: 1, AppointmentDate: &date, AppointmentTime: &at,
			})
			return err
		}},
		{"delete appointment", func() error { return g.DeleteAppointment(ctx, 404) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.True(t, apperror.IsNotFound(err), "got %v", err)
		})
	}
}

func TestUniqueConstraints(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	f := seed(t, g)

	_, err := g.CreateUser(ctx, &models.User{Email: "member@x.com", GivenName: "Dup", Surname: "E", Password: "p"})
	assert.True(t, apperror.IsConstraint(err, apperror.ConstraintUnique), "duplicate email: %v", err)

	job, err := g.CreateJob(ctx, &models.Job{MemberUserID: f.member.MemberUserID})
	require.NoError(t, err)
	app := &models.JobApplication{CaregiverUserID: f.caregiver.CaregiverUserID, JobID: job.JobID}
	_, err = g.CreateJobApplication(ctx, app)
	require.NoError(t, err)
	_, err = g.CreateJobApplication(ctx, app)
	assert.True(t, apperror.IsConstraint(err, apperror.ConstraintUnique), "duplicate application: %v", err)

	_, err = g.CreateAddress(ctx, &models.Address{MemberUserID: f.member.MemberUserID})
	require.NoError(t, err)
	_, err = g.CreateAddress(ctx, &models.Address{MemberUserID: f.member.MemberUserID})
	assert.True(t, apperror.IsConstraint(err, apperror.ConstraintUnique), "second address: %v", err)
}

func TestDanglingParents(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	f := seed(t, g)
	date := models.Date{Year: 2024, Month: time.March, Day: 1}
	at := models.TimeOfDay{Hour: 10}

	tests := []struct {
		name string
		call func() error
	}{
		{"caregiver without user", func() error {
			_, err := g.CreateCaregiver(ctx, &models.Caregiver{CaregiverUserID: 999})
			return err
		}},
		{"member without user", func() error {
			_, err := g.CreateMember(ctx, &models.Member{MemberUserID: 999})
			return err
		}},
		{"address without member", func() error {
			_, err := g.CreateAddress(ctx, &models.Address{MemberUserID: f.caregiver.CaregiverUserID})
			return err
		}},
		{"application without job", func() error {
			_, err := g.CreateJobApplication(ctx, &models.JobApplication{CaregiverUserID: f.caregiver.CaregiverUserID, JobID: 999})
			return err
		}},
		{"appointment without caregiver", func() error {
			_, err := g.CreateAppointment(ctx, &models.Appointment{
				CaregiverUserID: f.member.MemberUserID, MemberUserID: f.member.MemberUserID,
				AppointmentDate: &date, AppointmentTime: &at,
			})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.True(t, apperror.IsConstraint(err, apperror.ConstraintForeignKey), "got %v", err)
		})
	}
}

func TestDeleteReferencedRowIsRejected(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	f := seed(t, g)

	err := g.DeleteUser(ctx, f.member.MemberUserID)
	assert.True(t, apperror.IsConstraint(err, apperror.ConstraintForeignKey), "got %v", err)

	_, err = g.GetUser(ctx, f.member.MemberUserID)
	assert.NoError(t, err, "rejected delete leaves the row in place")
}

func TestValidationHappensBeforeTheStore(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	_, err := g.CreateUser(ctx, &models.User{Email: "v@x.com", GivenName: "V"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = g.CreateAppointment(ctx, &models.Appointment{CaregiverUserID: 1, MemberUserID: 1})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	users, err := g.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestNonFiniteHourlyRateIsRejected(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	u, err := g.CreateUser(ctx, &models.User{Email: "rate@x.com", GivenName: "R", Surname: "T", Password: "p"})
	require.NoError(t, err)

	for _, rate := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := g.CreateCaregiver(ctx, &models.Caregiver{CaregiverUserID: u.UserID, HourlyRate: rate})
		assert.ErrorIs(t, err, apperror.ErrValidation, "rate %v", rate)
	}

	c, err := g.CreateCaregiver(ctx, &models.Caregiver{CaregiverUserID: u.UserID, HourlyRate: 12})
	require.NoError(t, err)

	c.HourlyRate = math.Inf(1)
	_, err = g.UpdateCaregiver(ctx, u.UserID, c)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	stored, err := g.GetCaregiver(ctx, u.UserID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, stored.HourlyRate)

	var buf bytes.Buffer
	_, err = NewBackupService(g.db, quietLogger()).ExportToWriter(ctx, &buf)
	assert.NoError(t, err)
}

func TestAppointmentStatusIsFreeText(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	f := seed(t, g)
	date := models.Date{Year: 2024, Month: time.May, Day: 20}
	at := models.TimeOfDay{Hour: 8, Minute: 15}

	a, err := g.CreateAppointment(ctx, &models.Appointment{
		CaregiverUserID: f.caregiver.CaregiverUserID, MemberUserID: f.member.MemberUserID,
		AppointmentDate: &date, AppointmentTime: &at, WorkHours: 4, Status: strPtr("rescheduled"),
	})
	require.NoError(t, err)
	assert.Equal(t, "rescheduled", *a.Status)

	a.Status = strPtr(models.StatusAccepted)
	a.WorkHours = 6
	updated, err := g.UpdateAppointment(ctx, a.AppointmentID, a)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, *updated.Status)
	assert.Equal(t, 6, updated.WorkHours)
}
