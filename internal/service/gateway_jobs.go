package service

import (
	"context"

	"carematch/internal/apperror"
	"carematch/internal/models"
)

// ListJobs returns all job postings ordered by job_id
func (g *Gateway) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := g.inTx(ctx, func(r repos) (err error) {
		jobs, err = r.jobs.ListJobs(ctx)
		return err
	})
	return jobs, err
}

// GetJob retrieves a job posting by ID
func (g *Gateway) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	var j *models.Job
	err := g.inTx(ctx, func(r repos) (err error) {
		j, err = getJob(ctx, r, id)
		return err
	})
	return j, err
}

// CreateJob stores a posting. A nil DatePosted stays NULL.
func (g *Gateway) CreateJob(ctx context.Context, in *models.Job) (*models.Job, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	j := *in
	var stored *models.Job
	err := g.inTx(ctx, func(r repos) error {
		if err := r.jobs.CreateJob(ctx, &j); err != nil {
			return err
		}
		var err error
		stored, err = getJob(ctx, r, j.JobID)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "created", "job", idString(stored.JobID))
	return stored, nil
}

// UpdateJob may move the posting to another member.
func (g *Gateway) UpdateJob(ctx context.Context, id int64, in *models.Job) (*models.Job, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var stored *models.Job
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.jobs.UpdateJob(ctx, id, in)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("job", idString(id))
		}
		stored, err = getJob(ctx, r, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "updated", "job", idString(id))
	return stored, nil
}

// DeleteJob removes a posting that has no applications
func (g *Gateway) DeleteJob(ctx context.Context, id int64) error {
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.jobs.DeleteJob(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("job", idString(id))
		}
		return nil
	})
	if err == nil {
		g.logWrite(ctx, "deleted", "job", idString(id))
	}
	return err
}

func getJob(ctx context.Context, r repos, id int64) (*models.Job, error) {
	j, err := r.jobs.GetJobByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, apperror.NotFound("job", idString(id))
	}
	return j, nil
}

// ListJobApplications returns all applications ordered by caregiver then job
func (g *Gateway) ListJobApplications(ctx context.Context) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := g.inTx(ctx, func(r repos) (err error) {
		apps, err = r.applications.ListJobApplications(ctx)
		return err
	})
	return apps, err
}

// GetJobApplication retrieves an application by its composite key
func (g *Gateway) GetJobApplication(ctx context.Context, key models.JobApplicationKey) (*models.JobApplication, error) {
	var app *models.JobApplication
	err := g.inTx(ctx, func(r repos) (err error) {
		app, err = getJobApplication(ctx, r, key)
		return err
	})
	return app, err
}

// CreateJobApplication fails with a unique violation when the caregiver has
// already applied to the job.
func (g *Gateway) CreateJobApplication(ctx context.Context, in *models.JobApplication) (*models.JobApplication, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var stored *models.JobApplication
	err := g.inTx(ctx, func(r repos) error {
		if err := r.applications.CreateJobApplication(ctx, in); err != nil {
			return err
		}
		var err error
		stored, err = getJobApplication(ctx, r, in.Key())
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "created", "job_application", in.Key().String())
	return stored, nil
}

// UpdateJobApplication only changes date_applied. Key fields in in are
// ignored.
func (g *Gateway) UpdateJobApplication(ctx context.Context, key models.JobApplicationKey, in *models.JobApplication) (*models.JobApplication, error) {
	app := models.JobApplication{CaregiverUserID: key.CaregiverUserID, JobID: key.JobID, DateApplied: in.DateApplied}
	if err := app.Validate(); err != nil {
		return nil, err
	}
	var stored *models.JobApplication
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.applications.UpdateJobApplication(ctx, key, app.DateApplied)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("job application", key.String())
		}
		stored, err = getJobApplication(ctx, r, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "updated", "job_application", key.String())
	return stored, nil
}

// DeleteJobApplication removes one application
func (g *Gateway) DeleteJobApplication(ctx context.Context, key models.JobApplicationKey) error {
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.applications.DeleteJobApplication(ctx, key)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("job application", key.String())
		}
		return nil
	})
	if err == nil {
		g.logWrite(ctx, "deleted", "job_application", key.String())
	}
	return err
}

func getJobApplication(ctx context.Context, r repos, key models.JobApplicationKey) (*models.JobApplication, error) {
	app, err := r.applications.GetJobApplication(ctx, key)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, apperror.NotFound("job application", key.String())
	}
	return app, nil
}

// ListAppointments returns all appointments ordered by appointment_id
func (g *Gateway) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := g.inTx(ctx, func(r repos) (err error) {
		appointments, err = r.appointments.ListAppointments(ctx)
		return err
	})
	return appointments, err
}

// GetAppointment retrieves an appointment by ID
func (g *Gateway) GetAppointment(ctx context.Context, id int64) (*models.Appointment, error) {
	var a *models.Appointment
	err := g.inTx(ctx, func(r repos) (err error) {
		a, err = getAppointment(ctx, r, id)
		return err
	})
	return a, err
}

// CreateAppointment stores a booking. Status is free text.
func (g *Gateway) CreateAppointment(ctx context.Context, in *models.Appointment) (*models.Appointment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	a := *in
	var stored *models.Appointment
	err := g.inTx(ctx, func(r repos) error {
		if err := r.appointments.CreateAppointment(ctx, &a); err != nil {
			return err
		}
		var err error
		stored, err = getAppointment(ctx, r, a.AppointmentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "created", "appointment", idString(stored.AppointmentID))
	return stored, nil
}

// UpdateAppointment replaces every non-key field, including caregiver and member
func (g *Gateway) UpdateAppointment(ctx context.Context, id int64, in *models.Appointment) (*models.Appointment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var stored *models.Appointment
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.appointments.UpdateAppointment(ctx, id, in)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("appointment", idString(id))
		}
		stored, err = getAppointment(ctx, r, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "updated", "appointment", idString(id))
	return stored, nil
}

// DeleteAppointment removes one appointment
func (g *Gateway) DeleteAppointment(ctx context.Context, id int64) error {
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.appointments.DeleteAppointment(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("appointment", idString(id))
		}
		return nil
	})
	if err == nil {
		g.logWrite(ctx, "deleted", "appointment", idString(id))
	}
	return err
}

func getAppointment(ctx context.Context, r repos, id int64) (*models.Appointment, error) {
	a, err := r.appointments.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperror.NotFound("appointment", idString(id))
	}
	return a, nil
}
