package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"carematch/internal/apperror"
	"carematch/internal/forms"
	"carematch/internal/models"
)

func (h *Handler) ListJobApplications(w http.ResponseWriter, r *http.Request) {
	data, err := h.jobApplicationList(r)
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error listing job applications", err)
		return
	}
	h.render(w, r, http.StatusOK, "list.tmpl", data)
}

func (h *Handler) jobApplicationList(r *http.Request) (ListViewData, error) {
	apps, err := h.gateway.ListJobApplications(r.Context())
	if err != nil {
		return ListViewData{}, err
	}
	data := ListViewData{
		Title:     "Job applications",
		Heading:   "Job applications",
		CreateURL: "/job_applications/create",
		Columns:   []string{"Caregiver ID", "Job ID", "Date applied"},
	}
	for _, a := range apps {
		base := "/job_applications/" + a.Key().String()
		data.Rows = append(data.Rows, RowView{
			Cells:     []string{formatID(a.CaregiverUserID), formatID(a.JobID), formatDate(a.DateApplied)},
			EditURL:   base + "/edit",
			DeleteURL: base + "/delete",
		})
	}
	return data, nil
}

func (h *Handler) NewJobApplication(w http.ResponseWriter, r *http.Request) {
	caregivers, jobs, err := h.applicationChoices(r)
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading choices", err)
		return
	}
	h.render(w, r, http.StatusOK, "form.tmpl", jobApplicationForm(url.Values{}, "/job_applications/create", "New job application", caregivers, jobs))
}

func (h *Handler) CreateJobApplication(w http.ResponseWriter, r *http.Request) {
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	caregivers, jobs, err := h.applicationChoices(r)
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading choices", err)
		return
	}
	form := jobApplicationForm(v, "/job_applications/create", "New job application", caregivers, jobs)

	app, err := forms.ParseJobApplication(v)
	if err == nil {
		_, err = h.gateway.CreateJobApplication(r.Context(), app)
	}
	if err != nil {
		h.formError(w, r, err, "create job application", form)
		return
	}
	seeOther(w, r, "/job_applications")
}

func (h *Handler) EditJobApplication(w http.ResponseWriter, r *http.Request) {
	key, err := forms.ParseJobApplicationKey(chi.URLParam(r, "caregiverID"), chi.URLParam(r, "jobID"))
	if err != nil {
		h.notFound(w, r, "Job application")
		return
	}
	app, err := h.gateway.GetJobApplication(r.Context(), key)
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "Job application")
		return
	}
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading job application", err)
		return
	}
	action := "/job_applications/" + key.String() + "/edit"
	h.render(w, r, http.StatusOK, "form.tmpl", jobApplicationForm(jobApplicationValues(app), action, "Edit job application", nil, nil))
}

// UpdateJobApplication only changes date_applied; the key comes from the URL.
func (h *Handler) UpdateJobApplication(w http.ResponseWriter, r *http.Request) {
	key, err := forms.ParseJobApplicationKey(chi.URLParam(r, "caregiverID"), chi.URLParam(r, "jobID"))
	if err != nil {
		h.notFound(w, r, "Job application")
		return
	}
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	v.Set("caregiver_user_id", formatID(key.CaregiverUserID))
	v.Set("job_id", formatID(key.JobID))
	form := jobApplicationForm(v, "/job_applications/"+key.String()+"/edit", "Edit job application", nil, nil)

	app, err := forms.ParseJobApplication(v)
	if err == nil {
		_, err = h.gateway.UpdateJobApplication(r.Context(), key, app)
	}
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "Job application")
		return
	}
	if err != nil {
		h.formError(w, r, err, "update job application", form)
		return
	}
	seeOther(w, r, "/job_applications")
}

func (h *Handler) DeleteJobApplication(w http.ResponseWriter, r *http.Request) {
	key, err := forms.ParseJobApplicationKey(chi.URLParam(r, "caregiverID"), chi.URLParam(r, "jobID"))
	if err != nil {
		h.notFound(w, r, "Job application")
		return
	}
	if err := h.gateway.DeleteJobApplication(r.Context(), key); err != nil {
		if apperror.IsNotFound(err) {
			h.notFound(w, r, "Job application")
			return
		}
		h.deleteError(w, r, err, "delete job application", func() (ListViewData, error) { return h.jobApplicationList(r) })
		return
	}
	seeOther(w, r, "/job_applications")
}

func (h *Handler) applicationChoices(r *http.Request) (caregivers, jobs []OptionView, err error) {
	if caregivers, err = h.caregiverChoices(r.Context()); err != nil {
		return nil, nil, err
	}
	if jobs, err = h.jobChoices(r.Context()); err != nil {
		return nil, nil, err
	}
	return caregivers, jobs, nil
}

func jobApplicationValues(a *models.JobApplication) url.Values {
	v := url.Values{}
	v.Set("caregiver_user_id", formatID(a.CaregiverUserID))
	v.Set("job_id", formatID(a.JobID))
	v.Set("date_applied", formatDate(a.DateApplied))
	return v
}

// jobApplicationForm shows pickers for the key on create and read-only key
// fields on edit (both choice lists nil).
func jobApplicationForm(v url.Values, action, heading string, caregivers, jobs []OptionView) FormViewData {
	data := FormViewData{
		Title:       heading,
		Heading:     heading,
		Action:      action,
		SubmitLabel: "Save",
		CancelURL:   "/job_applications",
	}
	if caregivers != nil && jobs != nil {
		data.Fields = append(data.Fields,
			selectField(v, "caregiver_user_id", true, caregivers),
			selectField(v, "job_id", true, jobs),
		)
	} else {
		data.Fields = append(data.Fields, keyField(v, "caregiver_user_id"), keyField(v, "job_id"))
	}
	data.Fields = append(data.Fields, textField(v, "date_applied", "date", false))
	return data
}
