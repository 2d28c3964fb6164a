package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"carematch/internal/apperror"
	"carematch/internal/forms"
	"carematch/internal/models"
)

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	data, err := h.jobList(r)
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error listing jobs", err)
		return
	}
	h.render(w, r, http.StatusOK, "list.tmpl", data)
}

func (h *Handler) jobList(r *http.Request) (ListViewData, error) {
	jobs, err := h.gateway.ListJobs(r.Context())
	if err != nil {
		return ListViewData{}, err
	}
	data := ListViewData{
		Title:     "Jobs",
		Heading:   "Jobs",
		CreateURL: "/jobs/create",
		Columns:   []string{"ID", "Member ID", "Required caregiving type", "Other requirements", "Date posted"},
	}
	for _, j := range jobs {
		id := formatID(j.JobID)
		data.Rows = append(data.Rows, RowView{
			Cells:     []string{id, formatID(j.MemberUserID), deref(j.RequiredCaregivingType), deref(j.OtherRequirements), formatDate(j.DatePosted)},
			EditURL:   "/jobs/" + id + "/edit",
			DeleteURL: "/jobs/" + id + "/delete",
		})
	}
	return data, nil
}

func (h *Handler) NewJob(w http.ResponseWriter, r *http.Request) {
	h.showJobForm(w, r, url.Values{}, "/jobs/create", "New job")
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	members, err := h.memberChoices(r.Context())
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading members", err)
		return
	}

	j, err := forms.ParseJob(v)
	if err == nil {
		_, err = h.gateway.CreateJob(r.Context(), j)
	}
	if err != nil {
		h.formError(w, r, err, "create job", jobForm(v, "/jobs/create", "New job", members))
		return
	}
	seeOther(w, r, "/jobs")
}

func (h *Handler) EditJob(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("job_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Job")
		return
	}
	j, err := h.gateway.GetJob(r.Context(), id)
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "Job")
		return
	}
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading job", err)
		return
	}
	h.showJobForm(w, r, jobValues(j), "/jobs/"+formatID(id)+"/edit", "Edit job")
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("job_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Job")
		return
	}
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	members, err := h.memberChoices(r.Context())
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading members", err)
		return
	}

	j, err := forms.ParseJob(v)
	if err == nil {
		_, err = h.gateway.UpdateJob(r.Context(), id, j)
	}
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "Job")
		return
	}
	if err != nil {
		h.formError(w, r, err, "update job", jobForm(v, "/jobs/"+formatID(id)+"/edit", "Edit job", members))
		return
	}
	seeOther(w, r, "/jobs")
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("job_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Job")
		return
	}
	if err := h.gateway.DeleteJob(r.Context(), id); err != nil {
		if apperror.IsNotFound(err) {
			h.notFound(w, r, "Job")
			return
		}
		h.deleteError(w, r, err, "delete job", func() (ListViewData, error) { return h.jobList(r) })
		return
	}
	seeOther(w, r, "/jobs")
}

func (h *Handler) showJobForm(w http.ResponseWriter, r *http.Request, v url.Values, action, heading string) {
	members, err := h.memberChoices(r.Context())
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading members", err)
		return
	}
	h.render(w, r, http.StatusOK, "form.tmpl", jobForm(v, action, heading, members))
}

func jobValues(j *models.Job) url.Values {
	v := url.Values{}
	v.Set("member_user_id", formatID(j.MemberUserID))
	setIfPresent(v, "required_caregiving_type", j.RequiredCaregivingType)
	setIfPresent(v, "other_requirements", j.OtherRequirements)
	v.Set("date_posted", formatDate(j.DatePosted))
	return v
}

func jobForm(v url.Values, action, heading string, members []OptionView) FormViewData {
	return FormViewData{
		Title:       heading,
		Heading:     heading,
		Action:      action,
		SubmitLabel: "Save",
		CancelURL:   "/jobs",
		Fields: []FieldView{
			selectField(v, "member_user_id", true, members),
			selectField(v, "required_caregiving_type", false, stringOptions(models.CaregivingTypes)),
			textField(v, "other_requirements", "textarea", false),
			textField(v, "date_posted", "date", false),
		},
	}
}

func formatDate(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
