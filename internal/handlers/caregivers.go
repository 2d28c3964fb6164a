package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"carematch/internal/apperror"
	"carematch/internal/forms"
	"carematch/internal/models"
)

func (h *Handler) ListCaregivers(w http.ResponseWriter, r *http.Request) {
	data, err := h.caregiverList(r)
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error listing caregivers", err)
		return
	}
	h.render(w, r, http.StatusOK, "list.tmpl", data)
}

func (h *Handler) caregiverList(r *http.Request) (ListViewData, error) {
	caregivers, err := h.gateway.ListCaregivers(r.Context())
	if err != nil {
		return ListViewData{}, err
	}
	data := ListViewData{
		Title:     "Caregivers",
		Heading:   "Caregivers",
		CreateURL: "/caregivers/create",
		Columns:   []string{"User ID", "Photo", "Gender", "Caregiving type", "Hourly rate"},
	}
	for _, c := range caregivers {
		id := formatID(c.CaregiverUserID)
		data.Rows = append(data.Rows, RowView{
			Cells:     []string{id, deref(c.Photo), deref(c.Gender), deref(c.CaregivingType), formatRate(c.HourlyRate)},
			EditURL:   "/caregivers/" + id + "/edit",
			DeleteURL: "/caregivers/" + id + "/delete",
		})
	}
	return data, nil
}

func (h *Handler) NewCaregiver(w http.ResponseWriter, r *http.Request) {
	users, err := h.userChoices(r.Context())
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading users", err)
		return
	}
	h.render(w, r, http.StatusOK, "form.tmpl", caregiverForm(url.Values{}, "/caregivers/create", "New caregiver", users))
}

func (h *Handler) CreateCaregiver(w http.ResponseWriter, r *http.Request) {
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	users, err := h.userChoices(r.Context())
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading users", err)
		return
	}
	form := caregiverForm(v, "/caregivers/create", "New caregiver", users)

	c, err := forms.ParseCaregiver(v)
	if err == nil {
		_, err = h.gateway.CreateCaregiver(r.Context(), c)
	}
	if err != nil {
		h.formError(w, r, err, "create caregiver", form)
		return
	}
	seeOther(w, r, "/caregivers")
}

func (h *Handler) EditCaregiver(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("caregiver_user_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Caregiver")
		return
	}
	c, err := h.gateway.GetCaregiver(r.Context(), id)
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "Caregiver")
		return
	}
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading caregiver", err)
		return
	}
	action := "/caregivers/" + formatID(id) + "/edit"
	h.render(w, r, http.StatusOK, "form.tmpl", caregiverForm(caregiverValues(c), action, "Edit caregiver", nil))
}

func (h *Handler) UpdateCaregiver(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("caregiver_user_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Caregiver")
		return
	}
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	v.Set("caregiver_user_id", formatID(id))
	form := caregiverForm(v, "/caregivers/"+formatID(id)+"/edit", "Edit caregiver", nil)

	c, err := forms.ParseCaregiver(v)
	if err == nil {
		_, err = h.gateway.UpdateCaregiver(r.Context(), id, c)
	}
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "Caregiver")
		return
	}
	if err != nil {
		h.formError(w, r, err, "update caregiver", form)
		return
	}
	seeOther(w, r, "/caregivers")
}

func (h *Handler) DeleteCaregiver(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("caregiver_user_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Caregiver")
		return
	}
	if err := h.gateway.DeleteCaregiver(r.Context(), id); err != nil {
		if apperror.IsNotFound(err) {
			h.notFound(w, r, "Caregiver")
			return
		}
		h.deleteError(w, r, err, "delete caregiver", func() (ListViewData, error) { return h.caregiverList(r) })
		return
	}
	seeOther(w, r, "/caregivers")
}

func caregiverValues(c *models.Caregiver) url.Values {
	v := url.Values{}
	v.Set("caregiver_user_id", formatID(c.CaregiverUserID))
	setIfPresent(v, "photo", c.Photo)
	setIfPresent(v, "gender", c.Gender)
	setIfPresent(v, "caregiving_type", c.CaregivingType)
	v.Set("hourly_rate", formatRate(c.HourlyRate))
	return v
}

// caregiverForm shows a user picker when users is non-nil, otherwise the
// key is read-only.
func caregiverForm(v url.Values, action, heading string, users []OptionView) FormViewData {
	data := FormViewData{
		Title:       heading,
		Heading:     heading,
		Action:      action,
		SubmitLabel: "Save",
		CancelURL:   "/caregivers",
	}
	if users != nil {
		data.Fields = append(data.Fields, selectField(v, "caregiver_user_id", true, users))
	} else {
		data.Fields = append(data.Fields, keyField(v, "caregiver_user_id"))
	}
	rate := textField(v, "hourly_rate", "number", false)
	rate.Step = "0.01"
	data.Fields = append(data.Fields,
		textField(v, "photo", "text", false),
		selectField(v, "gender", false, stringOptions(genders)),
		selectField(v, "caregiving_type", false, stringOptions(models.CaregivingTypes)),
		rate,
	)
	return data
}

func formatRate(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
