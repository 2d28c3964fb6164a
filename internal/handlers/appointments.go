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

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	data, err := h.appointmentList(r)
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error listing appointments", err)
		return
	}
	h.render(w, r, http.StatusOK, "list.tmpl", data)
}

func (h *Handler) appointmentList(r *http.Request) (ListViewData, error) {
	appointments, err := h.gateway.ListAppointments(r.Context())
	if err != nil {
		return ListViewData{}, err
	}
	data := ListViewData{
		Title:     "Appointments",
		Heading:   "Appointments",
		CreateURL: "/appointments/create",
		Columns:   []string{"ID", "Caregiver ID", "Member ID", "Date", "Time", "Work hours", "Status"},
	}
	for _, a := range appointments {
		id := formatID(a.AppointmentID)
		data.Rows = append(data.Rows, RowView{
			Cells: []string{
				id,
				formatID(a.CaregiverUserID),
				formatID(a.MemberUserID),
				formatDate(a.AppointmentDate),
				formatTime(a.AppointmentTime),
				strconv.Itoa(a.WorkHours),
				deref(a.Status),
			},
			EditURL:   "/appointments/" + id + "/edit",
			DeleteURL: "/appointments/" + id + "/delete",
		})
	}
	return data, nil
}

func (h *Handler) NewAppointment(w http.ResponseWriter, r *http.Request) {
	h.showAppointmentForm(w, r, url.Values{}, "/appointments/create", "New appointment")
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	caregivers, members, err := h.appointmentChoices(r)
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading choices", err)
		return
	}

	a, err := forms.ParseAppointment(v)
	if err == nil {
		_, err = h.gateway.CreateAppointment(r.Context(), a)
	}
	if err != nil {
		h.formError(w, r, err, "create appointment", appointmentForm(v, "/appointments/create", "New appointment", caregivers, members))
		return
	}
	seeOther(w, r, "/appointments")
}

func (h *Handler) EditAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("appointment_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Appointment")
		return
	}
	a, err := h.gateway.GetAppointment(r.Context(), id)
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "Appointment")
		return
	}
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading appointment", err)
		return
	}
	h.showAppointmentForm(w, r, appointmentValues(a), "/appointments/"+formatID(id)+"/edit", "Edit appointment")
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("appointment_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Appointment")
		return
	}
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	caregivers, members, err := h.appointmentChoices(r)
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading choices", err)
		return
	}

	a, err := forms.ParseAppointment(v)
	if err == nil {
		_, err = h.gateway.UpdateAppointment(r.Context(), id, a)
	}
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "Appointment")
		return
	}
	if err != nil {
		h.formError(w, r, err, "update appointment", appointmentForm(v, "/appointments/"+formatID(id)+"/edit", "Edit appointment", caregivers, members))
		return
	}
	seeOther(w, r, "/appointments")
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("appointment_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Appointment")
		return
	}
	if err := h.gateway.DeleteAppointment(r.Context(), id); err != nil {
		if apperror.IsNotFound(err) {
			h.notFound(w, r, "Appointment")
			return
		}
		h.deleteError(w, r, err, "delete appointment", func() (ListViewData, error) { return h.appointmentList(r) })
		return
	}
	seeOther(w, r, "/appointments")
}

func (h *Handler) showAppointmentForm(w http.ResponseWriter, r *http.Request, v url.Values, action, heading string) {
	caregivers, members, err := h.appointmentChoices(r)
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading choices", err)
		return
	}
	h.render(w, r, http.StatusOK, "form.tmpl", appointmentForm(v, action, heading, caregivers, members))
}

func (h *Handler) appointmentChoices(r *http.Request) (caregivers, members []OptionView, err error) {
	if caregivers, err = h.caregiverChoices(r.Context()); err != nil {
		return nil, nil, err
	}
	if members, err = h.memberChoices(r.Context()); err != nil {
		return nil, nil, err
	}
	return caregivers, members, nil
}

func appointmentValues(a *models.Appointment) url.Values {
	v := url.Values{}
	v.Set("caregiver_user_id", formatID(a.CaregiverUserID))
	v.Set("member_user_id", formatID(a.MemberUserID))
	v.Set("appointment_date", formatDate(a.AppointmentDate))
	v.Set("appointment_time", formatTime(a.AppointmentTime))
	v.Set("work_hours", strconv.Itoa(a.WorkHours))
	setIfPresent(v, "status", a.Status)
	return v
}

func appointmentForm(v url.Values, action, heading string, caregivers, members []OptionView) FormViewData {
	hours := textField(v, "work_hours", "number", false)
	hours.Step = "1"
	return FormViewData{
		Title:       heading,
		Heading:     heading,
		Action:      action,
		SubmitLabel: "Save",
		CancelURL:   "/appointments",
		Fields: []FieldView{
			selectField(v, "caregiver_user_id", true, caregivers),
			selectField(v, "member_user_id", true, members),
			textField(v, "appointment_date", "date", true),
			textField(v, "appointment_time", "time", true),
			hours,
			selectField(v, "status", false, stringOptions(models.AppointmentStatuses)),
		},
	}
}

func formatTime(t *models.TimeOfDay) string {
	if t == nil {
		return ""
	}
	return t.String()
}
