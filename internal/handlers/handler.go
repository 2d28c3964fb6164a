package handlers

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"carematch/internal/service"
)

// Handler serves the admin pages for every entity.
type Handler struct {
	gateway   *service.Gateway
	templates *template.Template
	logger    *slog.Logger
}

// NewHandler creates a new handler
func NewHandler(gateway *service.Gateway, templates *template.Template, logger *slog.Logger) *Handler {
	return &Handler{gateway: gateway, templates: templates, logger: logger}
}

// Router builds the chi router with the standard middleware stack.
func (h *Handler) Router(staticPath string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(Logging(h.logger))

	if staticPath != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticPath))))
	}

	r.Get("/", h.Index)
	r.Get("/healthz", h.Health)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Get("/create", h.NewUser)
		r.Post("/create", h.CreateUser)
		r.Get("/{id}/edit", h.EditUser)
		r.Post("/{id}/edit", h.UpdateUser)
		r.Post("/{id}/delete", h.DeleteUser)
	})
	r.Route("/caregivers", func(r chi.Router) {
		r.Get("/", h.ListCaregivers)
		r.Get("/create", h.NewCaregiver)
		r.Post("/create", h.CreateCaregiver)
		r.Get("/{id}/edit", h.EditCaregiver)
		r.Post("/{id}/edit", h.UpdateCaregiver)
		r.Post("/{id}/delete", h.DeleteCaregiver)
	})
	r.Route("/members", func(r chi.Router) {
		r.Get("/", h.ListMembers)
		r.Get("/create", h.NewMember)
		r.Post("/create", h.CreateMember)
		r.Get("/{id}/edit", h.EditMember)
		r.Post("/{id}/edit", h.UpdateMember)
		r.Post("/{id}/delete", h.DeleteMember)
	})
	r.Route("/addresses", func(r chi.Router) {
		r.Get("/", h.ListAddresses)
		r.Get("/create", h.NewAddress)
		r.Post("/create", h.CreateAddress)
		r.Get("/{id}/edit", h.EditAddress)
		r.Post("/{id}/edit", h.UpdateAddress)
		r.Post("/{id}/delete", h.DeleteAddress)
	})
	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", h.ListJobs)
		r.Get("/create", h.NewJob)
		r.Post("/create", h.CreateJob)
		r.Get("/{id}/edit", h.EditJob)
		r.Post("/{id}/edit", h.UpdateJob)
		r.Post("/{id}/delete", h.DeleteJob)
	})
	r.Route("/job_applications", func(r chi.Router) {
		r.Get("/", h.ListJobApplications)
		r.Get("/create", h.NewJobApplication)
		r.Post("/create", h.CreateJobApplication)
		r.Get("/{caregiverID}/{jobID}/edit", h.EditJobApplication)
		r.Post("/{caregiverID}/{jobID}/edit", h.UpdateJobApplication)
		r.Post("/{caregiverID}/{jobID}/delete", h.DeleteJobApplication)
	})
	r.Route("/appointments", func(r chi.Router) {
		r.Get("/", h.ListAppointments)
		r.Get("/create", h.NewAppointment)
		r.Post("/create", h.CreateAppointment)
		r.Get("/{id}/edit", h.EditAppointment)
		r.Post("/{id}/edit", h.UpdateAppointment)
		r.Post("/{id}/delete", h.DeleteAppointment)
	})

	return r
}

// Index links to every entity list
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	data := IndexViewData{
		Title: "Caregiving admin",
		Sections: []SectionLink{
			{Label: "Users", URL: "/users"},
			{Label: "Caregivers", URL: "/caregivers"},
			{Label: "Members", URL: "/members"},
			{Label: "Addresses", URL: "/addresses"},
			{Label: "Jobs", URL: "/jobs"},
			{Label: "Job applications", URL: "/job_applications"},
			{Label: "Appointments", URL: "/appointments"},
		},
	}
	h.render(w, r, http.StatusOK, "index.tmpl", data)
}

// Health pings the store
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.gateway.Ping(ctx); err != nil {
		respondWithError(w, r, h.logger, http.StatusServiceUnavailable, ErrStoreUnavailable, "health check failed", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// render buffers the template so a failed execution still yields a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error rendering "+name, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// formError re-renders a rejected form, or answers with plain text when the
// error is not about the submitted values.
func (h *Handler) formError(w http.ResponseWriter, r *http.Request, err error, op string, data FormViewData) {
	status := statusFor(err)
	switch status {
	case http.StatusBadRequest, http.StatusConflict:
		h.logger.InfoContext(r.Context(), op+" rejected", slog.String("reason", err.Error()))
		data.Error = userMessage(err)
		h.render(w, r, status, "form.tmpl", data)
	case http.StatusNotFound:
		respondWithError(w, r, h.logger, status, data.Heading+": not found", "", nil)
	default:
		respondWithError(w, r, h.logger, status, ErrInternalServerError, op, err)
	}
}

// deleteError answers a failed delete. A refused delete shows the list again.
func (h *Handler) deleteError(w http.ResponseWriter, r *http.Request, err error, op string, list func() (ListViewData, error)) {
	switch statusFor(err) {
	case http.StatusNotFound:
		respondWithError(w, r, h.logger, http.StatusNotFound, userMessage(err), "", nil)
	case http.StatusConflict:
		data, listErr := list()
		if listErr != nil {
			respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, op, listErr)
			return
		}
		data.Error = "Cannot delete: the record is still referenced (" + userMessage(err) + ")"
		h.render(w, r, http.StatusConflict, "list.tmpl", data)
	default:
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, op, err)
	}
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, what string) {
	respondWithError(w, r, h.logger, http.StatusNotFound, what+" not found", "", nil)
}

func parseForm(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (url.Values, bool) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, r, logger, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return nil, false
	}
	return r.PostForm, true
}

func seeOther(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func setIfPresent(v url.Values, name string, s *string) {
	if s != nil {
		v.Set(name, *s)
	}
}
