package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carematch/internal/database/dbtest"
	"carematch/internal/service"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tmpl, err := LoadTemplates("../../web/templates")
	require.NoError(t, err)

	gateway := service.NewGateway(dbtest.New(t), logger)
	return NewHandler(gateway, tmpl, logger).Router("")
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func post(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func userForm1() url.Values {
	return url.Values{"email": {"a@x.com"}, "given_name": {"A"}, "surname": {"B"}, "password": {"p"}}
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/job_applications"`)

	rec = get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListPagesRender(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/users", "/caregivers", "/members", "/addresses", "/jobs", "/job_applications", "/appointments"} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, srv, path)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "No records yet.")

			rec = get(t, srv, path+"/create")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `<form method="post" action="`+path+`/create">`)
		})
	}
}

func TestCreateUserRedirectsToList(t *testing.T) {
	srv := newTestServer(t)

	rec := post(t, srv, "/users/create", userForm1())
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))

	rec = get(t, srv, "/users")
	assert.Contains(t, rec.Body.String(), "a@x.com")

	rec = get(t, srv, "/users/1/edit")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="a@x.com"`)
}

func TestFormErrorsReRenderTheForm(t *testing.T) {
	srv := newTestServer(t)
	require.Equal(t, http.StatusSeeOther, post(t, srv, "/users/create", userForm1()).Code)

	t.Run("missing required field", func(t *testing.T) {
		form := userForm1()
		form.Del("surname")
		form.Set("email", "other@x.com")
		rec := post(t, srv, "/users/create", form)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "surname is required")
		assert.Contains(t, rec.Body.String(), `value="other@x.com"`, "submitted values are kept")
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := post(t, srv, "/users/create", userForm1())
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "unique constraint violated")
	})

	t.Run("malformed number", func(t *testing.T) {
		rec := post(t, srv, "/caregivers/create", url.Values{"caregiver_user_id": {"1"}, "hourly_rate": {"lots"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "is not a valid number")
	})

	t.Run("dangling parent", func(t *testing.T) {
		rec := post(t, srv, "/jobs/create", url.Values{"member_user_id": {"999"}})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "foreign_key constraint violated")
	})
}

func TestMissingRecordsAre404(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/users/42/edit", "User not found"},
		{http.MethodGet, "/users/abc/edit", "User not found"},
		{http.MethodPost, "/users/42/delete", "not found"},
		{http.MethodGet, "/caregivers/42/edit", "Caregiver not found"},
		{http.MethodGet, "/members/42/edit", "Member not found"},
		{http.MethodGet, "/addresses/42/edit", "Address not found"},
		{http.MethodGet, "/jobs/42/edit", "Job not found"},
		{http.MethodGet, "/job_applications/4/2/edit", "Job application not found"},
		{http.MethodPost, "/job_applications/4/2/delete", "not found"},
		{http.MethodGet, "/appointments/42/edit", "Appointment not found"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if tt.method == http.MethodGet {
				rec = get(t, srv, tt.path)
			} else {
				rec = post(t, srv, tt.path, url.Values{})
			}
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestFullWorkflow(t *testing.T) {
	srv := newTestServer(t)

	require.Equal(t, http.StatusSeeOther, post(t, srv, "/users/create", userForm1()).Code)
	carer := url.Values{"email": {"c@x.com"}, "given_name": {"C"}, "surname": {"D"}, "password": {"p"}}
	require.Equal(t, http.StatusSeeOther, post(t, srv, "/users/create", carer).Code)

	require.Equal(t, http.StatusSeeOther, post(t, srv, "/members/create", url.Values{"member_user_id": {"1"}}).Code)
	require.Equal(t, http.StatusSeeOther, post(t, srv, "/caregivers/create", url.Values{"caregiver_user_id": {"2"}, "hourly_rate": {"20.5"}}).Code)
	require.Equal(t, http.StatusSeeOther, post(t, srv, "/addresses/create", url.Values{"member_user_id": {"1"}, "town": {"Astana"}}).Code)
	require.Equal(t, http.StatusSeeOther, post(t, srv, "/jobs/create", url.Values{"member_user_id": {"1"}, "date_posted": {"2024-03-01"}}).Code)
	require.Equal(t, http.StatusSeeOther, post(t, srv, "/job_applications/create", url.Values{"caregiver_user_id": {"2"}, "job_id": {"1"}}).Code)
	require.Equal(t, http.StatusSeeOther, post(t, srv, "/appointments/create", url.Values{
		"caregiver_user_id": {"2"}, "member_user_id": {"1"},
		"appointment_date": {"2024-03-01"}, "appointment_time": {"14:30"},
	}).Code)

	rec := get(t, srv, "/appointments")
	assert.Contains(t, rec.Body.String(), "14:30")

	// Edit the application date through its composite key
	rec = post(t, srv, "/job_applications/2/1/edit", url.Values{"date_applied": {"2024-03-05"}, "job_id": {"99"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = get(t, srv, "/job_applications")
	assert.Contains(t, rec.Body.String(), "2024-03-05")
	assert.Contains(t, rec.Body.String(), "/job_applications/2/1/edit")

	// Caregiver edit keeps the key from the URL
	rec = post(t, srv, "/caregivers/2/edit", url.Values{"caregiver_user_id": {"1"}, "gender": {"female"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = get(t, srv, "/caregivers/2/edit")
	assert.Contains(t, rec.Body.String(), `<option value="female" selected>`)

	// A referenced member cannot be deleted
	rec = post(t, srv, "/members/1/delete", url.Values{})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot delete")

	// Children first, then the parent goes
	require.Equal(t, http.StatusSeeOther, post(t, srv, "/appointments/1/delete", url.Values{}).Code)
	require.Equal(t, http.StatusSeeOther, post(t, srv, "/job_applications/2/1/delete", url.Values{}).Code)
	require.Equal(t, http.StatusSeeOther, post(t, srv, "/jobs/1/delete", url.Values{}).Code)
	require.Equal(t, http.StatusSeeOther, post(t, srv, "/addresses/1/delete", url.Values{}).Code)
	require.Equal(t, http.StatusSeeOther, post(t, srv, "/members/1/delete", url.Values{}).Code)
	require.Equal(t, http.StatusSeeOther, post(t, srv, "/users/1/delete", url.Values{}).Code)

	rec = get(t, srv, "/users/1/edit")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
