package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"carematch/internal/apperror"
	"carematch/internal/forms"
	"carematch/internal/models"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	data, err := h.userList(r)
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error listing users", err)
		return
	}
	h.render(w, r, http.StatusOK, "list.tmpl", data)
}

func (h *Handler) userList(r *http.Request) (ListViewData, error) {
	users, err := h.gateway.ListUsers(r.Context())
	if err != nil {
		return ListViewData{}, err
	}
	data := ListViewData{
		Title:     "Users",
		Heading:   "Users",
		CreateURL: "/users/create",
		Columns:   []string{"ID", "Email", "Given name", "Surname", "City", "Phone number"},
	}
	for _, u := range users {
		id := formatID(u.UserID)
		data.Rows = append(data.Rows, RowView{
			Cells:     []string{id, u.Email, u.GivenName, u.Surname, deref(u.City), deref(u.PhoneNumber)},
			EditURL:   "/users/" + id + "/edit",
			DeleteURL: "/users/" + id + "/delete",
		})
	}
	return data, nil
}

func (h *Handler) NewUser(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "form.tmpl", userForm(url.Values{}, "/users/create", "New user", false))
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	form := userForm(v, "/users/create", "New user", false)

	u, err := forms.ParseUser(v)
	if err == nil {
		_, err = h.gateway.CreateUser(r.Context(), u)
	}
	if err != nil {
		h.formError(w, r, err, "create user", form)
		return
	}
	seeOther(w, r, "/users")
}

func (h *Handler) EditUser(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("user_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "User")
		return
	}
	u, err := h.gateway.GetUser(r.Context(), id)
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "User")
		return
	}
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading user", err)
		return
	}
	action := "/users/" + formatID(id) + "/edit"
	h.render(w, r, http.StatusOK, "form.tmpl", userForm(userValues(u), action, "Edit user", true))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("user_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "User")
		return
	}
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	v.Set("user_id", formatID(id))
	form := userForm(v, "/users/"+formatID(id)+"/edit", "Edit user", true)

	u, err := forms.ParseUser(v)
	if err == nil {
		_, err = h.gateway.UpdateUser(r.Context(), id, u)
	}
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "User")
		return
	}
	if err != nil {
		h.formError(w, r, err, "update user", form)
		return
	}
	seeOther(w, r, "/users")
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("user_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "User")
		return
	}
	if err := h.gateway.DeleteUser(r.Context(), id); err != nil {
		if apperror.IsNotFound(err) {
			h.notFound(w, r, "User")
			return
		}
		h.deleteError(w, r, err, "delete user", func() (ListViewData, error) { return h.userList(r) })
		return
	}
	seeOther(w, r, "/users")
}

func userValues(u *models.User) url.Values {
	v := url.Values{}
	v.Set("user_id", formatID(u.UserID))
	v.Set("email", u.Email)
	v.Set("given_name", u.GivenName)
	v.Set("surname", u.Surname)
	setIfPresent(v, "city", u.City)
	setIfPresent(v, "phone_number", u.PhoneNumber)
	setIfPresent(v, "profile_description", u.ProfileDescription)
	v.Set("password", u.Password)
	return v
}

func userForm(v url.Values, action, heading string, editing bool) FormViewData {
	data := FormViewData{
		Title:       heading,
		Heading:     heading,
		Action:      action,
		SubmitLabel: "Save",
		CancelURL:   "/users",
	}
	if editing {
		data.Fields = append(data.Fields, keyField(v, "user_id"))
	}
	data.Fields = append(data.Fields,
		textField(v, "email", "email", true),
		textField(v, "given_name", "text", true),
		textField(v, "surname", "text", true),
		textField(v, "city", "text", false),
		textField(v, "phone_number", "tel", false),
		textField(v, "profile_description", "textarea", false),
		textField(v, "password", "text", true),
	)
	return data
}
