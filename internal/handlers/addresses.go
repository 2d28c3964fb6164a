package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"carematch/internal/apperror"
	"carematch/internal/forms"
	"carematch/internal/models"
)

func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	data, err := h.addressList(r)
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error listing addresses", err)
		return
	}
	h.render(w, r, http.StatusOK, "list.tmpl", data)
}

func (h *Handler) addressList(r *http.Request) (ListViewData, error) {
	addresses, err := h.gateway.ListAddresses(r.Context())
	if err != nil {
		return ListViewData{}, err
	}
	data := ListViewData{
		Title:     "Addresses",
		Heading:   "Addresses",
		CreateURL: "/addresses/create",
		Columns:   []string{"Member ID", "House number", "Street", "Town"},
	}
	for _, a := range addresses {
		id := formatID(a.MemberUserID)
		data.Rows = append(data.Rows, RowView{
			Cells:     []string{id, deref(a.HouseNumber), deref(a.Street), deref(a.Town)},
			EditURL:   "/addresses/" + id + "/edit",
			DeleteURL: "/addresses/" + id + "/delete",
		})
	}
	return data, nil
}

func (h *Handler) NewAddress(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberChoices(r.Context())
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading members", err)
		return
	}
	h.render(w, r, http.StatusOK, "form.tmpl", addressForm(url.Values{}, "/addresses/create", "New address", members))
}

func (h *Handler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	members, err := h.memberChoices(r.Context())
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading members", err)
		return
	}
	form := addressForm(v, "/addresses/create", "New address", members)

	a, err := forms.ParseAddress(v)
	if err == nil {
		_, err = h.gateway.CreateAddress(r.Context(), a)
	}
	if err != nil {
		h.formError(w, r, err, "create address", form)
		return
	}
	seeOther(w, r, "/addresses")
}

func (h *Handler) EditAddress(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("member_user_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Address")
		return
	}
	a, err := h.gateway.GetAddress(r.Context(), id)
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "Address")
		return
	}
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading address", err)
		return
	}
	h.render(w, r, http.StatusOK, "form.tmpl", addressForm(addressValues(a), "/addresses/"+formatID(id)+"/edit", "Edit address", nil))
}

func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("member_user_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Address")
		return
	}
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	v.Set("member_user_id", formatID(id))
	form := addressForm(v, "/addresses/"+formatID(id)+"/edit", "Edit address", nil)

	a, err := forms.ParseAddress(v)
	if err == nil {
		_, err = h.gateway.UpdateAddress(r.Context(), id, a)
	}
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "Address")
		return
	}
	if err != nil {
		h.formError(w, r, err, "update address", form)
		return
	}
	seeOther(w, r, "/addresses")
}

func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("member_user_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Address")
		return
	}
	if err := h.gateway.DeleteAddress(r.Context(), id); err != nil {
		if apperror.IsNotFound(err) {
			h.notFound(w, r, "Address")
			return
		}
		h.deleteError(w, r, err, "delete address", func() (ListViewData, error) { return h.addressList(r) })
		return
	}
	seeOther(w, r, "/addresses")
}

func addressValues(a *models.Address) url.Values {
	v := url.Values{}
	v.Set("member_user_id", formatID(a.MemberUserID))
	setIfPresent(v, "house_number", a.HouseNumber)
	setIfPresent(v, "street", a.Street)
	setIfPresent(v, "town", a.Town)
	return v
}

func addressForm(v url.Values, action, heading string, members []OptionView) FormViewData {
	data := FormViewData{
		Title:       heading,
		Heading:     heading,
		Action:      action,
		SubmitLabel: "Save",
		CancelURL:   "/addresses",
	}
	if members != nil {
		data.Fields = append(data.Fields, selectField(v, "member_user_id", true, members))
	} else {
		data.Fields = append(data.Fields, keyField(v, "member_user_id"))
	}
	data.Fields = append(data.Fields,
		textField(v, "house_number", "text", false),
		textField(v, "street", "text", false),
		textField(v, "town", "text", false),
	)
	return data
}
