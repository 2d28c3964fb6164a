package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"carematch/internal/apperror"
	"carematch/internal/forms"
	"carematch/internal/models"
)

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	data, err := h.memberList(r)
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error listing members", err)
		return
	}
	h.render(w, r, http.StatusOK, "list.tmpl", data)
}

func (h *Handler) memberList(r *http.Request) (ListViewData, error) {
	members, err := h.gateway.ListMembers(r.Context())
	if err != nil {
		return ListViewData{}, err
	}
	data := ListViewData{
		Title:     "Members",
		Heading:   "Members",
		CreateURL: "/members/create",
		Columns:   []string{"User ID", "House rules", "Dependent description"},
	}
	for _, m := range members {
		id := formatID(m.MemberUserID)
		data.Rows = append(data.Rows, RowView{
			Cells:     []string{id, deref(m.HouseRules), deref(m.DependentDescription)},
			EditURL:   "/members/" + id + "/edit",
			DeleteURL: "/members/" + id + "/delete",
		})
	}
	return data, nil
}

func (h *Handler) NewMember(w http.ResponseWriter, r *http.Request) {
	users, err := h.userChoices(r.Context())
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading users", err)
		return
	}
	h.render(w, r, http.StatusOK, "form.tmpl", memberForm(url.Values{}, "/members/create", "New member", users))
}

func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	users, err := h.userChoices(r.Context())
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading users", err)
		return
	}
	form := memberForm(v, "/members/create", "New member", users)

	m, err := forms.ParseMember(v)
	if err == nil {
		_, err = h.gateway.CreateMember(r.Context(), m)
	}
	if err != nil {
		h.formError(w, r, err, "create member", form)
		return
	}
	seeOther(w, r, "/members")
}

func (h *Handler) EditMember(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("member_user_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Member")
		return
	}
	m, err := h.gateway.GetMember(r.Context(), id)
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "Member")
		return
	}
	if err != nil {
		respondWithError(w, r, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Error loading member", err)
		return
	}
	h.render(w, r, http.StatusOK, "form.tmpl", memberForm(memberValues(m), "/members/"+formatID(id)+"/edit", "Edit member", nil))
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("member_user_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Member")
		return
	}
	v, ok := parseForm(w, r, h.logger)
	if !ok {
		return
	}
	v.Set("member_user_id", formatID(id))
	form := memberForm(v, "/members/"+formatID(id)+"/edit", "Edit member", nil)

	m, err := forms.ParseMember(v)
	if err == nil {
		_, err = h.gateway.UpdateMember(r.Context(), id, m)
	}
	if apperror.IsNotFound(err) {
		h.notFound(w, r, "Member")
		return
	}
	if err != nil {
		h.formError(w, r, err, "update member", form)
		return
	}
	seeOther(w, r, "/members")
}

func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := forms.ParseID("member_user_id", chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Member")
		return
	}
	if err := h.gateway.DeleteMember(r.Context(), id); err != nil {
		if apperror.IsNotFound(err) {
			h.notFound(w, r, "Member")
			return
		}
		h.deleteError(w, r, err, "delete member", func() (ListViewData, error) { return h.memberList(r) })
		return
	}
	seeOther(w, r, "/members")
}

func memberValues(m *models.Member) url.Values {
	v := url.Values{}
	v.Set("member_user_id", formatID(m.MemberUserID))
	setIfPresent(v, "house_rules", m.HouseRules)
	setIfPresent(v, "dependent_description", m.DependentDescription)
	return v
}

func memberForm(v url.Values, action, heading string, users []OptionView) FormViewData {
	data := FormViewData{
		Title:       heading,
		Heading:     heading,
		Action:      action,
		SubmitLabel: "Save",
		CancelURL:   "/members",
	}
	if users != nil {
		data.Fields = append(data.Fields, selectField(v, "member_user_id", true, users))
	} else {
		data.Fields = append(data.Fields, keyField(v, "member_user_id"))
	}
	data.Fields = append(data.Fields,
		textField(v, "house_rules", "textarea", false),
		textField(v, "dependent_description", "textarea", false),
	)
	return data
}
