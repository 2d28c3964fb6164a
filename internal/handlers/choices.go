package handlers

import (
	"context"
	"fmt"

	"carematch/internal/models"
)

// Dropdown choices for foreign keys, labelled with the user's name.

var genders = []string{"female", "male"}

func (h *Handler) userNames(ctx context.Context) (map[int64]string, []models.User, error) {
	users, err := h.gateway.ListUsers(ctx)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.UserID] = u.FullName()
	}
	return names, users, nil
}

func (h *Handler) userChoices(ctx context.Context) ([]OptionView, error) {
	_, users, err := h.userNames(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]OptionView, len(users))
	for i, u := range users {
		options[i] = OptionView{Value: formatID(u.UserID), Label: fmt.Sprintf("%d: %s (%s)", u.UserID, u.FullName(), u.Email)}
	}
	return options, nil
}

func (h *Handler) memberChoices(ctx context.Context) ([]OptionView, error) {
	names, _, err := h.userNames(ctx)
	if err != nil {
		return nil, err
	}
	members, err := h.gateway.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]OptionView, len(members))
	for i, m := range members {
		options[i] = OptionView{Value: formatID(m.MemberUserID), Label: fmt.Sprintf("%d: %s", m.MemberUserID, names[m.MemberUserID])}
	}
	return options, nil
}

func (h *Handler) caregiverChoices(ctx context.Context) ([]OptionView, error) {
	names, _, err := h.userNames(ctx)
	if err != nil {
		return nil, err
	}
	caregivers, err := h.gateway.ListCaregivers(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]OptionView, len(caregivers))
	for i, c := range caregivers {
		options[i] = OptionView{Value: formatID(c.CaregiverUserID), Label: fmt.Sprintf("%d: %s", c.CaregiverUserID, names[c.CaregiverUserID])}
	}
	return options, nil
}

func (h *Handler) jobChoices(ctx context.Context) ([]OptionView, error) {
	jobs, err := h.gateway.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]OptionView, len(jobs))
	for i, j := range jobs {
		label := fmt.Sprintf("Job %d (member %d)", j.JobID, j.MemberUserID)
		if j.RequiredCaregivingType != nil {
			label += " " + *j.RequiredCaregivingType
		}
		options[i] = OptionView{Value: formatID(j.JobID), Label: label}
	}
	return options, nil
}
