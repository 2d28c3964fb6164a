package models

import (
	"strings"

	"carematch/internal/apperror"
)

// User is a marketplace account. A user may additionally be a caregiver,
// a member, both, or neither.
type User struct {
	UserID             int64   `json:"user_id"`
	Email              string  `json:"email"`
	GivenName          string  `json:"given_name"`
	Surname            string  `json:"surname"`
	City               *string `json:"city"`
	PhoneNumber        *string `json:"phone_number"`
	ProfileDescription *string `json:"profile_description"`
	Password           string  `json:"password"`
}

// Validate checks the fields the users table declares NOT NULL.
func (u *User) Validate() error {
	if err := requireText("email", u.Email); err != nil {
		return err
	}
	if err := requireText("given_name", u.GivenName); err != nil {
		return err
	}
	if err := requireText("surname", u.Surname); err != nil {
		return err
	}
	return requireText("password", u.Password)
}

// FullName is used by form dropdowns.
func (u *User) FullName() string {
	return strings.TrimSpace(u.GivenName + " " + u.Surname)
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.ValidationFailed(field, field+" is required")
	}
	return nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return apperror.ValidationFailed(field, field+" must be a positive integer")
	}
	return nil
}
