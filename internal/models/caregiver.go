package models

import (
	"math"

	"carematch/internal/apperror"
)

// Caregiving types offered by the forms. The column is free text.
const (
	CaregivingBabysitter = "babysitter"
	CaregivingElderly    = "elderly"
	CaregivingPlaymate   = "playmate"
)

var CaregivingTypes = []string{CaregivingBabysitter, CaregivingElderly, CaregivingPlaymate}

// Caregiver extends a User with caregiving details. HourlyRate is stored
// as 0 when the form leaves it empty.
type Caregiver struct {
	CaregiverUserID int64   `json:"caregiver_user_id"`
	Photo           *string `json:"photo"`
	Gender          *string `json:"gender"`
	CaregivingType  *string `json:"caregiving_type"`
	HourlyRate      float64 `json:"hourly_rate"`
}

func (c *Caregiver) Validate() error {
	if err := requireID("caregiver_user_id", c.CaregiverUserID); err != nil {
		return err
	}
	if math.IsNaN(c.HourlyRate) || math.IsInf(c.HourlyRate, 0) {
		return apperror.ValidationFailed("hourly_rate", "hourly_rate must be a finite number")
	}
	if c.HourlyRate < 0 {
		return apperror.ValidationFailed("hourly_rate", "hourly_rate must not be negative")
	}
	return nil
}
