package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{"NotFound wraps ErrNotFound", NotFound("user", "7"), ErrNotFound, true},
		{"ValidationFailed wraps ErrValidation", ValidationFailed("email", "email is required"), ErrValidation, true},
		{"ParseFailed wraps ErrParse", ParseFailed("date_posted", "tomorrow", "date (YYYY-MM-DD)"), ErrParse, true},
		{"ConstraintViolation wraps ErrConstraint", ConstraintViolation(ConstraintUnique, "users.email", nil), ErrConstraint, true},
		{"ParseFailed is not a validation error", ParseFailed("x", "y", "integer"), ErrValidation, false},
		{"NotFound is not a constraint violation", NotFound("job", "1"), ErrConstraint, false},
		{"wrapped NotFound still matches", fmt.Errorf("loading: %w", NotFound("job", "1")), ErrNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMatch, errors.Is(tt.err, tt.target))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{"not found", NotFound("caregiver", "3"), "caregiver not found with id 3"},
		{"validation", ValidationFailed("surname", "surname is required"), "surname is required"},
		{"parse", ParseFailed("work_hours", "abc", "integer"), `work_hours: "abc" is not a valid integer`},
		{"constraint with detail", ConstraintViolation(ConstraintForeignKey, "jobs.member_user_id", nil), "foreign_key constraint violated: jobs.member_user_id"},
		{"constraint without detail", ConstraintViolation(ConstraintNotNull, "", nil), "not_null constraint violated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestConstraintViolationKeepsCause(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: users.email")
	err := ConstraintViolation(ConstraintUnique, "users.email", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrConstraint)
	assert.True(t, IsConstraint(err, ConstraintUnique))
	assert.True(t, IsConstraint(err, ""))
	assert.False(t, IsConstraint(err, ConstraintForeignKey))
	assert.False(t, IsConstraint(NotFound("user", "1"), ""))
}

func TestFieldIsRecorded(t *testing.T) {
	assert.Equal(t, "email", ValidationFailed("email", "email is required").Field)
	assert.Equal(t, "appointment_time", ParseFailed("appointment_time", "25:00", "time (HH:MM)").Field)
}
