package database

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"carematch/internal/apperror"
)

func TestClassifyPostgresErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
	}{
		{"unique", &pq.Error{Code: "23505", Constraint: "users_email_key"}, apperror.ConstraintUnique},
		{"foreign key", &pq.Error{Code: "23503", Constraint: "jobs_member_user_id_fkey"}, apperror.ConstraintForeignKey},
		{"not null", &pq.Error{Code: "23502", Table: "appointments", Column: "appointment_date"}, apperror.ConstraintNotNull},
		{"syntax error is not a constraint", &pq.Error{Code: "42601"}, ""},
	}

	d := NewPostgresDialect()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.ClassifyError(tt.err)
			assertKind(t, got, tt.err, tt.wantKind)
		})
	}
}

func TestClassifyPgxErrors(t *testing.T) {
	d := NewPgxDialect()

	err := &pgconn.PgError{Code: "23505", ConstraintName: "job_applications_pkey", Detail: "Key (caregiver_user_id, job_id)=(1, 2) already exists."}
	got := d.ClassifyError(err)
	assertKind(t, got, err, apperror.ConstraintUnique)
	assert.Contains(t, got.Error(), "job_applications_pkey")

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "caregivers_caregiver_user_id_fkey"}
	assertKind(t, d.ClassifyError(fk), fk, apperror.ConstraintForeignKey)
}

func TestClassifyMySQLErrors(t *testing.T) {
	tests := []struct {
		name     string
		number   uint16
		wantKind string
	}{
		{"duplicate entry", 1062, apperror.ConstraintUnique},
		{"cannot add child row", 1452, apperror.ConstraintForeignKey},
		{"cannot delete parent row", 1451, apperror.ConstraintForeignKey},
		{"column cannot be null", 1048, apperror.ConstraintNotNull},
		{"lock wait timeout", 1205, ""},
	}

	d := NewMySQLDialect()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &mysql.MySQLError{Number: tt.number, Message: "boom"}
			assertKind(t, d.ClassifyError(err), err, tt.wantKind)
		})
	}
}

func TestClassifyIgnoresForeignDriverErrors(t *testing.T) {
	plain := errors.New("connection refused")
	for _, d := range []Dialect{NewPostgresDialect(), NewPgxDialect(), NewMySQLDialect(), NewSQLiteDialect()} {
		assert.Same(t, plain, d.ClassifyError(plain), d.Name())
	}
}

func assertKind(t *testing.T, got, original error, wantKind string) {
	t.Helper()
	if wantKind == "" {
		assert.Same(t, original, got)
		return
	}
	assert.True(t, apperror.IsConstraint(got, wantKind), "got %v, want %s", got, wantKind)
	assert.ErrorIs(t, got, original)
}
