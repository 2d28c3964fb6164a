package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"carematch/internal/database"
	"carematch/internal/models"
)

const backupVersion = "1.0"

// BackupData represents the complete database backup structure. Tables are
// listed parents first, which is also the import order.
type BackupData struct {
	Version         string                  `json:"version"`
	BackupID        uuid.UUID               `json:"backup_id"`
	ExportedAt      time.Time               `json:"exported_at"`
	DatabaseType    string                  `json:"database_type"`
	Users           []models.User           `json:"users"`
	Caregivers      []models.Caregiver      `json:"caregivers"`
	Members         []models.Member         `json:"members"`
	Addresses       []models.Address        `json:"addresses"`
	Jobs            []models.Job            `json:"jobs"`
	JobApplications []models.JobApplication `json:"job_applications"`
	Appointments    []models.Appointment    `json:"appointments"`
}

// tablesChildFirst is the order rows are cleared in before an import.
var tablesChildFirst = []string{
	"appointments", "job_applications", "jobs", "addresses", "members", "caregivers", "users",
}

// sequences lists the generated keys realigned after an import.
var sequences = [][2]string{
	{"users", "user_id"},
	{"jobs", "job_id"},
	{"appointments", "appointment_id"},
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db     *database.DB
	logger *slog.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, logger *slog.Logger) *BackupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackupService{db: db, logger: logger}
}

// Export writes a complete backup of the database to outputPath
func (s *BackupService) Export(ctx context.Context, outputPath string) (*BackupData, error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	backup, err := s.ExportToWriter(ctx, file)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "database exported", slog.String("path", outputPath))
	return backup, nil
}

// ExportToWriter reads every table in one transaction and encodes it as JSON
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) (*BackupData, error) {
	backup := &BackupData{
		Version:      backupVersion,
		BackupID:     uuid.New(),
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.GetDialect().Name(),
	}

	err := s.db.RunInTx(ctx, func(tx *database.Tx) error {
		r := newRepos(tx)
		var err error
		if backup.Users, err = r.users.ListUsers(ctx); err != nil {
			return fmt.Errorf("failed to export users: %w", err)
		}
		if backup.Caregivers, err = r.caregivers.ListCaregivers(ctx); err != nil {
			return fmt.Errorf("failed to export caregivers: %w", err)
		}
		if backup.Members, err = r.members.ListMembers(ctx); err != nil {
			return fmt.Errorf("failed to export members: %w", err)
		}
		if backup.Addresses, err = r.addresses.ListAddresses(ctx); err != nil {
			return fmt.Errorf("failed to export addresses: %w", err)
		}
		if backup.Jobs, err = r.jobs.ListJobs(ctx); err != nil {
			return fmt.Errorf("failed to export jobs: %w", err)
		}
		if backup.JobApplications, err = r.applications.ListJobApplications(ctx); err != nil {
			return fmt.Errorf("failed to export job applications: %w", err)
		}
		if backup.Appointments, err = r.appointments.ListAppointments(ctx); err != nil {
			return fmt.Errorf("failed to export appointments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	s.logger.InfoContext(ctx, "backup written",
		slog.String("backup_id", backup.BackupID.String()),
		slog.Int("users", len(backup.Users)),
		slog.Int("caregivers", len(backup.Caregivers)),
		slog.Int("members", len(backup.Members)),
		slog.Int("addresses", len(backup.Addresses)),
		slog.Int("jobs", len(backup.Jobs)),
		slog.Int("job_applications", len(backup.JobApplications)),
		slog.Int("appointments", len(backup.Appointments)),
	)
	return backup, nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(ctx context.Context, inputPath string, replace bool) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file, replace)
}

// ImportFromReader inserts every row with its original key in a single
// transaction. With replace set, existing rows are removed first.
func (s *BackupService) ImportFromReader(ctx context.Context, reader io.Reader, replace bool) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	s.logger.InfoContext(ctx, "importing backup",
		slog.String("backup_id", backup.BackupID.String()),
		slog.String("source", backup.DatabaseType),
		slog.Time("exported_at", backup.ExportedAt),
	)

	err := s.db.RunInTx(ctx, func(tx *database.Tx) error {
		if replace {
			for _, table := range tablesChildFirst {
				if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
					return fmt.Errorf("failed to clear %s: %w", table, err)
				}
			}
		}
		if err := importRows(ctx, newRepos(tx), &backup); err != nil {
			return err
		}
		for _, seq := range sequences {
			if err := tx.ResetSequence(ctx, seq[0], seq[1]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "database import completed", slog.String("backup_id", backup.BackupID.String()))
	return nil
}

// importRows validates and inserts every row, parents first.
func importRows(ctx context.Context, r repos, b *BackupData) error {
	for i := range b.Users {
		if err := importRow(ctx, "user", i, &b.Users[i], r.users.InsertUser); err != nil {
			return err
		}
	}
	for i := range b.Caregivers {
		if err := importRow(ctx, "caregiver", i, &b.Caregivers[i], r.caregivers.CreateCaregiver); err != nil {
			return err
		}
	}
	for i := range b.Members {
		if err := importRow(ctx, "member", i, &b.Members[i], r.members.CreateMember); err != nil {
			return err
		}
	}
	for i := range b.Addresses {
		if err := importRow(ctx, "address", i, &b.Addresses[i], r.addresses.CreateAddress); err != nil {
			return err
		}
	}
	for i := range b.Jobs {
		if err := importRow(ctx, "job", i, &b.Jobs[i], r.jobs.InsertJob); err != nil {
			return err
		}
	}
	for i := range b.JobApplications {
		if err := importRow(ctx, "job application", i, &b.JobApplications[i], r.applications.CreateJobApplication); err != nil {
			return err
		}
	}
	for i := range b.Appointments {
		if err := importRow(ctx, "appointment", i, &b.Appointments[i], r.appointments.InsertAppointment); err != nil {
			return err
		}
	}
	return nil
}

type validator interface {
	Validate() error
}

func importRow[T validator](ctx context.Context, entity string, index int, row T, insert func(context.Context, T) error) error {
	if err := row.Validate(); err != nil {
		return fmt.Errorf("invalid %s at index %d: %w", entity, index, err)
	}
	if err := insert(ctx, row); err != nil {
		return fmt.Errorf("failed to import %s at index %d: %w", entity, index, err)
	}
	return nil
}
