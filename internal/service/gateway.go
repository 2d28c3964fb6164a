// Package service holds the persistence gateway and the backup service.
package service

import (
	"context"
	"log/slog"
	"strconv"

	"carematch/internal/database"
	"carematch/internal/repository"
)

// Gateway exposes list/get/create/update/delete for every entity. Each call
// runs in its own unit of work; inputs are validated before the store is
// touched.
type Gateway struct {
	db     *database.DB
	logger *slog.Logger
}

// NewGateway creates a new gateway over db
func NewGateway(db *database.DB, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{db: db, logger: logger}
}

// Ping checks the store is reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

// repos binds every repository to one transaction.
type repos struct {
	users        *repository.UserRepository
	caregivers   *repository.CaregiverRepository
	members      *repository.MemberRepository
	addresses    *repository.AddressRepository
	jobs         *repository.JobRepository
	applications *repository.JobApplicationRepository
	appointments *repository.AppointmentRepository
}

func newRepos(db database.DBTX) repos {
	return repos{
		users:        repository.NewUserRepository(db),
		caregivers:   repository.NewCaregiverRepository(db),
		members:      repository.NewMemberRepository(db),
		addresses:    repository.NewAddressRepository(db),
		jobs:         repository.NewJobRepository(db),
		applications: repository.NewJobApplicationRepository(db),
		appointments: repository.NewAppointmentRepository(db),
	}
}

func (g *Gateway) inTx(ctx context.Context, fn func(r repos) error) error {
	return g.db.RunInTx(ctx, func(tx *database.Tx) error {
		return fn(newRepos(tx))
	})
}

func (g *Gateway) logWrite(ctx context.Context, op, entity, key string) {
	g.logger.DebugContext(ctx, op, slog.String("entity", entity), slog.String("key", key))
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
