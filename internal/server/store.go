package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/db"
	"github.com/hevilin/talentsite/internal/memstore"
)

// Store is everything the server reads and writes. Reads of a missing record
// return nil, nil; updates and deletes of a missing id wrap db.ErrNotFound.
type Store interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context, c db.Collection) (int, error)

	CreateJob(ctx context.Context, in db.JobInput) (*db.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context, opts db.ListJobsOptions) ([]db.Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, u db.JobUpdate) (*db.Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
	CountActiveJobs(ctx context.Context) (int, error)

	CreateCandidate(ctx context.Context, in db.CandidateInput) (*db.Candidate, error)
	GetCandidate(ctx context.Context, id uuid.UUID) (*db.Candidate, error)
	ListCandidates(ctx context.Context, opts db.ListCandidatesOptions) ([]db.Candidate, error)
	DeleteCandidate(ctx context.Context, id uuid.UUID) error

	CreateMessage(ctx context.Context, in db.MessageInput) (*db.Message, error)
	ListMessages(ctx context.Context, opts db.ListOptions) ([]db.Message, error)
	DeleteMessage(ctx context.Context, id uuid.UUID) error

	CreateClient(ctx context.Context, in db.ClientInput) (*db.ClientCompany, error)
	GetClient(ctx context.Context, id uuid.UUID) (*db.ClientCompany, error)
	ListClients(ctx context.Context, opts db.ListOptions) ([]db.ClientCompany, error)
	UpdateClient(ctx context.Context, id uuid.UUID, u db.ClientUpdate) (*db.ClientCompany, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error

	CreateOnboarding(ctx context.Context, in db.OnboardingInput) (*db.OnboardingProcess, error)
	GetOnboarding(ctx context.Context, id uuid.UUID) (*db.OnboardingProcess, error)
	ListOnboardings(ctx context.Context, opts db.ListOptions) ([]db.OnboardingProcess, error)
	UpdateOnboarding(ctx context.Context, id uuid.UUID, u db.OnboardingUpdate) (*db.OnboardingProcess, error)
	DeleteOnboarding(ctx context.Context, id uuid.UUID) error

	UserStore
}

// UserStore is the slice of the store the identity service needs.
type UserStore interface {
	CreateUser(ctx context.Context, name, email string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

var (
	_ Store = (*db.DB)(nil)
	_ Store = (*memstore.Store)(nil)
)
