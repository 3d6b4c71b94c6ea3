package db

import (
	"time"

	"github.com/google/uuid"
)

// Collection names a record set that can be listed and subscribed to.
type Collection string

const (
	CollectionJobs        Collection = "jobs"
	CollectionCandidates  Collection = "candidates"
	CollectionMessages    Collection = "messages"
	CollectionClients     Collection = "clients"
	CollectionOnboardings Collection = "onboardings"
)

// Collections lists every collection in a stable order.
var Collections = []Collection{
	CollectionJobs,
	CollectionCandidates,
	CollectionMessages,
	CollectionClients,
	CollectionOnboardings,
}

// ParseCollection validates a collection name.
func ParseCollection(s string) (Collection, bool) {
	for _, c := range Collections {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Order is the created_at ordering of a listing.
type Order string

const (
	OrderNewestFirst Order = "desc"
	OrderOldestFirst Order = "asc"
)

// SQL returns the ORDER BY direction; anything unknown is newest first.
func (o Order) SQL() string {
	if o == OrderOldestFirst {
		return "ASC"
	}
	return "DESC"
}

// ListOptions are the paging and ordering options shared by every listing.
type ListOptions struct {
	Order  Order
	Limit  int // 0 means no limit
	Offset int
}

// Job is a published position.
type Job struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Type        string    `json:"type"` // employment type: CLT, PJ, ...
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobInput creates a job.
type JobInput struct {
	Title       string
	Location    string
	Type        string
	Description string
	Active      bool
}

// JobUpdate is a partial update; nil fields are left unchanged.
type JobUpdate struct {
	Title       *string
	Location    *string
	Type        *string
	Description *string
	Active      *bool
}

// ListJobsOptions filters job listings.
type ListJobsOptions struct {
	ActiveOnly bool
	ListOptions
}

// Candidate is a talent-bank sign-up or an application to a job.
type Candidate struct {
	ID           uuid.UUID  `json:"id"`
	JobID        *uuid.UUID `json:"job_id,omitempty"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Role         string     `json:"role"`
	LinkedIn     string     `json:"linkedin,omitempty"`
	ExternalLink string     `json:"external_link,omitempty"`
	Summary      string     `json:"summary"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CandidateInput creates a candidate.
type CandidateInput struct {
	JobID        *uuid.UUID
	Name         string
	Email        string
	Phone        string
	Role         string
	LinkedIn     string
	ExternalLink string
	Summary      string
}

// ListCandidatesOptions filters candidate listings.
type ListCandidatesOptions struct {
	JobID *uuid.UUID
	ListOptions
}

// Message is a contact-form submission.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageInput creates a message.
type MessageInput struct {
	Name    string
	Email   string
	Message string
}

// ClientCompany is a partner company the consultancy recruits for.
type ClientCompany struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ContactPerson string    `json:"contact_person"`
	CreatedAt     time.Time `json:"created_at"`
}

// ClientInput creates a client.
type ClientInput struct {
	Name          string
	Email         string
	ContactPerson string
}

// ClientUpdate is a partial update; nil fields are left unchanged.
type ClientUpdate struct {
	Name          *string
	Email         *string
	ContactPerson *string
}

// OnboardingStatus is the admission stage of a placed candidate.
type OnboardingStatus string

const (
	OnboardingInReview         OnboardingStatus = "in_review"
	OnboardingApproved         OnboardingStatus = "approved"
	OnboardingPendingDocuments OnboardingStatus = "pending_documents"
	OnboardingCompleted        OnboardingStatus = "completed"
)

// Valid reports whether s is a known status.
func (s OnboardingStatus) Valid() bool {
	switch s {
	case OnboardingInReview, OnboardingApproved, OnboardingPendingDocuments, OnboardingCompleted:
		return true
	}
	return false
}

// OnboardingProcess tracks a candidate's admission at a client.
type OnboardingProcess struct {
	ID            uuid.UUID        `json:"id"`
	CandidateName string           `json:"candidate_name"`
	ClientID      uuid.UUID        `json:"client_id"`
	Status        OnboardingStatus `json:"status"`
	DocsURL       string           `json:"docs_url,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// OnboardingInput creates an onboarding process. An empty status means
// OnboardingInReview.
type OnboardingInput struct {
	CandidateName string
	ClientID      uuid.UUID
	Status        OnboardingStatus
	DocsURL       string
}

// OnboardingUpdate is a partial update; nil fields are left unchanged.
type OnboardingUpdate struct {
	CandidateName *string
	ClientID      *uuid.UUID
	Status        *OnboardingStatus
	DocsURL       *string
}
