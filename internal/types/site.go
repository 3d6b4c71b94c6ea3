package types

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/db"
)

// CreateJobRequest publishes a job. Jobs are active unless Active is false.
type CreateJobRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Location    string `json:"location" validate:"max=200"`
	Type        string `json:"type" validate:"max=50"`
	Description string `json:"description" validate:"max=5000"`
	Active      *bool  `json:"active,omitempty"`
}

func (r *CreateJobRequest) Validate() error { return validate.Struct(r) }

// ToInput converts the request to a store input.
func (r *CreateJobRequest) ToInput() db.JobInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return db.JobInput{
		Title:       strings.TrimSpace(r.Title),
		Location:    strings.TrimSpace(r.Location),
		Type:        strings.TrimSpace(r.Type),
		Description: strings.TrimSpace(r.Description),
		Active:      active,
	}
}

// UpdateJobRequest edits a job; omitted fields are unchanged.
type UpdateJobRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,notblank,max=200"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Type        *string `json:"type,omitempty" validate:"omitempty,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Active      *bool   `json:"active,omitempty"`
}

func (r *UpdateJobRequest) Validate() error { return validate.Struct(r) }

func (r *UpdateJobRequest) ToUpdate() db.JobUpdate {
	return db.JobUpdate{
		Title:       trimmed(r.Title),
		Location:    trimmed(r.Location),
		Type:        trimmed(r.Type),
		Description: trimmed(r.Description),
		Active:      r.Active,
	}
}

// CreateCandidateRequest is a talent-bank sign-up, or an application when
// JobID is set.
type CreateCandidateRequest struct {
	JobID        *uuid.UUID `json:"job_id,omitempty"`
	Name         string     `json:"name" validate:"required,notblank,max=200"`
	Email        string     `json:"email" validate:"required,email"`
	Phone        string     `json:"phone" validate:"required,notblank,max=40"`
	Role         string     `json:"role" validate:"required,notblank,max=200"`
	LinkedIn     string     `json:"linkedin,omitempty" validate:"omitempty,url"`
	ExternalLink string     `json:"external_link,omitempty" validate:"omitempty,url"`
	Summary      string     `json:"summary" validate:"required,notblank,max=5000"`
}

func (r *CreateCandidateRequest) Validate() error { return validate.Struct(r) }

func (r *CreateCandidateRequest) ToInput() db.CandidateInput {
	return db.CandidateInput{
		JobID:        r.JobID,
		Name:         strings.TrimSpace(r.Name),
		Email:        strings.TrimSpace(r.Email),
		Phone:        strings.TrimSpace(r.Phone),
		Role:         strings.TrimSpace(r.Role),
		LinkedIn:     strings.TrimSpace(r.LinkedIn),
		ExternalLink: strings.TrimSpace(r.ExternalLink),
		Summary:      strings.TrimSpace(r.Summary),
	}
}

// CreateMessageRequest is a contact-form submission.
type CreateMessageRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,notblank,max=5000"`
}

func (r *CreateMessageRequest) Validate() error { return validate.Struct(r) }

func (r *CreateMessageRequest) ToInput() db.MessageInput {
	return db.MessageInput{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Message: strings.TrimSpace(r.Message),
	}
}

// CreateClientRequest registers a client company.
type CreateClientRequest struct {
	Name          string `json:"name" validate:"required,notblank,max=200"`
	Email         string `json:"email" validate:"required,email"`
	ContactPerson string `json:"contact_person" validate:"required,notblank,max=200"`
}

func (r *CreateClientRequest) Validate() error { return validate.Struct(r) }

func (r *CreateClientRequest) ToInput() db.ClientInput {
	return db.ClientInput{
		Name:          strings.TrimSpace(r.Name),
		Email:         strings.TrimSpace(r.Email),
		ContactPerson: strings.TrimSpace(r.ContactPerson),
	}
}

// UpdateClientRequest edits a client; omitted fields are unchanged.
type UpdateClientRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	ContactPerson *string `json:"contact_person,omitempty" validate:"omitempty,notblank,max=200"`
}

func (r *UpdateClientRequest) Validate() error { return validate.Struct(r) }

func (r *UpdateClientRequest) ToUpdate() db.ClientUpdate {
	return db.ClientUpdate{
		Name:          trimmed(r.Name),
		Email:         trimmed(r.Email),
		ContactPerson: trimmed(r.ContactPerson),
	}
}

// CreateOnboardingRequest starts an onboarding process. An empty status
// means in_review.
type CreateOnboardingRequest struct {
	CandidateName string    `json:"candidate_name" validate:"required,notblank,max=200"`
	ClientID      uuid.UUID `json:"client_id" validate:"required"`
	Status        string    `json:"status,omitempty" validate:"omitempty,oneof=in_review approved pending_documents completed"`
	DocsURL       string    `json:"docs_url,omitempty" validate:"omitempty,url"`
}

func (r *CreateOnboardingRequest) Validate() error { return validate.Struct(r) }

func (r *CreateOnboardingRequest) ToInput() db.OnboardingInput {
	return db.OnboardingInput{
		CandidateName: strings.TrimSpace(r.CandidateName),
		ClientID:      r.ClientID,
		Status:        db.OnboardingStatus(r.Status),
		DocsURL:       strings.TrimSpace(r.DocsURL),
	}
}

// UpdateOnboardingRequest edits a process; omitted fields are unchanged.
type UpdateOnboardingRequest struct {
	CandidateName *string    `json:"candidate_name,omitempty" validate:"omitempty,notblank,max=200"`
	ClientID      *uuid.UUID `json:"client_id,omitempty"`
	Status        *string    `json:"status,omitempty" validate:"omitempty,oneof=in_review approved pending_documents completed"`
	DocsURL       *string    `json:"docs_url,omitempty" validate:"omitempty,url"`
}

func (r *UpdateOnboardingRequest) Validate() error { return validate.Struct(r) }

func (r *UpdateOnboardingRequest) ToUpdate() db.OnboardingUpdate {
	u := db.OnboardingUpdate{
		CandidateName: trimmed(r.CandidateName),
		ClientID:      r.ClientID,
		DocsURL:       trimmed(r.DocsURL),
	}
	if r.Status != nil {
		s := db.OnboardingStatus(*r.Status)
		u.Status = &s
	}
	return u
}

// DashboardResponse holds the admin overview counts.
type DashboardResponse struct {
	ActiveJobs  int `json:"active_jobs"`
	Jobs        int `json:"jobs"`
	Candidates  int `json:"candidates"`
	Messages    int `json:"messages"`
	Clients     int `json:"clients"`
	Onboardings int `json:"onboardings"`
}

// ApplyLinkResponse carries the WhatsApp deep link for applying to a job.
type ApplyLinkResponse struct {
	URL string `json:"url"`
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
