package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/db"
	"github.com/hevilin/talentsite/internal/profile"
	"github.com/hevilin/talentsite/internal/types"
)

// Health checks the server.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// Public site

// ActiveJobs lists the jobs shown on the public site.
func (c *Client) ActiveJobs(ctx context.Context) ([]db.Job, error) {
	var jobs []db.Job
	err := c.do(ctx, http.MethodGet, "/jobs", nil, nil, &jobs)
	return jobs, err
}

// ApplyLink returns the WhatsApp link for applying to a job.
func (c *Client) ApplyLink(ctx context.Context, jobID uuid.UUID) (string, error) {
	var resp types.ApplyLinkResponse
	err := c.do(ctx, http.MethodGet, "/jobs/"+jobID.String()+"/apply", nil, nil, &resp)
	return resp.URL, err
}

// RegisterCandidate submits a talent-bank sign-up or an application.
func (c *Client) RegisterCandidate(ctx context.Context, req types.CreateCandidateRequest) (*db.Candidate, error) {
	var candidate db.Candidate
	if err := c.do(ctx, http.MethodPost, "/candidates", nil, req, &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// SendMessage submits the contact form.
func (c *Client) SendMessage(ctx context.Context, req types.CreateMessageRequest) (*db.Message, error) {
	var msg db.Message
	if err := c.do(ctx, http.MethodPost, "/messages", nil, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GenerateProfile asks the server to expand the profile form.
func (c *Client) GenerateProfile(ctx context.Context, req types.GenerateProfileRequest) (*profile.Generated, error) {
	var out profile.Generated
	if err := c.do(ctx, http.MethodPost, "/profile/generate", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Identity

// Login signs in and keeps the token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*types.LoginResponse, error) {
	var resp types.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, types.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Logout revokes the current token and forgets it. The token is forgotten
// even when the server cannot be reached.
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Session returns the current session.
func (c *Client) Session(ctx context.Context) (*types.SessionResponse, error) {
	var resp types.SessionResponse
	if err := c.do(ctx, http.MethodGet, "/auth/session", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdatePassword changes the signed-in administrator's password.
func (c *Client) UpdatePassword(ctx context.Context, current, next string) error {
	req := types.UpdatePasswordRequest{CurrentPassword: current, NewPassword: next}
	return c.do(ctx, http.MethodPut, "/auth/password", nil, req, nil)
}

// Administration

// Dashboard returns the overview counts.
func (c *Client) Dashboard(ctx context.Context) (*types.DashboardResponse, error) {
	var resp types.DashboardResponse
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Jobs lists every job, including inactive ones.
func (c *Client) Jobs(ctx context.Context) ([]db.Job, error) {
	var jobs []db.Job
	err := c.do(ctx, http.MethodGet, "/admin/jobs", nil, nil, &jobs)
	return jobs, err
}

// CreateJob publishes a job.
func (c *Client) CreateJob(ctx context.Context, req types.CreateJobRequest) (*db.Job, error) {
	var job db.Job
	if err := c.do(ctx, http.MethodPost, "/admin/jobs", nil, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob edits a job.
func (c *Client) UpdateJob(ctx context.Context, id uuid.UUID, req types.UpdateJobRequest) (*db.Job, error) {
	var job db.Job
	if err := c.do(ctx, http.MethodPut, "/admin/jobs/"+id.String(), nil, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob removes a job.
func (c *Client) DeleteJob(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/jobs/"+id.String(), nil, nil, nil)
}

// Candidates lists candidates, optionally only those who applied to jobID.
func (c *Client) Candidates(ctx context.Context, jobID *uuid.UUID) ([]db.Candidate, error) {
	var query url.Values
	if jobID != nil {
		query = url.Values{"job_id": {jobID.String()}}
	}
	var candidates []db.Candidate
	err := c.do(ctx, http.MethodGet, "/admin/candidates", query, nil, &candidates)
	return candidates, err
}

// DeleteCandidate removes a candidate.
func (c *Client) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/candidates/"+id.String(), nil, nil, nil)
}

// Messages lists contact-form messages.
func (c *Client) Messages(ctx context.Context) ([]db.Message, error) {
	var msgs []db.Message
	err := c.do(ctx, http.MethodGet, "/admin/messages", nil, nil, &msgs)
	return msgs, err
}

// DeleteMessage removes a message.
func (c *Client) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/messages/"+id.String(), nil, nil, nil)
}

// Clients lists client companies.
func (c *Client) Clients(ctx context.Context) ([]db.ClientCompany, error) {
	var clients []db.ClientCompany
	err := c.do(ctx, http.MethodGet, "/admin/clients", nil, nil, &clients)
	return clients, err
}

// CreateClient registers a client company.
func (c *Client) CreateClient(ctx context.Context, req types.CreateClientRequest) (*db.ClientCompany, error) {
	var client db.ClientCompany
	if err := c.do(ctx, http.MethodPost, "/admin/clients", nil, req, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// DeleteClient removes a client and its onboarding processes.
func (c *Client) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/clients/"+id.String(), nil, nil, nil)
}

// Onboardings lists onboarding processes.
func (c *Client) Onboardings(ctx context.Context) ([]db.OnboardingProcess, error) {
	var processes []db.OnboardingProcess
	err := c.do(ctx, http.MethodGet, "/admin/onboardings", nil, nil, &processes)
	return processes, err
}

// CreateOnboarding starts an onboarding process.
func (c *Client) CreateOnboarding(ctx context.Context, req types.CreateOnboardingRequest) (*db.OnboardingProcess, error) {
	var process db.OnboardingProcess
	if err := c.do(ctx, http.MethodPost, "/admin/onboardings", nil, req, &process); err != nil {
		return nil, err
	}
	return &process, nil
}

// UpdateOnboarding edits an onboarding process.
func (c *Client) UpdateOnboarding(ctx context.Context, id uuid.UUID, req types.UpdateOnboardingRequest) (*db.OnboardingProcess, error) {
	var process db.OnboardingProcess
	if err := c.do(ctx, http.MethodPut, "/admin/onboardings/"+id.String(), nil, req, &process); err != nil {
		return nil, err
	}
	return &process, nil
}

// DeleteOnboarding removes an onboarding process.
func (c *Client) DeleteOnboarding(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/onboardings/"+id.String(), nil, nil, nil)
}
