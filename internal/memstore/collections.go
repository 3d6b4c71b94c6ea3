package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/db"
)

// CreateJob stores a new job.
func (s *Store) CreateJob(_ context.Context, in db.JobInput) (*db.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	j := db.Job{
		ID:          uuid.New(),
		Title:       in.Title,
		Location:    in.Location,
		Type:        in.Type,
		Description: in.Description,
		Active:      in.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.jobs[j.ID] = j
	return &j, nil
}

// GetJob returns nil, nil when the job does not exist.
func (s *Store) GetJob(_ context.Context, id uuid.UUID) (*db.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

// ListJobs lists jobs, newest first by default.
func (s *Store) ListJobs(_ context.Context, opts db.ListJobsOptions) ([]db.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := []db.Job{}
	for _, j := range s.jobs {
		if opts.ActiveOnly && !j.Active {
			continue
		}
		jobs = append(jobs, j)
	}
	return sortAndPage(jobs, func(j db.Job) time.Time { return j.CreatedAt }, opts.ListOptions), nil
}

// UpdateJob applies a partial update.
func (s *Store) UpdateJob(_ context.Context, id uuid.UUID, u db.JobUpdate) (*db.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, notFound("job", id)
	}
	setIf(&j.Title, u.Title)
	setIf(&j.Location, u.Location)
	setIf(&j.Type, u.Type)
	setIf(&j.Description, u.Description)
	setIf(&j.Active, u.Active)
	j.UpdatedAt = s.now()
	s.jobs[id] = j
	return &j, nil
}

// DeleteJob removes a job and clears it from applications.
func (s *Store) DeleteJob(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return notFound("job", id)
	}
	delete(s.jobs, id)
	for cid, c := range s.candidates {
		if c.JobID != nil && *c.JobID == id {
			c.JobID = nil
			s.candidates[cid] = c
		}
	}
	return nil
}

// CountActiveJobs counts jobs visible on the public site.
func (s *Store) CountActiveJobs(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, j := range s.jobs {
		if j.Active {
			n++
		}
	}
	return n, nil
}

// CreateCandidate stores a sign-up or application.
func (s *Store) CreateCandidate(_ context.Context, in db.CandidateInput) (*db.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := db.Candidate{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Role:         in.Role,
		LinkedIn:     in.LinkedIn,
		ExternalLink: in.ExternalLink,
		Summary:      in.Summary,
		CreatedAt:    s.now(),
	}
	if in.JobID != nil {
		id := *in.JobID
		c.JobID = &id
	}
	s.candidates[c.ID] = c
	return &c, nil
}

// GetCandidate returns nil, nil when the candidate does not exist.
func (s *Store) GetCandidate(_ context.Context, id uuid.UUID) (*db.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.candidates[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// ListCandidates lists candidates, newest first by default.
func (s *Store) ListCandidates(_ context.Context, opts db.ListCandidatesOptions) ([]db.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []db.Candidate{}
	for _, c := range s.candidates {
		if opts.JobID != nil && (c.JobID == nil || *c.JobID != *opts.JobID) {
			continue
		}
		out = append(out, c)
	}
	return sortAndPage(out, func(c db.Candidate) time.Time { return c.CreatedAt }, opts.ListOptions), nil
}

// DeleteCandidate removes a candidate.
func (s *Store) DeleteCandidate(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.candidates[id]; !ok {
		return notFound("candidate", id)
	}
	delete(s.candidates, id)
	return nil
}

// CreateMessage stores a contact-form message.
func (s *Store) CreateMessage(_ context.Context, in db.MessageInput) (*db.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := db.Message{ID: uuid.New(), Name: in.Name, Email: in.Email, Message: in.Message, CreatedAt: s.now()}
	s.messages[m.ID] = m
	return &m, nil
}

// ListMessages lists messages, newest first by default.
func (s *Store) ListMessages(_ context.Context, opts db.ListOptions) ([]db.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]db.Message, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, m)
	}
	return sortAndPage(out, func(m db.Message) time.Time { return m.CreatedAt }, opts), nil
}

// DeleteMessage removes a message.
func (s *Store) DeleteMessage(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[id]; !ok {
		return notFound("message", id)
	}
	delete(s.messages, id)
	return nil
}

// CreateClient stores a client company.
func (s *Store) CreateClient(_ context.Context, in db.ClientInput) (*db.ClientCompany, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := db.ClientCompany{ID: uuid.New(), Name: in.Name, Email: in.Email, ContactPerson: in.ContactPerson, CreatedAt: s.now()}
	s.clients[c.ID] = c
	return &c, nil
}

// GetClient returns nil, nil when the client does not exist.
func (s *Store) GetClient(_ context.Context, id uuid.UUID) (*db.ClientCompany, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// ListClients lists clients, newest first by default.
func (s *Store) ListClients(_ context.Context, opts db.ListOptions) ([]db.ClientCompany, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]db.ClientCompany, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	return sortAndPage(out, func(c db.ClientCompany) time.Time { return c.CreatedAt }, opts), nil
}

// UpdateClient applies a partial update.
func (s *Store) UpdateClient(_ context.Context, id uuid.UUID, u db.ClientUpdate) (*db.ClientCompany, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, notFound("client", id)
	}
	setIf(&c.Name, u.Name)
	setIf(&c.Email, u.Email)
	setIf(&c.ContactPerson, u.ContactPerson)
	s.clients[id] = c
	return &c, nil
}

// DeleteClient removes a client together with its onboarding processes.
func (s *Store) DeleteClient(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[id]; !ok {
		return notFound("client", id)
	}
	delete(s.clients, id)
	for oid, o := range s.onboardings {
		if o.ClientID == id {
			delete(s.onboardings, oid)
		}
	}
	return nil
}

// CreateOnboarding starts a process; an empty status means in review.
func (s *Store) CreateOnboarding(_ context.Context, in db.OnboardingInput) (*db.OnboardingProcess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := in.Status
	if status == "" {
		status = db.OnboardingInReview
	}
	now := s.now()
	o := db.OnboardingProcess{
		ID:            uuid.New(),
		CandidateName: in.CandidateName,
		ClientID:      in.ClientID,
		Status:        status,
		DocsURL:       in.DocsURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.onboardings[o.ID] = o
	return &o, nil
}

// GetOnboarding returns nil, nil when the process does not exist.
func (s *Store) GetOnboarding(_ context.Context, id uuid.UUID) (*db.OnboardingProcess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.onboardings[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

// ListOnboardings lists processes, newest first by default.
func (s *Store) ListOnboardings(_ context.Context, opts db.ListOptions) ([]db.OnboardingProcess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]db.OnboardingProcess, 0, len(s.onboardings))
	for _, o := range s.onboardings {
		out = append(out, o)
	}
	return sortAndPage(out, func(o db.OnboardingProcess) time.Time { return o.CreatedAt }, opts), nil
}

// UpdateOnboarding applies a partial update.
func (s *Store) UpdateOnboarding(_ context.Context, id uuid.UUID, u db.OnboardingUpdate) (*db.OnboardingProcess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.onboardings[id]
	if !ok {
		return nil, notFound("onboarding", id)
	}
	setIf(&o.CandidateName, u.CandidateName)
	setIf(&o.ClientID, u.ClientID)
	setIf(&o.Status, u.Status)
	setIf(&o.DocsURL, u.DocsURL)
	o.UpdatedAt = s.now()
	s.onboardings[id] = o
	return &o, nil
}

// DeleteOnboarding removes a process.
func (s *Store) DeleteOnboarding(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.onboardings[id]; !ok {
		return notFound("onboarding", id)
	}
	delete(s.onboardings, id)
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
