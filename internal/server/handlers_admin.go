package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/db"
	"github.com/hevilin/talentsite/internal/events"
	"github.com/hevilin/talentsite/internal/types"
)

// Jobs

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jobs, err := s.store.ListJobs(r.Context(), db.ListJobsOptions{ListOptions: opts})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}

	job, err := s.store.CreateJob(r.Context(), req.ToInput())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(r.Context(), events.New(events.JobCreated, job.ID, job))
	s.refresh(r.Context(), db.CollectionJobs)
	s.jsonResponse(w, http.StatusCreated, job)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req types.UpdateJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}

	job, err := s.store.UpdateJob(r.Context(), id, req.ToUpdate())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(r.Context(), events.New(events.JobUpdated, job.ID, job))
	s.refresh(r.Context(), db.CollectionJobs)
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.store.DeleteJob, func(ctx context.Context, id uuid.UUID) {
		s.publish(ctx, events.New(events.JobDeleted, id, map[string]uuid.UUID{"id": id}))
		// applications keep their record but lose the job reference
		s.refresh(ctx, db.CollectionJobs, db.CollectionCandidates)
	})
}

// Candidates

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	filter := db.ListCandidatesOptions{ListOptions: opts}
	if v := r.URL.Query().Get("job_id"); v != "" {
		jobID, err := uuid.Parse(v)
		if err != nil {
			s.fail(w, r, &ErrValidation{Field: "job_id", Message: "invalid id"})
			return
		}
		filter.JobID = &jobID
	}

	candidates, err := s.store.ListCandidates(r.Context(), filter)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, candidates)
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	candidate, err := s.store.GetCandidate(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if candidate == nil {
		s.fail(w, r, &ErrNotFound{Kind: "candidate", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, candidate)
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.store.DeleteCandidate, func(ctx context.Context, _ uuid.UUID) {
		s.refresh(ctx, db.CollectionCandidates)
	})
}

// Messages

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	msgs, err := s.store.ListMessages(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, msgs)
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.store.DeleteMessage, func(ctx context.Context, _ uuid.UUID) {
		s.refresh(ctx, db.CollectionMessages)
	})
}

// Clients

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	clients, err := s.store.ListClients(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, clients)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req types.CreateClientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}

	client, err := s.store.CreateClient(r.Context(), req.ToInput())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.refresh(r.Context(), db.CollectionClients)
	s.jsonResponse(w, http.StatusCreated, client)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req types.UpdateClientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}

	client, err := s.store.UpdateClient(r.Context(), id, req.ToUpdate())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.refresh(r.Context(), db.CollectionClients)
	s.jsonResponse(w, http.StatusOK, client)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.store.DeleteClient, func(ctx context.Context, _ uuid.UUID) {
		// onboarding processes are deleted with their client
		s.refresh(ctx, db.CollectionClients, db.CollectionOnboardings)
	})
}

// Onboarding processes

func (s *Server) handleListOnboardings(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	processes, err := s.store.ListOnboardings(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, processes)
}

// requireClient rejects a client_id that does not name an existing client.
func (s *Server) requireClient(ctx context.Context, id uuid.UUID) error {
	client, err := s.store.GetClient(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return &ErrValidation{Field: "client_id", Message: "client does not exist"}
	}
	return nil
}

func (s *Server) handleCreateOnboarding(w http.ResponseWriter, r *http.Request) {
	var req types.CreateOnboardingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}
	if err := s.requireClient(r.Context(), req.ClientID); err != nil {
		s.fail(w, r, err)
		return
	}

	process, err := s.store.CreateOnboarding(r.Context(), req.ToInput())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.refresh(r.Context(), db.CollectionOnboardings)
	s.jsonResponse(w, http.StatusCreated, process)
}

func (s *Server) handleUpdateOnboarding(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req types.UpdateOnboardingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}
	if req.ClientID != nil {
		if err := s.requireClient(r.Context(), *req.ClientID); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	process, err := s.store.UpdateOnboarding(r.Context(), id, req.ToUpdate())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.refresh(r.Context(), db.CollectionOnboardings)
	s.jsonResponse(w, http.StatusOK, process)
}

func (s *Server) handleDeleteOnboarding(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.store.DeleteOnboarding, func(ctx context.Context, _ uuid.UUID) {
		s.refresh(ctx, db.CollectionOnboardings)
	})
}

// deleteByID parses {id}, deletes the record and runs after on success.
func (s *Server) deleteByID(w http.ResponseWriter, r *http.Request,
	del func(context.Context, uuid.UUID) error, after func(context.Context, uuid.UUID)) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := del(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	after(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
