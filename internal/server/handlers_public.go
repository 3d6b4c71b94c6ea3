package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/db"
	"github.com/hevilin/talentsite/internal/events"
	"github.com/hevilin/talentsite/internal/profile"
	"github.com/hevilin/talentsite/internal/types"
	"go.uber.org/zap"
)

const applyMessage = "Hello! I would like to apply for the position: "

// ApplyURL builds the WhatsApp deep link that opens a chat with the
// consultancy, prefilled with the job title.
func ApplyURL(number, jobTitle string) string {
	text := strings.ReplaceAll(url.QueryEscape(applyMessage+jobTitle), "+", "%20")
	return "https://wa.me/" + number + "?text=" + text
}

func (s *Server) handleListActiveJobs(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jobs, err := s.store.ListJobs(r.Context(), db.ListJobsOptions{ActiveOnly: true, ListOptions: opts})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

// activeJob loads a job the public site may show. Inactive jobs read as
// missing.
func (s *Server) activeJob(ctx context.Context, id uuid.UUID) (*db.Job, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil || !job.Active {
		return nil, &ErrNotFound{Kind: "job", ID: id}
	}
	return job, nil
}

func (s *Server) handleGetActiveJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	job, err := s.activeJob(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleApplyLink(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	job, err := s.activeJob(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ApplyLinkResponse{URL: ApplyURL(s.whatsAppNumber, job.Title)})
}

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCandidateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}

	if req.JobID != nil {
		job, err := s.store.GetJob(r.Context(), *req.JobID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if job == nil || !job.Active {
			s.fail(w, r, &ErrValidation{Field: "job_id", Message: "job is not open for applications"})
			return
		}
	}

	candidate, err := s.store.CreateCandidate(r.Context(), req.ToInput())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.publish(r.Context(), events.New(events.CandidateRegistered, candidate.ID, candidate))
	s.refresh(r.Context(), db.CollectionCandidates)
	s.jsonResponse(w, http.StatusCreated, candidate)
}

func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var req types.CreateMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}

	msg, err := s.store.CreateMessage(r.Context(), req.ToInput())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.publish(r.Context(), events.New(events.MessageReceived, msg.ID, msg))
	s.refresh(r.Context(), db.CollectionMessages)
	s.jsonResponse(w, http.StatusCreated, msg)
}

// handleGenerateProfile expands the form into headline and about texts.
// Content never fails; only a malformed body is rejected.
func (s *Server) handleGenerateProfile(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, profile.TemplatesFor(req.Locale).Generate(req.Inputs))
}

// publish emits a domain event. Failures are logged and never fail the
// request that caused them.
func (s *Server) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("type", string(e.Type)),
			zap.String("subject_id", e.SubjectID.String()),
			zap.Error(err),
		)
	}
}

// refresh pushes new snapshots of the collections to live subscribers.
func (s *Server) refresh(ctx context.Context, collections ...db.Collection) {
	for _, c := range collections {
		if err := s.hub.Refresh(ctx, c, s.loadCollection); err != nil {
			s.logger.Warn("failed to refresh live collection", zap.String("collection", string(c)), zap.Error(err))
		}
	}
}

// loadCollection reads the full contents of a collection, newest first.
func (s *Server) loadCollection(ctx context.Context, c db.Collection) (any, error) {
	switch c {
	case db.CollectionJobs:
		return s.store.ListJobs(ctx, db.ListJobsOptions{})
	case db.CollectionCandidates:
		return s.store.ListCandidates(ctx, db.ListCandidatesOptions{})
	case db.CollectionMessages:
		return s.store.ListMessages(ctx, db.ListOptions{})
	case db.CollectionClients:
		return s.store.ListClients(ctx, db.ListOptions{})
	case db.CollectionOnboardings:
		return s.store.ListOnboardings(ctx, db.ListOptions{})
	default:
		return nil, &ErrValidation{Field: "collection", Message: "unknown collection " + string(c)}
	}
}
