package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/db"
	"github.com/hevilin/talentsite/internal/events"
	"github.com/hevilin/talentsite/internal/memstore"
	"github.com/hevilin/talentsite/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminJobs(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	w := ts.do(t, http.MethodPost, "/admin/jobs", map[string]any{"title": "Data Engineer", "location": "Remote", "type": "PJ"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	job := decodeBody[db.Job](t, w)
	assert.True(t, job.Active, "new jobs default to active")

	w = ts.do(t, http.MethodPost, "/admin/jobs", map[string]any{"title": "Draft", "active": false}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	draft := decodeBody[db.Job](t, w)
	assert.False(t, draft.Active)

	w = ts.do(t, http.MethodPost, "/admin/jobs", map[string]any{"title": "  "}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/admin/jobs", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	all := decodeBody[[]db.Job](t, w)
	assert.Len(t, all, len(memstore.DemoJobs)+2, "admin listing includes inactive jobs")
	assert.Equal(t, draft.ID, all[0].ID)

	w = ts.do(t, http.MethodPut, "/admin/jobs/"+job.ID.String(), map[string]any{"active": false}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeBody[db.Job](t, w)
	assert.False(t, updated.Active)
	assert.Equal(t, "Data Engineer", updated.Title, "omitted fields are unchanged")

	w = ts.do(t, http.MethodPut, "/admin/jobs/"+uuid.NewString(), map[string]any{"title": "x"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodDelete, "/admin/jobs/"+job.ID.String(), nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(t, http.MethodDelete, "/admin/jobs/"+job.ID.String(), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, []events.Type{events.JobCreated, events.JobCreated, events.JobUpdated, events.JobDeleted}, ts.events.Types())
}

func TestAdminCandidates(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	ctx := context.Background()

	jobs, err := ts.store.ListJobs(ctx, db.ListJobsOptions{})
	require.NoError(t, err)
	jobID := jobs[0].ID

	bank, err := ts.store.CreateCandidate(ctx, db.CandidateInput{Name: "Bank", Email: "bank@example.com"})
	require.NoError(t, err)
	applied, err := ts.store.CreateCandidate(ctx, db.CandidateInput{Name: "Applied", Email: "applied@example.com", JobID: &jobID})
	require.NoError(t, err)

	w := ts.do(t, http.MethodGet, "/admin/candidates", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody[[]db.Candidate](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, applied.ID, list[0].ID, "newest first")

	w = ts.do(t, http.MethodGet, "/admin/candidates?job_id="+jobID.String(), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	filtered := decodeBody[[]db.Candidate](t, w)
	require.Len(t, filtered, 1)
	assert.Equal(t, applied.ID, filtered[0].ID)

	w = ts.do(t, http.MethodGet, "/admin/candidates?job_id=nope", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/admin/candidates/"+bank.ID.String(), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bank", decodeBody[db.Candidate](t, w).Name)

	w = ts.do(t, http.MethodDelete, "/admin/candidates/"+bank.ID.String(), nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(t, http.MethodGet, "/admin/candidates/"+bank.ID.String(), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminMessages(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := ts.store.CreateMessage(ctx, db.MessageInput{Name: name, Email: name + "@example.com", Message: "hi"})
		require.NoError(t, err)
	}

	w := ts.do(t, http.MethodGet, "/admin/messages?limit=2&offset=1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	page := decodeBody[[]db.Message](t, w)
	require.Len(t, page, 2)
	assert.Equal(t, "second", page[0].Name)
	assert.Equal(t, "first", page[1].Name)

	w = ts.do(t, http.MethodGet, "/admin/messages?limit=-1", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodDelete, "/admin/messages/"+page[0].ID.String(), nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)
	n, err := ts.store.Count(ctx, db.CollectionMessages)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAdminClientsAndOnboardings(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	w := ts.do(t, http.MethodPost, "/admin/clients", map[string]string{"name": "Acme", "email": "hr@acme.com", "contact_person": "Rita"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	client := decodeBody[db.ClientCompany](t, w)

	w = ts.do(t, http.MethodPut, "/admin/clients/"+client.ID.String(), map[string]string{"contact_person": "Bruno"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bruno", decodeBody[db.ClientCompany](t, w).ContactPerson)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{"defaults to in review", map[string]any{"candidate_name": "Ana", "client_id": client.ID}, http.StatusCreated},
		{"explicit status", map[string]any{"candidate_name": "Caio", "client_id": client.ID, "status": "pending_documents", "docs_url": "https://drive.example.com/caio"}, http.StatusCreated},
		{"unknown status", map[string]any{"candidate_name": "Ana", "client_id": client.ID, "status": "hired"}, http.StatusBadRequest},
		{"unknown client", map[string]any{"candidate_name": "Ana", "client_id": uuid.New()}, http.StatusBadRequest},
		{"missing client", map[string]any{"candidate_name": "Ana"}, http.StatusBadRequest},
	}
	var created []db.OnboardingProcess
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/admin/onboardings", tt.body, token)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if w.Code == http.StatusCreated {
				created = append(created, decodeBody[db.OnboardingProcess](t, w))
			}
		})
	}
	require.Len(t, created, 2)
	assert.Equal(t, db.OnboardingInReview, created[0].Status)

	w = ts.do(t, http.MethodPut, "/admin/onboardings/"+created[0].ID.String(), map[string]string{"status": "approved"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, db.OnboardingApproved, decodeBody[db.OnboardingProcess](t, w).Status)

	w = ts.do(t, http.MethodPut, "/admin/onboardings/"+created[0].ID.String(), map[string]any{"client_id": uuid.New()}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/admin/onboardings", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]db.OnboardingProcess](t, w), 2)

	w = ts.do(t, http.MethodDelete, "/admin/onboardings/"+created[1].ID.String(), nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodDelete, "/admin/clients/"+client.ID.String(), nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(t, http.MethodGet, "/admin/onboardings", nil, token)
	assert.Empty(t, decodeBody[[]db.OnboardingProcess](t, w), "processes go with their client")
}

func TestDashboard(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	ctx := context.Background()

	_, err := ts.store.CreateJob(ctx, db.JobInput{Title: "Draft"})
	require.NoError(t, err)
	_, err = ts.store.CreateCandidate(ctx, db.CandidateInput{Name: "Ana"})
	require.NoError(t, err)
	_, err = ts.store.CreateMessage(ctx, db.MessageInput{Name: "Rita"})
	require.NoError(t, err)
	client, err := ts.store.CreateClient(ctx, db.ClientInput{Name: "Acme"})
	require.NoError(t, err)
	_, err = ts.store.CreateOnboarding(ctx, db.OnboardingInput{CandidateName: "Ana", ClientID: client.ID})
	require.NoError(t, err)

	w := ts.do(t, http.MethodGet, "/admin/dashboard", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.DashboardResponse{
		ActiveJobs:  len(memstore.DemoJobs),
		Jobs:        len(memstore.DemoJobs) + 1,
		Candidates:  1,
		Messages:    1,
		Clients:     1,
		Onboardings: 1,
	}, decodeBody[types.DashboardResponse](t, w))
}
