package server

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/db"
	"github.com/hevilin/talentsite/internal/events"
	"github.com/hevilin/talentsite/internal/memstore"
	"github.com/hevilin/talentsite/internal/profile"
	"github.com/hevilin/talentsite/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyURL(t *testing.T) {
	tests := []struct {
		name   string
		number string
		title  string
		want   string
	}{
		{
			name:   "plain title",
			number: "5511999999999",
			title:  "HR Analyst",
			want:   "https://wa.me/5511999999999?text=Hello%21%20I%20would%20like%20to%20apply%20for%20the%20position%3A%20HR%20Analyst",
		},
		{
			name:   "accents and ampersand",
			number: "5511999999999",
			title:  "Sales & Marketing Gerente",
			want:   "https://wa.me/5511999999999?text=Hello%21%20I%20would%20like%20to%20apply%20for%20the%20position%3A%20Sales%20%26%20Marketing%20Gerente",
		},
		{
			name:   "no number configured",
			number: "",
			title:  "PJ",
			want:   "https://wa.me/?text=Hello%21%20I%20would%20like%20to%20apply%20for%20the%20position%3A%20PJ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyURL(tt.number, tt.title))
		})
	}
}

func TestPublicJobs(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	hidden, err := ts.store.CreateJob(ctx, db.JobInput{Title: "Hidden", Active: false})
	require.NoError(t, err)

	w := ts.do(t, http.MethodGet, "/jobs", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	jobs := decodeBody[[]db.Job](t, w)
	require.Len(t, jobs, len(memstore.DemoJobs))
	for _, j := range jobs {
		assert.True(t, j.Active)
		assert.NotEqual(t, hidden.ID, j.ID)
	}
	assert.Equal(t, "HR Analyst", jobs[0].Title, "newest first")

	w = ts.do(t, http.MethodGet, "/jobs?order=asc&limit=1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	oldest := decodeBody[[]db.Job](t, w)
	require.Len(t, oldest, 1)
	assert.Equal(t, "Commercial Manager", oldest[0].Title)

	w = ts.do(t, http.MethodGet, "/jobs/"+jobs[0].ID.String(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, jobs[0].ID, decodeBody[db.Job](t, w).ID)

	w = ts.do(t, http.MethodGet, "/jobs/"+hidden.ID.String(), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code, "inactive jobs are not public")

	w = ts.do(t, http.MethodGet, "/jobs/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/jobs/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/jobs?order=sideways", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyLink(t *testing.T) {
	ts := newTestServer(t)
	jobs, err := ts.store.ListJobs(context.Background(), db.ListJobsOptions{ActiveOnly: true})
	require.NoError(t, err)

	w := ts.do(t, http.MethodGet, "/jobs/"+jobs[0].ID.String()+"/apply", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ApplyURL("5511999999999", jobs[0].Title), decodeBody[types.ApplyLinkResponse](t, w).URL)
}

func validCandidate() map[string]any {
	return map[string]any{
		"name":     "Ana Souza",
		"email":    "ana@example.com",
		"phone":    "+55 11 99999-9999",
		"role":     "HR Analyst",
		"linkedin": "https://linkedin.com/in/ana",
		"summary":  "Five years in recruitment.",
	}
}

func TestCreateCandidate(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	jobs, err := ts.store.ListJobs(ctx, db.ListJobsOptions{ActiveOnly: true})
	require.NoError(t, err)
	closed, err := ts.store.CreateJob(ctx, db.JobInput{Title: "Closed", Active: false})
	require.NoError(t, err)

	with := func(k string, v any) map[string]any {
		body := validCandidate()
		if v == nil {
			delete(body, k)
		} else {
			body[k] = v
		}
		return body
	}

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantError  string
	}{
		{"talent bank sign-up", validCandidate(), http.StatusCreated, ""},
		{"application", with("job_id", jobs[0].ID), http.StatusCreated, ""},
		{"closed job", with("job_id", closed.ID), http.StatusBadRequest, "validation error: job_id - job is not open for applications"},
		{"unknown job", with("job_id", uuid.New()), http.StatusBadRequest, "validation error: job_id - job is not open for applications"},
		{"missing phone", with("phone", nil), http.StatusBadRequest, "validation error: Phone - required"},
		{"blank summary", with("summary", "   "), http.StatusBadRequest, "validation error: Summary - notblank"},
		{"bad email", with("email", "ana"), http.StatusBadRequest, "validation error: Email - email"},
		{"bad portfolio link", with("external_link", "not a url"), http.StatusBadRequest, "validation error: ExternalLink - url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/candidates", tt.body, "")
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorMessage(t, w))
				return
			}
			c := decodeBody[db.Candidate](t, w)
			assert.NotEqual(t, uuid.Nil, c.ID)
			assert.Equal(t, "Ana Souza", c.Name)
		})
	}

	n, err := ts.store.Count(ctx, db.CollectionCandidates)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []events.Type{events.CandidateRegistered, events.CandidateRegistered}, ts.events.Types())
}

func TestCreateMessage(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/messages", map[string]string{"name": "Rita", "email": "rita@example.com", "message": "We are hiring."}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	msg := decodeBody[db.Message](t, w)
	assert.Equal(t, "We are hiring.", msg.Message)

	recorded := ts.events.Events()
	require.Len(t, recorded, 1)
	assert.Equal(t, events.MessageReceived, recorded[0].Type)
	assert.Equal(t, msg.ID, recorded[0].SubjectID)

	w = ts.do(t, http.MethodPost, "/messages", map[string]string{"name": "Rita", "email": "rita@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, events.Event) error {
	return assert.AnError
}
func (failingPublisher) Close() error { return nil }

func TestCreateMessage_PublishFailureDoesNotFailRequest(t *testing.T) {
	ts := newTestServer(t, func(_ *Config, d *Deps) { d.Events = failingPublisher{} })

	w := ts.do(t, http.MethodPost, "/messages", map[string]string{"name": "Rita", "email": "rita@example.com", "message": "Hi"}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGenerateProfile(t *testing.T) {
	ts := newTestServer(t)
	in := profile.Inputs{
		Name:              "Ana",
		Role:              "Data Analyst",
		Area:              "Finance",
		YearsOfExperience: "5",
		Skills:            "SQL, Python, Power BI",
		Achievement:       "cut reporting time by 40%",
	}

	t.Run("default english", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/profile/generate", types.GenerateProfileRequest{Inputs: in}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, profile.Generate(in), decodeBody[profile.Generated](t, w))
	})

	t.Run("portuguese", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/profile/generate", types.GenerateProfileRequest{Inputs: in, Locale: "pt-BR"}, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, profile.Portuguese.Generate(in), decodeBody[profile.Generated](t, w))
	})

	t.Run("unknown long locale falls back to english", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/profile/generate", types.GenerateProfileRequest{Inputs: in, Locale: strings.Repeat("zz-", 20)}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, profile.Generate(in), decodeBody[profile.Generated](t, w))
	})

	t.Run("empty form still generates", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/profile/generate", map[string]string{}, "")
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody[profile.Generated](t, w)
		assert.Len(t, got.Headlines, profile.HeadlineCount)
		assert.Len(t, got.Abouts, profile.AboutCount)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/profile/generate", "{", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
