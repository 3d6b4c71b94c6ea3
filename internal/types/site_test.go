package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validCandidate() CreateCandidateRequest {
	return CreateCandidateRequest{
		Name:    "Ana Souza",
		Email:   "ana@example.com",
		Phone:   "+55 11 99999-0000",
		Role:    "Sales Manager",
		Summary: "Ten years in B2B sales.",
	}
}

func TestCreateCandidateRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *CreateCandidateRequest)
		wantErr string
	}{
		{"valid talent bank sign-up", func(*CreateCandidateRequest) {}, ""},
		{"valid application", func(r *CreateCandidateRequest) { id := uuid.New(); r.JobID = &id }, ""},
		{"valid links", func(r *CreateCandidateRequest) {
			r.LinkedIn = "https://linkedin.com/in/ana"
			r.ExternalLink = "https://ana.dev"
		}, ""},
		{"missing name", func(r *CreateCandidateRequest) { r.Name = "" }, "Name"},
		{"blank summary", func(r *CreateCandidateRequest) { r.Summary = "  \n " }, "Summary"},
		{"bad email", func(r *CreateCandidateRequest) { r.Email = "ana" }, "Email"},
		{"missing phone", func(r *CreateCandidateRequest) { r.Phone = "" }, "Phone"},
		{"missing role", func(r *CreateCandidateRequest) { r.Role = "" }, "Role"},
		{"linkedin not a url", func(r *CreateCandidateRequest) { r.LinkedIn = "ana souza" }, "LinkedIn"},
		{"external link not a url", func(r *CreateCandidateRequest) { r.ExternalLink = "portfolio" }, "ExternalLink"},
		{"summary too long", func(r *CreateCandidateRequest) { r.Summary = strings.Repeat("a", 5001) }, "Summary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validCandidate()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateCandidateRequest_ToInputTrims(t *testing.T) {
	r := validCandidate()
	r.Name = "  Ana Souza "
	r.LinkedIn = " https://linkedin.com/in/ana "

	in := r.ToInput()
	assert.Equal(t, "Ana Souza", in.Name)
	assert.Equal(t, "https://linkedin.com/in/ana", in.LinkedIn)
	assert.Nil(t, in.JobID)
}

func TestCreateCandidateRequest_JobIDFromJSON(t *testing.T) {
	id := uuid.New()
	var r CreateCandidateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"job_id":"`+id.String()+`","name":"Ana"}`), &r))
	require.NotNil(t, r.JobID)
	assert.Equal(t, id, *r.JobID)

	var bank CreateCandidateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ana"}`), &bank))
	assert.Nil(t, bank.JobID)
}

func TestCreateJobRequest(t *testing.T) {
	r := CreateJobRequest{Title: " Frontend Developer ", Location: "Remote", Type: "PJ"}
	require.NoError(t, r.Validate())

	in := r.ToInput()
	assert.Equal(t, "Frontend Developer", in.Title)
	assert.True(t, in.Active, "new jobs default to active")

	r.Active = ptr(false)
	assert.False(t, r.ToInput().Active)

	assert.Error(t, (&CreateJobRequest{}).Validate())
	assert.Error(t, (&CreateJobRequest{Title: "   "}).Validate())
}

func TestUpdateJobRequest(t *testing.T) {
	r := UpdateJobRequest{Title: ptr(" New title "), Active: ptr(false)}
	require.NoError(t, r.Validate())

	u := r.ToUpdate()
	require.NotNil(t, u.Title)
	assert.Equal(t, "New title", *u.Title)
	assert.Nil(t, u.Location)
	assert.False(t, *u.Active)

	assert.Error(t, (&UpdateJobRequest{Title: ptr(" ")}).Validate(), "title cannot be blanked")
	assert.NoError(t, (&UpdateJobRequest{}).Validate(), "empty update is valid")
}

func TestCreateMessageRequest_Validation(t *testing.T) {
	assert.NoError(t, (&CreateMessageRequest{Name: "Rui", Email: "rui@example.com", Message: "Hello"}).Validate())
	assert.Error(t, (&CreateMessageRequest{Name: "Rui", Email: "rui@example.com"}).Validate())
	assert.Error(t, (&CreateMessageRequest{Name: "Rui", Email: "rui", Message: "Hello"}).Validate())
}

func TestClientRequests(t *testing.T) {
	c := CreateClientRequest{Name: "Acme", Email: "hr@acme.com", ContactPerson: "Rita"}
	require.NoError(t, c.Validate())
	assert.Equal(t, db.ClientInput{Name: "Acme", Email: "hr@acme.com", ContactPerson: "Rita"}, c.ToInput())

	assert.Error(t, (&CreateClientRequest{Name: "Acme", Email: "hr@acme.com"}).Validate())
	assert.Error(t, (&UpdateClientRequest{Email: ptr("nope")}).Validate())
	assert.NoError(t, (&UpdateClientRequest{ContactPerson: ptr("Bia")}).Validate())
}

func TestOnboardingRequests(t *testing.T) {
	clientID := uuid.New()

	tests := []struct {
		name    string
		request CreateOnboardingRequest
		wantErr bool
	}{
		{"default status", CreateOnboardingRequest{CandidateName: "Ana", ClientID: clientID}, false},
		{"explicit status", CreateOnboardingRequest{CandidateName: "Ana", ClientID: clientID, Status: "pending_documents"}, false},
		{"with docs", CreateOnboardingRequest{CandidateName: "Ana", ClientID: clientID, DocsURL: "https://drive.example.com/ana"}, false},
		{"missing client", CreateOnboardingRequest{CandidateName: "Ana"}, true},
		{"unknown status", CreateOnboardingRequest{CandidateName: "Ana", ClientID: clientID, Status: "hired"}, true},
		{"docs not a url", CreateOnboardingRequest{CandidateName: "Ana", ClientID: clientID, DocsURL: "folder"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	u := (&UpdateOnboardingRequest{Status: ptr("approved")}).ToUpdate()
	require.NotNil(t, u.Status)
	assert.Equal(t, db.OnboardingApproved, *u.Status)
	assert.Error(t, (&UpdateOnboardingRequest{Status: ptr("done")}).Validate())
}

func TestGenerateProfileRequest_FlattenedJSON(t *testing.T) {
	var r GenerateProfileRequest
	body := `{"name":"Ana","role":"Engineer","skills":"Go, SQL","locale":"pt-BR"}`
	require.NoError(t, json.Unmarshal([]byte(body), &r))

	assert.Equal(t, "Ana", r.Name)
	assert.Equal(t, "Engineer", r.Role)
	assert.Equal(t, "Go, SQL", r.Skills)
	assert.Equal(t, "pt-BR", r.Locale)
	assert.NoError(t, r.Validate())

	assert.NoError(t, (&GenerateProfileRequest{}).Validate(), "every field may be empty")
	assert.NoError(t, (&GenerateProfileRequest{Locale: strings.Repeat("x", 64)}).Validate())
}
