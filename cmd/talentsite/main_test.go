package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hevilin/talentsite/internal/config"
	"github.com/hevilin/talentsite/internal/db"
	"github.com/hevilin/talentsite/internal/events"
	"github.com/hevilin/talentsite/internal/memstore"
	"github.com/hevilin/talentsite/internal/profile"
	"github.com/hevilin/talentsite/internal/server"
	"github.com/hevilin/talentsite/internal/server/ratelimit"
	"github.com/hevilin/talentsite/internal/session"
	"github.com/hevilin/talentsite/internal/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadSettings("")
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "*", cfg.CORSOrigin)
	})

	t.Run("file then env", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"port": 9000, "demo": true, "whatsapp_number": "551100000000"}`), 0o600))
		t.Setenv("WHATSAPP_NUMBER", "5511999999999")

		cfg, err := loadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Port)
		assert.True(t, cfg.Demo)
		assert.Equal(t, "5511999999999", cfg.WhatsAppNumber)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadSettings(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorContains(t, err, "failed to load config")
	})

	t.Run("bad env", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		_, err := loadSettings("")
		assert.ErrorContains(t, err, "invalid PORT")
	})
}

func TestOpenStore_Demo(t *testing.T) {
	store, err := openStore(context.Background(), config.Config{Demo: true}, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	n, err := store.CountActiveJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(memstore.DemoJobs), n)
}

func TestConnectDB_RequiresURL(t *testing.T) {
	_, err := connectDB(context.Background(), config.Config{})
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestOpenRevokerAndPublisher_Defaults(t *testing.T) {
	revoker, closeRevoker, err := openRevoker(context.Background(), config.Config{}, zap.NewNop())
	require.NoError(t, err)
	defer closeRevoker()
	assert.IsType(t, &session.Memory{}, revoker)

	publisher, err := openPublisher(config.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, events.Nop{}, publisher)
}

func TestWriteProfile(t *testing.T) {
	g := profile.Generate(profile.Inputs{Name: "Ana", Role: "Data Analyst", Skills: "SQL, Python"})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeProfile(&buf, g, false))
		out := buf.String()
		assert.Contains(t, out, "  1. "+g.Headlines[0])
		assert.Contains(t, out, "  3. "+g.Headlines[2])
		assert.Contains(t, out, "About, option 2")
		assert.Contains(t, out, g.Abouts[1])
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeProfile(&buf, g, true))
		var got profile.Generated
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, g, got)
	})
}

func TestProfileCommand_NonInteractive(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"profile", "--name", "Ana", "--role", "Analista", "--locale", "pt-BR", "--json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		profileJSON = false
		profileLocale = "en"
		profileInputs = profile.Inputs{}
	})

	require.NoError(t, rootCmd.Execute())

	var got profile.Generated
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	want := profile.Portuguese.Generate(profile.Inputs{Name: "Ana", Role: "Analista"})
	assert.Equal(t, want, got)
}

func TestWriteJobs(t *testing.T) {
	var empty bytes.Buffer
	require.NoError(t, writeJobs(&empty, nil))
	assert.Equal(t, "No jobs.\n", empty.String())

	store := memstore.NewDemo()
	jobs, err := store.ListJobs(context.Background(), db.ListJobsOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeJobs(&buf, jobs))
	out := buf.String()
	assert.Contains(t, out, "TITLE")
	for _, j := range memstore.DemoJobs {
		assert.Contains(t, out, j.Title)
	}
	assert.Contains(t, out, "open")
}

// startAPI serves a demo server with an administrator account.
func startAPI(t *testing.T) string {
	t.Helper()
	store := memstore.NewDemo()
	pw := &config.PasswordConfig{BcryptCost: bcrypt.MinCost, MinLength: 8}
	srv, err := server.New(server.Config{Demo: true}, server.Deps{
		Store:     store,
		JWT:       &config.JWTConfig{Secret: "cli-test-secret-that-is-long-enough", ExpirationHours: 1, Issuer: "talentsite"},
		Password:  pw,
		RateLimit: &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	identity := server.NewIdentityService(store, pw, nil, nil)
	_, err = identity.CreateAdmin(context.Background(), &types.CreateAdminRequest{
		Name: "Admin", Email: "admin@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func run(t *testing.T, fn func(*cobra.Command, []string) error) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	err := fn(cmd, nil)
	return buf.String(), err
}

func TestAPICommands(t *testing.T) {
	apiURL = startAPI(t)
	t.Cleanup(func() {
		apiURL, apiToken = "", ""
		jobsAll, jobTitle, jobInactive = false, "", false
		loginEmail = ""
	})

	t.Run("add requires a token", func(t *testing.T) {
		jobTitle = "Nope"
		_, err := run(t, runJobsAdd)
		assert.ErrorContains(t, err, "401")
	})

	t.Run("login with wrong password", func(t *testing.T) {
		loginEmail, loginPassword = "admin@example.com", "wrong-password"
		_, err := run(t, runLogin)
		assert.Error(t, err)
	})

	loginEmail = "admin@example.com"
	t.Setenv("ADMIN_PASSWORD", "correct-horse")
	loginPassword = ""
	out, err := run(t, runLogin)
	require.NoError(t, err)
	apiToken = strings.TrimSpace(out)
	require.NotEmpty(t, apiToken)

	jobTitle, jobLocation, jobType = "Payroll Analyst", "Remote", "CLT"
	jobInactive = true
	out, err = run(t, runJobsAdd)
	require.NoError(t, err)
	assert.Contains(t, out, "Created job Payroll Analyst")

	out, err = run(t, runJobsList)
	require.NoError(t, err)
	assert.NotContains(t, out, "Payroll Analyst", "closed jobs are not public")

	jobsAll = true
	out, err = run(t, runJobsList)
	require.NoError(t, err)
	assert.Contains(t, out, "Payroll Analyst")
	assert.Contains(t, out, "closed")
}
