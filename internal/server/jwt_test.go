package server

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/config"
	"github.com/hevilin/talentsite/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: testSecret, Issuer: "talentsite", ExpirationHours: 24}
}

func setupTestJWTService(_ *testing.T) *JWTService {
	return NewJWTService(testJWTConfig(), session.NewMemory())
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := setupTestJWTService(t)
	userID := uuid.New()

	token, expiresAt, err := service.GenerateToken(userID, "admin@example.com")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3, "JWT should have 3 parts separated by dots")
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, 5*time.Second)

	claims, err := service.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "talentsite", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_UniqueSessionIDs(t *testing.T) {
	service := setupTestJWTService(t)
	userID := uuid.New()

	token1, _, err := service.GenerateToken(userID, "a@example.com")
	require.NoError(t, err)
	token2, _, err := service.GenerateToken(userID, "a@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, token1, token2)

	c1, err := service.ValidateToken(context.Background(), token1)
	require.NoError(t, err)
	c2, err := service.ValidateToken(context.Background(), token2)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestJWTService_ValidateToken_Rejects(t *testing.T) {
	service := setupTestJWTService(t)
	good, _, err := service.GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	otherSecret := NewJWTService(&config.JWTConfig{Secret: "another-secret-key-minimum-32-bytes!!", Issuer: "talentsite", ExpirationHours: 24}, nil)
	forged, _, err := otherSecret.GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	otherIssuer := NewJWTService(&config.JWTConfig{Secret: testSecret, Issuer: "someone-else", ExpirationHours: 24}, nil)
	foreign, _, err := otherIssuer.GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	expiredService := setupTestJWTService(t)
	expiredService.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expired, _, err := expiredService.GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not.a.valid.jwt.token"},
		{"truncated signature", good[:len(good)-4]},
		{"wrong secret", forged},
		{"wrong issuer", foreign},
		{"expired", expired},
		{"none algorithm", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(context.Background(), tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_Revoke(t *testing.T) {
	service := setupTestJWTService(t)
	ctx := context.Background()

	token, _, err := service.GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)
	other, _, err := service.GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	claims, err := service.ValidateToken(ctx, token)
	require.NoError(t, err)
	require.NoError(t, service.Revoke(ctx, claims))

	_, err = service.ValidateToken(ctx, token)
	assert.True(t, errors.Is(err, ErrTokenRevoked))

	_, err = service.ValidateToken(ctx, other)
	assert.NoError(t, err, "revoking one session leaves the others valid")
}

type failingRevoker struct{}

func (failingRevoker) Revoke(context.Context, string, time.Time) error {
	return errors.New("revocation store down")
}

func (failingRevoker) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("revocation store down")
}

func TestJWTService_RevocationStoreDown(t *testing.T) {
	service := NewJWTService(testJWTConfig(), failingRevoker{})
	token, _, err := service.GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	_, err = service.ValidateToken(context.Background(), token)
	assert.Error(t, err, "an unverifiable session is rejected")
}
