package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/config"
	"github.com/hevilin/talentsite/internal/db"
	"github.com/hevilin/talentsite/internal/types"
	"go.uber.org/zap"
)

// IdentityService signs the administrator in and out and manages the
// account's password.
type IdentityService struct {
	users          UserStore
	passwordConfig *config.PasswordConfig
	bypass         *config.BypassConfig
	logger         *zap.Logger
}

// NewIdentityService creates an IdentityService. bypass may be nil; callers
// only pass an enabled bypass in demo mode.
func NewIdentityService(users UserStore, passwordConfig *config.PasswordConfig, bypass *config.BypassConfig, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if bypass != nil && bypass.Enabled {
		logger.Warn("admin bypass sign-in is enabled; do not use in production", zap.String("email", bypass.Email))
	}
	return &IdentityService{
		users:          users,
		passwordConfig: passwordConfig,
		bypass:         bypass,
		logger:         logger,
	}
}

// bypassUserID is stable per configured email so a bypass session survives
// a restart.
func bypassUserID(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("talentsite:bypass:"+email))
}

func (s *IdentityService) bypassUser() *types.User {
	return &types.User{
		ID:          bypassUserID(s.bypass.Email),
		Name:        "Administrator",
		Email:       s.bypass.Email,
		PasswordSet: true,
	}
}

func (s *IdentityService) isBypassUser(id uuid.UUID) bool {
	return s.bypass != nil && s.bypass.Enabled && id == bypassUserID(s.bypass.Email)
}

// convertDBUserToTypesUser converts db.User to types.User, excluding password hash
func convertDBUserToTypesUser(dbUser *db.User) *types.User {
	if dbUser == nil {
		return nil
	}
	return &types.User{
		ID:          dbUser.ID,
		Name:        dbUser.Name,
		Email:       dbUser.Email,
		PasswordSet: dbUser.PasswordSet,
		CreatedAt:   dbUser.CreatedAt,
		UpdatedAt:   dbUser.UpdatedAt,
	}
}

// CreateAdmin creates the administrator account with a password.
func (s *IdentityService) CreateAdmin(ctx context.Context, req *types.CreateAdminRequest) (*types.User, error) {
	if err := s.passwordConfig.CheckStrength(req.Password); err != nil {
		return nil, &ErrValidation{Field: "password", Message: err.Error()}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.users.CreateUser(ctx, strings.TrimSpace(req.Name), email)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return nil, fmt.Errorf("failed to set password: %w", err)
	}

	dbUser, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if dbUser == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}
	return convertDBUserToTypesUser(dbUser), nil
}

// Login authenticates the administrator. Unknown email, wrong password and
// an unset password all yield the same ErrInvalidCredentials.
func (s *IdentityService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	dbUser, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("identity backend lookup failed", zap.Error(err))
		return nil, &ErrIdentityUnavailable{Err: err}
	}

	if dbUser == nil {
		if s.bypass.Matches(req.Email, req.Password) {
			s.logger.Warn("admin bypass sign-in used", zap.String("email", s.bypass.Email))
			return s.bypassUser(), nil
		}
		return nil, &ErrInvalidCredentials{}
	}

	if !dbUser.PasswordSet || !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return convertDBUserToTypesUser(dbUser), nil
}

// CurrentUser returns the account behind a validated session.
func (s *IdentityService) CurrentUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	if s.isBypassUser(userID) {
		return s.bypassUser(), nil
	}
	dbUser, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, &ErrIdentityUnavailable{Err: err}
	}
	if dbUser == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return convertDBUserToTypesUser(dbUser), nil
}

// UpdatePassword changes the administrator's password after checking the
// current one.
func (s *IdentityService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if s.isBypassUser(userID) {
		return &ErrValidation{Field: "new_password", Message: "the bypass account's password is set by configuration"}
	}

	dbUser, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return &ErrUserNotFound{UserID: userID}
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, dbUser.PasswordHash) {
		return &ErrPasswordMismatch{}
	}
	if err := s.passwordConfig.CheckStrength(newPassword); err != nil {
		return &ErrValidation{Field: "new_password", Message: err.Error()}
	}

	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, newPasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
