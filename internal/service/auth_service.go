package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/sales-report-service/internal/auth"
	"github.com/spec-kit/sales-report-service/internal/domain"
	"github.com/spec-kit/sales-report-service/internal/repository"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

// AuthService authenticates staff and issues JWT tokens.
type AuthService struct {
	staff  repository.StaffRepository
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(staff repository.StaffRepository, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{staff: staff, tokens: tokens, logger: logger}
}

// LoginResult carries a signed token and the authenticated staff member.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Staff     *domain.SalesStaff
}

// Login verifies credentials and issues a token. The error message never
// reveals whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		s.logger.Info("login rejected", zap.String("email", email))
		return nil, apperrors.NewUnauthorized("invalid email or password")
	}

	token, expiresAt, err := s.tokens.GenerateToken(staff)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Staff: staff}, nil
}

// Me returns the authenticated staff member's own record.
func (s *AuthService) Me(ctx context.Context, id domain.Identity) (*domain.SalesStaff, error) {
	staff, err := s.staff.GetByID(ctx, id.SalesID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", nil)
		}
		return nil, err
	}
	return staff, nil
}

// Logout is a client-side token discard; the server holds no session state.
func (s *AuthService) Logout(ctx context.Context, id domain.Identity) error {
	return nil
}
