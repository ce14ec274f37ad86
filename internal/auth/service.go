// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/dojo-console/internal/core"
	"github.com/carterperez-dev/dojo-console/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenReuse         = errors.New("refresh token reuse detected")
	ErrEmailExists        = errors.New("email already exists")
)

const blacklistPrefix = "auth:blacklist:"

type StaffInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	TokenVersion int
}

// StaffProvider is the slice of the staff service auth depends on.
type StaffProvider interface {
	GetByEmail(ctx context.Context, email string) (*StaffInfo, error)
	GetByID(ctx context.Context, id string) (*StaffInfo, error)
	Create(ctx context.Context, email, passwordHash, name string) (*StaffInfo, error)
	IncrementTokenVersion(ctx context.Context, staffID string) error
	UpdatePassword(ctx context.Context, staffID, passwordHash string) error
}

type Service struct {
	repo  Repository
	jwt   *JWTManager
	staff StaffProvider
	redis *redis.Client
	now   func() time.Time
}

func NewService(
	repo Repository,
	jwt *JWTManager,
	staff StaffProvider,
	redisClient *redis.Client,
) *Service {
	return &Service{
		repo:  repo,
		jwt:   jwt,
		staff: staff,
		redis: redisClient,
		now:   time.Now,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	account, err := s.staff.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // equalize timing for unknown emails
			_, _, _ = core.CheckLogin(req.Password, "")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}

	valid, rehash, err := core.CheckLogin(req.Password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	if rehash != "" {
		if err := s.staff.UpdatePassword(ctx, account.ID, rehash); err != nil {
			slog.WarnContext(ctx, "password rehash failed", "staff_id", account.ID, "error", err)
		}
	}

	return s.issue(ctx, account, userAgent, ipAddress, "", "")
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.staff.Create(ctx, req.Email, passwordHash, req.Name)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create staff: %w", err)
	}

	return s.issue(ctx, account, userAgent, ipAddress, "", "")
}

// Refresh rotates a refresh token. Presenting a token that was already
// rotated revokes its whole family.
func (s *Service) Refresh(
	ctx context.Context,
	refreshToken, userAgent, ipAddress string,
) (*AuthResponse, error) {
	session, err := s.repo.FindByHash(ctx, core.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	if session.IsUsed {
		if err := s.repo.RevokeFamily(ctx, session.FamilyID); err != nil {
			slog.ErrorContext(ctx, "revoke session family failed",
				"family_id", session.FamilyID,
				"error", err,
			)
		}
		return nil, ErrTokenReuse
	}

	if !session.IsValid(s.now()) {
		if session.IsRevoked() {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenRevoked)
		}
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenExpired)
	}

	account, err := s.staff.GetByID(ctx, session.StaffID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenRevoked)
	}
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	return s.issue(ctx, account, userAgent, ipAddress, session.FamilyID, session.ID)
}

// Logout revokes the presented refresh token and blacklists the access
// token that made the request.
func (s *Service) Logout(
	ctx context.Context,
	refreshToken string,
	claims *middleware.AccessTokenClaims,
) error {
	session, err := s.repo.FindByHash(ctx, core.HashToken(refreshToken))
	switch {
	case errors.Is(err, core.ErrNotFound):
	case err != nil:
		return fmt.Errorf("logout: %w", err)
	case session.StaffID != claims.UserID:
		return fmt.Errorf("logout: %w", core.ErrForbidden)
	default:
		if err := s.repo.RevokeByID(ctx, session.ID); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}

	return s.blacklist(ctx, claims.TokenID, claims.ExpiresAt)
}

func (s *Service) LogoutAll(ctx context.Context, staffID string) error {
	if err := s.repo.RevokeAllForStaff(ctx, staffID); err != nil {
		return fmt.Errorf("logout all: %w", err)
	}

	if err := s.staff.IncrementTokenVersion(ctx, staffID); err != nil {
		return fmt.Errorf("logout all: %w", err)
	}

	return nil
}

func (s *Service) ChangePassword(
	ctx context.Context,
	staffID string,
	req ChangePasswordRequest,
) error {
	account, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	valid, err := core.VerifyPassword(req.CurrentPassword, account.PasswordHash)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if !valid {
		return ErrInvalidCredentials
	}

	newHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	if err := s.staff.UpdatePassword(ctx, staffID, newHash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	return s.LogoutAll(ctx, staffID)
}

// PruneSessions deletes refresh tokens that expired more than a day ago.
func (s *Service) PruneSessions(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now().Add(-24*time.Hour))
}

// VerifyAccessToken is the middleware.TokenVerifier used by the API. On
// top of the JWT checks it rejects blacklisted tokens and tokens minted
// before the staff member's last logout-all or role change.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.redis != nil && claims.TokenID != "" {
		n, err := s.redis.Exists(ctx, blacklistPrefix+claims.TokenID).Result()
		if err != nil {
			slog.WarnContext(ctx, "token blacklist unavailable", "error", err)
		} else if n > 0 {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
		}
	}

	account, err := s.staff.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
		}
		return nil, fmt.Errorf("verify token: %w", err)
	}

	if claims.TokenVersion < account.TokenVersion {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

func (s *Service) blacklist(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.redis == nil || jti == "" {
		return nil
	}

	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, blacklistPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}

	return nil
}

func (s *Service) CurrentStaff(ctx context.Context, staffID string) (*StaffSummary, error) {
	account, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}

	return &StaffSummary{
		ID:    account.ID,
		Email: account.Email,
		Name:  account.Name,
		Role:  account.Role,
	}, nil
}

func (s *Service) issue(
	ctx context.Context,
	account *StaffInfo,
	userAgent, ipAddress, familyID, previousID string,
) (*AuthResponse, error) {
	now := s.now()

	accessToken, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		StaffID:      account.ID,
		Role:         account.Role,
		TokenVersion: account.TokenVersion,
	}, now)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refresh, err := s.jwt.CreateRefreshToken(familyID, now)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	session := &Session{
		ID:        uuid.New().String(),
		StaffID:   account.ID,
		TokenHash: refresh.Hash,
		FamilyID:  refresh.FamilyID,
		ExpiresAt: refresh.ExpiresAt,
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	if previousID != "" {
		if err := s.repo.MarkAsUsed(ctx, previousID, session.ID); err != nil {
			return nil, fmt.Errorf("rotate session: %w", err)
		}
	}

	ttl := s.jwt.AccessTokenTTL()

	return &AuthResponse{
		Staff: StaffSummary{
			ID:    account.ID,
			Email: account.Email,
			Name:  account.Name,
			Role:  account.Role,
		},
		Tokens: TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refresh.Token,
			TokenType:    "Bearer",
			ExpiresIn:    int(ttl / time.Second),
			ExpiresAt:    now.Add(ttl),
		},
	}, nil
}

var _ middleware.TokenVerifier = (*Service)(nil)
