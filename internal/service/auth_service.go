package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/config"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrSessionInvalid     = errors.New("session expired or replaced by a newer login")
)

// TokenType distinguishes client vs staff tokens.
type TokenType string

const (
	TokenTypeUser  TokenType = "user"
	TokenTypeStaff TokenType = "staff"
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"token_type"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	Status    string    `json:"status,omitempty"` // clients only
}

// StaffRole returns the parsed staff role, or false for client tokens.
func (c *Claims) StaffRole() (model.StaffRole, bool) {
	if c == nil || c.TokenType != TokenTypeStaff {
		return "", false
	}
	return model.ParseStaffRole(c.Role)
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	TokenType TokenType `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	Account   any       `json:"account"`
}

// AuthService handles signup, login, JWT and session management.
type AuthService struct {
	cfg         *config.Config
	rdb         *redis.Client
	userRepo    *repository.UserRepository
	trainerRepo *repository.TrainerRepository
	log         zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client, userRepo *repository.UserRepository, trainerRepo *repository.TrainerRepository, log zerolog.Logger) *AuthService {
	return &AuthService{
		cfg:         cfg,
		rdb:         rdb,
		userRepo:    userRepo,
		trainerRepo: trainerRepo,
		log:         log.With().Str("component", "auth_service").Logger(),
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Signup registers a client account in pending status. Staff must approve it
// before the client can book.
func (s *AuthService) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	email := normalizeEmail(req.Email)

	// Staff and clients share one login form, so an email may live in only one table.
	if _, err := s.trainerRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  req.PhoneNumber,
		Role:         model.UserRole,
		Status:       model.UserStatusPending,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("User signed up")
	return user, nil
}

// Login authenticates a client or, failing that, a staff account and opens a
// new session. Any earlier session of the same account stops validating.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !user.IsActive {
			return nil, ErrInvalidCredentials
		}
		if err := s.CheckPassword(user.PasswordHash, password); err != nil {
			return nil, err
		}
		return s.openSession(ctx, &Claims{
			TokenType: TokenTypeUser,
			UserID:    user.ID,
			Role:      user.Role,
			Status:    string(user.Status),
		}, user)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	trainer, err := s.trainerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !trainer.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := s.CheckPassword(trainer.PasswordHash, password); err != nil {
		return nil, err
	}
	return s.openSession(ctx, &Claims{
		TokenType: TokenTypeStaff,
		UserID:    trainer.ID,
		Role:      string(trainer.Role),
	}, trainer)
}

func (s *AuthService) openSession(ctx context.Context, claims *Claims, account any) (*LoginResult, error) {
	signed, err := s.SignToken(claims)
	if err != nil {
		return nil, err
	}

	// Overwrite rather than reject: the newest login wins.
	sessionKey := config.CacheKey.SessionKey(claims.UserID)
	if err := s.rdb.Set(ctx, sessionKey, claims.ID, s.cfg.JWTExpiry).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.log.Info().
		Str("account_id", claims.UserID.String()).
		Str("token_type", string(claims.TokenType)).
		Msg("Login succeeded")

	return &LoginResult{
		Token:     signed,
		TokenType: claims.TokenType,
		ExpiresAt: claims.ExpiresAt.Time,
		Account:   account,
	}, nil
}

// SignToken fills in the registered claims (a fresh JTI, subject and expiry)
// and signs the token with HS256.
func (s *AuthService) SignToken(claims *Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   claims.UserID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateSession checks that the token's JTI is the account's live session.
func (s *AuthService) ValidateSession(ctx context.Context, accountID uuid.UUID, jti string) error {
	stored, err := s.rdb.Get(ctx, config.CacheKey.SessionKey(accountID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrSessionInvalid
		}
		return fmt.Errorf("check session: %w", err)
	}
	if stored != jti {
		return ErrSessionInvalid
	}
	return nil
}

// Logout ends the account's session.
func (s *AuthService) Logout(ctx context.Context, accountID uuid.UUID) error {
	return s.rdb.Del(ctx, config.CacheKey.SessionKey(accountID)).Err()
}

// Me returns the account behind a set of claims.
func (s *AuthService) Me(ctx context.Context, claims *Claims) (any, error) {
	if claims.TokenType == TokenTypeStaff {
		trainer, err := s.trainerRepo.GetByID(ctx, claims.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return trainer, err
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
