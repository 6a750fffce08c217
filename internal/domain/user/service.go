package user

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultSessionTTL = 7 * 24 * time.Hour
	defaultBcryptCost = 10
	tokenBytes        = 32
)

type Config struct {
	SessionTTL time.Duration
	BcryptCost int
}

type Service struct {
	repo       Repository
	sessionTTL time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewService(repo Repository) *Service {
	return NewServiceWithConfig(repo, Config{})
}

func NewServiceWithConfig(repo Repository, cfg Config) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaultBcryptCost
	}

	return &Service{
		repo:       repo,
		sessionTTL: cfg.SessionTTL,
		bcryptCost: cfg.BcryptCost,
		now:        time.Now,
	}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || input.Password == "" || name == "" {
		return nil, ErrFieldsRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks the password and opens a new session.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	session := Session{
		TokenHash: HashToken(token),
		UserID:    user.ID,
		ExpiresAt: s.now().UTC().Add(s.sessionTTL),
	}
	if err := s.repo.CreateSession(ctx, &session); err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: *user}, nil
}

// Authenticate resolves a session token to its user. Expired sessions are
// removed and reported as missing.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrSessionNotFound
	}

	hash := HashToken(token)
	session, err := s.repo.GetSession(ctx, hash)
	if err != nil {
		return nil, err
	}
	if !session.ExpiresAt.After(s.now()) {
		_ = s.repo.DeleteSession(ctx, hash)
		return nil, ErrSessionNotFound
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.repo.DeleteSession(ctx, HashToken(token))
}

// EnsureUser makes sure a user row exists for the development bypass.
func (s *Service) EnsureUser(ctx context.Context, id, email, name string) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if email == "" {
		email = id + "@pocketcart.local"
	}
	if name == "" {
		name = "Dev User"
	}

	user := User{ID: id, Email: normalizeEmail(email), Name: name}
	if err := s.repo.EnsureUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredSessions(ctx, s.now().UTC())
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newToken() (string, error) {
	var b [tokenBytes]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b[:]), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
