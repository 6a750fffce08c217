package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users    map[string]*User
	sessions map[string]*Session
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[string]*User),
		sessions: make(map[string]*Session),
	}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) EnsureUser(ctx context.Context, user *User) error {
	if _, ok := r.users[user.ID]; ok {
		return nil
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) CreateSession(ctx context.Context, session *Session) error {
	copied := *session
	r.sessions[session.TokenHash] = &copied
	return nil
}

func (r *fakeUserRepo) GetSession(ctx context.Context, tokenHash string) (*Session, error) {
	session, ok := r.sessions[tokenHash]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeUserRepo) DeleteSession(ctx context.Context, tokenHash string) error {
	delete(r.sessions, tokenHash)
	return nil
}

func (r *fakeUserRepo) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	for hash, session := range r.sessions {
		if !session.ExpiresAt.After(before) {
			delete(r.sessions, hash)
			deleted++
		}
	}
	return deleted, nil
}

func newTestService(repo Repository) *Service {
	return NewServiceWithConfig(repo, Config{SessionTTL: time.Hour, BcryptCost: bcrypt.MinCost})
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	registered, err := svc.Register(context.Background(), RegisterInput{Email: " Ann@Example.com ", Password: "secret", Name: "Ann"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if registered.Email != "ann@example.com" {
		t.Fatalf("expected normalized email, got %q", registered.Email)
	}
	if registered.PasswordHash == "secret" {
		t.Fatalf("expected hashed password")
	}

	result, err := svc.Login(context.Background(), "ann@example.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token")
	}
	if _, ok := repo.sessions[result.Token]; ok {
		t.Fatalf("expected raw token not to be stored")
	}

	user, err := svc.Authenticate(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %s, got %s", registered.ID, user.ID)
	}
}

func TestRegisterRequiresFields(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "", Name: "A"})
	if !errors.Is(err, ErrFieldsRequired) {
		t.Fatalf("expected ErrFieldsRequired, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	input := RegisterInput{Email: "a@b.c", Password: "pw", Name: "A"}

	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	_, _ = svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "pw", Name: "A"})

	if _, err := svc.Login(context.Background(), "a@b.c", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "missing@b.c", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthenticateExpiredSession(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	_, _ = svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "pw", Name: "A"})
	result, err := svc.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := svc.Authenticate(context.Background(), result.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if len(repo.sessions) != 0 {
		t.Fatalf("expected expired session removed")
	}
}

func TestLogoutDeletesSession(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	_, _ = svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "pw", Name: "A"})
	result, _ := svc.Login(context.Background(), "a@b.c", "pw")

	if err := svc.Logout(context.Background(), result.Token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), result.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after logout, got %v", err)
	}
}
