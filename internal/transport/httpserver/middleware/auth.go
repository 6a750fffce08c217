package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pocketcart/internal/config"
	userdomain "pocketcart/internal/domain/user"
	"pocketcart/pkg/logger"
)

type SessionService interface {
	Authenticate(ctx context.Context, token string) (*userdomain.User, error)
	EnsureUser(ctx context.Context, id, email, name string) (*userdomain.User, error)
}

type SessionAuth struct {
	sessions   SessionService
	cookieName string
	skipAuth   bool
	mockUser   User
	log        logger.Logger
}

type contextKey int

const (
	userIDKey contextKey = iota
	userKey
	tokenKey
)

type User struct {
	ID    string
	Email string
	Name  string
}

func NewSessionAuth(cfg config.AuthConfig, sessions SessionService, log logger.Logger) *SessionAuth {
	return &SessionAuth{
		sessions:   sessions,
		cookieName: cfg.CookieName,
		skipAuth:   cfg.SkipAuth,
		mockUser: User{
			ID:    strings.TrimSpace(cfg.MockUserID),
			Email: strings.TrimSpace(cfg.MockUserEmail),
			Name:  strings.TrimSpace(cfg.MockUserName),
		},
		log: logger.OrNop(log),
	}
}

func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			a.serveMockUser(w, r, next)
			return
		}

		token, ok := a.token(r)
		if !ok {
			unauthorized(w)
			return
		}

		found, err := a.sessions.Authenticate(r.Context(), token)
		if err != nil {
			if !errors.Is(err, userdomain.ErrSessionNotFound) {
				a.log.InternalError("auth.session: authenticate failed", err)
			}
			unauthorized(w)
			return
		}

		ctx := WithUser(r.Context(), User{ID: found.ID, Email: found.Email, Name: found.Name})
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *SessionAuth) serveMockUser(w http.ResponseWriter, r *http.Request, next http.Handler) {
	user := a.mockUser
	if user.ID == "" {
		writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
		return
	}

	ensured, err := a.sessions.EnsureUser(r.Context(), user.ID, user.Email, user.Name)
	if err != nil {
		a.log.Warn("auth.mock: ensure user failed", "user_id", user.ID, "err", err)
	} else {
		user.Email = ensured.Email
		user.Name = ensured.Name
	}

	next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
}

// token reads the session token from the Authorization header, falling back
// to the session cookie.
func (a *SessionAuth) token(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		return bearerToken(header)
	}
	if a.cookieName == "" {
		return "", false
	}
	cookie, err := r.Cookie(a.cookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", false
	}
	return strings.TrimSpace(cookie.Value), true
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
}

func WithUser(ctx context.Context, user User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.ID)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(userIDKey)
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// TokenFromContext returns the raw session token of the request, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
