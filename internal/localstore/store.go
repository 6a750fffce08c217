// Package localstore keeps the terminal client's state in a SQLite file:
// the session, the per-user budget and the trip being shopped.
package localstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	keyToken     = "session.token"
	keyUserID    = "session.user_id"
	keyUserEmail = "session.email"
	keyTripID    = "trip.current_id"
)

var ErrInvalidBudget = errors.New("budget must be a non-negative number")

type Session struct {
	Token  string
	UserID string
	Email  string
}

type Store struct {
	db *sql.DB
}

// Open opens the SQLite file at path and applies migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping local store: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Session(ctx context.Context) (Session, bool, error) {
	token, err := s.get(ctx, keyToken)
	if err != nil || token == "" {
		return Session{}, false, err
	}
	userID, err := s.get(ctx, keyUserID)
	if err != nil {
		return Session{}, false, err
	}
	email, err := s.get(ctx, keyUserEmail)
	if err != nil {
		return Session{}, false, err
	}
	return Session{Token: token, UserID: userID, Email: email}, true, nil
}

func (s *Store) SaveSession(ctx context.Context, session Session) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for key, value := range map[string]string{
			keyToken:     session.Token,
			keyUserID:    session.UserID,
			keyUserEmail: session.Email,
		} {
			if err := put(ctx, tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reset forgets the session and the current trip. Budgets stay, they belong
// to the user rather than the session.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM state WHERE key IN (?, ?, ?, ?)`,
		keyToken, keyUserID, keyUserEmail, keyTripID,
	)
	if err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}

func (s *Store) CurrentTripID(ctx context.Context) (string, error) {
	return s.get(ctx, keyTripID)
}

func (s *Store) SetCurrentTripID(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return put(ctx, tx, keyTripID, id)
	})
}

// Budget returns the user's budget; ok is false when none was set.
func (s *Store) Budget(ctx context.Context, userID string) (float64, bool, error) {
	var amount float64
	err := s.db.QueryRowContext(ctx, `SELECT amount FROM budgets WHERE user_id = ?`, userID).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read budget: %w", err)
	}
	return amount, true, nil
}

func (s *Store) SetBudget(ctx context.Context, userID string, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return ErrInvalidBudget
	}
	if strings.TrimSpace(userID) == "" {
		return errors.New("budget requires a signed in user")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (user_id, amount) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET amount = excluded.amount,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		userID, amount,
	)
	if err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}

func put(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
