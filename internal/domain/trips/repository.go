package trips

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	LockUserTrips(ctx context.Context, userID string) error
	Latest(ctx context.Context, userID string) (*Trip, error)
	List(ctx context.Context, userID string, filter Filter) ([]Trip, error)
	GetByID(ctx context.Context, userID, id string) (*Trip, error)
	Create(ctx context.Context, trip *Trip) error
	Update(ctx context.Context, trip *Trip) error
	CloseOpen(ctx context.Context, userID string, closedAt time.Time) error
	Delete(ctx context.Context, userID, id string) (bool, error)
}
