package lists

import "context"

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]List, error)
	GetByID(ctx context.Context, userID, id string) (*List, error)
	Create(ctx context.Context, list *List) error
	Update(ctx context.Context, list *List) error
	Delete(ctx context.Context, userID, id string) (bool, error)
}
