package lists

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pocketcart/internal/domain/items"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListLists(ctx context.Context, userID string) ([]List, error) {
	lists, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lists == nil {
		return []List{}, nil
	}
	return lists, nil
}

func (s *Service) GetList(ctx context.Context, userID, id string) (*List, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) CreateList(ctx context.Context, input CreateListInput) (*List, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	collection := input.Items
	if collection == nil {
		collection = items.Collection{}
	}
	if err := items.ValidateCollection(collection); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}

	list := List{
		ID:     uuid.NewString(),
		UserID: input.UserID,
		Name:   name,
		Items:  collection,
	}
	if err := s.repo.Create(ctx, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateList replaces the item array and optionally renames the list.
func (s *Service) UpdateList(ctx context.Context, input UpdateListInput) (*List, error) {
	collection := input.Items
	if collection == nil {
		collection = items.Collection{}
	}
	if err := items.ValidateCollection(collection); err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}

	list, err := s.repo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		list.Name = name
	}
	list.Items = collection

	if err := s.repo.Update(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) DeleteList(ctx context.Context, userID, id string) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrListNotFound
	}
	return nil
}
