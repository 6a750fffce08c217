package lists

import (
	"context"
	"errors"

	"gorm.io/gorm"

	listsdomain "pocketcart/internal/domain/lists"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]listsdomain.List, error) {
	var lists []listsdomain.List
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*listsdomain.List, error) {
	var list listsdomain.List
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listsdomain.ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (r *PostgresRepository) Create(ctx context.Context, list *listsdomain.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *PostgresRepository) Update(ctx context.Context, list *listsdomain.List) error {
	result := r.db.WithContext(ctx).
		Model(list).
		Where("user_id = ?", list.UserID).
		Select("name", "items", "updated_at").
		Updates(list)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return listsdomain.ErrListNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&listsdomain.List{}, "user_id = ? AND id = ?", userID, id)
	return result.RowsAffected > 0, result.Error
}
