package trips

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	tripsdomain "pocketcart/internal/domain/trips"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(tripsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) LockUserTrips(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "shopping_trips:"+userID).
		Error
}

func (r *PostgresRepository) Latest(ctx context.Context, userID string) (*tripsdomain.Trip, error) {
	var trip tripsdomain.Trip
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tripsdomain.ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter tripsdomain.Filter) ([]tripsdomain.Trip, error) {
	query := r.db.WithContext(ctx).Model(&tripsdomain.Trip{}).Where("user_id = ?", userID)
	if !filter.Start.IsZero() {
		query = query.Where("trip_date >= ?", filter.Start.UTC())
	}
	if !filter.End.IsZero() {
		query = query.Where("trip_date <= ?", filter.End.UTC())
	}
	if filter.OnlyNonEmpty {
		query = query.Where("jsonb_array_length(items) > 0")
	}
	if filter.ClosedOnly {
		query = query.Where("closed_at IS NOT NULL")
	}

	var found []tripsdomain.Trip
	if err := query.Order("trip_date desc, created_at desc").Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*tripsdomain.Trip, error) {
	var trip tripsdomain.Trip
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tripsdomain.ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *PostgresRepository) Create(ctx context.Context, trip *tripsdomain.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *PostgresRepository) Update(ctx context.Context, trip *tripsdomain.Trip) error {
	result := r.db.WithContext(ctx).
		Model(trip).
		Where("user_id = ?", trip.UserID).
		Select("items", "total_amount", "list_id", "trip_date", "closed_at", "updated_at").
		Updates(trip)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return tripsdomain.ErrTripNotFound
	}
	return nil
}

func (r *PostgresRepository) CloseOpen(ctx context.Context, userID string, closedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&tripsdomain.Trip{}).
		Where("user_id = ? AND closed_at IS NULL", userID).
		Update("closed_at", closedAt).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&tripsdomain.Trip{}, "user_id = ? AND id = ?", userID, id)
	return result.RowsAffected > 0, result.Error
}
