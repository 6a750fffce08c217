package trips

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pocketcart/internal/domain/items"
)

const defaultHistoryCacheTTL = 5 * time.Minute

type Config struct {
	Location *time.Location
	Cache    HistoryCache
	CacheTTL time.Duration
}

type Service struct {
	repo     Repository
	location *time.Location
	cache    HistoryCache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return NewServiceWithConfig(repo, Config{CacheTTL: defaultHistoryCacheTTL})
}

func NewServiceWithConfig(repo Repository, cfg Config) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Cache == nil {
		cfg.Cache = noopHistoryCache{}
	}

	return &Service{
		repo:     repo,
		location: cfg.Location,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		now:      time.Now,
	}
}

func (s *Service) Location() *time.Location {
	return s.location
}

// CurrentTrip returns the user's open trip, creating an empty one when the
// latest trip is closed or none exists.
func (s *Service) CurrentTrip(ctx context.Context, userID string) (*Trip, error) {
	var current *Trip
	created := false
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.LockUserTrips(ctx, userID); err != nil {
			return err
		}
		latest, err := tx.Latest(ctx, userID)
		if err != nil && !errors.Is(err, ErrTripNotFound) {
			return err
		}
		if latest != nil && !latest.Closed() {
			current = latest
			return nil
		}

		trip := s.newTrip(userID, items.Collection{}, nil, nil)
		if err := tx.Create(ctx, &trip); err != nil {
			return err
		}
		current = &trip
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.cache.DeleteByUser(ctx, userID)
	}
	return current, nil
}

// CreateTrip stores a new trip and makes it the open one.
func (s *Service) CreateTrip(ctx context.Context, input CreateTripInput) (*Trip, error) {
	collection := input.Items
	if collection == nil {
		collection = items.Collection{}
	}
	if err := items.ValidateCollection(collection); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}

	trip := s.newTrip(input.UserID, collection, input.ListID, input.TripDate)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.LockUserTrips(ctx, input.UserID); err != nil {
			return err
		}
		if err := tx.CloseOpen(ctx, input.UserID, s.now().UTC()); err != nil {
			return err
		}
		return tx.Create(ctx, &trip)
	})
	if err != nil {
		return nil, err
	}

	s.cache.DeleteByUser(ctx, input.UserID)
	return &trip, nil
}

func (s *Service) GetTrip(ctx context.Context, userID, id string) (*Trip, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// UpdateTrip replaces the item array, recomputing total_amount from it.
func (s *Service) UpdateTrip(ctx context.Context, input UpdateTripInput) (*Trip, error) {
	collection := input.Items
	if collection == nil {
		collection = items.Collection{}
	}
	if err := items.ValidateCollection(collection); err != nil {
		return nil, fmt.Errorf("update trip: %w", err)
	}

	trip, err := s.repo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}
	if trip.Closed() {
		return nil, ErrTripClosed
	}

	trip.Items = collection
	trip.TotalAmount = items.RoundCents(items.Total(collection))
	if input.ListID != nil {
		if *input.ListID == "" {
			trip.ListID = nil
		} else {
			listID := *input.ListID
			trip.ListID = &listID
		}
	}
	if input.TripDate != nil {
		trip.TripDate = input.TripDate.UTC()
	}

	if err := s.repo.Update(ctx, trip); err != nil {
		return nil, err
	}

	s.cache.DeleteByUser(ctx, input.UserID)
	return trip, nil
}

func (s *Service) DeleteTrip(ctx context.Context, userID, id string) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTripNotFound
	}
	s.cache.DeleteByUser(ctx, userID)
	return nil
}

// Checkout closes the open trip and opens a fresh empty one.
func (s *Service) Checkout(ctx context.Context, userID string) (*CheckoutResult, error) {
	var result CheckoutResult
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.LockUserTrips(ctx, userID); err != nil {
			return err
		}
		latest, err := tx.Latest(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrTripNotFound) {
				return ErrEmptyTrip
			}
			return err
		}
		if latest.Closed() || len(latest.Items) == 0 {
			return ErrEmptyTrip
		}

		closedAt := s.now().UTC()
		latest.ClosedAt = &closedAt
		latest.TotalAmount = items.RoundCents(items.Total(latest.Items))
		if err := tx.Update(ctx, latest); err != nil {
			return err
		}

		open := s.newTrip(userID, items.Collection{}, nil, nil)
		if err := tx.Create(ctx, &open); err != nil {
			return err
		}

		result.Closed = *latest
		result.Open = open
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.DeleteByUser(ctx, userID)
	return &result, nil
}

// ListTrips returns trips newest first. Without bounds only trips holding at
// least one item are returned.
func (s *Service) ListTrips(ctx context.Context, userID string, filter Filter) (History, error) {
	if filter.Start.IsZero() && filter.End.IsZero() {
		filter.OnlyNonEmpty = true
	}
	return s.history(ctx, userID, filter)
}

// History returns closed trips inside a bounded range together with the
// total spent.
func (s *Service) History(ctx context.Context, userID string, filter Filter) (History, error) {
	if filter.Start.IsZero() || filter.End.IsZero() {
		return History{}, ErrRangeRequired
	}
	filter.ClosedOnly = true
	return s.history(ctx, userID, filter)
}

func (s *Service) history(ctx context.Context, userID string, filter Filter) (History, error) {
	key := rangeKey(filter)
	if filter.OnlyNonEmpty {
		key += "_nonempty"
	}
	if filter.ClosedOnly {
		key += "_closed"
	}
	if s.cacheTTL > 0 {
		if cached, ok := s.cache.Get(ctx, userID, key); ok {
			return cached, nil
		}
	}

	found, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return History{}, err
	}
	if found == nil {
		found = []Trip{}
	}

	result := History{
		Trips:      found,
		TotalSpent: HistoryTotal(found),
	}
	if s.cacheTTL > 0 {
		s.cache.Set(ctx, userID, key, result, s.cacheTTL)
	}
	return result, nil
}

// HistoryTotal sums the stored total_amount of each trip.
func HistoryTotal(found []Trip) float64 {
	total := 0.0
	for _, trip := range found {
		total += trip.TotalAmount
	}
	return items.RoundCents(total)
}

func (s *Service) newTrip(userID string, collection items.Collection, listID *string, tripDate *time.Time) Trip {
	now := s.now().UTC()
	date := now
	if tripDate != nil && !tripDate.IsZero() {
		date = tripDate.UTC()
	}

	var list *string
	if listID != nil && *listID != "" {
		value := *listID
		list = &value
	}

	return Trip{
		ID:          uuid.NewString(),
		UserID:      userID,
		ListID:      list,
		Items:       collection,
		TotalAmount: items.RoundCents(items.Total(collection)),
		TripDate:    date,
	}
}
