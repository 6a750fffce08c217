package trips

import (
	"time"

	"pocketcart/internal/domain/items"
)

type Trip struct {
	ID          string           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string           `gorm:"type:uuid;index;not null" json:"user_id"`
	ListID      *string          `gorm:"type:uuid;column:list_id" json:"list_id"`
	Items       items.Collection `gorm:"type:jsonb;serializer:json;not null" json:"items"`
	TotalAmount float64          `gorm:"type:numeric(12,2);not null;default:0;column:total_amount" json:"total_amount"`
	TripDate    time.Time        `gorm:"not null;index;column:trip_date" json:"trip_date"`
	ClosedAt    *time.Time       `gorm:"column:closed_at" json:"closed_at"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Trip) TableName() string {
	return "shopping_trips"
}

func (t Trip) Closed() bool {
	return t.ClosedAt != nil
}

type CreateTripInput struct {
	UserID   string
	Items    items.Collection
	ListID   *string
	TripDate *time.Time
}

type UpdateTripInput struct {
	ID       string
	UserID   string
	Items    items.Collection
	ListID   *string
	TripDate *time.Time
}

// Filter narrows trip listings. Both bounds are inclusive; a zero bound is
// open.
type Filter struct {
	Start        time.Time
	End          time.Time
	OnlyNonEmpty bool
	ClosedOnly   bool
}

type History struct {
	Trips      []Trip  `json:"trips"`
	TotalSpent float64 `json:"total_spent"`
}

type CheckoutResult struct {
	Closed Trip `json:"closed"`
	Open   Trip `json:"open"`
}
