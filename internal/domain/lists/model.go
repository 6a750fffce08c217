package lists

import (
	"time"

	"pocketcart/internal/domain/items"
)

type List struct {
	ID        string           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string           `gorm:"type:uuid;index;not null" json:"user_id"`
	Name      string           `gorm:"not null" json:"name"`
	Items     items.Collection `gorm:"type:jsonb;serializer:json;not null" json:"items"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (List) TableName() string {
	return "shopping_lists"
}

type CreateListInput struct {
	UserID string
	Name   string
	Items  items.Collection
}

type UpdateListInput struct {
	ID     string
	UserID string
	Name   *string
	Items  items.Collection
}
