package user

import "time"

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	PasswordHash string    `gorm:"type:text;not null;column:password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Session is stored by the SHA-256 of its token; the raw token only ever
// leaves the server once, in the login response.
type Session struct {
	TokenHash string    `gorm:"type:text;primaryKey;column:token_hash"`
	UserID    string    `gorm:"type:uuid;index;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Session) TableName() string {
	return "sessions"
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      User
}
