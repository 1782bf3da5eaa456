package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the owning entity of issued tokens. The middleware never creates
// or deletes users; it only reads them by identifier.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName maps User to the users table.
func (User) TableName() string { return "users" }

// Token is one persisted access/refresh token pair. A user may hold several
// rows at once (multi-session); rows are deleted on revocation and updated
// in place on rotation.
type Token struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID      uint      `gorm:"index;not null" json:"ownerId"`
	AccessToken  string    `gorm:"index;not null" json:"accessToken"`
	RefreshToken string    `gorm:"index;not null" json:"refreshToken"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName maps Token to the tokens table.
func (Token) TableName() string { return "tokens" }

// BeforeCreate generates a UUID if not already set.
func (t *Token) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
