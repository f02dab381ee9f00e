package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Participant is one person tracked by the jar.
// Balance always moves together with CurseCount, in the same transaction.
type Participant struct {
	ID   string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"index;not null" json:"slug"`

	CurseCount int             `gorm:"not null;default:0" json:"curse_count"`
	Balance    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"balance"`

	// Progression. Level is derived from XP and never written on its own.
	XP    int64 `gorm:"column:xp;not null;default:0" json:"xp"`
	Level int   `gorm:"not null;default:1" json:"level"`

	Avatar string `gorm:"type:varchar(16);not null" json:"avatar"`

	// Streak is maintained outside the engine; badges only read it.
	Streak          int    `gorm:"not null;default:0" json:"streak"`
	LastActivityDay string `gorm:"type:varchar(10)" json:"last_activity_day,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Avatars is the allow-list a participant may pick from.
var Avatars = []string{"😀", "😎", "🤠", "🥷", "🧙", "👽", "🤖", "🐱", "🦊", "🐼"}

const DefaultAvatar = "😀"

func IsAllowedAvatar(avatar string) bool {
	for _, a := range Avatars {
		if a == avatar {
			return true
		}
	}
	return false
}
