package models

import "time"

// CurseEvent is an append-only log entry, one per successful AddCurse.
type CurseEvent struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ParticipantID string    `gorm:"index;not null;type:varchar(36)" json:"participant_id"`
	Origin        string    `gorm:"type:varchar(128)" json:"origin"` // best-effort client address, not validated
	CreatedAt     time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}

// WeeklyCount is one row of the per-participant curse tally.
type WeeklyCount struct {
	ParticipantID string `json:"participant_id"`
	Count         int64  `json:"count"`
}
