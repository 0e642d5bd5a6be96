package models

import (
	"time"
)

// Platform names as shown in the dashboard.
const (
	PlatformTikTok = "TikTok"
	PlatformShorts = "YouTube Shorts"
	PlatformReels  = "Instagram Reels"
	PlatformGitHub = "GitHub"
)

// Posting frequencies a series can be scheduled on.
const (
	FrequencyDaily    = "Daily"
	FrequencyWeekly   = "Weekly"
	FrequencyBiWeekly = "Bi-Weekly"
)

// SeriesSchemaVersion is stamped onto every persisted series record so a
// future shape change can migrate old rows instead of silently misreading them.
const SeriesSchemaVersion = 1

// Series is a user-defined content template driving repeated video generation.
type Series struct {
	ID              string `gorm:"primaryKey;size:36" json:"id"`
	Topic           string `gorm:"not null" json:"topic"`
	Description     string `gorm:"type:text" json:"description"`
	Tone            string `json:"tone"`
	Style           string `json:"style"`
	VoiceID         string `json:"voice_id"`
	DurationSeconds int    `gorm:"default:60" json:"duration_seconds"`
	Platform        string `json:"platform"`
	Frequency       string `gorm:"default:Daily" json:"frequency"`
	NicheID         string `json:"niche_id,omitempty"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`
	SchemaVersion   int    `gorm:"default:1" json:"schema_version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Video count (computed field, not persisted)
	VideoCount int `gorm:"-" json:"video_count"`
}

func (Series) TableName() string {
	return "series"
}
