package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Video lifecycle statuses.
const (
	VideoStatusGenerating = "Generating"
	VideoStatusReady      = "Ready"
	VideoStatusPosted     = "Posted"
	VideoStatusFailed     = "Failed"
)

// Where a video came from.
const (
	VideoSourceAI     = "AI"
	VideoSourceManual = "Manual"
)

// VideoSchemaVersion is stamped onto every persisted video record.
const VideoSchemaVersion = 1

// Scene is one narrated, illustrated beat within a video. ImageURL is filled
// during bundle assembly; AudioURL is filled lazily on first playback and
// cached back onto the record.
type Scene struct {
	Text        string `json:"text"`
	ImagePrompt string `json:"image_prompt"`
	ImageURL    string `json:"image_url,omitempty"`
	AudioURL    string `json:"audio_url,omitempty"`
}

// SceneList stores the ordered scenes as a JSON column.
type SceneList []Scene

func (s SceneList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *SceneList) Scan(value interface{}) error {
	if value == nil {
		*s = SceneList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return errors.New("unsupported scene list column type")
}

// StringList stores a slice of strings (target platforms) as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported string list column type")
}

// Video is one produced artifact, either assembled by the AI pipeline or
// uploaded manually. Manual videos carry a direct VideoURL and no scenes;
// AI videos carry scenes and no VideoURL.
type Video struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	SeriesID        string     `gorm:"index" json:"series_id,omitempty"`
	Title           string     `gorm:"size:255" json:"title"`
	Script          string     `gorm:"type:text" json:"script,omitempty"`
	Scenes          SceneList  `gorm:"type:json" json:"scenes"`
	ThumbnailURL    string     `gorm:"type:text" json:"thumbnail_url"`
	VideoURL        string     `gorm:"type:text" json:"video_url,omitempty"`
	Status          string     `gorm:"default:Generating" json:"status"`
	ScheduledAt     time.Time  `json:"scheduled_at"`
	Platforms       StringList `gorm:"type:json" json:"platforms"`
	VoiceID         string     `json:"voice_id,omitempty"`
	DurationSeconds int        `json:"duration_seconds,omitempty"`
	Source          string     `gorm:"default:AI" json:"source"`
	SchemaVersion   int        `gorm:"default:1" json:"schema_version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) IsManual() bool {
	return v.Source == VideoSourceManual
}

// ValidateShape enforces the source invariant: manual videos have a direct
// file reference and no scenes, AI videos the inverse.
func (v *Video) ValidateShape() error {
	if v.IsManual() {
		if len(v.Scenes) != 0 {
			return errors.New("manual video must not carry scenes")
		}
		if v.VideoURL == "" {
			return errors.New("manual video requires a video file reference")
		}
		return nil
	}
	if v.VideoURL != "" {
		return errors.New("generated video must not carry a direct file reference")
	}
	return nil
}
