package models

import "time"

// SocialAccountSchemaVersion is stamped onto every persisted connection.
const SocialAccountSchemaVersion = 1

// SocialAccount records a (mock) platform connection made from the dashboard.
// ConnectionToken is the signed token minted at the end of the handshake; it
// never leaves the server.
type SocialAccount struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	Platform        string     `gorm:"uniqueIndex;not null" json:"platform"`
	Username        string     `json:"username"`
	AvatarURL       string     `json:"avatar_url,omitempty"`
	IsConnected     bool       `gorm:"default:false" json:"is_connected"`
	ConnectionToken string     `gorm:"type:text" json:"-"`
	LastSync        *time.Time `json:"last_sync,omitempty"`
	SchemaVersion   int        `gorm:"default:1" json:"schema_version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
