package types

import (
	"time"

	"gorm.io/gorm"
)

// Users (Discord identities; roles managed by admin tooling)
type User struct {
	ID        string `gorm:"primaryKey;size:64"`
	Username  string `gorm:"size:128"`
	Avatar    string `gorm:"size:256"`
	Roles     string `gorm:"size:32;default:user"` // user, admin
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Guilds (synced from Discord by the bot)
type Guild struct {
	ID              string `gorm:"primaryKey;size:64"`
	Name            string `gorm:"size:128"`
	Icon            string `gorm:"size:256"`
	OwnerID         string `gorm:"size:64;index"`
	NotifyChannelID string `gorm:"size:64"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// Channels
type Channel struct {
	ID            string `gorm:"primaryKey;size:64"`
	GuildID       string `gorm:"size:64;index;not null"`
	Name          string `gorm:"size:128"`
	PurgeCooldown *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Source messages a clip points at
type Message struct {
	ID        string `gorm:"primaryKey;size:64"`
	GuildID   string `gorm:"size:64;index;not null"`
	ChannelID string `gorm:"size:64;index;not null"`
	AuthorID  string `gorm:"size:64;index;not null"`
	Content   string `gorm:"type:text"`
	Timestamp time.Time
}

// Clips; the effective owner is the source message's author
type Clip struct {
	ID        uint64 `gorm:"primaryKey"`
	MessageID string `gorm:"size:64;uniqueIndex;not null"`
	GuildID   string `gorm:"size:64;index;not null"`
	Title     string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Message Message `gorm:"foreignKey:MessageID;references:ID"`
}

// Scan lifecycle states written by the scanning worker
const (
	ScanPending    = "PENDING"
	ScanInProgress = "IN_PROGRESS"
	ScanSucceeded  = "SUCCEEDED"
	ScanFailed     = "FAILED"
	ScanCancelled  = "CANCELLED"
)

// Channel scan status; one live row per (guild, channel), mutated only by
// the scanning worker and read-only to the API
type ScanStatus struct {
	ID                   uint64  `gorm:"primaryKey"`
	GuildID              string  `gorm:"size:64;index:idx_scan_guild_channel;not null"`
	ChannelID            string  `gorm:"size:64;index:idx_scan_guild_channel;not null"`
	Status               string  `gorm:"size:16;not null"`
	MessageCount         uint64  `gorm:"default:0"`
	TotalMessagesScanned uint64  `gorm:"default:0"`
	ForwardMessageID     *string `gorm:"size:64"`
	BackwardMessageID    *string `gorm:"size:64"`
	ErrorMessage         string  `gorm:"size:1024"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

// One-time install correlation tokens (bot invite flow)
type InstallIntent struct {
	State     string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;not null"`
	GuildID   string    `gorm:"size:64"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null"`
	Value string `gorm:"size:256;not null"`
}
