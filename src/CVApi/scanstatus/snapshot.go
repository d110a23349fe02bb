package scanstatus

import (
	"github.com/clipvault/clipvault/src/CVApi/types"
	"gorm.io/gorm"
)

// LoadSnapshot reads the current scan status of every channel in a guild.
func LoadSnapshot(db *gorm.DB, guildID string) ([]types.ScanStatus, error) {
	var statuses []types.ScanStatus
	err := db.Where("guild_id = ?", guildID).
		Order("channel_id ASC").
		Find(&statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}
