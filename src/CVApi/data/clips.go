package data

import (
	"github.com/clipvault/clipvault/src/CVApi/pagination"
	"github.com/clipvault/clipvault/src/CVApi/types"
	"gorm.io/gorm"
)

// Clip sort keys accepted by ListClips.
const (
	SortByCreated = "created_at"
	SortByTitle   = "title"
)

// ListClips returns one page of a guild's clips plus whether another page
// exists. Soft-deleted clips are excluded. The window must already be clamped
// by the caller.
func ListClips(db *gorm.DB, guildID string, w pagination.Window, sort string, desc bool) ([]types.Clip, bool, error) {
	order := sort
	if order != SortByCreated && order != SortByTitle {
		order = SortByCreated
	}
	if desc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	var clips []types.Clip
	err := db.Preload("Message").
		Where("guild_id = ?", guildID).
		Order(order).
		Offset(w.Offset).
		Limit(w.FetchLimit()).
		Find(&clips).Error
	if err != nil {
		return nil, false, err
	}

	keep, hasMore := w.Trim(len(clips))
	return clips[:keep], hasMore, nil
}

// GetClip fetches a clip with its source message. Unscoped lookups include
// soft-deleted rows for moderation paths.
func GetClip(db *gorm.DB, clipID uint64, includeDeleted bool) (*types.Clip, error) {
	q := db
	if includeDeleted {
		q = q.Unscoped()
	}
	var clip types.Clip
	if err := q.Preload("Message").First(&clip, clipID).Error; err != nil {
		return nil, err
	}
	return &clip, nil
}
