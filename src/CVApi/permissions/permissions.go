package permissions

import (
	"errors"

	"github.com/clipvault/clipvault/src/CVApi/data"
	"github.com/clipvault/clipvault/src/CVApi/errs"
	"github.com/clipvault/clipvault/src/CVApi/types"
	"gorm.io/gorm"
)

// Level is a set of access levels a caller will accept.
type Level uint8

const (
	LevelClipOwner Level = 1 << iota
	LevelGuildOwner
	LevelSystemAdmin
)

func (l Level) Has(other Level) bool { return l&other != 0 }

// Resolution is returned on grant so handlers don't refetch the clip or guild.
type Resolution struct {
	Clip          *types.Clip
	Guild         *types.Guild
	IsClipOwner   bool
	IsGuildOwner  bool
	IsSystemAdmin bool
}

type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve grants access to a clip if the user holds any of the requested
// levels. The admin role lookup is the expensive check, so it only runs when
// admin access is requested and no cheaper level already granted.
func (r *Resolver) Resolve(clipID uint64, userID string, levels Level, includeDeleted bool) (*Resolution, error) {
	clip, err := data.GetClip(r.db, clipID, includeDeleted)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("clip")
		}
		return nil, errs.Store(err)
	}

	q := r.db
	if includeDeleted {
		q = q.Unscoped()
	}
	var guild types.Guild
	if err := q.First(&guild, "id = ?", clip.GuildID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("guild")
		}
		return nil, errs.Store(err)
	}

	res := &Resolution{
		Clip:         clip,
		Guild:        &guild,
		IsClipOwner:  clip.Message.AuthorID == userID,
		IsGuildOwner: guild.OwnerID == userID,
	}

	granted := (levels.Has(LevelClipOwner) && res.IsClipOwner) ||
		(levels.Has(LevelGuildOwner) && res.IsGuildOwner)

	if levels.Has(LevelSystemAdmin) && !granted {
		var user types.User
		err := r.db.First(&user, "id = ?", userID).Error
		switch {
		case err == nil:
			res.IsSystemAdmin = user.Roles == "admin"
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no local row means no elevated role
		default:
			return nil, errs.Store(err)
		}
		granted = granted || res.IsSystemAdmin
	}

	if !granted {
		return nil, errs.ErrPermissionDenied
	}
	return res, nil
}
