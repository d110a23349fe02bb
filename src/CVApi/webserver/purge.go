package webserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/clipvault/clipvault/src/CVApi/errs"
	"github.com/clipvault/clipvault/src/CVApi/purge"
	"github.com/clipvault/clipvault/src/CVApi/types"
)

type Purge struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewPurge(db *gorm.DB, rdb *redis.Client) Purge {
	return Purge{db: db, rdb: rdb}
}

func (h Purge) Queue(c *gin.Context) {
	guildID := c.Param("id")
	channelID := c.Param("cid")

	var guild types.Guild
	if err := h.db.First(&guild, "id = ?", guildID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, errs.NotFound("guild"))
		} else {
			fail(c, errs.Store(err))
		}
		return
	}

	// Only the guild owner may purge a channel
	uid := c.GetString("uid")
	if guild.OwnerID != uid {
		fail(c, errs.ErrPermissionDenied)
		return
	}

	var channel types.Channel
	if err := h.db.First(&channel, "id = ? AND guild_id = ?", channelID, guildID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, errs.NotFound("channel"))
		} else {
			fail(c, errs.Store(err))
		}
		return
	}

	// Cooldowns are time-relative; check at admission, never from a cache
	if dec := purge.CanPurge(&channel); !dec.Allowed {
		fail(c, errs.CooldownError{Until: *dec.CooldownUntil})
		return
	}

	jobID, err := purge.Enqueue(c, h.rdb, guildID, channelID, uid)
	if err != nil {
		fail(c, errs.Store(err))
		return
	}

	log.Printf("Queued purge of channel %s in guild %s by %s (job %s)", channelID, guildID, uid, jobID)
	c.JSON(http.StatusAccepted, gin.H{"job_id": jobID})
}
