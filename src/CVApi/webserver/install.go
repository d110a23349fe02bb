package webserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clipvault/clipvault/src/CVApi/errs"
	"github.com/clipvault/clipvault/src/CVApi/intents"
)

type Install struct {
	store    *intents.Store
	clientID string
}

func NewInstall(db *gorm.DB, clientID string) Install {
	return Install{store: intents.NewStore(db), clientID: clientID}
}

// Begin mints the one-time state token and hands back the bot-install URL.
// The state is the only thing correlating the eventual redirect back to this
// user, since the redirect's query parameters are tamperable.
func (h Install) Begin(c *gin.Context) {
	var req struct {
		GuildID string `json:"guildId" binding:"omitempty,numeric,max=64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	state := uuid.NewString()
	uid := c.GetString("uid")

	if err := h.store.Create(c, state, uid, req.GuildID, intents.DefaultTTL); err != nil {
		fail(c, err)
		return
	}

	installURL := fmt.Sprintf(
		"https://discord.com/oauth2/authorize?client_id=%s&scope=bot+applications.commands&state=%s",
		h.clientID, state,
	)
	if req.GuildID != "" {
		installURL += "&guild_id=" + req.GuildID
	}

	c.JSON(http.StatusOK, gin.H{"url": installURL, "state": state})
}

// Callback consumes the state token Discord echoes back. A token that is
// absent, already used or expired gets one uniform error so validity can't be
// probed.
func (h Install) Callback(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		fail(c, errs.Validation("missing state"))
		return
	}

	intent, err := h.store.Consume(c, state)
	if err != nil {
		fail(c, err)
		return
	}

	guildID := c.Query("guild_id")
	if guildID == "" {
		guildID = intent.GuildID
	}

	c.JSON(http.StatusOK, gin.H{
		"installed_by": intent.UserID,
		"guild_id":     guildID,
	})
}
