package webserver

import (
	"html"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/clipvault/clipvault/src/CVApi/data"
	"github.com/clipvault/clipvault/src/CVApi/errs"
	"github.com/clipvault/clipvault/src/CVApi/pagination"
	"github.com/clipvault/clipvault/src/CVApi/permissions"
)

const maxTitleLen = 100

type Clips struct {
	db        *gorm.DB
	resolver  *permissions.Resolver
	sanitizer *bluemonday.Policy
}

func NewClips(db *gorm.DB) Clips {
	return Clips{
		db:        db,
		resolver:  permissions.NewResolver(db),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (h Clips) List(c *gin.Context) {
	guildID := c.Param("id")

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	w := pagination.Window{Offset: offset, Limit: limit}.Clamp()

	sort := c.DefaultQuery("sort", data.SortByCreated)
	desc := c.DefaultQuery("dir", "desc") != "asc"

	clips, hasMore, err := data.ListClips(h.db, guildID, w, sort, desc)
	if err != nil {
		fail(c, errs.Store(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clips":    clips,
		"has_more": hasMore,
	})
}

func (h Clips) UpdateTitle(c *gin.Context) {
	clipID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, errs.Validation("invalid clip id"))
		return
	}

	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	title := h.sanitizer.Sanitize(req.Title)
	title = html.UnescapeString(title)
	if !utf8.ValidString(title) {
		fail(c, errs.Validation("invalid characters in title"))
		return
	}
	if n := utf8.RuneCountInString(title); n < 1 || n > maxTitleLen {
		fail(c, errs.Validation("title must be between 1 and %d characters", maxTitleLen))
		return
	}

	res, err := h.resolver.Resolve(clipID, c.GetString("uid"),
		permissions.LevelClipOwner|permissions.LevelGuildOwner|permissions.LevelSystemAdmin, false)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.db.Model(res.Clip).Update("title", title).Error; err != nil {
		fail(c, errs.Store(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": res.Clip.ID, "title": title})
}

func (h Clips) Delete(c *gin.Context) {
	clipID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, errs.Validation("invalid clip id"))
		return
	}

	res, err := h.resolver.Resolve(clipID, c.GetString("uid"),
		permissions.LevelGuildOwner|permissions.LevelSystemAdmin, false)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.db.Delete(res.Clip).Error; err != nil {
		fail(c, errs.Store(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": res.Clip.ID})
}
