package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clipvault/clipvault/src/CVApi/errs"
	"github.com/clipvault/clipvault/src/CVApi/scanstatus"
)

type Scans struct {
	db *gorm.DB
}

func NewScans(db *gorm.DB) Scans {
	return Scans{db: db}
}

func (h Scans) List(c *gin.Context) {
	guildID := c.Param("id")

	statuses, err := scanstatus.LoadSnapshot(h.db, guildID)
	if err != nil {
		fail(c, errs.Store(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"scans": statuses})
}
