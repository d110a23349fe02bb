package webserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clipvault/clipvault/src/CVApi/errs"
)

// fail writes the typed-error response. Cooldown denials carry the exact
// retry timestamp; intent failures stay deliberately uniform.
func fail(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)

	var cd errs.CooldownError
	if errors.As(err, &cd) {
		c.JSON(status, gin.H{"err": "purge cooldown active", "cooldown_until": cd.Until})
		return
	}

	if status == http.StatusServiceUnavailable {
		log.Printf("store error: %v", err)
		c.JSON(status, gin.H{"err": "service unavailable"})
		return
	}

	c.JSON(status, gin.H{"err": err.Error()})
}
