package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func respondWithError(c *gin.Context, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(logMsg)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": userMsg})
}
