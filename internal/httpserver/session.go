package httpserver

import (
	"github.com/gin-gonic/gin"
)

func issueSessionHandler(sessions SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Issue()
		respondOK(c, "", gin.H{"session": s})
	}
}

func statsHandler(stats StatsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		ov, err := stats.Overview(c.Request.Context())
		if err != nil {
			respondError(c, err, "failed to fetch admin stats")
			return
		}
		respondOK(c, "", gin.H{"stats": ov})
	}
}
