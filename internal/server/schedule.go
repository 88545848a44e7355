package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	scheduledomain "github.com/propworks/rendition/internal/schedule/domain"
)

func (s *Server) ListScheduleEntries(c *gin.Context) {
	jurisdiction := c.Param("jurisdiction")

	entries := s.scheduleTbl.Entries(jurisdiction)
	if len(entries) == 0 {
		AbortWithError(c, scheduledomain.ErrNoScheduleForJurisdiction)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
