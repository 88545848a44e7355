package server

import (
	"net/http"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type rollForwardRequest struct {
	FirmID      string   `json:"firmId" binding:"required"`
	LocationIDs []string `json:"locationIds" binding:"required"`
	TaxYear     int      `json:"taxYear" binding:"required"`
}

func (s *Server) RollForward(c *gin.Context) {
	var req rollForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	firmID, err := parseID(req.FirmID)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	locationIDs := make([]snowflake.ID, 0, len(req.LocationIDs))
	for _, raw := range req.LocationIDs {
		id, err := parseID(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		locationIDs = append(locationIDs, id)
	}

	run, err := s.snapshotSvc.RollForward(c.Request.Context(), firmID, locationIDs, req.TaxYear)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rollover": run})
}

func (s *Server) ListSnapshots(c *gin.Context) {
	locationID, err := parseID(c.Param("locationId"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	taxYear, err := strconv.Atoi(c.Param("taxYear"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	snapshots, err := s.snapshotSvc.ListForYear(c.Request.Context(), locationID, taxYear)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}
