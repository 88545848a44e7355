package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	overridedomain "github.com/propworks/rendition/internal/override/domain"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
)

type createRenditionRequest struct {
	FirmID     string                    `json:"firmId" binding:"required"`
	LocationID string                    `json:"locationId" binding:"required"`
	TaxYear    int                       `json:"taxYear" binding:"required"`
	State      string                    `json:"state" binding:"required"`
	County     string                    `json:"county"`
	Owner      renditiondomain.OwnerInfo `json:"owner"`
}

type overrideEntry struct {
	Value         string `json:"value" binding:"required"`
	Justification string `json:"justification" binding:"required"`
	AppliedBy     string `json:"appliedBy" binding:"required"`
}

type applyOverridesRequest struct {
	Overrides map[string]overrideEntry `json:"overrides" binding:"required"`
}

type clearOverridesRequest struct {
	AssetIDs []string `json:"assetIds"`
}

type exemptionFlagsRequest struct {
	RelatedEntityAggregation bool `json:"relatedEntityAggregation"`
	ElectNotToFile           bool `json:"electNotToFile"`
}

type renditionResponse struct {
	Rendition *renditiondomain.Rendition `json:"rendition"`
	Effective any                        `json:"effective,omitempty"`
}

func (s *Server) CreateRendition(c *gin.Context) {
	var req createRenditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	firmID, err := parseID(req.FirmID)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	locationID, err := parseID(req.LocationID)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	rendition, err := s.renditionSvc.Create(c.Request.Context(), renditiondomain.CreateRequest{
		FirmID:     firmID,
		LocationID: locationID,
		TaxYear:    req.TaxYear,
		State:      req.State,
		County:     req.County,
		Owner:      req.Owner,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, renditionResponse{Rendition: rendition})
}

func (s *Server) GetRenditionByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	rendition, err := s.renditionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := renditionResponse{Rendition: rendition}
	if len(rendition.Calculation) > 0 {
		effective, err := s.renditionSvc.Effective(rendition)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		resp.Effective = effective
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) RecalculateRendition(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	rendition, err := s.renditionSvc.Recalculate(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	effective, err := s.renditionSvc.Effective(rendition)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, renditionResponse{Rendition: rendition, Effective: effective})
}

func (s *Server) ApplyOverrides(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var req applyOverridesRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Overrides) == 0 {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	entries := make(overridedomain.Map, len(req.Overrides))
	now := time.Now().UTC()
	for assetID, entry := range req.Overrides {
		value, err := decimal.NewFromString(entry.Value)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		entries[assetID] = overridedomain.Override{
			Value:         value,
			Justification: entry.Justification,
			AppliedBy:     entry.AppliedBy,
			AppliedAt:     now,
		}
	}

	rendition, err := s.renditionSvc.ApplyOverrides(c.Request.Context(), id, entries)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	effective, err := s.renditionSvc.Effective(rendition)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, renditionResponse{Rendition: rendition, Effective: effective})
}

func (s *Server) ClearOverrides(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var req clearOverridesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
	}

	rendition, err := s.renditionSvc.ClearOverrides(c.Request.Context(), id, req.AssetIDs)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, renditionResponse{Rendition: rendition})
}

func (s *Server) SetExemptionFlags(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var req exemptionFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	rendition, err := s.renditionSvc.SetExemptionFlags(c.Request.Context(), id, req.RelatedEntityAggregation, req.ElectNotToFile)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, renditionResponse{Rendition: rendition})
}

func (s *Server) FileRendition(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	rendition, err := s.renditionSvc.MarkFiled(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, renditionResponse{Rendition: rendition})
}
