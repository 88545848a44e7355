package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	assetdomain "github.com/propworks/rendition/internal/asset/domain"
)

type assetRequest struct {
	LocationID      string  `json:"locationId" binding:"required"`
	Description     string  `json:"description" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	OriginalCost    string  `json:"originalCost" binding:"required"`
	AcquisitionDate string  `json:"acquisitionDate" binding:"required"`
	DisposalDate    *string `json:"disposalDate"`
	Quantity        int     `json:"quantity"`
	Leased          bool    `json:"leased"`
	LessorName      *string `json:"lessorName"`
	Notes           string  `json:"notes"`
}

type assetUpdateRequest struct {
	Description  *string `json:"description"`
	OriginalCost *string `json:"originalCost"`
	DisposalDate *string `json:"disposalDate"`
	Quantity     *int    `json:"quantity"`
	Leased       *bool   `json:"leased"`
	LessorName   *string `json:"lessorName"`
	Notes        *string `json:"notes"`
}

func (s *Server) ListAssets(c *gin.Context) {
	locationID, err := parseID(c.Param("locationId"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	assets, err := s.assetRepo.ListByLocation(c.Request.Context(), locationID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

func (s *Server) CreateAsset(c *gin.Context) {
	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	locationID, err := parseID(req.LocationID)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	cost, err := decimal.NewFromString(req.OriginalCost)
	if err != nil {
		AbortWithError(c, assetdomain.ErrInvalidCost)
		return
	}
	acquired, err := time.Parse("2006-01-02", req.AcquisitionDate)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	disposed, err := parseOptionalDate(req.DisposalDate)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	asset := &assetdomain.Asset{
		ID:              s.genID.Generate(),
		LocationID:      locationID,
		Description:     req.Description,
		Category:        assetdomain.Category(req.Category),
		OriginalCost:    cost,
		AcquisitionDate: acquired,
		DisposalDate:    disposed,
		Quantity:        quantity,
		Leased:          req.Leased,
		LessorName:      req.LessorName,
		Notes:           req.Notes,
	}
	if err := asset.Validate(); err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.assetRepo.Create(c.Request.Context(), asset); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

func (s *Server) GetAssetByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	asset, err := s.assetRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (s *Server) UpdateAsset(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var req assetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	asset, err := s.assetRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if req.Description != nil {
		asset.Description = *req.Description
	}
	if req.OriginalCost != nil {
		cost, err := decimal.NewFromString(*req.OriginalCost)
		if err != nil {
			AbortWithError(c, assetdomain.ErrInvalidCost)
			return
		}
		asset.OriginalCost = cost
	}
	if req.DisposalDate != nil {
		disposed, err := parseOptionalDate(req.DisposalDate)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		asset.DisposalDate = disposed
	}
	if req.Quantity != nil {
		asset.Quantity = *req.Quantity
	}
	if req.Leased != nil {
		asset.Leased = *req.Leased
	}
	if req.LessorName != nil {
		asset.LessorName = req.LessorName
	}
	if req.Notes != nil {
		asset.Notes = *req.Notes
	}

	if err := asset.Validate(); err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.assetRepo.Update(c.Request.Context(), asset); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (s *Server) DeleteAsset(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.assetRepo.SoftDelete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(raw string) (snowflake.ID, error) {
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, ErrInvalidRequest
	}
	return snowflake.ID(parsed), nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
