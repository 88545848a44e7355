package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	formdomain "github.com/propworks/rendition/internal/form/domain"
)

type documentBatchRequest struct {
	RenditionIDs []string `json:"renditionIds" binding:"required"`
}

type documentBatchResponse struct {
	Summary   formdomain.BatchSummary `json:"summary"`
	Documents []documentMeta          `json:"documents"`
}

type documentMeta struct {
	DisplayName string                  `json:"displayName"`
	SizeBytes   int                     `json:"sizeBytes"`
	FieldWrites []formdomain.FieldWrite `json:"fieldWrites,omitempty"`
}

func (s *Server) GetRenditionDocument(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	doc, err := s.docgenSvc.GenerateOne(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	serveDocument(c, doc)
}

func (s *Server) GetRenditionAssetReport(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	doc, err := s.docgenSvc.GenerateSupporting(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	serveDocument(c, doc)
}

// GenerateDocumentBatch runs a batch and returns the summary plus per-item
// document metadata. The rendered bytes are not inlined; each document is
// retrieved individually.
func (s *Server) GenerateDocumentBatch(c *gin.Context) {
	var req documentBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.RenditionIDs) == 0 {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ids := make([]snowflake.ID, 0, len(req.RenditionIDs))
	for _, raw := range req.RenditionIDs {
		id, err := parseID(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		ids = append(ids, id)
	}

	summary, docs, err := s.docgenSvc.GenerateBatch(c.Request.Context(), ids)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	metas := make([]documentMeta, 0, len(docs))
	for _, doc := range docs {
		metas = append(metas, documentMeta{
			DisplayName: doc.DisplayName,
			SizeBytes:   len(doc.Bytes),
			FieldWrites: doc.FieldWrites,
		})
	}
	c.JSON(http.StatusOK, documentBatchResponse{Summary: summary, Documents: metas})
}

func serveDocument(c *gin.Context, doc formdomain.Document) {
	c.Header("Content-Disposition", `attachment; filename="`+doc.DisplayName+`"`)
	c.Data(http.StatusOK, "application/pdf", doc.Bytes)
}
