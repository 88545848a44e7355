// Package server exposes the HTTP surface: assets, renditions, snapshot
// rollover, schedule inspection and document generation.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/propworks/rendition/internal/asset"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	"github.com/propworks/rendition/internal/calculation"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	"github.com/propworks/rendition/internal/config"
	"github.com/propworks/rendition/internal/docgen"
	"github.com/propworks/rendition/internal/form"
	"github.com/propworks/rendition/internal/observability"
	obslogger "github.com/propworks/rendition/internal/observability/logger"
	obsmetrics "github.com/propworks/rendition/internal/observability/metrics"
	"github.com/propworks/rendition/internal/rendition"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
	"github.com/propworks/rendition/internal/schedule"
	scheduledomain "github.com/propworks/rendition/internal/schedule/domain"
	"github.com/propworks/rendition/internal/snapshot"
	snapshotdomain "github.com/propworks/rendition/internal/snapshot/domain"
)

var Module = fx.Module("http.server",
	asset.Module,
	schedule.Module,
	snapshot.Module,
	calculation.Module,
	rendition.Module,
	form.Module,
	docgen.Module,
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug: obsCfg.Debug(),
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *snowflake.Node
	assetRepo    assetdomain.Repository
	scheduleTbl  scheduledomain.Table
	calculator   calcdomain.Calculator
	snapshotSvc  snapshotdomain.Service
	renditionSvc renditiondomain.Service
	docgenSvc    *docgen.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	AssetRepo    assetdomain.Repository
	ScheduleTbl  scheduledomain.Table
	Calculator   calcdomain.Calculator
	SnapshotSvc  snapshotdomain.Service
	RenditionSvc renditiondomain.Service
	DocgenSvc    *docgen.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		assetRepo:    p.AssetRepo,
		scheduleTbl:  p.ScheduleTbl,
		calculator:   p.Calculator,
		snapshotSvc:  p.SnapshotSvc,
		renditionSvc: p.RenditionSvc,
		docgenSvc:    p.DocgenSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Assets --------
	api.GET("/locations/:locationId/assets", s.ListAssets)
	api.POST("/assets", s.CreateAsset)
	api.GET("/assets/:id", s.GetAssetByID)
	api.PATCH("/assets/:id", s.UpdateAsset)
	api.DELETE("/assets/:id", s.DeleteAsset)

	// -------- Schedules --------
	api.GET("/schedules/:jurisdiction", s.ListScheduleEntries)

	// -------- Snapshots --------
	api.POST("/snapshots/rollforward", s.RollForward)
	api.GET("/locations/:locationId/snapshots/:taxYear", s.ListSnapshots)

	// -------- Renditions --------
	api.POST("/renditions", s.CreateRendition)
	api.GET("/renditions/:id", s.GetRenditionByID)
	api.POST("/renditions/:id/calculate", s.RecalculateRendition)
	api.POST("/renditions/:id/overrides", s.ApplyOverrides)
	api.DELETE("/renditions/:id/overrides", s.ClearOverrides)
	api.PUT("/renditions/:id/exemption-flags", s.SetExemptionFlags)
	api.POST("/renditions/:id/file", s.FileRendition)

	// -------- Documents --------
	api.GET("/renditions/:id/document", s.GetRenditionDocument)
	api.GET("/renditions/:id/asset-report", s.GetRenditionAssetReport)
	api.POST("/documents/batch", s.GenerateDocumentBatch)
}
