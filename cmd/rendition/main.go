package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	"github.com/propworks/rendition/internal/config"
	"github.com/propworks/rendition/internal/observability"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
	scheduledomain "github.com/propworks/rendition/internal/schedule/domain"
	"github.com/propworks/rendition/internal/seed"
	"github.com/propworks/rendition/internal/server"
	snapshotdomain "github.com/propworks/rendition/internal/snapshot/domain"
	"github.com/propworks/rendition/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		server.Module,

		fx.Invoke(migrate),
		fx.Invoke(seedSchedules),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&assetdomain.Asset{},
		&scheduledomain.Entry{},
		&snapshotdomain.Snapshot{},
		&snapshotdomain.RolloverRun{},
		&renditiondomain.Rendition{},
	)
}

func seedSchedules(gormDB *gorm.DB, table scheduledomain.Table, log *zap.Logger) error {
	return seed.EnsureScheduleEntries(gormDB, table, log.Named("seed"))
}
