package snapshot

import (
	"github.com/propworks/rendition/internal/snapshot/service"
	"go.uber.org/fx"
)

var Module = fx.Module("snapshot.service",
	fx.Provide(service.NewService),
)
