package rendition

import (
	"github.com/propworks/rendition/internal/rendition/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rendition.service",
	fx.Provide(service.NewService),
)
