package asset

import (
	"github.com/propworks/rendition/internal/asset/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("asset",
	fx.Provide(repository.NewRepository),
)
