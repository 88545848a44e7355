package docgen

import (
	"go.uber.org/fx"
)

var Module = fx.Module("docgen.service",
	fx.Provide(NewService),
)
