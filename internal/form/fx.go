package form

import (
	"go.uber.org/fx"
)

var Module = fx.Module("form.resolver",
	fx.Provide(NewResolver),
)
