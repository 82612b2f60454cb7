package installer

import (
	"github.com/gridpoint/interconnect/internal/installer/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("installer",
	fx.Provide(repository.Provide),
)
