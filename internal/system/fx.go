package system

import (
	"github.com/gridpoint/interconnect/internal/system/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("system",
	fx.Provide(repository.Provide),
)
