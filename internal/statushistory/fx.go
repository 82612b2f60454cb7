package statushistory

import (
	"github.com/gridpoint/interconnect/internal/statushistory/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("statushistory",
	fx.Provide(repository.Provide),
)
