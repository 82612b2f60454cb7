package application

import (
	"github.com/gridpoint/interconnect/internal/application/repository"
	"github.com/gridpoint/interconnect/internal/application/service"
	"go.uber.org/fx"
)

var Module = fx.Module("application.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
