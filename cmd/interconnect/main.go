package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gridpoint/interconnect/internal/config"
	"github.com/gridpoint/interconnect/internal/migration"
	"github.com/gridpoint/interconnect/internal/observability"
	"github.com/gridpoint/interconnect/internal/seed"
	"github.com/gridpoint/interconnect/internal/server"
	"github.com/gridpoint/interconnect/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
		seed.Module,
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
