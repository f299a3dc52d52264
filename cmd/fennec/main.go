package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fennecpets/fennec/internal/clock"
	"github.com/fennecpets/fennec/internal/config"
	"github.com/fennecpets/fennec/internal/earnings"
	"github.com/fennecpets/fennec/internal/migration"
	"github.com/fennecpets/fennec/internal/observability"
	"github.com/fennecpets/fennec/internal/provider"
	"github.com/fennecpets/fennec/internal/server"
	"github.com/fennecpets/fennec/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional domains
		provider.Module,
		earnings.Module,

		server.Module,
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
