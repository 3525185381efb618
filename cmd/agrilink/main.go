package main

import (
	"github.com/agrilinklabs/agrilink/internal/migration"
	"github.com/agrilinklabs/agrilink/internal/observability"
	"github.com/agrilinklabs/agrilink/internal/server"
	"github.com/agrilinklabs/agrilink/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		server.Module,
		migration.Module,
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
