package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/inkbill/inkbill/internal/config"
	"github.com/inkbill/inkbill/internal/draft"
	"github.com/inkbill/inkbill/internal/invoice"
	"github.com/inkbill/inkbill/internal/observability/metrics"
	"github.com/inkbill/inkbill/internal/seed"
	"github.com/inkbill/inkbill/internal/server"
	"github.com/inkbill/inkbill/pkg/db"
	"github.com/inkbill/inkbill/pkg/log"
)

func main() {
	fx.New(
		config.Module,
		log.Module,
		metrics.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		draft.Module,
		invoice.Module,
		seed.Module,
		server.Module,
	).Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
