package draft

import (
	"github.com/inkbill/inkbill/internal/draft/service"
	"go.uber.org/fx"
)

var Module = fx.Module("draft.service",
	fx.Provide(service.NewService),
	fx.Invoke(service.AutoMigrate),
)
