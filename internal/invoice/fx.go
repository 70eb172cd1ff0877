package invoice

import (
	"go.uber.org/fx"

	"github.com/inkbill/inkbill/internal/invoice/render"
	"github.com/inkbill/inkbill/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(render.NewPDFRenderer),
	fx.Provide(service.NewService),
)
