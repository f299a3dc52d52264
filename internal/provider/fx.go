package provider

import (
	"github.com/fennecpets/fennec/internal/provider/service"
	"go.uber.org/fx"
)

var Module = fx.Module("provider.service",
	fx.Provide(service.NewService),
)
