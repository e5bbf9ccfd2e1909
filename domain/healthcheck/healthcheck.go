package healthcheck

import (
	"github.com/usdoracle/goapi/base/ctx"
)

// HealthCheckRepo probes the service's backing stores
type HealthCheckRepo interface {
	PingDB(ctx.Ctx) error
}

type HealthCheckUsecase interface {
	Check(ctx.Ctx) error
}
