package redis

import (
	"errors"
	"time"

	"github.com/usdoracle/goapi/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis key not found")

	// ErrPoolGone is returned when no usable pool is available
	ErrPoolGone = errors.New("redis pool unavailable")
)

// Service is the metered command surface the caches and probes rely on
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(context ctx.Ctx, key string) (int64, error)

	// TTL returns the key's remaining lifetime in seconds; -1 when the key
	// has no expire, ErrNotFound when the key is missing
	TTL(context ctx.Ctx, key string) (int64, error)
}
