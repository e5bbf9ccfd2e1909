package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/usdoracle/goapi/base/ctx"
	"github.com/usdoracle/goapi/base/metrics"
	"github.com/usdoracle/goapi/domain/keys"
)

// retTTLNoKey is the return value of TTL when the key does not exist
const retTTLNoKey = -2

type redImpl struct {
	name  string
	met   metrics.Service
	pools *Pools
}

// Pools represents different pool types
type Pools struct {
	Src *redis.Pool
}

// New redis pool
func New(name string, met metrics.Service, pools *Pools) Service {
	return &redImpl{
		name:  name,
		met:   met,
		pools: pools,
	}
}

func (r *redImpl) getConn() (redis.Conn, error) {
	defer r.met.BumpTime("getconn.time", "cluster", r.name).End()

	pool := r.pools.Src
	if pool == nil {
		return nil, ErrPoolGone
	}

	conn := pool.Get()
	if err := conn.Err(); err != nil {
		r.met.BumpSum("getConn.err", 1, "cluster", r.name, "reason", err.Error())
		return nil, err
	}

	return conn, nil
}

func (r *redImpl) connDo(context ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}

	reply, err := conn.Do(commandName, args...)

	// Closing conn explicitly asap improves redigo's performance, because the
	// longer a connection is held the more connections the pool must keep
	// around and getConn time might burst.
	if cerr := conn.Close(); cerr != nil {
		r.met.BumpSum("conn.Close.err", 1, "cluster", r.name)
	}
	return reply, err
}

func (r *redImpl) Get(context ctx.Ctx, key string) ([]byte, error) {
	tags := []string{
		"func", "get",
		"cluster", r.name,
		"prefix", keys.GetPrefix(key),
	}
	defer r.met.BumpTime("time", tags...).End()

	val, err := redis.Bytes(r.connDo(context, "GET", key))
	if err != nil {
		if err == redis.ErrNil {
			return nil, ErrNotFound
		}
		r.met.BumpSum("get.err", 1, tags...)
		return nil, err
	}
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)
	return val, nil
}

func (r *redImpl) Set(context ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	tags := []string{
		"func", "set",
		"cluster", r.name,
		"prefix", keys.GetPrefix(key),
	}
	defer r.met.BumpTime("time", tags...).End()

	var err error
	if ttl > 0 {
		_, err = r.connDo(context, "SET", key, value, "EX", int(ttl.Seconds()))
	} else {
		_, err = r.connDo(context, "SET", key, value)
	}
	if err != nil {
		r.met.BumpSum("set.err", 1, tags...)
		return err
	}
	r.met.BumpHistogram("bytes", float64(len(value)), tags...)
	return nil
}

func (r *redImpl) Del(context ctx.Ctx, key string) (int64, error) {
	tags := []string{
		"func", "del",
		"cluster", r.name,
		"prefix", keys.GetPrefix(key),
	}
	defer r.met.BumpTime("time", tags...).End()

	n, err := redis.Int64(r.connDo(context, "DEL", key))
	if err != nil {
		r.met.BumpSum("del.err", 1, tags...)
		return 0, err
	}
	return n, nil
}

func (r *redImpl) TTL(context ctx.Ctx, key string) (int64, error) {
	tags := []string{
		"func", "ttl",
		"cluster", r.name,
		"prefix", keys.GetPrefix(key),
	}
	defer r.met.BumpTime("time", tags...).End()

	ttl, err := redis.Int64(r.connDo(context, "TTL", key))
	if err != nil {
		r.met.BumpSum("ttl.err", 1, tags...)
		return 0, err
	}
	if ttl == retTTLNoKey {
		return 0, ErrNotFound
	}
	return ttl, nil
}
