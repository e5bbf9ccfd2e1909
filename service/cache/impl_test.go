package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/usdoracle/goapi/base/ctx"
	"github.com/usdoracle/goapi/service/cache/provider/primitive"
)

var mockCtx = ctx.Background()

type answer struct {
	Value string `json:"value"`
}

type testsuite struct {
	suite.Suite
	subject Service
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.subject = New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "test_cache",
		Cache: primitive.NewPrimitive("test_cache", 1),
	})
}

func (t *testsuite) TestGetSet() {
	key := "feed:1:usdc"

	var res answer
	t.Equal(ErrNotFound, t.subject.Get(mockCtx, key, &res))

	t.NoError(t.subject.Set(mockCtx, key, &answer{Value: "1000000"}))
	t.NoError(t.subject.Get(mockCtx, key, &res))
	t.Equal("1000000", res.Value)
}

func (t *testsuite) TestGetByFunc() {
	key := "feed:1:wbtc"
	calls := 0
	getter := func() (interface{}, error) {
		calls++
		return &answer{Value: "22104000000"}, nil
	}

	var res answer
	t.NoError(t.subject.GetByFunc(mockCtx, key, &res, getter))
	t.Equal("22104000000", res.Value)
	t.Equal(1, calls)

	// second read is served from cache
	res = answer{}
	t.NoError(t.subject.GetByFunc(mockCtx, key, &res, getter))
	t.Equal("22104000000", res.Value)
	t.Equal(1, calls)
}

func (t *testsuite) TestDel() {
	key := "feed:1:weth"

	t.NoError(t.subject.Set(mockCtx, key, &answer{Value: "1548000000"}))
	t.NoError(t.subject.Del(mockCtx, key))

	var res answer
	t.Equal(ErrNotFound, t.subject.Get(mockCtx, key, &res))
}
