package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/usdoracle/goapi/base/ctx"
	"github.com/usdoracle/goapi/service/cache/provider"
	"github.com/usdoracle/goapi/service/redis"
	"github.com/usdoracle/goapi/service/redis/mocks"
)

type redisProviderTestSuite struct {
	suite.Suite

	redis *mocks.Service
	im    provider.Provider
}

func TestRedisProviderTestSuite(t *testing.T) {
	suite.Run(t, new(redisProviderTestSuite))
}

func (s *redisProviderTestSuite) SetupTest() {
	s.redis = &mocks.Service{}
	s.im = NewRedis(s.redis)
}

func (s *redisProviderTestSuite) TestGet() {
	c := bCtx.Background()

	s.redis.On("Get", mock.Anything, "key").Return([]byte("value"), nil)
	s.redis.On("TTL", mock.Anything, "key").Return(int64(30), nil)

	val, ttl, err := s.im.Get(c, "key")
	s.Nil(err)
	s.Equal([]byte("value"), val)
	s.Equal(30*time.Second, ttl)
}

func (s *redisProviderTestSuite) TestGetNotFound() {
	c := bCtx.Background()

	s.redis.On("Get", mock.Anything, "key").Return(nil, redis.ErrNotFound)

	_, _, err := s.im.Get(c, "key")
	s.Equal(provider.ErrNotFound, err)
}

func (s *redisProviderTestSuite) TestSet() {
	c := bCtx.Background()

	s.redis.On("Set", mock.Anything, "key", []byte("value"), time.Minute).Return(nil).Once()

	err := s.im.Set(c, "key", []byte("value"), time.Minute)
	s.Nil(err)

	s.redis.AssertExpectations(s.T())
}

func (s *redisProviderTestSuite) TestDel() {
	c := bCtx.Background()

	s.redis.On("Del", mock.Anything, "key").Return(int64(1), nil).Once()

	err := s.im.Del(c, "key")
	s.Nil(err)

	s.redis.AssertExpectations(s.T())
}
