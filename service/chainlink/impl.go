package chainlink

import (
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/usdoracle/goapi/base/abi"
	"github.com/usdoracle/goapi/base/ctx"
	"github.com/usdoracle/goapi/base/log"
	"github.com/usdoracle/goapi/domain"
	"github.com/usdoracle/goapi/domain/keys"
	"github.com/usdoracle/goapi/service/cache"
	"github.com/usdoracle/goapi/service/cache/provider/primitive"
	"github.com/usdoracle/goapi/service/chain"
)

type impl struct {
	chainClient chain.Client
	cache       cache.Service
}

func New(chainClient chain.Client) Chainlink {
	return &impl{
		chainClient: chainClient,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Hour,
			Pfx:   keys.PfxChainlink,
			Cache: primitive.NewPrimitive(keys.PfxChainlink, 32),
		}),
	}
}

func (im *impl) GetLatestAnswer(c ctx.Ctx, chainId domain.ChainId, address domain.Address) (*big.Int, error) {
	var res big.Int

	key := keys.RedisKey(strconv.Itoa(int(chainId)), string(address), "latest")

	if err := im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		if res, err := im.getLatestAnswer(c, chainId, address, nil); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"address": address,
			}).Error("getLatestAnswer failed")
			return nil, err
		} else {
			return res, nil
		}
	}); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("cache.GetByFunc failed")
		return nil, err
	}

	return &res, nil
}

func (im *impl) GetLatestAnswerAt(c ctx.Ctx, chainId domain.ChainId, address domain.Address, blk *big.Int) (*big.Int, error) {
	var res big.Int

	key := keys.RedisKey(strconv.Itoa(int(chainId)), string(address), blk.String())

	if err := im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		if res, err := im.getLatestAnswer(c, chainId, address, blk); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"address": address,
				"blk":     blk,
			}).Error("getLatestAnswerAt failed")
			return nil, err
		} else {
			return res, nil
		}
	}); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
			"blk":     blk,
		}).Error("cache.GetByFunc failed")
		return nil, err
	}

	return &res, nil
}

// GetDecimals returns the feed's own decimal scale. Aggregator decimals never
// change for a deployed feed, so cached values stay valid for the cache ttl.
func (im *impl) GetDecimals(c ctx.Ctx, chainId domain.ChainId, address domain.Address) (uint8, error) {
	var res big.Int

	key := keys.RedisKey(strconv.Itoa(int(chainId)), string(address), "decimals")

	if err := im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		if res, err := im.getDecimals(c, chainId, address); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"address": address,
			}).Error("getDecimals failed")
			return nil, err
		} else {
			return res, nil
		}
	}); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("cache.GetByFunc failed")
		return 0, err
	}

	return uint8(res.Uint64()), nil
}

func (im *impl) getLatestAnswer(c ctx.Ctx, chainId domain.ChainId, address domain.Address, blk *big.Int) (*big.Int, error) {
	feedAddr := common.HexToAddress(string(address))

	res, err := im.chainClient.Call(c, int32(chainId), feedAddr, blk, abi.ChainlinkFeedABI, "latestAnswer")
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("chainClient.Call failed")
		return nil, err
	}

	return res[0].(*big.Int), nil
}

func (im *impl) getDecimals(c ctx.Ctx, chainId domain.ChainId, address domain.Address) (*big.Int, error) {
	feedAddr := common.HexToAddress(string(address))

	res, err := im.chainClient.Call(c, int32(chainId), feedAddr, nil, abi.ChainlinkFeedABI, "decimals")
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("chainClient.Call failed")
		return nil, err
	}

	return new(big.Int).SetUint64(uint64(res[0].(uint8))), nil
}
