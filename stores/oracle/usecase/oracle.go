package usecase

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	bCtx "github.com/usdoracle/goapi/base/ctx"
	"github.com/usdoracle/goapi/base/exponential"
	"github.com/usdoracle/goapi/base/log"
	"github.com/usdoracle/goapi/domain"
	"github.com/usdoracle/goapi/service/chainlink"
	"github.com/usdoracle/goapi/service/coingecko"
)

type OracleCfg struct {
	FeedRepo  domain.PriceFeedRepo
	Chainlink chainlink.Chainlink
	CoinGecko coingecko.Client
}

type impl struct {
	feedRepo  domain.PriceFeedRepo
	chainlink chainlink.Chainlink
	coinGecko coingecko.Client

	// mutex protected members
	mutex     sync.Mutex
	feedCache map[string]*domain.PriceFeed
}

func NewOracleUsecase(cfg *OracleCfg) domain.OracleUsecase {
	return &impl{
		feedRepo:  cfg.FeedRepo,
		chainlink: cfg.Chainlink,
		coinGecko: cfg.CoinGecko,
		feedCache: make(map[string]*domain.PriceFeed),
	}
}

func (u *impl) getFeed(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address) (*domain.PriceFeed, error) {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	key := fmt.Sprintf("%d%s", chainId, token.ToLower())
	f, ok := u.feedCache[key]
	if ok {
		return f, nil
	}
	f, err := u.feedRepo.FindOne(ctx, chainId, token.ToLower())
	if err == domain.ErrNotFound {
		return nil, xerrors.Errorf("no feed registered for %d:%s: %w", chainId, token, domain.ErrNoPriceFeed)
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"chainId": chainId,
			"token":   token,
			"err":     err,
		}).Error("feedRepo.FindOne failed")
		return nil, err
	}
	u.feedCache[key] = f
	return f, nil
}

// feedDecimals prefers the stored decimal scale and falls back to querying
// the aggregator when the registry entry predates the decimals column.
func (u *impl) feedDecimals(ctx bCtx.Ctx, feed *domain.PriceFeed) (int32, error) {
	if feed.FeedDecimals > 0 {
		return feed.FeedDecimals, nil
	}
	decimals, err := u.chainlink.GetDecimals(ctx, feed.ChainId, feed.AggregatorAddress)
	if err != nil {
		ctx.WithFields(log.Fields{
			"chainId":    feed.ChainId,
			"aggregator": feed.AggregatorAddress,
			"err":        err,
		}).Error("chainlink.GetDecimals failed")
		return 0, err
	}
	return int32(decimals), nil
}

func (u *impl) UsdValueOfTokens(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address, amount *big.Int) (*big.Int, error) {
	feed, err := u.getFeed(ctx, chainId, token)
	if err != nil {
		ctx.WithFields(log.Fields{
			"chainId": chainId,
			"token":   token,
			"err":     err,
		}).Error("getFeed failed")
		return nil, err
	}
	if feed.AggregatorAddress.IsEmpty() {
		return nil, xerrors.Errorf("feed %s has no aggregator: %w", feed.Symbol, domain.ErrNoPriceFeed)
	}
	rawAnswer, err := u.chainlink.GetLatestAnswer(ctx, chainId, feed.AggregatorAddress)
	if err != nil {
		ctx.WithFields(log.Fields{
			"chainId":    chainId,
			"aggregator": feed.AggregatorAddress,
			"err":        err,
		}).Error("chainlink.GetLatestAnswer failed")
		return nil, err
	}
	feedDecimals, err := u.feedDecimals(ctx, feed)
	if err != nil {
		return nil, err
	}
	value, err := exponential.UsdValueOfTokens(amount, rawAnswer, feed.TokenDecimals, feedDecimals)
	if err != nil {
		ctx.WithFields(log.Fields{
			"chainId":   chainId,
			"token":     token,
			"amount":    amount,
			"rawAnswer": rawAnswer,
			"err":       err,
		}).Error("exponential.UsdValueOfTokens failed")
		return nil, err
	}
	return value, nil
}

func (u *impl) TokenUsdPrice(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address) (decimal.Decimal, error) {
	feed, err := u.getFeed(ctx, chainId, token)
	if err != nil {
		ctx.WithFields(log.Fields{
			"chainId": chainId,
			"token":   token,
			"err":     err,
		}).Error("getFeed failed")
		return decimal.Zero, err
	}
	if feed.AggregatorAddress.IsEmpty() {
		if feed.CoinGeckoId == "" {
			return decimal.Zero, xerrors.Errorf("feed %s has no quote source: %w", feed.Symbol, domain.ErrNoPriceFeed)
		}
		// no onchain aggregator, fall back to coingecko
		price, err := u.coinGecko.GetPrice(ctx, feed.CoinGeckoId)
		if err != nil {
			ctx.WithField("err", err).Error("coinGecko.GetPrice failed")
			return decimal.Zero, err
		}
		return price, nil
	}
	rawAnswer, err := u.chainlink.GetLatestAnswer(ctx, chainId, feed.AggregatorAddress)
	if err != nil {
		ctx.WithFields(log.Fields{
			"chainId":    chainId,
			"aggregator": feed.AggregatorAddress,
			"err":        err,
		}).Error("chainlink.GetLatestAnswer failed")
		return decimal.Zero, err
	}
	if rawAnswer.Sign() < 0 {
		return decimal.Zero, exponential.ErrNegativeValue
	}
	feedDecimals, err := u.feedDecimals(ctx, feed)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromBigInt(rawAnswer, -feedDecimals), nil
}
