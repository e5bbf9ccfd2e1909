package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/usdoracle/goapi/base/ctx"
)

type PriceFeedId struct {
	ChainId ChainId `bson:"chainId"`
	Address Address `bson:"address"`
}

// PriceFeed binds a token to the aggregator reporting its USD price.
// FeedDecimals is the scale of the aggregator's answers, TokenDecimals the
// scale of the token's own amounts; the two are independent.
type PriceFeed struct {
	Name              string  `bson:"name"`
	Symbol            string  `bson:"symbol"`
	FeedDecimals      int32   `bson:"feedDecimals"`
	TokenDecimals     int32   `bson:"tokenDecimals"`
	ChainId           ChainId `bson:"chainId"`
	Address           Address `bson:"address"`
	AggregatorAddress Address `bson:"aggregatorAddress"`
	IsMainnet         bool    `bson:"isMainnet"`
	CoinGeckoId       string  `bson:"coinGeckoId"`
}

func (f *PriceFeed) ToId() *PriceFeedId {
	return &PriceFeedId{
		ChainId: f.ChainId,
		Address: f.Address,
	}
}

type PriceFeedRepo interface {
	FindOne(ctx.Ctx, ChainId, Address) (*PriceFeed, error)
	Create(ctx.Ctx, *PriceFeed) error
	Upsert(ctx.Ctx, *PriceFeed) error
}

// OracleUsecase prices token amounts in USD.
type OracleUsecase interface {
	// UsdValueOfTokens converts a raw token amount into an 18-decimal
	// fixed-point USD value using the token's registered feed.
	UsdValueOfTokens(c ctx.Ctx, chain ChainId, token Address, amount *big.Int) (*big.Int, error)

	// TokenUsdPrice returns the token's spot USD price, falling back to
	// CoinGecko when the token has no on-chain feed.
	TokenUsdPrice(c ctx.Ctx, chain ChainId, token Address) (decimal.Decimal, error)
}
