package chainlink

import (
	"math/big"

	"github.com/usdoracle/goapi/base/ctx"
	"github.com/usdoracle/goapi/domain"
)

// Chainlink reads aggregator feeds. Answers are the feed's raw integers,
// scaled by the feed's own decimals.
type Chainlink interface {
	GetLatestAnswer(c ctx.Ctx, chainId domain.ChainId, feedAddress domain.Address) (*big.Int, error)
	GetLatestAnswerAt(c ctx.Ctx, chainId domain.ChainId, feedAddress domain.Address, blk *big.Int) (*big.Int, error)
	GetDecimals(c ctx.Ctx, chainId domain.ChainId, feedAddress domain.Address) (uint8, error)
}
