// Package exponential implements exact fixed-point USD conversions.
// Values are integers carrying UsdDecimals implied decimal places, the usual
// on-chain representation for fractional USD amounts.
package exponential

import (
	"errors"
	"math/big"
)

// UsdDecimals is the implied decimal scale of every value produced here.
const UsdDecimals = 18

// maxDecimals bounds token/feed decimal metadata. 10^78 exceeds 2^256, so
// anything above 77 can never describe a uint256-ranged quantity.
const maxDecimals = 77

var (
	ErrNegativeValue      = errors.New("negative value")
	ErrDecimalsOutOfRange = errors.New("decimals out of range")
	ErrValueOverflow      = errors.New("value overflow")
)

var (
	big10      = big.NewInt(10)
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// UsdValueOfTokens converts amountTokens of a token with tokenDecimals into
// a USD value scaled to UsdDecimals, given a feed's raw answer reported at
// feedDecimals precision:
//
//	value = amountTokens * rawAnswer * 10^(UsdDecimals - feedDecimals - tokenDecimals)
//
// The two inputs are multiplied before any rescaling, so the only rounding
// is the final floor division when the combined decimals exceed UsdDecimals.
// Results wider than 256 bits are rejected instead of being returned.
func UsdValueOfTokens(amountTokens, rawAnswer *big.Int, tokenDecimals, feedDecimals int32) (*big.Int, error) {
	if amountTokens.Sign() < 0 || rawAnswer.Sign() < 0 {
		return nil, ErrNegativeValue
	}
	if tokenDecimals < 0 || feedDecimals < 0 || tokenDecimals > maxDecimals || feedDecimals > maxDecimals {
		return nil, ErrDecimalsOutOfRange
	}

	v := new(big.Int).Mul(amountTokens, rawAnswer)
	if v.Cmp(maxUint256) > 0 {
		return nil, ErrValueOverflow
	}

	shift := int64(UsdDecimals) - int64(feedDecimals) - int64(tokenDecimals)
	if shift > 0 {
		v.Mul(v, pow10(shift))
		if v.Cmp(maxUint256) > 0 {
			return nil, ErrValueOverflow
		}
	} else if shift < 0 {
		v.Quo(v, pow10(-shift))
	}
	return v, nil
}

// Pow10 returns 10^n for small non-negative n.
func Pow10(n int32) (*big.Int, error) {
	if n < 0 || n > maxDecimals {
		return nil, ErrDecimalsOutOfRange
	}
	return pow10(int64(n)), nil
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big10, big.NewInt(n), nil)
}
