package domain

import (
	"math/big"
	"strings"
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type BlockNumber uint64

type Table string

const (
	TablePriceFeeds Table = "pricefeeds"
)

// ToBigInt parses a base-10 integer string
func ToBigInt(num string) (*big.Int, error) {
	bn, ok := new(big.Int).SetString(num, 10)
	if !ok {
		return nil, ErrInvalidNumberFormat
	}
	return bn, nil
}
