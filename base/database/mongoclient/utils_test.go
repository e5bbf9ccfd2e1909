package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/usdoracle/goapi/domain"
)

func TestMakeBsonM(t *testing.T) {
	req := require.New(t)

	m, err := MakeBsonM(&domain.PriceFeed{
		ChainId: 1,
		Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
	})
	req.NoError(err)
	req.Equal(bson.M{
		"chainId": domain.ChainId(1),
		"address": domain.Address("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"),
	}, m)
}

func TestMakeBsonMSkipsZeroFields(t *testing.T) {
	req := require.New(t)

	m, err := MakeBsonM(&domain.PriceFeed{
		Symbol:        "WBTC",
		TokenDecimals: 8,
	})
	req.NoError(err)
	req.Equal(bson.M{
		"symbol":        "WBTC",
		"tokenDecimals": int32(8),
	}, m)
}

func TestMakeBsonMUnpacksPointer(t *testing.T) {
	req := require.New(t)

	addr := domain.Address("0x5f4ec3df9cbd43714fe2740f5e3616155c5b8419")
	s := struct {
		Address *domain.Address `bson:"address"`
	}{Address: &addr}

	m, err := MakeBsonM(&s)
	req.NoError(err)
	req.Equal(bson.M{"address": addr}, m)
}
