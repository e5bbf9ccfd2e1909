package usecase

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/usdoracle/goapi/base/ctx"
	"github.com/usdoracle/goapi/base/exponential"
	"github.com/usdoracle/goapi/domain"
	"github.com/usdoracle/goapi/domain/mocks"
	chainlinkMocks "github.com/usdoracle/goapi/service/chainlink/mocks"
	coingeckoMocks "github.com/usdoracle/goapi/service/coingecko/mocks"
)

var (
	usdc = &domain.PriceFeed{
		Name:              "USD Coin",
		Symbol:            "USDC",
		ChainId:           1,
		Address:           "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
		AggregatorAddress: "0x8fffffd4afb6115b954bd326cbe7b4ba576818f6",
		TokenDecimals:     6,
		FeedDecimals:      6,
	}
	wbtc = &domain.PriceFeed{
		Name:              "Wrapped BTC",
		Symbol:            "WBTC",
		ChainId:           1,
		Address:           "0x2260fac5e5542a773aa44fbcfedf7c193bc2c599",
		AggregatorAddress: "0xf4030086522a5beea4988f8ca5b36dbc97bee88c",
		TokenDecimals:     8,
		FeedDecimals:      6,
	}
	weth = &domain.PriceFeed{
		Name:              "Wrapped Ether",
		Symbol:            "WETH",
		ChainId:           1,
		Address:           "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
		AggregatorAddress: "0x5f4ec3df9cbd43714fe2740f5e3616155c5b8419",
		TokenDecimals:     18,
		FeedDecimals:      6,
	}
	ape = &domain.PriceFeed{
		Name:          "ApeCoin",
		Symbol:        "APE",
		ChainId:       1,
		Address:       "0x4d224452801aced8b2f0aebe155379bb5d594381",
		TokenDecimals: 18,
		CoinGeckoId:   "apecoin",
	}
)

type oracleTestSuite struct {
	suite.Suite

	feedRepo  *mocks.PriceFeedRepo
	chainlink *chainlinkMocks.Chainlink
	coinGecko *coingeckoMocks.Client
	im        domain.OracleUsecase
}

func TestOracleTestSuite(t *testing.T) {
	suite.Run(t, new(oracleTestSuite))
}

func (s *oracleTestSuite) SetupTest() {
	s.feedRepo = &mocks.PriceFeedRepo{}
	s.chainlink = &chainlinkMocks.Chainlink{}
	s.coinGecko = &coingeckoMocks.Client{}
	s.im = NewOracleUsecase(&OracleCfg{
		FeedRepo:  s.feedRepo,
		Chainlink: s.chainlink,
		CoinGecko: s.coinGecko,
	})
}

func exp10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

func (s *oracleTestSuite) TestUsdValueOfTokens() {
	c := bCtx.Background()

	cases := []struct {
		name      string
		feed      *domain.PriceFeed
		rawAnswer *big.Int
		amount    *big.Int
		expected  *big.Int
	}{
		{
			name:      "one usdc at one dollar",
			feed:      usdc,
			rawAnswer: big.NewInt(1000000),
			amount:    exp10(6),
			expected:  exp10(18),
		},
		{
			name:      "one wbtc at 22104 dollars",
			feed:      wbtc,
			rawAnswer: big.NewInt(22104000000),
			amount:    exp10(8),
			expected:  new(big.Int).Mul(big.NewInt(22104), exp10(18)),
		},
		{
			name:      "one weth at 1548 dollars",
			feed:      weth,
			rawAnswer: big.NewInt(1548000000),
			amount:    exp10(18),
			expected:  new(big.Int).Mul(big.NewInt(1548), exp10(18)),
		},
		{
			name:      "half a weth",
			feed:      weth,
			rawAnswer: big.NewInt(1548000000),
			amount:    new(big.Int).Div(exp10(18), big.NewInt(2)),
			expected:  new(big.Int).Mul(big.NewInt(774), exp10(18)),
		},
	}

	for _, tc := range cases {
		s.SetupTest()

		s.feedRepo.On("FindOne", mock.Anything, tc.feed.ChainId, tc.feed.Address).Return(tc.feed, nil).Once()
		s.chainlink.On("GetLatestAnswer", mock.Anything, tc.feed.ChainId, tc.feed.AggregatorAddress).Return(tc.rawAnswer, nil)

		value, err := s.im.UsdValueOfTokens(c, tc.feed.ChainId, tc.feed.Address, tc.amount)
		s.Nil(err, tc.name)
		s.Equal(tc.expected, value, tc.name)
	}
}

func (s *oracleTestSuite) TestUsdValueOfTokensFeedCached() {
	c := bCtx.Background()

	s.feedRepo.On("FindOne", mock.Anything, usdc.ChainId, usdc.Address).Return(usdc, nil).Once()
	s.chainlink.On("GetLatestAnswer", mock.Anything, usdc.ChainId, usdc.AggregatorAddress).Return(big.NewInt(1000000), nil)

	_, err := s.im.UsdValueOfTokens(c, usdc.ChainId, usdc.Address, exp10(6))
	s.Nil(err)

	// registry entry is cached, the repo is not queried again
	_, err = s.im.UsdValueOfTokens(c, usdc.ChainId, usdc.Address, exp10(6))
	s.Nil(err)

	s.feedRepo.AssertExpectations(s.T())
}

func (s *oracleTestSuite) TestUsdValueOfTokensNoFeed() {
	c := bCtx.Background()
	token := domain.Address("0x0000000000000000000000000000000000000001")

	s.feedRepo.On("FindOne", mock.Anything, domain.ChainId(1), token).Return(nil, domain.ErrNotFound).Once()

	_, err := s.im.UsdValueOfTokens(c, 1, token, exp10(18))
	s.ErrorIs(err, domain.ErrNoPriceFeed)
}

func (s *oracleTestSuite) TestUsdValueOfTokensNegativeAnswer() {
	c := bCtx.Background()

	s.feedRepo.On("FindOne", mock.Anything, weth.ChainId, weth.Address).Return(weth, nil).Once()
	s.chainlink.On("GetLatestAnswer", mock.Anything, weth.ChainId, weth.AggregatorAddress).Return(big.NewInt(-1548000000), nil)

	_, err := s.im.UsdValueOfTokens(c, weth.ChainId, weth.Address, exp10(18))
	s.ErrorIs(err, exponential.ErrNegativeValue)
}

func (s *oracleTestSuite) TestUsdValueOfTokensDecimalsFromAggregator() {
	c := bCtx.Background()

	feed := &domain.PriceFeed{
		Name:              "Wrapped Ether",
		Symbol:            "WETH",
		ChainId:           1,
		Address:           "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
		AggregatorAddress: "0x5f4ec3df9cbd43714fe2740f5e3616155c5b8419",
		TokenDecimals:     18,
	}

	s.feedRepo.On("FindOne", mock.Anything, feed.ChainId, feed.Address).Return(feed, nil).Once()
	s.chainlink.On("GetLatestAnswer", mock.Anything, feed.ChainId, feed.AggregatorAddress).Return(big.NewInt(154800000000), nil)
	s.chainlink.On("GetDecimals", mock.Anything, feed.ChainId, feed.AggregatorAddress).Return(uint8(8), nil)

	value, err := s.im.UsdValueOfTokens(c, feed.ChainId, feed.Address, exp10(18))
	s.Nil(err)
	s.Equal(new(big.Int).Mul(big.NewInt(1548), exp10(18)), value)

	s.chainlink.AssertExpectations(s.T())
}

func (s *oracleTestSuite) TestTokenUsdPrice() {
	c := bCtx.Background()

	s.feedRepo.On("FindOne", mock.Anything, wbtc.ChainId, wbtc.Address).Return(wbtc, nil).Once()
	s.chainlink.On("GetLatestAnswer", mock.Anything, wbtc.ChainId, wbtc.AggregatorAddress).Return(big.NewInt(22104000000), nil)

	price, err := s.im.TokenUsdPrice(c, wbtc.ChainId, wbtc.Address)
	s.Nil(err)
	s.Equal("22104", price.String())
}

func (s *oracleTestSuite) TestTokenUsdPriceCoinGeckoFallback() {
	c := bCtx.Background()

	s.feedRepo.On("FindOne", mock.Anything, ape.ChainId, ape.Address).Return(ape, nil).Once()
	s.coinGecko.On("GetPrice", mock.Anything, "apecoin").Return(decimal.NewFromFloat(4.21), nil)

	price, err := s.im.TokenUsdPrice(c, ape.ChainId, ape.Address)
	s.Nil(err)
	s.Equal("4.21", price.String())

	s.chainlink.AssertNotCalled(s.T(), "GetLatestAnswer")
}

func (s *oracleTestSuite) TestTokenUsdPriceNoQuoteSource() {
	c := bCtx.Background()

	feed := &domain.PriceFeed{
		Symbol:        "XYZ",
		ChainId:       1,
		Address:       "0x0000000000000000000000000000000000000002",
		TokenDecimals: 18,
	}

	s.feedRepo.On("FindOne", mock.Anything, feed.ChainId, feed.Address).Return(feed, nil).Once()

	_, err := s.im.TokenUsdPrice(c, feed.ChainId, feed.Address)
	s.ErrorIs(err, domain.ErrNoPriceFeed)
}
