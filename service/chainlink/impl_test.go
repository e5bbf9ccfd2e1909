package chainlink

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/usdoracle/goapi/base/abi"
	bCtx "github.com/usdoracle/goapi/base/ctx"
	"github.com/usdoracle/goapi/domain"
	"github.com/usdoracle/goapi/service/chain/mocks"
)

type chainlinkTestSuite struct {
	suite.Suite

	chainClient *mocks.Client
	im          Chainlink
}

func TestChainlinkTestSuite(t *testing.T) {
	suite.Run(t, new(chainlinkTestSuite))
}

func (s *chainlinkTestSuite) SetupTest() {
	s.chainClient = &mocks.Client{}
	s.im = New(s.chainClient)
}

func (s *chainlinkTestSuite) TestGetLatestAnswer() {
	c := bCtx.Background()
	chainId := domain.ChainId(1)
	feed := domain.Address("0x8fffffd4afb6115b954bd326cbe7b4ba576818f6")

	s.chainClient.
		On("Call", mock.Anything, int32(1), common.HexToAddress(string(feed)), (*big.Int)(nil), abi.ChainlinkFeedABI, "latestAnswer").
		Return([]interface{}{big.NewInt(100002108)}, nil).
		Once()

	answer, err := s.im.GetLatestAnswer(c, chainId, feed)
	s.Nil(err)
	s.Equal(big.NewInt(100002108), answer)

	// served from cache, the client is not called again
	answer, err = s.im.GetLatestAnswer(c, chainId, feed)
	s.Nil(err)
	s.Equal(big.NewInt(100002108), answer)

	s.chainClient.AssertExpectations(s.T())
}

func (s *chainlinkTestSuite) TestGetLatestAnswerAt() {
	c := bCtx.Background()
	chainId := domain.ChainId(1)
	feed := domain.Address("0x8fffffd4afb6115b954bd326cbe7b4ba576818f6")
	blk := big.NewInt(15000000)

	s.chainClient.
		On("Call", mock.Anything, int32(1), common.HexToAddress(string(feed)), blk, abi.ChainlinkFeedABI, "latestAnswer").
		Return([]interface{}{big.NewInt(99998544)}, nil).
		Once()

	answer, err := s.im.GetLatestAnswerAt(c, chainId, feed, blk)
	s.Nil(err)
	s.Equal(big.NewInt(99998544), answer)

	s.chainClient.AssertExpectations(s.T())
}

func (s *chainlinkTestSuite) TestGetDecimals() {
	c := bCtx.Background()
	chainId := domain.ChainId(1)
	feed := domain.Address("0x8fffffd4afb6115b954bd326cbe7b4ba576818f6")

	s.chainClient.
		On("Call", mock.Anything, int32(1), common.HexToAddress(string(feed)), (*big.Int)(nil), abi.ChainlinkFeedABI, "decimals").
		Return([]interface{}{uint8(8)}, nil).
		Once()

	decimals, err := s.im.GetDecimals(c, chainId, feed)
	s.Nil(err)
	s.Equal(uint8(8), decimals)

	decimals, err = s.im.GetDecimals(c, chainId, feed)
	s.Nil(err)
	s.Equal(uint8(8), decimals)

	s.chainClient.AssertExpectations(s.T())
}

func (s *chainlinkTestSuite) TestGetLatestAnswerError() {
	c := bCtx.Background()
	chainId := domain.ChainId(1)
	feed := domain.Address("0x8fffffd4afb6115b954bd326cbe7b4ba576818f6")

	s.chainClient.
		On("Call", mock.Anything, int32(1), common.HexToAddress(string(feed)), (*big.Int)(nil), abi.ChainlinkFeedABI, "latestAnswer").
		Return(nil, domain.ErrInternalServerError).
		Once()

	_, err := s.im.GetLatestAnswer(c, chainId, feed)
	s.ErrorIs(err, domain.ErrInternalServerError)

	s.chainClient.AssertExpectations(s.T())
}
