package coingecko

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	bCtx "github.com/usdoracle/goapi/base/ctx"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrMarketsLen      = errors.New("len(markets) != 1")
)

// Client resolves spot prices from the coingecko markets api. Used as the
// fallback quote source for tokens without an onchain aggregator.
type Client interface {
	GetPrice(bCtx.Ctx, string) (decimal.Decimal, error)
}

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	// BaseUrl overrides the production api endpoint, empty uses the default
	BaseUrl string
}

type Markets []Market

type Market struct {
	Id           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	CurrentPrice float64 `json:"current_price"`
}
