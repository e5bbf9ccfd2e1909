package coingecko

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	bCtx "github.com/usdoracle/goapi/base/ctx"
)

func Test_CoinGecko(t *testing.T) {
	req := require.New(t)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		req.Equal("usd", r.URL.Query().Get("vs_currency"))
		req.Equal("usd-coin", r.URL.Query().Get("ids"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"usd-coin","symbol":"usdc","name":"USD Coin","current_price":0.999839}]`))
	}))
	defer srv.Close()

	c := NewClient(&ClientCfg{
		HttpClient: http.Client{},
		Timeout:    10 * time.Second,
		BaseUrl:    srv.URL,
	})
	ctx := bCtx.Background()

	price, err := c.GetPrice(ctx, "usd-coin")
	req.NoError(err)
	req.Equal("0.999839", price.String())

	// second read is served from cache
	price, err = c.GetPrice(ctx, "usd-coin")
	req.NoError(err)
	req.Equal("0.999839", price.String())
	req.Equal(1, calls)
}

func Test_CoinGecko_MarketsLen(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(&ClientCfg{
		HttpClient: http.Client{},
		Timeout:    10 * time.Second,
		BaseUrl:    srv.URL,
	})

	_, err := c.GetPrice(bCtx.Background(), "no-such-token")
	req.ErrorIs(err, ErrMarketsLen)
}

func Test_CoinGecko_StatusCodeNotOk(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(&ClientCfg{
		HttpClient: http.Client{},
		Timeout:    10 * time.Second,
		BaseUrl:    srv.URL,
	})

	_, err := c.GetPrice(bCtx.Background(), "usd-coin")
	req.ErrorIs(err, ErrStatusCodeNotOk)
}
