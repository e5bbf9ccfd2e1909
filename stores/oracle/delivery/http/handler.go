package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usdoracle/goapi/base/ctx"
	"github.com/usdoracle/goapi/base/delivery"
	"github.com/usdoracle/goapi/domain"
)

type handler struct {
	oracle domain.OracleUsecase
}

func New(e *echo.Echo, oracle domain.OracleUsecase) {
	h := &handler{
		oracle: oracle,
	}

	g := e.Group("/oracle")
	g.GET("/:chainId/:token/value", h.getUsdValue)
	g.GET("/:chainId/:token/price", h.getUsdPrice)
}

func (h *handler) getUsdValue(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ChainId domain.ChainId `param:"chainId" validate:"required"`
		Token   domain.Address `param:"token" validate:"required,address"`
		Amount  string         `query:"amount" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := domain.ToBigInt(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	value, err := h.oracle.UsdValueOfTokens(ctx, p.ChainId, p.Token.ToLower(), amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, value.String())
}

func (h *handler) getUsdPrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ChainId domain.ChainId `param:"chainId" validate:"required"`
		Token   domain.Address `param:"token" validate:"required,address"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	price, err := h.oracle.TokenUsdPrice(ctx, p.ChainId, p.Token.ToLower())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, price)
}
