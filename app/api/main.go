package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/usdoracle/goapi/base/ctx"
	"github.com/usdoracle/goapi/base/database/mongoclient"
	"github.com/usdoracle/goapi/base/database/redisclient"
	"github.com/usdoracle/goapi/base/log"
	"github.com/usdoracle/goapi/base/metrics"
	bValidator "github.com/usdoracle/goapi/base/validator"
	mmiddleware "github.com/usdoracle/goapi/middleware"
	"github.com/usdoracle/goapi/service/chain"
	chainlink_service "github.com/usdoracle/goapi/service/chainlink"
	"github.com/usdoracle/goapi/service/coingecko"
	"github.com/usdoracle/goapi/service/query"
	"github.com/usdoracle/goapi/service/redis"
	hc_delivery "github.com/usdoracle/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/usdoracle/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/usdoracle/goapi/stores/healthcheck/usecase"
	oracle_delivery "github.com/usdoracle/goapi/stores/oracle/delivery/http"
	oracle_usecase "github.com/usdoracle/goapi/stores/oracle/usecase"
	pricefeed_repository "github.com/usdoracle/goapi/stores/pricefeed/repository"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	archiveRpcs := make(map[int32]string)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcUrl := networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		rpcs[chainId] = rpcUrl
		archiveRpcUrl := networks.GetString(fmt.Sprintf("%s.archiveRpcUrl", k))
		archiveRpcs[chainId] = archiveRpcUrl
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:        rpcs,
		ArchiveRpcUrls: archiveRpcs,
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}
	chainlinkService := chainlink_service.New(chainService)
	httpTimeout := viper.GetDuration("http.timeout")
	coinGecko := coingecko.NewClient(&coingecko.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    httpTimeout,
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	priceFeedRepo := pricefeed_repository.NewPriceFeedRepo(q)

	hcUsecase := hc_usecase.New(hcRepo)
	oracleUsecase := oracle_usecase.NewOracleUsecase(&oracle_usecase.OracleCfg{
		FeedRepo:  priceFeedRepo,
		Chainlink: chainlinkService,
		CoinGecko: coinGecko,
	})

	hc_delivery.New(e, hcUsecase)
	oracle_delivery.New(e, oracleUsecase)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
