package repository

import (
	bCtx "github.com/usdoracle/goapi/base/ctx"
	"github.com/usdoracle/goapi/base/database/mongoclient"
	"github.com/usdoracle/goapi/base/log"
	"github.com/usdoracle/goapi/domain"
	"github.com/usdoracle/goapi/service/query"
)

type priceFeedMongoRepo struct {
	q query.Mongo
}

func NewPriceFeedRepo(q query.Mongo) domain.PriceFeedRepo {
	return &priceFeedMongoRepo{
		q: q,
	}
}

func (r *priceFeedMongoRepo) FindOne(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddress domain.Address) (*domain.PriceFeed, error) {
	feed := &domain.PriceFeed{}
	if qry, err := mongoclient.MakeBsonM(&domain.PriceFeed{ChainId: chainId, Address: tokenAddress}); err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	} else if err := r.q.FindOne(ctx, domain.TablePriceFeeds, qry, feed); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return feed, nil
}

func (r *priceFeedMongoRepo) Create(ctx bCtx.Ctx, feed *domain.PriceFeed) error {
	if err := r.q.Insert(ctx, domain.TablePriceFeeds, feed); err != nil {
		ctx.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *priceFeedMongoRepo) Upsert(ctx bCtx.Ctx, feed *domain.PriceFeed) error {
	selector, err := mongoclient.MakeBsonM(feed.ToId())
	if err != nil {
		ctx.WithField("err", err).Error("failed to make bson.M")
		return err
	}
	if err := r.q.Upsert(ctx, domain.TablePriceFeeds, selector, feed); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  feed.ToId(),
		}).Error("failed to update")
		return err
	}
	return nil
}
