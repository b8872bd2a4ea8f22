package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hasan75/tourism-htt-server/config"
	"github.com/hasan75/tourism-htt-server/pkg/cache"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
	"github.com/hasan75/tourism-htt-server/pkg/logger"
	"github.com/hasan75/tourism-htt-server/pkg/middleware"
	"github.com/hasan75/tourism-htt-server/pkg/payment"
)

const logsCollection = "logs"

// Boot connects the store, picks the payment processor and, when configured,
// the Redis-backed rate limiter and the Mongo log sink.
func (a *Application) Boot(ctx context.Context) error {
	if a.booted {
		return nil
	}
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	store, err := a.bootStore(ctx)
	if err != nil {
		return err
	}
	a.deps.Store = docstore.WithMetrics(store)

	a.deps.Payments, err = bootPayments()
	if err != nil {
		_ = a.Shutdown(ctx)
		return err
	}

	if config.StoreDriver() == "memory" {
		if err := a.RunSeeders(ctx, io.Discard); err != nil {
			_ = a.Shutdown(ctx)
			return err
		}
	}

	if err := a.bootLimiter(ctx); err != nil {
		_ = a.Shutdown(ctx)
		return err
	}

	a.booted = true
	return nil
}

func (a *Application) bootStore(ctx context.Context) (docstore.Store, error) {
	if config.StoreDriver() == "memory" {
		logger.Warn("using in-memory store; data is lost on exit")
		return docstore.NewMemory(), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	m, err := docstore.ConnectMongo(connectCtx, config.MongoURI(), config.DBName())
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closer{name: "store", fn: m.Close})
	logger.Info("document store connected", "db", config.DBName())

	if config.LogToMongo() {
		sink := logger.NewMongoHandler(m.Database().Collection(logsCollection), slog.LevelInfo)
		logger.Attach(sink)
		// Registered after the store so it is flushed before the client goes.
		a.closers = append(a.closers, closer{name: "log sink", fn: func(context.Context) error {
			logger.Detach()
			sink.Close()
			return nil
		}})
	}
	return m, nil
}

func bootPayments() (payment.Processor, error) {
	currency := config.PaymentCurrency()
	if config.PaymentMock() {
		return &payment.Mock{Currency: currency}, nil
	}
	key := config.StripeSecretKey()
	if key == "" {
		if config.IsProduction() {
			return nil, errors.New("payments: STRIPE_SECRET_KEY is required in production (set PAYMENT_MOCK=true to mock)")
		}
		logger.Warn("STRIPE_SECRET_KEY not set; payment intents are mocked")
		return &payment.Mock{Currency: currency}, nil
	}
	return payment.NewStripe(key, currency), nil
}

func (a *Application) bootLimiter(ctx context.Context) error {
	if addr := config.RedisAddr(); addr != "" {
		rdb, err := cache.Connect(ctx, addr, config.RedisPassword())
		if err != nil {
			return err
		}
		a.limiter = middleware.NewRedisLimiter(rdb, config.RateLimit(), time.Minute)
		a.closers = append(a.closers, closer{name: "redis", fn: func(context.Context) error { return rdb.Close() }})
		return nil
	}

	mem := middleware.NewMemoryLimiter(config.RateLimit(), time.Minute)
	a.limiter = mem
	a.closers = append(a.closers, closer{name: "rate limiter", fn: func(context.Context) error {
		mem.Stop()
		return nil
	}})
	return nil
}

// Shutdown releases everything Boot acquired, newest first.
func (a *Application) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", c.name, err))
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
