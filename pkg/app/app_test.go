package app_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/hasan75/tourism-htt-server/config"
	"github.com/hasan75/tourism-htt-server/pkg/app"
	"github.com/hasan75/tourism-htt-server/pkg/ctx"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
	"github.com/hasan75/tourism-htt-server/pkg/payment"
	"github.com/hasan75/tourism-htt-server/pkg/reqid"
	"github.com/hasan75/tourism-htt-server/pkg/router"
	"github.com/hasan75/tourism-htt-server/pkg/testkit"
)

func pingRoutes(r *router.Router, deps app.Deps) {
	r.Get("/ping", "ping", ctx.Wrap(func(c *ctx.Context) {
		n, err := deps.Store.Count(c.Context(), "pings", bson.M{})
		if err != nil {
			c.Fail(err)
			return
		}
		c.OK(n)
	}))
	r.Get("/panic", "panic", func(http.ResponseWriter, *http.Request) { panic("boom") })
}

func TestBootWithMemoryDriver(t *testing.T) {
	config.Set("DB_DRIVER", "memory")
	config.Set("PAYMENT_MOCK", "true")
	t.Cleanup(func() {
		config.Set("DB_DRIVER", "mongo")
		config.Set("PAYMENT_MOCK", "false")
	})

	a := app.New().Routes(pingRoutes).Seeder("pings", func(ctx context.Context, s docstore.Store) error {
		_, err := s.InsertOne(ctx, "pings", bson.M{"n": 1})
		return err
	})
	require.NoError(t, a.Boot(context.Background()))
	t.Cleanup(func() { assert.NoError(t, a.Shutdown(context.Background())) })

	assert.IsType(t, &docstore.Instrumented{}, a.Deps().Store)
	assert.IsType(t, &payment.Mock{}, a.Deps().Payments)

	c := testkit.New(t, a.Handler())
	res := c.Get("/ping").AssertStatus(http.StatusOK).AssertJSON(`1`)
	assert.NotEmpty(t, res.Recorder.Header().Get(reqid.Header))
}

func TestBootRequiresStripeKeyInProduction(t *testing.T) {
	config.Set("APP_ENV", "production")
	config.Set("DB_DRIVER", "memory")
	config.Set("STRIPE_SECRET_KEY", "")
	t.Cleanup(func() {
		config.Set("APP_ENV", "local")
		config.Set("DB_DRIVER", "mongo")
		config.Set("PAYMENT_MOCK", "false")
	})

	config.Set("PAYMENT_MOCK", "false")
	err := app.New().Boot(context.Background())
	assert.ErrorContains(t, err, "STRIPE_SECRET_KEY is required in production")

	config.Set("PAYMENT_MOCK", "true")
	a := app.New()
	require.NoError(t, a.Boot(context.Background()))
	t.Cleanup(func() { assert.NoError(t, a.Shutdown(context.Background())) })
	assert.IsType(t, &payment.Mock{}, a.Deps().Payments)
}

func TestSeedCommandRejectsMemoryDriver(t *testing.T) {
	config.Set("DB_DRIVER", "memory")
	t.Cleanup(func() { config.Set("DB_DRIVER", "mongo") })

	cmd := app.New().Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"seed"})

	assert.ErrorContains(t, cmd.Execute(), "DB_DRIVER=memory")
}

func TestRunSeedersEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, app.New().WithDeps(app.Deps{Store: docstore.NewMemory()}).RunSeeders(context.Background(), &out))
	assert.Equal(t, "No seeders registered.\n", out.String())
}

func TestKernel(t *testing.T) {
	a := app.New().Routes(pingRoutes).WithDeps(app.Deps{Store: docstore.NewMemory()})
	c := testkit.New(t, a.Handler())

	c.Get("/ping").AssertStatus(http.StatusOK)
	c.Get("/panic").AssertStatus(http.StatusInternalServerError)
	c.Get("/missing").AssertStatus(http.StatusNotFound)
	c.Post("/ping", nil).AssertStatus(http.StatusMethodNotAllowed)

	metrics := c.Get("/metrics").AssertStatus(http.StatusOK).Body()
	assert.Contains(t, metrics, `htt_http_requests_total`)
	assert.Contains(t, metrics, `route="/ping"`)
}

func TestRouteListCommand(t *testing.T) {
	cmd := app.New().Routes(pingRoutes).Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"route:list"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "/ping")
	assert.Contains(t, out.String(), "panic")
}

func TestRunSeeders(t *testing.T) {
	store := docstore.NewMemory()
	var ran []string
	a := app.New().WithDeps(app.Deps{Store: store}).
		Seeder("first", func(ctx context.Context, s docstore.Store) error {
			ran = append(ran, "first")
			_, err := s.InsertOne(ctx, "pings", bson.M{"n": 1})
			return err
		}).
		Seeder("broken", func(context.Context, docstore.Store) error {
			ran = append(ran, "broken")
			return errors.New("nope")
		}).
		Seeder("never", func(context.Context, docstore.Store) error {
			ran = append(ran, "never")
			return nil
		})

	var out bytes.Buffer
	err := a.RunSeeders(context.Background(), &out)
	assert.ErrorContains(t, err, `seeder "broken"`)
	assert.Equal(t, []string{"first", "broken"}, ran)
	assert.Equal(t, "Seeded: first\n", out.String())

	n, err := store.Count(context.Background(), "pings", bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
