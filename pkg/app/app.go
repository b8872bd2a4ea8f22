// Package app is the composition root: it boots the store and the payment
// processor from config, builds the HTTP kernel around the registered routes
// and exposes the CLI.
//
//	func main() {
//	    app.New().
//	        Routes(routes.RegisterAPI).
//	        Run()
//	}
//
// Commands:
//
//	serve        start the HTTP server (default)
//	route:list   print the route table
//	seed         run every registered seeder against the configured store
//
// With DB_DRIVER=memory the seeders run at boot instead.
package app

import (
	"context"
	"os"
	"sync"

	"github.com/hasan75/tourism-htt-server/pkg/docstore"
	"github.com/hasan75/tourism-htt-server/pkg/middleware"
	"github.com/hasan75/tourism-htt-server/pkg/payment"
	"github.com/hasan75/tourism-htt-server/pkg/router"
)

// Deps are the long-lived handles route callbacks wire into controllers.
type Deps struct {
	Store    docstore.Store
	Payments payment.Processor
}

// RouteFunc registers routes against the booted dependencies.
type RouteFunc func(r *router.Router, deps Deps)

// SeederFunc inserts fixture data through the store.
type SeederFunc func(ctx context.Context, store docstore.Store) error

type namedSeeder struct {
	name string
	fn   SeederFunc
}

var (
	seedMu        sync.Mutex
	globalSeeders []namedSeeder
)

// RegisterSeeder registers a seeder run by the seed command. Call it from an
// init() in a seeder package and blank-import that package from main.
func RegisterSeeder(name string, fn SeederFunc) {
	seedMu.Lock()
	defer seedMu.Unlock()
	globalSeeders = append(globalSeeders, namedSeeder{name: name, fn: fn})
}

// Application holds the route callbacks and, once booted, the dependencies
// they are wired to.
type Application struct {
	routeFns []RouteFunc
	seeders  []namedSeeder

	booted  bool
	deps    Deps
	limiter middleware.Limiter
	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

func New() *Application {
	return &Application{}
}

// Routes adds a route-registration callback. Callbacks run in order.
func (a *Application) Routes(fn RouteFunc) *Application {
	a.routeFns = append(a.routeFns, fn)
	return a
}

// Seeder adds a seeder that runs after the globally registered ones.
func (a *Application) Seeder(name string, fn SeederFunc) *Application {
	a.seeders = append(a.seeders, namedSeeder{name: name, fn: fn})
	return a
}

// WithDeps marks the application booted with the given dependencies. Boot
// becomes a no-op; tests use it to serve from an in-memory store.
func (a *Application) WithDeps(deps Deps) *Application {
	a.deps = deps
	a.booted = true
	return a
}

// Deps returns the dependencies the application is wired to.
func (a *Application) Deps() Deps { return a.deps }

// Run executes the CLI against os.Args and exits non-zero on failure.
func (a *Application) Run() {
	if err := a.Command().Execute(); err != nil {
		os.Exit(1)
	}
}
