package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hasan75/tourism-htt-server/config"
	"github.com/hasan75/tourism-htt-server/internal/server"
	"github.com/hasan75/tourism-htt-server/pkg/logger"
	"github.com/hasan75/tourism-htt-server/pkg/router"
)

// Command returns the CLI root. Running it without a sub-command serves.
func (a *Application) Command() *cobra.Command {
	root := &cobra.Command{
		Use:          "htt",
		Short:        "Hit the Trail marketplace API",
		SilenceUsage: true,
		RunE:         func(cmd *cobra.Command, _ []string) error { return a.serve(cmd.Context()) },
	}

	root.AddCommand(&cobra.Command{
		Use:     "serve",
		Aliases: []string{"start", "run"},
		Short:   "Start the HTTP server",
		RunE:    func(cmd *cobra.Command, _ []string) error { return a.serve(cmd.Context()) },
	})
	root.AddCommand(&cobra.Command{
		Use:     "route:list",
		Aliases: []string{"routes"},
		Short:   "List all registered routes",
		RunE:    func(cmd *cobra.Command, _ []string) error { return a.printRoutes(cmd) },
	})
	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Run every registered seeder against the configured store",
		RunE:  func(cmd *cobra.Command, _ []string) error { return a.seed(cmd) },
	})
	return root
}

func (a *Application) serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.Boot(ctx); err != nil {
		return err
	}
	defer func() {
		if err := a.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	return server.Start(ctx, a.Handler(), server.Options{
		Addr:            ":" + config.Port(),
		ShutdownTimeout: config.ShutdownTimeout(),
	})
}

// printRoutes lists the table without booting: the callbacks only need the
// handles at request time.
func (a *Application) printRoutes(cmd *cobra.Command) error {
	r := router.New()
	a.registerRoutes(r)

	out := cmd.OutOrStdout()
	routes := r.Routes()
	if len(routes) == 0 {
		fmt.Fprintln(out, "No routes registered.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range routes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}

// seed refuses the memory driver: serve already seeds a fresh in-memory
// store and nothing written here would outlive the process.
func (a *Application) seed(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if config.StoreDriver() == "memory" {
		return errors.New("seed: DB_DRIVER=memory is not persisted; serve seeds the in-memory store at boot")
	}
	if err := a.Boot(ctx); err != nil {
		return err
	}
	defer a.Shutdown(context.Background()) //nolint:errcheck

	return a.RunSeeders(ctx, cmd.OutOrStdout())
}

// RunSeeders runs the globally registered seeders, then the application's
// own, in registration order. It stops at the first failure.
func (a *Application) RunSeeders(ctx context.Context, out io.Writer) error {
	seedMu.Lock()
	current := append([]namedSeeder(nil), globalSeeders...)
	seedMu.Unlock()
	current = append(current, a.seeders...)

	if len(current) == 0 {
		fmt.Fprintln(out, "No seeders registered.")
		return nil
	}
	for _, s := range current {
		if err := s.fn(ctx, a.deps.Store); err != nil {
			return fmt.Errorf("seeder %q: %w", s.name, err)
		}
		fmt.Fprintf(out, "Seeded: %s\n", s.name)
		logger.Info("seeder done", "seeder", s.name)
	}
	return nil
}
