package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackgantt/internal/server"
	"github.com/matzehuels/stackgantt/pkg/pipeline"
	"github.com/matzehuels/stackgantt/pkg/source"
	"github.com/matzehuels/stackgantt/pkg/source/local"
	"github.com/matzehuels/stackgantt/pkg/source/mongo"
)

// storeFlags select where tasks are loaded from and saved to.
type storeFlags struct {
	mongoURI   string
	database   string
	collection string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", "", "store tasks in MongoDB at this URI")
	cmd.Flags().StringVar(&f.database, "mongo-db", mongo.DefaultDatabase, "MongoDB database")
	cmd.Flags().StringVar(&f.collection, "mongo-collection", mongo.DefaultCollection, "MongoDB collection")
}

// serveFlags holds the listener settings for the serve command.
type serveFlags struct {
	storeFlags
	addr     string
	readOnly bool
}

// serveCommand creates the serve command for the HTTP host.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		sf    serveFlags
		flags chartFlags
		cf    cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve [tasks file]",
		Short: "Serve a task set over HTTP",
		Long: `Serve a task set over HTTP.

Tasks come from the given file or, with --mongo-uri, from a MongoDB
collection. When both are given the file seeds the collection. Edits made
through the API are written back unless --read-only is set.

Endpoints:
  GET    /healthz
  GET    /tasks, /tasks/{id}
  PATCH  /tasks/{id}              change start, end or progress
  POST   /tasks/{id}/expander     collapse or expand a project
  POST   /tasks/{id}/select
  DELETE /tasks/{id}              returns a confirmation token
  DELETE /tasks/{id}?confirm=...  removes the task
  GET    /chart.svg, /chart.json  ?view=&locale=&rtl=`,
		Example: `  stackgantt serve tasks.yaml --addr :8080
  stackgantt serve --mongo-uri mongodb://localhost:27017 --redis-addr localhost:6379`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(c.Logger)
			if err != nil {
				return err
			}
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			if input == "" && sf.mongoURI == "" {
				return errors.New("need a tasks file or --mongo-uri")
			}
			return c.runServe(cmd.Context(), input, sf, opts, cf)
		},
	}

	cmd.Flags().StringVar(&sf.addr, "addr", ":8080", "listen address")
	sf.storeFlags.register(cmd)
	cmd.Flags().BoolVar(&sf.readOnly, "read-only", false, "keep edits in memory only")
	flags.register(cmd)
	flags.registerRender(cmd)
	cf.register(cmd)

	return cmd
}

// runServe opens the task store and serves until ctx is canceled.
func (c *CLI) runServe(ctx context.Context, input string, sf serveFlags, opts pipeline.Options, cf cacheFlags) error {
	logger := loggerFromContext(ctx)
	loc := opts.Location()

	store, closeStore, err := openStore(ctx, input, sf.storeFlags, loc)
	if err != nil {
		return err
	}
	defer closeStore()

	if sf.mongoURI != "" && input != "" {
		snap, err := local.New(input, loc).Load(ctx)
		if err != nil {
			return fmt.Errorf("load %s: %w", input, err)
		}
		if err := store.Save(ctx, snap); err != nil {
			return fmt.Errorf("seed %s: %w", store.Name(), err)
		}
		logger.Info("seeded store", "store", store.Name(), "tasks", snap.Len())
	}

	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	snap, err := runner.Load(ctx, store)
	if err != nil {
		return fmt.Errorf("load %s: %w", store.Name(), err)
	}

	cfg := server.Config{
		Options: opts,
		Runner:  runner,
		Logger:  logger,
	}
	if !sf.readOnly {
		cfg.Store = store
	}

	printSuccess("Serving %d tasks from %s", snap.Len(), store.Name())
	printDetail("http://%s", displayAddr(sf.addr))
	return server.New(snap, cfg).ListenAndServe(ctx, sf.addr)
}

// openStore returns the Mongo store when configured and the task file
// otherwise. The returned func releases the store.
func openStore(ctx context.Context, input string, sf storeFlags, loc *time.Location) (source.Store, func(), error) {
	if sf.mongoURI == "" {
		return local.New(input, loc), func() {}, nil
	}
	st, err := mongo.Connect(ctx, mongo.Options{
		URI:        sf.mongoURI,
		Database:   sf.database,
		Collection: sf.collection,
	})
	if err != nil {
		return nil, nil, err
	}
	return st, func() { _ = st.Close(context.Background()) }, nil
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
