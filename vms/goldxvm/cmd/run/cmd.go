// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/database"
	"github.com/luxfi/database/badgerdb"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/log"

	"github.com/CREESTL/FuseG/vms/goldxvm"
	"github.com/CREESTL/FuseG/vms/goldxvm/api"
)

const (
	APIEndpoint     = "/ext/" + api.Name
	MetricsEndpoint = "/metrics"

	readHeaderTimeout = 10 * time.Second
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "run",
		Short: "Runs the GOLDX VM and serves its API",
		RunE:  runFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func runFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	genesisBytes, err := os.ReadFile(config.GenesisFile)
	if err != nil {
		return err
	}

	db, err := openDB(config.DataDir)
	if err != nil {
		return err
	}
	defer db.Close()

	logger := log.NewLogger("goldxvm")
	registry := prometheus.NewRegistry()
	vm := &goldxvm.VM{Config: config.VM}
	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := vm.Initialize(ctx, db, genesisBytes, logger, registry); err != nil {
		return err
	}

	server, err := NewServer(vm, registry, config.AllowedOrigins)
	if err != nil {
		return err
	}
	return Serve(ctx, logger, server, vm)
}

func openDB(dir string) (database.Database, error) {
	if dir == "" {
		return memdb.New(), nil
	}
	return badgerdb.New(dir, nil, "", nil)
}

// NewServer routes the JSON-RPC service and the metrics of [vm].
func NewServer(vm *goldxvm.VM, registry *prometheus.Registry, allowedOrigins []string) (*http.Server, error) {
	handler, err := api.NewHandler(vm, registry)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Handle(APIEndpoint, handler).Methods(http.MethodPost)
	router.Handle(MetricsEndpoint, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return &http.Server{
		Addr:              vm.APIAddress,
		Handler:           cors.New(cors.Options{AllowedOrigins: allowedOrigins}).Handler(router),
		ReadHeaderTimeout: readHeaderTimeout,
	}, nil
}

// Serve runs [server] until [ctx] is cancelled or the server fails, then
// shuts down both the server and [vm].
func Serve(ctx context.Context, logger log.Logger, server *http.Server, vm *goldxvm.VM) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving api",
			log.String("address", server.Addr),
			log.String("endpoint", APIEndpoint),
		)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), vm.ShutdownTimeout)
		defer cancel()
		return errors.Join(
			server.Shutdown(shutdownCtx),
			vm.Shutdown(shutdownCtx),
		)
	})
	return g.Wait()
}
