package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Brownie44l1/shipping-http/internal/handler"
	"github.com/Brownie44l1/shipping-http/internal/router"
	"github.com/Brownie44l1/shipping-http/internal/server"
	"github.com/Brownie44l1/shipping-http/internal/store"
)

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func main() {
	config := server.DefaultConfig()

	flag.StringVar(&config.Addr, "addr", config.Addr, "listen address")
	flag.IntVar(&config.ReadBufferSize, "read-size", config.ReadBufferSize, "bytes read per request")
	flag.DurationVar(&config.ReadTimeout, "read-timeout", config.ReadTimeout, "read deadline per connection")
	flag.DurationVar(&config.WriteTimeout, "write-timeout", config.WriteTimeout, "write deadline per connection")
	publicPath := flag.String("public", envOr("PUBLIC_PATH", "public"), "document root (env PUBLIC_PATH)")
	dataPath := flag.String("data", envOr("DATA_PATH", "data"), "data directory (env DATA_PATH)")
	debug := flag.Bool("debug", false, "enable debug logging")
	pretty := flag.Bool("pretty", true, "console log format instead of JSON")
	flag.Parse()

	logger := server.NewLogger(os.Stdout, *debug, *pretty)

	orders, err := store.Load(*dataPath)
	if err != nil {
		logger.Fatal().Err(err).Str("data", *dataPath).Msg("cannot load orders")
	}
	logger.Info().Int("orders", orders.Len()).Str("public", *publicPath).Msg("data loaded")

	r := router.New(
		handler.NewStatic(handler.DirFiles{Root: *publicPath}),
		handler.NewAPI(orders),
	)
	srv := server.New(config, r, logger)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, server.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}

	server.LogStats(logger, srv.Stats())
}
