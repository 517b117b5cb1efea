package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-proto/pkg/blockinsight7000/v1"
	"github.com/goodnatureofminers/doublespend-viewer/internal/feed"
	"github.com/goodnatureofminers/doublespend-viewer/internal/metrics"
	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
	"github.com/goodnatureofminers/doublespend-viewer/internal/repository/clickhouse"
	"github.com/goodnatureofminers/doublespend-viewer/internal/service"
	"github.com/goodnatureofminers/doublespend-viewer/internal/summary"
	"github.com/goodnatureofminers/doublespend-viewer/internal/transport"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var config struct {
	Addr            string        `long:"addr" env:"API_GATEWAY_ADDR" description:"addr" default:":8000"`
	RestAddr        string        `long:"rest-addr" env:"API_GATEWAY_REST_ADDR" description:"rest addr" default:":8001"`
	Coin            model.Coin    `long:"coin" env:"API_GATEWAY_COIN" description:"coin name" default:"VTC"`
	Network         model.Network `long:"network" env:"API_GATEWAY_NETWORK" description:"network name" default:"mainnet"`
	FeedPath        string        `long:"feed-path" env:"API_GATEWAY_FEED_PATH" description:"path to the double-spend feed file"`
	FeedURL         string        `long:"feed-url" env:"API_GATEWAY_FEED_URL" description:"URL of the double-spend feed"`
	FeedTimeout     time.Duration `long:"feed-timeout" env:"API_GATEWAY_FEED_TIMEOUT" description:"HTTP timeout for feed downloads" default:"30s"`
	FeedRPS         int           `long:"feed-rps" env:"API_GATEWAY_FEED_RPS" description:"max feed downloads per second" default:"1"`
	RefreshInterval time.Duration `long:"refresh-interval" env:"API_GATEWAY_REFRESH_INTERVAL" description:"feed refresh interval" default:"30s"`
	StrictHashes    bool          `long:"strict-hashes" env:"API_GATEWAY_STRICT_HASHES" description:"reject records with malformed block hashes, txids or outpoints"`
	ClickhouseDSN   string        `long:"clickhouse-dsn" env:"API_GATEWAY_CLICKHOUSE_DSN" description:"ClickHouse DSN, summaries are not persisted when empty"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	refresher, closeRepo, err := newRefresher(logger)
	if err != nil {
		logger.Fatal("Init refresher", zap.Error(err))
	}
	defer closeRepo()
	go func() {
		if runErr := refresher.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
			logger.Error("Refresher stopped", zap.Error(runErr))
		}
	}()

	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)

	blockinsight7000v1.RegisterExplorerServiceServer(grpcServer, transport.NewExplorerHandler(refresher))

	socket, err := net.Listen("tcp", config.Addr)
	if err != nil {
		logger.Fatal("net.Listen error", zap.Error(err))
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Fatal("Start GRPC server", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	mux := http.NewServeMux()

	gw := gwruntime.NewServeMux()
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if err := blockinsight7000v1.RegisterExplorerServiceHandlerFromEndpoint(ctx, gw, config.Addr, opts); err != nil {
		logger.Fatal("Register explorer handler", zap.Error(err))
	}

	transport.NewEventsHandler(refresher, logger).Register(mux)
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.RestAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.RestAddr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}

func newRefresher(logger *zap.Logger) (*service.Refresher, func(), error) {
	source, err := newSource()
	if err != nil {
		return nil, nil, err
	}

	summarizer, err := summary.NewSummarizer(metrics.NewSummarizer(config.Coin, config.Network), logger)
	if err != nil {
		return nil, nil, err
	}

	var decodeOpts []feed.Option
	if config.StrictHashes {
		decodeOpts = append(decodeOpts, feed.WithStrictHashes())
	}

	var repo service.Repository
	closeRepo := func() {}
	if config.ClickhouseDSN != "" {
		chRepo, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return nil, nil, fmt.Errorf("init repository: %w", err)
		}
		repo = chRepo
		closeRepo = func() {
			if err := chRepo.Close(); err != nil {
				logger.Warn("Failed to close repository", zap.Error(err))
			}
		}
	}

	refresher, err := service.NewRefresher(
		source,
		summarizer,
		repo,
		metrics.NewRefresher(config.Coin, config.Network),
		config.Coin,
		config.Network,
		config.RefreshInterval,
		logger,
		decodeOpts...,
	)
	if err != nil {
		closeRepo()
		return nil, nil, err
	}
	return refresher, closeRepo, nil
}

func newSource() (service.Source, error) {
	switch {
	case config.FeedPath != "" && config.FeedURL != "":
		return nil, errors.New("feed-path and feed-url are mutually exclusive")
	case config.FeedPath != "":
		return feed.NewFileSource(config.FeedPath), nil
	case config.FeedURL != "":
		return feed.NewHTTPSource(config.FeedURL, config.FeedTimeout, config.FeedRPS, metrics.NewFeedSource(config.Coin, config.Network))
	default:
		return nil, errors.New("one of feed-path or feed-url is required")
	}
}
