// Command anonvoted runs the anonvote RPC server: the gRPC binding over
// internal/rpcserver, backed by the protocol engine and an in-memory store.
package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/kymani37299/anonvote/internal/config"
	"github.com/kymani37299/anonvote/internal/engine"
	"github.com/kymani37299/anonvote/internal/metrics"
	"github.com/kymani37299/anonvote/internal/rpcserver"
)

var cfg = config.Default()

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anonvoted",
		Short: "Serve the anonymous voting protocol over gRPC",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&cfg.ListenAddress, "listen", cfg.ListenAddress, "RPC listen address")
	flags.StringVar(&cfg.MetricsAddress, "metrics-listen", cfg.MetricsAddress, "Prometheus metrics listen address")
	flags.StringVar((*string)(&cfg.GroupProfile), "group-profile", string(cfg.GroupProfile), "group parameter profile: production or tiny")
	flags.StringSliceVar(&cfg.VoteOptions, "vote-option", cfg.VoteOptions, "candidate name; repeat for each option, in order")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zap log level: debug, info, warn, error")
	flags.BoolVar(&cfg.RequireGenerator, "require-generator", cfg.RequireGenerator, "reject registrations whose alpha disagrees with the group generator")
	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "anonvoted:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("anonvoted: build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	group, err := cfg.Group()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	eng := engine.New(group, len(cfg.VoteOptions), cfg.RequireGenerator,
		engine.WithLogger(log),
		engine.WithMetrics(m),
	)

	lis, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("anonvoted: listen on %s: %w", cfg.ListenAddress, err)
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(rpcserver.RequestIDInterceptor(log)))
	rpcserver.Register(grpcServer, rpcserver.New(eng, log, m))

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{Addr: cfg.MetricsAddress, Handler: metricsMux}

	errCh := make(chan error, 2)
	go func() {
		log.Info("rpc server listening", zap.String("address", cfg.ListenAddress))
		errCh <- grpcServer.Serve(lis)
	}()
	go func() {
		log.Info("metrics server listening", zap.String("address", cfg.MetricsAddress))
		errCh <- metricsServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("shutting down", zap.Stringer("signal", sig))
		grpcServer.GracefulStop()
		return metricsServer.Close()
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	var zapLevel zap.AtomicLevel
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zapLevel
	return zcfg.Build()
}
