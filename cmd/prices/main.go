package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"PriceStore/internal/config"
	"PriceStore/internal/prices"
	"PriceStore/pkg/kit"
)

func main() {
	cfg, err := config.LoadAndValidate(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := kit.NewLogger(cfg.Service, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	s := &prices.Server{
		Store:        prices.NewStore(),
		Log:          log,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	}
	if cfg.RateLimit.Requests > 0 {
		s.Limiter = kit.NewIPRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if cfg.Metrics.Enabled && cfg.Metrics.Token == "" {
		log.Warn("metrics enabled without token; /metrics will reject every request")
	}

	h := prices.NewHandler(s, prices.HTTPDeps{
		Log:            log,
		Service:        cfg.Service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	srvCfg := kit.ServerConfig{
		Addr:              cfg.HTTP.Addr,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout,
	}
	if err := kit.RunHTTPServer(context.Background(), srvCfg, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
