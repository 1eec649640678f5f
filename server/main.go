package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"

	"go-btc-worth/binance"
	"go-btc-worth/calc"
	"go-btc-worth/config"
	"go-btc-worth/forex"
	"go-btc-worth/http"

	nhttp "net/http"
)

func main() {
	w := log.NewSyncWriter(os.Stderr)
	logger := log.NewLogfmtLogger(w)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	cfgPath := flag.String("config", "", "path to yaml config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Log("msg", "loading config failed", "err", err)
		os.Exit(1)
	}

	prices := binance.NewService(cfg.Binance.BaseURL, cfg.Binance.Timeout)
	prices = binance.NewLoggingService(log.With(logger, "component", "binance"), prices)

	rates := forex.NewService(cfg.Forex.BaseURL, cfg.Forex.Timeout)
	rates = forex.NewLoggingService(log.With(logger, "component", "forex"), rates)
	rates = forex.NewCachingService(rates)

	metrics := calc.NewMetrics(prometheus.DefaultRegisterer)
	engine := calc.New(prices, rates, metrics, log.With(logger, "component", "engine"))

	refresher := calc.NewRefresher(engine, cfg.Refresh.Interval, cfg.Input(), log.With(logger, "component", "refresher"))
	refresher.Start()

	handler := http.NewServer(engine, refresher, log.With(logger, "component", "http"))
	server := &nhttp.Server{
		Addr:         cfg.Server.ListenAddress,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Log("msg", "listening", "addr", cfg.Server.ListenAddress)
		if err := server.ListenAndServe(); err != nil && err != nhttp.ErrServerClosed {
			logger.Log("msg", "http server failed", "err", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Log("msg", "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	refresher.Stop()
}
