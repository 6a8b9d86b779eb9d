package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/BioHazard786/huddle/internal/config"
	"github.com/BioHazard786/huddle/internal/logging"
	"github.com/BioHazard786/huddle/internal/metrics"
	"github.com/BioHazard786/huddle/internal/monitor"
	"github.com/BioHazard786/huddle/internal/server"
	"github.com/BioHazard786/huddle/internal/signaling"
	"github.com/BioHazard786/huddle/internal/version"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Signaling server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Configuration & Logger
	cfg, err := config.Load()
	if err != nil {
		return exitConfig, err
	}
	log := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel, slog.LevelInfo), cfg.LogFormat)
	slog.SetDefault(log)

	// 2. Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	sampler, err := monitor.NewProcessSampler()
	if err != nil {
		return exitRuntime, err
	}

	// 3. Hub & Sweeper
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()

	hub := signaling.NewHub(signaling.HubOptions{
		Rooms: signaling.RoomOptions{
			MaxParticipants:  cfg.MaxParticipants,
			ChatHistoryLimit: cfg.ChatHistoryLimit,
		},
		MaxFileSize: cfg.MaxFileSize,
	}, log, m)
	hubDone := make(chan struct{})
	go func() {
		hub.Run(hubCtx)
		close(hubDone)
	}()

	sweeper := signaling.NewSweeper(hub, sampler, cfg.SweepInterval, uint64(cfg.MemoryWarnBytes), log, m)
	sweepDone := make(chan error, 1)
	go func() {
		sweepDone <- sweeper.Run(ctx)
	}()

	// 4. HTTP server
	srv := server.New(hub, sampler, log, server.Options{
		Addr:           cfg.Addr(),
		AllowedOrigins: cfg.Origins(),
		Gatherer:       reg,
		Client: signaling.ClientOptions{
			PongWait:       cfg.PongWait,
			PingInterval:   cfg.PingInterval,
			MaxMessageSize: cfg.MaxMessageBytes,
			SendBuffer:     cfg.SendBuffer,
		},
	})

	listener, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", cfg.Addr(), err)
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting signaling server", "addr", listener.Addr().String(), "version", version.Version)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, server.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 5. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
		stop()
	}

	// 6. Graceful Shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown incomplete", "err", err)
	}
	if err := <-sweepDone; err != nil {
		log.Warn("Sweeper stopped with error", "err", err)
	}
	stopHub()
	<-hubDone

	log.Info("Signaling server stopped")
	return code, runErr
}
