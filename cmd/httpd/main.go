package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/Brownie44l1/httpd/internal/logger"
	"github.com/Brownie44l1/httpd/internal/server"
)

var version = "dev"

func main() {
	config := server.DefaultConfig()

	flag.StringVar(&config.Directory, "directory", "", "directory served under /files/ (used as a literal path prefix)")
	flag.StringVar(&config.Addr, "addr", config.Addr, "listen address")
	flag.IntVar(&config.Workers, "workers", config.Workers, "number of connection workers")
	flag.IntVar(&config.QueueSize, "queue-size", config.QueueSize, "accepted connections waiting for a worker")
	flag.DurationVar(&config.IdleTimeout, "idle-timeout", 0, "close connections idle this long (0 disables)")
	flag.BoolVar(&config.StrictPaths, "strict-paths", false, "reject /files/ paths containing \"..\"")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("httpd", version)
		return
	}

	log, err := logger.New(os.Stderr, *logLevel)
	if err != nil {
		log.Warn("unknown log level, using info", logger.F("level", *logLevel))
	}

	srv, err := server.New(config, log)
	if err != nil {
		log.Error("invalid configuration", logger.F("error", err))
		os.Exit(2)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("shutting down", logger.F("signal", sig.String()))
		srv.Close()
	}()

	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, server.ErrServerClosed) {
		log.Error("server failed", logger.F("error", err))
		os.Exit(1)
	}

	stats, poolStats := srv.Stats()
	log.Info("server stopped",
		logger.F("requests", stats.RequestsTotal),
		logger.F("connections", stats.ConnectionsTotal),
		logger.F("errors", stats.ErrorsTotal),
		logger.F("jobs_panicked", poolStats.Panicked),
	)
}
