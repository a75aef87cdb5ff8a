// Command scribed runs the annotation service: it loads configuration,
// prepares the model cache and history store, and serves the HTTP API until
// interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"scribe/internal/config"
	"scribe/internal/history"
	"scribe/internal/logging"
	"scribe/internal/pipeline"
	"scribe/internal/server"
	"scribe/internal/whisper"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	port := flag.Int("port", 0, "override the API listen port")
	production := flag.Bool("production", false, "run with production logging instead of development mode")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *port > 0 {
		host, _, splitErr := net.SplitHostPort(cfg.Paths.APIBind)
		if splitErr != nil {
			host = "127.0.0.1"
		}
		cfg.Paths.APIBind = net.JoinHostPort(host, strconv.Itoa(*port))
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", filepath.Join(cfg.Paths.LogDir, "scribed.log")},
		Development: !*production,
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.Paths.HistoryDB, cfg.History.Keep)
		if err != nil {
			log.Fatalf("open history store: %v", err)
		}
		defer store.Close()
	}

	cache := whisper.NewCache(whisper.NewDiskLoader(cfg.Paths.WorkDir), logger)
	service := whisper.NewService(whisper.Config{DownloadRoot: cfg.Paths.ModelCacheDir})
	annotator := pipeline.New(cfg, cache, service, store, logger)

	srv := server.New(cfg, annotator, store, logger)
	daemon, err := server.NewDaemon(cfg, srv, logger)
	if err != nil {
		log.Fatalf("create daemon: %v", err)
	}

	if err := daemon.Start(ctx); err != nil {
		log.Fatalf("start daemon: %v", err)
	}
	defer daemon.Stop()

	fmt.Printf("scribed listening on %s\n", srv.Bind())
	<-ctx.Done()
	logger.Info("scribed shutting down")
}
