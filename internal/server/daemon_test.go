package server_test

import (
	"testing"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/server"
)

func TestDaemonSingleInstanceLock(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.APIBind = "127.0.0.1:0"

	first, _ := newTestServer(t)
	daemon, err := server.NewDaemon(&cfg, first, logging.NewNop())
	if err != nil {
		t.Fatalf("NewDaemon returned error: %v", err)
	}
	if err := daemon.Start(t.Context()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer daemon.Stop()

	second, _ := newTestServer(t)
	rival, err := server.NewDaemon(&cfg, second, logging.NewNop())
	if err != nil {
		t.Fatalf("NewDaemon returned error: %v", err)
	}
	if err := rival.Start(t.Context()); err == nil {
		rival.Stop()
		t.Fatal("expected second daemon start to fail while lock is held")
	}
}

func TestDaemonStopIsIdempotent(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.APIBind = "127.0.0.1:0"

	srv, _ := newTestServer(t)
	daemon, err := server.NewDaemon(&cfg, srv, logging.NewNop())
	if err != nil {
		t.Fatalf("NewDaemon returned error: %v", err)
	}
	if err := daemon.Start(t.Context()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	daemon.Stop()
	daemon.Stop()
}
