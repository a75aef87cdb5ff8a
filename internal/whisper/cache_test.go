package whisper_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"scribe/internal/logging"
	"scribe/internal/services"
	"scribe/internal/whisper"
)

func countingLoader(counter *atomic.Int32) whisper.LoadFunc {
	return func(ctx context.Context, model whisper.ModelID) (*whisper.Instance, error) {
		counter.Add(1)
		return &whisper.Instance{Model: model, WorkDir: "work"}, nil
	}
}

func TestCacheReusesReleasedInstance(t *testing.T) {
	var loads atomic.Int32
	cache := whisper.NewCache(countingLoader(&loads), logging.NewNop())

	first, err := cache.Acquire(t.Context(), "tiny")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	first.Release()

	second, err := cache.Acquire(t.Context(), "tiny")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	defer second.Release()

	if loads.Load() != 1 {
		t.Fatalf("expected a single load, got %d", loads.Load())
	}
	if first.Instance != second.Instance {
		t.Fatal("expected released instance to be reused")
	}
}

func TestCacheBusyInstanceTriggersIndependentLoad(t *testing.T) {
	var loads atomic.Int32
	cache := whisper.NewCache(countingLoader(&loads), logging.NewNop())

	first, err := cache.Acquire(t.Context(), "tiny")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	defer first.Release()

	// The first checkout is still held; this must not block or share.
	second, err := cache.Acquire(t.Context(), "tiny")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	defer second.Release()

	if first.Instance == second.Instance {
		t.Fatal("busy instance was handed out twice")
	}
	if loads.Load() != 2 {
		t.Fatalf("expected two loads, got %d", loads.Load())
	}
	if got := cache.Instances("tiny"); got != 2 {
		t.Fatalf("expected two cached instances, got %d", got)
	}
	if got := cache.Loads(); got != 2 {
		t.Fatalf("expected load count 2, got %d", got)
	}
}

func TestCacheSeparateModelsLoadSeparately(t *testing.T) {
	var loads atomic.Int32
	cache := whisper.NewCache(countingLoader(&loads), logging.NewNop())

	tiny, err := cache.Acquire(t.Context(), "tiny")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	tiny.Release()

	small, err := cache.Acquire(t.Context(), "small")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	small.Release()

	if loads.Load() != 2 {
		t.Fatalf("expected two loads for two models, got %d", loads.Load())
	}
	if cache.Instances("tiny") != 1 || cache.Instances("small") != 1 {
		t.Fatal("expected one instance per model")
	}
}

func TestCacheEvictsFailedLoad(t *testing.T) {
	boom := errors.New("download failed")
	cache := whisper.NewCache(func(ctx context.Context, model whisper.ModelID) (*whisper.Instance, error) {
		return nil, boom
	}, logging.NewNop())

	_, err := cache.Acquire(t.Context(), "tiny")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped loader error, got %v", err)
	}
	if got := cache.Instances("tiny"); got != 0 {
		t.Fatalf("failed load left %d placeholder slots", got)
	}
}

func TestCheckoutReleaseIsIdempotent(t *testing.T) {
	var loads atomic.Int32
	cache := whisper.NewCache(countingLoader(&loads), logging.NewNop())

	checkout, err := cache.Acquire(t.Context(), "tiny")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	checkout.Release()
	checkout.Release()

	again, err := cache.Acquire(t.Context(), "tiny")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	again.Release()

	if loads.Load() != 1 {
		t.Fatalf("expected one load after double release, got %d", loads.Load())
	}
}
