package whisper

import (
	"context"
	"log/slog"
	"sync"

	"scribe/internal/logging"
	"scribe/internal/services"
)

// Instance is one loaded model ready for exclusive use by a single request.
type Instance struct {
	Model ModelID
	// WorkDir is a scratch directory owned by this instance; concurrent
	// instances must never share output state.
	WorkDir string
}

// LoadFunc materializes a new instance for a model. Loading is expensive
// (seconds), so the cache amortizes it across requests for the same model.
type LoadFunc func(ctx context.Context, model ModelID) (*Instance, error)

// Cache is a process-lifetime checkout cache of model instances keyed by
// model identifier. Entries are never evicted. Acquire never blocks: when
// every cached instance for a model is checked out, an independent instance
// is loaded instead, trading memory for isolation during inference.
type Cache struct {
	mu     sync.Mutex
	load   LoadFunc
	slots  map[ModelID][]*slot
	loads  int
	logger *slog.Logger
}

type slot struct {
	instance *Instance
	busy     bool
}

// NewCache constructs a cache around the given loader.
func NewCache(load LoadFunc, logger *slog.Logger) *Cache {
	return &Cache{
		load:   load,
		slots:  map[ModelID][]*slot{},
		logger: logging.WithComponent(logger, "model-cache"),
	}
}

// Checkout is an exclusive lease on a model instance. Release returns the
// instance to the cache for reuse; releasing twice is harmless.
type Checkout struct {
	Instance *Instance

	cache   *Cache
	slot    *slot
	release sync.Once
}

// Acquire checks out a free cached instance for the model, or loads a fresh
// independent one when none is free. The expensive load happens outside the
// cache lock so concurrent acquisitions of other models never stall.
func (c *Cache) Acquire(ctx context.Context, model ModelID) (*Checkout, error) {
	c.mu.Lock()
	for _, s := range c.slots[model] {
		if !s.busy && s.instance != nil {
			s.busy = true
			c.mu.Unlock()
			c.logger.Debug("model instance reused", logging.String("model", string(model)))
			return &Checkout{Instance: s.instance, cache: c, slot: s}, nil
		}
	}
	fresh := &slot{busy: true}
	c.slots[model] = append(c.slots[model], fresh)
	c.loads++
	c.mu.Unlock()

	c.logger.Debug("model not cached or busy, loading", logging.String("model", string(model)))
	instance, err := c.load(ctx, model)
	if err != nil {
		c.evict(model, fresh)
		return nil, services.Wrap(services.ErrExternalTool, "model-cache", "load", string(model), err)
	}

	c.mu.Lock()
	fresh.instance = instance
	c.mu.Unlock()
	return &Checkout{Instance: instance, cache: c, slot: fresh}, nil
}

// Release returns the leased instance to the cache.
func (co *Checkout) Release() {
	if co == nil || co.cache == nil {
		return
	}
	co.release.Do(func() {
		co.cache.mu.Lock()
		co.slot.busy = false
		co.cache.mu.Unlock()
	})
}

// Loads reports how many instance loads the cache has performed.
func (c *Cache) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}

// Instances reports how many instances exist for a model, busy or not.
func (c *Cache) Instances(model ModelID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots[model])
}

func (c *Cache) evict(model ModelID, target *slot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.slots[model]
	for i, s := range current {
		if s == target {
			c.slots[model] = append(current[:i], current[i+1:]...)
			return
		}
	}
}
