package store

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"soloquest/arise"
)

// DebouncedSaver coalesces bursts of state mutations into a single save.
// Each Schedule call replaces the pending snapshot and restarts the timer,
// so the last snapshot wins. Flush forces the pending snapshot out
// immediately, for shutdown.
type DebouncedSaver struct {
	mu      sync.Mutex
	store   *Store
	logger  *zap.Logger
	delay   time.Duration
	timer   *time.Timer
	pending *arise.State
}

// NewDebouncedSaver wraps the store with a write debounce of the given
// delay.
func NewDebouncedSaver(st *Store, delay time.Duration, logger *zap.Logger) *DebouncedSaver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DebouncedSaver{store: st, logger: logger, delay: delay}
}

// Schedule records the snapshot and arms the save timer.
func (d *DebouncedSaver) Schedule(snapshot *arise.State) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = snapshot
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush writes any pending snapshot synchronously.
func (d *DebouncedSaver) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	snapshot := d.pending
	d.pending = nil
	d.mu.Unlock()

	d.save(snapshot)
}

func (d *DebouncedSaver) fire() {
	d.mu.Lock()
	snapshot := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	d.save(snapshot)
}

func (d *DebouncedSaver) save(snapshot *arise.State) {
	if snapshot == nil {
		return
	}
	if err := d.store.SaveState(snapshot); err != nil {
		d.logger.Error("state save failed", zap.Error(err))
	}
}
