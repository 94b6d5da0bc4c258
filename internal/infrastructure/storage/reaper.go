package storage

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// TempReaper periodically deletes abandoned staged uploads. It only
// ever touches the temp directory; committed images are out of bounds.
type TempReaper struct {
	store    *ImageStore
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// NewTempReaper configures a reaper. A zero ttl disables it.
func NewTempReaper(store *ImageStore, ttl, interval time.Duration, logger *zap.Logger) *TempReaper {
	return &TempReaper{store: store, ttl: ttl, interval: interval, logger: logger}
}

// Run sweeps on the configured interval until the context is cancelled
func (r *TempReaper) Run(ctx context.Context) {
	if r.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := r.Sweep(); err != nil {
				r.logger.Error("Temp file sweep failed", zap.Error(err))
			} else if n > 0 {
				r.logger.Info("Reaped abandoned staged uploads", zap.Int("count", n))
			}
		}
	}
}

// Sweep deletes staged files whose modification time is older than the
// TTL and returns how many were removed.
func (r *TempReaper) Sweep() (int, error) {
	dir := filepath.Join(r.store.Root(), tempDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-r.ttl)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			// Concurrent finalize may have moved the file already
			if !os.IsNotExist(err) {
				r.logger.Warn("Failed to reap staged file", zap.String("file", entry.Name()), zap.Error(err))
			}
			continue
		}
		removed++
	}

	return removed, nil
}
