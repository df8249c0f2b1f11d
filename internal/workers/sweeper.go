// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-balance-sync/internal/config"
	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/store"
)

// tombstoneSweeper physically deletes tombstones older than the retention
// horizon. Deletions replicate as tombstone writes, so a row may only be
// purged once every realistic sync window has long passed; the horizon is
// the operator's promise about that window.
type tombstoneSweeper struct {
	tables    []store.EntityStore
	retention time.Duration
	interval  time.Duration
	logger    *logger.Logger

	now func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTombstoneSweeper creates a sweeper over every tombstone-carrying table.
// Zero or negative durations fall back to the package defaults. The sweeper
// is idle until Run is called.
func NewTombstoneSweeper(stores *store.Stores, cfg config.Workers, log *logger.Logger) Worker {
	retention := cfg.TombstoneRetention
	if retention <= 0 {
		retention = config.DefaultTombstoneRetention
	}

	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = config.DefaultSweepInterval
	}

	return &tombstoneSweeper{
		tables:    append(stores.Syncable(), stores.Snoozes),
		retention: retention,
		interval:  interval,
		logger:    log,
		now:       time.Now,
	}
}

// Run implements Worker. It stops any previously running sweep loop, then
// launches a background goroutine that purges expired tombstones once
// immediately and again every interval. The goroutine exits when Stop is
// called.
func (s *tombstoneSweeper) Run() {
	s.Stop()

	s.mu.Lock()
	jobCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		// Первый проход сразу: за время простоя агента могло накопиться.
		s.sweep(jobCtx)

		t := time.NewTicker(s.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				s.sweep(jobCtx)
			}
		}
	}()
}

// Stop implements Worker. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the sweeper
// is not running (no-op in that case).
func (s *tombstoneSweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *tombstoneSweeper) sweep(ctx context.Context) {
	cutoff := s.now().Add(-s.retention).UnixMilli()

	for _, table := range s.tables {
		purged, err := table.PurgeTombstonesBefore(ctx, cutoff)
		if err != nil {
			s.logger.Warn().
				Str("func", "*tombstoneSweeper.sweep").
				Str("entity", string(table.EntityType())).
				Msgf("tombstone purge failed: %v", err)
			continue
		}

		if purged > 0 {
			s.logger.Info().
				Str("func", "*tombstoneSweeper.sweep").
				Str("entity", string(table.EntityType())).
				Msgf("purged %d expired tombstone(s)", purged)
		}
	}
}
