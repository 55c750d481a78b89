package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
)

// HousekeepingService periodically expires overdue OTPs and fails operations
// past their timeout, so stale rows do not wait for the next request to touch them.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one minute.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Minute
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background until Stop is called.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep runs one pass. Each step is independent; a failure is logged and the
// next step still runs.
func (s *HousekeepingService) Sweep(ctx context.Context) {
	ts := now(s.Now)

	expired, err := s.Store.Otps().ExpireOverdueOtps(ctx, ts)
	if err != nil {
		s.Logger.Error("failed to expire overdue otps", "error", err)
	}

	failed, err := s.Store.Operations().FailTimedOutOperations(ctx, ts)
	if err != nil {
		s.Logger.Error("failed to fail timed out operations", "error", err)
	}

	if expired > 0 || failed > 0 {
		s.Logger.Info("housekeeping sweep completed", "otps_expired", expired, "operations_failed", failed)
	}
}
