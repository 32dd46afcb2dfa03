package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
)

// Pending enrolments older than this are abandoned.
const staleEnrollmentAge = 24 * time.Hour

// HousekeepingService periodically removes expired sessions and challenges,
// abandoned enrolments, and lapsed MFA failure counters.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background(), time.Now())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background(), time.Now())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs each deletion independently; one failing does not stop the
// others. It returns the number of rows removed.
func (s *HousekeepingService) Cleanup(ctx context.Context, now time.Time) int64 {
	var total int64

	steps := []struct {
		name string
		fn   func() (int64, error)
	}{
		{"sessions", func() (int64, error) { return s.Store.Sessions().DeleteExpiredSessions(ctx, now) }},
		{"challenges", func() (int64, error) { return s.Store.Challenges().DeleteExpiredChallenges(ctx, now) }},
		{"enrollments", func() (int64, error) {
			return s.Store.Factors().DeleteStaleUnverifiedFactors(ctx, now.Add(-staleEnrollmentAge))
		}},
		{"mfa_failures", func() (int64, error) {
			return s.Store.Factors().DeleteStaleMFAFailures(ctx, now.Add(-domain.MFALockoutWindow))
		}},
	}

	for _, step := range steps {
		n, err := step.fn()
		if err != nil {
			s.Logger.Error("housekeeping step failed", "step", step.name, "error", err)
			continue
		}
		s.Logger.Debug("housekeeping step done", "step", step.name, "deleted", n)
		total += n
	}

	s.Logger.Info("housekeeping cleanup completed", "deleted", total)
	return total
}
