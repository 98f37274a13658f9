// Package scheduler runs the countdown tick loop. It watches the game
// timer and alerts operators on expiry; it never triggers a spin itself,
// since expiry is advisory and requires a human action.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/spinthreads/wheel-backend/internal/repositories"
	"github.com/spinthreads/wheel-backend/pkg/broadcast"
)

// Reconciler retries bookkeeping that a completed spin left unfinished
type Reconciler interface {
	ReconcilePendingResets(ctx context.Context) error
}

// Countdown is the recurring background process tracking the game timer.
// Its lifecycle is explicit: Start launches the loop, cancelling the
// context stops it.
type Countdown struct {
	settingsRepo repositories.GameSettingsRepository
	broadcaster  broadcast.Broadcaster
	reconciler   Reconciler
	interval     time.Duration

	// reconcileEvery spaces reconciliation checks in ticks
	reconcileEvery int
	done           chan struct{}
}

// NewCountdown creates a countdown scheduler ticking at the given interval
func NewCountdown(
	settingsRepo repositories.GameSettingsRepository,
	broadcaster broadcast.Broadcaster,
	reconciler Reconciler,
	interval time.Duration,
) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{
		settingsRepo:   settingsRepo,
		broadcaster:    broadcaster,
		reconciler:     reconciler,
		interval:       interval,
		reconcileEvery: 60,
		done:           make(chan struct{}),
	}
}

// Start launches the tick loop in its own goroutine. The loop exits when
// ctx is cancelled; Wait blocks until it has drained.
func (c *Countdown) Start(ctx context.Context) {
	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		slog.Info("countdown scheduler started", "interval", c.interval)
		tickCount := 0
		for {
			select {
			case <-ctx.Done():
				slog.Info("countdown scheduler stopped")
				return
			case <-ticker.C:
				tickCount++
				c.Tick(ctx, time.Now())
				if c.reconciler != nil && tickCount%c.reconcileEvery == 0 {
					if err := c.reconciler.ReconcilePendingResets(ctx); err != nil {
						slog.Error("spin reconciliation failed", "error", err)
					}
				}
			}
		}
	}()
}

// Wait blocks until the loop has exited
func (c *Countdown) Wait() {
	<-c.done
}

// Tick runs one scheduler cycle. A storage error skips the cycle; the next
// tick simply retries. There is no backlog: a missed tick is dropped.
func (c *Countdown) Tick(ctx context.Context, now time.Time) {
	settings, err := c.settingsRepo.Get(ctx)
	if err != nil {
		slog.Warn("scheduler tick skipped, settings unavailable", "error", err)
		return
	}
	if !settings.CountdownActive {
		return
	}

	if !now.Before(settings.GameEndTime) {
		// Conditional flip: of two racing ticks only one observes the
		// transition and emits the expiry alert.
		flipped, err := c.settingsRepo.DeactivateCountdown(ctx)
		if err != nil {
			slog.Warn("failed to deactivate countdown, will retry", "error", err)
			return
		}
		if !flipped {
			return
		}
		slog.Info("countdown expired, awaiting operator spin", "endTime", settings.GameEndTime)
		if err := c.broadcaster.Publish(ctx, broadcast.TopicAdminRoom, broadcast.Message{
			Event:   broadcast.EventCountdownExpired,
			Payload: map[string]interface{}{"endTime": settings.GameEndTime},
		}); err != nil {
			slog.Error("failed to broadcast countdown expiry", "error", err)
		}
		return
	}

	remaining := settings.GameEndTime.Sub(now).Round(time.Second)
	if err := c.broadcaster.Publish(ctx, broadcast.TopicWheelRoom, broadcast.Message{
		Event: broadcast.EventTimeRemaining,
		Payload: map[string]interface{}{
			"remainingSeconds": int(remaining.Seconds()),
			"endTime":          settings.GameEndTime,
		},
	}); err != nil {
		slog.Error("failed to broadcast time remaining", "error", err)
	}
}
