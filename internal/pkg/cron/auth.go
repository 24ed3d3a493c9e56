package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/auth"
)

// TokenJobs keeps the refresh token table small.
type TokenJobs struct {
	refreshTokens auth.RefreshTokenRepository
}

func NewTokenJobs(refreshTokens auth.RefreshTokenRepository) *TokenJobs {
	return &TokenJobs{refreshTokens: refreshTokens}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "purge_expired_refresh_tokens",
		Interval: time.Hour,
		Timeout:  time.Minute,
		Fn:       j.PurgeExpiredRefreshTokens,
	})
}

func (j *TokenJobs) PurgeExpiredRefreshTokens(ctx context.Context) error {
	purged, err := j.refreshTokens.PurgeExpired(ctx)
	if err != nil {
		return err
	}
	if purged > 0 {
		slog.Info("Cron: purged refresh tokens", "count", purged)
	}
	return nil
}
