package services

import (
	"context"
	"time"

	"github.com/bookly/crm-saas/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// RateLimiterService implements ports.RateLimiterService with one static policy for every business.
type RateLimiterService struct {
	repo            ports.RateLimitRepository
	defaultLimit    int
	burstMultiplier float64
	window          time.Duration
	keyPrefix       string
	logger          *logrus.Logger
}

// RateLimiterConfig groups configuration parameters for the rate limiter.
type RateLimiterConfig struct {
	DefaultRequestsPerMinute int
	BurstMultiplier          float64
	Window                   time.Duration
	KeyPrefix                string
}

func NewRateLimiterService(repo ports.RateLimitRepository, cfg *RateLimiterConfig, logger *logrus.Logger) *RateLimiterService {
	// Apply defaults
	dl := 120
	bm := 2.0
	w := time.Minute
	kp := "ratelimit:business"
	if cfg != nil {
		if cfg.DefaultRequestsPerMinute > 0 {
			dl = cfg.DefaultRequestsPerMinute
		}
		if cfg.BurstMultiplier > 0 {
			bm = cfg.BurstMultiplier
		}
		if cfg.Window > 0 {
			w = cfg.Window
		}
		if cfg.KeyPrefix != "" {
			kp = cfg.KeyPrefix
		}
	}
	return &RateLimiterService{repo: repo, defaultLimit: dl, burstMultiplier: bm, window: w, keyPrefix: kp, logger: logger}
}

func (s *RateLimiterService) Allow(ctx context.Context, businessID string) (bool, int, int, time.Time, error) {
	limit := s.defaultLimit
	ttl := s.window * 2 // retain overlap window
	count, windowStart, err := s.repo.IncrementWindow(ctx, businessID, s.window, s.keyPrefix, ttl)
	reset := windowStart.Add(s.window)
	burst := int(float64(limit) * s.burstMultiplier)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"business_id": businessID}).WithError(err).Error("rate limiter: failed to increment window")
		}
		// fail open
		return true, burst, limit, reset, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"business_id": businessID, "count": count, "burst": burst, "limit": limit}).Debug("rate limiter window state")
	}
	if count > burst {
		return false, 0, limit, reset, nil
	}
	return true, burst - count, limit, reset, nil
}

var _ ports.RateLimiterService = (*RateLimiterService)(nil)
