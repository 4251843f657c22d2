// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ademarli/municipality-gateway/internal/platform/apperr"
	"github.com/ademarli/municipality-gateway/internal/platform/constants"
	"github.com/ademarli/municipality-gateway/internal/upstream"
)

// Service implements rating retrieval and the optimistic write flow.
type Service struct {
	api    *upstream.Client
	redis  *redis.Client
	logger *slog.Logger
}

// NewService constructs the feedback [Service].
func NewService(api *upstream.Client, redisClient *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		api:    api,
		redis:  redisClient,
		logger: logger,
	}
}

// # Cache Key Taxonomy
//
// Aggregates that include MyRating are per-citizen and must never be shared,
// so the key space splits into a public plane and a per-user plane:
//
//	feedback:stats:<complaintID>:public
//	feedback:stats:<complaintID>:user:<userID>

func publicStatsKey(complaintID int64) string {
	return fmt.Sprintf("%s%d:public", constants.RedisPrefixFeedbackStats, complaintID)
}

func userStatsKey(complaintID, userID int64) string {
	return fmt.Sprintf("%s%d:user:%d", constants.RedisPrefixFeedbackStats, complaintID, userID)
}

// # Reads

/*
PublicStats returns the anonymous rating aggregate for one complaint.

The aggregate is cached for [constants.FeedbackStatsTTL]; cache failures
degrade to a direct upstream read rather than failing the request.
*/
func (service *Service) PublicStats(ctx context.Context, complaintID int64) (*Stats, error) {

	key := publicStatsKey(complaintID)
	if cached := service.getCached(ctx, key); cached != nil {
		return cached, nil
	}

	var stats Stats
	path := fmt.Sprintf("/api/public/complaints/%d/rating/stats", complaintID)
	if err := service.api.Get(ctx, path, nil, "", &stats); err != nil {
		return nil, err
	}
	stats.ComplaintID = complaintID

	service.putCached(ctx, key, &stats, constants.FeedbackStatsTTL)
	return &stats, nil
}

// MyStats returns the aggregate as one authenticated citizen sees it,
// including their own rating.
func (service *Service) MyStats(ctx context.Context, token string, userID, complaintID int64) (*Stats, error) {

	key := userStatsKey(complaintID, userID)
	if cached := service.getCached(ctx, key); cached != nil {
		return cached, nil
	}

	stats, err := service.fetchMyStats(ctx, token, complaintID)
	if err != nil {
		return nil, err
	}

	service.putCached(ctx, key, stats, constants.FeedbackStatsTTL)
	return stats, nil
}

// MyRating returns only the caller's own rating for one complaint.
func (service *Service) MyRating(ctx context.Context, token string, complaintID int64) (*MyRatingResponse, error) {
	var response MyRatingResponse
	path := fmt.Sprintf("/api/citizen/feedback/%d/rating/me", complaintID)
	if err := service.api.Get(ctx, path, nil, token, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// # Optimistic Write

/*
Rate submits a rating and returns the aggregate the citizen should see.

Description: The flow follows the optimistic-then-reconcile pattern:

 1. Resolve the prior aggregate (cache, then upstream).
 2. Compute the predicted aggregate with [ApplyLocal] and cache it under a
    short provisional TTL so concurrent reads see the rating instantly.
 3. Perform the upstream write.
 4. On success, re-fetch the authoritative aggregate and overwrite the
    provisional entry (and the public-plane entry, which is now stale).
 5. On failure, drop both cache planes so the next read returns to the
    pre-write truth, and surface the write error unchanged.

The returned Stats is always the authoritative post-write aggregate, never
the prediction: the prediction exists only to keep reads warm while the
round-trip is in flight.

Parameters:
  - ctx: context.Context
  - token: Bearer token of the citizen
  - userID: Numeric user ID (cache-plane key)
  - complaintID: Target complaint
  - value: Submitted rating, already validated to [MinRating, MaxRating]

Returns:
  - *Stats: The reconciled aggregate
  - error: The upstream write or re-fetch failure
*/
func (service *Service) Rate(ctx context.Context, token string, userID, complaintID int64, value int) (*Stats, error) {

	if err := requireValidRating(value); err != nil {
		return nil, err
	}

	key := userStatsKey(complaintID, userID)

	// ── 1. Prior Aggregate ────────────────────────────────────────────────
	prior := service.getCached(ctx, key)
	if prior == nil {
		fetched, err := service.fetchMyStats(ctx, token, complaintID)
		if err != nil {
			return nil, err
		}
		prior = fetched
	}

	// ── 2. Optimistic Prediction ──────────────────────────────────────────
	predicted := ApplyLocal(*prior, value)
	service.putCached(ctx, key, &predicted, constants.FeedbackProvisionalTTL)

	// ── 3. Upstream Write ─────────────────────────────────────────────────
	path := fmt.Sprintf("/api/citizen/feedback/%d/rating", complaintID)
	writeErr := service.api.Put(ctx, path, token, RateRequest{Rating: *predicted.MyRating}, nil)

	if writeErr != nil {
		// ── 5. Rollback by Invalidation ───────────────────────────────────
		service.invalidate(ctx, key, publicStatsKey(complaintID))
		service.logger.Warn("rating_write_rejected",
			slog.Int64("complaint_id", complaintID),
			slog.Any("error", writeErr),
		)
		return nil, writeErr
	}

	// ── 4. Reconcile With Authority ───────────────────────────────────────
	authoritative, err := service.fetchMyStats(ctx, token, complaintID)
	if err != nil {
		// The write landed but the confirmation read failed. The provisional
		// entry expires on its own; report the read failure.
		service.invalidate(ctx, key, publicStatsKey(complaintID))
		return nil, err
	}

	service.putCached(ctx, key, authoritative, constants.FeedbackStatsTTL)
	service.invalidate(ctx, publicStatsKey(complaintID))

	return authoritative, nil
}

// # Internals

func (service *Service) fetchMyStats(ctx context.Context, token string, complaintID int64) (*Stats, error) {
	var stats Stats
	path := fmt.Sprintf("/api/citizen/feedback/%d/rating/stats", complaintID)
	if err := service.api.Get(ctx, path, nil, token, &stats); err != nil {
		return nil, err
	}
	stats.ComplaintID = complaintID
	return &stats, nil
}

// getCached returns the cached aggregate, or nil on miss or cache failure.
func (service *Service) getCached(ctx context.Context, key string) *Stats {
	raw, err := service.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			service.logger.Warn("feedback_cache_read_failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil
	}

	var stats Stats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil
	}
	return &stats
}

func (service *Service) putCached(ctx context.Context, key string, stats *Stats, ttl time.Duration) {
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := service.redis.Set(ctx, key, payload, ttl).Err(); err != nil {
		service.logger.Warn("feedback_cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (service *Service) invalidate(ctx context.Context, keys ...string) {
	if err := service.redis.Del(ctx, keys...).Err(); err != nil {
		service.logger.Warn("feedback_cache_invalidate_failed", slog.Any("error", err))
	}
}

// requireValidRating guards service entry points that bypass HTTP validation.
func requireValidRating(value int) error {
	if value < MinRating || value > MaxRating {
		return apperr.ValidationError(fmt.Sprintf("Rating must be between %d and %d", MinRating, MaxRating))
	}
	return nil
}
