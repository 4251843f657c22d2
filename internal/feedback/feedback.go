// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

/*
Package feedback manages resolution ratings for closed-out complaints.

The upstream API is the source of truth for rating aggregates; this package
adds the gateway-side behaviors the browser experience depends on:

  - A short-lived Redis cache of aggregates so feed pages do not hammer the
    upstream for numbers that change rarely.
  - Optimistic aggregation: when a citizen rates, the expected new aggregate
    is computed locally ([ApplyLocal]) and served immediately, then replaced
    by the upstream's authoritative numbers once the write round-trip lands.

An optimistic value is a prediction, never a fact. It lives under a tight TTL
and is overwritten (on success) or discarded (on failure) as soon as the
upstream has spoken. The gateway never rolls an aggregate backward by
arithmetic; a failed write simply invalidates the cache so the next read
re-fetches the truth.
*/
package feedback

import "github.com/ademarli/municipality-gateway/pkg/pointer"

// Rating bounds. Values outside the range are clamped before aggregation.
const (
	MinRating = 1
	MaxRating = 5
)

// Stats is the rating aggregate for one complaint.
//
// MyRating is nil for anonymous viewers and for citizens who have not rated
// the complaint yet. Some upstream serializers emit a literal 0 instead of
// omitting the field; 0 and below also mean "not rated".
type Stats struct {
	ComplaintID int64   `json:"complaintId"`
	AvgRating   float64 `json:"avgRating"`
	RatingCount int     `json:"ratingCount"`
	MyRating    *int    `json:"myRating,omitempty"`
}

// RateRequest is the browser payload for submitting or changing a rating.
type RateRequest struct {
	Rating int `json:"rating"`
}

// MyRatingResponse carries a citizen's own rating for one complaint.
type MyRatingResponse struct {
	Rating *int `json:"rating"`
}

/*
ApplyLocal computes the aggregate a successful rating write is expected to
produce, without waiting for the upstream.

Description: Two cases, depending on whether the caller had already rated:

  - First rating: the count grows by one and the value joins the average.
  - Changed rating: the count is unchanged; the old value leaves the
    average and the new one replaces it.

A zero prior count with a recorded prior rating is internally inconsistent;
the new value is taken as the whole truth in that case rather than dividing
by zero.

Parameters:
  - prior: Stats (the aggregate the caller currently sees)
  - value: int (the submitted rating, clamped to [MinRating, MaxRating])

Returns:
  - Stats: The predicted aggregate, with MyRating set to the clamped value
*/
func ApplyLocal(prior Stats, value int) Stats {

	if value < MinRating {
		value = MinRating
	}
	if value > MaxRating {
		value = MaxRating
	}

	next := prior

	// A prior rating exists only when MyRating carries a positive value; an
	// absent field and a serialized 0 both mean the citizen has not rated yet.
	if pointer.Val(prior.MyRating) <= 0 {
		// First rating from this citizen: the population grows.
		newCount := prior.RatingCount + 1
		if prior.RatingCount == 0 {
			next.AvgRating = float64(value)
		} else {
			next.AvgRating = (prior.AvgRating*float64(prior.RatingCount) + float64(value)) / float64(newCount)
		}
		next.RatingCount = newCount
	} else {
		// Changed rating: same population, swap the contribution.
		if prior.RatingCount == 0 {
			next.AvgRating = float64(value)
		} else {
			next.AvgRating = (prior.AvgRating*float64(prior.RatingCount) - float64(*prior.MyRating) + float64(value)) / float64(prior.RatingCount)
		}
	}

	next.MyRating = pointer.To(value)
	return next
}
