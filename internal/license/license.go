// Package license validates license keys and meters daily usage.
package license

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownKey is returned when a key has never been registered
var ErrUnknownKey = errors.New("unknown license key")

// Tier is a license type
type Tier string

const (
	TierFree       Tier = "free"
	TierStudent    Tier = "student"
	TierTeacher    Tier = "teacher"
	TierEnterprise Tier = "enterprise"
)

// Unlimited marks a tier without a daily cap
const Unlimited = -1

// Features gated by tier
const (
	FeatureGrading        = "grading"
	FeatureDetailed       = "detailed_feedback"
	FeatureInline         = "inline_feedback"
	FeatureAssessment     = "assessment"
	FeatureBatch          = "batch"
	FeatureAgreement      = "agreement_reports"
	FeatureProfileHistory = "progress_tracking"
)

// Plan is the static configuration of a tier
type Plan struct {
	DailyLimit int
	Features   []string
}

// Plans is the tier feature matrix
var Plans = map[Tier]Plan{
	TierFree: {
		DailyLimit: 5,
		Features:   []string{FeatureGrading},
	},
	TierStudent: {
		DailyLimit: 50,
		Features:   []string{FeatureGrading, FeatureDetailed, FeatureInline, FeatureProfileHistory},
	},
	TierTeacher: {
		DailyLimit: 500,
		Features:   []string{FeatureGrading, FeatureDetailed, FeatureInline, FeatureProfileHistory, FeatureAssessment, FeatureBatch},
	},
	TierEnterprise: {
		DailyLimit: Unlimited,
		Features:   []string{FeatureGrading, FeatureDetailed, FeatureInline, FeatureProfileHistory, FeatureAssessment, FeatureBatch, FeatureAgreement},
	},
}

// ParseTier validates a tier name
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if _, ok := Plans[t]; !ok {
		return "", fmt.Errorf("unknown tier %q", s)
	}
	return t, nil
}

// Validation is the result of checking a key
type Validation struct {
	Valid      bool     `json:"valid"`
	UserType   Tier     `json:"user_type,omitempty"`
	DailyUsage int      `json:"daily_usage"`
	DailyLimit int      `json:"daily_limit"`
	Features   []string `json:"features,omitempty"`
	Message    string   `json:"message,omitempty"`
}

// HasFeature reports whether the license grants the feature
func (v Validation) HasFeature(name string) bool {
	for _, f := range v.Features {
		if f == name {
			return true
		}
	}
	return false
}

// LimitReached reports whether today's usage has hit the cap
func (v Validation) LimitReached() bool {
	return v.DailyLimit != Unlimited && v.DailyUsage >= v.DailyLimit
}

// Store is a license/usage backend
type Store interface {
	Validate(ctx context.Context, key string) (Validation, error)
	IncrementUsage(ctx context.Context, key string) (bool, error)
}

// Registry is a Store that can also register keys
type Registry interface {
	Store
	Add(ctx context.Context, key string, tier Tier) error
}

// Check validates a key, converting store failures into an invalid result
func Check(ctx context.Context, store Store, key string) Validation {
	if key == "" {
		return Validation{Valid: false, Message: "license key required"}
	}
	v, err := store.Validate(ctx, key)
	if err != nil {
		if errors.Is(err, ErrUnknownKey) {
			return Validation{Valid: false, Message: "invalid license key"}
		}
		return Validation{Valid: false, Message: fmt.Sprintf("license validation unavailable: %v", err)}
	}
	return v
}

// validation builds the result for a known key
func validation(tier Tier, usage int) Validation {
	plan := Plans[tier]
	features := make([]string, len(plan.Features))
	copy(features, plan.Features)
	return Validation{
		Valid:      true,
		UserType:   tier,
		DailyUsage: usage,
		DailyLimit: plan.DailyLimit,
		Features:   features,
	}
}

// day returns the UTC day bucket for usage counters
func day(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// untilMidnight returns the time remaining in the UTC day
func untilMidnight(t time.Time) time.Duration {
	t = t.UTC()
	next := time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, time.UTC)
	return next.Sub(t)
}
