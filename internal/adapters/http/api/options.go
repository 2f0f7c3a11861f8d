package api

import (
	"golang.org/x/time/rate"
)

// maxBodyBytes bounds request bodies; a batch profile of a long session fits.
const maxBodyBytes = 4 << 20

type options struct {
	defaultCount int
	maxCount     int
	limiter      *rate.Limiter
}

func defaultOptions() options {
	return options{defaultCount: 5, maxCount: 50}
}

// Option applies a configuration option to the Server.
type Option func(*options)

// WithRecommendCounts sets the default and maximum recommendation counts.
func WithRecommendCounts(defaultCount, maxCount int) Option {
	return func(o *options) {
		if defaultCount > 0 && maxCount >= defaultCount {
			o.defaultCount = defaultCount
			o.maxCount = maxCount
		}
	}
}

// WithEventRateLimit limits event ingestion to perSecond with burst.
// A non-positive rate disables limiting.
func WithEventRateLimit(perSecond float64, burst int) Option {
	return func(o *options) {
		if perSecond > 0 && burst > 0 {
			o.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}
