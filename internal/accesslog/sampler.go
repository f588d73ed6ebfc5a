// Package accesslog condenses one HTTP request/response pair into a single
// structured log line, with optional GraphQL operation metadata and
// vendor-compat field mapping.
package accesslog

import "math/rand/v2"

// samplePrecision fixes the uniform draw at 4-decimal-digit precision.
const samplePrecision = 10000

// Sampler decides per request whether an access-log line is emitted.
// Errors and redirects are always visible; the ignore-list and the
// probabilistic sampling apply to the success path only.
type Sampler struct {
	ignoredPaths map[string]struct{}
	ratio        float64
	draw         func() float64
}

// NewSampler builds a sampler over an exact-match ignore list and a success
// sampling ratio in [0, 1]. The draw function must produce independent
// uniform values in (0, 1]; nil selects the process-wide generator, which
// is safe for concurrent use.
func NewSampler(ignoredPaths []string, ratio float64, draw func() float64) *Sampler {
	if draw == nil {
		draw = uniformDraw
	}
	ignored := make(map[string]struct{}, len(ignoredPaths))
	for _, path := range ignoredPaths {
		ignored[path] = struct{}{}
	}
	return &Sampler{
		ignoredPaths: ignored,
		ratio:        ratio,
		draw:         draw,
	}
}

// ShouldLog applies the decision order: statuses >= 300 always log, then
// ignored paths never log, then the sampling ratio decides.
func (s *Sampler) ShouldLog(status int, path string) bool {
	if status >= 300 {
		return true
	}
	if _, ok := s.ignoredPaths[path]; ok {
		return false
	}
	if s.ratio >= 1 {
		return true
	}
	return s.draw() <= s.ratio
}

// uniformDraw returns a value in (0, 1] at 4-decimal precision. The draw is
// never zero, so a ratio of exactly 0 suppresses every successful request.
func uniformDraw() float64 {
	return float64(rand.IntN(samplePrecision)+1) / samplePrecision
}
