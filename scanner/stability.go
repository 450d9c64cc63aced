package scanner

import (
	"time"

	"transfer-agent/domain"
)

// observation is the per-path memory the stability tracker keeps between
// scan cycles.
type observation struct {
	size           uint64
	mtime          time.Time
	lastChangeAt   time.Time
	unchangedScans int
	meter          domain.GrowthMeter
}

// StabilityTracker decides, across scan cycles, whether a file is still being
// written ("growing") or has settled ("stable"). It is owned by the scan loop
// and is not safe for concurrent use.
type StabilityTracker struct {
	window time.Duration
	seen   map[string]*observation
}

func NewStabilityTracker(window time.Duration) *StabilityTracker {
	return &StabilityTracker{
		window: window,
		seen:   make(map[string]*observation),
	}
}

// Observe feeds one scan sample and returns whether the file changed since
// the previous scan and the smoothed growth rate in bytes/sec.
func (t *StabilityTracker) Observe(path string, size uint64, mtime time.Time, now time.Time) (changed bool, rate float64) {
	obs, ok := t.seen[path]
	if !ok {
		obs = &observation{size: size, mtime: mtime, lastChangeAt: now}
		obs.meter.Observe(size, now)
		t.seen[path] = obs
		return true, 0
	}

	rate = obs.meter.Observe(size, now)

	if size != obs.size || !mtime.Equal(obs.mtime) {
		obs.size = size
		obs.mtime = mtime
		obs.lastChangeAt = now
		obs.unchangedScans = 0
		return true, rate
	}

	obs.unchangedScans++
	return false, rate
}

// IsStable reports whether a file has gone two full scan intervals without
// any size or mtime change and has been quiet for the stability window.
func (t *StabilityTracker) IsStable(path string, now time.Time) bool {
	obs, ok := t.seen[path]
	if !ok {
		return false
	}
	return obs.unchangedScans >= 2 && now.Sub(obs.lastChangeAt) >= t.window
}

// Rate returns the current smoothed growth rate for a path.
func (t *StabilityTracker) Rate(path string) float64 {
	if obs, ok := t.seen[path]; ok {
		return obs.meter.Rate()
	}
	return 0
}

// Forget drops tracking state for a path.
func (t *StabilityTracker) Forget(path string) {
	delete(t.seen, path)
}

// Cleanup drops tracking state for every path absent from the current scan.
func (t *StabilityTracker) Cleanup(existing map[string]struct{}) {
	for path := range t.seen {
		if _, ok := existing[path]; !ok {
			delete(t.seen, path)
		}
	}
}
