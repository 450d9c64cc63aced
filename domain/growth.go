package domain

import "time"

// The smoothing factor favours recent observations so a camera that changes
// bitrate mid-recording is reflected within a few scan cycles.
const growthSmoothing = 0.4

// GrowthMeter derives an exponentially smoothed growth rate (bytes/sec) from
// successive size observations of one file. It is owned by the scanner and is
// not safe for concurrent use.
type GrowthMeter struct {
	lastSize uint64
	lastSeen time.Time
	rate     float64
	primed   bool
}

// Observe feeds one (size, time) sample and returns the updated rate.
// A shrinking size (truncate/rewrite) resets the meter.
func (m *GrowthMeter) Observe(size uint64, at time.Time) float64 {
	if !m.primed || size < m.lastSize {
		m.lastSize = size
		m.lastSeen = at
		m.rate = 0
		m.primed = true
		return 0
	}

	elapsed := at.Sub(m.lastSeen).Seconds()
	if elapsed <= 0 {
		return m.rate
	}

	sample := float64(size-m.lastSize) / elapsed
	if m.rate == 0 {
		m.rate = sample
	} else {
		m.rate = growthSmoothing*sample + (1-growthSmoothing)*m.rate
	}

	m.lastSize = size
	m.lastSeen = at
	return m.rate
}

// Rate returns the current smoothed rate in bytes/sec.
func (m *GrowthMeter) Rate() float64 { return m.rate }
