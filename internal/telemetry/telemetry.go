// Package telemetry keeps approximate, lock-free counters describing how
// sliding attack queries were answered. Counters are observability only.
package telemetry

import (
	"fmt"
	"sync/atomic"
)

// Counters tracks magic lookups and fallbacks. Increments are relaxed:
// a snapshot taken during concurrent queries may mix counts from
// different moments.
type Counters struct {
	magic       atomic.Uint64
	fallback    atomic.Uint64
	unavailable atomic.Uint64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	MagicLookups uint64
	Fallbacks    uint64
	Unavailable  uint64
}

// Default is the process-wide counter set.
var Default = &Counters{}

// RecordMagic counts a query answered by the magic table.
func (c *Counters) RecordMagic() {
	c.magic.Add(1)
}

// RecordFallback counts a query answered by ray casting because the
// table was unavailable.
func (c *Counters) RecordFallback() {
	c.fallback.Add(1)
	c.unavailable.Add(1)
}

// Snapshot returns the current counts.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		MagicLookups: c.magic.Load(),
		Fallbacks:    c.fallback.Load(),
		Unavailable:  c.unavailable.Load(),
	}
}

// Reset zeroes all counters.
func (c *Counters) Reset() {
	c.magic.Store(0)
	c.fallback.Store(0)
	c.unavailable.Store(0)
}

// Total returns the number of queries counted.
func (s Snapshot) Total() uint64 {
	return s.MagicLookups + s.Fallbacks
}

// HitRate returns the share of queries answered by the table, as a percentage (0-100).
func (s Snapshot) HitRate() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.MagicLookups) / float64(s.Total()) * 100
}

func (s Snapshot) String() string {
	return fmt.Sprintf("magic=%d fallback=%d unavailable=%d", s.MagicLookups, s.Fallbacks, s.Unavailable)
}
