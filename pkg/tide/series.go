// Package tide provides analysis routines for tidal water-level series.
package tide

import (
	"fmt"
	"sort"
	"time"
)

// Observation is a single water-level sample.
type Observation struct {
	Time      time.Time
	Elevation float64 // metres
}

// Series is a time-ordered sequence of water-level observations.
type Series []Observation

// Localize returns a copy of the series with every timestamp expressed in loc.
func (s Series) Localize(loc *time.Location) Series {
	out := make(Series, len(s))
	for i, obs := range s {
		out[i] = Observation{Time: obs.Time.In(loc), Elevation: obs.Elevation}
	}
	return out
}

// Elevations returns the elevation values in series order.
func (s Series) Elevations() []float64 {
	out := make([]float64, len(s))
	for i, obs := range s {
		out[i] = obs.Elevation
	}
	return out
}

// Mean returns the mean elevation. For a sufficiently long record this is the
// mean sea level.
func (s Series) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	sum := 0.0
	for _, obs := range s {
		sum += obs.Elevation
	}
	return sum / float64(len(s))
}

// Sampling returns the median interval between consecutive observations.
func (s Series) Sampling() (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("tide: sampling needs at least 2 observations: %d", len(s))
	}

	intervals := make([]time.Duration, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		intervals = append(intervals, s[i].Time.Sub(s[i-1].Time))
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i] < intervals[j] })
	return intervals[len(intervals)/2], nil
}
