package tide

import (
	"fmt"
	"time"
)

// windowDays is the length of the recommended fieldwork window.
const windowDays = 3

// FieldworkWindow is a recommended spring-tide observation window.
type FieldworkWindow struct {
	Start      time.Time // Midnight of the first day of the window.
	End        time.Time // Midnight of the last day of the window.
	TotalRange float64   // Cumulative daily tidal range over the window in metres.
}

// dayRange is the tidal range of one calendar day.
type dayRange struct {
	day      time.Time
	min, max float64
}

// RecommendFieldwork finds the window of windowDays consecutive calendar days
// with the largest cumulative daily tidal range, i.e. the spring tide.
// Day boundaries follow the timestamps' location, so localize the series
// first for civil-time days.
func RecommendFieldwork(s Series) (FieldworkWindow, error) {
	days := dailyRanges(s)
	if len(days) < windowDays {
		return FieldworkWindow{}, fmt.Errorf("tide: fieldwork recommendation needs at least %d days of observations: %d", windowDays, len(days))
	}

	best := FieldworkWindow{}
	found := false
	for i := 0; i+windowDays <= len(days); i++ {
		sum := 0.0
		consecutive := true
		for j := 0; j < windowDays; j++ {
			if j > 0 && !days[i+j].day.Equal(days[i+j-1].day.AddDate(0, 0, 1)) {
				consecutive = false
				break
			}
			sum += days[i+j].max - days[i+j].min
		}
		if !consecutive {
			continue
		}
		if !found || sum > best.TotalRange {
			best = FieldworkWindow{Start: days[i].day, End: days[i+windowDays-1].day, TotalRange: sum}
			found = true
		}
	}

	if !found {
		return FieldworkWindow{}, fmt.Errorf("tide: no run of %d consecutive days in the record", windowDays)
	}
	return best, nil
}

// dailyRanges aggregates the series per calendar day in record order.
func dailyRanges(s Series) []dayRange {
	var days []dayRange
	for _, obs := range s {
		d := truncateToDay(obs.Time)
		if n := len(days); n > 0 && days[n-1].day.Equal(d) {
			if obs.Elevation < days[n-1].min {
				days[n-1].min = obs.Elevation
			}
			if obs.Elevation > days[n-1].max {
				days[n-1].max = obs.Elevation
			}
			continue
		}
		days = append(days, dayRange{day: d, min: obs.Elevation, max: obs.Elevation})
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
