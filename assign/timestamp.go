// Package assign derives the synthetic capture context for a batch of
// photos: plausible timestamps under business-hour constraints, catalog
// location selection, and provenance-based grouping so related uploads
// share one assignment.
package assign

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"photo-seo/model"
)

// ErrInvalidRange is returned for an end date before the start date, or
// for a weekday-only range that contains no weekday.
var ErrInvalidRange = errors.New("invalid date range")

const (
	// Generated times fall on the business day, hour drawn from
	// [businessHourFirst, businessHourLast] inclusive.
	businessHourFirst = 8
	businessHourLast  = 18

	// weekdayAttempts bounds the rejection sampler. A range of seven
	// or more days always contains a weekday; for shorter ranges the
	// chance of this many misses on a satisfiable range is negligible,
	// and an unsatisfiable range (a lone weekend day) fails instead of
	// looping forever.
	weekdayAttempts = 100
)

// Generator produces synthetic capture timestamps. Not safe for
// concurrent use; the batch assigner serializes access.
type Generator struct {
	rnd *rand.Rand
}

func NewGenerator() *Generator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator fixes the random source, for deterministic runs
// and tests.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// UniformInRange picks a uniformly random calendar day between start
// and end inclusive (time-of-day of the bounds is ignored) and places
// the capture moment at a random business hour of that day.
func (g *Generator) UniformInRange(start, end time.Time) (time.Time, error) {
	days, startDay, err := rangeDays(start, end)
	if err != nil {
		return time.Time{}, err
	}
	day := startDay.AddDate(0, 0, g.rnd.Intn(days))
	return g.atBusinessHour(day), nil
}

// UniformWeekdayInRange is UniformInRange restricted to Monday through
// Friday via bounded rejection sampling.
func (g *Generator) UniformWeekdayInRange(start, end time.Time) (time.Time, error) {
	days, startDay, err := rangeDays(start, end)
	if err != nil {
		return time.Time{}, err
	}

	for attempt := 0; attempt < weekdayAttempts; attempt++ {
		day := startDay.AddDate(0, 0, g.rnd.Intn(days))
		if wd := day.Weekday(); wd >= time.Monday && wd <= time.Friday {
			return g.atBusinessHour(day), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: no weekday between %s and %s",
		ErrInvalidRange, start.Format(time.DateOnly), end.Format(time.DateOnly))
}

// SequentialDrift spreads sequential shots across a session: the frame
// at index i is captured exactly i*stepMinutes minutes after base.
func SequentialDrift(base time.Time, index, stepMinutes int) time.Time {
	return base.Add(time.Duration(index*stepMinutes) * time.Minute)
}

// PickLocation draws uniformly from the catalog.
func (g *Generator) PickLocation(catalog []model.NamedLocation) model.NamedLocation {
	return catalog[g.rnd.Intn(len(catalog))]
}

func rangeDays(start, end time.Time) (int, time.Time, error) {
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)
	if endDay.Before(startDay) {
		return 0, time.Time{}, fmt.Errorf("%w: end %s before start %s",
			ErrInvalidRange, end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return int(endDay.Sub(startDay).Hours()/24) + 1, startDay, nil
}

func (g *Generator) atBusinessHour(day time.Time) time.Time {
	hour := businessHourFirst + g.rnd.Intn(businessHourLast-businessHourFirst+1)
	minute := g.rnd.Intn(60)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
