package beat

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var (
	// ErrEmptySchedule is returned when a schedule has no timestamps
	ErrEmptySchedule = errors.New("beat schedule is empty")

	// ErrNonMonotonic is returned when a timestamp is not strictly after its predecessor
	ErrNonMonotonic = errors.New("beat timestamps are not strictly increasing")

	// ErrInvalidTimestamp is returned for NaN, infinite or negative second values
	ErrInvalidTimestamp = errors.New("invalid beat timestamp")

	// ErrOutOfRange is returned when indexing past the last beat
	ErrOutOfRange = errors.New("beat index out of range")
)

// Schedule is an immutable, strictly increasing list of beat timestamps
// measured from track start. Safe to share between cursors without locking
type Schedule struct {
	beats []time.Duration
}

// NewSchedule validates and copies timestamps into a schedule
func NewSchedule(timestamps []time.Duration) (*Schedule, error) {
	if len(timestamps) == 0 {
		return nil, ErrEmptySchedule
	}

	beats := make([]time.Duration, len(timestamps))
	copy(beats, timestamps)

	for i := 1; i < len(beats); i++ {
		if beats[i] <= beats[i-1] {
			return nil, fmt.Errorf("%w: index %d (%v) after %v", ErrNonMonotonic, i, beats[i], beats[i-1])
		}
	}

	return &Schedule{beats: beats}, nil
}

// NewScheduleSeconds builds a schedule from floating point seconds
// Values are rounded to the nearest nanosecond
func NewScheduleSeconds[F float32 | float64](seconds []F) (*Schedule, error) {
	if len(seconds) == 0 {
		return nil, ErrEmptySchedule
	}

	timestamps := make([]time.Duration, len(seconds))
	for i, s := range seconds {
		v := float64(s)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("%w: index %d (%v)", ErrInvalidTimestamp, i, v)
		}
		timestamps[i] = SecondsToDuration(v)
	}

	return NewSchedule(timestamps)
}

// SecondsToDuration converts seconds to a duration with nanosecond rounding
func SecondsToDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// BeatCount returns the number of beats
// A nil schedule has no beats
func (s *Schedule) BeatCount() int {
	if s == nil {
		return 0
	}
	return len(s.beats)
}

// TimestampAt returns the beat time at index
func (s *Schedule) TimestampAt(index int) (time.Duration, error) {
	if index < 0 || index >= len(s.beats) {
		return 0, fmt.Errorf("%w: %d of %d", ErrOutOfRange, index, len(s.beats))
	}
	return s.beats[index], nil
}

// IntervalAt returns the duration from beat index to beat index+1
func (s *Schedule) IntervalAt(index int) (time.Duration, error) {
	if index < 0 || index+1 >= len(s.beats) {
		return 0, fmt.Errorf("%w: interval %d of %d", ErrOutOfRange, index, len(s.beats)-1)
	}
	return s.beats[index+1] - s.beats[index], nil
}

// IndexAt returns the index of the most recent beat at or before t, -1 before the first beat
func (s *Schedule) IndexAt(t time.Duration) int {
	if s == nil {
		return -1
	}
	// First beat strictly after t, minus one
	return sort.Search(len(s.beats), func(i int) bool { return s.beats[i] > t }) - 1
}

// First returns the first beat time
func (s *Schedule) First() time.Duration {
	return s.beats[0]
}

// Last returns the last beat time
func (s *Schedule) Last() time.Duration {
	return s.beats[len(s.beats)-1]
}

// Stats summarizes inter-beat intervals; zero values for single-beat schedules
type Stats struct {
	Count        int
	First, Last  time.Duration
	MeanInterval time.Duration
	MinInterval  time.Duration
	MaxInterval  time.Duration
}

// Stats computes interval statistics
func (s *Schedule) Stats() Stats {
	st := Stats{
		Count: len(s.beats),
		First: s.First(),
		Last:  s.Last(),
	}
	if len(s.beats) < 2 {
		return st
	}

	st.MinInterval = time.Duration(math.MaxInt64)
	for i := 1; i < len(s.beats); i++ {
		iv := s.beats[i] - s.beats[i-1]
		if iv < st.MinInterval {
			st.MinInterval = iv
		}
		if iv > st.MaxInterval {
			st.MaxInterval = iv
		}
	}
	st.MeanInterval = (st.Last - st.First) / time.Duration(len(s.beats)-1)
	return st
}
