package rng

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrEmptyPool is returned when no entry carries positive weight
var ErrEmptyPool = errors.New("weighted pool is empty")

// WeightedEntry is one participant with its entry weight and running
// cumulative total. Each unit of weight holds equal probability mass, so a
// cumulative array over N participants replaces materializing one slot per
// entry while keeping identical selection probabilities.
type WeightedEntry struct {
	UserID     primitive.ObjectID
	Name       string
	Weight     int
	cumulative int
}

// Pool is a cumulative-weight structure ready for O(log n) weighted draws
type Pool struct {
	entries     []WeightedEntry
	totalWeight int
}

// BuildPool computes cumulative weights over the given entries, preserving
// their order. Entries with non-positive weight are skipped; if nothing
// remains, ErrEmptyPool is returned.
func BuildPool(entries []WeightedEntry) (*Pool, error) {
	pool := &Pool{entries: make([]WeightedEntry, 0, len(entries))}
	total := 0
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		total += e.Weight
		e.cumulative = total
		pool.entries = append(pool.entries, e)
	}
	if total == 0 {
		return nil, ErrEmptyPool
	}
	pool.totalWeight = total
	return pool, nil
}

// TotalWeight returns the sum of all weights in the pool
func (p *Pool) TotalWeight() int {
	return p.totalWeight
}

// Size returns the number of distinct participants in the pool
func (p *Pool) Size() int {
	return len(p.entries)
}

// Draw picks one entry: a uniform value in [0, totalWeight) selects the
// first participant whose cumulative weight exceeds it. Binary search over
// the cumulative array keeps the pick at O(log n).
func (p *Pool) Draw(src Source) WeightedEntry {
	target := src.Intn(p.totalWeight)
	lo, hi := 0, len(p.entries)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if target < p.entries[mid].cumulative {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return p.entries[lo]
}

// DrawAt returns the entry a fixed draw value selects. Exposed so callers
// and tests can reason about specific outcomes.
func (p *Pool) DrawAt(value int) (WeightedEntry, error) {
	if value < 0 || value >= p.totalWeight {
		return WeightedEntry{}, errors.New("draw value out of range")
	}
	for _, e := range p.entries {
		if value < e.cumulative {
			return e, nil
		}
	}
	// unreachable while the cumulative array is well-formed
	return p.entries[len(p.entries)-1], nil
}
