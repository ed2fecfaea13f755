// Package progress aggregates known/total card counts bottom-up over a
// hierarchy.
package progress

import (
	"math"

	"github.com/matzehuels/conceptmap/pkg/hierarchy"
)

// Pair is a (known, total) count for a topic or subtopic. Known never exceeds Total.
type Pair struct {
	Known int `json:"known"`
	Total int `json:"total"`
}

// Add returns the component-wise sum of p and o.
func (p Pair) Add(o Pair) Pair {
	return Pair{Known: p.Known + o.Known, Total: p.Total + o.Total}
}

// Percent returns round(known/total*100), and 0 when total is 0.
func (p Pair) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(p.Known) / float64(p.Total) * 100))
}

// Fraction returns known/total in [0, 1], and 0 when total is 0.
func (p Pair) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Known) / float64(p.Total)
}

// Complete reports whether every card is known. An empty pair is not complete.
func (p Pair) Complete() bool {
	return p.Total > 0 && p.Known == p.Total
}

// Level buckets a percentage for display colouring.
type Level string

// Display levels, from fully known down.
const (
	LevelComplete Level = "complete" // 100%
	LevelHigh     Level = "high"     // >= 75%
	LevelMedium   Level = "medium"   // >= 50%
	LevelLow      Level = "low"      // >= 25%
	LevelMinimal  Level = "minimal"  // < 25%
)

// Level returns the display bucket for p.
func (p Pair) Level() Level {
	return LevelFor(p.Percent())
}

// LevelFor returns the display bucket for a percentage.
func LevelFor(pct int) Level {
	switch {
	case pct >= 100:
		return LevelComplete
	case pct >= 75:
		return LevelHigh
	case pct >= 50:
		return LevelMedium
	case pct >= 25:
		return LevelLow
	default:
		return LevelMinimal
	}
}

// Report holds aggregated pairs keyed by subtopic and topic id.
type Report struct {
	BySubtopic map[string]Pair `json:"bySubtopicId"`
	ByTopic    map[string]Pair `json:"byTopicId"`
}

// Aggregate counts known cards per subtopic and sums them per topic in one
// pass. A card is known only if known[id] is true.
//
// With duplicate ids the last occurrence wins in the maps; sums for topics are
// computed from their own subtopics, not from the map.
func Aggregate(h hierarchy.Hierarchy, known map[string]bool) Report {
	r := Report{
		BySubtopic: make(map[string]Pair),
		ByTopic:    make(map[string]Pair, len(h)),
	}
	for _, t := range h {
		var tp Pair
		for _, s := range t.Subtopics {
			sp := Pair{Total: len(s.Cards)}
			for _, c := range s.Cards {
				if known[c.ID] {
					sp.Known++
				}
			}
			r.BySubtopic[s.ID] = sp
			tp = tp.Add(sp)
		}
		r.ByTopic[t.ID] = tp
	}
	return r
}

// Overall sums every topic of h.
func Overall(h hierarchy.Hierarchy, known map[string]bool) Pair {
	var p Pair
	for _, t := range h {
		for _, s := range t.Subtopics {
			p.Total += len(s.Cards)
			for _, c := range s.Cards {
				if known[c.ID] {
					p.Known++
				}
			}
		}
	}
	return p
}

// For returns the pair for a topic or subtopic id. Topics take precedence.
// The second result is false for ids that are neither (cards included).
func (r Report) For(id string) (Pair, bool) {
	if p, ok := r.ByTopic[id]; ok {
		return p, true
	}
	p, ok := r.BySubtopic[id]
	return p, ok
}
