package chanmodel

import "time"

// MergedCandle is a maximal run of bars collapsed by the inclusion rule.
// It is the atomic unit the rest of the pipeline operates on.
type MergedCandle struct {
	Idx       int
	Dir       CandleDir
	High      float64
	Low       float64
	TimeBegin time.Time
	TimeEnd   time.Time
	Bars      []Bar
	Fx        FxType

	Prev CandleHandle
	Next CandleHandle
}

// Contains reports whether c fully contains o's [low, high] range.
func (c MergedCandle) Contains(o MergedCandle) bool {
	return c.High >= o.High && c.Low <= o.Low
}

// HasOverlap reports whether [low1, high1] and [low2, high2] intersect, using the
// same boundary convention as the stroke/pivot overlap test: equal=true
// allows touching edges, equal=false requires strict overlap.
func HasOverlap(low1, high1, low2, high2 float64, equal bool) bool {
	if equal {
		return high2 >= low1 && high1 >= low2
	}
	return high2 > low1 && high1 > low2
}
