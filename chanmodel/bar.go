package chanmodel

import (
	"time"

	"github.com/chanstruct/chanstruct/chanerr"
)

// Bar is one raw OHLC observation at the input granularity. It is immutable
// once constructed and owned by the MergedCandle it is folded into.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	KLType KLType

	// Optional trade metrics. Zero value means "not supplied".
	Volume    float64
	Turnover  float64
	Turnrate  float64
}

// Validate checks the price-consistency invariant every bar must satisfy:
// high >= max(open,close) >= min(open,close) >= low > 0.
func (b Bar) Validate() error {
	if b.Low <= 0 {
		return chanerr.New(chanerr.PriceBelowZero, "bar price at or below zero")
	}
	hi := max(b.Open, b.Close)
	lo := min(b.Open, b.Close)
	if !(b.High >= hi && hi >= lo && lo >= b.Low) {
		return chanerr.New(chanerr.KLDataInvalid, "bar OHLC ordering invalid")
	}
	return nil
}

// HasTooMuchZero flags a bar whose trade-info fields are predominantly
// zero, mirroring the original library's suspicious-data heuristic.
func (b Bar) HasTooMuchZero() bool {
	zero := 0
	total := 0
	for _, v := range []float64{b.Volume, b.Turnover, b.Turnrate} {
		total++
		if v == 0 {
			zero++
		}
	}
	return zero*2 > total
}
