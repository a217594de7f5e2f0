package chanmodel

// BSPoint is a classified endpoint on a stroke/segment indicating a
// structural buy or sell signal.
type BSPoint struct {
	Idx    int
	Type   BspType
	Side   Side
	Anchor int // index of the anchoring stroke (level 1) or segment (level 2)
	Price  float64
	Time   int64 // unix seconds of the anchor candle's close

	// Metric is the computed macd_algo value used to justify the
	// divergence test; Reference is the same metric on the comparison
	// stroke/segment.
	Metric    float64
	Reference float64
}

// Divergence reports whether metric is at most rate times reference, the
// shared test behind every BSP divergence classification. A zero reference
// never counts as divergence.
func Divergence(metric, reference, rate float64) bool {
	if reference == 0 {
		return false
	}
	return metric <= reference*rate
}
