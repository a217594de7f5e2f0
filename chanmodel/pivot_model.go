package chanmodel

// Pivot (ZS) is a price zone where three or more consecutive structural
// pieces have non-empty overlap in the price dimension. Like Segment, one
// Pivot type backs both the stroke-level pivot list and the segment-level
// mirror; Members/Entry/Exit are positional indices into the piece slice
// the owning pivot.List.Recompute call was given.
type Pivot struct {
	Idx int

	// ZG/ZD bound the shared overlap band (ZG = min of the highs, ZD = max
	// of the lows, of the members at even offsets from the first member, so
	// ZG >= ZD for any valid pivot); GG/DD are the union extremum across all
	// member pieces.
	ZG, ZD float64
	GG, DD float64

	Dir Dir

	Members []int
	Entry   int // the opposite-direction piece that opened the pivot, or -1
	Exit    int // the piece that broke out of the pivot, or -1 if still open

	Closed bool
}

// Low/High return the interior consolidation band.
func (p Pivot) Low() float64  { return p.ZD }
func (p Pivot) High() float64 { return p.ZG }
