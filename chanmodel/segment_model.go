package chanmodel

// Segment is a directed aggregation of strokes whose characteristic
// sequence terminates in an opposite-direction fractal. The same type
// backs both the stroke-level segment list and the segment-level
// ("segseg") mirror one recursion up; Begin/End/Members are positional
// indices into the piece slice the owning segment.List.Recompute call was
// given (confirmed strokes at level 1, segments at level 2), not arena
// handles.
type Segment struct {
	Idx       int
	Dir       Dir
	Begin     int
	End       int
	Members   []int // member pieces, begin..end inclusive
	Confirmed bool
	Zs        PivotHandle // owning pivot reference; segment.List never sets it, so it keeps its zero value

	// High/Low are the union price extremes across every member piece,
	// cached at construction so this segment can itself act as a Piece one
	// level up without re-walking its members.
	High float64
	Low  float64

	Prev SegmentHandle
	Next SegmentHandle
}
