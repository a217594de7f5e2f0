package chanmodel

// Stroke is a directed connection between two opposite-type fractals that
// satisfies the stroke predicate.
type Stroke struct {
	Idx        int
	Dir        Dir
	Begin      CandleHandle
	End        CandleHandle
	Confirmed  bool
	Type       BiType
	SureEnds   []CandleHandle // history of candidate ends while unconfirmed
	Seg        SegmentHandle  // owning segment; stroke.List sets NoSegment and nothing updates it
	Virtual    bool

	Prev StrokeHandle
	Next StrokeHandle
}
