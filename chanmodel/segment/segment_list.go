// Package segment implements the characteristic-sequence state machine
// that groups strokes (or, one level up, segments) into segments, per the
// "chan" algorithm. The two historical algorithm variants are not
// implemented; chanconfig rejects them at construction time.
package segment

import (
	"github.com/chanstruct/chanstruct/chanconfig"
	"github.com/chanstruct/chanstruct/chanerr"
	"github.com/chanstruct/chanstruct/chanmodel"
)

// Piece is the minimal view of a stroke (or a lower-level segment, when
// this package is reused one level up) that the characteristic-sequence
// machine needs: a direction and a price range.
type Piece = chanmodel.Piece

// List is the segment arena for one level of analysis.
type List struct {
	segments []chanmodel.Segment
}

func New() *List { return &List{} }

func (l *List) Len() int { return len(l.segments) }

func (l *List) Get(h chanmodel.SegmentHandle) *chanmodel.Segment {
	if h < 0 || int(h) >= len(l.segments) {
		return nil
	}
	return &l.segments[h]
}

func (l *List) All() []chanmodel.Segment { return l.segments }

// Recompute rebuilds the segment list from scratch given the current
// ordered list of confirmed pieces (strokes or, recursively, segments).
// Segments are a function of the confirmed piece sequence alone, so a full
// rebuild on every stroke-list change is both simpler and safer than
// incremental bookkeeping given trailing revisions can invalidate an
// arbitrary suffix.
func (l *List) Recompute(pieces []Piece, cfg chanconfig.Config) error {
	if cfg.SegAlgo != chanmodel.SegAlgoChan {
		return chanerr.New(chanerr.ParaError, "only the chan segment algorithm is implemented")
	}
	l.segments = l.segments[:0]
	if len(pieces) == 0 {
		return nil
	}

	start := 0
	for start < len(pieces) {
		end, ok := findSegmentEnd(pieces, start)
		if !ok {
			break
		}
		l.appendSegment(pieces, start, end)
		start = end
	}

	if start < len(pieces)-1 {
		l.appendLeftSegment(pieces, start, cfg.LeftMethod)
	}
	return nil
}

func (l *List) appendSegment(pieces []Piece, start, end int) {
	members := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		members = append(members, i)
	}
	prev := chanmodel.NoSegment
	if n := len(l.segments); n > 0 {
		prev = chanmodel.SegmentHandle(n - 1)
	}
	hi, lo := rangeOf(pieces, start, end)
	seg := chanmodel.Segment{
		Idx:       len(l.segments),
		Dir:       pieces[start].Dir,
		Begin:     start,
		End:       end,
		Members:   members,
		Confirmed: true,
		High:      hi,
		Low:       lo,
		Prev:      prev,
		Next:      chanmodel.NoSegment,
	}
	l.segments = append(l.segments, seg)
	if prev != chanmodel.NoSegment {
		l.segments[prev].Next = chanmodel.SegmentHandle(len(l.segments) - 1)
	}
}

// appendLeftSegment packs the trailing, not-yet-confirmed strokes into a
// provisional segment per left_method: "all" covers back to `start`
// (typically 0 for the very first, still-forming segment), "peak" covers
// only back to the most extreme same-direction piece.
func (l *List) appendLeftSegment(pieces []Piece, start int, method chanmodel.LeftSegMethod) {
	begin := start
	if method == chanmodel.LeftSegPeak {
		begin = peakBoundary(pieces, start)
	}
	if begin >= len(pieces)-1 {
		return
	}
	members := make([]int, 0, len(pieces)-begin)
	for i := begin; i < len(pieces); i++ {
		members = append(members, i)
	}
	prev := chanmodel.NoSegment
	if n := len(l.segments); n > 0 {
		prev = chanmodel.SegmentHandle(n - 1)
	}
	hi, lo := rangeOf(pieces, begin, len(pieces)-1)
	seg := chanmodel.Segment{
		Idx:       len(l.segments),
		Dir:       pieces[begin].Dir,
		Begin:     begin,
		End:       len(pieces) - 1,
		Members:   members,
		Confirmed: false,
		High:      hi,
		Low:       lo,
		Prev:      prev,
		Next:      chanmodel.NoSegment,
	}
	l.segments = append(l.segments, seg)
	if prev != chanmodel.NoSegment {
		l.segments[prev].Next = chanmodel.SegmentHandle(len(l.segments) - 1)
	}
}

func rangeOf(pieces []Piece, from, to int) (hi, lo float64) {
	hi, lo = pieces[from].High, pieces[from].Low
	for i := from + 1; i <= to; i++ {
		hi = max(hi, pieces[i].High)
		lo = min(lo, pieces[i].Low)
	}
	return hi, lo
}

func peakBoundary(pieces []Piece, start int) int {
	dir := pieces[start].Dir
	best := start
	for i := start; i < len(pieces); i++ {
		if pieces[i].Dir != dir {
			continue
		}
		if dir == chanmodel.DirUp && pieces[i].High > pieces[best].High {
			best = i
		}
		if dir == chanmodel.DirDown && pieces[i].Low < pieces[best].Low {
			best = i
		}
	}
	return best
}

type charElem struct {
	high, low    float64
	dir          chanmodel.CandleDir
	lastPieceIdx int
}

// findSegmentEnd scans forward from start, building the anti-parallel
// characteristic sequence and testing it for a fractal of the opposite
// direction to pieces[start].Dir. It returns the index (into pieces) of
// the stroke/segment that closes the new segment.
func findSegmentEnd(pieces []Piece, start int) (int, bool) {
	dir := pieces[start].Dir
	var seq []charElem

	for i := start + 1; i < len(pieces); i++ {
		if pieces[i].Dir == dir {
			continue
		}
		seq = mergeChar(seq, pieces[i], i)
		if len(seq) < 3 {
			continue
		}
		n := len(seq)
		a, m, b := seq[n-3], seq[n-2], seq[n-1]
		var fractal bool
		if dir == chanmodel.DirUp {
			fractal = m.high > a.high && m.high > b.high
		} else {
			fractal = m.low < a.low && m.low < b.low
		}
		if !fractal {
			continue
		}
		// m's last constituent is itself an opposite-direction piece; the
		// segment actually closes one piece earlier, on the same-direction
		// piece just before the reversal's extreme pullback begins.
		end := m.lastPieceIdx - 1
		if end-start+1 < 3 || (end-start+1)%2 == 0 {
			continue
		}
		if pieces[end].Dir != dir {
			continue
		}
		return end, true
	}
	return 0, false
}

// mergeChar folds a new anti-parallel piece into the characteristic
// sequence using the same inclusion-merge rule as the candle chain.
func mergeChar(seq []charElem, p Piece, pieceIdx int) []charElem {
	e := charElem{high: p.High, low: p.Low, lastPieceIdx: pieceIdx}
	if len(seq) == 0 {
		e.dir = chanmodel.CandleUp
		return append(seq, e)
	}
	tail := seq[len(seq)-1]
	included := (tail.high >= e.high && tail.low <= e.low) || (e.high >= tail.high && e.low <= tail.low)
	if !included {
		if e.high > tail.high {
			e.dir = chanmodel.CandleUp
		} else {
			e.dir = chanmodel.CandleDown
		}
		return append(seq, e)
	}
	if tail.dir == chanmodel.CandleDown {
		tail.high = min(tail.high, e.high)
		tail.low = min(tail.low, e.low)
	} else {
		tail.high = max(tail.high, e.high)
		tail.low = max(tail.low, e.low)
	}
	tail.lastPieceIdx = pieceIdx
	seq[len(seq)-1] = tail
	return seq
}
