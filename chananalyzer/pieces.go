package chananalyzer

import (
	"github.com/chanstruct/chanstruct/chanmodel"
	"github.com/chanstruct/chanstruct/chanmodel/bsp"
	"github.com/chanstruct/chanstruct/chanmodel/candle"
	"github.com/chanstruct/chanstruct/chanmodel/segment"
	"github.com/chanstruct/chanstruct/chanmodel/stroke"
)

// confirmedStrokes returns the handles of every confirmed, non-virtual
// stroke in order.
func confirmedStrokes(sl *stroke.List) []chanmodel.StrokeHandle {
	out := make([]chanmodel.StrokeHandle, 0, sl.Len())
	for i := 0; i < sl.Len(); i++ {
		s := sl.Get(chanmodel.StrokeHandle(i))
		if s.Confirmed && !s.Virtual {
			out = append(out, chanmodel.StrokeHandle(i))
		}
	}
	return out
}

func strokePiece(chain *candle.Chain, s *chanmodel.Stroke) chanmodel.Piece {
	begin := chain.Get(s.Begin)
	end := chain.Get(s.End)
	if s.Dir == chanmodel.DirUp {
		return chanmodel.Piece{Dir: s.Dir, High: end.High, Low: begin.Low}
	}
	return chanmodel.Piece{Dir: s.Dir, High: begin.High, Low: end.Low}
}

func strokePieces(chain *candle.Chain, sl *stroke.List, handles []chanmodel.StrokeHandle) []segment.Piece {
	out := make([]segment.Piece, 0, len(handles))
	for _, h := range handles {
		out = append(out, strokePiece(chain, sl.Get(h)))
	}
	return out
}

func segmentPieces(sgl *segment.List) []segment.Piece {
	segs := sgl.All()
	out := make([]segment.Piece, 0, len(segs))
	for i := range segs {
		s := &segs[i]
		out = append(out, chanmodel.Piece{Dir: s.Dir, High: s.High, Low: s.Low})
	}
	return out
}

// bspStrokePieces gathers, for each confirmed stroke, the bar window
// spanning its begin and end candles plus its end price/time, so the bsp
// package can compute macd_algo metrics and classify endpoints.
func bspStrokePieces(chain *candle.Chain, sl *stroke.List, handles []chanmodel.StrokeHandle) []bsp.Piece {
	out := make([]bsp.Piece, 0, len(handles))
	for _, h := range handles {
		s := sl.Get(h)
		out = append(out, bsp.Piece{
			Piece:    strokePiece(chain, s),
			Window:   barWindow(chain, s.Begin, s.End),
			EndPrice: endPrice(chain, s),
			EndTime:  chain.Get(s.End).TimeEnd.Unix(),
		})
	}
	return out
}

// bspSegmentPieces gathers, for each segment, the bar window spanning its
// first to last member stroke's candles, for segment-level bsp
// classification. seg.Begin/seg.End are positional indices into
// strokeHandles (the confirmed-stroke slice segs.Recompute was built
// from), not raw arena handles.
func bspSegmentPieces(chain *candle.Chain, sl *stroke.List, sgl *segment.List, strokeHandles []chanmodel.StrokeHandle) []bsp.Piece {
	segs := sgl.All()
	out := make([]bsp.Piece, 0, len(segs))
	for i := range segs {
		s := &segs[i]
		if s.Begin < 0 || s.End < 0 || s.End >= len(strokeHandles) {
			continue
		}
		beginStroke := sl.Get(strokeHandles[s.Begin])
		endStroke := sl.Get(strokeHandles[s.End])
		out = append(out, bsp.Piece{
			Piece:    chanmodel.Piece{Dir: s.Dir, High: s.High, Low: s.Low},
			Window:   barWindow(chain, beginStroke.Begin, endStroke.End),
			EndPrice: endPrice(chain, endStroke),
			EndTime:  chain.Get(endStroke.End).TimeEnd.Unix(),
		})
	}
	return out
}

func endPrice(chain *candle.Chain, s *chanmodel.Stroke) float64 {
	end := chain.Get(s.End)
	if s.Dir == chanmodel.DirUp {
		return end.High
	}
	return end.Low
}

func barWindow(chain *candle.Chain, begin, end chanmodel.CandleHandle) bsp.Window {
	var w bsp.Window
	for h := begin; h != chanmodel.NoCandle; h = chain.Get(h).Next {
		c := chain.Get(h)
		for _, b := range c.Bars {
			w.Closes = append(w.Closes, b.Close)
			w.Volumes = append(w.Volumes, b.Volume)
			w.Amounts = append(w.Amounts, b.Turnover)
			w.Turnrates = append(w.Turnrates, b.Turnrate)
		}
		if h == end {
			break
		}
	}
	return w
}
