// Package stroke implements the stroke (bi) predicate and the incremental
// state machine that turns confirmed fractals into directed strokes,
// including peak-extension of an unconfirmed stroke's end and a single
// provisional (virtual) stroke attached to the live candle-chain tail.
package stroke

import (
	"github.com/chanstruct/chanstruct/chanconfig"
	"github.com/chanstruct/chanstruct/chanmodel"
	"github.com/chanstruct/chanstruct/chanmodel/candle"
)

// List is the stroke arena for one level of analysis.
type List struct {
	strokes []chanmodel.Stroke
	pending []chanmodel.CandleHandle // fractal candles buffered before the first stroke
}

func New() *List { return &List{} }

func (l *List) Len() int { return len(l.strokes) }

func (l *List) Get(h chanmodel.StrokeHandle) *chanmodel.Stroke {
	if h < 0 || int(h) >= len(l.strokes) {
		return nil
	}
	return &l.strokes[h]
}

func (l *List) Last() chanmodel.StrokeHandle {
	if len(l.strokes) == 0 {
		return chanmodel.NoStroke
	}
	return chanmodel.StrokeHandle(len(l.strokes) - 1)
}

// LastConfirmed returns the most recent confirmed stroke, or NoStroke.
func (l *List) LastConfirmed() chanmodel.StrokeHandle {
	for i := len(l.strokes) - 1; i >= 0; i-- {
		if l.strokes[i].Confirmed && !l.strokes[i].Virtual {
			return chanmodel.StrokeHandle(i)
		}
	}
	return chanmodel.NoStroke
}

// OnFractalCandle feeds a candle whose fractal tag just became known (or
// changed) into the stroke state machine. It returns whether the stroke
// list changed.
func (l *List) OnFractalCandle(chain *candle.Chain, cfg chanconfig.Config, c chanmodel.CandleHandle) (bool, error) {
	cm := chain.Get(c)
	if cm == nil || cm.Fx == chanmodel.FxUnknown {
		return false, nil
	}

	// drop any trailing virtual stroke before reasoning about confirmed state
	l.dropVirtual()

	if len(l.strokes) == 0 {
		return l.tryFirstStroke(chain, cfg, c, cm.Fx), nil
	}

	last := &l.strokes[len(l.strokes)-1]
	endCandle := chain.Get(last.End)

	if cm.Fx == endCandle.Fx {
		if !l.canExtend(chain, cfg, last, c) {
			return false, nil
		}
		last.SureEnds = append(last.SureEnds, last.End)
		last.End = c
		return true, nil
	}

	if !l.checkPredicate(chain, cfg, last.End, c, endCandle.Fx) {
		return false, nil
	}
	last.Confirmed = true
	l.addStroke(last.End, c, endCandle.Fx)
	return true, nil
}

func (l *List) tryFirstStroke(chain *candle.Chain, cfg chanconfig.Config, c chanmodel.CandleHandle, fx chanmodel.FxType) bool {
	cm := chain.Get(c)
	for _, q := range l.pending {
		qm := chain.Get(q)
		if qm.Fx == chanmodel.FxUnknown || qm.Fx == fx {
			continue
		}
		if l.checkPredicate(chain, cfg, q, c, qm.Fx) {
			l.pending = nil
			l.addStroke(q, c, qm.Fx)
			return true
		}
	}
	_ = cm
	l.pending = append(l.pending, c)
	return false
}

func (l *List) addStroke(begin, end chanmodel.CandleHandle, beginFx chanmodel.FxType) {
	dir := chanmodel.DirUp
	if beginFx == chanmodel.FxTop {
		dir = chanmodel.DirDown
	}
	prev := chanmodel.NoStroke
	if len(l.strokes) > 0 {
		prev = chanmodel.StrokeHandle(len(l.strokes) - 1)
	}
	s := chanmodel.Stroke{
		Idx:   len(l.strokes),
		Dir:   dir,
		Begin: begin,
		End:   end,
		Prev:  prev,
		Next:  chanmodel.NoStroke,
		Seg:   chanmodel.NoSegment,
	}
	l.strokes = append(l.strokes, s)
	if prev != chanmodel.NoStroke {
		l.strokes[prev].Next = chanmodel.StrokeHandle(len(l.strokes) - 1)
	}
}

func (l *List) dropVirtual() {
	if n := len(l.strokes); n > 0 && l.strokes[n-1].Virtual {
		l.strokes = l.strokes[:n-1]
	}
}

// SyncVirtual attaches (or refreshes) a provisional stroke ending at the
// current chain tail, per the "virtual stroke" rule: removed or promoted on
// the next candle. Before any stroke exists it starts at the latest pending
// fractal candle; otherwise it starts at the last stroke's end only when
// that stroke is confirmed. The newest real stroke stays unconfirmed until
// a successor is added, so once a real stroke exists no virtual stroke is
// attached.
func (l *List) SyncVirtual(chain *candle.Chain, cfg chanconfig.Config) {
	l.dropVirtual()

	tail := chain.Last()
	if tail == chanmodel.NoCandle {
		return
	}

	var beginHandle chanmodel.CandleHandle
	var beginFx chanmodel.FxType
	if len(l.strokes) == 0 {
		if len(l.pending) == 0 {
			return
		}
		beginHandle = l.pending[len(l.pending)-1]
		beginFx = chain.Get(beginHandle).Fx
	} else {
		last := &l.strokes[len(l.strokes)-1]
		endCandle := chain.Get(last.End)
		if !last.Confirmed {
			return
		}
		beginHandle = last.End
		beginFx = endCandle.Fx
	}
	if beginHandle == tail {
		return
	}
	if l.checkPredicateVirtual(chain, cfg, beginHandle, tail, beginFx) {
		l.addStroke(beginHandle, tail, beginFx)
		n := len(l.strokes) - 1
		l.strokes[n].Confirmed = false
		l.strokes[n].Virtual = true
	}
}

// canExtend implements peak-extension: a still-unconfirmed stroke's end
// may move forward to a later candle of the same fractal type when doing
// so strictly improves the endpoint. With bi_end_is_peak the new end must
// also stay a genuine peak versus every intermediate candle; with
// bi_allow_sub_peak off, no extension happens once two strokes exist.
func (l *List) canExtend(chain *candle.Chain, cfg chanconfig.Config, last *chanmodel.Stroke, c chanmodel.CandleHandle) bool {
	if !cfg.BiAllowSubPeak && len(l.strokes) >= 2 {
		return false
	}
	e := chain.Get(last.End)
	cm := chain.Get(c)
	if last.Dir == chanmodel.DirUp {
		if !(cm.High > e.High) {
			return false
		}
	} else {
		if !(cm.Low < e.Low) {
			return false
		}
	}
	if cfg.BiEndIsPeak && !endIsPeak(chain, last.Begin, c, last.Dir) {
		return false
	}
	return true
}

// endIsPeak reports whether candle `end`'s price is not surpassed, in the
// stroke's direction, by any candle strictly between begin and end.
func endIsPeak(chain *candle.Chain, begin, end chanmodel.CandleHandle, dir chanmodel.Dir) bool {
	b := chain.Get(begin)
	e := chain.Get(end)
	for h := b.Next; h != chanmodel.NoCandle && h != end; h = chain.Get(h).Next {
		m := chain.Get(h)
		if dir == chanmodel.DirUp {
			if m.High > e.High {
				return false
			}
		} else {
			if m.Low < e.Low {
				return false
			}
		}
	}
	return true
}

// checkPredicate implements the stroke predicate P(A,B) for a confirmed
// pairing (both endpoints have a known next neighbor by the time this is
// called, except possibly at the very first/last candle of the stream).
func (l *List) checkPredicate(chain *candle.Chain, cfg chanconfig.Config, a, b chanmodel.CandleHandle, aFx chanmodel.FxType) bool {
	return l.predicate(chain, cfg, a, b, aFx, false)
}

func (l *List) checkPredicateVirtual(chain *candle.Chain, cfg chanconfig.Config, a, b chanmodel.CandleHandle, aFx chanmodel.FxType) bool {
	return l.predicate(chain, cfg, a, b, aFx, true)
}

func (l *List) predicate(chain *candle.Chain, cfg chanconfig.Config, a, b chanmodel.CandleHandle, aFx chanmodel.FxType, forVirtual bool) bool {
	ac := chain.Get(a)
	bc := chain.Get(b)
	if ac == nil || bc == nil || a == b {
		return false
	}

	gap := gapBetween(chain, a, b, cfg.GapAsKl)
	if gap < 1 {
		return false
	}

	// directional ordering of prices + no intermediate candle beats both ends
	if aFx == chanmodel.FxBottom {
		if !(bc.High > ac.Low) {
			return false
		}
		if !pathDominance(chain, a, b, chanmodel.DirUp) {
			return false
		}
	} else {
		if !(bc.Low < ac.High) {
			return false
		}
		if !pathDominance(chain, a, b, chanmodel.DirDown) {
			return false
		}
	}

	return checkFxValid(chain, a, b, aFx, cfg.BiFxCheck, forVirtual)
}

// gapBetween counts intermediate candles between a and b; if gapAsKl is
// set, a price gap between any adjacent pair along the path counts as one
// additional virtual candle.
func gapBetween(chain *candle.Chain, a, b chanmodel.CandleHandle, gapAsKl bool) int {
	ac, bc := chain.Get(a), chain.Get(b)
	count := bc.Idx - ac.Idx - 1
	if gapAsKl {
		prev := chain.Get(a)
		for h := ac.Next; h != chanmodel.NoCandle && h != b; h = chain.Get(h).Next {
			cur := chain.Get(h)
			if !chanmodel.HasOverlap(cur.Low, cur.High, prev.Low, prev.High, true) {
				count++
			}
			prev = cur
		}
	}
	return count
}

// pathDominance verifies that, walking strictly between a and b, no
// intermediate candle exceeds b (the later endpoint) in the stroke's
// direction, and a itself remains the strongest competing extreme on its
// side.
func pathDominance(chain *candle.Chain, a, b chanmodel.CandleHandle, dir chanmodel.Dir) bool {
	ac := chain.Get(a)
	bc := chain.Get(b)
	for h := ac.Next; h != chanmodel.NoCandle && h != b; h = chain.Get(h).Next {
		m := chain.Get(h)
		if dir == chanmodel.DirUp {
			if m.Low < ac.Low || m.High > bc.High {
				return false
			}
		} else {
			if m.High > ac.High || m.Low < bc.Low {
				return false
			}
		}
	}
	return true
}
