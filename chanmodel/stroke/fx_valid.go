package stroke

import (
	"github.com/chanstruct/chanstruct/chanmodel"
	"github.com/chanstruct/chanstruct/chanmodel/candle"
)

// checkFxValid is the fractal-validity predicate gating stroke
// confirmation: self is the earlier fractal candle (type selfFx), item2 is
// the later candle being tested as the opposite-type endpoint. forVirtual
// drops the "next neighbor" term from the aggregates, since a virtual
// (tail) candle has no next yet.
func checkFxValid(chain *candle.Chain, self, item2 chanmodel.CandleHandle, selfFx chanmodel.FxType, method chanmodel.FxCheckMethod, forVirtual bool) bool {
	s := chain.Get(self)
	i2 := chain.Get(item2)

	sPre, sHasPre := neighbor(chain, self, false)
	sNext, sHasNext := neighbor(chain, self, true)
	i2Pre, i2HasPre := neighbor(chain, item2, false)
	i2Next, i2HasNext := neighbor(chain, item2, true)
	if forVirtual {
		i2HasNext = false
	}

	if selfFx == chanmodel.FxTop {
		item2High := aggHigh(method, i2Pre, i2HasPre, *i2, i2Next, i2HasNext)
		selfLow := aggLow(method, sPre, sHasPre, *s, sNext, sHasNext)
		switch method {
		case chanmodel.FxCheckLoss:
			return s.High > i2.High && i2.Low < s.Low
		case chanmodel.FxCheckTotally:
			return s.Low > item2High
		default: // strict, half
			return s.High > item2High && i2.Low < selfLow
		}
	}

	// selfFx == Bottom
	item2Low := aggLow(method, i2Pre, i2HasPre, *i2, i2Next, i2HasNext)
	selfHigh := aggHigh(method, sPre, sHasPre, *s, sNext, sHasNext)
	if method == chanmodel.FxCheckHalf {
		// half mirrors the Top case: item2 blends pre+self, self blends self+next
		item2Low = i2.Low
		if i2HasPre {
			item2Low = min(item2Low, i2Pre.Low)
		}
		selfHigh = s.High
		if sHasNext {
			selfHigh = max(selfHigh, sNext.High)
		}
	}
	switch method {
	case chanmodel.FxCheckLoss:
		return s.Low < i2.Low && i2.High > s.High
	case chanmodel.FxCheckTotally:
		return s.High < item2Low
	default:
		return s.Low < item2Low && i2.High > selfHigh
	}
}

func neighbor(chain *candle.Chain, h chanmodel.CandleHandle, next bool) (chanmodel.MergedCandle, bool) {
	c := chain.Get(h)
	var nh chanmodel.CandleHandle
	if next {
		nh = c.Next
	} else {
		nh = c.Prev
	}
	n := chain.Get(nh)
	if n == nil {
		return chanmodel.MergedCandle{}, false
	}
	return *n, true
}

// aggHigh aggregates the "competing high" near a candle per method: loss
// uses only the candle itself; half blends pre+self; strict/totally blend
// pre+self+next (next dropped when absent, e.g. forVirtual).
func aggHigh(method chanmodel.FxCheckMethod, pre chanmodel.MergedCandle, hasPre bool, self chanmodel.MergedCandle, next chanmodel.MergedCandle, hasNext bool) float64 {
	switch method {
	case chanmodel.FxCheckLoss:
		return self.High
	case chanmodel.FxCheckHalf:
		h := self.High
		if hasPre {
			h = max(h, pre.High)
		}
		return h
	default: // strict, totally
		h := self.High
		if hasPre {
			h = max(h, pre.High)
		}
		if hasNext {
			h = max(h, next.High)
		}
		return h
	}
}

func aggLow(method chanmodel.FxCheckMethod, pre chanmodel.MergedCandle, hasPre bool, self chanmodel.MergedCandle, next chanmodel.MergedCandle, hasNext bool) float64 {
	switch method {
	case chanmodel.FxCheckLoss:
		return self.Low
	case chanmodel.FxCheckHalf:
		l := self.Low
		if hasNext {
			l = min(l, next.Low)
		}
		return l
	default: // strict, totally
		l := self.Low
		if hasPre {
			l = min(l, pre.Low)
		}
		if hasNext {
			l = min(l, next.Low)
		}
		return l
	}
}
