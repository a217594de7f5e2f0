// Package candle implements the merged-candle chain: the inclusion-rule
// merge of raw bars into MergedCandles, and fractal tagging over the last
// three candles of the chain.
package candle

import (
	"github.com/chanstruct/chanstruct/chanerr"
	"github.com/chanstruct/chanstruct/chanmodel"
)

// Chain is the ordered merged-candle arena. It owns every MergedCandle it
// creates; callers reference candles only by chanmodel.CandleHandle.
type Chain struct {
	candles []chanmodel.MergedCandle
}

func New() *Chain {
	return &Chain{}
}

func (c *Chain) Len() int { return len(c.candles) }

func (c *Chain) Get(h chanmodel.CandleHandle) *chanmodel.MergedCandle {
	if h < 0 || int(h) >= len(c.candles) {
		return nil
	}
	return &c.candles[h]
}

func (c *Chain) Last() chanmodel.CandleHandle {
	if len(c.candles) == 0 {
		return chanmodel.NoCandle
	}
	return chanmodel.CandleHandle(len(c.candles) - 1)
}

// PushResult tells the caller what happened to the chain and, if a candle's
// fractal assignment changed, which candle.
type PushResult struct {
	Created      bool
	Combined     bool
	Refreshed    bool
	FractalMoved chanmodel.CandleHandle // NoCandle if fractal state didn't change
}

// Push folds one bar into the chain, applying the duplicate-timestamp
// refresh rule before the ordinary merge rule, and re-tags the fractal on
// the middle one of the last three candles whenever a new candle is appended.
func (c *Chain) Push(bar chanmodel.Bar) (PushResult, error) {
	if err := bar.Validate(); err != nil {
		return PushResult{}, err
	}

	if len(c.candles) > 0 {
		tail := &c.candles[len(c.candles)-1]
		if n := len(tail.Bars); n > 0 && tail.Bars[n-1].Time.Equal(bar.Time) {
			tail.Bars[n-1] = bar
			c.refreshTail(tail)
			return PushResult{Refreshed: true}, nil
		}
		if bar.Time.Before(tail.TimeEnd) {
			return PushResult{}, chanerr.New(chanerr.KLTimeInconsistent, "bar time goes backwards")
		}
	}

	if len(c.candles) == 0 {
		c.candles = append(c.candles, chanmodel.MergedCandle{
			Idx:       0,
			Dir:       chanmodel.CandleUp,
			High:      bar.High,
			Low:       bar.Low,
			TimeBegin: bar.Time,
			TimeEnd:   bar.Time,
			Bars:      []chanmodel.Bar{bar},
			Prev:      chanmodel.NoCandle,
			Next:      chanmodel.NoCandle,
		})
		return PushResult{Created: true, FractalMoved: chanmodel.NoCandle}, nil
	}

	tailIdx := len(c.candles) - 1
	tail := &c.candles[tailIdx]
	included := tail.Contains(candleFromBar(bar)) || candleFromBar(bar).Contains(*tail)

	if included {
		c.mergeInto(tail, bar)
		return PushResult{Combined: true}, nil
	}

	dir := chanmodel.CandleUp
	if bar.High < tail.High {
		dir = chanmodel.CandleDown
	}
	newCandle := chanmodel.MergedCandle{
		Idx:       tailIdx + 1,
		Dir:       dir,
		High:      bar.High,
		Low:       bar.Low,
		TimeBegin: bar.Time,
		TimeEnd:   bar.Time,
		Bars:      []chanmodel.Bar{bar},
		Prev:      chanmodel.CandleHandle(tailIdx),
		Next:      chanmodel.NoCandle,
	}
	c.candles = append(c.candles, newCandle)
	newIdx := len(c.candles) - 1
	c.candles[tailIdx].Next = chanmodel.CandleHandle(newIdx)

	moved := c.retagFractal()
	return PushResult{Created: true, FractalMoved: moved}, nil
}

func candleFromBar(b chanmodel.Bar) chanmodel.MergedCandle {
	return chanmodel.MergedCandle{High: b.High, Low: b.Low}
}

// mergeInto folds bar into tail per the directional merge rule: once a
// candle has an established Up/Down direction (inherited from its
// predecessor when it was first created), further merges push high/low the
// same way, producing a monotone envelope instead of flip-flopping.
func (c *Chain) mergeInto(tail *chanmodel.MergedCandle, bar chanmodel.Bar) {
	switch tail.Dir {
	case chanmodel.CandleDown:
		tail.High = min(tail.High, bar.High)
		tail.Low = min(tail.Low, bar.Low)
	default:
		tail.High = max(tail.High, bar.High)
		tail.Low = max(tail.Low, bar.Low)
	}
	tail.Bars = append(tail.Bars, bar)
	tail.TimeEnd = bar.Time
}

// refreshTail recomputes a merged candle's high/low after its last bar was
// overwritten in place by a duplicate-timestamp update, folding its bars
// with the same directional rule mergeInto applies.
func (c *Chain) refreshTail(tail *chanmodel.MergedCandle) {
	hi, lo := tail.Bars[0].High, tail.Bars[0].Low
	for _, b := range tail.Bars[1:] {
		if tail.Dir == chanmodel.CandleDown {
			hi = min(hi, b.High)
			lo = min(lo, b.Low)
		} else {
			hi = max(hi, b.High)
			lo = max(lo, b.Low)
		}
	}
	tail.High, tail.Low = hi, lo
	tail.TimeEnd = tail.Bars[len(tail.Bars)-1].Time
}

// retagFractal re-evaluates the fractal on the second-to-last candle, the
// middle of the last three (the only one whose neighbors could have just
// changed), and reports its handle if the tag changed.
func (c *Chain) retagFractal() chanmodel.CandleHandle {
	n := len(c.candles)
	if n < 3 {
		return chanmodel.NoCandle
	}
	a, m, b := &c.candles[n-3], &c.candles[n-2], &c.candles[n-1]
	prev := m.Fx
	switch {
	case m.High > a.High && m.High > b.High:
		m.Fx = chanmodel.FxTop
	case m.Low < a.Low && m.Low < b.Low:
		m.Fx = chanmodel.FxBottom
	default:
		m.Fx = chanmodel.FxUnknown
	}
	if m.Fx != prev {
		return chanmodel.CandleHandle(n - 2)
	}
	return chanmodel.NoCandle
}
