package chananalyzer

import (
	"math"
	"strconv"
	"strings"

	"github.com/chanstruct/chanstruct/chanmodel"
)

// CandleCSVOptions controls precision of the rendered price columns.
type CandleCSVOptions struct {
	// PricePrecision is the number of decimal places. PrecisionAuto picks
	// one from the candle range; PrecisionRaw keeps the full float64 text.
	PricePrecision int
}

const (
	// PrecisionAuto derives precision from the largest price seen.
	PrecisionAuto = math.MinInt32
	// PrecisionRaw keeps strconv's shortest round-trippable representation.
	PrecisionRaw = -1
)

// CandleCSV renders the snapshot's merged candles as CSV, one row per
// merged candle, ordered oldest first.
func (s Snapshot) CandleCSV(opts CandleCSVOptions) string {
	if len(s.Candles) == 0 {
		return ""
	}
	precision := opts.PricePrecision
	if precision == PrecisionAuto {
		precision = autoPrecisionFromCandles(s.Candles)
	}

	var b strings.Builder
	b.WriteString("idx,time_begin,time_end,high,low,fx,bars\n")
	for _, c := range s.Candles {
		b.WriteString(strconv.Itoa(c.Idx))
		b.WriteByte(',')
		b.WriteString(c.TimeBegin.Format("2006-01-02T15:04:05"))
		b.WriteByte(',')
		b.WriteString(c.TimeEnd.Format("2006-01-02T15:04:05"))
		b.WriteByte(',')
		b.WriteString(formatPrice(c.High, precision))
		b.WriteByte(',')
		b.WriteString(formatPrice(c.Low, precision))
		b.WriteByte(',')
		b.WriteString(fxStr(c.Fx))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(len(c.Bars)))
		b.WriteByte('\n')
	}
	return b.String()
}

func autoPrecisionFromCandles(candles []chanmodel.MergedCandle) int {
	maxVal := 0.0
	for _, c := range candles {
		for _, v := range []float64{c.High, c.Low} {
			if abs := math.Abs(v); abs > maxVal {
				maxVal = abs
			}
		}
	}
	switch {
	case maxVal >= 1000:
		return 1
	case maxVal >= 100:
		return 2
	default:
		return PrecisionRaw
	}
}

func formatPrice(value float64, precision int) string {
	if precision == PrecisionRaw {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	s := strconv.FormatFloat(value, 'f', precision, 64)
	if precision > 0 {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
