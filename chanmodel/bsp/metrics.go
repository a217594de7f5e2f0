// Package bsp classifies stroke/segment endpoints as typed buy/sell
// points and computes the MACD-style divergence metrics that justify the
// classification.
package bsp

import (
	"github.com/markcheno/go-talib"

	"github.com/chanstruct/chanstruct/chanmodel"
)

// Window is the bar-level data backing one stroke or segment, used to
// compute its macd_algo metric.
type Window struct {
	Closes     []float64
	Volumes    []float64
	Amounts    []float64
	Turnrates  []float64
}

// Metric computes the configured divergence metric over one piece's bar
// window. MACD/RSI-derived variants use go-talib over the window's closes;
// the trade-metric variants (volume/amount/turnrate and their averages)
// reduce the corresponding Bar field directly.
func Metric(w Window, algo chanmodel.MacdAlgo) float64 {
	switch algo {
	case chanmodel.MacdVolume:
		return sum(w.Volumes)
	case chanmodel.MacdAmount:
		return sum(w.Amounts)
	case chanmodel.MacdVolumeAvg:
		return avg(w.Volumes)
	case chanmodel.MacdAmountAvg:
		return avg(w.Amounts)
	case chanmodel.MacdTurnrateAvg:
		return avg(w.Turnrates)
	case chanmodel.MacdAmp:
		if len(w.Closes) == 0 {
			return 0
		}
		hi, lo := w.Closes[0], w.Closes[0]
		for _, c := range w.Closes {
			hi = max(hi, c)
			lo = min(lo, c)
		}
		if lo == 0 {
			return 0
		}
		return (hi - lo) / lo
	case chanmodel.MacdRsi:
		if len(w.Closes) < 2 {
			return 0
		}
		rsi := talib.Rsi(w.Closes, min(14, len(w.Closes)-1))
		return rsi[len(rsi)-1]
	default:
		return macdMetric(w.Closes, algo)
	}
}

// macdMetric computes the area/peak/fullArea/diff/slope family from the
// standard 12/26/9 MACD over the window's closes: area/peak/fullArea from
// the histogram, diff/slope from the DIF line.
func macdMetric(closes []float64, algo chanmodel.MacdAlgo) float64 {
	if len(closes) < 35 {
		return 0
	}
	dif, _, hist := talib.Macd(closes, 12, 26, 9)

	switch algo {
	case chanmodel.MacdPeak:
		var peak float64
		for _, h := range hist {
			if abs(h) > peak {
				peak = abs(h)
			}
		}
		return peak
	case chanmodel.MacdFullArea:
		var area float64
		for _, h := range hist {
			area += abs(h)
		}
		return area
	case chanmodel.MacdDiff:
		// diff/slope are specified on DIF (the MACD line itself), not the
		// histogram — unlike area/peak/fullArea, which are histogram-based.
		return abs(dif[len(dif)-1])
	case chanmodel.MacdSlope:
		return slope(dif)
	default: // MacdArea: same-sign-only accumulation
		sign := 0.0
		if len(hist) > 0 {
			if hist[len(hist)-1] >= 0 {
				sign = 1
			} else {
				sign = -1
			}
		}
		var area float64
		for _, h := range hist {
			if sign >= 0 && h >= 0 {
				area += h
			} else if sign < 0 && h < 0 {
				area += -h
			}
		}
		return area
	}
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

func avg(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return sum(v) / float64(len(v))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func slope(v []float64) float64 {
	n := len(v)
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range v {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	N := float64(n)
	denom := N*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return abs((N*sumXY - sumX*sumY) / denom)
}
