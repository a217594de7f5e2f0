// Package chanmodel defines the domain types shared across the structural
// pipeline: bars, merged candles, fractals, strokes, segments, pivots and
// buy/sell points, plus their directional and configuration enums.
package chanmodel

import "fmt"

// KLType is the input bar granularity.
type KLType int

const (
	K1S KLType = iota
	K3S
	K5S
	K10S
	K15S
	K20S
	K30S
	K1M
	K3M
	K5M
	K10M
	K15M
	K30M
	K60M
	KDay
	KWeek
	KMonth
	KQuarter
	KYear
)

// Dir is a structural direction: up or down.
type Dir int

const (
	DirUp Dir = iota
	DirDown
)

func (d Dir) Opposite() Dir {
	if d == DirUp {
		return DirDown
	}
	return DirUp
}

func (d Dir) String() string {
	if d == DirUp {
		return "up"
	}
	return "down"
}

// CandleDir is the merge-rule direction of a merged candle: up, down, or
// (transiently, mid-merge) included/combine.
type CandleDir int

const (
	CandleUp CandleDir = iota
	CandleDown
	CandleIncluded
	CandleCombine
)

// FxType is a fractal classification.
type FxType int

const (
	FxUnknown FxType = iota
	FxTop
	FxBottom
)

func (f FxType) Opposite() FxType {
	switch f {
	case FxTop:
		return FxBottom
	case FxBottom:
		return FxTop
	default:
		return FxUnknown
	}
}

// BiType records why a stroke was accepted (diagnostic only).
type BiType int

const (
	BiUnknown BiType = iota
	BiStrict
	BiSubValue
	BiTiaokongThred
	BiDaheng
	BiTuibi
	BiUnstrict
	BiTiaokongValue
)

// FxCheckMethod selects the fractal-validity predicate used by the stroke
// predicate.
type FxCheckMethod int

const (
	FxCheckStrict FxCheckMethod = iota
	FxCheckLoss
	FxCheckHalf
	FxCheckTotally
)

func ParseFxCheckMethod(s string) (FxCheckMethod, error) {
	switch s {
	case "strict":
		return FxCheckStrict, nil
	case "loss":
		return FxCheckLoss, nil
	case "half":
		return FxCheckHalf, nil
	case "totally":
		return FxCheckTotally, nil
	default:
		return 0, fmt.Errorf("unknown bi_fx_check value %q", s)
	}
}

// SegAlgo selects the segment-construction algorithm. Only "chan" is
// implemented; the other two historical variants are accepted for config
// compatibility but rejected at construction.
type SegAlgo int

const (
	SegAlgoChan SegAlgo = iota
	SegAlgoOnePlusOne
	SegAlgoBreak
)

func ParseSegAlgo(s string) (SegAlgo, error) {
	switch s {
	case "chan":
		return SegAlgoChan, nil
	case "1+1":
		return SegAlgoOnePlusOne, nil
	case "break":
		return SegAlgoBreak, nil
	default:
		return 0, fmt.Errorf("unknown seg_algo value %q", s)
	}
}

// LeftSegMethod controls how strokes before the first confirmed segment are
// packed into a provisional leading segment.
type LeftSegMethod int

const (
	LeftSegAll LeftSegMethod = iota
	LeftSegPeak
)

func ParseLeftSegMethod(s string) (LeftSegMethod, error) {
	switch s {
	case "all":
		return LeftSegAll, nil
	case "peak":
		return LeftSegPeak, nil
	default:
		return 0, fmt.Errorf("unknown left_method value %q", s)
	}
}

// ZSCombineMode selects which price band is tested when merging adjacent
// pivots.
type ZSCombineMode int

const (
	ZSCombineZS ZSCombineMode = iota
	ZSCombinePeak
)

func ParseZSCombineMode(s string) (ZSCombineMode, error) {
	switch s {
	case "zs", "":
		return ZSCombineZS, nil
	case "peak":
		return ZSCombinePeak, nil
	default:
		return 0, fmt.Errorf("unknown zs_combine_mode value %q", s)
	}
}

// MacdAlgo selects the divergence metric used by buy/sell-point
// classification.
type MacdAlgo int

const (
	MacdArea MacdAlgo = iota
	MacdPeak
	MacdFullArea
	MacdDiff
	MacdSlope
	MacdAmp
	MacdVolume
	MacdAmount
	MacdVolumeAvg
	MacdAmountAvg
	MacdTurnrateAvg
	MacdRsi
)

func (a MacdAlgo) String() string {
	switch a {
	case MacdArea:
		return "area"
	case MacdPeak:
		return "peak"
	case MacdFullArea:
		return "fullArea"
	case MacdDiff:
		return "diff"
	case MacdSlope:
		return "slope"
	case MacdAmp:
		return "amp"
	case MacdVolume:
		return "volume"
	case MacdAmount:
		return "amount"
	case MacdVolumeAvg:
		return "volumeAvg"
	case MacdAmountAvg:
		return "amountAvg"
	case MacdTurnrateAvg:
		return "turnrateAvg"
	case MacdRsi:
		return "rsi"
	default:
		return "?"
	}
}

func ParseMacdAlgo(s string) (MacdAlgo, error) {
	switch s {
	case "area":
		return MacdArea, nil
	case "peak":
		return MacdPeak, nil
	case "fullArea":
		return MacdFullArea, nil
	case "diff":
		return MacdDiff, nil
	case "slope":
		return MacdSlope, nil
	case "amp":
		return MacdAmp, nil
	case "volume":
		return MacdVolume, nil
	case "amount":
		return MacdAmount, nil
	case "volumeAvg":
		return MacdVolumeAvg, nil
	case "amountAvg":
		return MacdAmountAvg, nil
	case "turnrateAvg":
		return MacdTurnrateAvg, nil
	case "rsi":
		return MacdRsi, nil
	default:
		return 0, fmt.Errorf("unknown macd_algo value %q", s)
	}
}

// BspType is a buy/sell-point type tag.
type BspType int

const (
	BspT1 BspType = iota
	BspT1P
	BspT2
	BspT2S
	BspT3A
	BspT3B
)

func (t BspType) String() string {
	switch t {
	case BspT1:
		return "1"
	case BspT1P:
		return "1P"
	case BspT2:
		return "2"
	case BspT2S:
		return "2S"
	case BspT3A:
		return "3A"
	case BspT3B:
		return "3B"
	default:
		return "?"
	}
}

// MainType collapses a tag to its coarse 1/2/3 family, matching the
// original library's notion that 1P is a flavor of 1, 2S a flavor of 2.
func (t BspType) MainType() string {
	switch t {
	case BspT1, BspT1P:
		return "1"
	case BspT2, BspT2S:
		return "2"
	case BspT3A, BspT3B:
		return "3"
	default:
		return "?"
	}
}

// Side is which side of the market a buy/sell point favors.
type Side int

const (
	SideBuy Side = iota
	SideSell
)

func (s Side) String() string {
	if s == SideBuy {
		return "buy"
	}
	return "sell"
}
