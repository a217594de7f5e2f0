// Package chananalyzer wires the candle chain, stroke list, segment list,
// pivot list and buy/sell-point list into one incremental pipeline, and
// recurses the same pipeline one level up (strokes -> segments mirrored as
// segseg -> segzs -> seg-level buy/sell points).
//
// A LevelAnalyzer is confined to a single goroutine at a time: unlike
// internal/decision's DivValidator (which is deliberately shared across
// goroutines behind a mutex), nothing here is safe for concurrent access -
// callers driving several timeframes concurrently must use one
// LevelAnalyzer per goroutine.
package chananalyzer

import (
	"github.com/chanstruct/chanstruct/chanconfig"
	"github.com/chanstruct/chanstruct/chanmodel"
	"github.com/chanstruct/chanstruct/chanmodel/bsp"
	"github.com/chanstruct/chanstruct/chanmodel/candle"
	"github.com/chanstruct/chanstruct/chanmodel/pivot"
	"github.com/chanstruct/chanstruct/chanmodel/segment"
	"github.com/chanstruct/chanstruct/chanmodel/stroke"
)

// LevelAnalyzer owns one full two-level Chan structural analysis.
type LevelAnalyzer struct {
	cfg chanconfig.Config

	chain   *candle.Chain
	strokes *stroke.List
	segs    *segment.List
	segSegs *segment.List
	zs      *pivot.List
	segZs   *pivot.List
	bsp     *bsp.List
	segBsp  *bsp.List

	// strokeHandles records which stroke arena handle each positional index
	// in the last segs recompute corresponded to, so a Segment's
	// Begin/End/Members (positional) can be translated back to real stroke
	// handles.
	strokeHandles []chanmodel.StrokeHandle

	history []Snapshot
	divLog  *DivergenceLog
}

func New(cfg chanconfig.Config) *LevelAnalyzer {
	return &LevelAnalyzer{
		cfg:     cfg,
		chain:   candle.New(),
		strokes: stroke.New(),
		segs:    segment.New(),
		segSegs: segment.New(),
		zs:      pivot.New(),
		segZs:   pivot.New(),
		bsp:     bsp.New(),
		segBsp:  bsp.New(),
		divLog:  NewDivergenceLog(),
	}
}

// Push folds one bar into the analyzer, cascading through the fractal,
// stroke, and (if step_calculation) segment/pivot/bsp layers.
func (a *LevelAnalyzer) Push(bar chanmodel.Bar) error {
	res, err := a.chain.Push(bar)
	if err != nil {
		return err
	}

	changed := false
	if res.Created && res.FractalMoved != chanmodel.NoCandle {
		c, err := a.strokes.OnFractalCandle(a.chain, a.cfg, res.FractalMoved)
		if err != nil {
			return err
		}
		changed = c
	}
	a.strokes.SyncVirtual(a.chain, a.cfg)

	if a.cfg.StepCalculation && (changed || res.Combined || res.Refreshed) {
		a.calSegAndZs()
	}
	return nil
}

// Finalize runs the segment/pivot/bsp cascade on demand, for callers using
// step_calculation=false.
func (a *LevelAnalyzer) Finalize() {
	a.calSegAndZs()
}

// calSegAndZs is the exact cascade the incremental push path runs whenever
// the stroke list changes: strokes -> segments -> pivots -> bsp, then the
// same three steps again with segments standing in for strokes, then a
// history snapshot of the currently known buy/sell points.
func (a *LevelAnalyzer) calSegAndZs() {
	a.strokeHandles = confirmedStrokes(a.strokes)
	strokeP := strokePieces(a.chain, a.strokes, a.strokeHandles)

	_ = a.segs.Recompute(strokeP, a.cfg)
	a.zs.Recompute(toChanPieces(strokeP), a.cfg.ZsCombine, a.cfg.ZsCombineMode)

	bspStroke := bspStrokePieces(a.chain, a.strokes, a.strokeHandles)
	a.bsp.Recompute(bspStroke, a.zs.All(), a.cfg)

	segP := segmentPieces(a.segs)
	_ = a.segSegs.Recompute(segP, a.cfg)
	a.segZs.Recompute(segP, a.cfg.ZsCombine, a.cfg.ZsCombineMode)

	segBspPieces := bspSegmentPieces(a.chain, a.strokes, a.segs, a.strokeHandles)
	a.segBsp.Recompute(segBspPieces, a.segZs.All(), a.cfg)

	a.recordDivergence()
	a.recordHistory()
}

func toChanPieces(p []segment.Piece) []chanmodel.Piece {
	out := make([]chanmodel.Piece, len(p))
	copy(out, p)
	return out
}

// Chain, Strokes, Segs, SegSegs, Zs, SegZs, Bsp, SegBsp expose the
// underlying lists read-only, for Snapshot rendering and tests.
func (a *LevelAnalyzer) Chain() *candle.Chain     { return a.chain }
func (a *LevelAnalyzer) Strokes() *stroke.List     { return a.strokes }
func (a *LevelAnalyzer) Segments() *segment.List   { return a.segs }
func (a *LevelAnalyzer) SegSegments() *segment.List { return a.segSegs }
func (a *LevelAnalyzer) Pivots() *pivot.List        { return a.zs }
func (a *LevelAnalyzer) SegPivots() *pivot.List     { return a.segZs }
func (a *LevelAnalyzer) BSPoints() *bsp.List        { return a.bsp }
func (a *LevelAnalyzer) SegBSPoints() *bsp.List     { return a.segBsp }
func (a *LevelAnalyzer) History() []Snapshot        { return a.history }
func (a *LevelAnalyzer) DivergenceLog() *DivergenceLog { return a.divLog }
