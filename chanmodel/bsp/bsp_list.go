package bsp

import (
	"github.com/chanstruct/chanstruct/chanconfig"
	"github.com/chanstruct/chanstruct/chanmodel"
)

// List is the buy/sell-point arena for one level of analysis.
type List struct {
	points []chanmodel.BSPoint
}

func New() *List { return &List{} }

func (l *List) Len() int { return len(l.points) }

func (l *List) All() []chanmodel.BSPoint { return l.points }

func (l *List) Get(h chanmodel.BSPointHandle) *chanmodel.BSPoint {
	if h < 0 || int(h) >= len(l.points) {
		return nil
	}
	return &l.points[h]
}

// Piece bundles a structural piece (stroke or segment) with the bar window
// backing its divergence metric and its end-of-piece price/time.
type Piece struct {
	chanmodel.Piece
	Window   Window
	EndPrice float64
	EndTime  int64
}

// Recompute rebuilds the buy/sell-point list from scratch for one level
// (strokes+pivots, or recursively segments+segment-pivots), since a
// structural revision can invalidate an arbitrary suffix of prior points.
func (l *List) Recompute(pieces []Piece, pivots []chanmodel.Pivot, cfg chanconfig.Config) {
	l.points = l.points[:0]

	for _, p := range pivots {
		if p.Exit < 0 {
			continue
		}
		l.classifyBreakout(pieces, p, cfg)
	}
}

// bsp1PullbackBandRatio bounds how far past the pivot's GG/DD a breakout can
// overshoot and still count as a weak, pullback-flavored type-1 (1P) rather
// than a decisive one: the overshoot must stay within this fraction of the
// pivot's own [ZG,ZD] core band.
const bsp1PullbackBandRatio = 0.2

func (l *List) classifyBreakout(pieces []Piece, p chanmodel.Pivot, cfg chanconfig.Config) {
	exitIdx := p.Exit
	if exitIdx < 0 || exitIdx >= len(pieces) {
		return
	}
	exit := pieces[exitIdx]

	entryIdx := p.Entry

	dir := exit.Dir
	makesExtreme := false
	if dir == chanmodel.DirDown {
		makesExtreme = exit.Low < p.DD
	} else {
		makesExtreme = exit.High > p.GG
	}
	if !makesExtreme {
		return
	}

	side := chanmodel.SideBuy
	if dir == chanmodel.DirUp {
		side = chanmodel.SideSell
	}

	// bsp1_only_multibi_zs restricts type-1 (and everything chained off it)
	// to pivots formed from more than the minimal 3 member pieces.
	t1Eligible := !cfg.Bsp1OnlyMultibiZs || len(p.Members) > 3
	t1Emitted := false

	if t1Eligible {
		// the divergence reference is the pivot's entry piece: the prior
		// same-direction stroke that led into this pivot. Spec calls for
		// the prior same-direction stroke in the *prior* pivot; using the
		// entry piece here is an approximation that is usually the same
		// stroke, but can differ when pivots have been combined.
		refMetric := 0.0
		if entryIdx >= 0 && entryIdx < len(pieces) {
			refMetric = Metric(pieces[entryIdx].Window, cfg.MacdAlgo)
		}
		exitMetric := Metric(exit.Window, cfg.MacdAlgo)
		if entryIdx < 0 || chanmodel.Divergence(exitMetric, refMetric, cfg.DivergenceRate) {
			tag := chanmodel.BspT1
			if isPullbackOvershoot(exit, p, dir) {
				tag = chanmodel.BspT1P
			}
			l.append(chanmodel.BSPoint{
				Type:      tag,
				Side:      side,
				Anchor:    exitIdx,
				Price:     exit.EndPrice,
				Time:      exit.EndTime,
				Metric:    exitMetric,
				Reference: refMetric,
			})
			t1Emitted = true
		}
	}

	// bs3_follow_1 ties type-2/2S/3A/3B to a type-1 having actually fired
	// for this pivot; when false, a pivot that only failed the type-1 gates
	// (bsp1_only_multibi_zs, divergence) can still yield a type-2/3.
	if cfg.Bs3Follow1 && !t1Emitted {
		return
	}
	if exitIdx+1 >= len(pieces) {
		return
	}

	// type 2: the next opposite-direction piece after the type-1, provided
	// it fails to make a new extremum versus the type-1's anchor (and,
	// under max_bs2_rate, doesn't retrace too deep into the breakout move
	// even short of that).
	first := pieces[exitIdx+1]
	if breaksAnchor(first, exit.EndPrice, p, dir, cfg.MaxBs2Rate) {
		return
	}
	l.append(chanmodel.BSPoint{
		Type:   chanmodel.BspT2,
		Side:   side,
		Anchor: exitIdx + 1,
		Price:  boundaryPrice(first, dir),
		Time:   first.EndTime,
	})

	// type 2S: further same-direction candidates in sequence after the
	// plain type-2, each still failing to exceed the type-1 anchor; these
	// mark the later members of the sequence.
	for k := exitIdx + 3; k < len(pieces); k += 2 {
		cand := pieces[k]
		if breaksAnchor(cand, exit.EndPrice, p, dir, cfg.MaxBs2Rate) {
			break
		}
		l.append(chanmodel.BSPoint{
			Type:   chanmodel.BspT2S,
			Side:   side,
			Anchor: k,
			Price:  boundaryPrice(cand, dir),
			Time:   cand.EndTime,
		})
	}

	// type 3A/3B: the piece after the type-2, if it tests but does not
	// re-enter the pivot band.
	if exitIdx+2 < len(pieces) {
		third := pieces[exitIdx+2]
		tests := chanmodel.HasOverlap(third.Low, third.High, p.ZD, p.ZG, true)
		reenters := third.Low <= p.ZG && third.High >= p.ZD
		if tests && !reenters {
			tag := chanmodel.BspT3A
			if entryIdx >= 0 && entryIdx > exitIdx {
				tag = chanmodel.BspT3B
			}
			l.append(chanmodel.BSPoint{
				Type:   tag,
				Side:   side,
				Anchor: exitIdx + 2,
				Price:  boundaryPrice(third, dir),
				Time:   third.EndTime,
			})
		}
	}
}

// isPullbackOvershoot reports whether the breakout's overshoot past the
// pivot's prior GG/DD stays within a small band relative to the pivot's own
// [ZG,ZD] width, marking a weak breakout (1P) rather than a decisive one.
func isPullbackOvershoot(exit Piece, p chanmodel.Pivot, dir chanmodel.Dir) bool {
	band := (p.ZG - p.ZD) * bsp1PullbackBandRatio
	if band <= 0 {
		return false
	}
	if dir == chanmodel.DirDown {
		return p.DD-exit.EndPrice <= band
	}
	return exit.EndPrice-p.GG <= band
}

// breaksAnchor reports whether piece invalidates a type-2/2S candidate: it
// either fully erases the breakout by crossing back through the pivot's old
// GG/DD boundary, or (when max_bs2_rate is configured) it gives back more
// than that fraction of the breakout's own move without going that far.
func breaksAnchor(piece Piece, anchorPrice float64, p chanmodel.Pivot, dir chanmodel.Dir, maxBs2Rate float64) bool {
	if dir == chanmodel.DirDown {
		moveHeight := p.DD - anchorPrice
		if piece.High >= p.DD {
			return true
		}
		return exceedsMaxRetrace(piece.High-anchorPrice, moveHeight, maxBs2Rate)
	}
	moveHeight := anchorPrice - p.GG
	if piece.Low <= p.GG {
		return true
	}
	return exceedsMaxRetrace(anchorPrice-piece.Low, moveHeight, maxBs2Rate)
}

func exceedsMaxRetrace(retrace, moveHeight, maxBs2Rate float64) bool {
	if maxBs2Rate <= 0 || moveHeight <= 0 || retrace <= 0 {
		return false
	}
	return retrace > moveHeight*maxBs2Rate
}

func boundaryPrice(p Piece, dir chanmodel.Dir) float64 {
	if dir == chanmodel.DirDown {
		return p.High
	}
	return p.Low
}

func (l *List) append(p chanmodel.BSPoint) {
	p.Idx = len(l.points)
	l.points = append(l.points, p)
}
