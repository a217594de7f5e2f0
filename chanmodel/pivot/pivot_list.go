// Package pivot implements overlap-based consolidation-zone (ZS) formation
// over a sequence of strokes or, one level up, segments.
package pivot

import (
	"github.com/chanstruct/chanstruct/chanmodel"
)

// List is the pivot arena for one level of analysis.
type List struct {
	pivots []chanmodel.Pivot
}

func New() *List { return &List{} }

func (l *List) Len() int { return len(l.pivots) }

func (l *List) Get(h chanmodel.PivotHandle) *chanmodel.Pivot {
	if h < 0 || int(h) >= len(l.pivots) {
		return nil
	}
	return &l.pivots[h]
}

func (l *List) All() []chanmodel.Pivot { return l.pivots }

// Recompute rebuilds the pivot list from the current piece sequence
// (confirmed strokes, or segments one level up). zsCombine merges adjacent
// same-direction pivots whose [ZG,ZD] bands overlap; zsCombineMode selects
// whether that overlap test uses [ZG,ZD] or the wider [GG,DD] band.
func (l *List) Recompute(pieces []chanmodel.Piece, zsCombine bool, mode chanmodel.ZSCombineMode) {
	l.pivots = l.pivots[:0]
	i := 0
	n := len(pieces)
	for i+2 < n {
		p1, p3 := pieces[i], pieces[i+2]
		zg := min(p1.High, p3.High)
		zd := max(p1.Low, p3.Low)
		if zg <= zd {
			i++
			continue
		}
		gg := max(p1.High, p3.High, pieces[i+1].High)
		dd := min(p1.Low, p3.Low, pieces[i+1].Low)
		members := []int{i, i + 1, i + 2}
		exit := -1
		j := i + 3
		for j < n {
			if (j-i)%2 == 0 {
				candZg := min(zg, pieces[j].High)
				candZd := max(zd, pieces[j].Low)
				if candZg <= candZd {
					exit = j
					break
				}
				zg, zd = candZg, candZd
			}
			gg = max(gg, pieces[j].High)
			dd = min(dd, pieces[j].Low)
			members = append(members, j)
			j++
		}

		piv := chanmodel.Pivot{
			Idx:     len(l.pivots),
			ZG:      zg,
			ZD:      zd,
			GG:      gg,
			DD:      dd,
			Dir:     pieces[i+1].Dir,
			Closed:  exit != -1,
			Members: members,
			Entry:   -1,
		}
		if i > 0 {
			piv.Entry = i - 1
		}
		if exit != -1 {
			piv.Exit = exit
			i = exit
		} else {
			piv.Exit = -1
			i = j
		}
		l.pivots = append(l.pivots, piv)
	}

	if zsCombine {
		l.combineAdjacent(mode)
	}
}

// combineAdjacent merges consecutive pivots that share a direction and
// whose overlap bands intersect, per the default zs_combine policy.
func (l *List) combineAdjacent(mode chanmodel.ZSCombineMode) {
	merged := l.pivots[:0]
	for _, p := range l.pivots {
		if len(merged) == 0 {
			merged = append(merged, p)
			continue
		}
		last := &merged[len(merged)-1]
		overlaps := false
		if mode == chanmodel.ZSCombinePeak {
			overlaps = chanmodel.HasOverlap(p.DD, p.GG, last.DD, last.GG, true)
		} else {
			overlaps = chanmodel.HasOverlap(p.ZD, p.ZG, last.ZD, last.ZG, true)
		}
		if last.Dir == p.Dir && overlaps {
			last.Members = append(last.Members, p.Members...)
			last.ZG = min(last.ZG, p.ZG)
			last.ZD = max(last.ZD, p.ZD)
			last.GG = max(last.GG, p.GG)
			last.DD = min(last.DD, p.DD)
			last.Exit = p.Exit
			last.Closed = p.Closed
			continue
		}
		merged = append(merged, p)
	}
	for i := range merged {
		merged[i].Idx = i
	}
	l.pivots = merged
}
