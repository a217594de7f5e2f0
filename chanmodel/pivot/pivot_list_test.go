package pivot

import (
	"testing"

	"github.com/chanstruct/chanstruct/chanmodel"
)

func piece(dir chanmodel.Dir, hi, lo float64) chanmodel.Piece {
	return chanmodel.Piece{Dir: dir, High: hi, Low: lo}
}

func TestPivotList_TooFewPiecesFormsNoPivot(t *testing.T) {
	l := New()
	l.Recompute([]chanmodel.Piece{
		piece(chanmodel.DirUp, 20, 10),
		piece(chanmodel.DirDown, 18, 12),
	}, false, chanmodel.ZSCombineZS)
	if l.Len() != 0 {
		t.Fatalf("expected no pivot from only 2 pieces, got %d", l.Len())
	}
}

func TestPivotList_ThreeOverlappingPiecesFormPivot(t *testing.T) {
	l := New()
	pieces := []chanmodel.Piece{
		piece(chanmodel.DirUp, 20, 10),   // 0
		piece(chanmodel.DirDown, 18, 12), // 1
		piece(chanmodel.DirUp, 19, 11),   // 2
	}
	l.Recompute(pieces, false, chanmodel.ZSCombineZS)
	if l.Len() != 1 {
		t.Fatalf("expected exactly 1 pivot, got %d", l.Len())
	}
	p := l.Get(0)
	wantZG, wantZD := 19.0, 11.0 // ZG = min(p0.High, p2.High); ZD = max(p0.Low, p2.Low)
	if p.ZG != wantZG || p.ZD != wantZD {
		t.Fatalf("expected ZG=%v ZD=%v, got ZG=%v ZD=%v", wantZG, wantZD, p.ZG, p.ZD)
	}
	wantGG, wantDD := 20.0, 10.0 // GG/DD are the union extremum across all 3 members
	if p.GG != wantGG || p.DD != wantDD {
		t.Fatalf("expected GG=%v DD=%v, got GG=%v DD=%v", wantGG, wantDD, p.GG, p.DD)
	}
	if p.Closed {
		t.Fatalf("expected an open pivot (no breakout piece yet)")
	}
	if p.Entry != -1 {
		t.Fatalf("expected no entry piece for a pivot starting at index 0, got %d", p.Entry)
	}
}

func TestPivotList_GGDDIncludesMiddlePiece(t *testing.T) {
	l := New()
	pieces := []chanmodel.Piece{
		piece(chanmodel.DirUp, 19, 11),   // 0
		piece(chanmodel.DirDown, 25, 9),  // 1: holds the union extreme on both sides
		piece(chanmodel.DirUp, 18, 12),   // 2
	}
	l.Recompute(pieces, false, chanmodel.ZSCombineZS)
	if l.Len() != 1 {
		t.Fatalf("expected exactly 1 pivot, got %d", l.Len())
	}
	p := l.Get(0)
	if p.GG != 25 || p.DD != 9 {
		t.Fatalf("expected the middle piece's [9,25] to set GG/DD, got GG=%v DD=%v", p.GG, p.DD)
	}
}

func TestPivotList_BreakoutClosesPivot(t *testing.T) {
	l := New()
	pieces := []chanmodel.Piece{
		piece(chanmodel.DirUp, 20, 10),   // 0
		piece(chanmodel.DirDown, 18, 12), // 1
		piece(chanmodel.DirUp, 19, 11),   // 2
		piece(chanmodel.DirDown, 17, 13), // 3: still overlaps [11,19]
		piece(chanmodel.DirUp, 30, 25),   // 4: breaks clean above the band, no overlap
	}
	l.Recompute(pieces, false, chanmodel.ZSCombineZS)
	if l.Len() != 1 {
		t.Fatalf("expected exactly 1 pivot, got %d", l.Len())
	}
	p := l.Get(0)
	if !p.Closed {
		t.Fatalf("expected the pivot to be closed by the breakout piece")
	}
	if p.Exit != 4 {
		t.Fatalf("expected exit at piece 4, got %d", p.Exit)
	}
}

func TestPivotList_NoOverlapFormsNoPivot(t *testing.T) {
	l := New()
	pieces := []chanmodel.Piece{
		piece(chanmodel.DirUp, 20, 18),
		piece(chanmodel.DirDown, 15, 10),
		piece(chanmodel.DirUp, 25, 21),
	}
	l.Recompute(pieces, false, chanmodel.ZSCombineZS)
	if l.Len() != 0 {
		t.Fatalf("expected no pivot when the three pieces share no overlap, got %d", l.Len())
	}
}
