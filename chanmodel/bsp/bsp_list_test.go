package bsp

import (
	"testing"

	"github.com/chanstruct/chanstruct/chanconfig"
	"github.com/chanstruct/chanstruct/chanmodel"
)

func volumeConfig(t *testing.T, rate float64) chanconfig.Config {
	t.Helper()
	cfg, err := chanconfig.New(
		chanconfig.WithMacdAlgo("volume"),
		chanconfig.WithDivergenceRate(rate),
	)
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	return cfg
}

func TestBSPList_Type1OnFirstPivotHasNoReferenceGate(t *testing.T) {
	cfg := volumeConfig(t, 0.9)
	pieces := make([]Piece, 4)
	pieces[3] = Piece{
		Piece:    chanmodel.Piece{Dir: chanmodel.DirUp, High: 20, Low: 18},
		EndPrice: 20,
		EndTime:  1000,
	}
	piv := chanmodel.Pivot{ZG: 15, ZD: 10, GG: 16, DD: 9, Exit: 3, Entry: -1, Closed: true}

	l := New()
	l.Recompute(pieces, []chanmodel.Pivot{piv}, cfg)

	if l.Len() != 1 {
		t.Fatalf("expected exactly 1 buy/sell point, got %d", l.Len())
	}
	p := l.Get(0)
	if p.Type != chanmodel.BspT1 {
		t.Fatalf("expected type 1, got %v", p.Type)
	}
	if p.Side != chanmodel.SideSell {
		t.Fatalf("expected a sell point for an upward breakout, got %v", p.Side)
	}
	if p.Anchor != 3 || p.Price != 20 {
		t.Fatalf("expected anchor=3 price=20, got anchor=%d price=%v", p.Anchor, p.Price)
	}
}

func TestBSPList_NoExtremeSkipsClassification(t *testing.T) {
	cfg := volumeConfig(t, 0.9)
	pieces := make([]Piece, 4)
	pieces[3] = Piece{
		Piece:    chanmodel.Piece{Dir: chanmodel.DirUp, High: 14, Low: 12}, // below GG, no new extreme
		EndPrice: 14,
	}
	piv := chanmodel.Pivot{ZG: 15, ZD: 10, GG: 16, DD: 9, Exit: 3, Entry: -1, Closed: true}

	l := New()
	l.Recompute(pieces, []chanmodel.Pivot{piv}, cfg)
	if l.Len() != 0 {
		t.Fatalf("expected no buy/sell point when the exit piece sets no new extreme, got %d", l.Len())
	}
}

func TestBSPList_FailedDivergenceRejectsType1(t *testing.T) {
	cfg := volumeConfig(t, 0.9)
	pieces := make([]Piece, 4)
	pieces[0] = Piece{Window: Window{Volumes: []float64{50}}}
	pieces[3] = Piece{
		Piece:    chanmodel.Piece{Dir: chanmodel.DirUp, High: 20, Low: 18},
		Window:   Window{Volumes: []float64{100}},
		EndPrice: 20,
	}
	piv := chanmodel.Pivot{ZG: 15, ZD: 10, GG: 16, DD: 9, Exit: 3, Entry: 0, Closed: true}

	l := New()
	l.Recompute(pieces, []chanmodel.Pivot{piv}, cfg)
	if l.Len() != 0 {
		t.Fatalf("expected no point: exit metric 100 does not undercut reference*rate (50*0.9=45), got %d points", l.Len())
	}
}

func TestBSPList_Type2FollowsFailedContinuation(t *testing.T) {
	cfg := volumeConfig(t, 0.9)
	pieces := make([]Piece, 5)
	pieces[0] = Piece{Window: Window{Volumes: []float64{100}}}
	pieces[3] = Piece{
		Piece:    chanmodel.Piece{Dir: chanmodel.DirUp, High: 20, Low: 18},
		Window:   Window{Volumes: []float64{40}},
		EndPrice: 20,
	}
	pieces[4] = Piece{
		Piece: chanmodel.Piece{Dir: chanmodel.DirDown, High: 23, Low: 22},
	}
	piv := chanmodel.Pivot{ZG: 15, ZD: 10, GG: 16, DD: 9, Exit: 3, Entry: 0, Closed: true}

	l := New()
	l.Recompute(pieces, []chanmodel.Pivot{piv}, cfg)

	if l.Len() != 2 {
		t.Fatalf("expected a type-1 and a type-2 point, got %d", l.Len())
	}
	if l.Get(0).Type != chanmodel.BspT1 {
		t.Fatalf("expected point 0 to be type 1, got %v", l.Get(0).Type)
	}
	t2 := l.Get(1)
	if t2.Type != chanmodel.BspT2 {
		t.Fatalf("expected point 1 to be type 2, got %v", t2.Type)
	}
	if t2.Anchor != 4 || t2.Price != 22 {
		t.Fatalf("expected anchor=4 price=22, got anchor=%d price=%v", t2.Anchor, t2.Price)
	}
}

func TestBSPList_SmallOvershootIsPullbackType1(t *testing.T) {
	cfg := volumeConfig(t, 0.9)
	pieces := make([]Piece, 4)
	pieces[3] = Piece{
		// GG=16: overshoot is only 16.5-16=0.5, well inside 20% of the
		// [10,15] band (width 5, so the pullback cutoff is 1.0).
		Piece:    chanmodel.Piece{Dir: chanmodel.DirUp, High: 16.5, Low: 14},
		EndPrice: 16.5,
		EndTime:  1000,
	}
	piv := chanmodel.Pivot{ZG: 15, ZD: 10, GG: 16, DD: 9, Exit: 3, Entry: -1, Closed: true}

	l := New()
	l.Recompute(pieces, []chanmodel.Pivot{piv}, cfg)

	if l.Len() != 1 {
		t.Fatalf("expected exactly 1 buy/sell point, got %d", l.Len())
	}
	if p := l.Get(0); p.Type != chanmodel.BspT1P {
		t.Fatalf("expected a pullback type 1P for a small overshoot, got %v", p.Type)
	}
}

func TestBSPList_SequentialType2CandidatesAreType2S(t *testing.T) {
	cfg := volumeConfig(t, 0.9)
	pieces := make([]Piece, 7)
	pieces[3] = Piece{
		Piece:    chanmodel.Piece{Dir: chanmodel.DirUp, High: 20, Low: 18},
		EndPrice: 20,
		EndTime:  1000,
	}
	pieces[4] = Piece{Piece: chanmodel.Piece{Dir: chanmodel.DirDown, High: 23, Low: 22}, EndTime: 1001}
	pieces[5] = Piece{Piece: chanmodel.Piece{Dir: chanmodel.DirUp, High: 26, Low: 21}, EndTime: 1002}
	pieces[6] = Piece{Piece: chanmodel.Piece{Dir: chanmodel.DirDown, High: 24, Low: 21.5}, EndTime: 1003}
	piv := chanmodel.Pivot{ZG: 15, ZD: 10, GG: 16, DD: 9, Exit: 3, Entry: -1, Closed: true}

	l := New()
	l.Recompute(pieces, []chanmodel.Pivot{piv}, cfg)

	if l.Len() != 3 {
		t.Fatalf("expected type-1, type-2, type-2S, got %d points", l.Len())
	}
	if l.Get(1).Type != chanmodel.BspT2 {
		t.Fatalf("expected point 1 to be type 2, got %v", l.Get(1).Type)
	}
	if l.Get(2).Type != chanmodel.BspT2S {
		t.Fatalf("expected point 2 to be type 2S, got %v", l.Get(2).Type)
	}
	if l.Get(2).Anchor != 6 {
		t.Fatalf("expected the type-2S anchor at piece 6, got %d", l.Get(2).Anchor)
	}
}

func TestBSPList_Bsp1OnlyMultibiZsRejectsMinimalPivot(t *testing.T) {
	cfg, err := chanconfig.New(
		chanconfig.WithMacdAlgo("volume"),
		chanconfig.WithDivergenceRate(0.9),
	)
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	cfg.Bsp1OnlyMultibiZs = true

	pieces := make([]Piece, 4)
	pieces[3] = Piece{
		Piece:    chanmodel.Piece{Dir: chanmodel.DirUp, High: 20, Low: 18},
		EndPrice: 20,
		EndTime:  1000,
	}
	// a minimal 3-member pivot: Members has exactly 3 entries.
	piv := chanmodel.Pivot{ZG: 15, ZD: 10, GG: 16, DD: 9, Exit: 3, Entry: -1, Closed: true, Members: []int{0, 1, 2}}

	l := New()
	l.Recompute(pieces, []chanmodel.Pivot{piv}, cfg)
	if l.Len() != 0 {
		t.Fatalf("expected bsp1_only_multibi_zs to reject a minimal pivot's type 1, got %d points", l.Len())
	}
}

func TestBSPList_MaxBs2RateRejectsDeepRetracement(t *testing.T) {
	cfg := volumeConfig(t, 0.9)
	cfg.MaxBs2Rate = 0.2

	pieces := make([]Piece, 5)
	pieces[3] = Piece{
		Piece:    chanmodel.Piece{Dir: chanmodel.DirUp, High: 20, Low: 18},
		EndPrice: 20,
		EndTime:  1000,
	}
	// breakout move is GG(16) to 20, height 4; a retrace to 19 gives up 1
	// of that 4 (25%), which exceeds the 20% cap.
	pieces[4] = Piece{Piece: chanmodel.Piece{Dir: chanmodel.DirDown, High: 20, Low: 19}}
	piv := chanmodel.Pivot{ZG: 15, ZD: 10, GG: 16, DD: 9, Exit: 3, Entry: -1, Closed: true}

	l := New()
	l.Recompute(pieces, []chanmodel.Pivot{piv}, cfg)
	if l.Len() != 1 {
		t.Fatalf("expected only the type-1 point, max_bs2_rate should reject the type-2, got %d points", l.Len())
	}
	if l.Get(0).Type != chanmodel.BspT1 {
		t.Fatalf("expected the surviving point to be type 1, got %v", l.Get(0).Type)
	}
}

func TestBSPList_Bs3Follow1FalseAllowsType2WithoutType1(t *testing.T) {
	cfg, err := chanconfig.New(
		chanconfig.WithMacdAlgo("volume"),
		chanconfig.WithDivergenceRate(0.9),
	)
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	cfg.Bs3Follow1 = false

	pieces := make([]Piece, 5)
	pieces[0] = Piece{Window: Window{Volumes: []float64{100}}}
	pieces[3] = Piece{
		Piece:    chanmodel.Piece{Dir: chanmodel.DirUp, High: 20, Low: 18},
		Window:   Window{Volumes: []float64{100}}, // fails divergence: no undercut vs reference
		EndPrice: 20,
		EndTime:  1000,
	}
	pieces[4] = Piece{Piece: chanmodel.Piece{Dir: chanmodel.DirDown, High: 23, Low: 22}}
	piv := chanmodel.Pivot{ZG: 15, ZD: 10, GG: 16, DD: 9, Exit: 3, Entry: 0, Closed: true}

	l := New()
	l.Recompute(pieces, []chanmodel.Pivot{piv}, cfg)
	if l.Len() != 1 {
		t.Fatalf("expected only the type-2 (type-1 failed divergence), got %d points", l.Len())
	}
	if l.Get(0).Type != chanmodel.BspT2 {
		t.Fatalf("expected the surviving point to be type 2, got %v", l.Get(0).Type)
	}
}
