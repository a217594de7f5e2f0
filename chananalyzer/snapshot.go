package chananalyzer

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/chanstruct/chanstruct/chanmodel"
)

// Snapshot is an immutable, copy-on-write view of every list's current
// state, taken whenever the buy/sell-point layer is recomputed. History
// entries hold a Snapshot each, so earlier provisional states survive
// later revisions without being overwritten.
type Snapshot struct {
	Candles     []chanmodel.MergedCandle
	Strokes     []chanmodel.Stroke
	Segments    []chanmodel.Segment
	SegSegments []chanmodel.Segment
	Pivots      []chanmodel.Pivot
	SegPivots   []chanmodel.Pivot
	BSPoints    []chanmodel.BSPoint
	SegBSPoints []chanmodel.BSPoint
}

// Snapshot takes a deep, point-in-time copy of the analyzer's current
// state, safe to retain after subsequent Push calls mutate the live lists.
func (a *LevelAnalyzer) Snapshot() Snapshot {
	return a.snapshotNow()
}

func (a *LevelAnalyzer) snapshotNow() Snapshot {
	candles := make([]chanmodel.MergedCandle, a.chain.Len())
	for i := range candles {
		candles[i] = *a.chain.Get(chanmodel.CandleHandle(i))
		candles[i].Bars = append([]chanmodel.Bar(nil), candles[i].Bars...)
	}
	strokes := make([]chanmodel.Stroke, a.strokes.Len())
	for i := range strokes {
		strokes[i] = *a.strokes.Get(chanmodel.StrokeHandle(i))
	}
	return Snapshot{
		Candles:     candles,
		Strokes:     strokes,
		Segments:    append([]chanmodel.Segment(nil), a.segs.All()...),
		SegSegments: append([]chanmodel.Segment(nil), a.segSegs.All()...),
		Pivots:      append([]chanmodel.Pivot(nil), a.zs.All()...),
		SegPivots:   append([]chanmodel.Pivot(nil), a.segZs.All()...),
		BSPoints:    append([]chanmodel.BSPoint(nil), a.bsp.All()...),
		SegBSPoints: append([]chanmodel.BSPoint(nil), a.segBsp.All()...),
	}
}

func (a *LevelAnalyzer) recordHistory() {
	a.history = append(a.history, a.snapshotNow())
}

// WriteTables renders every list as a go-pretty table to w: merged
// candles, strokes, segments, segments-of-segments, stroke pivots, segment
// pivots, stroke buy/sell points, segment buy/sell points.
func (s Snapshot) WriteTables(w io.Writer) {
	fmt.Fprintln(w, s.candleTable().Render())
	fmt.Fprintln(w, s.strokeTable().Render())
	fmt.Fprintln(w, s.segmentTable("segments", s.Segments).Render())
	fmt.Fprintln(w, s.segmentTable("segments-of-segments", s.SegSegments).Render())
	fmt.Fprintln(w, s.pivotTable("stroke pivots", s.Pivots).Render())
	fmt.Fprintln(w, s.pivotTable("segment pivots", s.SegPivots).Render())
	fmt.Fprintln(w, s.bspTable("stroke bsp", s.BSPoints).Render())
	fmt.Fprintln(w, s.bspTable("segment bsp", s.SegBSPoints).Render())
}

func (s Snapshot) String() string {
	var b strings.Builder
	s.WriteTables(&b)
	return b.String()
}

func (s Snapshot) candleTable() table.Writer {
	t := table.NewWriter()
	t.SetTitle("merged candles")
	t.AppendHeader(table.Row{"idx", "dir", "high", "low", "fx", "bars"})
	for _, c := range s.Candles {
		t.AppendRow(table.Row{c.Idx, candleDirStr(c.Dir), c.High, c.Low, fxStr(c.Fx), len(c.Bars)})
	}
	return t
}

func (s Snapshot) strokeTable() table.Writer {
	t := table.NewWriter()
	t.SetTitle("strokes")
	t.AppendHeader(table.Row{"idx", "dir", "begin", "end", "confirmed", "virtual"})
	for _, st := range s.Strokes {
		t.AppendRow(table.Row{st.Idx, st.Dir, int(st.Begin), int(st.End), st.Confirmed, st.Virtual})
	}
	return t
}

func (s Snapshot) segmentTable(title string, segs []chanmodel.Segment) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(table.Row{"idx", "dir", "begin", "end", "confirmed", "high", "low"})
	for _, sg := range segs {
		t.AppendRow(table.Row{sg.Idx, sg.Dir, sg.Begin, sg.End, sg.Confirmed, sg.High, sg.Low})
	}
	return t
}

func (s Snapshot) pivotTable(title string, pivots []chanmodel.Pivot) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(table.Row{"idx", "dir", "zg", "zd", "gg", "dd", "closed"})
	for _, p := range pivots {
		t.AppendRow(table.Row{p.Idx, p.Dir, p.ZG, p.ZD, p.GG, p.DD, p.Closed})
	}
	return t
}

func (s Snapshot) bspTable(title string, points []chanmodel.BSPoint) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(table.Row{"idx", "type", "side", "anchor", "price", "time"})
	for _, p := range points {
		t.AppendRow(table.Row{p.Idx, p.Type, p.Side, p.Anchor, p.Price, p.Time})
	}
	return t
}

func candleDirStr(d chanmodel.CandleDir) string {
	switch d {
	case chanmodel.CandleUp:
		return "up"
	case chanmodel.CandleDown:
		return "down"
	case chanmodel.CandleIncluded:
		return "included"
	default:
		return "combine"
	}
}

func fxStr(f chanmodel.FxType) string {
	switch f {
	case chanmodel.FxTop:
		return "top"
	case chanmodel.FxBottom:
		return "bottom"
	default:
		return ""
	}
}
