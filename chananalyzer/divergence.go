package chananalyzer

import (
	"sync"

	"github.com/chanstruct/chanstruct/chanmodel"
)

// DivergenceRecord is one computed divergence comparison behind a classified
// buy/sell point, kept for later diagnostic review. Adapted from the
// trade-outcome-tracking record shape used for signal scoring, repurposed
// here to track structural divergence calls instead of trade results.
type DivergenceRecord struct {
	Indicator string
	Tag       chanmodel.BspType
	Price     float64
	Time      int64
	Metric    float64
	Reference float64
	Ratio     float64
}

// DivergenceLog accumulates every divergence comparison a LevelAnalyzer's
// buy/sell-point classification makes. It is a read-only diagnostic: it
// records what the classifier decided and why, but never feeds back into
// trading decisions.
type DivergenceLog struct {
	mu      sync.Mutex
	records []DivergenceRecord
}

func NewDivergenceLog() *DivergenceLog {
	return &DivergenceLog{}
}

func (d *DivergenceLog) add(rec DivergenceRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, rec)
}

// Records returns a copy of every recorded divergence comparison.
func (d *DivergenceLog) Records() []DivergenceRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]DivergenceRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Summary reports, per tag, how many divergence calls have been recorded
// and the mean metric/reference ratio observed.
type Summary struct {
	Tag       chanmodel.BspType
	Count     int
	MeanRatio float64
}

func (d *DivergenceLog) Summarize() []Summary {
	d.mu.Lock()
	defer d.mu.Unlock()

	totals := map[chanmodel.BspType]float64{}
	counts := map[chanmodel.BspType]int{}
	for _, r := range d.records {
		totals[r.Tag] += r.Ratio
		counts[r.Tag]++
	}
	out := make([]Summary, 0, len(counts))
	for tag, n := range counts {
		out = append(out, Summary{Tag: tag, Count: n, MeanRatio: totals[tag] / float64(n)})
	}
	return out
}

// recordDivergence appends the current bsp list's type-1 and 1P
// classifications (the only tags carrying a real metric/reference pair) to
// the log.
func (a *LevelAnalyzer) recordDivergence() {
	for _, p := range a.bsp.All() {
		if p.Type.MainType() != "1" || p.Reference == 0 {
			continue
		}
		a.divLog.add(DivergenceRecord{
			Indicator: a.cfg.MacdAlgo.String(),
			Tag:       p.Type,
			Price:     p.Price,
			Time:      p.Time,
			Metric:    p.Metric,
			Reference: p.Reference,
			Ratio:     p.Metric / p.Reference,
		})
	}
}
