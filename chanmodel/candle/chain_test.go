package candle

import (
	"testing"
	"time"

	"github.com/chanstruct/chanstruct/chanmodel"
)

func bar(sec int64, o, h, l, c float64) chanmodel.Bar {
	return chanmodel.Bar{
		Time:  time.Unix(sec, 0).UTC(),
		Open:  o,
		High:  h,
		Low:   l,
		Close: c,
	}
}

func TestChain_EmptyStream(t *testing.T) {
	c := New()
	if c.Len() != 0 {
		t.Fatalf("expected empty chain, got %d candles", c.Len())
	}
}

func TestChain_SingleBar(t *testing.T) {
	c := New()
	if _, err := c.Push(bar(1, 10, 11, 9, 10)); err != nil {
		t.Fatalf("push: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 candle, got %d", c.Len())
	}
	if c.Get(0).Fx != chanmodel.FxUnknown {
		t.Fatalf("expected no fractal on single candle")
	}
}

func TestChain_ThreeBarsFormTopFractal(t *testing.T) {
	c := New()
	bars := []chanmodel.Bar{
		bar(1, 10, 11, 9, 10),
		bar(2, 11, 14, 11, 13), // higher high, higher low -> new candle
		bar(3, 10, 10, 8, 9),   // lower high, lower low -> new candle; middle becomes Top
	}
	for _, b := range bars {
		if _, err := c.Push(b); err != nil {
			t.Fatalf("push: %v", err)
		}
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 candles, got %d", c.Len())
	}
	if c.Get(1).Fx != chanmodel.FxTop {
		t.Fatalf("expected Top fractal on middle candle, got %v", c.Get(1).Fx)
	}
}

func TestChain_DuplicateTimestampRefreshesInPlace(t *testing.T) {
	c := New()
	if _, err := c.Push(bar(1, 10, 11, 9, 10)); err != nil {
		t.Fatalf("push: %v", err)
	}
	before := c.Len()
	res, err := c.Push(bar(1, 10, 12, 9, 11))
	if err != nil {
		t.Fatalf("push duplicate: %v", err)
	}
	if !res.Refreshed {
		t.Fatalf("expected a Refreshed result for duplicate timestamp")
	}
	if c.Len() != before {
		t.Fatalf("candle count changed on refresh: before=%d after=%d", before, c.Len())
	}
	if c.Get(0).High != 12 {
		t.Fatalf("expected refreshed high=12, got %v", c.Get(0).High)
	}
}

func TestChain_InclusionMerge(t *testing.T) {
	c := New()
	if _, err := c.Push(bar(1, 10, 20, 10, 15)); err != nil {
		t.Fatalf("push: %v", err)
	}
	// second bar's range [12,18] is fully inside [10,20]: must merge, not create
	res, err := c.Push(bar(2, 14, 18, 12, 16))
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if !res.Combined {
		t.Fatalf("expected inclusion merge, got %+v", res)
	}
	if c.Len() != 1 {
		t.Fatalf("expected still 1 candle after merge, got %d", c.Len())
	}
}

func TestChain_RejectsBackwardsTime(t *testing.T) {
	c := New()
	if _, err := c.Push(bar(10, 10, 11, 9, 10)); err != nil {
		t.Fatalf("push: %v", err)
	}
	if _, err := c.Push(bar(5, 10, 30, 5, 20)); err == nil {
		t.Fatalf("expected error for backwards-time bar")
	}
}

func TestChain_RejectsInvalidBar(t *testing.T) {
	c := New()
	if _, err := c.Push(bar(1, 10, 5, 9, 10)); err == nil {
		t.Fatalf("expected error for high < low")
	}
}
