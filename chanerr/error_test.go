package chanerr

import "testing"

func TestChanError_Error(t *testing.T) {
	err := New(ParaError, "bad value")
	if err.Error() == "" {
		t.Fatalf("expected a non-empty error string")
	}
}

func TestNewf_Formats(t *testing.T) {
	err := Newf(ConfigError, "unknown value %q", "bogus")
	want := `unknown value "bogus"`
	if err.Msg != want {
		t.Fatalf("expected msg=%q, got %q", want, err.Msg)
	}
}

func TestIsChanErr(t *testing.T) {
	cases := []struct {
		code ErrCode
		want bool
	}{
		{CommonError, true},
		{ParaError, true},
		{SignalTraded, false},
		{KLTimeInconsistent, false},
	}
	for _, c := range cases {
		err := New(c.code, "x")
		if got := err.IsChanErr(); got != c.want {
			t.Fatalf("code %v: IsChanErr()=%v, want %v", c.code, got, c.want)
		}
	}
}

func TestIsTradeErr(t *testing.T) {
	if !New(SignalTraded, "x").IsTradeErr() {
		t.Fatalf("expected SignalTraded to be a trade error")
	}
	if New(ParaError, "x").IsTradeErr() {
		t.Fatalf("did not expect ParaError to be a trade error")
	}
}

func TestIsDataErr(t *testing.T) {
	if !New(KLTimeInconsistent, "x").IsDataErr() {
		t.Fatalf("expected KLTimeInconsistent to be a data error")
	}
	if !New(PriceBelowZero, "x").IsDataErr() {
		t.Fatalf("expected PriceBelowZero to be a data error")
	}
	if New(ParaError, "x").IsDataErr() {
		t.Fatalf("did not expect ParaError to be a data error")
	}
}

func TestErrCodeBandBoundaries(t *testing.T) {
	if ChanErrBegin != 0 || ChanErrEnd != 99 {
		t.Fatalf("unexpected structural error band: [%d,%d]", ChanErrBegin, ChanErrEnd)
	}
	if TradeErrBegin != 100 || TradeErrEnd != 199 {
		t.Fatalf("unexpected trading error band: [%d,%d]", TradeErrBegin, TradeErrEnd)
	}
	if KLErrBegin != 200 || KLErrEnd != 299 {
		t.Fatalf("unexpected data error band: [%d,%d]", KLErrBegin, KLErrEnd)
	}
}
