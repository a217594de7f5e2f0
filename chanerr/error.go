// Package chanerr defines the typed error and numeric error-code bands
// used throughout the chan structural pipeline.
package chanerr

import "fmt"

// ErrCode bands: 0-99 structural/chan, 100-199 trading, 200-299 data.
type ErrCode int

const (
	ChanErrBegin ErrCode = 0
	CommonError  ErrCode = 1
	SrcDataNotFound ErrCode = 3
	SrcDataTypeErr  ErrCode = 4
	ParaError       ErrCode = 5
	ExtraKluErr     ErrCode = 6
	SegEndValueErr  ErrCode = 7
	SegEigenErr     ErrCode = 8
	BiErr           ErrCode = 9
	CombinerErr     ErrCode = 10
	PlotErr         ErrCode = 11
	ModelError      ErrCode = 12
	SegLenErr       ErrCode = 13
	EnvConfErr      ErrCode = 14
	UnknownDbType   ErrCode = 15
	FeatureError    ErrCode = 16
	ConfigError     ErrCode = 17
	SrcDataFormatError ErrCode = 18
	ChanErrEnd      ErrCode = 99

	TradeErrBegin ErrCode = 100
	SignalTraded  ErrCode = 117
	TradeErrEnd   ErrCode = 199

	KLErrBegin            ErrCode = 200
	PriceBelowZero        ErrCode = 201
	KLDataNotAlign        ErrCode = 202
	KLDataInvalid         ErrCode = 203
	KLTimeInconsistent    ErrCode = 204
	TradeinfoTooMuchZero  ErrCode = 205
	KLNotMonotonous       ErrCode = 206
	SnapshotErr           ErrCode = 207
	Suspension            ErrCode = 208
	StockIpoTooLate       ErrCode = 209
	NoData                ErrCode = 210
	StockNotActive        ErrCode = 211
	StockPriceNotActive   ErrCode = 212
	KLErrEnd              ErrCode = 299
)

// ChanError is the single error type raised by the structural pipeline.
type ChanError struct {
	Code ErrCode
	Msg  string
}

func New(code ErrCode, msg string) *ChanError {
	return &ChanError{Code: code, Msg: msg}
}

func Newf(code ErrCode, format string, args ...any) *ChanError {
	return &ChanError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func (e *ChanError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Msg)
}

// IsDataErr reports whether the error is in the data band (200-299).
func (e *ChanError) IsDataErr() bool {
	return e.Code >= KLErrBegin && e.Code < KLErrEnd
}

// IsChanErr reports whether the error is in the structural band (0-99).
func (e *ChanError) IsChanErr() bool {
	return e.Code >= ChanErrBegin && e.Code < ChanErrEnd
}

// IsTradeErr reports whether the error is in the trading band (100-199).
func (e *ChanError) IsTradeErr() bool {
	return e.Code >= TradeErrBegin && e.Code < TradeErrEnd
}
