package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/chanstruct/chanstruct/chanmodel"
)

// loadBars reads a bar CSV with header "time,open,high,low,close[,volume,turnover,turnrate]".
// Columns are found by header name; a missing price or trade-metric column
// reads as 0.
func loadBars(path string) ([]chanmodel.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}

	var bars []chanmodel.Bar
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(bars)+1, err)
		}
		bar, err := parseRow(rec, col)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(bars)+1, err)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func parseRow(rec []string, col map[string]int) (chanmodel.Bar, error) {
	get := func(name string) (string, bool) {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return "", false
		}
		return rec[i], true
	}
	parseF := func(name string) (float64, error) {
		s, ok := get(name)
		if !ok {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}

	tsStr, ok := get("time")
	if !ok {
		return chanmodel.Bar{}, fmt.Errorf("missing time column")
	}
	ts, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return chanmodel.Bar{}, fmt.Errorf("parse time: %w", err)
	}

	open, err := parseF("open")
	if err != nil {
		return chanmodel.Bar{}, err
	}
	high, err := parseF("high")
	if err != nil {
		return chanmodel.Bar{}, err
	}
	low, err := parseF("low")
	if err != nil {
		return chanmodel.Bar{}, err
	}
	closePrice, err := parseF("close")
	if err != nil {
		return chanmodel.Bar{}, err
	}
	volume, err := parseF("volume")
	if err != nil {
		return chanmodel.Bar{}, err
	}
	turnover, err := parseF("turnover")
	if err != nil {
		return chanmodel.Bar{}, err
	}
	turnrate, err := parseF("turnrate")
	if err != nil {
		return chanmodel.Bar{}, err
	}

	return chanmodel.Bar{
		Time:     time.Unix(ts, 0).UTC(),
		Open:     open,
		High:     high,
		Low:      low,
		Close:    closePrice,
		Volume:   volume,
		Turnover: turnover,
		Turnrate: turnrate,
		KLType:   chanmodel.KDay,
	}, nil
}
