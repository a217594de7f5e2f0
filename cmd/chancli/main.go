// Command chancli drives a LevelAnalyzer off a CSV bar file and prints the
// structural snapshot tables.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chanstruct/chanstruct/chananalyzer"
	"github.com/chanstruct/chanstruct/chanconfig"
)

func main() {
	csvPath := flag.String("bars", "", "path to a CSV file of bars (time,open,high,low,close[,volume,turnover,turnrate])")
	configPath := flag.String("config", "", "optional TOML config file")
	presetFile := flag.String("preset-file", "", "optional YAML file of named presets (see chanconfig.PresetStore)")
	preset := flag.String("preset", "", "preset name to resolve from -preset-file")
	exportCSV := flag.String("export-csv", "", "optional path to write the merged-candle CSV to instead of stdout tables")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "usage: chancli -bars bars.csv [-config config.toml | -preset-file presets.yaml -preset name]")
		os.Exit(2)
	}

	var cfg chanconfig.Config
	var err error
	switch {
	case *presetFile != "":
		if *preset == "" {
			log.Fatalf("config: -preset is required when -preset-file is set")
		}
		cfg, err = chanconfig.NewPresetStore(*presetFile).Resolve(*preset)
	case *configPath != "":
		cfg, err = chanconfig.LoadTOML(*configPath)
	default:
		cfg, err = chanconfig.New()
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bars, err := loadBars(*csvPath)
	if err != nil {
		log.Fatalf("load bars: %v", err)
	}

	analyzer := chananalyzer.New(cfg)
	for _, bar := range bars {
		if err := analyzer.Push(bar); err != nil {
			log.Fatalf("push bar at %s: %v", bar.Time, err)
		}
	}
	if !cfg.StepCalculation {
		analyzer.Finalize()
	}

	snap := analyzer.Snapshot()
	if *exportCSV != "" {
		csv := snap.CandleCSV(chananalyzer.CandleCSVOptions{PricePrecision: chananalyzer.PrecisionAuto})
		if err := os.WriteFile(*exportCSV, []byte(csv), 0o644); err != nil {
			log.Fatalf("write csv: %v", err)
		}
		return
	}
	snap.WriteTables(os.Stdout)
}
