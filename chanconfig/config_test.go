package chanconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chanstruct/chanstruct/chanmodel"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.BiFxCheck != chanmodel.FxCheckHalf {
		t.Fatalf("expected default bi_fx_check=half, got %v", cfg.BiFxCheck)
	}
	if cfg.SegAlgo != chanmodel.SegAlgoChan {
		t.Fatalf("expected default seg_algo=chan, got %v", cfg.SegAlgo)
	}
	if cfg.MacdAlgo != chanmodel.MacdArea {
		t.Fatalf("expected default macd_algo=area, got %v", cfg.MacdAlgo)
	}
	if cfg.DivergenceRate != 0.9 {
		t.Fatalf("expected default divergence_rate=0.9, got %v", cfg.DivergenceRate)
	}
	if !cfg.StepCalculation {
		t.Fatalf("expected step_calculation to default true")
	}
}

func TestNew_OptionsOverrideDefaults(t *testing.T) {
	cfg, err := New(
		WithBiFxCheck("strict"),
		WithMacdAlgo("peak"),
		WithDivergenceRate(0.75),
		WithStepCalculation(false),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.BiFxCheck != chanmodel.FxCheckStrict {
		t.Fatalf("expected bi_fx_check=strict, got %v", cfg.BiFxCheck)
	}
	if cfg.MacdAlgo != chanmodel.MacdPeak {
		t.Fatalf("expected macd_algo=peak, got %v", cfg.MacdAlgo)
	}
	if cfg.DivergenceRate != 0.75 {
		t.Fatalf("expected divergence_rate=0.75, got %v", cfg.DivergenceRate)
	}
	if cfg.StepCalculation {
		t.Fatalf("expected step_calculation=false")
	}
}

func TestNew_RejectsDeprecatedSegAlgo(t *testing.T) {
	if _, err := New(WithSegAlgo("1+1")); err == nil {
		t.Fatalf("expected an error for the deprecated 1+1 seg_algo")
	}
}

func TestNew_RejectsUnknownEnumValue(t *testing.T) {
	if _, err := New(WithBiFxCheck("bogus")); err == nil {
		t.Fatalf("expected an error for an unknown bi_fx_check value")
	}
}

func TestNew_RejectsOutOfRangeDivergenceRate(t *testing.T) {
	if _, err := New(WithDivergenceRate(0)); err == nil {
		t.Fatalf("expected an error for divergence_rate=0")
	}
	if _, err := New(WithDivergenceRate(1.5)); err == nil {
		t.Fatalf("expected an error for divergence_rate>1")
	}
}

func TestLoadTOML_ParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "bi_fx_check = \"loss\"\nmacd_algo = \"volume\"\ndivergence_rate = 0.8\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	cfg, err := LoadTOML(path)
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if cfg.BiFxCheck != chanmodel.FxCheckLoss {
		t.Fatalf("expected bi_fx_check=loss, got %v", cfg.BiFxCheck)
	}
	if cfg.MacdAlgo != chanmodel.MacdVolume {
		t.Fatalf("expected macd_algo=volume, got %v", cfg.MacdAlgo)
	}
	if cfg.DivergenceRate != 0.8 {
		t.Fatalf("expected divergence_rate=0.8, got %v", cfg.DivergenceRate)
	}
	// fields absent from the file keep their defaults
	if cfg.SegAlgo != chanmodel.SegAlgoChan {
		t.Fatalf("expected seg_algo to keep its default, got %v", cfg.SegAlgo)
	}
}

func TestLoadYAML_ParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "bi_fx_check: totally\nzs_combine_mode: peak\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	cfg, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if cfg.BiFxCheck != chanmodel.FxCheckTotally {
		t.Fatalf("expected bi_fx_check=totally, got %v", cfg.BiFxCheck)
	}
	if cfg.ZsCombineMode != chanmodel.ZSCombinePeak {
		t.Fatalf("expected zs_combine_mode=peak, got %v", cfg.ZsCombineMode)
	}
}

func TestLoadTOML_MissingFile(t *testing.T) {
	if _, err := LoadTOML(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
