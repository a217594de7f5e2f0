// Package chanconfig centralizes all string-to-enum parsing for the
// structural pipeline's options, so the core never re-parses a config
// string past construction time.
package chanconfig

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/chanstruct/chanstruct/chanerr"
	"github.com/chanstruct/chanstruct/chanmodel"
)

// Config is the fully-parsed, immutable configuration for one
// LevelAnalyzer. Build it with New and functional Options, or load it from
// a file with LoadTOML/LoadYAML.
type Config struct {
	BiAlgo string
	// IsStrict is parsed and validated but not read outside chanconfig: its
	// effect is considered subsumed by BiFxCheck == FxCheckStrict.
	IsStrict       bool
	BiFxCheck      chanmodel.FxCheckMethod
	GapAsKl        bool
	BiEndIsPeak    bool
	BiAllowSubPeak bool

	SegAlgo    chanmodel.SegAlgo
	LeftMethod chanmodel.LeftSegMethod

	ZsCombine     bool
	ZsCombineMode chanmodel.ZSCombineMode

	MacdAlgo       chanmodel.MacdAlgo
	DivergenceRate float64

	Bsp1OnlyMultibiZs bool
	MaxBs2Rate        float64
	Bs3Follow1        bool

	StepCalculation bool
}

// fileConfig mirrors Config's fields using plain strings for the enum
// fields, so it can be decoded directly from TOML/YAML before being parsed
// into the typed Config.
type fileConfig struct {
	BiAlgo         string  `toml:"bi_algo" yaml:"bi_algo"`
	IsStrict       bool    `toml:"is_strict" yaml:"is_strict"`
	BiFxCheck      string  `toml:"bi_fx_check" yaml:"bi_fx_check"`
	GapAsKl        bool    `toml:"gap_as_kl" yaml:"gap_as_kl"`
	BiEndIsPeak    bool    `toml:"bi_end_is_peak" yaml:"bi_end_is_peak"`
	BiAllowSubPeak bool    `toml:"bi_allow_sub_peak" yaml:"bi_allow_sub_peak"`
	SegAlgo        string  `toml:"seg_algo" yaml:"seg_algo"`
	LeftMethod     string  `toml:"left_method" yaml:"left_method"`
	ZsCombine      bool    `toml:"zs_combine" yaml:"zs_combine"`
	ZsCombineMode  string  `toml:"zs_combine_mode" yaml:"zs_combine_mode"`
	MacdAlgo       string  `toml:"macd_algo" yaml:"macd_algo"`
	DivergenceRate float64 `toml:"divergence_rate" yaml:"divergence_rate"`

	Bsp1OnlyMultibiZs bool    `toml:"bsp1_only_multibi_zs" yaml:"bsp1_only_multibi_zs"`
	MaxBs2Rate        float64 `toml:"max_bs2_rate" yaml:"max_bs2_rate"`
	Bs3Follow1        bool    `toml:"bs3_follow_1" yaml:"bs3_follow_1"`

	StepCalculation bool `toml:"step_calculation" yaml:"step_calculation"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		BiAlgo:            "normal",
		IsStrict:          true,
		BiFxCheck:         "half",
		GapAsKl:           true,
		BiEndIsPeak:       true,
		BiAllowSubPeak:    true,
		SegAlgo:           "chan",
		LeftMethod:        "all",
		ZsCombine:         true,
		ZsCombineMode:     "zs",
		MacdAlgo:          "area",
		DivergenceRate:    0.9,
		Bsp1OnlyMultibiZs: false,
		MaxBs2Rate:        0.618,
		Bs3Follow1:        true,
		StepCalculation:   true,
	}
}

// Option mutates a fileConfig before it is parsed into a typed Config.
type Option func(*fileConfig)

func WithBiFxCheck(v string) Option       { return func(c *fileConfig) { c.BiFxCheck = v } }
func WithSegAlgo(v string) Option         { return func(c *fileConfig) { c.SegAlgo = v } }
func WithLeftMethod(v string) Option      { return func(c *fileConfig) { c.LeftMethod = v } }
func WithMacdAlgo(v string) Option        { return func(c *fileConfig) { c.MacdAlgo = v } }
func WithDivergenceRate(v float64) Option { return func(c *fileConfig) { c.DivergenceRate = v } }
func WithGapAsKl(v bool) Option           { return func(c *fileConfig) { c.GapAsKl = v } }
func WithBiEndIsPeak(v bool) Option       { return func(c *fileConfig) { c.BiEndIsPeak = v } }
func WithBiAllowSubPeak(v bool) Option    { return func(c *fileConfig) { c.BiAllowSubPeak = v } }
func WithZsCombine(v bool) Option         { return func(c *fileConfig) { c.ZsCombine = v } }
func WithZsCombineMode(v string) Option   { return func(c *fileConfig) { c.ZsCombineMode = v } }
func WithStepCalculation(v bool) Option   { return func(c *fileConfig) { c.StepCalculation = v } }

// New builds a Config from defaults plus options, parsing every enum
// string exactly once.
func New(opts ...Option) (Config, error) {
	fc := defaultFileConfig()
	for _, o := range opts {
		o(&fc)
	}
	return parse(fc)
}

// LoadTOML reads a TOML file and parses it into a Config.
func LoadTOML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, chanerr.Newf(chanerr.ConfigError, "read config: %v", err)
	}
	fc := defaultFileConfig()
	if err := toml.Unmarshal(data, &fc); err != nil {
		return Config{}, chanerr.Newf(chanerr.ConfigError, "decode toml config: %v", err)
	}
	return parse(fc)
}

// LoadYAML reads a YAML file and parses it into a Config.
func LoadYAML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, chanerr.Newf(chanerr.ConfigError, "read config: %v", err)
	}
	fc := defaultFileConfig()
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, chanerr.Newf(chanerr.ConfigError, "decode yaml config: %v", err)
	}
	return parse(fc)
}

func parse(fc fileConfig) (Config, error) {
	fxCheck, err := chanmodel.ParseFxCheckMethod(fc.BiFxCheck)
	if err != nil {
		return Config{}, chanerr.Newf(chanerr.ParaError, "%v", err)
	}
	segAlgo, err := chanmodel.ParseSegAlgo(fc.SegAlgo)
	if err != nil {
		return Config{}, chanerr.Newf(chanerr.ParaError, "%v", err)
	}
	if segAlgo != chanmodel.SegAlgoChan {
		return Config{}, chanerr.Newf(chanerr.ParaError, "seg_algo %q is deprecated and not implemented, use \"chan\"", fc.SegAlgo)
	}
	leftMethod, err := chanmodel.ParseLeftSegMethod(fc.LeftMethod)
	if err != nil {
		return Config{}, chanerr.Newf(chanerr.ParaError, "%v", err)
	}
	zsMode, err := chanmodel.ParseZSCombineMode(fc.ZsCombineMode)
	if err != nil {
		return Config{}, chanerr.Newf(chanerr.ParaError, "%v", err)
	}
	macdAlgo, err := chanmodel.ParseMacdAlgo(fc.MacdAlgo)
	if err != nil {
		return Config{}, chanerr.Newf(chanerr.ParaError, "%v", err)
	}
	if fc.DivergenceRate <= 0 || fc.DivergenceRate > 1 {
		return Config{}, chanerr.Newf(chanerr.ParaError, "divergence_rate must be in (0,1], got %v", fc.DivergenceRate)
	}

	return Config{
		BiAlgo:            fc.BiAlgo,
		IsStrict:          fc.IsStrict,
		BiFxCheck:         fxCheck,
		GapAsKl:           fc.GapAsKl,
		BiEndIsPeak:       fc.BiEndIsPeak,
		BiAllowSubPeak:    fc.BiAllowSubPeak,
		SegAlgo:           segAlgo,
		LeftMethod:        leftMethod,
		ZsCombine:         fc.ZsCombine,
		ZsCombineMode:     zsMode,
		MacdAlgo:          macdAlgo,
		DivergenceRate:    fc.DivergenceRate,
		Bsp1OnlyMultibiZs: fc.Bsp1OnlyMultibiZs,
		MaxBs2Rate:        fc.MaxBs2Rate,
		Bs3Follow1:        fc.Bs3Follow1,
		StepCalculation:   fc.StepCalculation,
	}, nil
}
