package tuner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ChizhovVadim/kpptlearn/pkg/common"
)

// ParseOptions builds a Config from shell options. Option names are case
// insensitive; options that are not set keep their defaults.
func ParseOptions(options map[string]string) (Config, error) {
	var cfg = DefaultConfig()
	var setters = make(map[string]func(string) error)
	for name, set := range optionSetters(&cfg) {
		setters[strings.ToLower(name)] = set
	}
	for name, value := range options {
		var set, found = setters[strings.ToLower(name)]
		if !found {
			continue
		}
		if err := set(strings.TrimSpace(value)); err != nil {
			return Config{}, fmt.Errorf("option %v=%q: %w", name, value, err)
		}
	}
	return cfg, cfg.Validate()
}

// OptionNames lists the names ParseOptions understands.
func OptionNames() []string {
	var cfg Config
	var names []string
	for name := range optionSetters(&cfg) {
		names = append(names, name)
	}
	return names
}

func optionSetters(cfg *Config) map[string]func(string) error {
	return map[string]func(string) error{
		"Threads":                       intOption(&cfg.Threads),
		"MiniBatchSize":                 intOption(&cfg.MiniBatchSize),
		"LearnerNumPositions":           int64Option(&cfg.NumPositions),
		"MinLearningRate":               floatOption(&cfg.MinLearningRate),
		"MaxLearningRate":               floatOption(&cfg.MaxLearningRate),
		"NumLearningRateCycles":         floatOption(&cfg.NumLearningRateCycles),
		"FobosL1Parameter":              floatOption(&cfg.FobosL1),
		"FobosL2Parameter":              floatOption(&cfg.FobosL2),
		"ElmoLambda":                    floatOption(&cfg.ElmoLambda),
		"ValueToWinningRateCoefficient": floatOption(&cfg.WinningRateCoefficient),
		"AdamBeta2":                     floatOption(&cfg.AdamBeta2),
		"eval_limit":                    intOption(&cfg.EvalLimit),
		"reduction_gameply":             intOption(&cfg.ReductionGamePly),
		"mirror_percentage":             intOption(&cfg.MirrorPercentage),
		"KifuDir":                       stringOption(&cfg.KifuDir),
		"KifuForTestDir":                stringOption(&cfg.KifuForTestDir),
		"LearnerNumPositionsForTest":    intOption(&cfg.NumTestPositions),
		"Loops":                         intOption(&cfg.Loops),
		"EvalDir":                       stringOption(&cfg.EvalDir),
		"EvalSaveDir":                   stringOption(&cfg.OutputDir),
		"eval_save_interval":            int64Option(&cfg.SaveInterval),
		"RandomInitScale":               floatOption(&cfg.RandomInitScale),
		"Seed":                          int64Option(&cfg.Seed),
		"Geometry": func(s string) error {
			var geo, err = ParseGeometry(s)
			if err != nil {
				return err
			}
			cfg.Geometry = geo
			return nil
		},
	}
}

func ParseGeometry(s string) (*common.Geometry, error) {
	switch strings.ToLower(s) {
	case "standard", "9x9":
		return common.Standard, nil
	case "tiny", "3x3":
		return common.Tiny, nil
	}
	return nil, fmt.Errorf("unknown geometry %q", s)
}

func intOption(p *int) func(string) error {
	return func(s string) error {
		var v, err = strconv.Atoi(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
}

func int64Option(p *int64) func(string) error {
	return func(s string) error {
		var v, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
}

func floatOption(p *float64) func(string) error {
	return func(s string) error {
		var v, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
}

func stringOption(p *string) func(string) error {
	return func(s string) error {
		*p = s
		return nil
	}
}
