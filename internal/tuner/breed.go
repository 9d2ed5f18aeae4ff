package tuner

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ChizhovVadim/kpptlearn/internal/feature"
	"github.com/ChizhovVadim/kpptlearn/internal/weights"
	"github.com/ChizhovVadim/kpptlearn/pkg/common"
)

// BreedConfig names two tables to blend and the output folder.
type BreedConfig struct {
	BaseDir    string
	AnotherDir string
	OutputDir  string
	Ratio      float64
	Geometry   *common.Geometry
}

var BreedOptionNames = []string{
	"BreedEvalBaseFolderPath",
	"BreedEvalAnotherFolderPath",
	"BreedEvalOutputFolderPath",
	"BreedEvalRatio",
}

func ParseBreedOptions(options map[string]string) (BreedConfig, error) {
	var cfg = BreedConfig{
		BaseDir:    "eval",
		AnotherDir: "eval",
		OutputDir:  "eval",
		Ratio:      1,
		Geometry:   common.Standard,
	}
	var setters = map[string]func(string) error{
		"breedevalbasefolderpath":    stringOption(&cfg.BaseDir),
		"breedevalanotherfolderpath": stringOption(&cfg.AnotherDir),
		"breedevaloutputfolderpath":  stringOption(&cfg.OutputDir),
		"breedevalratio":             floatOption(&cfg.Ratio),
		"geometry": func(s string) error {
			var geo, err = ParseGeometry(s)
			if err != nil {
				return err
			}
			cfg.Geometry = geo
			return nil
		},
	}
	for name, value := range options {
		var set, found = setters[strings.ToLower(name)]
		if !found {
			continue
		}
		if err := set(strings.TrimSpace(value)); err != nil {
			return BreedConfig{}, fmt.Errorf("option %v=%q: %w", name, value, err)
		}
	}
	return cfg, cfg.Validate()
}

func (c *BreedConfig) Validate() error {
	if c.BaseDir == "" || c.AnotherDir == "" || c.OutputDir == "" {
		return errors.New("breed folders are required")
	}
	if c.Ratio < 0 || c.Ratio > 1 {
		return fmt.Errorf("breed ratio %v outside [0, 1]", c.Ratio)
	}
	return nil
}

// BreedEval blends the two tables and saves the result.
func BreedEval(cfg *BreedConfig) error {
	var err = cfg.Validate()
	if err != nil {
		return err
	}
	var space = feature.NewSpace(cfg.Geometry)
	base, err := weights.Load(cfg.BaseDir, space)
	if err != nil {
		return err
	}
	another, err := weights.Load(cfg.AnotherDir, space)
	if err != nil {
		return err
	}
	result, err := weights.Breed(base, another, cfg.Ratio)
	if err != nil {
		return err
	}
	var zeroBase, zeroAnother, zeroBoth int
	for i := 0; i < base.Len(); i++ {
		var a, b = base.Value(i) == 0, another.Value(i) == 0
		if a {
			zeroBase++
		}
		if b {
			zeroAnother++
		}
		if a && b {
			zeroBoth++
		}
	}
	log.Println("breedEval",
		"output", cfg.OutputDir,
		"zeroBase", zeroBase,
		"zeroAnother", zeroAnother,
		"zeroBoth", zeroBoth)
	return result.Save(cfg.OutputDir)
}
