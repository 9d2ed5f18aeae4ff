package main

import (
	"context"
	"log"
	"os"

	"github.com/ChizhovVadim/kpptlearn/internal/tuner"
	"github.com/ChizhovVadim/kpptlearn/pkg/usi"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	var optionNames = append(tuner.OptionNames(), tuner.BreedOptionNames...)
	var protocol = usi.New("kpptlearn", "Vadim Chizhov", optionNames, map[string]usi.Command{
		"learn":   tuner.Train,
		"measure": measure,
		"entropy": entropy,
		"breed":   breed,
	})
	protocol.Run(log.New(os.Stderr, "", log.LstdFlags))
}

func measure(ctx context.Context, options map[string]string) error {
	var cfg, err = tuner.ParseOptions(options)
	if err != nil {
		return err
	}
	_, err = tuner.MeasureError(ctx, &cfg)
	return err
}

func entropy(ctx context.Context, options map[string]string) error {
	var cfg, err = tuner.ParseOptions(options)
	if err != nil {
		return err
	}
	_, err = tuner.TestDataEntropy(&cfg)
	return err
}

func breed(ctx context.Context, options map[string]string) error {
	var cfg, err = tuner.ParseBreedOptions(options)
	if err != nil {
		return err
	}
	return tuner.BreedEval(&cfg)
}
