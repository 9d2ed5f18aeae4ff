package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/ChizhovVadim/kpptlearn/internal/tuner"
)

var (
	config   = tuner.DefaultConfig()
	mode     string
	geometry string
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	flag.StringVar(&mode, "mode", "train", "train, measure or entropy")
	flag.StringVar(&geometry, "geometry", "standard", "Board geometry: standard or tiny")
	flag.IntVar(&config.Threads, "threads", config.Threads, "Number of threads")
	flag.IntVar(&config.MiniBatchSize, "batch", config.MiniBatchSize, "Mini-batch size")
	flag.Int64Var(&config.NumPositions, "positions", config.NumPositions, "Number of training positions")
	flag.Float64Var(&config.MinLearningRate, "minlr", config.MinLearningRate, "Minimum learning rate")
	flag.Float64Var(&config.MaxLearningRate, "maxlr", config.MaxLearningRate, "Maximum learning rate")
	flag.Float64Var(&config.NumLearningRateCycles, "cycles", config.NumLearningRateCycles, "Number of learning rate cycles")
	flag.Float64Var(&config.FobosL1, "l1", config.FobosL1, "FOBOS L1 parameter")
	flag.Float64Var(&config.FobosL2, "l2", config.FobosL2, "FOBOS L2 parameter")
	flag.Float64Var(&config.ElmoLambda, "lambda", config.ElmoLambda, "Weight of the recorded score against the game result")
	flag.Float64Var(&config.WinningRateCoefficient, "k", config.WinningRateCoefficient, "Evaluation units per logit")
	flag.Float64Var(&config.AdamBeta2, "beta2", config.AdamBeta2, "Adam beta2")
	flag.IntVar(&config.EvalLimit, "evallimit", config.EvalLimit, "Skip records with a larger score")
	flag.IntVar(&config.ReductionGamePly, "reductionply", config.ReductionGamePly, "Thin out records before this game ply")
	flag.IntVar(&config.MirrorPercentage, "mirror", config.MirrorPercentage, "Percentage of mirrored positions")
	flag.StringVar(&config.KifuDir, "kifu", config.KifuDir, "Training records folder")
	flag.StringVar(&config.KifuForTestDir, "test", config.KifuForTestDir, "Test records folder")
	flag.IntVar(&config.NumTestPositions, "testpositions", config.NumTestPositions, "Number of test positions")
	flag.IntVar(&config.Loops, "loops", config.Loops, "Passes over the training records")
	flag.StringVar(&config.EvalDir, "eval", config.EvalDir, "Initial evaluation folder")
	flag.StringVar(&config.OutputDir, "output", config.OutputDir, "Output folder")
	flag.Int64Var(&config.SaveInterval, "saveinterval", config.SaveInterval, "Save every this many positions")
	flag.Float64Var(&config.RandomInitScale, "randominit", config.RandomInitScale, "Random initialisation scale")
	flag.Int64Var(&config.Seed, "seed", config.Seed, "Random seed")
	flag.Parse()

	var err = run()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	var geo, err = tuner.ParseGeometry(geometry)
	if err != nil {
		return err
	}
	config.Geometry = geo

	var ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	switch mode {
	case "train":
		return tuner.Run(ctx, &config)
	case "measure":
		_, err = tuner.MeasureError(ctx, &config)
		return err
	case "entropy":
		_, err = tuner.TestDataEntropy(&config)
		return err
	}
	return fmt.Errorf("unknown mode %q", mode)
}
