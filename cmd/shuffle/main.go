package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/ChizhovVadim/kpptlearn/internal/dataset"
	"github.com/ChizhovVadim/kpptlearn/internal/feature"
	"github.com/ChizhovVadim/kpptlearn/internal/tuner"
	"github.com/ChizhovVadim/kpptlearn/internal/weights"
)

var (
	config = dataset.ShuffleOptions{
		InputFolder:  "kifu",
		OutputFolder: "shuffled",
		Shards:       256,
		MinPly:       1,
		Seed:         1,
		Threads:      runtime.NumCPU(),
	}
	geometry     string
	evalFolder   string
	applyQSearch bool
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	flag.StringVar(&config.InputFolder, "input", config.InputFolder, "Folder with record files")
	flag.StringVar(&config.OutputFolder, "output", config.OutputFolder, "Folder for shuffled shards")
	flag.IntVar(&config.Shards, "shards", config.Shards, "Number of output shards")
	flag.IntVar(&config.MinPly, "minply", config.MinPly, "Skip records before this game ply")
	flag.IntVar(&config.MaxPly, "maxply", config.MaxPly, "Skip records after this game ply, 0 keeps all")
	flag.Int64Var(&config.Seed, "seed", config.Seed, "Random seed")
	flag.IntVar(&config.Threads, "threads", config.Threads, "Number of threads")
	flag.BoolVar(&config.Compress, "compress", config.Compress, "Write zstd compressed shards")
	flag.BoolVar(&applyQSearch, "applyqsearch", false, "Replace positions by their quiescence leaf")
	flag.StringVar(&evalFolder, "eval", "eval", "Evaluation folder for -applyqsearch")
	flag.StringVar(&geometry, "geometry", "standard", "Board geometry: standard or tiny")
	flag.Parse()

	log.Printf("%+v", config)

	var err = run()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if applyQSearch {
		var geo, err = tuner.ParseGeometry(geometry)
		if err != nil {
			return err
		}
		table, err := weights.Load(evalFolder, feature.NewSpace(geo))
		if err != nil {
			return err
		}
		config.Transform = tuner.QSearchTransform(geo, table.Eval(), config.Threads)
	}

	var count, err = dataset.Shuffle(ctx, config)
	if err != nil {
		return err
	}
	log.Println("shuffle finished",
		"records", count)
	return nil
}
