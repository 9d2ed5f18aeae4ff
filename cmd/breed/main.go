package main

import (
	"flag"
	"log"
	"os"

	"github.com/ChizhovVadim/kpptlearn/internal/tuner"
)

var (
	config = tuner.BreedConfig{
		BaseDir:    "eval",
		AnotherDir: "eval",
		OutputDir:  "eval",
		Ratio:      1,
	}
	geometry string
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	flag.StringVar(&config.BaseDir, "base", config.BaseDir, "Base evaluation folder")
	flag.StringVar(&config.AnotherDir, "another", config.AnotherDir, "Second evaluation folder")
	flag.StringVar(&config.OutputDir, "output", config.OutputDir, "Output folder")
	flag.Float64Var(&config.Ratio, "ratio", config.Ratio, "Share of the base value where both are set")
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
	var geo, err = tuner.ParseGeometry(geometry)
	if err != nil {
		return err
	}
	config.Geometry = geo
	return tuner.BreedEval(&config)
}
