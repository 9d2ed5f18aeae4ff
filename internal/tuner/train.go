package tuner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ChizhovVadim/kpptlearn/internal/dataset"
	"github.com/ChizhovVadim/kpptlearn/internal/domain"
	"github.com/ChizhovVadim/kpptlearn/internal/feature"
	"github.com/ChizhovVadim/kpptlearn/internal/parallel"
	"github.com/ChizhovVadim/kpptlearn/internal/progress"
	"github.com/ChizhovVadim/kpptlearn/internal/weights"
)

const (
	sampleChunk      = 1000
	progressInterval = 10 * time.Second
	finalFolder      = "final"
)

// Train runs a training session configured by shell options.
func Train(ctx context.Context, options map[string]string) error {
	var cfg, err = ParseOptions(options)
	if err != nil {
		return err
	}
	return Run(ctx, &cfg)
}

type worker struct {
	strapper *Strapper
	rnd      *rand.Rand
}

type trainer struct {
	cfg       *Config
	table     *weights.Table
	workers   []*worker
	reader    *dataset.Reader
	test      []domain.Record
	trainLoss *LossMeter
	testLoss  *LossMeter
}

// Run trains the table until NumPositions samples were used or the
// training records are exhausted. Tables are saved to OutputDir.
func Run(ctx context.Context, cfg *Config) error {
	var err = cfg.Validate()
	if err != nil {
		return err
	}
	log.Printf("%+v", *cfg)

	t, err := newTrainer(cfg)
	if err != nil {
		return err
	}
	defer t.reader.Close()
	return t.run(ctx)
}

func newTrainer(cfg *Config) (*trainer, error) {
	var table, err = initTable(cfg)
	if err != nil {
		return nil, err
	}
	test, err := loadTestRecords(cfg)
	if err != nil && !errors.Is(err, ErrNoTestData) {
		return nil, err
	}
	reader, err := dataset.NewReader(cfg.KifuDir, cfg.Loops, cfg.Threads)
	if err != nil {
		return nil, err
	}
	return &trainer{
		cfg:       cfg,
		table:     table,
		workers:   newWorkers(cfg, table),
		reader:    reader,
		test:      test,
		trainLoss: NewLossMeter(cfg.MiniBatchSize, cfg.WinningRateCoefficient),
		testLoss:  NewLossMeter(len(test), cfg.WinningRateCoefficient),
	}, nil
}

func initTable(cfg *Config) (*weights.Table, error) {
	var space = feature.NewSpace(cfg.Geometry)
	if cfg.EvalDir != "" {
		return weights.Load(cfg.EvalDir, space)
	}
	var table = weights.New(space)
	if cfg.RandomInitScale > 0 {
		table.InitRandom(rand.New(rand.NewSource(cfg.Seed)), cfg.RandomInitScale)
	}
	log.Println("initWeights",
		"cells", table.Len(),
		"scale", cfg.RandomInitScale)
	return table, nil
}

func loadTestRecords(cfg *Config) ([]domain.Record, error) {
	if cfg.KifuForTestDir == "" || cfg.NumTestPositions <= 0 {
		return nil, ErrNoTestData
	}
	var records, err = dataset.LoadRecords(cfg.KifuForTestDir, cfg.NumTestPositions)
	if err != nil {
		return nil, fmt.Errorf("load test records: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoTestData
	}
	return records, nil
}

func newWorkers(cfg *Config, table *weights.Table) []*worker {
	var workers = make([]*worker, cfg.Threads)
	for i := range workers {
		workers[i] = &worker{
			strapper: NewStrapper(cfg.Geometry, table.Eval()),
			rnd:      rand.New(rand.NewSource(cfg.Seed + int64(i) + 1)),
		}
	}
	return workers
}

func (t *trainer) run(ctx context.Context) error {
	var cfg = t.cfg
	log.Println("Train started")
	defer log.Println("Train finished")

	var err = t.save(0)
	if err != nil {
		return err
	}
	lossLog, err := createLossLog(cfg.OutputDir)
	if err != nil {
		return err
	}
	defer lossLog.Close()

	var report = progress.New(cfg.NumPositions, progressInterval)
	var processed int64
	var miniBatch int
	for processed < cfg.NumPositions {
		report.Show(processed)
		var n = int(min(int64(cfg.MiniBatchSize), cfg.NumPositions-processed))
		miniBatch++
		var learningRate = LearningRate(cfg, processed)

		train, err := t.trainBatch(ctx, n)
		if err != nil {
			return err
		}
		var consumed = train.Samples + train.Mismatches
		if consumed == 0 {
			log.Println("training records exhausted", "positions", processed)
			break
		}
		test, err := t.measure(ctx, t.test, t.testLoss)
		if err != nil {
			return err
		}
		err = Redistribute(ctx, t.table, cfg.Threads)
		if err != nil {
			return err
		}
		err = Optimize(ctx, t.table, cfg.Threads, NewOptimizer(cfg, learningRate, miniBatch))
		if err != nil {
			return err
		}

		err = lossLog.Write(processed, time.Now(), learningRate, train, test)
		if err != nil {
			return err
		}
		log.Println("miniBatch",
			"index", miniBatch,
			"positions", processed,
			"lr", learningRate,
			"mismatches", train.Mismatches,
			"mismatchRate", train.MismatchRate(),
			"trainCrossEntropy", train.CrossEntropy,
			"testCrossEntropy", test.CrossEntropy)

		var prev = processed
		processed += int64(consumed)
		if cfg.SaveInterval > 0 && processed/cfg.SaveInterval != prev/cfg.SaveInterval {
			err = t.save(processed)
			if err != nil {
				return err
			}
		}
		if consumed < n {
			log.Println("training records exhausted", "positions", processed)
			break
		}
	}
	return t.table.Save(filepath.Join(cfg.OutputDir, finalFolder))
}

func (t *trainer) save(positions int64) error {
	return t.table.Save(filepath.Join(t.cfg.OutputDir, strconv.FormatInt(positions, 10)))
}

// trainBatch reads up to n samples and accumulates their raw gradients.
func (t *trainer) trainBatch(ctx context.Context, n int) (LossSummary, error) {
	var meter = t.trainLoss
	meter.Reset()
	var cfg = t.cfg
	var err = parallel.For(ctx, cfg.Threads, n, sampleChunk, func(thread, begin, end int) error {
		var w = t.workers[thread]
		var rec domain.Record
		for i := begin; i < end; i++ {
			var ok, err = t.next(thread, w, &rec)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			var index = i
			var matched = w.strapper.Strap(&rec, cfg.ElmoLambda, func(sample *Sample) {
				Accumulate(t.table, sample, cfg.WinningRateCoefficient)
				meter.Observe(index, sample)
			})
			if !matched {
				meter.Mismatch(index)
			}
		}
		return nil
	})
	if err != nil {
		return LossSummary{}, err
	}
	if err = t.reader.Err(); err != nil {
		return LossSummary{}, err
	}
	return meter.Summary(), nil
}

// next reads the next usable record into rec and loads its position.
func (t *trainer) next(thread int, w *worker, rec *domain.Record) (bool, error) {
	var cfg = t.cfg
	for t.reader.Read(thread, rec) {
		if abs(int(rec.Score)) > cfg.EvalLimit {
			continue
		}
		if cfg.ReductionGamePly > 1 && int(rec.GamePly) < w.rnd.Intn(cfg.ReductionGamePly) {
			continue
		}
		var mirror = w.rnd.Intn(100) < cfg.MirrorPercentage
		var pos, err = w.strapper.Load(rec, mirror)
		if err != nil {
			return false, err
		}
		if pos.IsMated() || pos.DeclarationWin() {
			continue
		}
		return true, nil
	}
	return false, nil
}

// measure straps every record without touching gradients.
func (t *trainer) measure(ctx context.Context, records []domain.Record, meter *LossMeter) (LossSummary, error) {
	return measureRecords(ctx, t.workers, records, meter, t.cfg.ElmoLambda)
}

func measureRecords(ctx context.Context, workers []*worker, records []domain.Record,
	meter *LossMeter, lambda float64) (LossSummary, error) {
	meter.Reset()
	var err = parallel.For(ctx, len(workers), len(records), sampleChunk, func(thread, begin, end int) error {
		var w = workers[thread]
		for i := begin; i < end; i++ {
			var _, err = w.strapper.Load(&records[i], false)
			if err != nil {
				return err
			}
			var index = i
			var matched = w.strapper.Strap(&records[i], lambda, func(sample *Sample) {
				meter.Observe(index, sample)
			})
			if !matched {
				meter.Mismatch(index)
			}
		}
		return nil
	})
	if err != nil {
		return LossSummary{}, err
	}
	return meter.Summary(), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
