package tuner

import (
	"context"
	"errors"
	"log"

	"github.com/ChizhovVadim/kpptlearn/internal/domain"
	. "github.com/ChizhovVadim/kpptlearn/internal/math"
	"github.com/ChizhovVadim/kpptlearn/internal/ml"
	"github.com/ChizhovVadim/kpptlearn/pkg/common"
	"gonum.org/v1/gonum/stat"
)

// MeasureError evaluates the table of cfg.EvalDir on the test records.
func MeasureError(ctx context.Context, cfg *Config) (LossSummary, error) {
	var err = cfg.Validate()
	if err != nil {
		return LossSummary{}, err
	}
	if cfg.EvalDir == "" {
		return LossSummary{}, errors.New("eval dir is required")
	}
	table, err := initTable(cfg)
	if err != nil {
		return LossSummary{}, err
	}
	test, err := loadTestRecords(cfg)
	if err != nil {
		return LossSummary{}, err
	}
	var meter = NewLossMeter(len(test), cfg.WinningRateCoefficient)
	summary, err := measureRecords(ctx, newWorkers(cfg, table), test, meter, cfg.ElmoLambda)
	if err != nil {
		return LossSummary{}, err
	}
	log.Printf("measureError %+v", summary)
	return summary, nil
}

// EntropySummary describes how well the recorded scores of the test
// records predict the game outcomes, without any search.
type EntropySummary struct {
	Records              int
	EvalEntropy          float64
	WinLoseCrossEntropy  float64
	MeanAbsRecordedScore float64
}

// TestDataEntropy measures the test records alone.
func TestDataEntropy(cfg *Config) (EntropySummary, error) {
	var records, err = loadTestRecords(cfg)
	if err != nil {
		return EntropySummary{}, err
	}
	var entropy = make([]float64, len(records))
	var cross = make([]float64, len(records))
	var score = make([]float64, len(records))
	var pos common.Position
	for i := range records {
		var rec = &records[i]
		err = pos.Unpack(cfg.Geometry, &rec.Board)
		if err != nil {
			return EntropySummary{}, err
		}
		var p = WinningRate(float64(rec.Score), cfg.WinningRateCoefficient)
		entropy[i] = ml.Entropy(p)
		cross[i] = ml.CrossEntropy(outcome(rec), p)
		score[i] = float64(abs(int(rec.Score)))
	}
	var result = EntropySummary{
		Records:              len(records),
		EvalEntropy:          stat.Mean(entropy, nil),
		WinLoseCrossEntropy:  stat.Mean(cross, nil),
		MeanAbsRecordedScore: stat.Mean(score, nil),
	}
	log.Printf("testDataEntropy %+v", result)
	return result, nil
}

func outcome(rec *domain.Record) float64 {
	if rec.Win() {
		return 1
	}
	return 0
}
