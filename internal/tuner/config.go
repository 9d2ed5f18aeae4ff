package tuner

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/ChizhovVadim/kpptlearn/pkg/common"
)

var ErrNoTestData = errors.New("no test records")

// Config holds the hyperparameters and paths of one training run.
// It is built once and not modified while training.
type Config struct {
	Threads       int
	MiniBatchSize int
	// NumPositions is the sample budget of the run. The learning rate
	// schedule is spread over it.
	NumPositions          int64
	MinLearningRate       float64
	MaxLearningRate       float64
	NumLearningRateCycles float64
	FobosL1               float64
	FobosL2               float64
	ElmoLambda            float64
	// WinningRateCoefficient is the number of evaluation units per logit.
	WinningRateCoefficient float64
	AdamBeta2              float64

	EvalLimit        int
	ReductionGamePly int
	MirrorPercentage int

	KifuDir          string
	KifuForTestDir   string
	NumTestPositions int
	Loops            int

	// EvalDir is the initial table; empty means random initialisation.
	EvalDir         string
	OutputDir       string
	SaveInterval    int64
	RandomInitScale float64
	Seed            int64

	Geometry *common.Geometry
}

func DefaultConfig() Config {
	return Config{
		Threads:                runtime.NumCPU(),
		MiniBatchSize:          1_000_000,
		NumPositions:           10_000_000_000,
		MinLearningRate:        0.5,
		MaxLearningRate:        0.5,
		NumLearningRateCycles:  10,
		FobosL1:                0,
		FobosL2:                math.Pow(0.9, 1.0/1000),
		ElmoLambda:             1,
		WinningRateCoefficient: 600,
		AdamBeta2:              0.999,
		EvalLimit:              32000,
		ReductionGamePly:       1,
		MirrorPercentage:       0,
		KifuDir:                "kifu",
		KifuForTestDir:         "kifu_for_test",
		NumTestPositions:       1_000_000,
		Loops:                  1,
		OutputDir:              "learner_output",
		RandomInitScale:        0,
		Seed:                   1,
		Geometry:               common.Standard,
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Threads <= 0:
		return fmt.Errorf("bad threads %v", c.Threads)
	case c.MiniBatchSize <= 0:
		return fmt.Errorf("bad mini batch size %v", c.MiniBatchSize)
	case c.NumPositions <= 0:
		return fmt.Errorf("bad num positions %v", c.NumPositions)
	case c.MinLearningRate < 0 || c.MinLearningRate > c.MaxLearningRate:
		return fmt.Errorf("bad learning rate range [%v, %v]", c.MinLearningRate, c.MaxLearningRate)
	case c.NumLearningRateCycles <= 0:
		return fmt.Errorf("bad learning rate cycles %v", c.NumLearningRateCycles)
	case c.ElmoLambda < 0 || c.ElmoLambda > 1:
		return fmt.Errorf("elmo lambda %v outside [0, 1]", c.ElmoLambda)
	case c.WinningRateCoefficient <= 0:
		return fmt.Errorf("bad winning rate coefficient %v", c.WinningRateCoefficient)
	case c.AdamBeta2 <= 0 || c.AdamBeta2 >= 1:
		return fmt.Errorf("adam beta2 %v outside (0, 1)", c.AdamBeta2)
	case c.FobosL1 < 0 || c.FobosL2 <= 0:
		return fmt.Errorf("bad fobos parameters %v %v", c.FobosL1, c.FobosL2)
	case c.MirrorPercentage < 0 || c.MirrorPercentage > 100:
		return fmt.Errorf("mirror percentage %v outside [0, 100]", c.MirrorPercentage)
	case c.KifuDir == "":
		return errors.New("kifu dir is required")
	case c.Loops <= 0:
		return fmt.Errorf("bad loops %v", c.Loops)
	case c.Geometry == nil:
		return errors.New("geometry is required")
	}
	return nil
}
