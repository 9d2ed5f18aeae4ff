package weights

import (
	"math"
	"sync/atomic"

	"github.com/ChizhovVadim/kpptlearn/internal/ml"
)

// Cell is the training state of one weight. W is the full-precision value
// whose rounding is stored in the evaluator arrays.
type Cell struct {
	W float64
	ml.Gradient
	raw   uint64
	Lower float64
}

// AddRaw adds g to the raw accumulator. It is safe for concurrent use.
func (c *Cell) AddRaw(g float64) {
	for {
		var old = atomic.LoadUint64(&c.raw)
		var sum = math.Float64bits(math.Float64frombits(old) + g)
		if atomic.CompareAndSwapUint64(&c.raw, old, sum) {
			return
		}
	}
}

func (c *Cell) Raw() float64 {
	return math.Float64frombits(atomic.LoadUint64(&c.raw))
}

// ResetGradients clears both accumulators.
func (c *Cell) ResetGradients() {
	atomic.StoreUint64(&c.raw, 0)
	c.Lower = 0
}
