package ml

import "math"

// CyclicalLearningRate is a triangular schedule: the rate climbs from
// minRate to maxRate and back cycles times over total samples.
func CyclicalLearningRate(minRate, maxRate, cycles float64, processed, total int64) float64 {
	if total <= 0 {
		return minRate
	}
	var scale = float64(processed) * cycles / float64(total)
	scale = math.Mod(scale, 1) * 2
	if scale > 1 {
		scale = 2 - scale
	}
	return (maxRate-minRate)*scale + minRate
}
