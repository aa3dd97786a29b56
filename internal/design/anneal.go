package design

import "math"

// temperature anneals the starting temperature T0 toward zero as the
// step index grows: T = T0 / (1 + decay*step). With decay 0 the
// schedule is flat.
func temperature(t0, decay float64, step int) float64 {
	return t0 / (1 + decay*float64(step))
}

// acceptProbability is the Metropolis criterion: an improvement is
// always accepted, a degradation with probability exp(-dE/T) clipped
// to [0,1]. A non-positive temperature degenerates to greedy descent.
func acceptProbability(current, proposed, temp float64) float64 {
	if proposed < current {
		return 1
	}

	if temp <= 0 {
		return 0
	}

	p := math.Exp(-(proposed - current) / temp)
	if p > 1 {
		return 1
	}

	return p
}
