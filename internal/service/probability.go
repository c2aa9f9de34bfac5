package service

import "math"

const (
	MinProbability = 1e-9
	MaxProbability = 1 - 1e-9
)

func Logit(p float64) float64 {
	p = clampProbability(p)
	return math.Log(p / (1 - p))
}

func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func clampProbability(p float64) float64 {
	if p < MinProbability {
		return MinProbability
	}
	if p > MaxProbability {
		return MaxProbability
	}
	return p
}

// Threshold maps a proportion to a binary call. Exactly 0.5 maps to 1.
func Threshold(p float64) int {
	if p >= 0.5 {
		return 1
	}
	return 0
}
