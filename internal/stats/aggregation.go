package stats

import "math"

// Mean returns the arithmetic mean, 0 for an empty sample
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Min returns the smallest value, 0 for an empty sample
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	lo := values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
	}
	return lo
}

// Max returns the largest value, 0 for an empty sample
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	hi := values[0]
	for _, v := range values[1:] {
		hi = math.Max(hi, v)
	}
	return hi
}

// Sum returns the sum of all values
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// RoundTo rounds v to the given number of decimal places, halves toward +Inf
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Floor(v*scale+0.5) / scale
}
