package stats

import "math"

// Interpolate fills NaN gaps by linear interpolation between the nearest
// known neighbours, treating positions as equally spaced. Edge gaps take the
// nearest known value. A slice with no known value is returned unchanged.
// Returns a new slice and the number of filled cells.
func Interpolate(values []float64) ([]float64, int) {
	out := make([]float64, len(values))
	copy(out, values)

	filled := 0
	prev := -1
	for i, v := range out {
		if math.IsNaN(v) {
			continue
		}
		if prev < 0 {
			for j := 0; j < i; j++ {
				out[j] = v
				filled++
			}
		} else if i-prev > 1 {
			step := (v - out[prev]) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				out[j] = out[prev] + step*float64(j-prev)
				filled++
			}
		}
		prev = i
	}

	if prev >= 0 {
		for j := prev + 1; j < len(out); j++ {
			out[j] = out[prev]
			filled++
		}
	}

	return out, filled
}
