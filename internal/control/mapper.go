package control

import "math"

// NormToPixels scales normalized [0..1] coordinates to a width x height screen.
func NormToPixels(xn, yn float64, width, height int) (int, int) {
	return normToPixels(xn, width), normToPixels(yn, height)
}

func normToPixels(norm float64, span int) int {
	if span <= 0 {
		return 0
	}
	px := int(math.Round(clamp01(norm) * float64(span)))
	if px > span-1 {
		px = span - 1
	}
	return px
}

// clamp01 bounds a float to the [0..1] range.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
