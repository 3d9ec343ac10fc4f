package tui

import (
	"math"
	"strings"
)

// sparkTicks are the eight block heights used by Sparkline.
const sparkTicks = "▁▂▃▄▅▆▇█"

// Bar glyphs.
const (
	barFull  = "█"
	barEmpty = "░"
)

// Sparkline draws values as a single line of block characters, resampled
// to width columns. A flat series draws at the lowest tick.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	sampled := resample(values, width)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range sampled {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	ticks := []rune(sparkTicks)
	top := len(ticks) - 1

	var sb strings.Builder
	for _, v := range sampled {
		idx := 0
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(top)))
		}
		sb.WriteRune(ticks[min(max(idx, 0), top)])
	}
	return sb.String()
}

// resample picks width evenly spaced points from values, keeping the first
// and last. Short series are returned unchanged.
func resample(values []float64, width int) []float64 {
	if len(values) <= width {
		return values
	}
	if width == 1 {
		return values[len(values)-1:]
	}
	out := make([]float64, width)
	step := float64(len(values)-1) / float64(width-1)
	for i := range out {
		out[i] = values[int(math.Round(float64(i)*step))]
	}
	return out
}

// Bar draws a horizontal bar filled to fraction (clamped to 0..1) of width.
func Bar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(fraction) {
		fraction = 0
	}
	fraction = math.Min(math.Max(fraction, 0), 1)
	filled := int(math.Round(fraction * float64(width)))
	return strings.Repeat(barFull, filled) + strings.Repeat(barEmpty, width-filled)
}
