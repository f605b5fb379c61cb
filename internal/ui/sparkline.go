package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-sunmoon/internal/ephem"
)

// SparklineWidth is the fixed width of the altitude sparklines.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	altColorLow  = [3]uint8{0x1b, 0x2b, 0x4b}
	altColorMid  = [3]uint8{0x34, 0x78, 0xc0}
	altColorHigh = [3]uint8{0xfd, 0xe6, 0x8a}
)

// belowHorizonStyle marks samples under the horizon.
var belowHorizonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

// renderAltitudeSparkline draws altitude over the day. Below-horizon
// samples use the lowest block in a dim color; above-horizon samples scale
// from 0° to peak.
func renderAltitudeSparkline(samples []ephem.Sample, width int) string {
	alts := resampleAltitude(samples, width)
	if len(alts) == 0 {
		return belowHorizonStyle.Render("no samples")
	}

	peak := 0.0
	for _, a := range alts {
		if a > peak {
			peak = a
		}
	}

	var sb strings.Builder
	for _, alt := range alts {
		if alt <= 0 {
			sb.WriteString(belowHorizonStyle.Render(string(sparklineBlocks[0])))
			continue
		}

		t := alt / 90.0
		idx := 0
		if peak > 0 {
			idx = int(alt / peak * 7.0)
		}
		if idx > 7 {
			idx = 7
		}
		if idx < 1 {
			idx = 1
		}

		r, g, b := interpolateAltColor(t)
		color := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(sparklineBlocks[idx])))
	}
	return sb.String()
}

// interpolateAltColor returns RGB color for altitude fraction t in [0, 1].
func interpolateAltColor(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	lerp := func(a, b uint8, s float64) uint8 {
		return uint8(float64(a)*(1-s) + float64(b)*s)
	}

	if t < 0.5 {
		s := t * 2
		return lerp(altColorLow[0], altColorMid[0], s), lerp(altColorLow[1], altColorMid[1], s), lerp(altColorLow[2], altColorMid[2], s)
	}
	s := (t - 0.5) * 2
	return lerp(altColorMid[0], altColorHigh[0], s), lerp(altColorMid[1], altColorHigh[1], s), lerp(altColorMid[2], altColorHigh[2], s)
}

// resampleAltitude averages samples into width buckets.
func resampleAltitude(samples []ephem.Sample, width int) []float64 {
	if len(samples) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	perBucket := float64(len(samples)) / float64(width)

	for i := 0; i < width; i++ {
		start := int(float64(i) * perBucket)
		end := int(float64(i+1) * perBucket)
		if end <= start {
			end = start + 1
		}
		if end > len(samples) {
			end = len(samples)
		}
		if start >= end {
			start = end - 1
		}

		sum := 0.0
		for j := start; j < end; j++ {
			sum += samples[j].Position.AltDeg
		}
		if n := end - start; n > 0 {
			result[i] = sum / float64(n)
		}
	}
	return result
}
