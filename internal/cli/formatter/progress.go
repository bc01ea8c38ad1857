package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampRatio(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 1:
		return 1
	}
	return pct
}

func bar(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := int(clampRatio(pct) * float64(width))
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func barStyle(pct float64) func(...string) string {
	switch {
	case pct >= 1:
		return StyleGreen.Render
	case pct >= 0.5:
		return StyleYellow.Render
	case pct > 0:
		return StyleBlue.Render
	default:
		return StyleDim.Render
	}
}

// RenderProgress renders a progress bar like [████░░░░]  45%.
func RenderProgress(pct float64, width int) string {
	pct = clampRatio(pct)
	return fmt.Sprintf("[%s] %3.0f%%", barStyle(pct)(bar(pct, width)), pct*100)
}

// RenderTierBar renders completed/total as a bar followed by the counts,
// e.g. [██░░░░] 2/6. An empty tier renders an empty bar.
func RenderTierBar(completed, total, width int) string {
	var pct float64
	if total > 0 {
		pct = float64(completed) / float64(total)
	}
	return fmt.Sprintf("[%s] %d/%d", barStyle(pct)(bar(pct, width)), completed, total)
}
