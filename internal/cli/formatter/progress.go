package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45%. Utilisation colors
// green up to 90%, yellow above that and red once capacity is exceeded.
func RenderProgress(pct float64, width int) string {
	style := StyleGreen
	switch {
	case pct > 1:
		style = StyleRed
	case pct > 0.9:
		style = StyleYellow
	}

	shown := min(max(pct, 0), 1)
	width = max(width, 2)
	filled := min(int(shown*float64(width)), width)

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), max(pct, 0)*100)
}
