package perfplot

import (
	"fmt"

	"gonum.org/v1/plot"
)

// precisionTicks labels every major default tick with a fixed number of
// decimals so that seconds read uniformly (0.50, 1.00, 1.50 ...).
type precisionTicks struct {
	Precision int
}

func (t precisionTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label == "" {
			// minor tick
			continue
		}
		ticks[i].Label = fmt.Sprintf("%.*f", t.Precision, ticks[i].Value)
	}
	return ticks
}
