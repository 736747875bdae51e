// Package perfplot renders hashgen measurement tables as bar graphs of the
// elapsed time against each thread-count configuration column.
package perfplot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/SonaGutha/benchmarkingMemory-Storage/internal/table"
)

// ThreadTypes are the configuration columns that get one figure each, in
// this order.
var ThreadTypes = []string{"HashThreads", "SortThreads", "WriteThreads"}

// Metrics are the measured columns drawn on a figure. A figure has one
// subplot per axis slot (figureCols), only the first len(Metrics) of which
// are populated.
var Metrics = []string{"PerformanceTime(sec)"}

const (
	figureCols   = 3
	figureWidth  = 18 * vg.Inch
	figureHeight = 6 * vg.Inch
	figureDPI    = 100
)

//=============================================================================
// Configuration
//=============================================================================

// Config holds the paths of one perfplot run.
type Config struct {
	InputPath string // whitespace-delimited measurement table
	OutputDir string // created if absent
	Prefix    string // file name prefix, e.g. "64GB"
	Show      bool   // open each saved graph with the system viewer
}

// DefaultConfig returns the historical input and output locations,
// relative to the working directory.
func DefaultConfig() Config {
	return Config{
		InputPath: filepath.Join("..", "input", "configurations_time_64gb.txt"),
		OutputDir: "graphs",
		Prefix:    "64GB",
	}
}

// Run loads the table at cfg.InputPath and writes one bar graph per thread
// type into cfg.OutputDir. The table is loaded before anything is written, so
// a missing or malformed input leaves the file system untouched.
func Run(cfg Config) ([]string, error) {
	tbl, err := table.Load(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"path": cfg.InputPath, "rows": tbl.Len()}).Info("loaded measurements")

	return PlotBarGraphs(tbl, cfg.OutputDir, cfg.Prefix, NewDisplayer(cfg.Show))
}

//=============================================================================
// Plotting
//=============================================================================

// PlotBarGraphs draws, saves and displays one figure per thread type and
// returns the paths of the written PNG files.
// @tbl: measurements, must contain the ThreadTypes and Metrics columns
// @outDir: directory for the PNG files; created if absent
// @prefix: file name prefix
// @disp: receives each saved path
func PlotBarGraphs(tbl *table.Table, outDir, prefix string, disp Displayer) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", outDir)
	}

	paths := make([]string, 0, len(ThreadTypes))
	for _, threadType := range ThreadTypes {
		plots, err := newFigure(tbl, threadType)
		if err != nil {
			return paths, err
		}

		path := filepath.Join(outDir, GraphFileName(prefix, threadType))
		if err := saveFigure(plots, path); err != nil {
			return paths, err
		}
		log.WithField("path", path).Info("saved bar graph")
		paths = append(paths, path)

		if err := disp.Display(path); err != nil {
			return paths, errors.Wrapf(err, "displaying %s", path)
		}
	}
	return paths, nil
}

// GraphFileName returns the PNG name for 'threadType', with any '/' replaced
// so the name stays inside the output directory.
func GraphFileName(prefix, threadType string) string {
	return fmt.Sprintf("%s_%s_bargraph.png", prefix, strings.ReplaceAll(threadType, "/", "-"))
}

// newFigure builds the row of subplots for one thread type. Bars are placed
// at the metric values along X with the thread counts as heights, while the
// X label names the thread type and the Y label the metric.
func newFigure(tbl *table.Table, threadType string) ([]*plot.Plot, error) {
	plots := make([]*plot.Plot, figureCols)
	for i := range plots {
		plots[i] = plot.New()
	}

	for i, metric := range Metrics {
		xs, err := tbl.Floats(metric)
		if err != nil {
			return nil, err
		}
		heights, err := tbl.Floats(threadType)
		if err != nil {
			return nil, err
		}

		bars, err := NewXYBars(xs, heights)
		if err != nil {
			return nil, errors.Wrapf(err, "%s vs %s", threadType, metric)
		}

		p := plots[i]
		p.Add(bars)
		p.X.Label.Text = threadType
		p.Y.Label.Text = metric
		p.Title.Text = fmt.Sprintf("%s vs %s", threadType, metric)
		p.Title.Padding = vg.Points(6)
		p.X.Tick.Marker = precisionTicks{Precision: 2}
	}
	return plots, nil
}

// saveFigure lays the plots out side by side on one canvas and encodes it as
// PNG at 'path'.
func saveFigure(plots []*plot.Plot, path string) error {
	img := vgimg.NewWith(vgimg.UseWH(figureWidth, figureHeight), vgimg.UseDPI(figureDPI))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(plots),
		PadTop:    vg.Points(8),
		PadBottom: vg.Points(8),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(8),
		PadX:      vg.Points(24),
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[0][i])
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(file); err != nil {
		file.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}
	return errors.Wrapf(file.Close(), "closing %s", path)
}
