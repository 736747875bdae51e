package perfplot

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SonaGutha/benchmarkingMemory-Storage/internal/table"
)

const twoRowFixture = "HashThreads SortThreads WriteThreads PerformanceTime(sec)\n1 2 3 0.5\n4 5 6 1.2"

var expectedGraphs = []string{
	"64GB_HashThreads_bargraph.png",
	"64GB_SortThreads_bargraph.png",
	"64GB_WriteThreads_bargraph.png",
}

type recordingDisplay struct {
	paths []string
	err   error
}

func (r *recordingDisplay) Display(path string) error {
	r.paths = append(r.paths, path)
	return r.err
}

// testConfig writes 'content' as the input table of a config whose output
// directory does not exist yet.
func testConfig(t *testing.T, content string) Config {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.InputPath = filepath.Join(dir, "input", "configurations_time_64gb.txt")
	cfg.OutputDir = filepath.Join(dir, "graphs")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.InputPath), 0o755))
	require.NoError(t, os.WriteFile(cfg.InputPath, []byte(content), 0o644))
	return cfg
}

func requireGraphs(t *testing.T, dir string) {
	t.Helper()
	chk := require.New(t)

	entries, err := os.ReadDir(dir)
	chk.NoError(err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	chk.ElementsMatch(expectedGraphs, names)

	for _, name := range expectedGraphs {
		f, err := os.Open(filepath.Join(dir, name))
		chk.NoError(err)
		img, err := png.Decode(f)
		f.Close()
		chk.NoError(err, name)
		chk.Equal(1800, img.Bounds().Dx(), name)
		chk.Equal(600, img.Bounds().Dy(), name)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("..", "input", "configurations_time_64gb.txt"), cfg.InputPath)
	assert.Equal(t, "graphs", cfg.OutputDir)
	assert.Equal(t, "64GB", cfg.Prefix)
	assert.False(t, cfg.Show)
}

func TestRunTwoRowFixture(t *testing.T) {
	chk := require.New(t)
	cfg := testConfig(t, twoRowFixture)

	paths, err := Run(cfg)
	chk.NoError(err)
	chk.Len(paths, 3)
	for i, name := range expectedGraphs {
		chk.Equal(filepath.Join(cfg.OutputDir, name), paths[i])
	}
	requireGraphs(t, cfg.OutputDir)
}

func TestRunTwiceOverwrites(t *testing.T) {
	chk := require.New(t)
	cfg := testConfig(t, twoRowFixture)

	_, err := Run(cfg)
	chk.NoError(err)
	_, err = Run(cfg)
	chk.NoError(err)
	requireGraphs(t, cfg.OutputDir)
}

func TestRunHeaderOnly(t *testing.T) {
	chk := require.New(t)
	cfg := testConfig(t, "HashThreads SortThreads WriteThreads PerformanceTime(sec)\n")

	paths, err := Run(cfg)
	chk.NoError(err)
	chk.Len(paths, 3)
	requireGraphs(t, cfg.OutputDir)
}

func TestRunMissingInputCreatesNothing(t *testing.T) {
	chk := require.New(t)
	cfg := testConfig(t, twoRowFixture)
	chk.NoError(os.Remove(cfg.InputPath))

	_, err := Run(cfg)
	chk.Error(err)
	chk.NoDirExists(cfg.OutputDir)
}

func TestRunMissingColumn(t *testing.T) {
	chk := require.New(t)
	cfg := testConfig(t, "HashThreads WriteThreads PerformanceTime(sec)\n1 3 0.5\n")

	paths, err := Run(cfg)
	chk.ErrorContains(err, `unknown column "SortThreads"`)
	chk.Equal([]string{filepath.Join(cfg.OutputDir, expectedGraphs[0])}, paths)
}

func TestRunNonNumericValue(t *testing.T) {
	cfg := testConfig(t, "HashThreads SortThreads WriteThreads PerformanceTime(sec)\n1 2 3 slow\n")

	_, err := Run(cfg)
	require.ErrorContains(t, err, `column "PerformanceTime(sec)" row 1`)
}

func TestPlotBarGraphsDisplaysEachGraph(t *testing.T) {
	chk := require.New(t)
	cfg := testConfig(t, twoRowFixture)
	tbl, err := table.Load(cfg.InputPath)
	chk.NoError(err)

	disp := &recordingDisplay{}
	paths, err := PlotBarGraphs(tbl, cfg.OutputDir, "64GB", disp)
	chk.NoError(err)
	chk.Equal(paths, disp.paths)
}

func TestPlotBarGraphsDisplayError(t *testing.T) {
	chk := require.New(t)
	cfg := testConfig(t, twoRowFixture)
	tbl, err := table.Load(cfg.InputPath)
	chk.NoError(err)

	disp := &recordingDisplay{err: errors.New("no display")}
	paths, err := PlotBarGraphs(tbl, cfg.OutputDir, "64GB", disp)
	chk.ErrorContains(err, "no display")
	chk.Len(paths, 1)
	chk.FileExists(paths[0])
}

func TestNewFigureLayout(t *testing.T) {
	chk := require.New(t)
	cfg := testConfig(t, twoRowFixture)
	tbl, err := table.Load(cfg.InputPath)
	chk.NoError(err)

	plots, err := newFigure(tbl, "SortThreads")
	chk.NoError(err)
	chk.Len(plots, 3)

	first := plots[0]
	chk.Equal("SortThreads vs PerformanceTime(sec)", first.Title.Text)
	chk.Equal("SortThreads", first.X.Label.Text)
	chk.Equal("PerformanceTime(sec)", first.Y.Label.Text)

	// bars at x = 0.5 and 1.2 with heights 2 and 5
	chk.InDelta(0.1, first.X.Min, 1e-9)
	chk.InDelta(1.6, first.X.Max, 1e-9)
	chk.InDelta(0, first.Y.Min, 1e-9)
	chk.InDelta(5, first.Y.Max, 1e-9)

	for _, p := range plots[1:] {
		chk.Empty(p.Title.Text)
		chk.Empty(p.X.Label.Text)
	}
}

func TestGraphFileName(t *testing.T) {
	assert.Equal(t, "64GB_HashThreads_bargraph.png", GraphFileName("64GB", "HashThreads"))
	assert.Equal(t, "64GB_Read-Write_bargraph.png", GraphFileName("64GB", "Read/Write"))
}

func TestPrecisionTicks(t *testing.T) {
	ticks := precisionTicks{Precision: 2}.Ticks(0, 1.2)
	require.NotEmpty(t, ticks)
	labelled := 0
	for _, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		labelled++
		assert.Regexp(t, `^\d+\.\d\d$`, tick.Label)
	}
	assert.Greater(t, labelled, 1)
}

func TestSystemViewerDisplay(t *testing.T) {
	chk := require.New(t)

	var opened []string
	viewer := systemViewer{start: func(path string) error {
		opened = append(opened, path)
		return nil
	}}
	chk.NoError(viewer.Display("graph.png"))
	chk.Equal([]string{"graph.png"}, opened)

	failing := systemViewer{start: func(string) error { return errors.New("no viewer") }}
	err := failing.Display("graph.png")
	chk.ErrorContains(err, "opening viewer for graph.png")
	chk.ErrorContains(err, "no viewer")

	assert.IsType(t, noDisplay{}, NewDisplayer(false))
	shown, ok := NewDisplayer(true).(systemViewer)
	chk.True(ok)
	chk.NotNil(shown.start)
}
