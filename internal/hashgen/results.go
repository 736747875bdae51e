package hashgen

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ResultColumns is the header of a results table, readable by perfplot.
var ResultColumns = []string{"HashThreads", "SortThreads", "WriteThreads", "MemoryMB", "FileSizeGB", "PerformanceTime(sec)"}

// Result is one row of a results table.
type Result struct {
	HashThreads  int
	SortThreads  int
	WriteThreads int
	MemoryMB     float64
	FileSizeGB   float64
	Seconds      float64
}

// NewResult describes the run of 'cfg' that produced 'stats'.
func NewResult(cfg Config, stats Stats) Result {
	return Result{
		HashThreads:  cfg.HashThreads,
		SortThreads:  cfg.SortThreads,
		WriteThreads: cfg.WriteThreads,
		MemoryMB:     float64(cfg.MemorySize) / MiB,
		FileSizeGB:   float64(cfg.FileSize) / GiB,
		Seconds:      stats.Elapsed.Seconds(),
	}
}

// Fields returns the row values in ResultColumns order.
func (r Result) Fields() []string {
	return []string{
		strconv.Itoa(r.HashThreads),
		strconv.Itoa(r.SortThreads),
		strconv.Itoa(r.WriteThreads),
		strconv.FormatFloat(r.MemoryMB, 'f', -1, 64),
		strconv.FormatFloat(r.FileSizeGB, 'f', -1, 64),
		strconv.FormatFloat(r.Seconds, 'f', 2, 64),
	}
}

// AppendResult appends 'r' as a new line of the results table at 'path'. The
// file is created with a header row if it does not exist or is empty.
func AppendResult(path string, r Result) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "opening results file %s", path)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return errors.Wrapf(err, "stat %s", path)
	}
	var lines strings.Builder
	if info.Size() == 0 {
		fmt.Fprintln(&lines, strings.Join(ResultColumns, " "))
	}
	fmt.Fprintln(&lines, strings.Join(r.Fields(), " "))
	if _, err := file.WriteString(lines.String()); err != nil {
		file.Close()
		return errors.Wrapf(err, "writing result to %s", path)
	}
	return errors.Wrapf(file.Close(), "closing %s", path)
}
