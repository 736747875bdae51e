package hashgen

import (
	"bufio"
	"io"

	"github.com/addrummond/heap"
	"github.com/pkg/errors"
)

const mergeBufferSize = 64 << 10

// head is the smallest unconsumed record of one sorted run.
type head struct {
	rec Record
	run int
}

// Cmp orders heads by hash, then by run so equal hashes keep run order.
func (a *head) Cmp(b *head) int {
	if c := a.rec.Cmp(&b.rec); c != 0 {
		return c
	}
	return a.run - b.run
}

// mergeRuns merges the sorted 'runs' into 'dst', which must hold exactly as
// many records as the runs together.
func mergeRuns(dst []Record, runs [][]Record) {
	var h heap.Heap[head, heap.Min]
	next := make([]int, len(runs))
	for i, run := range runs {
		if len(run) > 0 {
			heap.PushOrderable(&h, head{rec: run[0], run: i})
			next[i] = 1
		}
	}

	for out := 0; ; out++ {
		top, ok := heap.PopOrderable(&h)
		if !ok {
			return
		}
		dst[out] = top.rec
		if run := runs[top.run]; next[top.run] < len(run) {
			heap.PushOrderable(&h, head{rec: run[next[top.run]], run: top.run})
			next[top.run]++
		}
	}
}

// mergeReaders streams the sorted runs read from 'srcs' into 'dst' and
// returns the number of records written.
func mergeReaders(dst io.Writer, srcs []io.Reader) (int64, error) {
	readers := make([]*bufio.Reader, len(srcs))
	var h heap.Heap[head, heap.Min]

	pull := func(run int) error {
		var hd head
		hd.run = run
		if _, err := io.ReadFull(readers[run], hd.rec[:]); err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrapf(err, "reading run %d", run)
		}
		heap.PushOrderable(&h, hd)
		return nil
	}

	for i, src := range srcs {
		readers[i] = bufio.NewReaderSize(src, mergeBufferSize)
		if err := pull(i); err != nil {
			return 0, err
		}
	}

	w := bufio.NewWriterSize(dst, mergeBufferSize)
	var written int64
	for {
		top, ok := heap.PopOrderable(&h)
		if !ok {
			break
		}
		if _, err := w.Write(top.rec[:]); err != nil {
			return written, errors.Wrap(err, "writing merged records")
		}
		written++
		if err := pull(top.run); err != nil {
			return written, err
		}
	}
	return written, errors.Wrap(w.Flush(), "flushing merged records")
}
