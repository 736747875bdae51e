package hashgen

import (
	"context"
	"io"
	"math/rand"
	"os"
	"slices"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Stats summarises a completed run.
type Stats struct {
	Records int64
	Buckets int
	Elapsed time.Duration
}

// MHps is the hashing throughput in millions of records per second.
func (s Stats) MHps() float64 {
	return perSecond(float64(s.Records)/1e6, s.Elapsed)
}

// MBps is the output throughput in MiB per second.
func (s Stats) MBps() float64 {
	return perSecond(float64(s.Records*RecordSize)/MiB, s.Elapsed)
}

// perSecond is 0 for a non-positive duration.
func perSecond(amount float64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return amount / elapsed.Seconds()
}

//=============================================================================
// Run
//=============================================================================

// Run generates cfg.NumRecords() records and leaves them sorted by hash in
// cfg.Filename. Records are produced bucket by bucket: each bucket is hashed,
// sorted and written by its own group of goroutines, each group finishing
// before the next phase starts. The sorted buckets are then merged into the
// output file.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}
	start := time.Now()

	numRecords := cfg.NumRecords()
	buckets := SplitRange(numRecords, cfg.NumBuckets())
	log.WithFields(log.Fields{
		"hashThreads":  cfg.HashThreads,
		"sortThreads":  cfg.SortThreads,
		"writeThreads": cfg.WriteThreads,
		"file":         cfg.Filename,
		"memoryMB":     cfg.MemorySize / MiB,
		"records":      numRecords,
		"buckets":      len(buckets),
	}).Info("starting hashgen")

	runPath := cfg.Filename + ".runs"
	runFile, err := os.Create(runPath)
	if err != nil {
		return Stats{}, errors.Wrapf(err, "creating run file %s", runPath)
	}
	defer os.Remove(runPath)
	defer runFile.Close()

	// one bucket-sized buffer pair is reused for every bucket
	bucketCap := buckets[0].Len()
	records := make([]Record, bucketCap)
	scratch := make([]Record, bucketCap)

	for i, bucket := range buckets {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		recs := records[:bucket.Len()]
		if err := hashBucket(ctx, i, recs, cfg.HashThreads); err != nil {
			return Stats{}, err
		}
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		if err := sortBucket(ctx, i, recs, scratch[:bucket.Len()], cfg.SortThreads); err != nil {
			return Stats{}, err
		}
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		offset := int64(bucket.Start) * RecordSize
		if err := writeBucket(ctx, i, runFile, offset, recs, cfg.WriteThreads); err != nil {
			return Stats{}, err
		}
	}

	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	written, err := mergeBuckets(runFile, buckets, cfg.Filename)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Records: written, Buckets: len(buckets), Elapsed: time.Since(start)}
	log.WithFields(log.Fields{
		"file":    cfg.Filename,
		"seconds": stats.Elapsed.Seconds(),
		"MH/s":    stats.MHps(),
		"MB/s":    stats.MBps(),
	}).Info("completed hashgen")
	return stats, nil
}

//=============================================================================
// Phases
//=============================================================================

// parallel runs fn over 'parts' contiguous spans of [0, n) in separate
// goroutines and waits for all of them. Empty spans are skipped. Nothing is
// started once ctx is done.
func parallel(ctx context.Context, n, parts int, fn func(ctx context.Context, worker int, span Span) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	for w, span := range SplitRange(n, parts) {
		if span.Len() == 0 {
			continue
		}
		g.Go(func() error { return fn(ctx, w, span) })
	}
	return g.Wait()
}

// cancelCheckInterval is how many records a hash worker fills between
// context checks.
const cancelCheckInterval = 4096

func logPhase(bucket int, phase string, records int, start time.Time) {
	elapsed := time.Since(start)
	log.WithFields(log.Fields{
		"bucket":  bucket,
		"phase":   phase,
		"seconds": elapsed.Seconds(),
		"MB/s":    perSecond(float64(records*RecordSize)/MiB, elapsed),
	}).Debug("phase complete")
}

// hashBucket fills 'recs' with random nonces and their hashes.
func hashBucket(ctx context.Context, bucket int, recs []Record, threads int) error {
	start := time.Now()
	seed := start.UnixNano()
	err := parallel(ctx, len(recs), threads, func(ctx context.Context, worker int, span Span) error {
		rng := rand.New(rand.NewSource(seed + int64(bucket)*int64(threads) + int64(worker)))
		for i := span.Start; i < span.End; i++ {
			if (i-span.Start)%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			recs[i].fill(rng)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logPhase(bucket, "hash", len(recs), start)
	return nil
}

// sortBucket sorts slices of 'recs' concurrently and merges the sorted
// slices back into 'recs' through 'scratch'.
func sortBucket(ctx context.Context, bucket int, recs, scratch []Record, threads int) error {
	start := time.Now()
	err := parallel(ctx, len(recs), threads, func(ctx context.Context, _ int, span Span) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		slices.SortFunc(recs[span.Start:span.End], func(a, b Record) int { return a.Cmp(&b) })
		return nil
	})
	if err != nil {
		return err
	}

	spans := SplitRange(len(recs), threads)
	if len(spans) > 1 {
		runs := make([][]Record, 0, len(spans))
		for _, span := range spans {
			runs = append(runs, recs[span.Start:span.End])
		}
		mergeRuns(scratch, runs)
		copy(recs, scratch)
	}
	logPhase(bucket, "sort", len(recs), start)
	return nil
}

// writeBucket writes 'recs' to 'file' starting at byte 'offset'; each
// goroutine writes its own contiguous slice.
func writeBucket(ctx context.Context, bucket int, file io.WriterAt, offset int64, recs []Record, threads int) error {
	start := time.Now()
	err := parallel(ctx, len(recs), threads, func(ctx context.Context, _ int, span Span) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		buf := make([]byte, 0, span.Len()*RecordSize)
		for i := span.Start; i < span.End; i++ {
			buf = append(buf, recs[i][:]...)
		}
		at := offset + int64(span.Start)*RecordSize
		if _, err := file.WriteAt(buf, at); err != nil {
			return errors.Wrapf(err, "writing bucket %d at offset %d", bucket, at)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logPhase(bucket, "write", len(recs), start)
	return nil
}

// mergeBuckets merges the sorted buckets stored back to back in 'runFile'
// into a new file at 'path'.
func mergeBuckets(runFile *os.File, buckets []Span, path string) (int64, error) {
	start := time.Now()
	out, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrapf(err, "creating %s", path)
	}

	srcs := make([]io.Reader, len(buckets))
	for i, b := range buckets {
		srcs[i] = io.NewSectionReader(runFile, int64(b.Start)*RecordSize, int64(b.Len())*RecordSize)
	}
	written, err := mergeReaders(out, srcs)
	if err != nil {
		out.Close()
		return written, errors.Wrapf(err, "merging buckets into %s", path)
	}
	if err := out.Close(); err != nil {
		return written, errors.Wrapf(err, "closing %s", path)
	}
	log.WithFields(log.Fields{"buckets": len(buckets), "seconds": time.Since(start).Seconds()}).Debug("merged buckets")
	return written, nil
}
