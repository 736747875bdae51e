package hashgen

import (
	"github.com/pkg/errors"
)

const (
	MiB = 1 << 20
	GiB = 1 << 30
)

// Config describes one hashgen run.
type Config struct {
	HashThreads  int    // goroutines generating nonces and hashes per bucket
	SortThreads  int    // goroutines sorting slices of a bucket
	WriteThreads int    // goroutines writing slices of a bucket to disk
	Filename     string // sorted output file
	MemorySize   int64  // bytes of records held in memory at once; bounds the bucket size
	FileSize     int64  // bytes of records to produce
}

// Validate reports the first invalid field of the configuration.
func (c Config) Validate() error {
	switch {
	case c.Filename == "":
		return errors.New("filename must be set")
	case c.HashThreads <= 0:
		return errors.Errorf("hash threads must be positive, got %d", c.HashThreads)
	case c.SortThreads <= 0:
		return errors.Errorf("sort threads must be positive, got %d", c.SortThreads)
	case c.WriteThreads <= 0:
		return errors.Errorf("write threads must be positive, got %d", c.WriteThreads)
	case c.MemorySize < RecordSize:
		return errors.Errorf("memory must hold at least one %d byte record, got %d bytes", RecordSize, c.MemorySize)
	case c.FileSize <= 0:
		return errors.Errorf("file size must be positive, got %d bytes", c.FileSize)
	}
	return nil
}

// NumRecords is the number of records that fill FileSize; at least one.
func (c Config) NumRecords() int {
	return int(max(c.FileSize/RecordSize, 1))
}

// NumBuckets is the number of memory-sized buckets the records are
// processed in.
func (c Config) NumBuckets() int {
	perBucket := int(c.MemorySize / RecordSize)
	return (c.NumRecords() + perBucket - 1) / perBucket
}
