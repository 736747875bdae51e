package hashgen

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Verify checks that the file at 'path' holds whole records in
// non-decreasing hash order and that every hash matches its nonce. It returns
// the number of records read.
func Verify(path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "opening %s", path)
	}
	defer file.Close()

	r := bufio.NewReaderSize(file, mergeBufferSize)
	var prev, cur Record
	var n int64
	for ; ; n++ {
		if _, err := io.ReadFull(r, cur[:]); err != nil {
			if err == io.EOF {
				return n, nil
			}
			if err == io.ErrUnexpectedEOF {
				return n, errors.Errorf("%s: trailing partial record after %d records", path, n)
			}
			return n, errors.Wrapf(err, "reading %s", path)
		}
		if want := HashNonce(cur.Nonce()); string(want[:]) != string(cur.Hash()) {
			return n, errors.Errorf("%s: record %d: hash %x does not match nonce %x", path, n, cur.Hash(), cur.Nonce())
		}
		if n > 0 && prev.Cmp(&cur) > 0 {
			return n, errors.Errorf("%s: record %d: hash %x sorts before previous %x", path, n, cur.Hash(), prev.Hash())
		}
		prev = cur
	}
}
