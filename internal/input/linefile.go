// Package input implements concrete salad.Source adapters: a line-
// delimited file reader, a glob-filtered directory walker, and an
// archive (zip/tar) reader.
package input

import (
	"bufio"
	"context"
	"os"

	"github.com/letter-salad/salad"
)

// LineSource reads a file and yields one input per line, batched. Lines
// are copied out of the scanner's reused buffer before being handed to
// sink, since salad.Source batches are expected to outlive the call.
type LineSource struct {
	Path string
}

var _ salad.Source = (*LineSource)(nil)

func NewLineSource(path string) *LineSource {
	return &LineSource{Path: path}
}

func (s *LineSource) Recv(ctx context.Context, batchSize int, sink func(batch [][]byte) error) error {
	f, err := os.Open(s.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)

	batch := make([][]byte, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := sink(batch)
		batch = batch[:0]
		return err
	}

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := append([]byte(nil), sc.Bytes()...)
		batch = append(batch, line)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return flush()
}
