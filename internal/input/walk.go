package input

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/letter-salad/salad"
)

// DirSource walks a directory tree and yields the contents of each
// regular file whose path matches Pattern (a gobwas/glob pattern; an
// empty Pattern matches everything) as one input.
type DirSource struct {
	Root    string
	Pattern glob.Glob
}

var _ salad.Source = (*DirSource)(nil)

// NewDirSource compiles pattern (glob.Compile syntax) and returns a
// DirSource rooted at root. An empty pattern matches every regular file.
func NewDirSource(root, pattern string) (*DirSource, error) {
	var g glob.Glob
	if pattern != "" {
		compiled, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		g = compiled
	}
	return &DirSource{Root: root, Pattern: g}, nil
}

func (s *DirSource) Recv(ctx context.Context, batchSize int, sink func(batch [][]byte) error) error {
	batch := make([][]byte, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := sink(batch)
		batch = batch[:0]
		return err
	}

	walkErr := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if s.Pattern != nil && !s.Pattern.Match(path) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		batch = append(batch, data)
		if len(batch) == batchSize {
			return flush()
		}
		return nil
	})
	if walkErr != nil {
		return walkErr
	}
	return flush()
}
