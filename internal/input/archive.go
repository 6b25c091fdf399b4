package input

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"io"
	"os"
	"strings"

	"github.com/letter-salad/salad"
)

// ArchiveSource reads every regular file entry out of a zip or (optionally
// gzipped) tar archive as one input each. Format is chosen from Path's
// extension; archive members are treated as a flat stream of documents.
type ArchiveSource struct {
	Path string
}

var _ salad.Source = (*ArchiveSource)(nil)

func NewArchiveSource(path string) *ArchiveSource {
	return &ArchiveSource{Path: path}
}

func (s *ArchiveSource) Recv(ctx context.Context, batchSize int, sink func(batch [][]byte) error) error {
	if strings.HasSuffix(s.Path, ".zip") {
		return s.recvZip(ctx, batchSize, sink)
	}
	return s.recvTar(ctx, batchSize, sink)
}

func (s *ArchiveSource) recvZip(ctx context.Context, batchSize int, sink func(batch [][]byte) error) error {
	zr, err := zip.OpenReader(s.Path)
	if err != nil {
		return err
	}
	defer zr.Close()

	batch := make([][]byte, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := sink(batch)
		batch = batch[:0]
		return err
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return err
		}
		batch = append(batch, data)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func (s *ArchiveSource) recvTar(ctx context.Context, batchSize int, sink func(batch [][]byte) error) error {
	f, err := os.Open(s.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(s.Path, ".gz") || strings.HasSuffix(s.Path, ".tgz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gz.Close()
		r = gz
	}

	tr := tar.NewReader(r)
	batch := make([][]byte, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := sink(batch)
		batch = batch[:0]
		return err
	}

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return err
		}
		batch = append(batch, data)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}
