package input

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func writeTestTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		hdr := &tar.Header{Name: name, Mode: 0o644, Size: int64(len(content)), Typeflag: tar.TypeReg}
		require.NoError(t, tw.WriteHeader(hdr))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func TestArchiveSourceZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.zip")
	writeTestZip(t, path, map[string]string{"one.txt": "alpha", "two.txt": "bravo"})

	src := NewArchiveSource(path)
	var got []string
	err := src.Recv(context.Background(), 128, func(batch [][]byte) error {
		for _, b := range batch {
			got = append(got, string(b))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(got)
	require.Equal(t, []string{"alpha", "bravo"}, got)
}

func TestArchiveSourceTarGz(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.tar.gz")
	writeTestTarGz(t, path, map[string]string{"one.txt": "alpha", "two.txt": "bravo"})

	src := NewArchiveSource(path)
	var got []string
	err := src.Recv(context.Background(), 128, func(batch [][]byte) error {
		for _, b := range batch {
			got = append(got, string(b))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(got)
	require.Equal(t, []string{"alpha", "bravo"}, got)
}

func TestArchiveSourceRespectsBatchSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.zip")
	writeTestZip(t, path, map[string]string{"a": "1", "b": "2", "c": "3"})

	src := NewArchiveSource(path)
	var batches int
	err := src.Recv(context.Background(), 2, func(batch [][]byte) error {
		batches++
		require.LessOrEqual(t, len(batch), 2)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, batches)
}
