package main

import (
	"flag"
	"os"
	"strings"

	"github.com/letter-salad/salad"
	"github.com/letter-salad/salad/internal/input"
)

// detectorFlags are the configuration flags shared by every subcommand
// that builds a fresh Detector (currently just train).
type detectorFlags struct {
	sizeExp     *int
	hashset     *string
	ngramLength *int
	delimiter   *string
	binary      *bool
	dimSpace    *uint64
}

func registerDetectorFlags(fs *flag.FlagSet) *detectorFlags {
	df := &detectorFlags{}
	df.sizeExp = fs.Int("size-exp", 24, "bloom filter size as a power of two (bitsize = 2^size-exp)")
	df.hashset = fs.String("hashset", "simple", "hash set to use: simple or murmur")
	df.ngramLength = fs.Int("n", 3, "n-gram length")
	df.delimiter = fs.String("delimiter", "", "delimiter byte set for token mode (accepts %HH escapes); empty means byte/bit mode")
	df.binary = fs.Bool("binary", false, "use bit n-grams instead of byte n-grams (ignored when -delimiter is set)")
	df.dimSpace = fs.Uint64("dimspace", 1<<20, "dimension space for weighted training's hash(ngram,len)")
	return df
}

func (df *detectorFlags) newDetector() (*salad.Detector, error) {
	d := salad.NewDetector()
	hs, err := salad.HashSetByName(*df.hashset)
	if err != nil {
		return nil, err
	}
	if err := d.SetBloomfilter(*df.sizeExp, hs); err != nil {
		return nil, err
	}
	if err := d.SetNgramLength(*df.ngramLength); err != nil {
		return nil, err
	}
	if *df.delimiter != "" {
		d.SetDelimiter(*df.delimiter)
	} else if err := d.UseBinaryNgrams(*df.binary); err != nil {
		return nil, err
	}
	if err := d.SetDimSpace(*df.dimSpace); err != nil {
		return nil, err
	}
	return d, nil
}

// openSource picks a salad.Source implementation by inspecting path: a
// directory is walked (glob-filtered by pattern), a zip/tar(.gz) archive
// is read member-by-member, anything else is treated as a line file.
func openSource(path, pattern string) (salad.Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return input.NewDirSource(path, pattern)
	}
	switch {
	case strings.HasSuffix(path, ".zip"),
		strings.HasSuffix(path, ".tar"),
		strings.HasSuffix(path, ".tar.gz"),
		strings.HasSuffix(path, ".tgz"):
		return input.NewArchiveSource(path), nil
	default:
		return input.NewLineSource(path), nil
	}
}
