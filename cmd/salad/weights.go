package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/peterbourgon/ff/v3/ffcli"
	"go.uber.org/zap"

	"github.com/letter-salad/salad"
	"github.com/letter-salad/salad/internal/weights"
	"github.com/letter-salad/salad/salog"
)

func weightsCommand() *ffcli.Command {
	fs := flag.NewFlagSet("salad weights", flag.ExitOnError)
	ngramLength := fs.Int("n", 3, "n-gram length")
	delimiter := fs.String("delimiter", "", "delimiter byte set for token mode (accepts %HH escapes); empty means byte/bit mode")
	binary := fs.Bool("binary", false, "use bit n-grams instead of byte n-grams (ignored when -delimiter is set)")
	dimSpace := fs.Uint64("dimspace", 1<<20, "dimension space for the weight set")
	inputPath := fs.String("input", "", "path to the reference corpus: line file, directory, or zip/tar archive")
	pattern := fs.String("glob", "", "glob pattern to filter files when -input is a directory")
	out := fs.String("out", "", "path to write the weight set")

	return &ffcli.Command{
		Name:       "weights",
		ShortUsage: "salad weights -input PATH -out PATH [flags]",
		ShortHelp:  "build a weight set from a reference corpus for weighted training",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if *inputPath == "" || *out == "" {
				return fmt.Errorf("weights: -input and -out are required")
			}
			if *ngramLength <= 0 {
				return fmt.Errorf("weights: -n must be positive")
			}
			if *dimSpace == 0 {
				return fmt.Errorf("weights: -dimspace must be nonzero")
			}

			ds := salad.NewDelimiterSet(*delimiter)
			src, err := openSource(*inputPath, *pattern)
			if err != nil {
				return err
			}

			ws := weights.New(*dimSpace)
			collect := func(ngram []byte, length int) bool {
				ws.Add(ngram[:length])
				return true
			}
			err = src.Recv(ctx, salad.DefaultBatchSize, func(batch [][]byte) error {
				for _, buf := range batch {
					switch {
					case !ds.Empty():
						if err := salad.ExtractTokenGrams(buf, *ngramLength, ds, collect); err != nil {
							return err
						}
					case *binary:
						salad.ExtractBitGrams(buf, *ngramLength, collect)
					default:
						salad.ExtractByteGrams(buf, *ngramLength, collect)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			wf, err := os.Create(*out)
			if err != nil {
				return err
			}
			if _, err := ws.WriteTo(wf); err != nil {
				wf.Close()
				return err
			}
			if err := wf.Close(); err != nil {
				return err
			}
			salog.Scoped("weights").Info("weight set written",
				zap.String("path", *out),
				zap.Uint64("dims", ws.Count()))
			return nil
		},
	}
}
