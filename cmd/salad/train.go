package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/peterbourgon/ff/v3/ffcli"
	"go.uber.org/zap"

	"github.com/letter-salad/salad"
	"github.com/letter-salad/salad/internal/report"
	"github.com/letter-salad/salad/internal/weights"
	"github.com/letter-salad/salad/salog"
)

func trainCommand() *ffcli.Command {
	fs := flag.NewFlagSet("salad train", flag.ExitOnError)
	df := registerDetectorFlags(fs)
	inputPath := fs.String("input", "", "path to training input: line file, directory, or zip/tar archive")
	pattern := fs.String("glob", "", "glob pattern to filter files when -input is a directory")
	policy := fs.String("policy", "counted_add", "dual-filter training policy: counted_add or count")
	weightsPath := fs.String("weights", "", "path to a weight set built by `salad weights`; only n-grams present in it are inserted")
	model := fs.String("model", "", "path to write the trained model")
	jsonOut := fs.Bool("json", false, "emit training stats as JSON")

	return &ffcli.Command{
		Name:       "train",
		ShortUsage: "salad train -input PATH -model PATH [flags]",
		ShortHelp:  "train a detector from input and write it to a model file",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if *inputPath == "" || *model == "" {
				return fmt.Errorf("train: -input and -model are required")
			}

			var pol salad.DualPolicy
			switch *policy {
			case "counted_add":
				pol = salad.DualCountedAdd
			case "count":
				pol = salad.DualCount
			default:
				return fmt.Errorf("train: unknown policy %q (want counted_add or count)", *policy)
			}

			d, err := df.newDetector()
			if err != nil {
				return err
			}
			src, err := openSource(*inputPath, *pattern)
			if err != nil {
				return err
			}

			var st salad.Stats
			weighted := *weightsPath != ""
			if weighted {
				wf, err := os.Open(*weightsPath)
				if err != nil {
					return err
				}
				ws, err := weights.ReadSet(wf)
				wf.Close()
				if err != nil {
					return err
				}
				if err := d.SetDimSpace(ws.DimSpace()); err != nil {
					return err
				}
				if err := d.TrainWeighted(ctx, src, ws); err != nil {
					return err
				}
			} else {
				st, err = d.Train(ctx, src, pol)
				if err != nil {
					return err
				}
			}

			mf, err := os.Create(*model)
			if err != nil {
				return err
			}
			if err := d.ToFile(mf); err != nil {
				mf.Close()
				return err
			}
			if err := mf.Close(); err != nil {
				return err
			}
			salog.Scoped("train").Info("model written",
				zap.String("path", *model),
				zap.Uint64("ngrams", st.Total),
				zap.Uint64("new", st.New))

			if weighted {
				// Weighted training carries no dual-filter stats to report.
				return nil
			}
			format := report.FormatText
			if *jsonOut {
				format = report.FormatJSON
			}
			return report.WriteStats(os.Stdout, st, format)
		},
	}
}
