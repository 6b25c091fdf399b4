package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/letter-salad/salad"
	"github.com/letter-salad/salad/internal/report"
)

func inspectCommand() *ffcli.Command {
	fs := flag.NewFlagSet("salad inspect", flag.ExitOnError)
	model := fs.String("model", "", "path to an existing model file")
	inputPath := fs.String("input", "", "path to input to inspect against the model")
	pattern := fs.String("glob", "", "glob pattern to filter files when -input is a directory")
	binary := fs.Bool("binary", false, "the model was trained with bit n-grams (ignored for token-mode models)")
	jsonOut := fs.Bool("json", false, "emit the report as JSON")

	return &ffcli.Command{
		Name:       "inspect",
		ShortUsage: "salad inspect -model PATH -input PATH",
		ShortHelp:  "report saturation and expected false-positive rate for a batch, without mutating the model",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if *model == "" || *inputPath == "" {
				return fmt.Errorf("inspect: -model and -input are required")
			}

			d, err := loadDetector(*model, *binary)
			if err != nil {
				return err
			}
			src, err := openSource(*inputPath, *pattern)
			if err != nil {
				return err
			}

			// DualCount leaves the training filter read-only: inspecting a
			// batch never perturbs the model being reported on.
			st, err := d.Train(ctx, src, salad.DualCount)
			if err != nil {
				return err
			}

			format := report.FormatText
			if *jsonOut {
				format = report.FormatJSON
			}
			return report.WriteInspect(os.Stdout, d.Inspect(st), format)
		},
	}
}
