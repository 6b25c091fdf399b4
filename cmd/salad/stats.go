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

func statsCommand() *ffcli.Command {
	fs := flag.NewFlagSet("salad stats", flag.ExitOnError)
	model := fs.String("model", "", "path to an existing model file")
	binary := fs.Bool("binary", false, "the model was trained with bit n-grams (ignored for token-mode models)")
	jsonOut := fs.Bool("json", false, "emit the report as JSON")

	return &ffcli.Command{
		Name:       "stats",
		ShortUsage: "salad stats -model PATH",
		ShortHelp:  "report a model's static bloom-filter statistics, without processing new input",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if *model == "" {
				return fmt.Errorf("stats: -model is required")
			}
			d, err := loadDetector(*model, *binary)
			if err != nil {
				return err
			}

			format := report.FormatText
			if *jsonOut {
				format = report.FormatJSON
			}
			return report.WriteInspect(os.Stdout, d.Inspect(salad.Stats{}), format)
		},
	}
}
