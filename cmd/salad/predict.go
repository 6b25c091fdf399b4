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
	"github.com/letter-salad/salad/salog"
)

func predictCommand() *ffcli.Command {
	fs := flag.NewFlagSet("salad predict", flag.ExitOnError)
	model := fs.String("model", "", "path to a trained model file")
	goodModel := fs.String("good-model", "", "path to a second model to score against as the \"good\" side (enables 2-class scoring)")
	inputPath := fs.String("input", "", "path to input to score")
	pattern := fs.String("glob", "", "glob pattern to filter files when -input is a directory")
	binary := fs.Bool("binary", false, "the model(s) were trained with bit n-grams (ignored for token-mode models)")
	jsonOut := fs.Bool("json", false, "emit scores as a JSON array")

	return &ffcli.Command{
		Name:       "predict",
		ShortUsage: "salad predict -model PATH -input PATH [-good-model PATH]",
		ShortHelp:  "score each input against a trained model",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if *model == "" || *inputPath == "" {
				return fmt.Errorf("predict: -model and -input are required")
			}

			d, err := loadDetector(*model, *binary)
			if err != nil {
				return err
			}
			src, err := openSource(*inputPath, *pattern)
			if err != nil {
				return err
			}

			var scores []float64
			if *goodModel != "" {
				good, err := loadDetector(*goodModel, *binary)
				if err != nil {
					return err
				}
				scores, err = d.Predict2Class(ctx, src, good)
				if err != nil {
					return err
				}
			} else {
				scores, err = d.Predict(ctx, src)
				if err != nil {
					return err
				}
			}

			salog.Scoped("predict").Info("scored inputs", zap.Int("count", len(scores)))

			format := report.FormatText
			if *jsonOut {
				format = report.FormatJSON
			}
			return report.WriteScores(os.Stdout, scores, format)
		},
	}
}

func loadDetector(path string, asBinary bool) (*salad.Detector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return salad.FromFile(f, asBinary)
}
