// Command salad trains, scores, and inspects n-gram Bloom-filter anomaly
// detectors from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/felixge/fgprof"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/letter-salad/salad/salog"
)

func main() {
	rootFs := flag.NewFlagSet("salad", flag.ExitOnError)
	cpuprofile := rootFs.String("cpuprofile", "", "write a CPU profile to this path before exiting")
	fullprofile := rootFs.String("fullprofile", "", "write an fgprof wall-clock profile to this path before exiting")

	root := &ffcli.Command{
		Name:       "salad",
		ShortUsage: "salad <subcommand> [flags]",
		FlagSet:    rootFs,
		Subcommands: []*ffcli.Command{
			trainCommand(),
			predictCommand(),
			inspectCommand(),
			statsCommand(),
			weightsCommand(),
		},
		Exec: func(ctx context.Context, args []string) error {
			return flag.ErrHelp
		},
	}

	defer salog.Init()()

	if err := root.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}
	if *fullprofile != "" {
		f, err := os.Create(*fullprofile)
		if err != nil {
			log.Fatal(err)
		}
		stop := fgprof.Start(f, fgprof.FormatPprof)
		defer func() {
			if err := stop(); err != nil {
				log.Println(err)
			}
			f.Close()
		}()
	}

	if err := root.Run(context.Background()); err != nil && err != flag.ErrHelp {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
