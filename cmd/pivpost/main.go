// SPDX-License-Identifier: MIT

// Command pivpost runs a post-processing pipeline over a directory of PIV
// vector files: load, transform, validate, derive, write and plot.
//
//	pivpost -config pipeline.yaml
//	pivpost -dir run01 -pattern '*.vec' -scalar vorticity -average -out out -plot
//
// Flags given on the command line override the configuration file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/katalvlaran/lvlpiv/config"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage:", os.Args[0], "[-config pipeline.yaml] [flags]")
		flag.PrintDefaults()
	}
}

func main() {
	var (
		cfgPath = flag.String("config", "", "YAML pipeline file.")
		dir     = flag.String("dir", "", "Directory holding the vector files.")
		pattern = flag.String("pattern", "", "Glob selecting the files inside -dir.")
		format  = flag.String("format", "", "Reader: vec, openpiv or auto.")
		scalar  = flag.String("scalar", "", "Derived scalar: vorticity, ken, tke, divergence, strain, shear, acceleration, magnitude.")
		average = flag.Bool("average", false, "Also write the time average.")
		gamma   = flag.Int("gamma", 0, "Γ1/Γ2 window half-size, 0 disables.")
		out     = flag.String("out", "", "Output directory.")
		formats = flag.String("formats", "", "Comma-separated output formats (vec,txt,vtk,meta).")
		plot    = flag.Bool("plot", false, "Write PNG plots of every frame.")
		verbose = flag.Bool("v", false, "Log at debug level.")
	)
	flag.Parse()

	p := config.Default()
	if *cfgPath != "" {
		var err error
		if p, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, "pivpost:", err)
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			p.Input.Dir = *dir
		case "pattern":
			p.Input.Pattern = *pattern
		case "format":
			p.Input.Format = *format
		case "scalar":
			p.Scalar = *scalar
		case "average":
			p.Average = *average
		case "gamma":
			p.Gamma.N = *gamma
		case "out":
			p.Output.Dir = *out
		case "formats":
			p.Output.Formats = strings.Split(*formats, ",")
		case "plot":
			p.Output.Plot = *plot
		case "v":
			if *verbose {
				p.LogLevel = "debug"
			}
		}
	})
	if err := p.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "pivpost:", err)
		flag.Usage()
		os.Exit(1)
	}
	lvl, _ := p.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, p, logger); err != nil {
		logger.Error("pipeline failed", "err", err)
		stop()
		os.Exit(1)
	}
}
