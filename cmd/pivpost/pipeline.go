// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/katalvlaran/lvlpiv/config"
	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/graphics"
	"github.com/katalvlaran/lvlpiv/pivio"
	"github.com/katalvlaran/lvlpiv/pod"
	"github.com/katalvlaran/lvlpiv/vortex"
)

// output is one dataset written under its own file stem.
type output struct {
	stem string
	ds   *field.Dataset
}

// run executes the stages of p in order and stops at the first error.
func run(ctx context.Context, p config.Pipeline, log *slog.Logger) error {
	workers := p.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	ds, err := load(ctx, p, workers, log)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	fopts := []field.Option{field.WithContext(ctx), field.WithWorkers(workers), field.WithLogger(log)}
	if ds, err = transform(p, ds, fopts, log); err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	outs, err := derive(ctx, p, ds, workers, fopts, log)
	if err != nil {
		return fmt.Errorf("derive: %w", err)
	}
	if err = write(ctx, p, outs, workers, log); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err = plots(p, outs, log); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	return nil
}

func load(ctx context.Context, p config.Pipeline, workers int, log *slog.Logger) (*field.Dataset, error) {
	f, err := p.ReadFormat()
	if err != nil {
		return nil, err
	}
	opts := []pivio.Option{pivio.WithWorkers(workers), pivio.WithLogger(log)}
	if f != pivio.FormatAuto {
		opts = append(opts, pivio.WithFormat(f))
	}
	if p.Dt > 0 {
		opts = append(opts, pivio.WithDt(p.Dt))
	}
	ds, err := pivio.LoadDirectory(ctx, p.Input.Dir, p.Input.Pattern, opts...)
	if err != nil {
		return nil, err
	}
	rows, cols := ds.Shape()
	log.Info("loaded", "dir", p.Input.Dir, "frames", ds.Len(), "rows", rows, "cols", cols, "dt", ds.Attrs.Dt)
	return ds, nil
}

// transform applies units and geometry first, then outlier rejection, hole
// filling and smoothing.
func transform(p config.Pipeline, ds *field.Dataset, fopts []field.Option, log *slog.Logger) (*field.Dataset, error) {
	var err error
	if p.Scale != 1 {
		if ds, err = ds.SetScale(p.Scale); err != nil {
			return nil, err
		}
	}
	if p.TUnits != "" {
		if ds, err = ds.SetTUnits(p.TUnits); err != nil {
			return nil, err
		}
	}
	if p.Pan != nil {
		if ds, err = ds.Pan(p.Pan.Dx, p.Pan.Dy); err != nil {
			return nil, err
		}
	}
	if c := p.Crop; c != nil {
		if ds, err = ds.Crop(c.XMin, c.XMax, c.YMin, c.YMax); err != nil {
			return nil, err
		}
	}

	v := p.Outliers
	var rep field.Report
	if v.CHC {
		if ds, rep, err = ds.CHCMask(field.PositiveCHC, fopts...); err != nil {
			return nil, err
		}
		log.Info("chc mask", "rejected", rep.Rejected, "ratio", rep.Ratio())
	}
	if v.MedianThreshold > 0 {
		if ds, rep, err = ds.MedianTest(v.MedianThreshold, v.MedianEps, fopts...); err != nil {
			return nil, err
		}
		log.Info("median test", "rejected", rep.Rejected, "ratio", rep.Ratio())
	}
	if v.StdK > 0 {
		if ds, rep, err = ds.GlobalStd(v.StdK, fopts...); err != nil {
			return nil, err
		}
		log.Info("global std", "rejected", rep.Rejected, "ratio", rep.Ratio())
	}
	if p.FillNaNs > 0 {
		if ds, err = ds.FillNaNs(p.FillNaNs, fopts...); err != nil {
			return nil, err
		}
	}
	if p.Filter.Median > 0 {
		if ds, err = ds.MedianSmooth(p.Filter.Median, fopts...); err != nil {
			return nil, err
		}
	}
	if p.Filter.Sigma > 0 {
		if ds, err = ds.Filter(p.Filter.Sigma, fopts...); err != nil {
			return nil, err
		}
	}
	log.Debug("transformed", "frames", ds.Len())
	return ds, nil
}

// derive returns the processed dataset followed by the optional time
// average, Γ2 field and POD modes.
func derive(ctx context.Context, p config.Pipeline, ds *field.Dataset, workers int, fopts []field.Option, log *slog.Logger) ([]output, error) {
	var err error
	if p.Scalar != "" {
		if ds, err = ds.Vec2Scal(p.Scalar, fopts...); err != nil {
			return nil, err
		}
		log.Info("scalar", "name", ds.Scalar)
	}
	stem := p.Output.Stem
	outs := []output{{stem, ds}}

	if p.Average {
		mean, err := ds.Average()
		if err != nil {
			return nil, err
		}
		outs = append(outs, output{stem + "_mean", mean})
	}

	if n := p.Gamma.N; n > 0 {
		vopts := []vortex.Option{vortex.WithWorkers(workers), vortex.WithLogger(log)}
		g2, err := vortex.Gamma2(ctx, ds, n, vopts...)
		if err != nil {
			return nil, err
		}
		outs = append(outs, output{stem + "_" + vortex.ScalarGamma2, g2})
		if p.Gamma.Detect {
			found, err := vortex.Detect(ctx, ds, 0, n, vopts...)
			if err != nil {
				return nil, err
			}
			for _, v := range found {
				log.Info("vortex", "x", v.X, "y", v.Y, "sign", v.Sign, "gamma1", v.Gamma1, "area", v.Area, "circulation", v.Circulation)
			}
		}
	}

	if m := p.POD.Modes; m > 0 {
		res, err := pod.Decompose(ds, pod.WithModes(m))
		if err != nil {
			return nil, err
		}
		log.Info("pod", "modes", res.Len(), "energy", res.Energy)
		for i := 0; i < res.Len(); i++ {
			mode, err := res.Mode(i)
			if err != nil {
				return nil, err
			}
			outs = append(outs, output{fmt.Sprintf("%s_mode%d", stem, i), mode})
		}
	}
	return outs, nil
}

func write(ctx context.Context, p config.Pipeline, outs []output, workers int, log *slog.Logger) error {
	formats, err := p.WriteFormats()
	if err != nil {
		return err
	}
	for _, o := range outs {
		paths, err := pivio.Save(ctx, p.Output.Dir, o.stem, o.ds, formats, pivio.WithWorkers(workers), pivio.WithLogger(log))
		if err != nil {
			return err
		}
		log.Info("written", "stem", o.stem, "files", len(paths))
	}
	return nil
}

// plots draws a quiver PNG per frame of every output, a scalar PNG per frame
// when W is present and one GIF of the processed series.
func plots(p config.Pipeline, outs []output, log *slog.Logger) error {
	if !p.Output.Plot && !p.Output.Animate {
		return nil
	}
	opts := graphics.DefaultOptions()
	opts.NthArr = p.Output.NthArr
	opts.Units = true
	if err := os.MkdirAll(p.Output.Dir, 0o755); err != nil {
		return err
	}

	if p.Output.Plot {
		n := 0
		for _, o := range outs {
			for k := 0; k < o.ds.Len(); k++ {
				q, err := graphics.Quiver(o.ds, k, opts)
				if err != nil {
					return err
				}
				if err = graphics.Save(q, plotPath(p, o.stem, "quiver", k), opts.Width, opts.Height); err != nil {
					return err
				}
				n++
				if o.ds.Frames[k].W == nil {
					continue
				}
				c, err := graphics.Contourf(o.ds, k, opts)
				if err != nil {
					return err
				}
				if err = graphics.Save(c, plotPath(p, o.stem, o.ds.Scalar, k), opts.Width, opts.Height); err != nil {
					return err
				}
				n++
			}
		}
		log.Info("plotted", "dir", p.Output.Dir, "images", n)
	}

	if p.Output.Animate {
		path := filepath.Join(p.Output.Dir, outs[0].stem+".gif")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err = graphics.Animate(f, outs[0].ds, opts); err != nil {
			f.Close()
			return err
		}
		if err = f.Close(); err != nil {
			return err
		}
		log.Info("animated", "file", path, "frames", outs[0].ds.Len())
	}
	return nil
}

func plotPath(p config.Pipeline, stem, kind string, k int) string {
	return filepath.Join(p.Output.Dir, fmt.Sprintf("%s_%s_%04d.png", stem, kind, k))
}
