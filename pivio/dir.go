// SPDX-License-Identifier: MIT

package pivio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvlpiv/field"
)

// Load reads one file with the reader selected by f. FormatAuto guesses
// from the extension: .vec is Insight, .txt is OpenPIV, anything else is
// ErrUnknownFormat.
func Load(path string, f Format) (*field.Dataset, error) {
	if f == FormatAuto {
		var ok bool
		if f, ok = formatOf(path); !ok {
			return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
		}
	}
	switch f {
	case FormatVec:
		return LoadVec(path)
	case FormatOpenPIV:
		return LoadOpenPIV(path)
	}
	return nil, ErrUnknownFormat
}

// LoadDirectory reads every file of dir matching pattern and stacks them
// along time.
// MAIN DESCRIPTION:
//   - Stage 1: glob and sort the matches lexically (frame order). With
//     FormatAuto, matches without a known extension (README, .set, .yaml
//     sidecars) are skipped.
//   - Stage 2: parse the files concurrently on a bounded errgroup; the
//     first failure cancels the rest.
//   - Stage 3: concatenate; frame k gets T = k·dt where dt comes from
//     WithDt or else from the first file.
//
// Errors: ErrNoFiles, filepath.ErrBadPattern, reader errors,
// field.ErrCoordsMismatch when files use different grids, ctx.Err().
func LoadDirectory(ctx context.Context, dir, pattern string, opts ...Option) (*field.Dataset, error) {
	o := gatherOptions(opts...)
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("pivio: %w", err)
	}
	if o.format == FormatAuto {
		paths = readable(paths, o)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s/%s: %w", dir, pattern, ErrNoFiles)
	}
	sort.Strings(paths)

	parts := make([]*field.Dataset, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for k, p := range paths {
		k, p := k, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ds, err := Load(p, o.format)
			if err != nil {
				return err
			}
			parts[k] = ds
			o.debug("pivio: loaded", "file", p, "frames", ds.Len())
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	out, err := field.Concat(parts...)
	if err != nil {
		return nil, fmt.Errorf("pivio: %w", err)
	}
	dt := o.dt
	if dt == 0 {
		dt = out.Attrs.Dt
	}
	out.Attrs.Dt = dt
	for k := range out.Frames {
		out.Frames[k].T = float64(k) * dt
	}

	return out, nil
}

// readable drops paths that no reader understands.
func readable(paths []string, o options) []string {
	kept := paths[:0]
	for _, p := range paths {
		if _, ok := formatOf(p); !ok {
			o.debug("pivio: skipped", "file", p)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// Save writes every frame of ds to dir as <stem>_<k><ext>, one file per
// frame and format (FormatMeta writes a single <stem>.yaml). Files are
// written concurrently. dir is created when missing.
//
// Errors: ErrUnknownFormat, I/O errors, ctx.Err().
func Save(ctx context.Context, dir, stem string, ds *field.Dataset, formats []Format, opts ...Option) ([]string, error) {
	o := gatherOptions(opts...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	type job struct {
		path  string
		write func(io.Writer) error
	}
	var jobs []job
	for _, f := range formats {
		switch f {
		case FormatMeta:
			jobs = append(jobs, job{filepath.Join(dir, stem+f.Ext()), func(w io.Writer) error { return WriteMeta(w, ds) }})
			continue
		case FormatVec, FormatOpenPIV, FormatVTK:
		default:
			return nil, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
		}
		for k := 0; k < ds.Len(); k++ {
			path := filepath.Join(dir, fmt.Sprintf("%s_%04d%s", stem, k, f.Ext()))
			jobs = append(jobs, job{path, frameWriter(f, ds, k)})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return writeFile(j.path, j.write)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, len(jobs))
	for k, j := range jobs {
		paths[k] = j.path
	}
	o.debug("pivio: saved", "dir", dir, "files", len(paths))
	return paths, nil
}

func frameWriter(f Format, ds *field.Dataset, k int) func(io.Writer) error {
	switch f {
	case FormatVec:
		return func(w io.Writer) error { return WriteVec(w, ds, k) }
	case FormatOpenPIV:
		return func(w io.Writer) error { return WriteOpenPIV(w, ds, k) }
	default:
		return func(w io.Writer) error { return WriteVTK(w, ds, k) }
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
