// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/pivio"
)

var (
	// ErrNoInput is returned when the pipeline names no input directory.
	ErrNoInput = errors.New("config: input.dir is required")

	// ErrInvalid is returned for out-of-range or unknown values.
	ErrInvalid = errors.New("config: invalid value")
)

// Input selects the files to load.
type Input struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"` // filepath.Match pattern, "*.vec" by default
	Format  string `yaml:"format"`  // vec, openpiv or auto
}

// Pan shifts the coordinates.
type Pan struct {
	Dx float64 `yaml:"dx"`
	Dy float64 `yaml:"dy"`
}

// Crop keeps the inclusive coordinate window.
type Crop struct {
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	YMin float64 `yaml:"ymin"`
	YMax float64 `yaml:"ymax"`
}

// Filter configures smoothing; zero values switch a filter off.
type Filter struct {
	Sigma  float64 `yaml:"sigma"`  // Gaussian standard deviation in samples
	Median int     `yaml:"median"` // odd median window size
}

// Validation configures the outlier tests; zero values switch a test off.
type Validation struct {
	CHC             bool    `yaml:"chc"` // mask vectors with chc <= 0
	MedianThreshold float64 `yaml:"median_threshold"`
	MedianEps       float64 `yaml:"median_eps"`
	StdK            float64 `yaml:"std_k"`
}

// Gamma configures vortex identification; N = 0 switches it off.
type Gamma struct {
	N      int  `yaml:"n"`      // window half-size
	Detect bool `yaml:"detect"` // also report the cores of the first frame
}

// POD configures the modal decomposition; Modes = 0 switches it off.
type POD struct {
	Modes int `yaml:"modes"` // number of most energetic modes written
}

// Output configures what is written.
type Output struct {
	Dir     string   `yaml:"dir"`
	Stem    string   `yaml:"stem"`
	Formats []string `yaml:"formats"`
	Plot    bool     `yaml:"plot"`    // PNG quiver (and contour when a scalar exists) per frame
	Animate bool     `yaml:"animate"` // GIF of every frame
	NthArr  int      `yaml:"nth_arrow"`
}

// Pipeline is the whole post-processing run.
type Pipeline struct {
	Input    Input      `yaml:"input"`
	Dt       float64    `yaml:"dt"`    // overrides the file dt when > 0
	Scale    float64    `yaml:"scale"` // length scale factor, 1 keeps units
	TUnits   string     `yaml:"t_units"`
	Pan      *Pan       `yaml:"pan"`
	Crop     *Crop      `yaml:"crop"`
	Outliers Validation `yaml:"validate"`
	FillNaNs int        `yaml:"fill_nans"` // max fill sweeps, 0 disables
	Filter   Filter     `yaml:"filter"`
	Scalar   string     `yaml:"scalar"`
	Gamma    Gamma      `yaml:"gamma"`
	Average  bool       `yaml:"average"`
	POD      POD        `yaml:"pod"`
	Output   Output     `yaml:"output"`
	Workers  int        `yaml:"workers"` // 0 uses GOMAXPROCS
	LogLevel string     `yaml:"log_level"`
}

// Default returns a pipeline that loads the .vec files of the input directory
// and writes it back as .vec files into ./out.
func Default() Pipeline {
	return Pipeline{
		Input:    Input{Pattern: "*.vec", Format: string(pivio.FormatAuto)},
		Scale:    1,
		Outliers: Validation{MedianEps: field.DefaultMedianEps},
		Output: Output{
			Dir:     "out",
			Stem:    "field",
			Formats: []string{string(pivio.FormatVec)},
			NthArr:  1,
		},
		LogLevel: "info",
	}
}

// Load reads and validates a pipeline file.
func Load(path string) (Pipeline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("config: %w", err)
	}
	p, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return Pipeline{}, fmt.Errorf("config %s: %w", path, err)
	}
	return p, nil
}

// Decode reads a pipeline over Default and validates it. Unknown keys are
// an error; an empty document yields the defaults (which fail without
// input.dir).
func Decode(r io.Reader) (Pipeline, error) {
	p := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Pipeline{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := p.Validate(); err != nil {
		return Pipeline{}, err
	}
	return p, nil
}

// Validate checks every field and normalizes the scalar name.
func (p *Pipeline) Validate() error {
	if strings.TrimSpace(p.Input.Dir) == "" {
		return ErrNoInput
	}
	f, err := p.ReadFormat()
	if err != nil {
		return err
	}
	if f == pivio.FormatVTK || f == pivio.FormatMeta {
		return invalid("input.format", p.Input.Format)
	}
	if p.Dt < 0 {
		return invalid("dt", p.Dt)
	}
	if p.Scale <= 0 {
		return invalid("scale", p.Scale)
	}
	if c := p.Crop; c != nil && (c.XMin > c.XMax || c.YMin > c.YMax) {
		return invalid("crop", *c)
	}
	v := p.Outliers
	if v.MedianThreshold < 0 || v.MedianEps < 0 || v.StdK < 0 {
		return invalid("validate", v)
	}
	if p.FillNaNs < 0 {
		return invalid("fill_nans", p.FillNaNs)
	}
	if p.Filter.Sigma < 0 {
		return invalid("filter.sigma", p.Filter.Sigma)
	}
	if m := p.Filter.Median; m < 0 || (m > 0 && m%2 == 0) {
		return invalid("filter.median", m)
	}
	if p.Scalar != "" {
		name, err := field.CanonicalProperty(p.Scalar)
		if err != nil {
			return invalid("scalar", p.Scalar)
		}
		p.Scalar = name
	}
	if p.Gamma.N < 0 {
		return invalid("gamma.n", p.Gamma.N)
	}
	if p.POD.Modes < 0 {
		return invalid("pod.modes", p.POD.Modes)
	}
	if _, err := p.WriteFormats(); err != nil {
		return err
	}
	if p.Output.NthArr < 1 {
		return invalid("output.nth_arrow", p.Output.NthArr)
	}
	if p.Workers < 0 {
		return invalid("workers", p.Workers)
	}
	if _, err := p.Level(); err != nil {
		return err
	}
	return nil
}

// ReadFormat returns the reader selected by input.format.
func (p Pipeline) ReadFormat() (pivio.Format, error) {
	f, err := pivio.ParseFormat(p.Input.Format)
	if err != nil {
		return "", invalid("input.format", p.Input.Format)
	}
	return f, nil
}

// WriteFormats resolves output.formats. "auto" is not a writer.
func (p Pipeline) WriteFormats() ([]pivio.Format, error) {
	out := make([]pivio.Format, 0, len(p.Output.Formats))
	for _, name := range p.Output.Formats {
		f, err := pivio.ParseFormat(name)
		if err != nil || f == pivio.FormatAuto {
			return nil, invalid("output.formats", name)
		}
		out = append(out, f)
	}
	return out, nil
}

// Level parses log_level (debug, info, warn, error).
func (p Pipeline) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(p.LogLevel)); err != nil {
		return 0, invalid("log_level", p.LogLevel)
	}
	return lvl, nil
}

func invalid(key string, v any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalid, key, v)
}
