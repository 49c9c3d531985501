package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlpiv/config"
	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/pivio"
)

const pipelineYAML = `
input:
  dir: ./run01
  pattern: "*.vec"
  format: vec
dt: 0.002
scale: 0.001
crop: {xmin: 0, xmax: 10, ymin: -5, ymax: 5}
validate:
  chc: true
  median_threshold: 2
  std_k: 3
fill_nans: 10
filter: {sigma: 1, median: 3}
scalar: Curl
gamma: {n: 2, detect: true}
average: true
pod: {modes: 3}
output:
  dir: ./out
  formats: [vec, txt, vtk, meta]
  plot: true
  animate: true
  nth_arrow: 2
workers: 4
log_level: debug
`

func TestDecode(t *testing.T) {
	p, err := config.Decode(strings.NewReader(pipelineYAML))
	require.NoError(t, err)

	assert.Equal(t, "./run01", p.Input.Dir)
	assert.Equal(t, 0.002, p.Dt)
	require.NotNil(t, p.Crop)
	assert.Equal(t, -5.0, p.Crop.YMin)
	assert.Nil(t, p.Pan)
	assert.True(t, p.Outliers.CHC)
	assert.Equal(t, field.DefaultMedianEps, p.Outliers.MedianEps, "unset keys keep defaults")
	assert.Equal(t, field.PropVorticity, p.Scalar, "alias is normalized")
	assert.Equal(t, 2, p.Gamma.N)
	assert.Equal(t, 3, p.POD.Modes)
	assert.Equal(t, "field", p.Output.Stem)

	formats, err := p.WriteFormats()
	require.NoError(t, err)
	assert.Equal(t, []pivio.Format{pivio.FormatVec, pivio.FormatOpenPIV, pivio.FormatVTK, pivio.FormatMeta}, formats)

	lvl, err := p.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: {dir: data}\n"), 0o644))

	p, err := config.Load(path)
	require.NoError(t, err)
	want := config.Default()
	want.Input.Dir = "data"
	assert.Equal(t, want, p)
	assert.Equal(t, "*.vec", p.Input.Pattern, "default skips sidecars and notes")

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", "", config.ErrNoInput},
		{"unknown key", "input: {dir: d}\ncolour: red\n", config.ErrInvalid},
		{"write-only input", "input: {dir: d, format: vtk}\n", config.ErrInvalid},
		{"bad format", "input: {dir: d}\noutput: {formats: [png]}\n", config.ErrInvalid},
		{"auto output", "input: {dir: d}\noutput: {formats: [auto]}\n", config.ErrInvalid},
		{"negative dt", "input: {dir: d}\ndt: -1\n", config.ErrInvalid},
		{"zero scale", "input: {dir: d}\nscale: 0\n", config.ErrInvalid},
		{"inverted crop", "input: {dir: d}\ncrop: {xmin: 2, xmax: 1}\n", config.ErrInvalid},
		{"even median", "input: {dir: d}\nfilter: {median: 4}\n", config.ErrInvalid},
		{"unknown scalar", "input: {dir: d}\nscalar: pressure\n", config.ErrInvalid},
		{"negative gamma", "input: {dir: d}\ngamma: {n: -1}\n", config.ErrInvalid},
		{"log level", "input: {dir: d}\nlog_level: loud\n", config.ErrInvalid},
		{"negative modes", "input: {dir: d}\npod: {modes: -2}\n", config.ErrInvalid},
		{"nth arrow", "input: {dir: d}\noutput: {nth_arrow: 0}\n", config.ErrInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Decode(strings.NewReader(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
