// Package config reads the TOML settings of the viewer: mapper and lookup
// table parameters, data loading and output options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"polymap/internal/logging"
	"polymap/internal/lut"
	"polymap/internal/mapper"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "polyview.toml"

type Config struct {
	Mapper      Mapper      `toml:"mapper"`
	Visibility  Visibility  `toml:"visibility"`
	LookupTable LookupTable `toml:"lookup_table"`
	Data        Data        `toml:"data"`
	Output      Output      `toml:"output"`
	Log         Log         `toml:"log"`
}

type Mapper struct {
	ScalarsVisible bool       `toml:"scalars_visible"`
	ScalarRange    [2]float64 `toml:"scalar_range"`
	// AutoRange replaces ScalarRange with the range of the loaded scalars.
	AutoRange bool `toml:"auto_range"`
}

type Visibility struct {
	Points   bool `toml:"points"`
	Lines    bool `toml:"lines"`
	Polygons bool `toml:"polygons"`
	Strips   bool `toml:"strips"`
}

type LookupTable struct {
	Colors     int        `toml:"colors"`
	Hue        [2]float64 `toml:"hue"`
	Saturation [2]float64 `toml:"saturation"`
	Value      [2]float64 `toml:"value"`
	Alpha      [2]float64 `toml:"alpha"`
}

type Data struct {
	// ScalarField names the feature attribute used as point scalar.
	ScalarField string `toml:"scalar_field"`
}

// Output sizes are in cells for the terminal and pixels for images; zero
// picks the backend's default.
type Output struct {
	Backend string `toml:"backend"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Path    string `toml:"path"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Mapper:     Mapper{ScalarsVisible: true, ScalarRange: [2]float64{0, 1}, AutoRange: true},
		Visibility: Visibility{Points: true, Lines: true, Polygons: true, Strips: true},
		LookupTable: LookupTable{
			Colors:     256,
			Hue:        [2]float64{0, 0.6667},
			Saturation: [2]float64{1, 1},
			Value:      [2]float64{1, 1},
			Alpha:      [2]float64{1, 1},
		},
		Output: Output{Backend: "term"},
		Log:    Log{Level: "warn"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Logger().Debug("config: no file, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := Decode(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r into cfg, keeping the values of keys r does not
// set. Unknown keys are an error.
func Decode(r io.Reader, cfg *Config) error {
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return errors.New(sme.String())
		}
		return err
	}
	return cfg.Validate()
}

// Write encodes cfg as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func (c Config) Validate() error {
	var errs []error
	if c.LookupTable.Colors < 1 {
		errs = append(errs, fmt.Errorf("lookup_table.colors must be positive, got %d", c.LookupTable.Colors))
	}
	if r := c.Mapper.ScalarRange; r[0] > r[1] {
		errs = append(errs, fmt.Errorf("mapper.scalar_range is inverted: %v", r))
	}
	if c.Output.Width < 0 || c.Output.Height < 0 {
		errs = append(errs, fmt.Errorf("output size must not be negative, got %dx%d", c.Output.Width, c.Output.Height))
	}
	if c.Output.Backend == "" {
		errs = append(errs, errors.New("output.backend is empty"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level.
func (c Config) Level() (slog.Level, error) {
	return logging.ParseLevel(c.Log.Level)
}

// Apply configures t and m and attaches t to m. With auto_range set and an
// input carrying scalars, the scalar range follows the data.
func (c Config) Apply(m *mapper.PolyMapper, t *lut.LookupTable) {
	lt := c.LookupTable
	t.SetNumberOfColors(lt.Colors)
	t.SetHueRange(lt.Hue[0], lt.Hue[1])
	t.SetSaturationRange(lt.Saturation[0], lt.Saturation[1])
	t.SetValueRange(lt.Value[0], lt.Value[1])
	t.SetAlphaRange(lt.Alpha[0], lt.Alpha[1])
	m.SetLookupTable(t)

	m.SetScalarsVisible(c.Mapper.ScalarsVisible)
	lo, hi := c.Mapper.ScalarRange[0], c.Mapper.ScalarRange[1]
	if c.Mapper.AutoRange {
		if alo, ahi, ok := scalarRange(m.Input()); ok {
			lo, hi = alo, ahi
		}
	}
	m.SetScalarRange(lo, hi)

	m.SetVertsVisibility(c.Visibility.Points)
	m.SetLinesVisibility(c.Visibility.Lines)
	m.SetPolysVisibility(c.Visibility.Polygons)
	m.SetStripsVisibility(c.Visibility.Strips)
}

type ranger interface {
	ScalarRange() (lo, hi float64, ok bool)
}

func scalarRange(ds mapper.Dataset) (lo, hi float64, ok bool) {
	r, isRanger := ds.(ranger)
	if ds == nil || !isRanger {
		return 0, 0, false
	}
	ds.Update()
	return r.ScalarRange()
}
