// Package config loads diagram settings from TOML files.
//
// A config file may set any subset of the tables below; unset keys keep the
// defaults returned by [Default].
//
//	style = "lots"
//
//	[margins]
//	top = 10
//	right = 80
//	bottom = 10
//	left = 80
//
//	[zoom]
//	scale_x_min = 0.5
//	scale_x_max = 4
//	scale_y_min = 0.5
//	scale_y_max = 4
//
//	[initial]          # defaults to scale 1 and a translation by the margins
//	scale_x = 1
//	translate_x = 80
//
//	[minimap]
//	enabled = true
//	scale = 0.25
//	inset = 60
//
//	[interaction]
//	leaf_click = "noop"      # or "notify"
//	double_click_ms = 400
package config

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/arbor/pkg/diagram"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/viewport"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// Config is the full set of user-tunable settings.
type Config struct {
	Style       string      `toml:"style"`
	Margins     Margins     `toml:"margins"`
	Zoom        Zoom        `toml:"zoom"`
	Initial     Initial     `toml:"initial"`
	Minimap     Minimap     `toml:"minimap"`
	Interaction Interaction `toml:"interaction"`
}

// Margins is the [margins] table.
type Margins struct {
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
}

// Zoom is the [zoom] table: scale bounds per axis.
type Zoom struct {
	ScaleXMin float64 `toml:"scale_x_min"`
	ScaleXMax float64 `toml:"scale_x_max"`
	ScaleYMin float64 `toml:"scale_y_min"`
	ScaleYMax float64 `toml:"scale_y_max"`
}

// Initial is the transform restored by reset. Nil translations follow the
// left and top margins.
type Initial struct {
	ScaleX     float64  `toml:"scale_x"`
	ScaleY     float64  `toml:"scale_y"`
	TranslateX *float64 `toml:"translate_x"`
	TranslateY *float64 `toml:"translate_y"`
}

// Minimap is the [minimap] table. Inset is the distance from the
// bottom-right corner; 0 is flush.
type Minimap struct {
	Enabled bool    `toml:"enabled"`
	Scale   float64 `toml:"scale"`
	Inset   float64 `toml:"inset"`
}

// Interaction is the [interaction] table.
type Interaction struct {
	LeafClick     string `toml:"leaf_click"`
	DoubleClickMS int    `toml:"double_click_ms"`
}

// Default returns the built-in settings.
func Default() Config {
	m := diagram.DefaultMargins()
	return Config{
		Style: "lots",
		Margins: Margins{
			Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left,
		},
		Zoom: Zoom{
			ScaleXMin: viewport.DefaultScaleMin, ScaleXMax: viewport.DefaultScaleMax,
			ScaleYMin: viewport.DefaultScaleMin, ScaleYMax: viewport.DefaultScaleMax,
		},
		Initial: Initial{ScaleX: 1, ScaleY: 1},
		Minimap: Minimap{
			Enabled: true,
			Scale:   diagram.DefaultMinimapScale,
			Inset:   diagram.DefaultMinimapInset,
		},
		Interaction: Interaction{
			LeafClick:     diagram.LeafNoop.String(),
			DoubleClickMS: 400,
		},
	}
}

// Load reads and validates a config file on top of the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s not found", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open config %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return cfg, nil
}

// LoadOptional loads path when it exists and returns the defaults otherwise.
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Decode parses TOML from r on top of the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}

// Validate checks ranges that would otherwise produce a broken diagram.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"margins.top": c.Margins.Top, "margins.right": c.Margins.Right,
		"margins.bottom": c.Margins.Bottom, "margins.left": c.Margins.Left,
	} {
		if v < 0 || !finite(v) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be a non-negative number, got %v", name, v)
		}
	}
	if err := validateRange("zoom.scale_x", c.Zoom.ScaleXMin, c.Zoom.ScaleXMax); err != nil {
		return err
	}
	if err := validateRange("zoom.scale_y", c.Zoom.ScaleYMin, c.Zoom.ScaleYMax); err != nil {
		return err
	}
	if c.Initial.ScaleX <= 0 || c.Initial.ScaleY <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "initial scale must be positive, got %v/%v", c.Initial.ScaleX, c.Initial.ScaleY)
	}
	if c.Minimap.Scale <= 0 || c.Minimap.Scale > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "minimap.scale must be in (0, 1], got %v", c.Minimap.Scale)
	}
	if c.Minimap.Inset < 0 || !finite(c.Minimap.Inset) {
		return errors.New(errors.ErrCodeInvalidConfig, "minimap.inset must be a non-negative number, got %v", c.Minimap.Inset)
	}
	if _, ok := diagram.ParseLeafClick(c.Interaction.LeafClick); !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "interaction.leaf_click must be \"noop\" or \"notify\", got %q", c.Interaction.LeafClick)
	}
	if c.Interaction.DoubleClickMS <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "interaction.double_click_ms must be positive, got %d", c.Interaction.DoubleClickMS)
	}
	return nil
}

func validateRange(name string, lo, hi float64) error {
	if lo <= 0 || !finite(lo) || !finite(hi) {
		return errors.New(errors.ErrCodeInvalidConfig, "%s_min must be positive, got %v", name, lo)
	}
	if hi < lo {
		return errors.New(errors.ErrCodeInvalidConfig, "%s_max (%v) is below %s_min (%v)", name, hi, name, lo)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Bounds returns the zoom limits.
func (c Config) Bounds() viewport.Bounds {
	return viewport.Bounds{
		ScaleXMin: c.Zoom.ScaleXMin, ScaleXMax: c.Zoom.ScaleXMax,
		ScaleYMin: c.Zoom.ScaleYMin, ScaleYMax: c.Zoom.ScaleYMax,
	}
}

// InitialTransform resolves the reset transform.
func (c Config) InitialTransform() viewport.Matrix {
	tx, ty := c.Margins.Left, c.Margins.Top
	if c.Initial.TranslateX != nil {
		tx = *c.Initial.TranslateX
	}
	if c.Initial.TranslateY != nil {
		ty = *c.Initial.TranslateY
	}
	return viewport.Matrix{ScaleX: c.Initial.ScaleX, ScaleY: c.Initial.ScaleY, TranslateX: tx, TranslateY: ty}
}

// Diagram converts the settings into a diagram configuration.
func (c Config) Diagram() diagram.Config {
	d := diagram.DefaultConfig()
	d.Margins = diagram.Margins{
		Top: c.Margins.Top, Right: c.Margins.Right,
		Bottom: c.Margins.Bottom, Left: c.Margins.Left,
	}
	d.Bounds = c.Bounds()
	initial := c.InitialTransform()
	d.Initial = &initial
	d.MinimapScale = c.Minimap.Scale
	d.MinimapInset = c.Minimap.Inset
	d.LeafClick, _ = diagram.ParseLeafClick(c.Interaction.LeafClick)
	return d
}

// DoubleClickWindow is the longest gap between two presses that still
// counts as a double click.
func (c Config) DoubleClickWindow() time.Duration {
	return time.Duration(c.Interaction.DoubleClickMS) * time.Millisecond
}

// DefaultPath returns $XDG_CONFIG_HOME/arbor/config.toml, falling back to the
// platform config directory.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "arbor", FileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "arbor", FileName), nil
}
