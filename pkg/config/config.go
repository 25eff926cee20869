// Package config loads floorplan settings from YAML. Every field has a
// default, so an absent file or an empty document yields a usable Config.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when Load gets no path.
const EnvPath = "FLOORPLAN_CONFIG"

// Kernel backends accepted by Geometry.Kernel.
const (
	KernelPoly = "poly"
	KernelSdfx = "sdfx"
)

// Config is the root configuration document.
type Config struct {
	Walls    WallConfig     `yaml:"walls"`
	Floor    FloorConfig    `yaml:"floor"`
	Render   RenderConfig   `yaml:"render"`
	Geometry GeometryConfig `yaml:"geometry"`
	Window   WindowConfig   `yaml:"window"`
}

// WallConfig sizes every wall box.
type WallConfig struct {
	Height    float64 `yaml:"height"`
	Thickness float64 `yaml:"thickness"`
	Color     string  `yaml:"color"`
}

// FloorConfig controls the floor material and its texture density.
type FloorConfig struct {
	// TexelRepeatUnit is the physical size covered by one texture tile.
	TexelRepeatUnit float64 `yaml:"texel_repeat_unit"`
	Texture         string  `yaml:"texture"`
	Color           string  `yaml:"color"`
}

// RenderConfig holds render-only offsets that keep coplanar surfaces from
// z-fighting. They never change logical geometry.
type RenderConfig struct {
	WallJitter  float64 `yaml:"wall_jitter"`
	FloorJitter float64 `yaml:"floor_jitter"`
	Seed        int64   `yaml:"seed"` // 0 seeds from the clock
	GridSize    float64 `yaml:"grid_size"`
	GridDivs    int     `yaml:"grid_divisions"`
}

// GeometryConfig selects the kernel and endpoint matching.
type GeometryConfig struct {
	// PointTolerance is the grid endpoints are snapped to before matching.
	// Zero means exact coordinate equality.
	PointTolerance float64 `yaml:"point_tolerance"`
	Kernel         string  `yaml:"kernel"`
	MeshCells      int     `yaml:"mesh_cells"`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Walls: WallConfig{
			Height:    3,
			Thickness: 0.2,
			Color:     "#D8D2C4",
		},
		Floor: FloorConfig{
			TexelRepeatUnit: 5,
			Texture:         "textures/floor.jpg",
			Color:           "#FFFFFF",
		},
		Render: RenderConfig{
			WallJitter:  0.001,
			FloorJitter: 0.1,
			GridSize:    50,
			GridDivs:    50,
		},
		Geometry: GeometryConfig{
			Kernel:    KernelPoly,
			MeshCells: 200,
		},
		Window: WindowConfig{
			Title:  "Floorplan",
			Width:  1024,
			Height: 768,
		},
	}
}

// Load reads a YAML file on top of the defaults. An empty path falls back
// to $FLOORPLAN_CONFIG; if that is unset too, Load returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document on top of the defaults and validates it.
// Keys absent from the document keep their default; keys present, even
// with a zero value, replace it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no geometry can be built from.
func (c *Config) Validate() error {
	var errs []error
	if c.Walls.Height <= 0 {
		errs = append(errs, fmt.Errorf("walls.height must be positive, got %g", c.Walls.Height))
	}
	if c.Walls.Thickness <= 0 {
		errs = append(errs, fmt.Errorf("walls.thickness must be positive, got %g", c.Walls.Thickness))
	}
	if c.Floor.TexelRepeatUnit <= 0 {
		errs = append(errs, fmt.Errorf("floor.texel_repeat_unit must be positive, got %g", c.Floor.TexelRepeatUnit))
	}
	if c.Render.WallJitter < 0 || c.Render.FloorJitter < 0 {
		errs = append(errs, errors.New("render jitter must not be negative"))
	}
	if c.Geometry.PointTolerance < 0 {
		errs = append(errs, fmt.Errorf("geometry.point_tolerance must not be negative, got %g", c.Geometry.PointTolerance))
	}
	switch c.Geometry.Kernel {
	case KernelPoly, KernelSdfx:
	default:
		errs = append(errs, fmt.Errorf("geometry.kernel %q unknown, expected %q or %q", c.Geometry.Kernel, KernelPoly, KernelSdfx))
	}
	if c.Geometry.MeshCells < 0 {
		errs = append(errs, fmt.Errorf("geometry.mesh_cells must not be negative, got %d", c.Geometry.MeshCells))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
