package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Colors struct {
	Background string `yaml:"background"` // "#RRGGBB" or "RRGGBB"
	Accent     string `yaml:"accent"`
}

type Rate struct {
	Initial int `yaml:"initial"` // ticks per second
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
	Step    int `yaml:"step"`
}

type Metronome struct {
	BPM  int `yaml:"bpm"`
	Min  int `yaml:"min"`
	Max  int `yaml:"max"`
	Step int `yaml:"step"`
}

type Config struct {
	Variant string `yaml:"variant"` // "clock" | "metronome"

	Window    Window    `yaml:"window"`
	Colors    Colors    `yaml:"colors"`
	Rate      Rate      `yaml:"rate"`
	Metronome Metronome `yaml:"metronome"`

	// Stroke and frame padding as fractions of the smaller canvas side.
	StrokeRatio  float64 `yaml:"stroke_ratio"`
	PaddingRatio float64 `yaml:"padding_ratio"`

	// Headless streaming FPS (the metronome window mode uses this too).
	FPS int `yaml:"fps"`
}

// Default returns the configuration used when no config.yaml is present.
func Default() *Config {
	return &Config{
		Variant: "clock",
		Window: Window{
			Title:  "sweepdial",
			Width:  480,
			Height: 480,
		},
		Colors: Colors{
			Background: "#101418",
			Accent:     "#4B5F64",
		},
		Rate:         Rate{Initial: 1, Min: 1, Max: 60, Step: 1},
		Metronome:    Metronome{BPM: 96, Min: 40, Max: 208, Step: 4},
		StrokeRatio:  0.03,
		PaddingRatio: 0.04,
		FPS:          60,
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// ParseColor converts "#RRGGBB" (leading '#' optional) into a packed
// 0x00RRGGBB pixel word.
func ParseColor(s string) (uint32, error) {
	t := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(t) != 6 {
		return 0, fmt.Errorf("config: color %q must be six hex digits", s)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("config: color %q: %w", s, err)
	}
	return uint32(v), nil
}
