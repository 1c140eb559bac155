package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wavelab/internal/field"
	"github.com/san-kum/wavelab/internal/scene"
)

type Config struct {
	Style   string         `yaml:"style"`
	Mode    string         `yaml:"mode"`
	Speed   float64        `yaml:"speed"`
	Seed    int64          `yaml:"seed"`
	Sources []SourceConfig `yaml:"sources"`
}

type SourceConfig struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Phase     float64 `yaml:"phase"`
	Hidden    bool    `yaml:"hidden"`
}

func DefaultConfig() *Config {
	return &Config{
		Style: "water",
		Mode:  "elongation",
		Speed: scene.DefaultSpeed,
		Sources: []SourceConfig{
			{Amplitude: scene.DefaultAmplitude, Frequency: scene.DefaultFrequency},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Sources = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultConfig().Sources
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Scene builds the runtime state described by the config. Sources beyond the
// arena capacity are dropped silently, matching the UI's add behavior.
func (c *Config) Scene() *scene.Scene {
	var s *scene.Scene
	if c.Seed != 0 {
		s = scene.NewSeeded(c.Seed)
	} else {
		s = scene.New()
	}
	s.Clear()
	s.Style = scene.ParseStyle(c.Style)
	s.Mode = field.ParseMode(c.Mode)
	if c.Speed > 0 {
		s.Speed = c.Speed
	}
	for _, sc := range c.Sources {
		src, ok := s.Add()
		if !ok {
			break
		}
		src.X, src.Y = sc.X, sc.Y
		src.Amplitude = sc.Amplitude
		src.Frequency = sc.Frequency
		src.Phase = sc.Phase
		src.Visible = !sc.Hidden
	}
	return s
}
