// Package config loads the editor configuration from YAML, falling back to
// defaults when no file exists.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"go-pianoroll/grid"
	"go-pianoroll/interaction"
	"go-pianoroll/pitch"
)

// Config is the main configuration structure
type Config struct {
	Grid      grid.Config     `yaml:"grid"`
	Editor    EditorConfig    `yaml:"editor"`
	MIDI      MIDIConfig      `yaml:"midi"`
	Transport TransportConfig `yaml:"transport"`
	UI        UIConfig        `yaml:"ui"`
}

// EditorConfig holds snapping and gesture preferences
type EditorConfig struct {
	Snap             float64 `yaml:"snap"` // beats; 0 disables snapping
	Triplet          bool    `yaml:"triplet"`
	Harmonic         bool    `yaml:"harmonic"`
	KeyRoot          string  `yaml:"key_root"`
	Scale            string  `yaml:"scale"`
	DragThreshold    float64 `yaml:"drag_threshold"`
	Velocity         int     `yaml:"velocity"`
	AutoScrollMargin float64 `yaml:"auto_scroll_margin"`
	AutoScrollSpeed  float64 `yaml:"auto_scroll_speed"`
	FollowPlayhead   bool    `yaml:"follow_playhead"`
}

// MIDIConfig names the preview output and the step-input keyboard
type MIDIConfig struct {
	Port      string `yaml:"port,omitempty"`
	Input     string `yaml:"input,omitempty"`
	Channel   int    `yaml:"channel"`
	PreviewMs int    `yaml:"preview_ms"`
}

// TransportConfig holds playback settings
type TransportConfig struct {
	Tempo int `yaml:"tempo"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `yaml:"palette,omitempty"` // GIMP .gpl file; empty uses the built-in
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	opts := interaction.DefaultOptions()
	return &Config{
		Grid: grid.DefaultConfig(),
		Editor: EditorConfig{
			Snap:             opts.Snap.Resolution,
			KeyRoot:          "C",
			Scale:            pitch.ScaleMajor.String(),
			DragThreshold:    opts.DragThreshold,
			Velocity:         opts.Velocity,
			AutoScrollMargin: opts.AutoScrollMargin,
			AutoScrollSpeed:  opts.AutoScrollSpeed,
			FollowPlayhead:   true,
		},
		MIDI: MIDIConfig{
			Channel:   1,
			PreviewMs: 400,
		},
		Transport: TransportConfig{
			Tempo: 120,
		},
	}
}

// Validate validates every section
func (c *Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if err := c.Editor.Validate(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	if err := c.MIDI.Validate(); err != nil {
		return fmt.Errorf("midi: %w", err)
	}
	if err := c.Transport.Validate(); err != nil {
		return fmt.Errorf("transport: %w", err)
	}
	return nil
}

// Validate validates the editor configuration
func (e *EditorConfig) Validate() error {
	return validation.ValidateStruct(e,
		validation.Field(&e.Snap, validation.Min(0.0)),
		validation.Field(&e.KeyRoot, validation.Required, validation.By(validRoot)),
		validation.Field(&e.Scale, validation.Required, validation.By(validScale)),
		validation.Field(&e.DragThreshold, validation.Min(0.0)),
		validation.Field(&e.Velocity, validation.Required, validation.Min(1), validation.Max(127)),
		validation.Field(&e.AutoScrollMargin, validation.Min(0.0)),
		validation.Field(&e.AutoScrollSpeed, validation.Min(0.0)),
	)
}

func validRoot(v any) error {
	root, _ := v.(string)
	if _, ok := pitch.NameToMidi(root + "4"); !ok {
		return errors.New("not a pitch class")
	}
	return nil
}

func validScale(v any) error {
	name, _ := v.(string)
	if _, ok := pitch.ParseScale(name); !ok {
		return fmt.Errorf("unknown scale, want one of %v", pitch.ScaleNames())
	}
	return nil
}

// Validate validates the MIDI configuration
func (m *MIDIConfig) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Channel, validation.Required, validation.Min(1), validation.Max(16)),
		validation.Field(&m.PreviewMs, validation.Min(0)),
	)
}

// Validate validates the transport configuration
func (t *TransportConfig) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Tempo, validation.Required, validation.Min(20), validation.Max(300)),
	)
}

// Key builds the key used for harmonic transposition
func (e *EditorConfig) Key() (*pitch.Key, error) {
	scale, ok := pitch.ParseScale(e.Scale)
	if !ok {
		return nil, fmt.Errorf("unknown scale %q", e.Scale)
	}
	return pitch.NewKey(e.KeyRoot, scale)
}

// Options converts the editor section into controller options
func (e *EditorConfig) Options() (interaction.Options, error) {
	key, err := e.Key()
	if err != nil {
		return interaction.Options{}, err
	}
	opts := interaction.DefaultOptions()
	opts.Snap = grid.Snap{Resolution: e.Snap, Triplet: e.Triplet}
	opts.Keys = key
	opts.DragThreshold = e.DragThreshold
	opts.Velocity = e.Velocity
	opts.AutoScrollMargin = e.AutoScrollMargin
	opts.AutoScrollSpeed = e.AutoScrollSpeed
	if e.Harmonic {
		opts.Transpose = grid.Harmonic
	}
	return opts, nil
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-pianoroll"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path (ConfigPath when empty), or returns
// defaults if the file does not exist. Fields missing from the file keep
// their defaults; ${VAR} references are expanded from the environment.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path (ConfigPath when empty)
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
