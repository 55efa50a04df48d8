// Package config loads run settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/lwch/wackypixels"
	"github.com/lwch/wackypixels/encoding/compress"
	"gopkg.in/yaml.v3"
)

var errEmptyDir = errors.New("config: empty directory")

// Config run settings, zero fields of a loaded file keep their defaults
type Config struct {
	Pipeline          []string `yaml:"pipeline"`
	SaveIntermediates bool     `yaml:"save_intermediates"`
	OutputDir         string   `yaml:"output_dir"`
	DecodeDir         string   `yaml:"decode_dir"`
	OutputFile        string   `yaml:"output_file"`
	GzipLevel         int      `yaml:"gzip_level"`
}

// Default returns the built in settings
func Default() *Config {
	var names []string
	for _, s := range wackypixels.DefaultStages() {
		names = append(names, s.String())
	}
	return &Config{
		Pipeline:          names,
		SaveIntermediates: true,
		OutputDir:         "outputs",
		DecodeDir:         "decrypted",
		OutputFile:        wackypixels.DefaultDecodedFile,
		GzipLevel:         compress.DefaultLevel,
	}
}

// Load overlay the YAML file at path onto Default
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse overlay YAML data onto Default
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate check every stage name, directory and the gzip level
func (cfg *Config) Validate() error {
	if _, err := cfg.Stages(); err != nil {
		return err
	}
	if err := compress.CheckLevel(cfg.GzipLevel); err != nil {
		return fmt.Errorf("gzip_level: %w", err)
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("%w: output_dir", errEmptyDir)
	}
	if cfg.DecodeDir == "" {
		return fmt.Errorf("%w: decode_dir", errEmptyDir)
	}
	return nil
}

// Stages parsed pipeline
func (cfg *Config) Stages() ([]wackypixels.Stage, error) {
	return wackypixels.ParseStages(cfg.Pipeline)
}

// Build create the configured pipeline
func (cfg *Config) Build() (*wackypixels.Pipeline, error) {
	stages, err := cfg.Stages()
	if err != nil {
		return nil, err
	}
	if err := compress.CheckLevel(cfg.GzipLevel); err != nil {
		return nil, fmt.Errorf("gzip_level: %w", err)
	}
	p := wackypixels.New().
		SetSaveIntermediates(cfg.SaveIntermediates).
		SetGzipLevel(cfg.GzipLevel)
	for _, s := range stages {
		p.Add(s)
	}
	return p, nil
}
