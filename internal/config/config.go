// internal/config/config.go

// Package config loads optional YAML defaults for gtfetch. Precedence
// is flags over file over built-ins; the file never overrides a flag
// the user set explicitly.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Field mirrors gene.Field for YAML decoding.
type Field struct {
	Column string `yaml:"column"`
	Key    string `yaml:"key"`
}

// File is the on-disk config shape.
type File struct {
	BaseURL     string  `yaml:"base_url"`
	StagingDir  string  `yaml:"staging_dir"`
	OutDir      string  `yaml:"out_dir"`
	FeatureType string  `yaml:"feature_type"`
	Format      string  `yaml:"format"`
	Fields      []Field `yaml:"fields"`
}

// Load reads and decodes a YAML config file. Unknown keys are rejected
// so a typo cannot silently fall back to a built-in default.
func Load(path string) (File, error) {
	var f File
	b, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return f, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}
