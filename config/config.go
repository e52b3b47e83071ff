// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the optional YAML configuration shared by the
// phylomine tools. Values in a configuration file provide defaults for
// command line flags that were not set explicitly.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds tool settings.
type Config struct {
	// Genomes is the directory holding genome sequence files.
	Genomes string `yaml:"genomes"`
	// Database is the path of the taxonomy SQLite database.
	Database string `yaml:"database"`
	// OutDir is the directory output files are written to.
	OutDir string `yaml:"out_dir"`

	Hits struct {
		MinLength int     `yaml:"min_length"`
		MinScore  float64 `yaml:"min_score"`
		Width     int     `yaml:"width"`

		// MinComplexity is the minimum Wootton-Federhen complexity
		// of an extracted hit. Zero disables the filter.
		MinComplexity float64 `yaml:"min_complexity"`
	} `yaml:"hits"`

	NHMMER struct {
		Path   string  `yaml:"path"`
		CPU    int     `yaml:"cpu"`
		EValue float64 `yaml:"evalue"`
	} `yaml:"nhmmer"`

	// Threshold is the maximum AliGROOVE score retained as a low value.
	Threshold float64 `yaml:"threshold"`
}

// Default returns the default configuration.
func Default() *Config {
	cfg := &Config{Threshold: 0.2}
	cfg.Hits.MinLength = 100
	cfg.Hits.MinScore = 100
	cfg.Hits.Width = 60
	return cfg
}

// Read returns the configuration in the YAML file at path. Settings
// absent from the file retain their default values.
func Read(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	err = dec.Decode(cfg)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}
	return cfg, nil
}

// Explicit returns the set of flag names in fs that were set on the
// command line.
func Explicit(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}
