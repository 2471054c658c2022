// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config implements the glossutil configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-glossary"
)

// Config is the glossutil configuration.
type Config struct {
	// Data is the path to the canonical data file.
	Data string `yaml:"data"`

	// Source is the path to the Markdown source document.
	Source string `yaml:"source"`

	// OutputDir is the directory rendered files are written to.
	OutputDir string `yaml:"output_dir"`

	// Formats are the output formats to render or validate.
	Formats []string `yaml:"formats"`

	// FootnoteCap is the largest footnote number read from the source
	// document. Zero disables the cap.
	FootnoteCap int `yaml:"footnote_cap"`

	// NotesMarker is the line prefix that starts the footnote definitions
	// in the source document.
	NotesMarker string `yaml:"notes_marker"`

	// Title is the title of rendered documents.
	Title string `yaml:"title"`

	// Browser is the browser binary used to render PDF files.
	Browser string `yaml:"browser"`

	// NoSandbox disables the browser sandbox.
	NoSandbox bool `yaml:"no_sandbox"`

	// LogFile is an optional path that receives JSON logs.
	LogFile string `yaml:"log_file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Data:        "data.yaml",
		Source:      "README.md",
		OutputDir:   "pkg",
		Formats:     []string{"all"},
		FootnoteCap: 6,
		NotesMarker: "# 注释",
		Title:       "计算机专业术语对照",
	}
}

// Parse reads configuration from r. Keys missing from r keep their default
// values. Unknown keys are an error.
func Parse(r io.Reader) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	c := Default()
	if len(bytes.TrimSpace(b)) == 0 {
		return c, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if c.FootnoteCap < 0 {
		return nil, fmt.Errorf("parsing config: negative footnote_cap %d", c.FootnoteCap)
	}
	return c, nil
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: config file %q", glossary.ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return c, nil
}

// Find loads the configuration file at path if it is not empty. Otherwise
// the first existing file in Locations is loaded. The default configuration
// is returned if no file is found. The returned path is empty in that case.
func Find(path string) (*Config, string, error) {
	if path != "" {
		c, err := Load(path)
		return c, path, err
	}

	for _, loc := range Locations() {
		fi, err := os.Stat(loc)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		c, err := Load(loc)
		return c, loc, err
	}
	return Default(), "", nil
}
