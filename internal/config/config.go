// Package config loads command line tool settings from the environment and
// an optional YAML watch file.
package config

import (
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/cactorium/nix/inotify"
)

// EnvPrefix namespaces the environment variables of nixwatch, e.g.
// NIXWATCH_MASK.
const EnvPrefix = "NIXWATCH"

// DefaultMask is used for paths given without an explicit event list.
const DefaultMask = "create,delete,modify,move"

// Config holds nixwatch settings. Flags override these values.
type Config struct {
	Mask     string `envconfig:"MASK" default:"create,delete,modify,move"`
	Buffer   int    `envconfig:"BUFFER" default:"4352"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	File     string `envconfig:"CONFIG"`
}

// Load reads the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return &cfg, nil
}

// Default returns the configuration used when the environment is empty.
func Default() *Config {
	return &Config{
		Mask:     DefaultMask,
		Buffer:   inotify.DefaultBufferSize,
		LogLevel: "info",
	}
}

// Validate checks values that would only fail later at the kernel.
func (c *Config) Validate() error {
	if c.Buffer < inotify.MinBufferSize {
		return errors.Errorf("buffer must be at least %d bytes, got %d", inotify.MinBufferSize, c.Buffer)
	}
	if _, err := inotify.ParseMask(c.Mask); err != nil {
		return errors.Wrap(err, "mask")
	}
	return nil
}

// WatchFile is the YAML form of a watch list:
//
//	watches:
//	  - path: /var/log
//	    events: [create, modify]
//	  - path: /etc/hosts
type WatchFile struct {
	Watches []WatchEntry `yaml:"watches"`
}

// WatchEntry is one path and its events. No events means the default mask.
type WatchEntry struct {
	Path   string   `yaml:"path"`
	Events []string `yaml:"events,omitempty"`
}

// Mask resolves the entry's events, falling back to def.
func (w WatchEntry) Mask(def inotify.EventMask) (inotify.EventMask, error) {
	if len(w.Events) == 0 {
		return def, nil
	}
	m, err := inotify.ParseMask(strings.Join(w.Events, ","))
	if err != nil {
		return 0, errors.Wrapf(err, "watch %s", w.Path)
	}
	return m, nil
}

// ParseWatchFile decodes a watch file. Unknown keys are rejected.
func ParseWatchFile(data []byte) (*WatchFile, error) {
	var wf WatchFile
	if err := yaml.UnmarshalStrict(data, &wf); err != nil {
		return nil, errors.Wrap(err, "invalid watch file")
	}
	for i, w := range wf.Watches {
		if w.Path == "" {
			return nil, errors.Errorf("watch %d has no path", i)
		}
	}
	return &wf, nil
}

// LoadWatchFile reads and decodes path.
func LoadWatchFile(path string) (*WatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}
	return ParseWatchFile(data)
}
