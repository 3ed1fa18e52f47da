// Package config loads the weightdd configuration file.
//
// Configuration is a small TOML file, by default "weightdd.toml" in the
// working directory:
//
//	eps = 1e-7
//	format = "svg"
//	cache_dir = "/home/user/.cache/weightdd"
//	no_cache = false
//
// Every field is optional; missing fields keep their defaults. Command
// flags override file values, which override defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ddkit/weightdd/pkg/dd"
	"github.com/ddkit/weightdd/pkg/errors"
	"github.com/ddkit/weightdd/pkg/render"
)

// DefaultFile is the config file name searched in the working directory
// when no explicit path is given.
const DefaultFile = "weightdd.toml"

// Config holds the tool-wide settings.
type Config struct {
	// Eps is the tolerance for weight equality in the node store.
	Eps float64 `toml:"eps"`

	// Format is the default render output format ("svg" or "dot").
	Format string `toml:"format"`

	// CacheDir is the directory for rendered-artifact caching.
	CacheDir string `toml:"cache_dir"`

	// NoCache disables artifact caching entirely.
	NoCache bool `toml:"no_cache"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Eps:      dd.DefaultEps,
		Format:   render.FormatSVG,
		CacheDir: defaultCacheDir(),
	}
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".weightdd-cache"
	}
	return filepath.Join(base, "weightdd")
}

// Load reads the configuration at path over the defaults.
//
// An empty path means "use [DefaultFile] if present": a missing default
// file is not an error and yields [Default]. An explicit path that does
// not exist is an [errors.ErrCodeFileNotFound] error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Eps <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "eps must be positive, got %v", c.Eps)
	}
	if !render.ValidFormat(c.Format) {
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported format %q", c.Format)
	}
	return nil
}
