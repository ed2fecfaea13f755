// Package config loads the conceptmap configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/conceptmap/config.toml
// (~/.config/conceptmap/config.toml). A missing file yields [Default].
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/layout"
	"github.com/matzehuels/conceptmap/pkg/store"
)

// AppName names the config and data directories.
const AppName = "conceptmap"

// Config is the on-disk configuration.
type Config struct {
	Namespace     string `toml:"namespace" validate:"required"`
	StartExpanded bool   `toml:"start_expanded"`
	View          string `toml:"view" validate:"omitempty,view"`

	Store    StoreConfig    `toml:"store"`
	Viewport ViewportConfig `toml:"viewport"`
	Server   ServerConfig   `toml:"server"`
}

// StoreConfig selects the persistence backend. See store.Open for DSNs.
type StoreConfig struct {
	DSN string `toml:"dsn" validate:"required"`
}

// ViewportConfig is the default layout size.
type ViewportConfig struct {
	Width  float64 `toml:"width" validate:"gt=0,lte=100000"`
	Height float64 `toml:"height" validate:"gt=0,lte=100000"`
}

// ServerConfig configures `conceptmap serve`.
type ServerConfig struct {
	Addr        string   `toml:"addr" validate:"required,hostname_port"`
	CORSOrigins []string `toml:"cors_origins" validate:"dive,required"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Namespace:     store.DefaultNamespace,
		StartExpanded: false,
		View:          string(layout.DefaultView),
		Store:         StoreConfig{DSN: "file"},
		Viewport:      ViewportConfig{Width: 1200, Height: 720},
		Server:        ServerConfig{Addr: ":8080", CORSOrigins: []string{"*"}},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DataDir returns the directory for file and sqlite stores.
func DataDir() (string, error) {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return filepath.Join(v, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", AppName), nil
}

// DefaultPath returns the config file path used when --config is not given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads path over [Default]. An empty path means [DefaultPath]; a
// missing default file is not an error, but a missing explicit one is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// =============================================================================
// Validation
// =============================================================================

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("view", func(fl validator.FieldLevel) bool {
		_, err := layout.ParseView(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks field constraints.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(errors.ErrCodeInvalidConfig, "%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Namespace())
	field = strings.TrimPrefix(field, "config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "view":
		return fmt.Sprintf("%s must be one of: %s", field, layout.ViewNames())
	case "gt", "lte":
		return fmt.Sprintf("%s is out of range", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
