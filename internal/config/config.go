// Package config loads the generator configuration from defaults, an
// optional dlf-generator.toml, DLFGEN_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"dlf-generator/dlf"
	"dlf-generator/internal/gen"
	"dlf-generator/internal/header"
	"dlf-generator/internal/manifest"
	"dlf-generator/internal/materialize"
)

const (
	// FileName is the config file looked up in the working directory.
	FileName = "dlf-generator.toml"
	// EnvPrefix prefixes environment overrides, e.g. DLFGEN_OUT.
	EnvPrefix = "DLFGEN"
)

// Keys shared by viper, the config file and the CLI flags.
const (
	KeyManifest    = "manifest"
	KeyRoot        = "root"
	KeyOut         = "out"
	KeyImportPath  = "import_path"
	KeyPackageName = "package_name"
	KeyPolicy      = "policy"
	KeyCompression = "compression"
	KeyEmbed       = "embed"
	KeyKeepText    = "keep_text"
	KeyMarker      = "marker"
	KeySentinel    = "sentinel"
	KeyVersion     = "version"
	KeyValidate    = "validate"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the generator configuration.
type Config struct {
	// Manifest is the path of filters.json.
	Manifest string `mapstructure:"manifest" toml:"manifest"`
	// Root is the directory filter files are relative to. Empty means the
	// parent of the manifest directory.
	Root string `mapstructure:"root" toml:"root"`
	// Out is the output directory of the generated package.
	Out string `mapstructure:"out" toml:"out"`
	// ImportPath of Out. Empty derives it from the enclosing go.mod.
	ImportPath  string `mapstructure:"import_path"  toml:"import_path"`
	PackageName string `mapstructure:"package_name" toml:"package_name"`
	// Policy is "text" or "binary".
	Policy string `mapstructure:"policy" toml:"policy"`
	// Compression is "none", "lz4" or "zstd".
	Compression string `mapstructure:"compression" toml:"compression"`
	Embed       bool   `mapstructure:"embed"       toml:"embed"`
	KeepText    bool   `mapstructure:"keep_text"   toml:"keep_text"`
	Marker      string `mapstructure:"marker"      toml:"marker"`
	Sentinel    string `mapstructure:"sentinel"    toml:"sentinel"`
	Version     string `mapstructure:"version"     toml:"version"`
	// Validate runs manifest validation before generating.
	Validate bool `mapstructure:"validate" toml:"validate"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Manifest:    filepath.Join("lib", manifest.DefaultFileName),
		Out:         "generated",
		PackageName: "libdlf",
		Policy:      dlf.FormatText.String(),
		Compression: dlf.CompressionZSTD.String(),
		Embed:       true,
		Marker:      header.DefaultMarker,
		Sentinel:    header.DefaultSentinel,
		Validate:    true,
	}
}

// New returns a viper instance with defaults and environment overrides set.
func New() *viper.Viper {
	v := viper.New()

	d := DefaultConfig()
	v.SetDefault(KeyManifest, d.Manifest)
	v.SetDefault(KeyRoot, d.Root)
	v.SetDefault(KeyOut, d.Out)
	v.SetDefault(KeyImportPath, d.ImportPath)
	v.SetDefault(KeyPackageName, d.PackageName)
	v.SetDefault(KeyPolicy, d.Policy)
	v.SetDefault(KeyCompression, d.Compression)
	v.SetDefault(KeyEmbed, d.Embed)
	v.SetDefault(KeyKeepText, d.KeepText)
	v.SetDefault(KeyMarker, d.Marker)
	v.SetDefault(KeySentinel, d.Sentinel)
	v.SetDefault(KeyVersion, d.Version)
	v.SetDefault(KeyValidate, d.Validate)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	return v
}

// Load reads the config file into v and decodes the result. An explicit
// path must exist; otherwise FileName in the working directory is used when
// present. It returns the file that was read, if any.
func Load(v *viper.Viper, path string) (*Config, string, error) {
	if path == "" {
		if _, err := os.Stat(FileName); err == nil {
			path = FileName
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")

		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Check(); err != nil {
		return nil, "", err
	}

	return &cfg, path, nil
}

// Check validates the enumerated settings.
func (c *Config) Check() error {
	if c.Manifest == "" {
		return fmt.Errorf("%w: manifest path is empty", ErrInvalidConfig)
	}

	if _, err := dlf.ParseFormat(c.Policy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if _, err := dlf.ParseCompression(c.Compression); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Layout locates the manifest's tables.
func (c *Config) Layout() manifest.Layout {
	return manifest.NewLayout(c.Manifest, c.Root)
}

// Generator converts the config into a generator configuration. An empty
// import path is resolved from the go.mod enclosing Out.
func (c *Config) Generator(logger *log.Logger) (gen.GeneratorConfig, error) {
	policy, err := dlf.ParseFormat(c.Policy)
	if err != nil {
		return gen.GeneratorConfig{}, err
	}

	compression, err := dlf.ParseCompression(c.Compression)
	if err != nil {
		return gen.GeneratorConfig{}, err
	}

	importPath := c.ImportPath
	if importPath == "" {
		importPath, err = gen.ResolveImportPath(c.Out)
		if err != nil {
			return gen.GeneratorConfig{}, fmt.Errorf("resolving import path: %w", err)
		}
	}

	cfg := gen.DefaultGeneratorConfig()
	cfg.PackageName = c.PackageName
	cfg.ImportPath = importPath
	cfg.OutputDir = c.Out
	cfg.Embed = c.Embed
	cfg.Version = c.Version
	cfg.Materializer = materialize.Materializer{
		Policy:      policy,
		Compression: compression,
		KeepText:    c.KeepText,
		Logger:      logger,
	}
	cfg.Header = header.Options{Marker: c.Marker, Sentinel: c.Sentinel}
	cfg.Logger = logger

	return cfg, nil
}

// Marshal renders the config as TOML.
func Marshal(c Config) ([]byte, error) {
	return toml.Marshal(c)
}

// Write stores c at path. An existing file is only replaced when force is
// set.
func Write(path string, c Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
