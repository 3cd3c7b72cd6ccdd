package cli

import (
	stderrors "errors"
	"io/fs"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphslick/pkg/errors"
	"github.com/matzehuels/graphslick/pkg/pipeline"
)

// Config holds persistent defaults read from config.toml:
//
//	[display]
//	show_ids = true
//	ids_only = false
//
//	[render]
//	mode = "combined"
//	formats = ["svg"]
//	cache = true
//
// Command-line flags override every value.
type Config struct {
	Display DisplayConfig `toml:"display"`
	Render  RenderConfig  `toml:"render"`
}

// DisplayConfig controls node labels.
type DisplayConfig struct {
	ShowIDs bool `toml:"show_ids"`
	IDsOnly bool `toml:"ids_only"`
}

// RenderConfig controls the render command.
type RenderConfig struct {
	Mode    string   `toml:"mode"`
	Formats []string `toml:"formats"`
	Cache   bool     `toml:"cache"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Mode:    pipeline.DefaultMode,
			Formats: []string{pipeline.FormatSVG},
			Cache:   true,
		},
	}
}

// LoadConfig reads the TOML file at path over the defaults. A missing file
// yields the defaults unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if stderrors.Is(err, fs.ErrNotExist) && !required {
		return DefaultConfig(), nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks mode and formats.
func (c Config) Validate() error {
	if err := errors.ValidateMode(c.Render.Mode); err != nil {
		return err
	}
	return pipeline.ValidateFormats(c.Render.Formats)
}
