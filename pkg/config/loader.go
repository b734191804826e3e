package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/logging"
	"github.com/arthur-debert/codeplex/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment variables read as configuration
const EnvPrefix = "CODEPLEX_"

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// File is the user configuration file. Empty means paths.ConfigFile().
	// An explicitly named file must exist; the default one may be absent.
	File string
	// Overrides are applied last, keyed by dotted path ("shortcuts.enabled")
	Overrides map[string]interface{}
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load defaults")
	}

	// 2. User file
	path := opts.File
	explicit := path != ""
	if !explicit {
		path = paths.ConfigFile()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfig, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded user config")
	} else if explicit {
		return nil, errors.FromFS(err, "config file", path)
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "failed to load env vars")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfig, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps CODEPLEX_LAYOUT__RESOURCE_KEY to layout.resource_key
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}
