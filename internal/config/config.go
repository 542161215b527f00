// Package config reads optional run settings from a config file and
// PROMOSCAN_* environment variables. Command-line flags always win: callers
// only copy a value in when the matching flag was not given explicitly.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: min-score → PROMOSCAN_MIN_SCORE.
const EnvPrefix = "PROMOSCAN"

// Source is a loaded set of settings keyed by long flag name.
type Source struct {
	v *viper.Viper
}

// Load reads path (TOML, YAML or JSON by extension) if non-empty and binds
// the environment. A missing or malformed file is an error.
func Load(path string) (*Source, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	return &Source{v: v}, nil
}

// File is the config file in use, or "".
func (s *Source) File() string { return s.v.ConfigFileUsed() }

// Binding connects one setting to its destination.
type Binding struct {
	Key string
	Dst any // *string, *[]string, *int, *float64 or *bool
}

// Apply copies every bound setting that is present in the source and whose
// key is not in explicit. It returns the keys it applied.
func (s *Source) Apply(bindings []Binding, explicit map[string]bool) ([]string, error) {
	var applied []string
	for _, b := range bindings {
		if explicit[b.Key] || !s.v.IsSet(b.Key) {
			continue
		}
		switch dst := b.Dst.(type) {
		case *string:
			*dst = s.v.GetString(b.Key)
		case *[]string:
			*dst = s.v.GetStringSlice(b.Key)
		case *int:
			*dst = s.v.GetInt(b.Key)
		case *float64:
			*dst = s.v.GetFloat64(b.Key)
		case *bool:
			*dst = s.v.GetBool(b.Key)
		default:
			return applied, fmt.Errorf("config key %q: unsupported destination %T", b.Key, b.Dst)
		}
		applied = append(applied, b.Key)
	}
	return applied, nil
}
