package layout

import (
	"strings"

	"github.com/spf13/viper"
)

// LoadProfile reads a geometry profile from a YAML/TOML/JSON file.
// Missing keys fall back to the Default profile, so a profile only needs
// to override the dimensions it cares about. The loaded geometry is
// validated before being returned.
func LoadProfile(path string) (Geometry, error) {
	g := Default()
	if strings.TrimSpace(path) == "" {
		return g, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Geometry{}, err
	}
	if err := v.Unmarshal(&g); err != nil {
		return Geometry{}, err
	}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}
