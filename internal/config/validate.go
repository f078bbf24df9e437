package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var outputFormats = []string{"markdown", "html", "pretty", "json"}

// CheckConfigValidity reports every problem in v as a single joined error.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	format := strings.ToLower(strings.TrimSpace(v.GetString("output.format")))
	if !contains(outputFormats, format) {
		errs = append(errs, fmt.Errorf("output.format must be one of %s, got %q", strings.Join(outputFormats, ", "), format))
	}
	if v.GetInt("pretty.width") <= 0 {
		errs = append(errs, errors.New("pretty.width must be greater than 0"))
	}
	if strings.TrimSpace(v.GetString("pretty.style")) == "" {
		errs = append(errs, errors.New("pretty.style is required"))
	}
	if v.GetInt("archive.page_size") <= 0 {
		errs = append(errs, errors.New("archive.page_size must be greater than 0"))
	}
	if v.GetInt("convert.workers") <= 0 {
		errs = append(errs, errors.New("convert.workers must be greater than 0"))
	}
	if lvl := strings.TrimSpace(v.GetString("log.level")); lvl != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(lvl)); err != nil {
			errs = append(errs, fmt.Errorf("log.level %q is not a known level", lvl))
		}
	}
	return errors.Join(errs...)
}

// ValidateTOML checks a config.toml document the way Load and
// CheckConfigValidity would see it, defaults included.
func ValidateTOML(content string) error {
	v := viper.New()
	applyDefaults(v)
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(content)); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}
	return CheckConfigValidity(v)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
