// internal/config/config.go

// Package config resolves benchpct settings from flags, environment and an
// optional YAML file, and validates them before any stage runs.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/mwiater/benchpct/internal/reporterrors"
)

// EnvPrefix is the prefix of environment overrides, e.g. BENCHPCT_FIELD.
const EnvPrefix = "BENCHPCT"

// Keys shared by flags, environment and the config file.
const (
	KeyInput       = "input"
	KeyOutput      = "output"
	KeyFormat      = "format"
	KeyField       = "field"
	KeyPercentiles = "percentiles"
	KeyPlot        = "plot"
	KeyPlotFile    = "plot_file"
	KeyPlotMode    = "plot_mode"
	KeyDPI         = "dpi"
	KeyReport      = "report"
	KeyDebug       = "debug"
	KeyLogLevel    = "log_level"
)

// Config is the resolved configuration of one benchpct run.
type Config struct {
	Input       string    `mapstructure:"input" validate:"required_without=Report"`
	Output      string    `mapstructure:"output"`
	Format      string    `mapstructure:"format" validate:"omitempty,oneof=csv json yaml yml txt text"`
	Field       string    `mapstructure:"field" validate:"required,oneof=real_time cpu_time"`
	Percentiles []float64 `mapstructure:"percentiles" validate:"required,min=1,dive,gte=0,lte=100"`

	Plot     bool   `mapstructure:"plot"`
	PlotFile string `mapstructure:"plot_file" validate:"required_if=Plot true"`
	PlotMode string `mapstructure:"plot_mode" validate:"oneof=percentile group"`
	DPI      int    `mapstructure:"dpi" validate:"gt=0,lte=1200"`

	// Report is a previously written JSON report, read by the viewer.
	Report string `mapstructure:"report"`

	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=trace debug info warn warning error"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyField, "real_time")
	v.SetDefault(KeyPercentiles, []float64{50, 75, 90, 95, 99, 99.9})
	v.SetDefault(KeyPlot, false)
	v.SetDefault(KeyPlotFile, "percentiles.png")
	v.SetDefault(KeyPlotMode, "percentile")
	v.SetDefault(KeyDPI, 200)
	v.SetDefault(KeyLogLevel, "info")
}

// ReadFile merges the YAML file at path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return errors.WithStack(&reporterrors.ErrIO{Path: path, Op: "read config", Err: err})
	}
	return nil
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.WithStack(&reporterrors.ErrInvalidConfig{Field: "config", Message: err.Error()})
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.PlotMode = strings.ToLower(strings.TrimSpace(cfg.PlotMode))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	return cfg, cfg.Validate()
}

// Validate checks the struct tags of c and reports the first failure as an
// ErrInvalidConfig named after the configuration key.
func (c Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.WithStack(&reporterrors.ErrInvalidConfig{Field: "config", Message: err.Error()})
	}
	fe := verrs[0]
	return errors.WithStack(&reporterrors.ErrInvalidConfig{
		Field:   stripPrefix(fe.Namespace()),
		Value:   fe.Value(),
		Message: describe(fe),
	})
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return validate
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "is required"
	case "required_if":
		return "is required when plot is enabled"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

func stripPrefix(s string) string {
	if idx := strings.Index(s, "."); idx != -1 {
		return s[idx+1:]
	}
	return s
}
