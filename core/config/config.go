package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/josephlewis42/digenv/core/logger"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
)

// Configuration describes the programs making up the pipeline.
type Configuration struct {
	Source string `json:"source" validate:"required" envconfig:"DIGENV_SOURCE"`
	Filter string `json:"filter" validate:"required" envconfig:"DIGENV_FILTER"`
	Sort   string `json:"sort" validate:"required" envconfig:"DIGENV_SORT"`

	PagerEnv       string   `json:"pager_env" validate:"required,excludesall= =" envconfig:"DIGENV_PAGER_ENV"`
	FallbackPagers []string `json:"fallback_pagers" validate:"required,min=1,dive,required" envconfig:"DIGENV_FALLBACK_PAGERS"`

	LogLevel       string `json:"log_level" validate:"oneof=debug info warn error" envconfig:"DIGENV_LOG_LEVEL"`
	LogDevelopment bool   `json:"log_development" envconfig:"DIGENV_LOG_DEV"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// LoggerConfig returns the operational logger settings.
func (c *Configuration) LoggerConfig() logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = c.LogLevel
	cfg.Development = c.LogDevelopment
	return cfg
}

// Default returns the built in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
