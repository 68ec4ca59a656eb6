package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}

		assert.True(t, strings.HasPrefix(field.Tag.Get("envconfig"), "DIGENV_"), "field %q needs a DIGENV_ override", jsonField)
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "printenv", cfg.Source)
	assert.Equal(t, "grep", cfg.Filter)
	assert.Equal(t, "sort", cfg.Sort)
	assert.Equal(t, "PAGER", cfg.PagerEnv)
	assert.Equal(t, []string{"less", "more"}, cfg.FallbackPagers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.LogDevelopment)
}

func TestLoad_defaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_environment(t *testing.T) {
	t.Setenv("DIGENV_SORT", "/usr/bin/sort")
	t.Setenv("DIGENV_PAGER_ENV", "DIGENV_PAGER")
	t.Setenv("DIGENV_FALLBACK_PAGERS", "most,more")
	t.Setenv("DIGENV_LOG_LEVEL", "debug")
	t.Setenv("DIGENV_LOG_DEV", "true")
	// Unprefixed names must not leak into the configuration.
	t.Setenv("SOURCE", "env")

	cfg, err := Load(afero.NewMemMapFs())
	require.NoError(t, err)

	assert.Equal(t, "printenv", cfg.Source)
	assert.Equal(t, "/usr/bin/sort", cfg.Sort)
	assert.Equal(t, "DIGENV_PAGER", cfg.PagerEnv)
	assert.Equal(t, []string{"most", "more"}, cfg.FallbackPagers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogDevelopment)

	logCfg := cfg.LoggerConfig()
	assert.Equal(t, "debug", logCfg.Level)
	assert.True(t, logCfg.Development)
}

func TestLoad_file(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/etc/digenv/config.yaml", []byte("filter: egrep\nfallback_pagers: [more]\n"), 0644))

	t.Run("file", func(t *testing.T) {
		t.Setenv("DIGENV_CONFIG", "/etc/digenv/config.yaml")

		cfg, err := Load(fsys)
		require.NoError(t, err)
		assert.Equal(t, "egrep", cfg.Filter)
		assert.Equal(t, []string{"more"}, cfg.FallbackPagers)
		assert.Equal(t, "printenv", cfg.Source)
	})

	t.Run("directory", func(t *testing.T) {
		t.Setenv("DIGENV_CONFIG", "/etc/digenv")

		cfg, err := Load(fsys)
		require.NoError(t, err)
		assert.Equal(t, "egrep", cfg.Filter)
	})

	t.Run("environment beats file", func(t *testing.T) {
		t.Setenv("DIGENV_CONFIG", "/etc/digenv")
		t.Setenv("DIGENV_FILTER", "fgrep")

		cfg, err := Load(fsys)
		require.NoError(t, err)
		assert.Equal(t, "fgrep", cfg.Filter)
	})

	t.Run("missing", func(t *testing.T) {
		t.Setenv("DIGENV_CONFIG", "/etc/nope.yaml")

		_, err := Load(fsys)
		assert.Error(t, err)
	})
}

func TestLoadFile_invalid(t *testing.T) {
	cases := map[string]string{
		"unknown field":      "pager: less\n",
		"no fallback pagers": "fallback_pagers: []\n",
		"empty fallback":     "fallback_pagers: ['']\n",
		"blank source":       "source: ''\n",
		"bad log level":      "log_level: loud\n",
		"pager env with =":   "pager_env: A=B\n",
	}

	for tn, contents := range cases {
		t.Run(tn, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, ConfigurationName, []byte(contents), 0644))

			_, err := LoadFile(fsys, ConfigurationName)
			assert.Error(t, err)
		})
	}
}
