package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
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
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.Nil(t, cfg.Validate())
	assert.Equal(t, "$ ", cfg.Prompt)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "$ ", cfg.Prompt)
	assert.Empty(t, cfg.EventLog, "no directory to log to")
	assert.Empty(t, cfg.HistoryPath(), "no directory to keep history in")
	assert.Empty(t, cfg.Dir())
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Configuration)
		wantErr string
	}{
		"valid": {
			mutate: func(*Configuration) {},
		},
		"missing-prompt": {
			mutate:  func(c *Configuration) { c.Prompt = "" },
			wantErr: "prompt",
		},
		"bad-color": {
			mutate:  func(c *Configuration) { c.PromptColor = "sometimes" },
			wantErr: "prompt_color",
		},
		"bad-address": {
			mutate:  func(c *Configuration) { c.Server.Address = "no port" },
			wantErr: "address",
		},
		"negative-rate": {
			mutate:  func(c *Configuration) { c.Server.OutputRate = -1 },
			wantErr: "output_rate",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestLoadFs(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := LoadFs(afero.NewMemMapFs())
		assert.Error(t, err)
	})

	t.Run("unknown-field", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		afero.WriteFile(fs, ConfigurationName, []byte("prompt: '> '\nprompt_color: never\nbogus: 1\nserver: {address: 'localhost:22'}\n"), 0600)

		_, err := LoadFs(fs)
		assert.Error(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		afero.WriteFile(fs, ConfigurationName, []byte("prompt: ''\nprompt_color: never\nserver: {address: 'localhost:22'}\n"), 0600)

		_, err := LoadFs(fs)
		assert.Error(t, err)
	})

	t.Run("event-log", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		afero.WriteFile(fs, ConfigurationName, []byte("prompt: '> '\nprompt_color: auto\nevent_log: ev.log\nserver: {address: 'localhost:22'}\n"), 0600)

		cfg, err := LoadFs(fs)
		assert.NoError(t, err)
		assert.Equal(t, "> ", cfg.Prompt)

		fd, err := cfg.OpenEventLog()
		assert.NoError(t, err)
		fd.WriteString("line\n")
		fd.Close()

		contents, err := afero.ReadFile(fs, "ev.log")
		assert.NoError(t, err)
		assert.Equal(t, "line\n", string(contents))
	})
}
