package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	PrivateKeyName    = "private_key"
)

const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs
	// configurationDir is the on-disk location of configFs, empty if the
	// configuration isn't backed by a directory.
	configurationDir string

	Prompt      string `json:"prompt" validate:"required"`
	PromptColor string `json:"prompt_color" validate:"oneof=always auto never"`
	HistoryFile string `json:"history_file"`
	EventLog    string `json:"event_log"`

	Server Server `json:"server"`
}

type Server struct {
	Address    string `json:"address" validate:"required,hostname_port"`
	Password   string `json:"password"`
	OutputRate int64  `json:"output_rate" validate:"gte=0"`
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

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewMemMapFs()
	}
	return c.configFs
}

// Dir returns the configuration directory, empty for built-in defaults.
func (c *Configuration) Dir() string {
	return c.configurationDir
}

// HistoryPath returns the on-disk readline history file or an empty string
// if history is disabled.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" || c.configurationDir == "" {
		return ""
	}
	return filepath.Join(c.configurationDir, c.HistoryFile)
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog, os.O_RDONLY, 0600)
}

// PrivateKeyPem returns the bytes of the SSH host key.
func (c *Configuration) PrivateKeyPem() ([]byte, error) {
	return afero.ReadFile(c.fs(), PrivateKeyName)
}

// Default returns the built-in configuration. It isn't backed by a
// directory so history and event logging are off.
func Default() *Configuration {
	out := defaultConfig()
	out.HistoryFile = ""
	out.EventLog = ""
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
