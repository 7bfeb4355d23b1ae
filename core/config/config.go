package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/anmitsu/go-shlex"
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
	LogsDirName       = "session_logs"
	PrivateKeyName    = "private_key"
	AppLogName        = "app.log"
)

type Configuration struct {
	configFs afero.Fs

	Prompt                string            `json:"prompt" validate:"required"`
	Greeting              string            `json:"greeting"`
	Hostname              string            `json:"hostname" validate:"required,hostname_rfc1123"`
	ProgramTimeoutSeconds int               `json:"program_timeout_seconds" validate:"gte=0"`
	SSHPort               int               `json:"ssh_port" validate:"gte=0,lte=65535"`
	SSHPassword           string            `json:"ssh_password"`
	RecordSessions        bool              `json:"record_sessions"`
	ExternalCommands      map[string]string `json:"external_commands" validate:"dive,keys,required,endkeys,required"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	if err := validate.Struct(c); err != nil {
		return err
	}

	for _, name := range c.ExternalCommandNames() {
		argv, err := shlex.Split(c.ExternalCommands[name], true)
		if err != nil {
			return fmt.Errorf("external_commands[%s]: %w", name, err)
		}
		if len(argv) == 0 {
			return fmt.Errorf("external_commands[%s]: empty command line", name)
		}
	}

	return nil
}

// ExternalCommandNames returns the configured host program names, sorted.
func (c *Configuration) ExternalCommandNames() []string {
	var names []string
	for name := range c.ExternalCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProgramTimeout converts program_timeout_seconds, zero means no limit.
func (c *Configuration) ProgramTimeout() time.Duration {
	return time.Duration(c.ProgramTimeoutSeconds) * time.Second
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// CreateSessionLog creates a recording with the given name.
func (c *Configuration) CreateSessionLog(name string) (afero.File, error) {
	toCreate := filepath.Join(LogsDirName, name)
	return c.fs().Create(toCreate)
}

// PrivateKeyPem returns the bytes of the SSH host key.
func (c *Configuration) PrivateKeyPem() ([]byte, error) {
	return afero.ReadFile(c.fs(), PrivateKeyName)
}

// OpenAppLog opens the application log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
