// Package config builds the configuration of a command from its flags,
// its environment and an optional configuration file.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config describes the configuration of a command
type Config interface {
	// Use is the name of the command as shown in its usage
	Use() string

	// EnvPrefix is the prefix of the environment variables read
	EnvPrefix() string

	// Binders are the sections of the configuration
	Binders() []Binder
}

// Binder is a section of the configuration. It registers the flags it
// needs and, once parsed, reads its values back
type Binder interface {
	// Bind registers the flags of the binder
	Bind(v *viper.Viper, cmd *cobra.Command) error

	// Configure reads the values of the binder after the flags
	// have been parsed
	Configure(v *viper.Viper) error
}

// Parser parses the configuration of a command
type Parser struct {
	Config Config

	file *ConfigFile

	cmd *cobra.Command
	v   *viper.Viper
}

// Parse parses the arguments of the process
func (p *Parser) Parse() error {
	return p.ParseArgs(os.Args[1:])
}

// ParseArgs parses args and configures every binder with the result
func (p *Parser) ParseArgs(args []string) error {
	if p.cmd.PersistentFlags().Parsed() {
		return ErrAlreadyParsed
	}

	if err := p.cmd.PersistentFlags().Parse(args); err != nil {
		return ErrParseFlags{err}
	}

	// keep file first so that any parameters read from the file are used
	// as defaults for the other flags
	var binders []Binder
	binders = append(binders, p.file)
	binders = append(binders, p.Config.Binders()...)

	for _, c := range binders {
		if err := c.Configure(p.v); err != nil {
			return err
		}
	}

	return nil
}

// Usage writes the usage of the command
func (p *Parser) Usage() error {
	return p.cmd.Usage()
}

// Generate creates the parser for config. All environment variables
// start with the prefix of config and have `.` and `-` replaced by `_`
func Generate(config Config) (*Parser, error) {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{Use: config.Use()}
	file := ConfigFile{}
	var binders []Binder
	binders = append(binders, &file)
	binders = append(binders, config.Binders()...)

	for _, c := range binders {
		if err := c.Bind(v, cmd); err != nil {
			return nil, errors.Wrap(err, "failed to bind flags")
		}
	}

	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		return nil, errors.Wrap(err, "failed to bind flags")
	}

	return &Parser{file: &file, Config: config, cmd: cmd, v: v}, nil
}
