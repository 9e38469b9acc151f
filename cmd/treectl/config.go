package main

import (
	"github.com/lopatinaanna/binarytree/config"
	"github.com/lopatinaanna/binarytree/container/tree"
	"github.com/lopatinaanna/binarytree/logs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// TreeConfig holds the operations applied to the tree on start
type TreeConfig struct {
	Values []int
	Remove []int
	Order  tree.Order
}

func (c *TreeConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().StringSlice("tree.values", nil, "values added to the tree, in order")
	cmd.PersistentFlags().StringSlice("tree.remove", nil, "values removed from the tree after adding")
	cmd.PersistentFlags().String("tree.order", "in", "traversal order printed: in, pre or post")
	return nil
}

func (c *TreeConfig) Configure(v *viper.Viper) error {
	var err error

	if c.Values, err = config.ParseInts(v.GetStringSlice("tree.values")); err != nil {
		return err
	}

	if c.Remove, err = config.ParseInts(v.GetStringSlice("tree.remove")); err != nil {
		return err
	}

	c.Order, err = tree.ParseOrder(v.GetString("tree.order"))
	return err
}

// LogConfig configures the logger
type LogConfig struct {
	Level logrus.Level
	JSON  bool
}

func (c *LogConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String("log.level", "info", "minimum level of the entries logged")
	cmd.PersistentFlags().Bool("log.json", false, "log entries as json")
	return nil
}

func (c *LogConfig) Configure(v *viper.Viper) error {
	level, err := logs.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return err
	}

	c.Level = level
	c.JSON = v.GetBool("log.json")
	return nil
}

// HttpConfig configures the http server. The server is only started
// when an address is set
type HttpConfig struct {
	Address     string
	CorsEnabled bool
	CorsOrigins []string
}

func (c *HttpConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String("http.address", "", "address the tree is served on, e.g. :8080")
	cmd.PersistentFlags().Bool("http.cors.enabled", false, "verify cross origin requests")
	cmd.PersistentFlags().StringSlice("http.cors.origins", []string{"*"}, "origins allowed by cors")
	return nil
}

func (c *HttpConfig) Configure(v *viper.Viper) error {
	c.Address = v.GetString("http.address")
	c.CorsEnabled = v.GetBool("http.cors.enabled")
	c.CorsOrigins = v.GetStringSlice("http.cors.origins")
	return nil
}

// Config is the configuration of treectl
type Config struct {
	Tree TreeConfig
	Log  LogConfig
	Http HttpConfig
}

func (c *Config) Use() string       { return "treectl" }
func (c *Config) EnvPrefix() string { return "treectl" }
func (c *Config) Binders() []config.Binder {
	return []config.Binder{&c.Tree, &c.Log, &c.Http}
}
