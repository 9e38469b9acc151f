package main

import (
	"bytes"
	"testing"

	"github.com/lopatinaanna/binarytree/config"
	"github.com/lopatinaanna/binarytree/container/tree"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func parse(t *testing.T, args ...string) *Config {
	cfg := &Config{}
	parser, err := config.Generate(cfg)
	assert.Nil(t, err)
	assert.Nil(t, parser.ParseArgs(args))
	return cfg
}

func TestConfigDefaults(t *testing.T) {
	cfg := parse(t)

	assert.Empty(t, cfg.Tree.Values)
	assert.Equal(t, tree.InOrder, cfg.Tree.Order)
	assert.Equal(t, logrus.InfoLevel, cfg.Log.Level)
	assert.Equal(t, "", cfg.Http.Address)
	assert.Equal(t, []string{"*"}, cfg.Http.CorsOrigins)
}

func TestConfigInvalidOrder(t *testing.T) {
	cfg := &Config{}
	parser, err := config.Generate(cfg)
	assert.Nil(t, err)

	err = parser.ParseArgs([]string{"--tree.order", "level"})
	assert.ErrorIs(t, err, tree.ErrUnknownOrder)
}

func TestBuildAndPrint(t *testing.T) {
	cfg := parse(t,
		"--tree.values", "5,3,8,1,4",
		"--tree.remove", "3,99",
		"--tree.order", "pre",
		"--log.level", "debug")

	tr := tree.NewOrdered[int]()
	assert.Nil(t, build(tr, &cfg.Tree))

	var buf bytes.Buffer
	printTree(&buf, tr, cfg.Tree.Order)

	assert.Equal(t, "pre order: [5 4 1 8]\ncount: 4\nmin: 1\nmax: 8\n", buf.String())
	assert.Equal(t, logrus.DebugLevel, cfg.Log.Level)
}

func TestPrintEmpty(t *testing.T) {
	var buf bytes.Buffer
	printTree(&buf, tree.NewOrdered[int](), tree.PostOrder)

	assert.Equal(t, "post order: []\ncount: 0\n", buf.String())
}
