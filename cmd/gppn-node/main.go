package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"gppn-network/cmd/cli"
	"gppn-network/pkg/config"
)

func main() {
	env := os.Getenv("GPPN_ENV")
	cfg, err := config.Load(env)
	if err != nil {
		logrus.Fatal(err)
	}

	level, lvlErr := logrus.ParseLevel(cfg.Logging.Level)
	if lvlErr != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if err := cli.RootCmd().Execute(); err != nil {
		logrus.Fatal(err)
	}
}
