package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/meenmo/caplib/internal/cli"
	"github.com/meenmo/caplib/internal/config"
	"github.com/meenmo/caplib/internal/logging"
)

func main() {
	// The config flag has to be read before cobra parses, since it decides
	// where configuration is loaded from.
	configDir := ""
	fs := pflag.NewFlagSet("pre", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.StringVar(&configDir, "config", "", "")
	fs.Usage = func() {}
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewWithConfig(logging.Config{
		Level:    cfg.Logging.Level,
		Console:  true,
		File:     cfg.Logging.File,
		FilePath: cfg.Logging.FilePath,
		MaxSize:  50, MaxBackups: 5, MaxAge: 30,
	})

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
