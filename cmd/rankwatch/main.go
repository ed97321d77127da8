package main

import (
	"fmt"
	"os"
	"rankwatch/internal/di"
	"rankwatch/internal/structures"

	flag "github.com/spf13/pflag"
)

func main() {
	cfg := &structures.CliFlags{}
	flag.StringVarP(&cfg.ConfigPath, "config", "c", "", "path to the YAML config file")
	flag.BoolVar(&cfg.DebugMode, "debug", false, "enable debug logging")
	flag.Parse()

	app, err := di.InitApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %s\n", err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "run: %s\n", err)
		os.Exit(1)
	}
}
