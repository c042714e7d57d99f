package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/segyhp/dealer-loans/internal/bootstrap"
	"github.com/segyhp/dealer-loans/internal/config"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range commands(openApp, os.Stdout) {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// openApp opens the storage selected by the environment.
func openApp(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return bootstrap.Open(ctx, cfg, cfg.NewLogger())
}
