package main

import (
	"flag"

	"go.uber.org/fx"

	"github.com/ricardofn/wagate/internal/daemon"
)

func main() {
	configFlag := flag.String("config", "", "path to config.toml (default ~/.wagate/config.toml)")
	initStore := flag.Bool("init-store", false, "provision a fresh development schema before serving")
	flag.Parse()

	app := fx.New(
		daemon.Module(daemon.Params{
			ConfigPath: *configFlag,
			InitStore:  *initStore,
		}),
	)

	app.Run()
}
