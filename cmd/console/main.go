package main

import (
	"context"
	"log"
	"os"

	"github.com/imararent/imararent/internal/buildinfo"
	"github.com/imararent/imararent/internal/client/cli"
	"github.com/imararent/imararent/internal/client/config"
	"github.com/imararent/imararent/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
