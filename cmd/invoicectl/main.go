package main

import (
	"os"
	"time"

	"github.com/ridwanfathin/invoice-explorer-service/internal/logger"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		logger.InitLogger("error")
		logger.Fatal("invoicectl failed", zap.Error(err))
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "invoicectl",
		Usage: "browse and recalculate GST invoice documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "base URL of the file API",
				EnvVars: []string{"API_BASE_URL"},
				Value:   "http://localhost:5000",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "timeout of file API requests",
				EnvVars: []string{"API_TIMEOUT"},
				Value:   30 * time.Second,
			},
		},
		Commands: []*cli.Command{
			filesCommand(),
			showCommand(),
			uploadCommand(),
			downloadCommand(),
			recalcCommand(),
		},
	}
}
