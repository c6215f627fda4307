package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/alanbriolat/songdl"
	"github.com/alanbriolat/songdl/generic"
	"github.com/alanbriolat/songdl/gui"
	"github.com/alanbriolat/songdl/internal/env"
)

func main() {
	app := &cli.App{
		Name:  "songdl",
		Usage: "find a song on YouTube, download its audio and tag it",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-tag",
				Usage: "leave downloaded files untagged",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log debug messages",
			},
		},
		Action:          run,
		HideHelpCommand: true,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	zapConfig := zap.NewDevelopmentConfig()
	if !c.Bool("debug") {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.RedirectStdLog(logger)
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config := songdl.DefaultConfig
	config.EnableTagging = !c.Bool("no-tag")
	e := generic.Unwrap(env.NewEnvBuilder().Context(ctx).Logger(logger).Config(config).Build())
	defer e.Close()

	// GTK gets its own argv, without our flags
	exitCode := gui.NewApplication(e, gui.DefaultAppID).Run(os.Args[0])
	if exitCode != 0 {
		return cli.Exit("", exitCode)
	}
	return nil
}
