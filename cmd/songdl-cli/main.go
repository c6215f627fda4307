package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/r3labs/diff/v3"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alanbriolat/songdl"
	"github.com/alanbriolat/songdl/async"
	"github.com/alanbriolat/songdl/generic"
	"github.com/alanbriolat/songdl/internal/env"
	"github.com/alanbriolat/songdl/internal/job"
	"github.com/alanbriolat/songdl/tagger"
)

func main() {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	logger, err := config.Build()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.RedirectStdLog(logger)
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = songdl.WithLogger(ctx, logger)

	app := &cli.App{
		Name:  "songdl-cli",
		Usage: "find a song on YouTube, download its audio and tag it",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log debug messages, including every job state change",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				config.Level.SetLevel(zap.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "download",
				Usage:     "search for a song, download it and tag it",
				ArgsUsage: " ",
				Flags: append(metadataFlags(),
					&cli.StringFlag{
						Name:  "target",
						Value: songdl.DefaultConfig.DefaultDirectory,
						Usage: "save downloaded audio to `DIR`",
					},
					&cli.BoolFlag{
						Name:  "no-tag",
						Usage: "leave the downloaded file untagged",
					},
				),
				Action: func(c *cli.Context) error {
					return download(ctx, c)
				},
			},
			{
				Name:      "tag",
				Usage:     "write metadata into an existing audio file",
				ArgsUsage: "FILE",
				Flags:     metadataFlags(),
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one FILE")
					}
					return tagger.New().TagMetadata(c.Args().First(), metadataFromFlags(c))
				},
			},
			{
				Name:      "show",
				Usage:     "print the metadata of audio files",
				ArgsUsage: "FILE...",
				Action: func(c *cli.Context) error {
					for _, path := range c.Args().Slice() {
						if err := show(path); err != nil {
							return err
						}
					}
					return nil
				},
			},
		},
		HideHelpCommand: true,
	}

	result := async.Run(func() error { return app.Run(os.Args) })

	select {
	case err = <-result:
		if err != nil {
			logger.Fatal(err.Error())
		}
	case <-ctx.Done():
		stop()
		err = <-result
		if err != nil {
			logger.Fatal(err.Error())
		}
	}
}

func metadataFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "song `TITLE`"},
		&cli.StringFlag{Name: "album-artist", Usage: "album `ARTIST`, also used to search"},
		&cli.StringFlag{Name: "artists", Usage: "contributing `ARTISTS`"},
		&cli.StringFlag{Name: "album", Usage: "`ALBUM` name"},
		&cli.StringFlag{Name: "year", Usage: "release `YEAR`"},
		&cli.StringFlag{Name: "track", Usage: "track `NUMBER`"},
		&cli.StringFlag{Name: "genre", Usage: "`GENRE`"},
	}
}

func metadataFromFlags(c *cli.Context) songdl.Metadata {
	return songdl.Metadata{
		Title:               c.String("title"),
		ContributingArtists: c.String("artists"),
		AlbumArtist:         c.String("album-artist"),
		Album:               c.String("album"),
		Year:                c.String("year"),
		TrackNumber:         c.String("track"),
		Genre:               c.String("genre"),
	}
}

func download(ctx context.Context, c *cli.Context) error {
	logger := songdl.Logger(ctx).Sugar()

	config := songdl.DefaultConfig
	config.DefaultDirectory = c.String("target")
	config.EnableTagging = !c.Bool("no-tag")
	e, err := env.NewEnvBuilder().Context(ctx).Logger(songdl.Logger(ctx)).Config(config).Build()
	if err != nil {
		return err
	}
	defer e.Close()

	metadata := metadataFromFlags(c)
	req := songdl.Request{
		Query:     songdl.SongQuery{Title: metadata.Title, Artist: metadata.AlbumArtist},
		Directory: config.DefaultDirectory,
		Metadata:  metadata,
	}

	var bar *progressbar.ProgressBar
	e.Runner().Observe(func(event job.Event) {
		changes, err := diff.Diff(event.Old, event.New)
		if err != nil {
			logger.Errorf("failed to diff old and new job state: %v", err)
		} else {
			for _, change := range changes {
				logger.Debugf("%v: %#v -> %#v", change.Path, change.From, change.To)
			}
		}
		if event.New.Status != event.Old.Status {
			logger.Infof("%v", event.New.Status)
		}
		if event.New.Expected > 0 && event.New.Downloaded != event.Old.Downloaded {
			if bar == nil {
				bar = progressbar.DefaultBytes(event.New.Expected, "downloading")
			}
			if bar.GetMax() != int(event.New.Expected) {
				bar.ChangeMax(int(event.New.Expected))
			}
			generic.Unwrap_(bar.Set(int(event.New.Downloaded)))
		}
	})

	logger.Infof("Searching for %v %v", req.Query.Title, req.Query.Artist)
	_, done, err := e.Runner().Start(e.Context(), req)
	if err != nil {
		return err
	}
	result, err := (<-done).Parts()
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}
	logger.Infof("Saved %v (tagged: %v)", result.Path, result.Tagged)
	return nil
}

func show(path string) error {
	m, err := tagger.Read(path)
	if err != nil {
		return err
	}
	fmt.Println(path)
	fmt.Printf("  Title:                %v\n", m.Title)
	fmt.Printf("  Album Artist:         %v\n", m.AlbumArtist)
	fmt.Printf("  Contributing Artists: %v\n", m.ContributingArtists)
	fmt.Printf("  Album:                %v\n", m.Album)
	fmt.Printf("  Year:                 %v\n", m.Year)
	fmt.Printf("  Track Number:         %v\n", m.TrackNumber)
	fmt.Printf("  Genre:                %v\n", m.Genre)
	return nil
}
