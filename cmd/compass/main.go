// Package main is the compass command line tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	geo "github.com/kellydunn/golang-geo"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"golang.org/x/text/language"

	"go.viam.com/compass/bearing"
	"go.viam.com/compass/components/movementsensor/fake"
	"go.viam.com/compass/config"
	"go.viam.com/compass/location"
	"go.viam.com/compass/logging"
	"go.viam.com/compass/session"
	"go.viam.com/compass/utils"
)

const (
	flagConfig   = "config"
	flagDebug    = "debug"
	flagHeading  = "heading"
	flagRotation = "rotation"
	flagTicks    = "ticks"
	flagLanguage = "lang"
	flagWatch    = "watch"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "compass",
		Usage:  "simulate a smoothed compass needle and format coordinates",
		Writer: out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "simulate",
				Usage:     "run a compass session against a fake movement sensor",
				UsageText: "compass simulate [--config FILE] [--heading DEG] [--rotation DEG] [--ticks N]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagConfig,
						Usage: "path to a JSON config file",
					},
					&cli.Float64Flag{
						Name:  flagHeading,
						Usage: "heading the fake sensor reports, overrides the config",
					},
					&cli.Float64Flag{
						Name:  flagRotation,
						Usage: "degrees the fake heading turns per sensor read",
					},
					&cli.IntFlag{
						Name:  flagTicks,
						Value: 100,
						Usage: "number of animation ticks to run",
					},
					&cli.StringFlag{
						Name:  flagLanguage,
						Usage: "BCP 47 language tag for labels, overrides the config",
					},
					&cli.BoolFlag{
						Name:  flagWatch,
						Usage: "re-aim the fake sensor whenever the config file's heading changes",
					},
				},
				Action: simulateAction,
			},
			{
				Name:      "format",
				Usage:     "print a latitude and longitude as degrees, minutes and seconds",
				UsageText: "compass format [--lang TAG] LATITUDE LONGITUDE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagLanguage,
						Value: "en",
						Usage: "BCP 47 language tag for hemisphere labels",
					},
				},
				Action: formatAction,
			},
		},
	}
}

func newLogger(c *cli.Context) logging.Logger {
	logger := logging.NewLogger("compass")
	if c.Bool(flagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	return logger
}

func simulateAction(c *cli.Context) error {
	logger := newLogger(c)
	if c.Bool(flagWatch) && c.String(flagConfig) == "" {
		return errors.New("--watch needs --config")
	}
	cfg := &config.Config{}
	if path := c.String(flagConfig); path != "" {
		var err error
		if cfg, err = config.Read(c.Context, path, logger); err != nil {
			return err
		}
		if cfg.LogLevel != nil && !c.Bool(flagDebug) {
			logger.SetLevel(*cfg.LogLevel)
		}
	}
	if cfg.FakeSensor == nil {
		cfg.FakeSensor = &fake.Config{}
	}
	if c.IsSet(flagHeading) {
		cfg.FakeSensor.Heading = c.Float64(flagHeading)
	}
	if c.IsSet(flagRotation) {
		cfg.FakeSensor.RotationPerRead = c.Float64(flagRotation)
	}
	if c.IsSet(flagLanguage) {
		cfg.Session.Language = c.String(flagLanguage)
	}
	if err := cfg.Ensure(); err != nil {
		return err
	}

	sensor := fake.NewMovementSensor(cfg.FakeSensor, logger.Sublogger("fake_sensor"))
	renderer := &writerRenderer{out: c.App.Writer}
	sess, err := session.New(c.Context, &cfg.Session, sensor, renderer, clock.New(), logger.Sublogger("session"))
	if err != nil {
		return err
	}

	if c.Bool(flagWatch) {
		watcher, err := config.NewWatcher(c.Context, c.String(flagConfig), logger.Sublogger("config"))
		if err != nil {
			return multierr.Combine(err, sess.Close(context.Background()))
		}
		workers := utils.NewStoppableWorkers(func(ctx context.Context) {
			followConfig(ctx, watcher, sensor)
		})
		defer func() {
			workers.Stop()
			if err := watcher.Close(); err != nil {
				logger.Warnw("error closing config watcher", "error", err)
			}
		}()
	}

	sess.Resume(c.Context)
	runFor := time.Duration(c.Int(flagTicks)) * cfg.Session.Smoother.TickInterval()
	select {
	case <-c.Context.Done():
	case <-time.After(runFor):
	}
	sess.Pause()
	if err := sess.Close(context.Background()); err != nil {
		return err
	}

	smoother := sess.Smoother()
	heading := bearing.NewReadout(bearing.HeadingFromNeedle(smoother.Target()))
	if smoother.Current() == smoother.Target() {
		pterm.Success.WithWriter(c.App.Writer).Printfln("settled on %s", heading)
	} else {
		pterm.Warning.WithWriter(c.App.Writer).Printfln("still turning toward %s, needle at %.3f°",
			heading, smoother.Current())
	}
	return nil
}

// followConfig points the fake sensor at each heading read from a changed config file.
func followConfig(ctx context.Context, watcher *config.Watcher, sensor *fake.MovementSensor) {
	for {
		select {
		case <-ctx.Done():
			return
		case cfg := <-watcher.Config():
			if cfg.FakeSensor != nil {
				sensor.SetHeading(cfg.FakeSensor.Heading)
			}
		}
	}
}

func formatAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("expected LATITUDE and LONGITUDE")
	}
	lat, err := strconv.ParseFloat(c.Args().Get(0), 64)
	if err != nil {
		return errors.Wrap(err, "invalid latitude")
	}
	lon, err := strconv.ParseFloat(c.Args().Get(1), 64)
	if err != nil {
		return errors.Wrap(err, "invalid longitude")
	}
	tag, err := language.Parse(c.String(flagLanguage))
	if err != nil {
		return errors.Wrap(err, "invalid language")
	}
	fmt.Fprintln(c.App.Writer, location.NewFormatter(tag).Point(geo.NewPoint(lat, lon)))
	return nil
}

// writerRenderer prints each moving frame and location change as a line of text.
type writerRenderer struct {
	mu  sync.Mutex
	out io.Writer
}

func (r *writerRenderer) RenderView(v session.View) {
	if !v.Moved {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	labels := lo.Map(v.Labels, func(d bearing.Direction, _ int) string { return d.String() })
	fmt.Fprintf(r.out, "needle %7.3f°  %-2s %s\n",
		v.NeedleRotation, strings.Join(labels, ""), digitsString(v.Readout))
}

func (r *writerRenderer) RenderLocation(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, text)
}

func digitsString(r bearing.Readout) string {
	var sb strings.Builder
	for _, d := range r.Digits {
		sb.WriteString(strconv.Itoa(d))
	}
	sb.WriteString("°")
	return sb.String()
}
