package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/lagcomp/settings"
	"github.com/sirupsen/logrus"
)

const defaultClients = 8

// The following program runs a headless arena of simulated clients shooting at each other, with every
// shot resolved through lag compensation.
func main() {
	path := "lagcomp.toml"
	if len(os.Args) >= 2 {
		path = os.Args[1]
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	s, err := readSettings(path)
	if err != nil {
		log.Fatalf("unable to read settings: %v", err)
	}
	if s.LagCompensation.Debug || s.LagCompensation.DebugVisualize {
		log.SetLevel(logrus.DebugLevel)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Release:     "lagcompd",
			Environment: environment(s),
		}); err != nil {
			log.Errorf("sentry init failed: %v", err)
		}
		defer sentry.Flush(time.Second * 5)
	}
	defer sentry.Recover()

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	newArena(log, s, defaultClients).run(ctx)
	fmt.Println("Arena stopped.")
}

// readSettings loads the settings file at path, creating it with the default settings first if it does
// not exist yet.
func readSettings(path string) (settings.Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := settings.SaveDefault(path); err != nil {
			return settings.Settings{}, err
		}
	}
	return settings.Load(path)
}

func environment(s settings.Settings) string {
	if s.LagCompensation.Debug {
		return "debug"
	}
	return "release"
}
