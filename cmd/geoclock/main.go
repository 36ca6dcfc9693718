// Command geoclock runs a work timer that only counts while the device is
// inside a geofence around a configured address.
//
// Usage:
//
//	geoclock [flags]
//
// Flags:
//
//	-config string          Configuration file path
//	-env-file string        .env file with secrets (default ".env")
//	-address string         Work address to geocode
//	-radius float           Geofence radius in meters
//	-log-level string       Log level: debug, info, warn, error
//	-event-log string       Session event log file (.gclog)
//	-source string          Position source: feed, track, nats
//	-track string           Track file for the track source
//	-nats-url string        NATS server URL for the nats source
//	-subject string         NATS subject carrying position samples
//	-metrics-listen string  Serve Prometheus metrics on this address
//	-interactive            Enable the interactive console (default true)
//
// Examples:
//
//	# Drive positions by hand
//	geoclock -config geoclock.yaml -source feed
//
//	# Replay a recorded walk
//	geoclock -config geoclock.yaml -source track -track walk.yaml -interactive=false
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/techb2bnew/GeoFencing-Demo-App/cmd/geoclock/interactive"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/config"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/eventlog"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/metrics"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/position"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/position/natsfeed"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/push"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/session"
)

// Options holds the command-line flags.
type Options struct {
	ConfigFile    string
	EnvFile       string
	Address       string
	Radius        float64
	LogLevel      string
	EventLog      string
	Source        string
	TrackFile     string
	NATSURL       string
	Subject       string
	MetricsListen string
	Interactive   bool
}

var opts Options

func init() {
	flag.StringVar(&opts.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&opts.EnvFile, "env-file", ".env", ".env file with secrets")
	flag.StringVar(&opts.Address, "address", "", "Work address to geocode")
	flag.Float64Var(&opts.Radius, "radius", 0, "Geofence radius in meters")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&opts.EventLog, "event-log", "", "Session event log file (.gclog)")
	flag.StringVar(&opts.Source, "source", "", "Position source: feed, track, nats")
	flag.StringVar(&opts.TrackFile, "track", "", "Track file for the track source")
	flag.StringVar(&opts.NATSURL, "nats-url", "", "NATS server URL for the nats source")
	flag.StringVar(&opts.Subject, "subject", "", "NATS subject carrying position samples")
	flag.StringVar(&opts.MetricsListen, "metrics-listen", "", "Serve Prometheus metrics on this address")
	flag.BoolVar(&opts.Interactive, "interactive", true, "Enable the interactive console")
}

func main() {
	os.Exit(run())
}

// run returns the exit code; deferred cleanup runs before the process exits.
func run() int {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	if err := config.LoadEnvFiles(opts.EnvFile); err != nil {
		log.Printf("Error: failed to load env file: %v", err)
		return 1
	}
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Printf("Error: failed to load configuration: %v", err)
		return 1
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		log.Printf("Error: invalid configuration: %v", err)
		return 1
	}
	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		log.Printf("Error: invalid configuration: %v", err)
		return 1
	}
	sessCfg, err := cfg.SessionConfig()
	if err != nil {
		log.Printf("Error: invalid configuration: %v", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, mover, closeSource, err := openSource(cfg)
	if err != nil {
		log.Printf("Error: failed to open position source: %v", err)
		return 1
	}
	defer closeSource()

	var console *interactive.Console
	var out io.Writer = os.Stderr
	if opts.Interactive {
		console, err = interactive.New(nil, mover)
		if err != nil {
			log.Printf("Error: failed to start console: %v", err)
			return 1
		}
		out = console.Stdout()
		log.SetOutput(out)
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	events, closeEvents, err := openEventLog(cfg, logger)
	if err != nil {
		log.Printf("Error: failed to open event log: %v", err)
		return 1
	}
	defer closeEvents()

	recorder, stopMetrics := startMetrics(cfg, logger)
	defer stopMetrics()

	geocoder, err := cfg.NewGeocoder(nil, logger)
	if err != nil {
		log.Printf("Error: failed to create geocoder: %v", err)
		return 1
	}

	sessCfg.Logger = logger
	sessCfg.EventLog = events
	sessCfg.Metrics = recorder

	sess, err := session.New(sessCfg, session.Deps{
		Geocoder:   geocoder,
		Permission: cfg.PermissionGate(),
		Positions:  source,
	})
	if err != nil {
		log.Printf("Error: failed to create session: %v", err)
		return 1
	}
	defer sess.Close()

	watchTransitions(sess)
	sess.OnNotice(func(n session.Notice) {
		log.Printf("NOTICE %s: %s", n.Kind, n.Message)
	})

	if cfg.Push.Enabled {
		go registerPush(ctx, logger)
	}

	log.Printf("geoclock session %s", sess.ID())
	log.Printf("Address: %s (radius %.1f m)", cfg.Timer.Address, cfg.Timer.RadiusMeters)
	log.Printf("Position source: %s", cfg.Position.Source)

	if err := sess.Start(ctx); err != nil {
		log.Printf("Error: failed to start session: %v", err)
		return 1
	}

	if console != nil {
		console.SetController(sess)
		go console.Run(ctx, cancel)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
	case <-ctx.Done():
	case <-sess.Done():
	}

	log.Println("Shutting down...")
	return 0
}

func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "address":
			cfg.Timer.Address = opts.Address
		case "radius":
			cfg.Timer.RadiusMeters = opts.Radius
		case "log-level":
			cfg.Logging.Level = opts.LogLevel
		case "event-log":
			cfg.Logging.EventLog = opts.EventLog
		case "source":
			cfg.Position.Source = opts.Source
		case "track":
			cfg.Position.TrackFile = opts.TrackFile
		case "nats-url":
			cfg.Position.NATS.URL = opts.NATSURL
		case "subject":
			cfg.Position.NATS.Subject = opts.Subject
		case "metrics-listen":
			cfg.Metrics.Listen = opts.MetricsListen
		}
	})
}

// openSource returns the position source and, for the feed source, the
// mover the console pushes positions into.
func openSource(cfg config.Config) (position.Source, interactive.Mover, func(), error) {
	noop := func() {}
	switch cfg.Position.Source {
	case config.SourceTrack:
		track, err := position.LoadTrack(cfg.Position.TrackFile, nil)
		if err != nil {
			return nil, nil, noop, err
		}
		log.Printf("Replaying track %q (%d points)", track.Name(), track.Len())
		return track, nil, noop, nil

	case config.SourceNATS:
		src, err := natsfeed.Dial(cfg.Position.NATS.URL, cfg.Position.NATS.Subject, nil)
		if err != nil {
			return nil, nil, noop, err
		}
		return src, nil, src.Close, nil

	default:
		feed := position.NewFeed(nil)
		return feed, feed, noop, nil
	}
}

func openEventLog(cfg config.Config, logger *slog.Logger) (eventlog.Logger, func(), error) {
	console := eventlog.NewSlogAdapter(logger)
	if cfg.Logging.EventLog == "" {
		return console, func() {}, nil
	}

	file, err := eventlog.NewFileLogger(cfg.Logging.EventLog)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := file.Close(); err != nil {
			log.Printf("Error closing event log: %v", err)
		}
	}
	return eventlog.NewMultiLogger(console, file), closeFn, nil
}

func startMetrics(cfg config.Config, logger *slog.Logger) (metrics.Recorder, func()) {
	if cfg.Metrics.Listen == "" {
		return metrics.NoopRecorder{}, func() {}
	}

	reg := prometheus.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: cfg.Metrics.Listen, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	log.Printf("Metrics: http://%s/metrics", cfg.Metrics.Listen)

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	return recorder, stop
}

func registerPush(ctx context.Context, logger *slog.Logger) {
	reg, err := push.Register(ctx, push.NewLocal(push.Authorized), logger)
	if err != nil {
		return
	}
	log.Printf("Push token: %s", reg.Token)
}

// watchTransitions prints a line whenever the timer starts or stops.
func watchTransitions(sess *session.Session) {
	running := false
	sess.OnUpdate(func(v session.View) {
		if v.Running == running {
			return
		}
		running = v.Running
		if running {
			log.Printf("Timer started")
		} else {
			log.Printf("Timer stopped")
		}
	})
}
