// Command sbmgen runs a single fragmentation event from a YAML
// configuration file and prints a summary of the resulting debris
// population. It is a thin front-end over the sbm core: no simulation
// logic lives here, only flag parsing, wiring, and reporting.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/spacedebris/sbm"
	"github.com/spacedebris/sbm/internal/config"
	"github.com/spacedebris/sbm/internal/telemetry"
)

type options struct {
	ConfigPath string `short:"c" long:"config" description:"path to a breakup configuration YAML file" required:"true"`
	Seed       int64  `short:"s" long:"seed" description:"RNG seed" default:"1"`
	Workers    int    `short:"w" long:"workers" description:"worker goroutines for RunParallel; 1 runs serially" default:"1"`
	Metrics    string `long:"metrics" description:"address to serve Prometheus metrics on, e.g. :9090 (disabled if empty)"`
	Verbose    bool   `short:"v" long:"verbose" description:"enable debug logging"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load configuration")
	}

	kind, err := sbm.ParseSimulationKind(cfg.SimulationType)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid simulationType")
	}
	defaultClass, err := sbm.ParseSatClass(cfg.SatType)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid satType")
	}

	sats := sampleSatellites(kind, defaultClass)

	var registry *prometheus.Registry
	var recorder *telemetry.Recorder
	if opts.Metrics != "" {
		registry = prometheus.NewRegistry()
		recorder = telemetry.NewRecorder(registry)
		go serveMetrics(opts.Metrics, registry, logger)
	}

	engine := sbm.NewEngine(opts.Seed,
		sbm.WithMassConservation(cfg.MassConservation),
		sbm.WithLogger(logger),
		sbm.WithMetrics(recorder),
	)

	var (
		tensor sbm.Tensor
		runErr error
	)
	if opts.Workers > 1 {
		tensor, runErr = engine.RunParallel(kind, sats, cfg.MinimalCharacteristicLength, opts.Workers)
	} else {
		tensor, runErr = engine.Run(kind, sats, cfg.MinimalCharacteristicLength)
	}
	if runErr != nil {
		logger.Fatal().Err(runErr).Msg("breakup run failed")
	}

	report(tensor)
}

// sampleSatellites builds placeholder satellites for the CLI demo path. A
// real deployment would build these from TLEs or a mission database; here
// they're synthesized from mass alone using the config's default satellite
// class.
func sampleSatellites(kind sbm.SimulationKind, defaultClass sbm.SatClass) []sbm.Satellite {
	primary := sbm.NewBasicSatelliteFromMass([3]float64{7000, 0, 0}, [3]float64{0, 7.5, 0}, 900, defaultClass)
	if kind == sbm.Explosion {
		return []sbm.Satellite{primary}
	}
	secondary := sbm.NewBasicSatelliteFromMass([3]float64{7000.1, 0, 0}, [3]float64{0, -7.4, 0.2}, 15, sbm.Debris)
	return []sbm.Satellite{primary, secondary}
}

func serveMetrics(addr string, reg *prometheus.Registry, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("metrics server stopped")
	}
}

func report(t sbm.Tensor) {
	mean, variance := telemetry.SummarizeMasses(massesOf(t))
	fmt.Printf("fragments: %d\n", t.Len())
	fmt.Printf("total mass: %.6f kg\n", t.TotalMass())
	fmt.Printf("mean fragment mass: %.6g kg (variance %.6g)\n", mean, variance)
}

func massesOf(t sbm.Tensor) []float64 {
	masses := make([]float64, t.Len())
	for i := range masses {
		masses[i] = t.Mass(i)
	}
	return masses
}
