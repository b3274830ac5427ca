// Command coursepointer converts a GPX route and its waypoints into a
// Garmin FIT course file, promoting waypoints near the route into course
// points (spec.md §1, §6.4).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	coursepointer "github.com/mshroyer/coursepointer-go"
	"github.com/mshroyer/coursepointer-go/internal/config"
	"github.com/mshroyer/coursepointer-go/internal/course"
	"github.com/mshroyer/coursepointer-go/internal/measure"
	"github.com/mshroyer/coursepointer-go/internal/pointtype"
	"github.com/mshroyer/coursepointer-go/internal/report"
)

const (
	exitOK            = 0
	exitUnspecified   = 1
	exitInputError    = 2
	exitGeometryError = 3
	exitEncodingError = 4
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("coursepointer", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	output := flags.StringP("output", "o", "", "Output FIT file path (default: derived from the conversion timestamp)")
	sport := flags.String("sport", "generic", "Sport tag for the course (generic, running, cycling, walking, hiking, rowing, mountaineering, paddling)")
	speedKMPH := flags.Float64("speed", 14.4, "Virtual-partner speed in km/h used to derive timestamps")
	thresholdM := flags.Float64("threshold", 35, "Waypoint acceptance threshold in meters")
	dedupM := flags.Float64("dedup", 1, "Along-track dedup distance in meters")
	creator := flags.String("creator", "auto", "Waypoint symbol vocabulary to assume: gaia, rwgps, or auto")
	strict := flags.Bool("strict", false, "Treat a degenerate route segment as a hard error")
	noParallel := flags.Bool("no-parallel", false, "Force the sequential intercept search regardless of problem size")
	configPath := flags.String("config", "", "YAML file of default assembly options")
	grid := flags.Bool("grid", false, "Log each accepted course point's UTM/MGRS grid reference")
	verbose := flags.BoolP("verbose", "v", false, "Enable debug logging")
	showVersion := flags.Bool("version", false, "Print the version and exit")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n  coursepointer convert <input.gpx> [flags]\n\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return exitUnspecified
	}

	if *showVersion {
		fmt.Fprintln(stdout, versionString())
		return exitOK
	}

	logger := log.NewWithOptions(stderr, log.Options{Level: log.InfoLevel})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	rest := flags.Args()
	if len(rest) != 2 || rest[0] != "convert" {
		flags.Usage()
		return exitUnspecified
	}

	inputPath := rest[1]

	opts := course.DefaultOptions()
	opts.Logger = logger

	// Config file fills in over the defaults first, so that explicit
	// flags below can win over it per SPEC_FULL.md §1.1.
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "coursepointer: %v\n", err)
			return exitInputError
		}

		opts = f.ApplyTo(opts)
	}

	if flags.Changed("sport") {
		opts.Sport = course.Sport(*sport)
	}

	if flags.Changed("threshold") {
		opts.ThresholdM = measure.Meters(*thresholdM)
	}

	if flags.Changed("dedup") {
		opts.DedupAlongM = measure.Meters(*dedupM)
	}

	if flags.Changed("speed") {
		opts.SpeedMPS = measure.KilometersPerHour(*speedKMPH).ToMetersPerSecond()
	}

	if flags.Changed("strict") {
		opts.Strict = *strict
	}

	if *noParallel {
		opts.Parallel = course.ParallelOff
	}

	if flags.Changed("creator") {
		switch strings.ToLower(*creator) {
		case "gaia":
			opts.CreatorHint = pointtype.CreatorGaia
		case "rwgps":
			opts.CreatorHint = pointtype.CreatorRWGPS
		}
	}

	in, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(stderr, "coursepointer: %v\n", err)
		return exitInputError
	}
	defer in.Close()

	input, err := coursepointer.FromGPX(in)
	if err != nil {
		fmt.Fprintf(stderr, "coursepointer: %v\n", err)
		return exitInputError
	}

	if opts.CreatorHint != pointtype.CreatorUnknown {
		input.Creator = opts.CreatorHint
	}

	input.Created = time.Now().UTC()

	outPath := *output
	if outPath == "" {
		stamp, ferr := strftime.Format("%Y%m%d-%H%M%S", input.Created)
		if ferr != nil {
			stamp = "course"
		}

		outPath = stamp + ".fit"
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(stderr, "coursepointer: %v\n", err)
		return exitEncodingError
	}
	defer out.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	go func() {
		<-sig
		cancel()
	}()

	rep, err := coursepointer.Convert(ctx, input, out, opts)
	if err != nil {
		return exitFor(err, stderr)
	}

	fmt.Fprintf(stdout, "%s: %d course points, %.1fm total\n", rep.CourseName, rep.CoursePointsOut, float64(rep.TotalLengthM))

	if *grid {
		for _, d := range rep.Accepted() {
			fmt.Fprintf(stdout, "  %s: %s\n", d.Name, report.GridLine(d.Point))
		}
	}

	return exitOK
}

// exitFor maps a classified coursepointer.Error onto the exit codes from
// spec.md §6.4, printing a single diagnostic line to stderr.
func exitFor(err error, stderr io.Writer) int {
	fmt.Fprintf(stderr, "coursepointer: %v\n", err)

	var cpErr *coursepointer.Error
	if !errors.As(err, &cpErr) {
		return exitUnspecified
	}

	switch cpErr.Kind {
	case coursepointer.InvalidCoordinate, coursepointer.EmptyCourse:
		return exitInputError
	case coursepointer.DegenerateSegment:
		return exitGeometryError
	case coursepointer.EncodeTooLarge:
		return exitEncodingError
	default:
		return exitUnspecified
	}
}
