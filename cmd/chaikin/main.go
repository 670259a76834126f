/*
Command chaikin animates Chaikin's corner-cutting algorithm.

In interactive mode, control points are drawn with the mouse in a terminal
and the curve is refined generation by generation after pressing Enter.
With flag -export the animation of the points given by -points is written
to an animated GIF instead:

	chaikin -export curve.gif -points "100,500 300,100 500,500 700,100" -generations 6

Configuration is read from NestedText files (see package config); flags
override configured values.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/chaikin"
	"github.com/npillmayer/chaikin/animation"
	"github.com/npillmayer/chaikin/config"
	"github.com/npillmayer/chaikin/render"
	"github.com/npillmayer/chaikin/termcanvas"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'chaikin.cmd'
func tracer() tracing.Trace {
	return tracing.Select("chaikin.cmd")
}

// ErrUsage flags invalid command line arguments.
var ErrUsage = errors.New("usage")

type options struct {
	generations int
	interval    string
	export      string
	points      string
	size        string
	configFile  string
	traceLevel  string
	fit         bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("chaikin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.generations, "generations", 0, "number of subdivision passes (1…10)")
	fs.StringVar(&opts.interval, "interval", "", "time between animation frames, e.g. 150ms")
	fs.StringVar(&opts.export, "export", "", "write an animated GIF instead of running interactively")
	fs.StringVar(&opts.points, "points", "", `control points for export, e.g. "10,10 90,10 90,50"`)
	fs.StringVar(&opts.size, "size", "", "frame size for export, e.g. 800x600")
	fs.StringVar(&opts.configFile, "config", "", "NestedText configuration file")
	fs.StringVar(&opts.traceLevel, "trace", "", "root trace level (Error, Info, Debug)")
	fs.BoolVar(&opts.fit, "fit", false, "scale exported control points to the frame")
	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
	}
	if opts.export == "" && opts.points != "" {
		return opts, fmt.Errorf("%w: -points requires -export", ErrUsage)
	}
	return opts, nil
}

// configure loads the configuration and applies flag overrides.
func configure(opts options, interactive bool) (*koanfadapter.KConf, error) {
	conf, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if interactive && !conf.IsSet(config.KeyTraceDest) {
		// keep traces off the terminal screen
		dest := filepath.Join(os.TempDir(), "chaikin.log")
		conf.Set(config.KeyTraceDest, "file://"+dest)
	}
	if opts.generations != 0 {
		conf.Set(config.KeyMaxGenerations, opts.generations)
	}
	if opts.interval != "" {
		conf.Set(config.KeyFrameInterval, opts.interval)
	}
	if opts.traceLevel != "" {
		conf.Set(config.KeyRootTraceLevel, opts.traceLevel)
	}
	if opts.size != "" {
		var w, h int
		if _, err := fmt.Sscanf(strings.ToLower(opts.size), "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
			return nil, fmt.Errorf("%w: invalid size %q", ErrUsage, opts.size)
		}
		conf.Set(config.KeyExportWidth, w)
		conf.Set(config.KeyExportHeight, h)
	}
	return conf, nil
}

func export(opts options, s config.Settings) error {
	seq, err := chaikin.ParseSequence(opts.points)
	if err != nil {
		return fmt.Errorf("%w: -points: %v", ErrUsage, err)
	}
	f, err := os.Create(opts.export)
	if err != nil {
		return err
	}
	err = render.ExportGIF(f, seq, render.ExportOptions{
		Width:          s.ExportWidth,
		Height:         s.ExportHeight,
		Delay:          s.ExportDelay,
		MaxGenerations: s.MaxGenerations,
		Fit:            opts.fit,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	tracer().Infof("wrote %s", opts.export)
	return nil
}

func interactive(ctx context.Context, s config.Settings) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	ctrl := animation.New(termcanvas.ControllerOptions(s)...)
	return termcanvas.New(screen, ctrl, s).Run(ctx)
}

func run(args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	conf, err := configure(opts, opts.export == "")
	if err != nil {
		return err
	}
	untrace, err := config.SetupTracing(conf)
	if err != nil {
		return err
	}
	defer untrace()
	s := config.FromConfiguration(conf)
	tracing.With(tracer()).Dump("settings", s)
	if opts.export != "" {
		return export(opts, s)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = interactive(ctx, s)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "chaikin: %v\n", err)
		}
		os.Exit(1)
	}
}
