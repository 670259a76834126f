/*
Package config sets up application configuration and tracing.

Configuration is layered: built-in defaults, then NestedText files found for
the application tag "chaikin" (e.g. ~/.config/chaikin/config.nt), then an
optional explicitly named file, and finally overrides set by the host
program (usually from command line flags).

A configuration file may look like this:

	max_generations: 5
	frame_interval: 80ms
	tracing:
	    adapter: go
	    destination: file:///tmp/chaikin.log
	tracelevel:
	    root: Info
	    animation: Debug

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'config'
func tracer() tracing.Trace {
	return tracing.Select("config")
}

// AppTag is used to locate configuration files.
const AppTag = "chaikin"

// Configuration keys.
const (
	KeyMaxGenerations = "max_generations"
	KeyFrameInterval  = "frame_interval"
	KeyPickRadius     = "pick_radius"
	KeyNoticeDuration = "notice_duration"
	KeyExportWidth    = "export.width"
	KeyExportHeight   = "export.height"
	KeyExportDelay    = "export.delay"
	KeyTraceAdapter   = "tracing.adapter"
	KeyTraceDest      = "tracing.destination"
	KeyRootTraceLevel = "tracelevel.root"
)

// ErrConfigFile is returned if an explicitly named configuration file
// cannot be loaded.
var ErrConfigFile = errors.New("cannot load configuration file")

// Settings are the typed values of a configuration.
type Settings struct {
	MaxGenerations int           // subdivision passes precomputed on start
	FrameInterval  time.Duration // time between two animation frames
	PickRadius     float64       // grab distance for dragging control points
	NoticeDuration time.Duration // how long user notices are displayed
	ExportWidth    int           // canvas width for exports, in pixels
	ExportHeight   int           // canvas height for exports, in pixels
	ExportDelay    time.Duration // frame delay of exported animations
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		MaxGenerations: 7,
		FrameInterval:  100 * time.Millisecond,
		PickRadius:     20,
		NoticeDuration: 2 * time.Second,
		ExportWidth:    800,
		ExportHeight:   600,
		ExportDelay:    500 * time.Millisecond,
	}
}

func defaults() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		KeyMaxGenerations: d.MaxGenerations,
		KeyFrameInterval:  d.FrameInterval.String(),
		KeyPickRadius:     d.PickRadius,
		KeyNoticeDuration: d.NoticeDuration.String(),
		KeyExportWidth:    d.ExportWidth,
		KeyExportHeight:   d.ExportHeight,
		KeyExportDelay:    d.ExportDelay.String(),
		KeyTraceAdapter:   "go",
		KeyRootTraceLevel: "Error",
	}
}

// Load creates the application configuration. Defaults are loaded first,
// then configuration files located for AppTag, then filename (if not
// empty). Configuration files are in NestedText format.
func Load(filename string) (*koanfadapter.KConf, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, err
	}
	conf := koanfadapter.New(k, AppTag, []string{"nt"})
	conf.InitDefaults()
	if filename != "" {
		if err := k.Load(file.Provider(filename), koanfadapter.Parser()); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrConfigFile, filename, err)
		}
	}
	return conf, nil
}

// FromConfiguration reads the typed settings from a configuration. Missing
// or unreadable values fall back to the defaults.
func FromConfiguration(conf schuko.Configuration) Settings {
	s := Default()
	s.MaxGenerations = getInt(conf, KeyMaxGenerations, s.MaxGenerations)
	s.FrameInterval = getDuration(conf, KeyFrameInterval, s.FrameInterval)
	s.PickRadius = getFloat(conf, KeyPickRadius, s.PickRadius)
	s.NoticeDuration = getDuration(conf, KeyNoticeDuration, s.NoticeDuration)
	s.ExportWidth = getInt(conf, KeyExportWidth, s.ExportWidth)
	s.ExportHeight = getInt(conf, KeyExportHeight, s.ExportHeight)
	s.ExportDelay = getDuration(conf, KeyExportDelay, s.ExportDelay)
	return s
}

// Values are read as strings: NestedText has no other scalar type.

func getInt(conf schuko.Configuration, key string, deflt int) int {
	v := conf.GetString(key)
	if v == "" {
		return deflt
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		tracer().Errorf("configuration %s: %v", key, err)
		return deflt
	}
	return n
}

func getFloat(conf schuko.Configuration, key string, deflt float64) float64 {
	v := conf.GetString(key)
	if v == "" {
		return deflt
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		tracer().Errorf("configuration %s: %v", key, err)
		return deflt
	}
	return f
}

func getDuration(conf schuko.Configuration, key string, deflt time.Duration) time.Duration {
	v := conf.GetString(key)
	if v == "" {
		return deflt
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		tracer().Errorf("configuration %s: invalid duration %q", key, v)
		return deflt
	}
	return d
}
