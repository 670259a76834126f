package config

import (
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// SetupTracing installs trace2go as the global trace selector, configured
// from conf. The adapter is chosen by key "tracing.adapter" ("go" or
// "logrus"), trace levels by keys "tracelevel.<tracer>", and the output
// by "tracing.destination".
//
// The returned function detaches all tracers again.
func SetupTracing(conf schuko.Configuration) (func(), error) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tracing.RegisterTraceAdapter("logrus", logrusadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return func() {}, err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("tracing with adapter %q", conf.GetString(KeyTraceAdapter))
	return trace2go.Teardown, nil
}
