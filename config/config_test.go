package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	return home
}

func TestFromConfigurationDefaults(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := FromConfiguration(testconfig.Conf{})
	assert.Equal(t, Default(), s)
	assert.Equal(t, 7, s.MaxGenerations)
	assert.Equal(t, 100*time.Millisecond, s.FrameInterval)
}

func TestFromConfigurationValues(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	conf := testconfig.Conf{
		KeyMaxGenerations: "5",
		KeyFrameInterval:  "40ms",
		KeyPickRadius:     "2.5",
		KeyExportWidth:    320,
		KeyExportDelay:    "1s",
	}
	s := FromConfiguration(conf)
	assert.Equal(t, 5, s.MaxGenerations)
	assert.Equal(t, 40*time.Millisecond, s.FrameInterval)
	assert.Equal(t, 2.5, s.PickRadius)
	assert.Equal(t, 320, s.ExportWidth)
	assert.Equal(t, 600, s.ExportHeight)
	assert.Equal(t, time.Second, s.ExportDelay)
}

func TestFromConfigurationInvalidValues(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	conf := testconfig.Conf{
		KeyMaxGenerations: "many",
		KeyFrameInterval:  "-3s",
		KeyPickRadius:     "near",
		KeyNoticeDuration: "soon",
	}
	assert.Equal(t, Default(), FromConfiguration(conf))
}

func TestLoadDefaults(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	isolateHome(t)
	conf, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, "go", conf.GetString(KeyTraceAdapter))
	assert.Equal(t, Default(), FromConfiguration(conf))
}

func TestLoadLocatedFile(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	home := isolateHome(t)
	dir := filepath.Join(home, ".config", AppTag)
	assert.NoError(t, os.MkdirAll(dir, 0o755))
	nt := "max_generations: 4\nframe_interval: 250ms\n"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "config.nt"), []byte(nt), 0o644))
	conf, err := Load("")
	assert.NoError(t, err)
	s := FromConfiguration(conf)
	assert.Equal(t, 4, s.MaxGenerations)
	assert.Equal(t, 250*time.Millisecond, s.FrameInterval)
	assert.Equal(t, 20.0, s.PickRadius)
}

func TestLoadExplicitFileAndOverride(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	isolateHome(t)
	fname := filepath.Join(t.TempDir(), "anim.nt")
	nt := "pick_radius: 3\nexport:\n    width: 64\n    height: 48\n"
	assert.NoError(t, os.WriteFile(fname, []byte(nt), 0o644))
	conf, err := Load(fname)
	assert.NoError(t, err)
	conf.Set(KeyMaxGenerations, 2)
	s := FromConfiguration(conf)
	assert.Equal(t, 3.0, s.PickRadius)
	assert.Equal(t, 64, s.ExportWidth)
	assert.Equal(t, 48, s.ExportHeight)
	assert.Equal(t, 2, s.MaxGenerations)
}

func TestLoadMissingFile(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	isolateHome(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.nt"))
	assert.True(t, errors.Is(err, ErrConfigFile))
}

func TestSetupTracing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	conf := testconfig.Conf{
		KeyTraceAdapter:       "go",
		KeyRootTraceLevel:     "Info",
		"tracelevel.chaikin":  "Debug",
		"tracing.destination": "Stderr",
	}
	untrace, err := SetupTracing(conf)
	assert.NoError(t, err)
	defer untrace()
	assert.Equal(t, tracing.LevelDebug, tracing.Select("chaikin").GetTraceLevel())
	assert.Equal(t, tracing.LevelInfo, tracing.Select("root").GetTraceLevel())
}
