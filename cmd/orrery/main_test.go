package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/engine"
)

func TestViewerOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.View.FPS = 24
	cfg.Clock.InitialSpeed = 5
	cfg.Clock.StartPaused = true
	cfg.View.ShowInfo = true

	opts := viewerOptions(cfg, false, 50)
	if opts.FPS != 24 || opts.InitialSpeed != 5 || !opts.StartPaused || !opts.ShowInfo {
		t.Errorf("Options not mapped: %+v", opts)
	}
	if opts.MaxFrames != 0 {
		t.Errorf("Frame cap applies to headless only, got %d", opts.MaxFrames)
	}
	if opts.Camera != cfg.CameraSettings() {
		t.Errorf("Camera settings not carried: %+v", opts.Camera)
	}

	if got := viewerOptions(cfg, true, 50).MaxFrames; got != 50 {
		t.Errorf("Expected headless frame cap 50, got %d", got)
	}
}

func TestDefaultConfigMatchesViewerDefaults(t *testing.T) {
	got := viewerOptions(config.Default(), false, 0)
	want := engine.DefaultOptions()
	if got != want {
		t.Errorf("Default config options %+v differ from engine defaults %+v", got, want)
	}
}

func TestNewLoggerSinks(t *testing.T) {
	cfg := config.Default()

	log, f, err := newLogger(cfg, false, true)
	if err != nil || log == nil || f != nil {
		t.Errorf("Headless logger should go to stderr without a file: %v %v", f, err)
	}

	log, f, err = newLogger(cfg, false, false)
	if err != nil || log == nil || f != nil {
		t.Errorf("Interactive logger without debug should discard: %v %v", f, err)
	}

	// Debug mode writes under the working directory
	wd, _ := os.Getwd()
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	_, f, err = newLogger(cfg, true, false)
	if err != nil {
		t.Fatalf("Debug logger failed: %v", err)
	}
	defer f.Close()
	if _, err := os.Stat(filepath.Join(dir, "logs", "orrery.log")); err != nil {
		t.Errorf("Expected log file: %v", err)
	}
}
