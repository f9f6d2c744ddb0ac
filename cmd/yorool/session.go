// ABOUTME: Builds a trace session for a command: the recorder and whichever sinks the config enables.
// ABOUTME: JSONL goes to <trace dir>/trace.jsonl and the SQLite index to <trace dir>/trace.db.
package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/2389-research/yorool/config"
	"github.com/2389-research/yorool/scene"
	"github.com/2389-research/yorool/trace"
)

const (
	jsonlName  = "trace.jsonl"
	sqliteName = "trace.db"
)

// session bundles what a scene-driving command needs.
type session struct {
	recorder *trace.Recorder
	memory   *trace.MemorySink
	jsonl    string
	sqlite   string
}

// traceDir returns the configured trace directory or <dataDir>/traces.
func traceDir(cfg config.Config, dataDir string) string {
	if cfg.Trace.Dir != "" {
		return cfg.Trace.Dir
	}
	return filepath.Join(dataDir, "traces")
}

func openSession(cfg config.Config, dataDir string) (*session, error) {
	s := &session{memory: trace.NewMemorySink(cfg.TUI.LogLines)}
	sinks := []trace.Sink{s.memory}
	dir := traceDir(cfg, dataDir)

	if cfg.Trace.JSONL {
		s.jsonl = filepath.Join(dir, jsonlName)
		sink, err := trace.OpenJSONL(s.jsonl)
		if err != nil {
			return nil, fmt.Errorf("open trace log: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Trace.SQLite {
		s.sqlite = filepath.Join(dir, sqliteName)
		idx, err := trace.OpenSQLite(s.sqlite)
		if err != nil {
			for _, sink := range sinks {
				_ = sink.Close()
			}
			return nil, fmt.Errorf("open trace index: %w", err)
		}
		sinks = append(sinks, idx)
	}

	s.recorder = trace.NewRecorder(sinks...)
	log.Printf("component=cli action=session_opened session=%s jsonl=%q sqlite=%q",
		s.recorder.Session(), s.jsonl, s.sqlite)
	return s, nil
}

// scene builds the demo scene observed by the session.
func (s *session) scene(cfg config.Config) *scene.Scene {
	return scene.New(scene.Options{
		MaxTicks:        cfg.Router.MaxTicks,
		MaxStall:        cfg.Router.MaxStall,
		StrictContracts: cfg.Router.StrictContracts,
		Observer:        s.recorder,
	})
}

func (s *session) Close() error {
	return s.recorder.Close()
}
