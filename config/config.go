// Package config loads the feedback law's gain constants and the speed
// profiler's acceleration ceilings from a YAML file and hot-reloads them
// when the file changes, implementing control.ConstantsProvider and
// control.ProfileLimits. The x/marshaller/yaml package is built around a
// tensor/graph/model value model and has no notion of a plain typed
// struct, so this package talks to gopkg.in/yaml.v3 directly, the same
// library that marshaller wraps. File-change detection is grounded in the
// corpus's use of fsnotify (see niceyeti-tabular's go.mod) rather than a
// polling loop.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/itohio/micromouse-core/control"
)

// Document mirrors the on-disk YAML shape for the tunable constants.
type Document struct {
	Gains struct {
		KPLinear  float32 `yaml:"kp_linear"`
		KDLinear  float32 `yaml:"kd_linear"`
		KPAngular float32 `yaml:"kp_angular"`
		KDAngular float32 `yaml:"kd_angular"`

		KPAngularSide     float32 `yaml:"kp_angular_side"`
		KIAngularSide     float32 `yaml:"ki_angular_side"`
		KPAngularFront    float32 `yaml:"kp_angular_front"`
		KIAngularFront    float32 `yaml:"ki_angular_front"`
		KPAngularDiagonal float32 `yaml:"kp_angular_diagonal"`
		KIAngularDiagonal float32 `yaml:"ki_angular_diagonal"`
	} `yaml:"gains"`

	Profile struct {
		LinearAcceleration float32 `yaml:"linear_acceleration"`
		LinearDeceleration float32 `yaml:"linear_deceleration"`
	} `yaml:"profile"`
}

// Provider loads a Document from disk and serves it as both
// control.ConstantsProvider and control.ProfileLimits, watching the
// source file for changes and reloading on write.
type Provider struct {
	path   string
	log    zerolog.Logger
	mu     sync.RWMutex
	doc    Document
	watcher *fsnotify.Watcher
}

// Load reads path once and starts watching it for subsequent changes. The
// returned Provider's Close stops the watcher.
func Load(path string, log zerolog.Logger) (*Provider, error) {
	p := &Provider{path: path, log: log}
	if err := p.reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	p.watcher = watcher

	go p.watch()
	return p, nil
}

func (p *Provider) reload() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", p.path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config: parse %s: %w", p.path, err)
	}

	p.mu.Lock()
	p.doc = doc
	p.mu.Unlock()
	return nil
}

func (p *Provider) watch() {
	for {
		select {
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := p.reload(); err != nil {
				p.log.Error().Err(err).Str("path", p.path).Msg("config reload failed")
				continue
			}
			p.log.Info().Str("path", p.path).Msg("config reloaded")
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.log.Error().Err(err).Msg("config watcher error")
		}
	}
}

// Close stops the filesystem watcher.
func (p *Provider) Close() error {
	if p.watcher == nil {
		return nil
	}
	return p.watcher.Close()
}

// Get implements control.ConstantsProvider.
func (p *Provider) Get() control.ControlConstants {
	p.mu.RLock()
	defer p.mu.RUnlock()
	g := p.doc.Gains
	return control.ControlConstants{
		KPLinear:          g.KPLinear,
		KDLinear:          g.KDLinear,
		KPAngular:         g.KPAngular,
		KDAngular:         g.KDAngular,
		KPAngularSide:     g.KPAngularSide,
		KIAngularSide:     g.KIAngularSide,
		KPAngularFront:    g.KPAngularFront,
		KIAngularFront:    g.KIAngularFront,
		KPAngularDiagonal: g.KPAngularDiagonal,
		KIAngularDiagonal: g.KIAngularDiagonal,
	}
}

// LinearAcceleration implements control.ProfileLimits.
func (p *Provider) LinearAcceleration() float32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.doc.Profile.LinearAcceleration
}

// LinearDeceleration implements control.ProfileLimits.
func (p *Provider) LinearDeceleration() float32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.doc.Profile.LinearDeceleration
}
