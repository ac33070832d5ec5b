// Package render defines the backend-neutral drawing contract for diceplot.
//
// # Overview
//
// Layout engines (dice, domino) emit a [Scene]: a flat list of rectangles,
// markers, ticks, and legend entries with figure extents. A [Backend] turns a
// Scene into a [Figure] that can be saved or shown. The core never touches a
// backend's drawing API; it depends only on this contract.
//
// # Backend Selection
//
// Backends register themselves at init time (import them for side effects,
// like image format decoders):
//
//	import (
//	    _ "github.com/maflot/diceplot/pkg/render/raster"
//	    _ "github.com/maflot/diceplot/pkg/render/svg"
//	)
//
// The process-wide default is selected with [Use]:
//
//	if err := render.Use("raster"); err != nil { ... }
//	fig, err := render.Current().Render(scene)
package render

import (
	"slices"
	"sync"

	"github.com/maflot/diceplot/pkg/errors"
)

// Backend renders a Scene into a Figure.
type Backend interface {
	// Name is the registry key ("svg", "raster").
	Name() string

	// Render draws the scene and returns a figure handle.
	Render(scene Scene) (Figure, error)
}

// DefaultBackend is used until Use selects another one.
const DefaultBackend = "svg"

var registry = struct {
	sync.RWMutex
	backends map[string]Backend
	current  string
}{
	backends: make(map[string]Backend),
	current:  DefaultBackend,
}

// Register makes a backend selectable by name. Later registrations with the
// same name replace earlier ones.
func Register(b Backend) {
	registry.Lock()
	defer registry.Unlock()
	registry.backends[b.Name()] = b
}

// Use selects the process-wide backend for subsequent Current calls.
func Use(name string) error {
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.backends[name]; !ok {
		return errors.New(errors.ErrCodeInvalidBackend,
			"unknown backend: %q (have %v)", name, namesLocked())
	}
	registry.current = name
	return nil
}

// Current returns the selected backend, or nil if none is registered.
func Current() Backend {
	registry.RLock()
	defer registry.RUnlock()
	return registry.backends[registry.current]
}

// Get returns a backend by name.
func Get(name string) (Backend, error) {
	registry.RLock()
	defer registry.RUnlock()
	b, ok := registry.backends[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidBackend,
			"unknown backend: %q (have %v)", name, namesLocked())
	}
	return b, nil
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	registry.RLock()
	defer registry.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry.backends))
	for n := range registry.backends {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
