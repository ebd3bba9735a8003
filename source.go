package quadsplit

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownSource indicates a source name with no registered Pixmap.
var ErrUnknownSource = errors.New("quadsplit: unknown source")

// Sources is a registry of named image sources selectable for decomposition.
//
// A host typically registers its decoded images once at startup and then
// switches the engine between them by name. Registration and lookup are safe
// for concurrent use; the Pixmaps themselves are immutable.
type Sources struct {
	mu     sync.RWMutex
	byName map[string]*Pixmap
	order  []string
}

// NewSources creates an empty source registry.
func NewSources() *Sources {
	return &Sources{byName: make(map[string]*Pixmap)}
}

// Register adds a named source. Registering an existing name replaces its
// buffer but keeps its position in Names.
func (s *Sources) Register(name string, p *Pixmap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[name]; !ok {
		s.order = append(s.order, name)
	}
	s.byName[name] = p
}

// Lookup returns the buffer registered under name.
func (s *Sources) Lookup(name string) (*Pixmap, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byName[name]
	return p, ok
}

// Names returns the registered source names in registration order.
func (s *Sources) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// SelectSource switches the engine to the named source: the entire current
// decomposition is discarded and the engine restarts from a single root
// fragment covering the new buffer.
//
// The switch is atomic from the engine's point of view: it either fully
// happens or, on ErrUnknownSource or ErrInvalidBuffer, leaves the previous
// decomposition untouched. Callers rendering from snapshots observe the
// switch as a wholesale replacement of the fragment set, never an
// incremental mix of old and new fragments.
func (e *Engine) SelectSource(s *Sources, name string) error {
	p, ok := s.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	if err := e.Reset(p); err != nil {
		return err
	}
	Logger().Info("quadsplit: source selected", "name", name)
	return nil
}
