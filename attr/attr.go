// Package attr exposes named textual read/write endpoints for a bound
// device, mirroring a sysfs attribute group. Values carry a trailing
// newline; writes accept a leading integer and ignore trailing bytes.
package attr

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

var ErrNotFound = fmt.Errorf("no such attribute")
var ErrNotReadable = fmt.Errorf("attribute is not readable")
var ErrNotWritable = fmt.Errorf("attribute is not writable")
var ErrDuplicate = fmt.Errorf("attribute already registered")

// Attribute is a single named endpoint. A nil Read makes it write-only,
// a nil Write makes it read-only.
type Attribute struct {
	Name  string
	Read  func(ctx context.Context) (string, error)
	Write func(ctx context.Context, data string) error
}

// Group holds the attributes of one bound device.
type Group struct {
	name  string
	mx    sync.RWMutex
	attrs map[string]Attribute
}

func NewGroup(name string) *Group {
	return &Group{name: name, attrs: make(map[string]Attribute)}
}

func (g *Group) Name() string {
	return g.name
}

func (g *Group) Register(a Attribute) error {
	g.mx.Lock()
	defer g.mx.Unlock()
	if _, ok := g.attrs[a.Name]; ok {
		return fmt.Errorf("attr: %q: %w", a.Name, ErrDuplicate)
	}
	g.attrs[a.Name] = a
	return nil
}

func (g *Group) Read(ctx context.Context, name string) (string, error) {
	g.mx.RLock()
	a, ok := g.attrs[name]
	g.mx.RUnlock()
	if !ok {
		return "", fmt.Errorf("attr: %q: %w", name, ErrNotFound)
	}
	if a.Read == nil {
		return "", fmt.Errorf("attr: %q: %w", name, ErrNotReadable)
	}
	return a.Read(ctx)
}

func (g *Group) Write(ctx context.Context, name, data string) error {
	g.mx.RLock()
	a, ok := g.attrs[name]
	g.mx.RUnlock()
	if !ok {
		return fmt.Errorf("attr: %q: %w", name, ErrNotFound)
	}
	if a.Write == nil {
		return fmt.Errorf("attr: %q: %w", name, ErrNotWritable)
	}
	return a.Write(ctx, data)
}

func (g *Group) Names() []string {
	g.mx.RLock()
	defer g.mx.RUnlock()
	names := make([]string, 0, len(g.attrs))
	for name := range g.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
