// Package assets supplies the claw and eye templates creatures are dressed
// with, and the recolouring rules applied to their copies.
package assets

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Faultbox/creatura/internal/material"
	"github.com/Faultbox/creatura/internal/mesh"
	"github.com/Faultbox/creatura/pkg/math"
)

// Template counts a complete provider must supply.
const (
	ClawCount = 3
	EyeCount  = 4
)

// EyeShellMarker tags the eye sub-material that takes the body colour.
// Matching is by substring so host suffixes such as " (Instance)" still match.
const EyeShellMarker = "EyeShellMaterial"

var (
	// ErrMissingAsset reports an unassigned or absent template.
	ErrMissingAsset = errors.New("missing asset")
	// ErrMissingMarker reports an eye template without an EyeShellMarker material.
	ErrMissingMarker = errors.New("eye template has no marker material")
)

// Placeholder is a primitive stand-in drawn for a surface when the real art
// is not available.
type Placeholder struct {
	Primitive mesh.Primitive `yaml:"primitive"`
	Offset    math.Vec3      `yaml:"offset"`
	Scale     math.Vec3      `yaml:"scale"`
}

// Surface is one renderable part of a template with its material slots.
type Surface struct {
	Name        string
	Materials   []*material.Material
	Placeholder *Placeholder
}

// Template is an authored part that creatures instantiate copies of.
type Template struct {
	Name     string
	Surfaces []Surface
}

// Instantiate returns a deep copy. Materials are cloned so recolouring the
// copy never reaches the template.
func (t *Template) Instantiate() *Template {
	c := &Template{Name: t.Name, Surfaces: make([]Surface, len(t.Surfaces))}
	for i, s := range t.Surfaces {
		cs := Surface{Name: s.Name, Materials: make([]*material.Material, len(s.Materials))}
		for j, m := range s.Materials {
			if m != nil {
				cs.Materials[j] = m.Clone()
			}
		}
		if s.Placeholder != nil {
			p := *s.Placeholder
			cs.Placeholder = &p
		}
		c.Surfaces[i] = cs
	}
	return c
}

// HasMarker reports whether any material name contains marker.
func (t *Template) HasMarker(marker string) bool {
	for _, s := range t.Surfaces {
		for _, m := range s.Materials {
			if m != nil && strings.Contains(m.Name, marker) {
				return true
			}
		}
	}
	return false
}

// RecolorAll points every material slot of every surface at m and returns
// the number of slots replaced.
func RecolorAll(t *Template, m *material.Material) int {
	n := 0
	for i := range t.Surfaces {
		for j := range t.Surfaces[i].Materials {
			t.Surfaces[i].Materials[j] = m
			n++
		}
	}
	return n
}

// RecolorMarked replaces only the slots whose material name contains marker
// and returns how many were replaced. Other slots are left untouched.
func RecolorMarked(t *Template, marker string, m *material.Material) int {
	n := 0
	for i := range t.Surfaces {
		for j, cur := range t.Surfaces[i].Materials {
			if cur != nil && strings.Contains(cur.Name, marker) {
				t.Surfaces[i].Materials[j] = m
				n++
			}
		}
	}
	return n
}

// Provider supplies claw and eye templates in variant order.
type Provider interface {
	Claws() []*Template
	Eyes() []*Template
}

// Validate checks that p supplies every template the composer indexes.
func Validate(p Provider) error {
	if p == nil {
		return fmt.Errorf("%w: no asset provider", ErrMissingAsset)
	}
	if err := checkSet("claw", p.Claws(), ClawCount); err != nil {
		return err
	}
	return checkSet("eye", p.Eyes(), EyeCount)
}

func checkSet(kind string, set []*Template, want int) error {
	if len(set) != want {
		return fmt.Errorf("%w: %d %s templates, want %d", ErrMissingAsset, len(set), kind, want)
	}
	for i, t := range set {
		if t == nil {
			return fmt.Errorf("%w: %s template %d is unassigned", ErrMissingAsset, kind, i)
		}
	}
	return nil
}

// Set is a fixed, validated template set.
type Set struct {
	claws []*Template
	eyes  []*Template
}

// Snapshot copies the templates p supplies now and validates the copy.
// Later changes to p do not reach the returned set.
func Snapshot(p Provider) (*Set, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: no asset provider", ErrMissingAsset)
	}
	s := &Set{
		claws: append([]*Template(nil), p.Claws()...),
		eyes:  append([]*Template(nil), p.Eyes()...),
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Claws implements Provider.
func (s *Set) Claws() []*Template {
	return append([]*Template(nil), s.claws...)
}

// Eyes implements Provider.
func (s *Set) Eyes() []*Template {
	return append([]*Template(nil), s.eyes...)
}

// Manager holds templates loaded from a manifest.
type Manager struct {
	claws []*Template
	eyes  []*Template
	byKey map[string]*Template
	mu    sync.RWMutex
}

// NewManager creates an empty manager. Use Add or Load to fill it.
func NewManager() *Manager {
	return &Manager{byKey: make(map[string]*Template)}
}

// Claws implements Provider.
func (m *Manager) Claws() []*Template {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Template(nil), m.claws...)
}

// Eyes implements Provider.
func (m *Manager) Eyes() []*Template {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Template(nil), m.eyes...)
}

// Template looks a template up by name.
func (m *Manager) Template(name string) (*Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.byKey[name]
	if !ok {
		return nil, fmt.Errorf("%w: template %q", ErrMissingAsset, name)
	}
	return t, nil
}

// AddClaw appends a claw variant.
func (m *Manager) AddClaw(t *Template) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claws = append(m.claws, t)
	m.byKey[t.Name] = t
}

// AddEye appends an eye variant. The template must carry EyeShellMarker.
func (m *Manager) AddEye(t *Template) error {
	if !t.HasMarker(EyeShellMarker) {
		return fmt.Errorf("%w: %s", ErrMissingMarker, t.Name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eyes = append(m.eyes, t)
	m.byKey[t.Name] = t
	return nil
}

// Clear removes every template.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claws = nil
	m.eyes = nil
	m.byKey = make(map[string]*Template)
}
