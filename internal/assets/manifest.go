package assets

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/creatura/internal/material"
	"github.com/Faultbox/creatura/pkg/math"
)

//go:embed builtin.yaml
var builtinManifest []byte

// Manifest is the YAML description of a template set.
type Manifest struct {
	Claws []TemplateEntry `yaml:"claws"`
	Eyes  []TemplateEntry `yaml:"eyes"`
}

// TemplateEntry describes one template in a manifest.
type TemplateEntry struct {
	Name     string         `yaml:"name"`
	Surfaces []SurfaceEntry `yaml:"surfaces"`
}

// SurfaceEntry describes one surface and its authored materials.
type SurfaceEntry struct {
	Name        string          `yaml:"name"`
	Materials   []MaterialEntry `yaml:"materials"`
	Placeholder *Placeholder    `yaml:"placeholder,omitempty"`
}

// MaterialEntry is an authored material: a name and a flat colour.
type MaterialEntry struct {
	Name  string         `yaml:"name"`
	Color material.Color `yaml:"color"`
}

// LoadManifest reads a manifest file into a new manager.
func LoadManifest(path string, shaders material.ShaderLookup) (*Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading asset manifest: %w", err)
	}
	m, err := ParseManifest(data, shaders)
	if err != nil {
		return nil, fmt.Errorf("asset manifest %s: %w", path, err)
	}
	return m, nil
}

// Builtin returns a manager holding the embedded default templates.
func Builtin(shaders material.ShaderLookup) (*Manager, error) {
	return ParseManifest(builtinManifest, shaders)
}

// ParseManifest decodes YAML manifest data and validates the template set.
func ParseManifest(data []byte, shaders material.ShaderLookup) (*Manager, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}

	shader, err := shaders.Find(material.StandardShader)
	if err != nil {
		return nil, err
	}

	mgr := NewManager()
	for _, entry := range manifest.Claws {
		mgr.AddClaw(entry.build(shader))
	}
	for _, entry := range manifest.Eyes {
		if err := mgr.AddEye(entry.build(shader)); err != nil {
			return nil, err
		}
	}
	if err := Validate(mgr); err != nil {
		return nil, err
	}
	return mgr, nil
}

func (entry TemplateEntry) build(shader material.Shader) *Template {
	t := &Template{Name: entry.Name, Surfaces: make([]Surface, 0, len(entry.Surfaces))}
	for _, ss := range entry.Surfaces {
		s := Surface{Name: ss.Name}
		for _, ms := range ss.Materials {
			s.Materials = append(s.Materials, &material.Material{
				Name:   ms.Name,
				Shader: shader,
				Color:  ms.Color,
			})
		}
		if ss.Placeholder != nil {
			p := *ss.Placeholder
			if p.Scale == math.Zero {
				p.Scale = math.One
			}
			s.Placeholder = &p
		}
		t.Surfaces = append(t.Surfaces, s)
	}
	return t
}
