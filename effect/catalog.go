package effect

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/botview/parameter"
	"github.com/lixenwraith/botview/surface"
)

// ErrUnknownKind is returned when an effect kind is not in the catalog
var ErrUnknownKind = errors.New("effect: unknown kind")

//go:embed effects.yaml
var defaultCatalogYAML []byte

// Frame is one animation frame: a glyph painted through the kind's shape
type Frame struct {
	Glyph rune
	Color tcell.Color
}

// Spec describes one effect kind
type Spec struct {
	Kind   string
	Width  int
	Height int
	FPS    float64
	Loop   bool
	Layer  int
	Shape  surface.Shape
	Frames []Frame
}

// Catalog is the immutable set of known effect kinds
type Catalog struct {
	specs map[string]Spec
}

type catalogFile struct {
	Kinds map[string]kindSpec `yaml:"kinds"`
}

type kindSpec struct {
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	FPS    float64     `yaml:"fps"`
	Loop   bool        `yaml:"loop"`
	Layer  int         `yaml:"layer"`
	Shape  string      `yaml:"shape"`
	Frames []frameSpec `yaml:"frames"`
}

type frameSpec struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

var shapeNames = map[string]surface.Shape{
	"":        surface.ShapeFill,
	"fill":    surface.ShapeFill,
	"ellipse": surface.ShapeEllipse,
	"flame":   surface.ShapeFlame,
	"ring":    surface.ShapeRing,
}

// DefaultCatalog returns the embedded catalog
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("effect: embedded catalog: %v", err))
	}
	return c
}

// ParseCatalog decodes and validates catalog YAML
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("effect: unmarshal catalog: %w", err)
	}

	c := &Catalog{specs: make(map[string]Spec, len(file.Kinds))}
	for kind, ks := range file.Kinds {
		spec, err := ks.build(kind)
		if err != nil {
			return nil, err
		}
		c.specs[kind] = spec
	}
	return c, nil
}

// LoadCatalog returns the embedded catalog with kinds from path merged over it
// An empty path returns the embedded catalog
func LoadCatalog(path string) (*Catalog, error) {
	base := DefaultCatalog()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("effect: load catalog %s: %w", path, err)
	}
	override, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("effect: catalog %s: %w", path, err)
	}
	return base.Merge(override), nil
}

func (ks kindSpec) build(kind string) (Spec, error) {
	if ks.Width <= 0 || ks.Height <= 0 {
		return Spec{}, fmt.Errorf("effect: kind %s: size %dx%d must be positive", kind, ks.Width, ks.Height)
	}
	if ks.FPS < 0 {
		return Spec{}, fmt.Errorf("effect: kind %s: negative fps %v", kind, ks.FPS)
	}
	if len(ks.Frames) == 0 {
		return Spec{}, fmt.Errorf("effect: kind %s: no frames", kind)
	}
	shape, ok := shapeNames[strings.ToLower(ks.Shape)]
	if !ok {
		return Spec{}, fmt.Errorf("effect: kind %s: unknown shape %q", kind, ks.Shape)
	}

	layer := ks.Layer
	if layer == 0 {
		layer = parameter.LayerSprite
	}

	spec := Spec{
		Kind:   kind,
		Width:  ks.Width,
		Height: ks.Height,
		FPS:    ks.FPS,
		Loop:   ks.Loop,
		Layer:  layer,
		Shape:  shape,
		Frames: make([]Frame, 0, len(ks.Frames)),
	}
	for i, fs := range ks.Frames {
		if utf8.RuneCountInString(fs.Glyph) != 1 {
			return Spec{}, fmt.Errorf("effect: kind %s frame %d: glyph %q must be one rune", kind, i, fs.Glyph)
		}
		glyph, _ := utf8.DecodeRuneInString(fs.Glyph)
		color := tcell.ColorDefault
		if fs.Color != "" && fs.Color != "default" {
			color = tcell.GetColor(fs.Color)
			if color == tcell.ColorDefault {
				return Spec{}, fmt.Errorf("effect: kind %s frame %d: unknown color %q", kind, i, fs.Color)
			}
		}
		spec.Frames = append(spec.Frames, Frame{Glyph: glyph, Color: color})
	}
	return spec, nil
}

// Lookup returns the spec for kind
func (c *Catalog) Lookup(kind string) (Spec, error) {
	spec, ok := c.specs[kind]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return spec, nil
}

// Merge returns a new catalog with the kinds of o replacing those of c
func (c *Catalog) Merge(o *Catalog) *Catalog {
	out := &Catalog{specs: maps.Clone(c.specs)}
	maps.Copy(out.specs, o.specs)
	return out
}

// Kinds returns the known kinds in sorted order
func (c *Catalog) Kinds() []string {
	return slices.Sorted(maps.Keys(c.specs))
}

// Len returns the number of kinds
func (c *Catalog) Len() int {
	return len(c.specs)
}
