// Package scene loads simulation setups from YAML and builds worlds from
// them.
package scene

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/physics2d/internal/geom"
)

//go:embed scenes/*.yaml
var builtin embed.FS

var (
	// ErrNotFound is returned by Load for unknown scene names.
	ErrNotFound = errors.New("scene not found")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid scene")
)

// Vec is a YAML [x, y] pair.
type Vec [2]float64

func (v Vec) Geom() geom.Vec2 { return geom.V(v[0], v[1]) }

// Box is a YAML axis-aligned box.
type Box struct {
	Min Vec `yaml:"min"`
	Max Vec `yaml:"max"`
}

func (b Box) Geom() geom.Bound2 { return geom.NewBound2(b.Min.Geom(), b.Max.Geom()) }

// Range is a YAML [lo, hi] pair.
type Range [2]float64

// Scene describes the initial contents of a world.
type Scene struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description,omitempty"`
	View           *Box     `yaml:"view,omitempty"`
	Gravity        *Vec     `yaml:"gravity,omitempty"`
	ErrorReduction *float64 `yaml:"error_reduction,omitempty"`
	FlairLifetime  *int     `yaml:"flair_lifetime,omitempty"`

	Circles    []Circle    `yaml:"circles,omitempty"`
	Planes     []Plane     `yaml:"planes,omitempty"`
	Winds      []Wind      `yaml:"winds,omitempty"`
	Fluids     []Fluid     `yaml:"fluids,omitempty"`
	Explosions []Explosion `yaml:"explosions,omitempty"`
	Spawns     []Spawn     `yaml:"spawn,omitempty"`
}

type Circle struct {
	Position    Vec     `yaml:"position"`
	Velocity    Vec     `yaml:"velocity,omitempty"`
	Radius      float64 `yaml:"radius"`
	Density     float64 `yaml:"density"`
	Restitution float64 `yaml:"restitution"`
	SkipFrames  int     `yaml:"skip_frames,omitempty"`
	Immovable   bool    `yaml:"immovable,omitempty"`
	Layers      []uint  `yaml:"layers,omitempty"`
}

type Plane struct {
	Normal Vec     `yaml:"normal"`
	D      float64 `yaml:"d"`
	Layers []uint  `yaml:"layers,omitempty"`
}

type Turbulence struct {
	Angle     float64 `yaml:"angle"`
	Intensity float64 `yaml:"intensity"`
	Scale     Vec     `yaml:"scale"`
	Depth     float64 `yaml:"depth"`
	Seed      int64   `yaml:"seed"`
}

type Wind struct {
	Area       Box         `yaml:"area"`
	Direction  Vec         `yaml:"direction"`
	Speed      float64     `yaml:"speed"`
	Drag       float64     `yaml:"drag"`
	Density    float64     `yaml:"density"`
	Turbulence *Turbulence `yaml:"turbulence,omitempty"`
}

type Fluid struct {
	Area    Box     `yaml:"area"`
	Density float64 `yaml:"density"`
}

type Explosion struct {
	Position Vec     `yaml:"position"`
	Radius   float64 `yaml:"radius"`
	Force    float64 `yaml:"force"`
	Interval float64 `yaml:"interval"`
}

// Spawn scatters Count random circles over Area.
type Spawn struct {
	Count       int     `yaml:"count"`
	Area        Box     `yaml:"area"`
	Radius      Range   `yaml:"radius"`
	Density     float64 `yaml:"density"`
	Restitution float64 `yaml:"restitution"`
	Velocity    Vec     `yaml:"velocity,omitempty"`
	Jitter      float64 `yaml:"jitter,omitempty"` // random extra speed per axis
}

// DefaultView is used by scenes that do not declare a view.
var DefaultView = Box{Min: Vec{-60, 0}, Max: Vec{60, 80}}

// ViewBox returns the region a viewer should frame.
func (s *Scene) ViewBox() geom.Bound2 {
	if s.View == nil {
		return DefaultView.Geom()
	}
	return s.View.Geom()
}

// Names lists the built-in scenes.
func Names() []string {
	entries, err := fs.ReadDir(builtin, "scenes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	slices.Sort(names)
	return names
}

// Load parses the built-in scene with the given name.
func Load(name string) (*Scene, error) {
	data, err := builtin.ReadFile("scenes/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, ErrNotFound)
	}
	return Parse(data)
}

// LoadFile parses a scene from a YAML file on disk.
func LoadFile(filename string) (*Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// Open loads ref as a file when it names a YAML file, and as a built-in
// scene otherwise.
func Open(ref string) (*Scene, error) {
	switch path.Ext(ref) {
	case ".yaml", ".yml":
		return LoadFile(ref)
	}
	return Load(ref)
}

// Parse decodes and validates a YAML scene.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate reports the first problem that would make the scene unusable.
func (s *Scene) Validate() error {
	if s.Name == "" {
		return invalid("missing name")
	}
	if s.View != nil && !s.View.Geom().HasArea() {
		return invalid("%s: view has no area", s.Name)
	}
	if s.ErrorReduction != nil && (*s.ErrorReduction < 0 || *s.ErrorReduction > 1) {
		return invalid("%s: error_reduction %v outside [0, 1]", s.Name, *s.ErrorReduction)
	}
	for i, c := range s.Circles {
		if c.Radius <= 0 {
			return invalid("%s: circle %d: radius %v", s.Name, i, c.Radius)
		}
		if c.Density < 0 || c.SkipFrames < 0 {
			return invalid("%s: circle %d: negative density or skip_frames", s.Name, i)
		}
	}
	for i, p := range s.Planes {
		if p.Normal == (Vec{}) {
			return invalid("%s: plane %d: zero normal", s.Name, i)
		}
	}
	for i, w := range s.Winds {
		if !w.Area.Geom().HasArea() {
			return invalid("%s: wind %d: area has no extent", s.Name, i)
		}
		if w.Direction == (Vec{}) {
			return invalid("%s: wind %d: zero direction", s.Name, i)
		}
	}
	for i, f := range s.Fluids {
		if !f.Area.Geom().HasArea() {
			return invalid("%s: fluid %d: area has no extent", s.Name, i)
		}
	}
	for i, e := range s.Explosions {
		if e.Radius <= 0 || e.Interval < 0 {
			return invalid("%s: explosion %d: radius %v interval %v", s.Name, i, e.Radius, e.Interval)
		}
	}
	for i, sp := range s.Spawns {
		if sp.Count < 0 {
			return invalid("%s: spawn %d: negative count", s.Name, i)
		}
		if sp.Radius[0] <= 0 || sp.Radius[1] < sp.Radius[0] {
			return invalid("%s: spawn %d: radius range %v", s.Name, i, sp.Radius)
		}
		if !sp.Area.Geom().HasArea() {
			return invalid("%s: spawn %d: area has no extent", s.Name, i)
		}
	}
	return nil
}
