package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/tomz197/physics2d/internal/physics"
)

func TestNames(t *testing.T) {
	got := Names()
	want := []string{"billiards", "rain", "sandbox"}
	if !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestLoadBuiltin(t *testing.T) {
	for _, name := range Names() {
		s, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if s.Name != name {
			t.Errorf("Load(%q).Name = %q, want %q", name, s.Name, name)
		}
		w := s.Build(1)
		if got := len(physics.StorageOf[physics.CircleBody](w).Items()); got == 0 {
			t.Errorf("%s: built world has no circles", name)
		}
	}
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(nope) err = %v, want ErrNotFound", err)
	}
}

const minimal = `
name: tiny
gravity: [0, -5]
error_reduction: 0.2
planes:
  - {normal: [0, 2], d: 1}
circles:
  - {position: [1, 2], velocity: [3, 4], radius: 0.5, density: 10, restitution: 0.7}
  - {position: [5, 5], radius: 1, density: 10, restitution: 0, immovable: true, layers: [1, 3]}
`

func TestParseAndBuild(t *testing.T) {
	s, err := Parse([]byte(minimal))
	if err != nil {
		t.Fatal(err)
	}
	cfg := s.Config()
	if cfg.Gravity[1] != -5 || cfg.ErrorReduction != 0.2 {
		t.Errorf("Config() = %+v, want gravity -5 and error reduction 0.2", cfg)
	}
	if cfg.FlairLifetime != physics.DefaultConfig().FlairLifetime {
		t.Errorf("FlairLifetime = %d, want default", cfg.FlairLifetime)
	}

	w := s.Build(0)
	circles := physics.StorageOf[physics.CircleBody](w).Items()
	if len(circles) != 2 {
		t.Fatalf("circles = %d, want 2", len(circles))
	}
	if got := circles[0].Velocity; got[0] != 3 || got[1] != 4 {
		t.Errorf("velocity = %v, want [3 4]", got)
	}
	if !circles[1].Immovable() {
		t.Error("second circle should be immovable")
	}
	if got, want := circles[1].Mask, physics.Layer(1)|physics.Layer(3); got != want {
		t.Errorf("mask = %b, want %b", got, want)
	}
	planes := physics.StorageOf[physics.PlaneBody](w).Items()
	if len(planes) != 1 || planes[0].Plane.Normal[1] != 1 {
		t.Errorf("planes = %+v, want one unit +Y plane", planes)
	}
}

func TestBuildOptionsOverrideScene(t *testing.T) {
	s, err := Parse([]byte(minimal))
	if err != nil {
		t.Fatal(err)
	}
	w := s.Build(0, physics.WithErrorReduction(0.9))
	if got := w.Config().ErrorReduction; got != 0.9 {
		t.Errorf("ErrorReduction = %v, want 0.9", got)
	}
	if got := w.Config().Gravity[1]; got != -5 {
		t.Errorf("gravity = %v, want -5", got)
	}
}

func TestSpawnDeterministic(t *testing.T) {
	s, err := Load("rain")
	if err != nil {
		t.Fatal(err)
	}
	a := physics.StorageOf[physics.CircleBody](s.Build(42)).Items()
	b := physics.StorageOf[physics.CircleBody](s.Build(42)).Items()
	c := physics.StorageOf[physics.CircleBody](s.Build(43)).Items()
	if len(a) != 60 {
		t.Fatalf("spawned = %d, want 60", len(a))
	}
	if !slices.Equal(a, b) {
		t.Error("same seed built different worlds")
	}
	if slices.Equal(a, c) {
		t.Error("different seeds built identical worlds")
	}
	area := s.Spawns[0].Area.Geom()
	for _, body := range a {
		if !area.Contains(body.Position) {
			t.Fatalf("spawn at %v outside %v", body.Position, area)
		}
		if body.Radius < 0.8 || body.Radius > 1.6 {
			t.Fatalf("radius = %v, want within [0.8, 1.6]", body.Radius)
		}
		if body.Rotation < 0 || body.Rotation >= 2*math.Pi {
			t.Fatalf("rotation = %v, want within [0, 2π)", body.Rotation)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no name", "gravity: [0, 1]"},
		{"bad radius", "name: x\ncircles: [{position: [0, 0], radius: 0, density: 1}]"},
		{"zero normal", "name: x\nplanes: [{normal: [0, 0], d: 0}]"},
		{"flat wind", "name: x\nwinds: [{area: {min: [0, 0], max: [1, 0]}, direction: [1, 0]}]"},
		{"still wind", "name: x\nwinds: [{area: {min: [0, 0], max: [1, 1]}, direction: [0, 0]}]"},
		{"flat fluid", "name: x\nfluids: [{area: {min: [0, 0], max: [0, 1]}, density: 1}]"},
		{"explosion radius", "name: x\nexplosions: [{position: [0, 0], radius: -1, force: 1, interval: 1}]"},
		{"spawn range", "name: x\nspawn: [{count: 1, area: {min: [0, 0], max: [1, 1]}, radius: [2, 1]}]"},
		{"spawn count", "name: x\nspawn: [{count: -1, area: {min: [0, 0], max: [1, 1]}, radius: [1, 1]}]"},
		{"error reduction", "name: x\nerror_reduction: 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("name: [unterminated"))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("Parse err = %v, want decode error", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	if err := os.WriteFile(path, []byte(minimal), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "tiny" {
		t.Errorf("Name = %q, want tiny", s.Name)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile(missing) err = nil, want error")
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.yml")
	if err := os.WriteFile(path, []byte(minimal), 0o644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		ref  string
		want string
	}{
		{"rain", "rain"},
		{path, "tiny"},
	}
	for _, tt := range tests {
		s, err := Open(tt.ref)
		if err != nil {
			t.Fatalf("Open(%q) err = %v", tt.ref, err)
		}
		if s.Name != tt.want {
			t.Errorf("Open(%q).Name = %q, want %q", tt.ref, s.Name, tt.want)
		}
	}
	if _, err := Open("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open(nope) err = %v, want ErrNotFound", err)
	}
}

func TestViewBoxDefault(t *testing.T) {
	s := &Scene{Name: "x"}
	if got, want := s.ViewBox(), DefaultView.Geom(); got != want {
		t.Errorf("ViewBox() = %v, want %v", got, want)
	}
}
