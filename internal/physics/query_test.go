package physics

import (
	"reflect"
	"testing"

	"github.com/tomz197/physics2d/internal/geom"
	"github.com/tomz197/physics2d/internal/storage"
)

func TestObjectsInRange(t *testing.T) {
	w := NewWorld()
	_, inside := Add(w, NewCircle(geom.V(0, 0), 1, 1, 0))
	Add(w, NewCircle(geom.V(10, 0), 1, 1, 0))
	_, plane := Add(w, NewPlane(geom.V(0, 1), -1.5))
	Add(w, NewPlane(geom.V(0, 1), -5))
	_, blast := Add(w, ExplosionBody{Position: geom.V(0, 3), Radius: 1.5})
	_, wind := Add(w, WindZone{Area: geom.NewBound2(geom.V(1.5, -1), geom.V(5, 1))})
	Add(w, FluidZone{Area: geom.NewBound2(geom.V(5, 5), geom.V(6, 6))})

	before := w.SnapshotInto(nil)
	var hits []ShapeLocation
	w.ObjectsInRange(geom.V(0, 0), 2, storage.ConsumerFunc[ShapeLocation](func(l ShapeLocation) {
		hits = append(hits, l)
	}))

	want := map[BodyID]ShapeKind{
		inside: KindCircle,
		plane:  KindPlane,
		blast:  KindExplosion,
		wind:   KindWindZone,
	}
	if len(hits) != len(want) {
		t.Fatalf("hits = %+v, want %d", hits, len(want))
	}
	for _, h := range hits {
		if kind, ok := want[h.ID]; !ok || kind != h.Kind {
			t.Errorf("unexpected hit %v %d", h.Kind, h.ID)
		}
	}

	if after := w.SnapshotInto(nil); !reflect.DeepEqual(before, after) {
		t.Error("query modified the world")
	}
}

func TestObjectsInRangeEmptyWorld(t *testing.T) {
	w := NewWorld()
	out := storage.New[ShapeLocation](0)
	w.ObjectsInRange(geom.V(0, 0), 100, out)
	if out.Len() != 0 {
		t.Errorf("hits = %d, want 0", out.Len())
	}
	for kind, s := range w.stores {
		if s != nil {
			t.Errorf("query created storage for %v", ShapeKind(kind))
		}
	}
}
