package physics

import (
	"github.com/tomz197/physics2d/internal/geom"
	"github.com/tomz197/physics2d/internal/storage"
)

var (
	queryCircles    = CircleCircle{Require: geom.IntersectAny, Mask: MaskNone}
	queryPlanes     = CirclePlane{Mask: MaskNone}
	queryExplosions = CircleExplosion{}
	queryWinds      = CircleBounds[WindZone, *WindZone]{}
	queryFluids     = CircleBounds[FluidZone, *FluidZone]{}
)

// ObjectsInRange reports every body touching the circle of radius around
// pos. Each contact is oriented from the probe towards the body. The world
// is not modified.
func (w *World) ObjectsInRange(pos geom.Vec2, radius float64, out storage.Consumer[ShapeLocation]) {
	probe := CircleBody{Transform2D: Transform2D{Position: pos}, Radius: radius}
	probeKind[CircleBody](w, &probe, queryCircles, out)
	probeKind[PlaneBody](w, &probe, queryPlanes, out)
	probeKind[ExplosionBody](w, &probe, queryExplosions, out)
	probeKind[WindZone](w, &probe, queryWinds, out)
	probeKind[FluidZone](w, &probe, queryFluids, out)
}

func probeKind[T any, P BodyPtr[T]](w *World, probe *CircleBody, gen ContactGenerator[CircleBody, T], out storage.Consumer[ShapeLocation]) {
	items := existing[T, P](w)
	for i := range items {
		b := P(&items[i])
		if c, ok := TryGenerate(gen, probe, &items[i]); ok {
			out.Accept(ShapeLocation{Kind: b.Kind(), ID: *b.identity(), Contact: c})
		}
	}
}
