package physics

// Snapshot is a copy of the world's bodies for readers on other goroutines.
type Snapshot struct {
	Tick    uint64
	Elapsed float64
	Config  Config

	Circles    []CircleBody
	Planes     []PlaneBody
	Explosions []ExplosionBody
	Winds      []WindZone
	Fluids     []FluidZone
	Flairs     []ContactFlair
}

// Count returns the number of bodies of kind in the snapshot.
func (s *Snapshot) Count(kind ShapeKind) int {
	switch kind {
	case KindCircle:
		return len(s.Circles)
	case KindPlane:
		return len(s.Planes)
	case KindExplosion:
		return len(s.Explosions)
	case KindWindZone:
		return len(s.Winds)
	case KindFluidZone:
		return len(s.Fluids)
	default:
		return 0
	}
}

// SnapshotInto copies the world into dst, reusing its slices, and returns
// dst. A nil dst allocates a new snapshot.
func (w *World) SnapshotInto(dst *Snapshot) *Snapshot {
	if dst == nil {
		dst = &Snapshot{}
	}
	dst.Tick = w.tick
	dst.Elapsed = w.elapsed
	dst.Config = w.cfg
	dst.Circles = copyInto(dst.Circles, existing[CircleBody](w))
	dst.Planes = copyInto(dst.Planes, existing[PlaneBody](w))
	dst.Explosions = copyInto(dst.Explosions, existing[ExplosionBody](w))
	dst.Winds = copyInto(dst.Winds, existing[WindZone](w))
	dst.Fluids = copyInto(dst.Fluids, existing[FluidZone](w))
	dst.Flairs = copyInto(dst.Flairs, w.flairs.Items())
	return dst
}

func copyInto[T any](dst, src []T) []T {
	if cap(dst) < len(src) {
		dst = make([]T, len(src))
	}
	dst = dst[:len(src)]
	copy(dst, src)
	return dst
}
