// Package physics is a fixed-step 2D rigid body simulator for circles,
// static planes, force zones, and explosions.
//
// A World owns every body in one dense storage per kind. Bodies are plain
// values; callers hold them only by index or BodyID across ticks, since
// storage may move when it grows.
package physics

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/physics2d/internal/geom"
	"github.com/tomz197/physics2d/internal/storage"
)

// BodyPtr is satisfied by pointers to every body type.
type BodyPtr[T any] interface {
	*T
	Kind() ShapeKind
	identity() *BodyID
}

// World is a single-threaded simulation. None of its methods are safe for
// concurrent use.
type World struct {
	cfg Config
	log *log.Logger

	stores [kindCount]any
	ids    map[BodyID]ShapeKind
	nextID BodyID

	circleContacts *storage.Storage[BodyContact]
	planeContacts  *storage.Storage[BodyContact]
	flairs         *storage.Storage[ContactFlair]
	blasts         []ExplosionBody

	tick    uint64
	elapsed float64
}

// NewWorld returns an empty world using DefaultConfig adjusted by opts.
func NewWorld(opts ...Option) *World {
	w := &World{
		cfg:            DefaultConfig(),
		log:            log.New(io.Discard),
		ids:            make(map[BodyID]ShapeKind),
		nextID:         1,
		circleContacts: storage.New[BodyContact](0),
		planeContacts:  storage.New[BodyContact](0),
		flairs:         storage.New[ContactFlair](0),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Config returns the current configuration.
func (w *World) Config() Config { return w.cfg }

// SetConfig replaces the configuration; it takes effect on the next tick.
func (w *World) SetConfig(cfg Config) { w.cfg = cfg }

// Tick returns the number of completed FixedUpdate calls that advanced time.
func (w *World) Tick() uint64 { return w.tick }

// Elapsed returns the simulated seconds so far, after time scaling.
func (w *World) Elapsed() float64 { return w.elapsed }

// Flairs returns the live contact flairs. The slice aliases world storage.
func (w *World) Flairs() []ContactFlair { return w.flairs.Items() }

// CircleContacts returns the circle-circle contacts of the last tick.
func (w *World) CircleContacts() []BodyContact { return w.circleContacts.Items() }

// PlaneContacts returns the circle-plane contacts of the last tick.
func (w *World) PlaneContacts() []BodyContact { return w.planeContacts.Items() }

// StorageOf returns the storage for T, creating it on first use.
func StorageOf[T any, P BodyPtr[T]](w *World) *storage.Storage[T] {
	var zero T
	kind := P(&zero).Kind()
	if s, ok := w.stores[kind].(*storage.Storage[T]); ok {
		return s
	}
	s := storage.New[T](0)
	w.stores[kind] = s
	return s
}

// existing returns the bodies of type T without creating a storage.
func existing[T any, P BodyPtr[T]](w *World) []T {
	var zero T
	if s, ok := w.stores[P(&zero).Kind()].(*storage.Storage[T]); ok {
		return s.Items()
	}
	return nil
}

// Add copies value into the world and returns a pointer to the stored body
// with its id. A zero id in value is replaced by a fresh one; a caller
// supplied id must be unique or Add panics. The pointer is valid until the
// next Add of the same kind.
func Add[T any, P BodyPtr[T]](w *World, value T) (*T, BodyID) {
	p := P(&value)
	id := *p.identity()
	if id == 0 {
		id = w.nextID
		w.nextID++
	} else {
		if kind, dup := w.ids[id]; dup {
			panic(fmt.Sprintf("physics: duplicate body id %d (already a %v)", id, kind))
		}
		if id >= w.nextID {
			w.nextID = id + 1
		}
	}
	*p.identity() = id
	w.ids[id] = p.Kind()

	slot := StorageOf[T, P](w).Add()
	*slot = value
	w.log.Debug("body added", "kind", p.Kind(), "id", id)
	return slot, id
}

// New appends a zero body of type T with a fresh id.
func New[T any, P BodyPtr[T]](w *World) (*T, BodyID) {
	var zero T
	return Add[T, P](w, zero)
}

// IndexOf returns the storage index of the body with id, or -1.
func IndexOf[T any, P BodyPtr[T]](w *World, id BodyID) int {
	items := existing[T, P](w)
	for i := range items {
		if *P(&items[i]).identity() == id {
			return i
		}
	}
	return -1
}

// Find returns the body of type T with id, or nil.
func Find[T any, P BodyPtr[T]](w *World, id BodyID) *T {
	i := IndexOf[T, P](w, id)
	if i < 0 {
		return nil
	}
	return StorageOf[T, P](w).Get(i)
}

// KindOf returns the kind of the body with id.
func (w *World) KindOf(id BodyID) (ShapeKind, bool) {
	k, ok := w.ids[id]
	return k, ok
}

// BodyList is a kind-agnostic view of one storage.
type BodyList interface {
	Kind() ShapeKind
	Len() int
	IDAt(i int) BodyID
}

type bodyList[T any, P BodyPtr[T]] struct {
	s *storage.Storage[T]
}

func (l bodyList[T, P]) Kind() ShapeKind {
	var zero T
	return P(&zero).Kind()
}

func (l bodyList[T, P]) Len() int { return l.s.Len() }
func (l bodyList[T, P]) IDAt(i int) BodyID { return *P(l.s.Get(i)).identity() }

// KindStorage returns the storage for kind. It panics for kinds that have
// no body type.
func (w *World) KindStorage(kind ShapeKind) BodyList {
	switch kind {
	case KindCircle:
		return bodyList[CircleBody, *CircleBody]{StorageOf[CircleBody](w)}
	case KindPlane:
		return bodyList[PlaneBody, *PlaneBody]{StorageOf[PlaneBody](w)}
	case KindExplosion:
		return bodyList[ExplosionBody, *ExplosionBody]{StorageOf[ExplosionBody](w)}
	case KindWindZone:
		return bodyList[WindZone, *WindZone]{StorageOf[WindZone](w)}
	case KindFluidZone:
		return bodyList[FluidZone, *FluidZone]{StorageOf[FluidZone](w)}
	default:
		panic(fmt.Sprintf("physics: no storage for kind %v", kind))
	}
}

// Detonate queues a one-off blast that pushes circles on the next tick.
func (w *World) Detonate(pos geom.Vec2, radius, force float64) {
	w.blasts = append(w.blasts, ExplosionBody{Position: pos, Radius: radius, Force: force, ShouldApply: true})
}

// FixedUpdate advances the simulation by dt seconds scaled by
// Config.TimeScale. Zones push first, then bodies integrate, then contacts
// are rebuilt and resolved. A non-positive step does nothing.
func (w *World) FixedUpdate(dt float64) {
	if w.cfg.TimeScale > 0 {
		dt *= w.cfg.TimeScale
	}
	if !(dt > 0) {
		return
	}
	circles := StorageOf[CircleBody](w).Items()

	w.applyForces(circles, dt)

	for i := range circles {
		integrate(&circles[i], dt, &w.cfg)
	}

	w.circleContacts.Clear()
	w.planeContacts.Clear()
	circleGen := CircleCircle{RequireSharedTrajectory: true, Require: geom.Cuts, Mask: w.cfg.CollisionFilter}
	GenerateSelf(circleGen, circles, w.circleContacts)
	GenerateCross(CirclePlane{Mask: w.cfg.CollisionFilter}, circles, existing[PlaneBody](w), w.planeContacts)

	w.ageFlairs()
	w.solveCircles(circles)
	w.solvePlanes(circles)

	w.tick++
	w.elapsed += dt
}

// applyForces runs zones, periodic explosions, and queued blasts.
func (w *World) applyForces(circles []CircleBody, dt float64) {
	winds := existing[WindZone](w)
	for i := range winds {
		winds[i].advance(dt)
		applyZone(&winds[i], circles, &w.cfg)
	}
	fluids := existing[FluidZone](w)
	for i := range fluids {
		applyZone(&fluids[i], circles, &w.cfg)
	}

	explosions := existing[ExplosionBody](w)
	for i := range explosions {
		e := &explosions[i]
		e.Update(dt)
		if e.ShouldApply {
			w.log.Debug("explosion fired", "id", e.ID, "tick", w.tick)
			w.blast(e, circles)
		}
	}
	for i := range w.blasts {
		w.blast(&w.blasts[i], circles)
	}
	w.blasts = w.blasts[:0]
}

func (w *World) blast(e *ExplosionBody, circles []CircleBody) {
	for i := range circles {
		e.Apply(&circles[i])
	}
}
