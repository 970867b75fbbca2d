// Package server runs one shared simulation and publishes snapshots to any
// number of viewers.
package server

import (
	"context"
	"errors"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/physics2d/internal/geom"
	"github.com/tomz197/physics2d/internal/loop/config"
	"github.com/tomz197/physics2d/internal/physics"
	"github.com/tomz197/physics2d/internal/scene"
	"github.com/tomz197/physics2d/internal/storage"
)

// ErrStopped is returned by Query when the server stops answering.
var ErrStopped = errors.New("server: not answering")

// SimServer is what clients use to talk to the simulation.
// It decouples Client from the concrete Server.
type SimServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendCommand(cmd Command) bool
	GetSnapshot() *WorldSnapshot
}

// Server owns the world and advances it at a fixed rate.
type Server struct {
	scene *scene.Scene
	seed  uint64
	log   *log.Logger

	world     *physics.World
	paused    bool
	steps     int // ticks to run while paused
	timeScale float64
	stepCost  time.Duration

	snapshot atomic.Pointer[WorldSnapshot]

	clients      map[int]*ClientHandle
	nextClientID int
	commandCh    chan Command
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex

	probeBuf []physics.ShapeLocation
}

var _ SimServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent
}

// ClientEvent is sent from the server to a client.
type ClientEvent struct {
	Type ClientEventType
}

type ClientEventType int

const (
	EventSceneReset ClientEventType = iota
	EventServerShutdown
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for the server and its world.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// NewServer creates a server running sc, built with seed.
func NewServer(sc *scene.Scene, seed uint64, opts ...Option) *Server {
	s := &Server{
		scene:        sc,
		seed:         seed,
		log:          log.New(io.Discard),
		timeScale:    1,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		commandCh:    make(chan Command, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.buildWorld()
	s.publish()
	return s
}

func (s *Server) buildWorld() {
	s.world = s.scene.Build(s.seed, physics.WithLogger(s.log))
	cfg := s.world.Config()
	cfg.TimeScale = s.timeScale
	s.world.SetConfig(cfg)
}

// Run advances the simulation until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	s.log.Info("simulation started", "scene", s.scene.Name, "seed", s.seed, "rate", config.TickRate)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("simulation stopped", "tick", s.world.Tick())
			return
		default:
		}

		frameStart := time.Now()
		s.tick()

		elapsed := time.Since(frameStart)
		if elapsed < config.TickTime {
			time.Sleep(config.TickTime - elapsed)
		}
	}
}

// tick runs one server iteration: bookkeeping, commands, physics, publish.
func (s *Server) tick() {
	s.processRegistrations()
	s.processCommands()
	s.step()
	s.publish()
}

func (s *Server) step() {
	if s.paused {
		if s.steps == 0 {
			return
		}
		s.steps--
	}
	start := time.Now()
	s.world.FixedUpdate(config.TickSeconds)
	s.stepCost = time.Since(start)
}

// Shutdown notifies all clients and waits for them to disconnect, up to
// timeout. The caller cancels the Run context afterwards.
func (s *Server) Shutdown(timeout time.Duration) {
	s.broadcast(ClientEvent{Type: EventServerShutdown})

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.log.Warn("shutdown timed out", "clients", s.ClientCount())
			return
		case <-ticker.C:
			if s.ClientCount() == 0 {
				return
			}
		}
	}
}

func (s *Server) broadcast(ev ClientEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}

// ClientCount returns the number of registered clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// RegisterClient registers a new client and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}
	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendCommand queues cmd for the next tick. It reports false when the
// queue is full and the command was dropped.
func (s *Server) SendCommand(cmd Command) bool {
	select {
	case s.commandCh <- cmd:
		return true
	default:
		return false
	}
}

// Query asks the running server for the bodies within radius of pos and
// waits for the answer.
func (s *Server) Query(ctx context.Context, pos geom.Vec2, radius float64) ([]physics.ShapeLocation, error) {
	reply := make(chan []physics.ShapeLocation, 1)
	if !s.SendCommand(Command{Type: CmdProbe, Pos: pos, Radius: radius, Reply: reply}) {
		return nil, ErrStopped
	}
	select {
	case hits := <-reply:
		return hits, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// GetSnapshot returns the latest published snapshot. It is immutable and
// safe to keep.
func (s *Server) GetSnapshot() *WorldSnapshot {
	return s.snapshot.Load()
}

func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.log.Info("client joined", "id", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.log.Info("client left", "id", clientID, "user", handle.Username)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

func (s *Server) processCommands() {
	for {
		select {
		case cmd := <-s.commandCh:
			s.apply(cmd)
		default:
			return
		}
	}
}

func (s *Server) apply(cmd Command) {
	s.log.Debug("command", "type", cmd.Type, "client", cmd.ClientID, "pos", cmd.Pos)
	switch cmd.Type {
	case CmdSpawn:
		r := math.Max(config.MinRadius, math.Min(config.MaxRadius, cmd.Radius))
		physics.Add(s.world, physics.NewCircle(cmd.Pos, r, config.SpawnDensity, config.SpawnRestitution))
	case CmdExplode:
		s.world.Detonate(cmd.Pos, cmd.Radius, cmd.Value)
	case CmdPause:
		s.paused = !s.paused
		s.steps = 0
	case CmdStep:
		if s.paused {
			s.steps++
		}
	case CmdReset:
		s.buildWorld()
		s.broadcast(ClientEvent{Type: EventSceneReset})
		s.log.Info("scene reset", "scene", s.scene.Name, "by", cmd.ClientID)
	case CmdTimeScale:
		if cmd.Value > 0 {
			s.timeScale = math.Max(config.MinTimeScale, math.Min(config.MaxTimeScale, s.timeScale*cmd.Value))
			cfg := s.world.Config()
			cfg.TimeScale = s.timeScale
			s.world.SetConfig(cfg)
		}
	case CmdResize:
		s.resizeNearest(cmd.Pos, cmd.Radius, cmd.Value)
	case CmdProbe:
		hits := s.probe(cmd.Pos, cmd.Radius)
		if cmd.Reply != nil {
			select {
			case cmd.Reply <- hits:
			default:
			}
		}
	default:
		s.log.Warn("unknown command", "type", cmd.Type)
	}
}

// probe returns a fresh slice; the reply outlives the tick.
func (s *Server) probe(pos geom.Vec2, radius float64) []physics.ShapeLocation {
	s.probeBuf = s.probeBuf[:0]
	s.world.ObjectsInRange(pos, radius, storage.ConsumerFunc[physics.ShapeLocation](func(loc physics.ShapeLocation) {
		s.probeBuf = append(s.probeBuf, loc)
	}))
	return append([]physics.ShapeLocation(nil), s.probeBuf...)
}

// resizeNearest scales the circle closest to pos and recomputes its mass.
func (s *Server) resizeNearest(pos geom.Vec2, radius, factor float64) {
	if factor <= 0 {
		return
	}
	var (
		nearest physics.BodyID
		best    = math.Inf(1)
	)
	for _, hit := range s.probe(pos, radius) {
		if hit.Kind != physics.KindCircle {
			continue
		}
		c := physics.Find[physics.CircleBody](s.world, hit.ID)
		if d := geom.LengthSquared(c.Position.Sub(pos)); d < best {
			best, nearest = d, hit.ID
		}
	}
	if nearest == 0 {
		return
	}
	c := physics.Find[physics.CircleBody](s.world, nearest)
	c.Radius = math.Max(config.MinRadius, math.Min(config.MaxRadius, c.Radius*factor))
	immovable := c.Immovable()
	c.CalculateMass()
	if immovable {
		c.InverseMass, c.InverseInertia = 0, 0
	}
}

// publish stores a new snapshot. Every tick gets its own copy, so a
// snapshot obtained from GetSnapshot never changes, however long it is held.
func (s *Server) publish() {
	snap := &WorldSnapshot{}
	s.world.SnapshotInto(&snap.Snapshot)
	snap.Scene = s.scene.Name
	snap.View = s.scene.ViewBox()
	snap.Players = s.ClientCount()
	snap.Paused = s.paused
	snap.TimeScale = s.timeScale
	snap.StepCost = s.stepCost

	s.snapshot.Store(snap)
}
