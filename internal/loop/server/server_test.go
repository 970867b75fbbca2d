package server

import (
	"context"
	"testing"
	"time"

	"github.com/tomz197/physics2d/internal/geom"
	"github.com/tomz197/physics2d/internal/loop/config"
	"github.com/tomz197/physics2d/internal/physics"
	"github.com/tomz197/physics2d/internal/scene"
)

const testScene = `
name: test
gravity: [0, 0]
circles:
  - {position: [0, 50], radius: 1, density: 1, restitution: 0.5}
planes:
  - {normal: [0, 1], d: 0}
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	sc, err := scene.Parse([]byte(testScene))
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(sc, 1)
}

func TestInitialSnapshot(t *testing.T) {
	s := newTestServer(t)
	snap := s.GetSnapshot()
	if snap == nil {
		t.Fatal("no snapshot before the first tick")
	}
	if snap.Scene != "test" || len(snap.Circles) != 1 || len(snap.Planes) != 1 {
		t.Errorf("snapshot = %s with %d circles %d planes, want test with 1 and 1", snap.Scene, len(snap.Circles), len(snap.Planes))
	}
	if got := snap.Bodies(); got != 2 {
		t.Errorf("Bodies() = %d, want 2", got)
	}
}

func TestRegisterUnregister(t *testing.T) {
	s := newTestServer(t)
	h := s.RegisterClient("a-very-long-username-indeed")
	if len(h.Username) != config.MaxUsernameLength {
		t.Errorf("username length = %d, want %d", len(h.Username), config.MaxUsernameLength)
	}
	s.tick()
	if got := s.GetSnapshot().Players; got != 1 {
		t.Errorf("Players = %d, want 1", got)
	}

	s.UnregisterClient(h.ID)
	s.tick()
	if got := s.ClientCount(); got != 0 {
		t.Errorf("ClientCount() = %d, want 0", got)
	}
	if _, ok := <-h.EventsCh; ok {
		t.Error("events channel still open after unregister")
	}
}

func TestSpawnClampsRadius(t *testing.T) {
	s := newTestServer(t)
	s.SendCommand(Command{Type: CmdSpawn, Pos: geom.V(20, 50), Radius: 100})
	s.tick()
	circles := s.GetSnapshot().Circles
	if len(circles) != 2 {
		t.Fatalf("circles = %d, want 2", len(circles))
	}
	if got := circles[1].Radius; got != config.MaxRadius {
		t.Errorf("radius = %v, want %v", got, config.MaxRadius)
	}
}

func TestPauseAndStep(t *testing.T) {
	s := newTestServer(t)
	s.tick()
	if got := s.GetSnapshot().Tick; got != 1 {
		t.Fatalf("Tick = %d, want 1", got)
	}

	s.SendCommand(Command{Type: CmdPause})
	s.tick()
	s.tick()
	snap := s.GetSnapshot()
	if snap.Tick != 1 || !snap.Paused {
		t.Errorf("paused: Tick = %d Paused = %v, want 1 true", snap.Tick, snap.Paused)
	}

	s.SendCommand(Command{Type: CmdStep})
	s.tick()
	s.tick()
	if got := s.GetSnapshot().Tick; got != 2 {
		t.Errorf("after step Tick = %d, want 2", got)
	}

	s.SendCommand(Command{Type: CmdPause})
	s.tick()
	if got := s.GetSnapshot().Tick; got != 3 {
		t.Errorf("resumed Tick = %d, want 3", got)
	}
}

func TestStepIgnoredWhileRunning(t *testing.T) {
	s := newTestServer(t)
	s.SendCommand(Command{Type: CmdStep})
	s.tick()
	s.SendCommand(Command{Type: CmdPause})
	s.tick()
	if got := s.GetSnapshot().Tick; got != 1 {
		t.Errorf("Tick = %d, want 1", got)
	}
}

func TestTimeScale(t *testing.T) {
	tests := []struct {
		factors []float64
		want    float64
	}{
		{[]float64{2}, 2},
		{[]float64{2, 2, 2, 2, 2}, config.MaxTimeScale},
		{[]float64{0.5, 0.5, 0.5, 0.5, 0.5}, config.MinTimeScale},
		{[]float64{0, -1}, 1},
	}
	for _, tt := range tests {
		s := newTestServer(t)
		for _, f := range tt.factors {
			s.SendCommand(Command{Type: CmdTimeScale, Value: f})
		}
		s.tick()
		snap := s.GetSnapshot()
		if snap.TimeScale != tt.want || snap.Config.TimeScale != tt.want {
			t.Errorf("factors %v: TimeScale = %v (config %v), want %v", tt.factors, snap.TimeScale, snap.Config.TimeScale, tt.want)
		}
	}
}

func TestResetRebuildsAndNotifies(t *testing.T) {
	s := newTestServer(t)
	h := s.RegisterClient("a")
	s.SendCommand(Command{Type: CmdTimeScale, Value: 2})
	s.SendCommand(Command{Type: CmdSpawn, Pos: geom.V(10, 10), Radius: 1})
	s.tick()
	s.tick()

	s.SendCommand(Command{Type: CmdReset, ClientID: h.ID})
	s.tick()
	snap := s.GetSnapshot()
	if len(snap.Circles) != 1 {
		t.Errorf("circles after reset = %d, want 1", len(snap.Circles))
	}
	if snap.Tick != 1 {
		t.Errorf("Tick after reset = %d, want 1", snap.Tick)
	}
	if snap.Config.TimeScale != 2 {
		t.Errorf("TimeScale after reset = %v, want 2", snap.Config.TimeScale)
	}
	select {
	case ev := <-h.EventsCh:
		if ev.Type != EventSceneReset {
			t.Errorf("event = %v, want EventSceneReset", ev.Type)
		}
	default:
		t.Error("no reset event")
	}
}

func TestExplodePushesCircle(t *testing.T) {
	s := newTestServer(t)
	s.SendCommand(Command{Type: CmdExplode, Pos: geom.V(0, 45), Radius: 10, Value: 1000})
	s.tick()
	if v := s.GetSnapshot().Circles[0].Velocity; v[1] <= 0 {
		t.Errorf("velocity = %v, want pushed upwards", v)
	}
}

func TestProbeReplies(t *testing.T) {
	s := newTestServer(t)
	reply := make(chan []physics.ShapeLocation, 1)
	s.SendCommand(Command{Type: CmdProbe, Pos: geom.V(0, 50.5), Radius: 0.1, Reply: reply})
	s.tick()
	select {
	case hits := <-reply:
		if len(hits) != 1 || hits[0].Kind != physics.KindCircle {
			t.Errorf("hits = %+v, want the circle", hits)
		}
	default:
		t.Fatal("no reply")
	}
}

func TestResizeNearest(t *testing.T) {
	s := newTestServer(t)
	before := s.GetSnapshot().Circles[0]
	s.SendCommand(Command{Type: CmdResize, Pos: geom.V(0, 50), Radius: 2, Value: 2})
	s.SendCommand(Command{Type: CmdResize, Pos: geom.V(30, 30), Radius: 2, Value: 2}) // misses
	s.tick()
	after := s.GetSnapshot().Circles[0]
	if after.Radius != 2 {
		t.Errorf("radius = %v, want 2", after.Radius)
	}
	if ratio := after.Mass() / before.Mass(); ratio < 3.999 || ratio > 4.001 {
		t.Errorf("mass ratio = %v, want 4", ratio)
	}
}

func TestHeldSnapshotUnchanged(t *testing.T) {
	s := newTestServer(t)
	s.tick()
	held := s.GetSnapshot()
	tick, pos := held.Tick, held.Circles[0].Position
	for range 3 {
		s.tick()
	}
	if s.GetSnapshot() == held {
		t.Fatal("later ticks published the same snapshot")
	}
	if held.Tick != tick || held.Circles[0].Position != pos {
		t.Errorf("held snapshot changed: Tick = %d, position %v, want %d, %v",
			held.Tick, held.Circles[0].Position, tick, pos)
	}
}

func TestSendCommandQueueFull(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < cap(s.commandCh); i++ {
		if !s.SendCommand(Command{Type: CmdStep}) {
			t.Fatalf("command %d dropped", i)
		}
	}
	if s.SendCommand(Command{Type: CmdStep}) {
		t.Error("SendCommand on a full queue = true, want false")
	}
}

func TestShutdownNotifiesClients(t *testing.T) {
	s := newTestServer(t)
	h := s.RegisterClient("a")
	s.tick()

	done := make(chan struct{})
	go func() {
		s.Shutdown(time.Second)
		close(done)
	}()

	select {
	case ev := <-h.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Fatalf("event = %v, want EventServerShutdown", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("no shutdown event")
	}

	s.UnregisterClient(h.ID)
	s.tick()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return after the last client left")
	}
}

func TestRunAnswersQueries(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	qctx, qcancel := context.WithTimeout(ctx, 2*time.Second)
	defer qcancel()
	hits, err := s.Query(qctx, geom.V(0, 0), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Kind != physics.KindPlane {
		t.Errorf("hits = %+v, want the plane", hits)
	}
}
