package stream

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Garsondee/Curve-Pass/internal/sim"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestParseCodec(t *testing.T) {
	for _, name := range []string{"json", "msgpack"} {
		c, err := ParseCodec(name)
		if err != nil || c.Name() != name {
			t.Fatalf("ParseCodec(%q) = %v, %v", name, c, err)
		}
	}
	if _, err := ParseCodec("xml"); err == nil {
		t.Fatal("unknown codec should fail")
	}
}

func TestMsgpack_SnapshotSurvivesWire(t *testing.T) {
	m := sim.NewMatch(4)
	snap := m.Snapshot()
	data, err := Msgpack.Marshal(ServerEnvelope{Type: TypeState, Frame: 7, State: &snap})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got ServerEnvelope
	if err := Msgpack.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.State == nil || len(got.State.Agents) != len(m.Agents) {
		t.Fatalf("decoded state = %+v", got.State)
	}
	if got.State.Ball.Holder != 0 || got.State.State != "PAUSED" {
		t.Fatalf("ball holder %d state %s", got.State.Ball.Holder, got.State.State)
	}
}

func TestClientEnvelope_GestureIsGrounded(t *testing.T) {
	c := ClientEnvelope{Type: TypeGesture, Points: [][2]float64{{1, 2}, {3, 4}}}
	g := c.Gesture()
	if len(g) != 2 || g[1] != sim.V(3, 0, 4) {
		t.Fatalf("gesture = %+v", g)
	}
}

func TestRunner_ApplyGestureAndReset(t *testing.T) {
	hub := NewHub(quietLogger(), JSON, "test", nil)
	r := NewRunner(quietLogger(), hub, 1, false)

	start := r.Match.Ball.Pos
	r.Apply(Command{Msg: ClientEnvelope{Type: TypeGesture, Points: [][2]float64{
		{start.X, start.Z}, {start.X + 2, start.Z + 10}, {start.X + 4, start.Z + 20},
	}}})
	if r.Match.State != sim.StatePlaying {
		t.Fatalf("state = %s after gesture", r.Match.State)
	}

	gen := r.Match.Generation
	r.Apply(Command{Msg: ClientEnvelope{Type: TypeReset}})
	if r.Match.Generation != gen+1 || r.Match.State != sim.StatePaused {
		t.Fatalf("reset: generation %d state %s", r.Match.Generation, r.Match.State)
	}

	r.Apply(Command{Msg: ClientEnvelope{Type: TypeAutoplay, On: true}})
	if !r.Autoplay {
		t.Fatal("autoplay command ignored")
	}
}

func TestRunner_LatestTracksPublishedSnapshot(t *testing.T) {
	r := NewRunner(quietLogger(), NewHub(quietLogger(), JSON, "test", nil), 1, false)
	if r.Latest() == nil || r.Latest().Frame != 0 {
		t.Fatalf("initial snapshot = %+v", r.Latest())
	}
	r.SnapshotEvery = 1
	r.Tick(sim.FrameDT)
	if r.Latest().Frame != 1 {
		t.Fatalf("latest frame = %d, want 1", r.Latest().Frame)
	}
}

func TestHub_WelcomeAndStateOverWebsocket(t *testing.T) {
	var r *Runner
	hub := NewHub(quietLogger(), JSON, "match-1", func() ServerEnvelope {
		return ServerEnvelope{State: r.Latest()}
	})
	r = NewRunner(quietLogger(), hub, 2, false)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var welcome ServerEnvelope
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	if welcome.Type != TypeWelcome || welcome.Match != "match-1" || welcome.State == nil {
		t.Fatalf("welcome = %+v", welcome)
	}
	if _, err := uuid.Parse(welcome.Session); err != nil {
		t.Fatalf("session %q is not a uuid: %v", welcome.Session, err)
	}

	r.SnapshotEvery = 1
	r.Tick(sim.FrameDT)

	for {
		var env ServerEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("read state: %v", err)
		}
		if env.Type == TypeState {
			if env.State == nil || env.State.Frame != 1 {
				t.Fatalf("state envelope = %+v", env)
			}
			break
		}
	}

	if err := conn.WriteJSON(ClientEnvelope{Type: TypePing}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	for {
		var env ServerEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("read pong: %v", err)
		}
		if env.Type == TypePong {
			break
		}
	}
	if hub.ClientCount() != 1 {
		t.Fatalf("clients = %d, want 1", hub.ClientCount())
	}
}
