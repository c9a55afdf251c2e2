package stream

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Garsondee/Curve-Pass/internal/sim"
)

// Codec serialises envelopes for the wire.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// MessageType is the websocket frame type the codec writes.
	MessageType() int
}

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) MessageType() int                   { return websocket.TextMessage }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                       { return "msgpack" }
func (msgpackCodec) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
func (msgpackCodec) MessageType() int                   { return websocket.BinaryMessage }

// JSON is the text codec.
var JSON Codec = jsonCodec{}

// Msgpack is the binary codec.
var Msgpack Codec = msgpackCodec{}

// ParseCodec returns the codec named json or msgpack.
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "json", "":
		return JSON, nil
	case "msgpack":
		return Msgpack, nil
	}
	return nil, fmt.Errorf("stream: unknown codec %q", name)
}

// Envelope types.
const (
	TypeWelcome  = "welcome"
	TypeState    = "state"
	TypeEvent    = "event"
	TypePong     = "pong"
	TypeError    = "error"
	TypePing     = "ping"
	TypeGesture  = "gesture"
	TypeReset    = "reset"
	TypeAutoplay = "autoplay"
)

// EventMsg is a match event on the wire.
type EventMsg struct {
	Kind   string     `json:"kind" msgpack:"kind"`
	Frame  int        `json:"frame" msgpack:"frame"`
	Agent  int        `json:"agent" msgpack:"agent"`
	Pos    [3]float64 `json:"pos" msgpack:"pos"`
	Detail string     `json:"detail,omitempty" msgpack:"detail,omitempty"`
}

// NewEventMsg converts a match event.
func NewEventMsg(ev sim.Event) *EventMsg {
	return &EventMsg{
		Kind:   ev.Kind.String(),
		Frame:  ev.Frame,
		Agent:  int(ev.Agent),
		Pos:    [3]float64{ev.Pos.X, ev.Pos.Y, ev.Pos.Z},
		Detail: ev.Detail,
	}
}

// ServerEnvelope is every message the server sends.
type ServerEnvelope struct {
	Type     string        `json:"type" msgpack:"type"`
	Session  string        `json:"session,omitempty" msgpack:"session,omitempty"`
	Match    string        `json:"match,omitempty" msgpack:"match,omitempty"`
	Frame    int           `json:"frame,omitempty" msgpack:"frame,omitempty"`
	State    *sim.Snapshot `json:"state,omitempty" msgpack:"state,omitempty"`
	Event    *EventMsg     `json:"event,omitempty" msgpack:"event,omitempty"`
	Message  string        `json:"message,omitempty" msgpack:"message,omitempty"`
	ServerMS int64         `json:"server_ms,omitempty" msgpack:"server_ms,omitempty"`
}

// ClientEnvelope is every message a client may send. Points are ground
// (x, z) pairs for a gesture.
type ClientEnvelope struct {
	Type   string       `json:"type" msgpack:"type"`
	Points [][2]float64 `json:"points,omitempty" msgpack:"points,omitempty"`
	On     bool         `json:"on,omitempty" msgpack:"on,omitempty"`
}

// Gesture converts the envelope points to ground vectors.
func (c ClientEnvelope) Gesture() []sim.Vec3 {
	out := make([]sim.Vec3, len(c.Points))
	for i, p := range c.Points {
		out[i] = sim.V(p[0], 0, p[1])
	}
	return out
}
