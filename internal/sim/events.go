package sim

// EventKind names a discrete thing that happened during a frame.
type EventKind int

const (
	EventPass EventKind = iota
	EventShot
	EventPost
	EventCrossbar
	EventNet
	EventLanded
	EventGoal
	EventSave
	EventIntercept
	EventReception
	EventOut
	EventReset
	EventRejected
	EventTactic
	EventCamera
)

var eventNames = [...]string{
	EventPass:      "pass",
	EventShot:      "shot",
	EventPost:      "post",
	EventCrossbar:  "crossbar",
	EventNet:       "net",
	EventLanded:    "landed",
	EventGoal:      "goal",
	EventSave:      "save",
	EventIntercept: "intercept",
	EventReception: "reception",
	EventOut:       "out",
	EventReset:     "reset",
	EventRejected:  "rejected",
	EventTactic:    "tactic",
	EventCamera:    "camera",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Terminal reports whether the event ends the round.
func (k EventKind) Terminal() bool {
	switch k {
	case EventGoal, EventSave, EventIntercept, EventOut:
		return true
	}
	return false
}

// category is the SimLog category an event is filed under.
func (k EventKind) category() string {
	switch k {
	case EventReset:
		return "state"
	case EventRejected, EventTactic, EventCamera:
		return "input"
	}
	return "play"
}

// Event is queued by the match for frontends (sound, feed) to drain.
type Event struct {
	Kind   EventKind
	Frame  int
	Time   float64
	Agent  AgentID
	Pos    Vec3
	Detail string
}

// emit queues an event and records it in the log.
func (m *Match) emit(kind EventKind, agent AgentID, detail string) {
	m.events = append(m.events, Event{
		Kind:   kind,
		Frame:  m.Frame,
		Time:   m.Now,
		Agent:  agent,
		Pos:    m.Ball.Pos,
		Detail: detail,
	})
	label, team := "--", "--"
	if a := m.Agent(agent); a != nil {
		label, team = a.Label, a.Team.String()
	}
	m.Log.Add(m.Frame, label, team, kind.category(), kind.String(), detail, float64(m.Score))
}

// DrainEvents returns the events queued since the last call.
func (m *Match) DrainEvents() []Event {
	out := m.events
	m.events = nil
	return out
}
