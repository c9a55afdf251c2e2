package sim

// AgentSnapshot is the exported view of one agent.
type AgentSnapshot struct {
	ID      int        `json:"id" msgpack:"id"`
	Label   string     `json:"label" msgpack:"label"`
	Team    string     `json:"team" msgpack:"team"`
	Keeper  bool       `json:"keeper" msgpack:"keeper"`
	Pos     [3]float64 `json:"pos" msgpack:"pos"`
	Heading float64    `json:"heading" msgpack:"heading"`
	Moving  bool       `json:"moving" msgpack:"moving"`
	Roll    float64    `json:"roll" msgpack:"roll"`
}

// BallSnapshot is the exported view of the ball.
type BallSnapshot struct {
	Pos    [3]float64 `json:"pos" msgpack:"pos"`
	Phase  string     `json:"phase" msgpack:"phase"`
	Holder int        `json:"holder" msgpack:"holder"`
}

// Snapshot is a plain copy of a match frame for spectators and reports.
type Snapshot struct {
	Frame      int             `json:"frame" msgpack:"frame"`
	Time       float64         `json:"time" msgpack:"time"`
	Generation int             `json:"generation" msgpack:"generation"`
	State      string          `json:"state" msgpack:"state"`
	Score      int             `json:"score" msgpack:"score"`
	Banner     string          `json:"banner,omitempty" msgpack:"banner,omitempty"`
	Toast      string          `json:"toast,omitempty" msgpack:"toast,omitempty"`
	Ball       BallSnapshot    `json:"ball" msgpack:"ball"`
	Agents     []AgentSnapshot `json:"agents" msgpack:"agents"`
	Net        [4]float64      `json:"net" msgpack:"net"` // max displacement per panel
	Trail      [][3]float64    `json:"trail,omitempty" msgpack:"trail,omitempty"`
}

func arr(v Vec3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// Snapshot copies the current frame.
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		Frame:      m.Frame,
		Time:       m.Now,
		Generation: m.Generation,
		State:      m.State.String(),
		Score:      m.Score,
		Agents:     make([]AgentSnapshot, 0, len(m.Agents)),
	}
	if m.Banner.Visible(m.Now) {
		s.Banner = m.Banner.Text
	}
	if m.Toast.Visible(m.Now) {
		s.Toast = m.Toast.Text
	}

	holder := -1
	if id, ok := m.Ball.Holder(); ok {
		holder = int(id)
	}
	s.Ball = BallSnapshot{Pos: arr(m.Ball.Pos), Phase: m.Ball.Phase().String(), Holder: holder}

	for _, a := range m.Agents {
		s.Agents = append(s.Agents, AgentSnapshot{
			ID:      int(a.ID),
			Label:   a.Label,
			Team:    a.Team.String(),
			Keeper:  a.Keeper,
			Pos:     arr(a.Pos),
			Heading: a.Heading,
			Moving:  a.Moving(),
			Roll:    a.Pose.Roll,
		})
	}
	for i, p := range m.Net.Panels {
		s.Net[i] = p.MaxDisplacement()
	}
	for _, p := range m.Trail {
		s.Trail = append(s.Trail, arr(p))
	}
	return s
}
