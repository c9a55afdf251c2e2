package sim

// CameraMode selects how the camera tracks play.
type CameraMode int

const (
	CameraFollow    CameraMode = iota // behind and above the ball
	CameraBroadcast                   // high on the touchline
)

func (c CameraMode) String() string {
	if c == CameraBroadcast {
		return "broadcast"
	}
	return "follow"
}

// ParseCameraMode maps "follow" or "broadcast" to a mode.
func ParseCameraMode(s string) (CameraMode, bool) {
	switch s {
	case "follow":
		return CameraFollow, true
	case "broadcast":
		return CameraBroadcast, true
	}
	return CameraFollow, false
}

// Camera is the eased viewpoint frontends render from.
type Camera struct {
	Mode   CameraMode
	Pos    Vec3
	LookAt Vec3
}

// desired returns the target position, look point and easing for ball.
func (c *Camera) desired(ball Vec3) (pos, look Vec3, ease float64) {
	if c.Mode == CameraBroadcast {
		return Vec3{X: ball.X*0.3 + 70, Y: 52, Z: ball.Z * 0.5},
			Vec3{X: ball.X * 0.2, Z: ball.Z * 0.7}, 0.04
	}
	return ball.Add(Vec3{Y: 30, Z: -50}),
		Vec3{X: ball.X, Y: 2, Z: ball.Z + 8}, 0.08
}

// Update eases the camera one frame toward its desired pose.
func (c *Camera) Update(ball Vec3) {
	pos, look, ease := c.desired(ball)
	c.Pos = c.Pos.Lerp(pos, ease)
	c.LookAt = c.LookAt.Lerp(look, ease)
}

// Snap jumps straight to the desired pose.
func (c *Camera) Snap(ball Vec3) {
	c.Pos, c.LookAt, _ = c.desired(ball)
}

// Toggle flips between the two modes.
func (c *Camera) Toggle() {
	if c.Mode == CameraFollow {
		c.Mode = CameraBroadcast
	} else {
		c.Mode = CameraFollow
	}
}
