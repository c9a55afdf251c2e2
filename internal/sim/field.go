package sim

// Bounds is an axis-aligned rectangle on the ground plane.
type Bounds struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// GoalArea is the scoring geometry at the enemy end: goal line z and the
// lateral span between the posts.
type GoalArea struct {
	Z          float64
	MinX, MaxX float64
}

var (
	// Field is the playing surface.
	Field = Bounds{MinX: -60, MaxX: 60, MinZ: -75, MaxZ: 75}
	// Goal is the goal the user attacks.
	Goal = GoalArea{Z: 57, MinX: -7, MaxX: 7}
)

const (
	BallRadius    = 0.55
	PostRadius    = 0.35
	CrossbarY     = 6.0
	NetWidth      = 14.0
	NetHeight     = 6.0
	NetDepth      = 3.5
	BallRestY     = 0.5 // ball centre height when held or rolling
	OutMargin     = 2.0 // distance past the field edge before the ball is out
	escapeLimit   = 120.0
	keeperBoxZ    = 3.0
	keeperBoxX    = 2.0
	keeperAimX    = 2.5
	keeperAimNear = 6.0 // keeper aim window starts this far in front of the line
)

// Contains reports whether p lies on the ground rectangle (inclusive).
func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Z >= b.MinZ && p.Z <= b.MaxZ
}

// Clamp returns p limited to the rectangle with y unchanged.
func (b Bounds) Clamp(p Vec3) Vec3 {
	p.X = clamp(p.X, b.MinX, b.MaxX)
	p.Z = clamp(p.Z, b.MinZ, b.MaxZ)
	return p
}

// ClampToField limits p to the pitch and pins it to the ground. Applying it
// twice gives the same result as applying it once.
func ClampToField(p Vec3) Vec3 {
	p = Field.Clamp(p)
	p.Y = 0
	return p
}

// IsOut reports whether a ball position is past the field edge by more than
// OutMargin on either ground axis.
func IsOut(p Vec3) bool {
	return p.X < Field.MinX-OutMargin || p.X > Field.MaxX+OutMargin ||
		p.Z < Field.MinZ-OutMargin || p.Z > Field.MaxZ+OutMargin
}

// IsGoal reports whether p is physically inside the goal volume: strictly
// between the posts, between the turf and the crossbar and within the net
// depth window behind the line.
func IsGoal(p Vec3) bool {
	return p.X > Goal.MinX && p.X < Goal.MaxX &&
		p.Y > 0.2 && p.Y < CrossbarY &&
		p.Z >= Goal.Z+0.5 && p.Z <= Goal.Z+NetDepth
}

// inNetBox is the collision volume of the netting, slightly wider and taller
// than the frame.
func inNetBox(p Vec3, maxY float64) bool {
	return p.X >= Goal.MinX-0.5 && p.X <= Goal.MaxX+0.5 &&
		p.Z > Goal.Z && p.Z < Goal.Z+NetDepth &&
		p.Y <= maxY
}

// inMouthStrip is the thin slab just behind the line inside the frame that a
// scoring ball crosses before it reaches the goal volume.
func inMouthStrip(p Vec3) bool {
	return p.X > Goal.MinX && p.X < Goal.MaxX &&
		p.Y > 0.2 && p.Y < CrossbarY &&
		p.Z > Goal.Z && p.Z < Goal.Z+0.5
}

// postCenters returns the ground positions of both posts.
func postCenters() [2]Vec3 {
	return [2]Vec3{{X: Goal.MinX, Z: Goal.Z}, {X: Goal.MaxX, Z: Goal.Z}}
}

// keeperBox returns the area a keeper anchored at home may occupy.
func keeperBox(home Vec3) Bounds {
	return Bounds{
		MinX: Goal.MinX - keeperBoxX,
		MaxX: Goal.MaxX + keeperBoxX,
		MinZ: home.Z - keeperBoxZ,
		MaxZ: home.Z + keeperBoxZ,
	}
}
