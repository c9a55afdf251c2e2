package scene

import (
	"math"

	"github.com/Garsondee/Curve-Pass/internal/sim"
)

const (
	agentHitRadius = 1.6
	ballHitRadius  = 1.2
)

// Kind is the sort of visual object a backend draws.
type Kind int

const (
	KindAgent Kind = iota
	KindBall
)

// ObjectID is a backend handle to one visual object.
type ObjectID int

// Info describes an object at creation time. It never changes afterwards;
// a reset removes the object and creates a new one.
type Info struct {
	Agent  sim.AgentID // NoAgent for the ball
	Label  string
	Team   sim.Team
	Keeper bool
}

// Transform is the per-frame placement of an object.
type Transform struct {
	Pos      sim.Vec3
	Heading  float64
	Pose     sim.Pose
	Selected bool
	HasBall  bool
}

// Object is one registered visual object.
type Object struct {
	ID   ObjectID
	Kind Kind
	Info Info
	T    Transform
}

// Registry is the object store shared by backends. It keeps creation order
// so draws are stable frame to frame.
type Registry struct {
	next  ObjectID
	objs  map[ObjectID]*Object
	order []ObjectID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{objs: make(map[ObjectID]*Object)}
}

// Create registers an object and returns its handle.
func (r *Registry) Create(kind Kind, info Info, t Transform) ObjectID {
	r.next++
	id := r.next
	r.objs[id] = &Object{ID: id, Kind: kind, Info: info, T: t}
	r.order = append(r.order, id)
	return id
}

// Update replaces an object's transform. Unknown ids are ignored.
func (r *Registry) Update(id ObjectID, t Transform) {
	if o, ok := r.objs[id]; ok {
		o.T = t
	}
}

// Remove drops an object. Unknown ids are ignored.
func (r *Registry) Remove(id ObjectID) {
	if _, ok := r.objs[id]; !ok {
		return
	}
	delete(r.objs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the object for id, or nil.
func (r *Registry) Get(id ObjectID) *Object { return r.objs[id] }

// Len is the number of live objects.
func (r *Registry) Len() int { return len(r.order) }

// Each visits objects in creation order.
func (r *Registry) Each(fn func(o *Object)) {
	for _, id := range r.order {
		fn(r.objs[id])
	}
}

// HitTest resolves a ground point under the pointer into a pick. The ball
// wins over agents; among agents the closest hitbox wins.
func (r *Registry) HitTest(ground sim.Vec3, onPitch bool) sim.Pick {
	pick := sim.Pick{Agent: sim.NoAgent, Ground: sim.ClampToField(ground), OnPitch: onPitch}
	if !ground.Finite() {
		pick.Ground = sim.ClampToField(sim.Vec3{})
		pick.OnPitch = false
		return pick
	}
	best := math.Inf(1)
	r.Each(func(o *Object) {
		d := o.T.Pos.DistXZ(ground)
		switch o.Kind {
		case KindBall:
			if d < ballHitRadius {
				pick.Ball = true
			}
		case KindAgent:
			if d < agentHitRadius && d < best {
				best = d
				pick.Agent = o.Info.Agent
			}
		}
	})
	return pick
}
