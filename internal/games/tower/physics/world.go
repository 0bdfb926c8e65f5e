// Package physics resolves the climber's body against the live platforms
// using a resolv collision space. The space is a fixed-size window that
// slides upward with the player, so an endless climb never leaves it.
package physics

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/games/tower/level"
)

const (
	tagPlatform = "platform"
	tagPlayer   = "player"

	cellSize = 16
	// oneWaySlack is how far into a platform the body's feet may already be
	// and still land on it.
	oneWaySlack = 4
)

// Contact is what one Step reports back to the game.
type Contact struct {
	Grounded bool
	// Landed is set on the step the body touched down from the air or moved
	// onto a different platform.
	Landed         bool
	Platform       *level.Platform
	ImpactVelocity float64
}

// Intent is the per-step steering input.
type Intent struct {
	Direction int     // -1, 0 or 1
	PullX     float64 // Extra horizontal velocity, e.g. magnetic platforms
}

// World owns the collision space and the player body. It implements
// level.CollisionGroup so the platform manager can mirror platforms into it.
type World struct {
	phys config.TowerPhysics
	beh  config.TowerBehaviors

	width   float64
	spaceH  float64
	originY float64

	space   *resolv.Space
	objects map[*level.Platform]*resolv.Object

	body     *resolv.Object
	vx, vy   float64
	grounded bool
	ground   *level.Platform
}

// NewWorld creates a world sized to the configured viewport. The space
// covers three viewport heights.
func NewWorld(cfg *config.TowerConfig) *World {
	w := &World{
		phys:    cfg.Physics,
		beh:     cfg.Behaviors,
		width:   cfg.World.Width,
		spaceH:  cfg.World.Height * 3,
		objects: make(map[*level.Platform]*resolv.Object),
	}
	w.space = resolv.NewSpace(int(w.width)+cellSize, int(w.spaceH), cellSize, cellSize)

	w.body = resolv.NewObject(0, 0, cfg.Physics.PlayerWidth, cfg.Physics.PlayerHeight, tagPlayer)
	w.body.SetShape(resolv.NewRectangle(0, 0, cfg.Physics.PlayerWidth, cfg.Physics.PlayerHeight))
	w.space.Add(w.body)
	return w
}

// Reset drops every platform and places the body with its feet at
// (centerX, bottomY).
func (w *World) Reset(centerX, bottomY float64) {
	for p, obj := range w.objects {
		w.space.Remove(obj)
		delete(w.objects, p)
	}
	w.vx, w.vy = 0, 0
	w.grounded = false
	w.ground = nil
	w.originY = bottomY - w.spaceH/2
	w.Place(centerX, bottomY)
}

// Add mirrors a new platform into the space.
func (w *World) Add(p *level.Platform) {
	obj := resolv.NewObject(p.Left(), p.Top()-w.originY, p.Width, p.Height, tagPlatform)
	obj.SetShape(resolv.NewRectangle(0, 0, p.Width, p.Height))
	obj.Data = p
	w.objects[p] = obj
	if p.Enabled {
		w.space.Add(obj)
	}
}

// Remove takes a platform out of the space.
func (w *World) Remove(p *level.Platform) {
	obj, ok := w.objects[p]
	if !ok {
		return
	}
	if obj.Space != nil {
		w.space.Remove(obj)
	}
	delete(w.objects, p)
	if w.ground == p {
		w.ground = nil
		w.grounded = false
	}
}

// SetEnabled switches collision for a platform on or off.
func (w *World) SetEnabled(p *level.Platform, enabled bool) {
	obj, ok := w.objects[p]
	if !ok {
		return
	}
	switch {
	case enabled && obj.Space == nil:
		w.space.Add(obj)
	case !enabled && obj.Space != nil:
		w.space.Remove(obj)
		if w.ground == p {
			w.ground = nil
			w.grounded = false
		}
	}
}

// Move syncs a platform's position after the manager moved it.
func (w *World) Move(p *level.Platform) {
	obj, ok := w.objects[p]
	if !ok {
		return
	}
	obj.X = p.Left()
	obj.Y = p.Top() - w.originY
	if obj.Space != nil {
		obj.Update()
	}
}

// Place puts the body's feet at (centerX, bottomY) in world space.
func (w *World) Place(centerX, bottomY float64) {
	w.body.X = centerX - w.body.W/2
	w.body.Y = bottomY - w.body.H - w.originY
	w.body.Update()
	w.rebase()
}

// SetVelocityY overrides vertical velocity. Negative is up.
func (w *World) SetVelocityY(vy float64) {
	w.vy = clamp(vy, -w.phys.MaxVelocityY, w.phys.MaxVelocityY)
	if vy < 0 {
		w.grounded = false
		w.ground = nil
	}
}

// Velocity returns the body's velocity in units per second.
func (w *World) Velocity() (float64, float64) { return w.vx, w.vy }

// Position returns the body's top-left corner in world space.
func (w *World) Position() (float64, float64) {
	return w.body.X, w.body.Y + w.originY
}

// CenterX returns the body's horizontal center.
func (w *World) CenterX() float64 { return w.body.X + w.body.W/2 }

// Bottom returns the world y of the body's feet.
func (w *World) Bottom() float64 { return w.body.Bottom() + w.originY }

// Size returns the body's width and height.
func (w *World) Size() (float64, float64) { return w.body.W, w.body.H }

// Grounded reports whether the body stood on a platform after the last step.
func (w *World) Grounded() bool { return w.grounded }

// Ground returns the platform under the body, or nil.
func (w *World) Ground() *level.Platform { return w.ground }

// Step integrates one frame of dtMs milliseconds and resolves landings.
func (w *World) Step(dtMs float64, in Intent) Contact {
	dt := dtMs / 1000
	prevGround := w.ground
	wasGrounded := w.grounded

	w.stepHorizontal(dt, in)

	w.vy = clamp(w.vy+w.phys.Gravity*dt, -w.phys.MaxVelocityY, w.phys.MaxVelocityY)
	dy := w.vy * dt

	contact := Contact{}
	w.grounded = false
	w.ground = nil

	if dy >= 0 {
		if p, landDy, ok := w.findLanding(dy); ok {
			dy = landDy
			contact.ImpactVelocity = w.vy
			w.vy = 0
			w.grounded = true
			w.ground = p
		}
	}

	w.body.Y += dy
	w.body.Update()
	w.rebase()

	contact.Grounded = w.grounded
	contact.Platform = w.ground
	contact.Landed = w.grounded && (!wasGrounded || w.ground != prevGround)
	return contact
}

func (w *World) stepHorizontal(dt float64, in Intent) {
	target := float64(in.Direction) * w.phys.MoveSpeed

	switch {
	case w.grounded && w.ground != nil && w.ground.Type == level.Ice:
		// Ice keeps most of the previous velocity
		w.vx += (target - w.vx) * w.beh.IceFriction
	default:
		w.vx = target
	}

	drift := in.PullX
	if w.grounded && w.ground != nil {
		if w.ground.Type == level.ConveyorRight {
			drift += w.beh.ConveyorSpeed
		}
		// Ride along with a moving platform
		w.body.X += w.ground.DeltaX
	}

	vx := clamp(w.vx+drift, -w.phys.MaxVelocityX, w.phys.MaxVelocityX)
	w.body.X = clamp(w.body.X+vx*dt, 0, w.width-w.body.W)
}

// findLanding looks for a platform the body's feet cross while moving dy
// downward. Platforms are one-way: only bodies coming from above land.
func (w *World) findLanding(dy float64) (*level.Platform, float64, bool) {
	check := w.body.Check(0, dy+1, tagPlatform)
	if check == nil {
		return nil, 0, false
	}

	bottom := w.body.Bottom()
	var best *resolv.Object
	for _, obj := range check.ObjectsByTags(tagPlatform) {
		// The check is cell-based; keep only surfaces the feet actually reach
		if obj.X >= w.body.X+w.body.W || obj.X+obj.W <= w.body.X {
			continue
		}
		if obj.Y > bottom+dy || bottom >= obj.Y+oneWaySlack {
			continue
		}
		if best == nil || obj.Y < best.Y {
			best = obj
		}
	}
	if best == nil {
		return nil, 0, false
	}

	p, ok := best.Data.(*level.Platform)
	if !ok {
		return nil, 0, false
	}
	return p, check.ContactWithObject(best).Y(), true
}

// rebase slides the space window so the body stays near its middle.
func (w *World) rebase() {
	if w.body.Y > w.spaceH/4 && w.body.Y < w.spaceH*3/4 {
		return
	}
	shift := w.body.Y - w.spaceH/2
	w.originY += shift

	w.body.Y -= shift
	w.body.Update()
	for p, obj := range w.objects {
		obj.Y = p.Top() - w.originY
		if obj.Space != nil {
			obj.Update()
		}
	}
}

// Origin returns the world y at the top of the collision space.
func (w *World) Origin() float64 { return w.originY }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
