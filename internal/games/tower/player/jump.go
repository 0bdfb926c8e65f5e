// Package player holds the climber's jump timing: coyote time, the jump
// input buffer and the single air jump.
package player

import "github.com/vovakirdan/tui-tower/internal/config"

// JumpResult reports what one Update decided.
type JumpResult struct {
	Fired     bool
	AirJump   bool
	VelocityY float64 // Velocity to set when Fired, negative is up
}

// JumpController decides when a jump request executes. A jump fires
// when the buffer is live and the player is grounded, within coyote time,
// or still has the air jump.
type JumpController struct {
	coyoteMs      float64
	bufferMs      float64
	jumpVelocity  float64
	airJumpFactor float64

	coyoteTimer   float64
	bufferTimer   float64
	canDoubleJump bool
}

// NewJumpController creates a controller from physics config.
func NewJumpController(cfg config.TowerPhysics) *JumpController {
	return &JumpController{
		coyoteMs:      cfg.CoyoteMs,
		bufferMs:      cfg.JumpBufferMs,
		jumpVelocity:  cfg.JumpVelocity,
		airJumpFactor: cfg.AirJumpFactor,
	}
}

// Reset clears all timers and the air jump.
func (c *JumpController) Reset() {
	c.coyoteTimer = 0
	c.bufferTimer = 0
	c.canDoubleJump = false
}

// Update advances the timers by dtMs. pressed is the edge-triggered jump
// request for this frame.
func (c *JumpController) Update(dtMs float64, grounded, pressed bool) JumpResult {
	if grounded {
		c.coyoteTimer = c.coyoteMs
		c.canDoubleJump = true
	} else {
		c.coyoteTimer = decrement(c.coyoteTimer, dtMs)
	}

	if pressed {
		c.bufferTimer = c.bufferMs
	} else {
		c.bufferTimer = decrement(c.bufferTimer, dtMs)
	}

	if c.bufferTimer <= 0 {
		return JumpResult{}
	}

	switch {
	case c.coyoteTimer > 0:
		c.coyoteTimer = 0
		c.bufferTimer = 0
		return JumpResult{Fired: true, VelocityY: -c.jumpVelocity}
	case c.canDoubleJump:
		c.canDoubleJump = false
		c.coyoteTimer = 0
		c.bufferTimer = 0
		return JumpResult{Fired: true, AirJump: true, VelocityY: -c.jumpVelocity * c.airJumpFactor}
	}
	return JumpResult{}
}

// CoyoteTimer returns the remaining coyote time in milliseconds.
func (c *JumpController) CoyoteTimer() float64 { return c.coyoteTimer }

// BufferTimer returns the remaining jump buffer in milliseconds.
func (c *JumpController) BufferTimer() float64 { return c.bufferTimer }

// CanDoubleJump reports whether the air jump is still available.
func (c *JumpController) CanDoubleJump() bool { return c.canDoubleJump }

func decrement(timer, dt float64) float64 {
	timer -= dt
	if timer < 0 {
		return 0
	}
	return timer
}
