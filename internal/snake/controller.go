package snake

import "github.com/vovakirdan/gridsnake/internal/core"

// Controller turns directional input into the direction used by the next move.
// At most one request is committed between two ticks, and a change to the
// exact reverse of the current direction is refused. Requesting the current
// direction commits without turning, so it still uses up the tick.
type Controller struct {
	dir     core.Direction
	changed bool // a change was accepted since the last tick
}

// NewController creates a controller heading in dir.
func NewController(dir core.Direction) Controller {
	return Controller{dir: dir}
}

// Direction returns the direction the next move will use.
func (c *Controller) Direction() core.Direction {
	return c.dir
}

// Request asks for a new direction. It returns true if the direction changed.
func (c *Controller) Request(d core.Direction) bool {
	if c.changed {
		return false
	}
	if !d.Valid() || d.Opposite(c.dir) {
		return false
	}
	if d == c.dir {
		c.changed = true
		return false
	}
	c.dir = d
	c.changed = true
	return true
}

// BeginTick re-arms the controller for the next input window.
func (c *Controller) BeginTick() {
	c.changed = false
}

// Reset sets the direction and clears any accepted change.
func (c *Controller) Reset(dir core.Direction) {
	c.dir = dir
	c.changed = false
}
