package gp

// PushTransform saves the current transform.
func (c *Context) PushTransform() {
	if !c.inPass("PushTransform") {
		return
	}
	if len(c.transformStack) >= MaxTransformStackDepth {
		c.setError(ErrorCodeTransformStackOverflow, "too many PushTransform calls")
		return
	}
	c.transformStack = append(c.transformStack, c.state.Transform)
}

// PopTransform restores the transform saved by the matching PushTransform.
func (c *Context) PopTransform() {
	if !c.inPass("PopTransform") {
		return
	}
	n := len(c.transformStack)
	if n == 0 {
		c.setError(ErrorCodeTransformStackUnderflow, "PopTransform without matching PushTransform")
		return
	}
	c.setTransform(c.transformStack[n-1])
	c.transformStack = c.transformStack[:n-1]
}

// ResetTransform sets the transform to identity.
func (c *Context) ResetTransform() {
	if !c.inPass("ResetTransform") {
		return
	}
	c.setTransform(Identity())
}

// Transform returns the current transform.
func (c *Context) Transform() Mat3 {
	return c.state.Transform
}

// SetTransform replaces the current transform. The bottom row of m is
// ignored.
func (c *Context) SetTransform(m Mat3) {
	if !c.inPass("SetTransform") {
		return
	}
	m[2] = [3]float32{0, 0, 1}
	c.setTransform(m)
}

// Translate moves the origin by (x, y) in the current coordinate space.
func (c *Context) Translate(x, y float32) {
	if !c.inPass("Translate") {
		return
	}
	c.setTransform(c.state.Transform.Translated(x, y))
}

// Rotate rotates by theta radians. With the default y-down projection a
// positive angle turns clockwise on screen.
func (c *Context) Rotate(theta float32) {
	if !c.inPass("Rotate") {
		return
	}
	c.setTransform(c.state.Transform.Rotated(theta))
}

// RotateAt rotates by theta radians around (x, y).
func (c *Context) RotateAt(theta, x, y float32) {
	if !c.inPass("RotateAt") {
		return
	}
	t := c.state.Transform.Translated(x, y).Rotated(theta).Translated(-x, -y)
	c.setTransform(t)
}

// Scale scales the current coordinate space by (sx, sy).
func (c *Context) Scale(sx, sy float32) {
	if !c.inPass("Scale") {
		return
	}
	c.setTransform(c.state.Transform.Scaled(sx, sy))
}

// ScaleAt scales by (sx, sy) around (x, y).
func (c *Context) ScaleAt(sx, sy, x, y float32) {
	if !c.inPass("ScaleAt") {
		return
	}
	t := c.state.Transform.Translated(x, y).Scaled(sx, sy).Translated(-x, -y)
	c.setTransform(t)
}

// Project replaces the projection with an orthographic mapping of the box
// left..right, top..bottom onto the viewport.
func (c *Context) Project(left, right, top, bottom float32) {
	if !c.inPass("Project") {
		return
	}
	c.state.Projection = Ortho(left, right, top, bottom)
	c.state.MVP = mulProjTransform(&c.state.Projection, &c.state.Transform)
}

// ResetProject restores the pixel-space projection of the current viewport.
func (c *Context) ResetProject() {
	if !c.inPass("ResetProject") {
		return
	}
	c.state.Projection = defaultProjection(c.state.Viewport.W, c.state.Viewport.H)
	c.state.MVP = mulProjTransform(&c.state.Projection, &c.state.Transform)
}

func (c *Context) setTransform(t Mat3) {
	c.state.Transform = t
	c.state.MVP = mulProjTransform(&c.state.Projection, &t)
}
