package gp

// State is a snapshot of the drawing state of one pass.
type State struct {
	// FrameWidth and FrameHeight are the sizes passed to Begin.
	FrameWidth, FrameHeight int

	// Viewport is in device pixels.
	Viewport IRect
	// Scissor is relative to the viewport origin. {0, 0, -1, -1} means no
	// scissor.
	Scissor IRect

	Projection Mat3
	Transform  Mat3
	// MVP caches Projection * Transform.
	MVP Mat3

	Color Color
	Blend BlendMode
	// Pipeline overrides the built-in pipelines when valid.
	Pipeline Pipeline

	// Arena cursors at Begin. Flush replays and rewinds from these.
	BaseVertex    int
	BaseTexVertex int
	BaseUniform   int
	BaseCommand   int
}

// Begin opens a pass over a width x height frame.
//
// The current state is pushed and replaced with defaults: full-frame
// viewport, no scissor, pixel-space orthographic projection, identity
// transform, opaque white, alpha blending. The outermost Begin also clears the
// last error. A non-positive width or height is raised to 1.
func (c *Context) Begin(width, height int) {
	if !c.valid {
		Logger().Warn("gp: call on invalid context", "op", "Begin")
		return
	}
	if len(c.stateStack) >= MaxStateStackDepth {
		c.setError(ErrorCodeStateStackOverflow, "too many nested Begin calls")
		return
	}
	if len(c.stateStack) == 0 {
		c.errCode = ErrorCodeNone
		c.errMsg = ""
	}
	if width <= 0 || height <= 0 {
		Logger().Warn("gp: invalid frame size", "width", width, "height", height)
		width, height = max(width, 1), max(height, 1)
	}

	c.stateStack = append(c.stateStack, c.state)

	proj := defaultProjection(width, height)
	transform := Identity()
	c.state = State{
		FrameWidth:    width,
		FrameHeight:   height,
		Viewport:      IRect{X: 0, Y: 0, W: width, H: height},
		Scissor:       noScissor,
		Projection:    proj,
		Transform:     transform,
		MVP:           mulProjTransform(&proj, &transform),
		Color:         White,
		Blend:         BlendBlend,
		BaseVertex:    c.vertices.size(),
		BaseTexVertex: c.texVertices.size(),
		BaseUniform:   c.uniforms.size(),
		BaseCommand:   c.commands.size(),
	}

	Logger().Debug("gp: begin", "width", width, "height", height, "depth", len(c.stateStack))
}

// End closes the pass opened by the matching Begin and restores the previous
// state. End does not flush.
func (c *Context) End() {
	if !c.valid {
		Logger().Warn("gp: call on invalid context", "op", "End")
		return
	}
	n := len(c.stateStack)
	if n == 0 {
		c.setError(ErrorCodeStateStackUnderflow, "End without matching Begin")
		return
	}
	c.state = c.stateStack[n-1]
	c.stateStack = c.stateStack[:n-1]
}

// State returns a copy of the active state.
func (c *Context) State() State {
	return c.state
}

// Depth returns the number of open passes.
func (c *Context) Depth() int {
	return len(c.stateStack)
}

// SetColor sets the color used by subsequent draws.
func (c *Context) SetColor(r, g, b, a float32) {
	if !c.inPass("SetColor") {
		return
	}
	c.state.Color = Color{R: r, G: g, B: b, A: a}
}

// ResetColor restores opaque white.
func (c *Context) ResetColor() {
	if !c.inPass("ResetColor") {
		return
	}
	c.state.Color = White
}

// SetBlendMode sets the blend mode used by subsequent draws.
func (c *Context) SetBlendMode(mode BlendMode) {
	if !c.inPass("SetBlendMode") {
		return
	}
	if mode >= blendModeCount {
		Logger().Warn("gp: invalid blend mode", "mode", uint8(mode))
		return
	}
	c.state.Blend = mode
}

// ResetBlendMode restores alpha blending.
func (c *Context) ResetBlendMode() {
	if !c.inPass("ResetBlendMode") {
		return
	}
	c.state.Blend = BlendBlend
}

// SetPipeline makes subsequent draws use p instead of the built-in
// pipelines. p must accept the vertex layout of the draws issued with it.
func (c *Context) SetPipeline(p Pipeline) {
	if !c.inPass("SetPipeline") {
		return
	}
	c.state.Pipeline = p
}

// ResetPipeline returns to the built-in pipelines.
func (c *Context) ResetPipeline() {
	if !c.inPass("ResetPipeline") {
		return
	}
	c.state.Pipeline = 0
}

// Viewport sets the viewport in device pixels and switches to the default
// projection for its size. An active scissor keeps its position relative to
// the viewport, so the applied scissor moves with the viewport. Viewports
// with a non-positive size are ignored.
func (c *Context) Viewport(x, y, w, h int) {
	if !c.inPass("Viewport") {
		return
	}
	if w <= 0 || h <= 0 {
		Logger().Warn("gp: invalid viewport size", "width", w, "height", h)
		return
	}
	r := IRect{X: x, Y: y, W: w, H: h}
	if c.state.Viewport == r {
		return
	}
	if !c.appendStateCommand(CmdViewport, r) {
		return
	}
	moved := c.state.Viewport.X != x || c.state.Viewport.Y != y
	c.state.Viewport = r
	c.state.Projection = defaultProjection(w, h)
	c.state.MVP = mulProjTransform(&c.state.Projection, &c.state.Transform)

	if moved && !c.state.Scissor.IsNoScissor() {
		c.appendStateCommand(CmdScissor, c.appliedScissor(c.state.Scissor))
	}
}

// ResetViewport restores the full-frame viewport.
func (c *Context) ResetViewport() {
	c.Viewport(0, 0, c.state.FrameWidth, c.state.FrameHeight)
}

// Scissor restricts drawing to a rectangle relative to the viewport origin.
// Passing width and height of -1 removes the scissor.
func (c *Context) Scissor(x, y, w, h int) {
	if !c.inPass("Scissor") {
		return
	}
	r := IRect{X: x, Y: y, W: w, H: h}
	if c.state.Scissor == r {
		return
	}
	if !c.appendStateCommand(CmdScissor, c.appliedScissor(r)) {
		return
	}
	c.state.Scissor = r
}

// ResetScissor removes the scissor.
func (c *Context) ResetScissor() {
	c.Scissor(noScissor.X, noScissor.Y, noScissor.W, noScissor.H)
}

// appliedScissor converts a viewport-relative scissor to device pixels.
func (c *Context) appliedScissor(r IRect) IRect {
	if r.IsNoScissor() {
		return IRect{X: 0, Y: 0, W: c.state.FrameWidth, H: c.state.FrameHeight}
	}
	return IRect{
		X: c.state.Viewport.X + r.X,
		Y: c.state.Viewport.Y + r.Y,
		W: r.W,
		H: r.H,
	}
}

// ResetState restores every state field to the defaults of Begin, emitting
// viewport and scissor commands where they change.
func (c *Context) ResetState() {
	if !c.inPass("ResetState") {
		return
	}
	c.ResetViewport()
	c.ResetScissor()
	c.state.Transform = Identity()
	c.ResetProject() // also recomputes the MVP
	c.state.Color = White
	c.state.Blend = BlendBlend
	c.state.Pipeline = 0
}
