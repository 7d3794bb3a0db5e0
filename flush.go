package gp

// Flush uploads the vertices written in the current pass and replays its
// commands against the backend, then rewinds the arenas to the start of the
// pass so the space can be reused.
//
// If an error was recorded since the outermost Begin, the arenas are still
// rewound but nothing is uploaded or drawn.
func (c *Context) Flush() {
	if !c.inPass("Flush") {
		return
	}
	st := &c.state

	cmds := c.commands.slice(st.BaseCommand)
	verts := c.vertices.slice(st.BaseVertex)
	texVerts := c.texVertices.slice(st.BaseTexVertex)

	// The rewound slots keep their contents until the next draw, so the
	// slices above stay usable for the replay below.
	c.commands.rewind(st.BaseCommand)
	c.vertices.rewind(st.BaseVertex)
	c.texVertices.rewind(st.BaseTexVertex)
	c.uniforms.rewind(st.BaseUniform)

	if c.errCode != ErrorCodeNone {
		Logger().Debug("gp: flush skipped", "error", c.errCode.String())
		return
	}
	if len(cmds) == 0 {
		return
	}

	if len(verts) > 0 {
		c.staging = appendVertexBytes(c.staging, verts)
		if err := c.backend.UpdateBuffer(c.vertexBuf, st.BaseVertex*VertexStride, c.staging); err != nil {
			c.setError(ErrorCodeBackendFailure, "upload vertices: "+err.Error())
			return
		}
	}
	if len(texVerts) > 0 {
		c.staging = appendTexVertexBytes(c.staging, texVerts)
		if err := c.backend.UpdateBuffer(c.texVertexBuf, st.BaseTexVertex*TexVertexStride, c.staging); err != nil {
			c.setError(ErrorCodeBackendFailure, "upload textured vertices: "+err.Error())
			return
		}
	}

	draws := c.replay(cmds)

	Logger().Debug("gp: flush",
		"commands", len(cmds),
		"draws", draws,
		"vertices", len(verts),
		"tex_vertices", len(texVerts))
}

// replay issues cmds to the backend, skipping pipeline, binding and uniform
// changes that would not change the applied state. It returns the number of
// draw calls issued.
func (c *Context) replay(cmds []Command) int {
	var (
		curPipeline Pipeline
		curImage    Image
		curUniform  = -1
		bound       bool
		draws       int
	)
	for i := range cmds {
		cmd := &cmds[i]
		switch cmd.Type {
		case CmdViewport:
			c.backend.ApplyViewport(cmd.Rect)
		case CmdScissor:
			c.backend.ApplyScissor(cmd.Rect)
		case CmdDraw:
			d := &cmd.Draw
			if d.NumVertices == 0 {
				continue
			}
			if d.Pipeline != curPipeline {
				c.backend.ApplyPipeline(d.Pipeline)
				curPipeline = d.Pipeline
				// Bindings and uniforms do not survive a pipeline change.
				bound = false
				curUniform = -1
			}
			if !bound || d.Image != curImage {
				buf := c.vertexBuf
				if d.Image.IsValid() {
					buf = c.texVertexBuf
				}
				c.backend.ApplyBindings(Bindings{VertexBuffer: buf, Image: d.Image})
				curImage = d.Image
				bound = true
			}
			if d.Uniform != curUniform {
				b := c.uniforms.buf[d.Uniform].Bytes()
				c.backend.ApplyUniforms(b[:])
				curUniform = d.Uniform
			}
			c.backend.Draw(d.VertexIndex, d.NumVertices)
			draws++
		}
	}
	return draws
}
