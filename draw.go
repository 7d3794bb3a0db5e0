package gp

// appendStateCommand records a viewport or scissor change. A command of the
// same type directly before it in the pass affected no draw and is
// overwritten instead.
func (c *Context) appendStateCommand(typ CommandType, r IRect) bool {
	if prev := c.commands.last(c.state.BaseCommand); prev != nil && prev.Type == typ {
		prev.Rect = r
		return true
	}
	cmds, ok := c.commands.reserve(1)
	if !ok {
		c.setError(ErrorCodeCommandsFull, "command arena is full")
		return false
	}
	cmds[0] = Command{Type: typ, Rect: r}
	return true
}

// pipelineFor resolves the pipeline for a draw: the override set with
// SetPipeline, or the built-in pipeline for the primitive and blend mode,
// created on first use.
func (c *Context) pipelineFor(prim PrimitiveType, textured bool) (Pipeline, bool) {
	if c.state.Pipeline.IsValid() {
		return c.state.Pipeline, true
	}
	key := pipelineKey{primitive: prim, textured: textured, blend: c.state.Blend}
	if p, ok := c.pipelines[key]; ok {
		return p, true
	}
	p, err := c.createPipeline(key)
	if err != nil {
		c.setError(ErrorCodeBackendFailure, err.Error())
		return 0, false
	}
	return p, true
}

// uniformFor returns the uniform slot holding the current color, reusing
// the previous slot of the pass when it is identical.
func (c *Context) uniformFor() (int, bool) {
	u := Uniform{Color: c.state.Color}
	if prev := c.uniforms.last(c.state.BaseUniform); prev != nil && *prev == u {
		return c.uniforms.size() - 1, true
	}
	slots, ok := c.uniforms.reserve(1)
	if !ok {
		c.setError(ErrorCodeUniformsFull, "uniform arena is full")
		return 0, false
	}
	slots[0] = u
	return c.uniforms.size() - 1, true
}

// queueDraw records a draw of count vertices starting at first. It extends
// the previous draw of the pass when pipeline, image and uniform match and
// the vertex ranges are contiguous.
func (c *Context) queueDraw(pip Pipeline, img Image, first, count int, strip bool) {
	uniform, ok := c.uniformFor()
	if !ok {
		return
	}

	if prev := c.commands.last(c.state.BaseCommand); prev != nil && !strip && !prev.strip &&
		prev.Type == CmdDraw &&
		prev.Draw.Pipeline == pip &&
		prev.Draw.Image == img &&
		prev.Draw.Uniform == uniform &&
		prev.Draw.VertexIndex+prev.Draw.NumVertices == first {
		prev.Draw.NumVertices += count
		return
	}

	cmds, ok := c.commands.reserve(1)
	if !ok {
		c.setError(ErrorCodeCommandsFull, "command arena is full")
		return
	}
	cmds[0] = Command{
		Type: CmdDraw,
		Draw: DrawArgs{
			Pipeline:    pip,
			Image:       img,
			Uniform:     uniform,
			VertexIndex: first,
			NumVertices: count,
		},
		strip: strip,
	}
}

// drawSolid transforms points by the MVP into the plain vertex arena and
// queues a draw.
func (c *Context) drawSolid(prim PrimitiveType, pts []Point) {
	if len(pts) == 0 {
		return
	}
	pip, ok := c.pipelineFor(prim, false)
	if !ok {
		return
	}
	first := c.vertices.size()
	verts, ok := c.vertices.reserve(len(pts))
	if !ok {
		c.setError(ErrorCodeVerticesFull, "vertex arena is full")
		return
	}
	mvp := &c.state.MVP
	for i, p := range pts {
		verts[i].X, verts[i].Y = mvp.TransformPoint(p.X, p.Y)
	}
	c.queueDraw(pip, InvalidImage, first, len(pts), isStrip(prim))
}

func isStrip(prim PrimitiveType) bool {
	return prim == PrimitiveLineStrip || prim == PrimitiveTriangleStrip
}

// DrawPoints draws one point per element.
func (c *Context) DrawPoints(pts []Point) {
	if !c.inPass("DrawPoints") {
		return
	}
	c.drawSolid(PrimitivePoints, pts)
}

// DrawPoint draws a single point.
func (c *Context) DrawPoint(x, y float32) {
	if !c.inPass("DrawPoint") {
		return
	}
	c.drawSolid(PrimitivePoints, []Point{{X: x, Y: y}})
}

// DrawLines draws independent line segments.
func (c *Context) DrawLines(lines []Line) {
	if !c.inPass("DrawLines") {
		return
	}
	if len(lines) == 0 {
		return
	}
	pts := c.scratch[:0]
	for _, l := range lines {
		pts = append(pts, l.A, l.B)
	}
	c.scratch = pts
	c.drawSolid(PrimitiveLines, pts)
}

// DrawLine draws a single line segment.
func (c *Context) DrawLine(ax, ay, bx, by float32) {
	if !c.inPass("DrawLine") {
		return
	}
	c.drawSolid(PrimitiveLines, []Point{{X: ax, Y: ay}, {X: bx, Y: by}})
}

// DrawLinesStrip draws a connected polyline through pts.
func (c *Context) DrawLinesStrip(pts []Point) {
	if !c.inPass("DrawLinesStrip") {
		return
	}
	c.drawSolid(PrimitiveLineStrip, pts)
}

// DrawFilledTriangles draws independent filled triangles.
func (c *Context) DrawFilledTriangles(tris []Triangle) {
	if !c.inPass("DrawFilledTriangles") {
		return
	}
	if len(tris) == 0 {
		return
	}
	pts := c.scratch[:0]
	for _, t := range tris {
		pts = append(pts, t.A, t.B, t.C)
	}
	c.scratch = pts
	c.drawSolid(PrimitiveTriangles, pts)
}

// DrawFilledTriangle draws a single filled triangle.
func (c *Context) DrawFilledTriangle(ax, ay, bx, by, cx, cy float32) {
	if !c.inPass("DrawFilledTriangle") {
		return
	}
	c.drawSolid(PrimitiveTriangles, []Point{{X: ax, Y: ay}, {X: bx, Y: by}, {X: cx, Y: cy}})
}

// DrawFilledTrianglesStrip draws a triangle strip through pts.
func (c *Context) DrawFilledTrianglesStrip(pts []Point) {
	if !c.inPass("DrawFilledTrianglesStrip") {
		return
	}
	c.drawSolid(PrimitiveTriangleStrip, pts)
}

// rectCorners returns the six corners of r as two triangles:
// bottom-left, bottom-right, top-right, bottom-left, top-right, top-left.
func rectCorners(r Rect) [6]Point {
	bl := Point{X: r.X, Y: r.Y + r.H}
	br := Point{X: r.X + r.W, Y: r.Y + r.H}
	tr := Point{X: r.X + r.W, Y: r.Y}
	tl := Point{X: r.X, Y: r.Y}
	return [6]Point{bl, br, tr, bl, tr, tl}
}

// DrawFilledRects draws filled axis-aligned rectangles, each as two
// triangles.
func (c *Context) DrawFilledRects(rects []Rect) {
	if !c.inPass("DrawFilledRects") {
		return
	}
	if len(rects) == 0 {
		return
	}
	pts := c.scratch[:0]
	for _, r := range rects {
		corners := rectCorners(r)
		pts = append(pts, corners[:]...)
	}
	c.scratch = pts
	c.drawSolid(PrimitiveTriangles, pts)
}

// DrawFilledRect draws a single filled rectangle.
func (c *Context) DrawFilledRect(x, y, w, h float32) {
	if !c.inPass("DrawFilledRect") {
		return
	}
	corners := rectCorners(Rect{X: x, Y: y, W: w, H: h})
	c.drawSolid(PrimitiveTriangles, corners[:])
}

// Clear fills the whole viewport with the current color, ignoring the
// transform and projection. The scissor still applies.
func (c *Context) Clear() {
	if !c.inPass("Clear") {
		return
	}
	pip, ok := c.pipelineFor(PrimitiveTriangles, false)
	if !ok {
		return
	}
	first := c.vertices.size()
	verts, ok := c.vertices.reserve(6)
	if !ok {
		c.setError(ErrorCodeVerticesFull, "vertex arena is full")
		return
	}
	copy(verts, []Vertex{{-1, -1}, {1, -1}, {1, 1}, {-1, -1}, {1, 1}, {-1, 1}})
	c.queueDraw(pip, InvalidImage, first, 6, false)
}

// drawTextured writes textured rectangles with normalized source
// coordinates into the textured vertex arena.
func (c *Context) drawTextured(img Image, rects []TexturedRect) {
	if len(rects) == 0 {
		return
	}
	pip, ok := c.pipelineFor(PrimitiveTriangles, true)
	if !ok {
		return
	}
	n := 6 * len(rects)
	first := c.texVertices.size()
	verts, ok := c.texVertices.reserve(n)
	if !ok {
		c.setError(ErrorCodeVerticesFull, "textured vertex arena is full")
		return
	}
	mvp := &c.state.MVP
	for i, r := range rects {
		pos := rectCorners(r.Dst)
		u0, v0 := quantizeUV(r.Src.X), quantizeUV(r.Src.Y)
		u1, v1 := quantizeUV(r.Src.X+r.Src.W), quantizeUV(r.Src.Y+r.Src.H)
		uv := [6][2]uint16{{u0, v1}, {u1, v1}, {u1, v0}, {u0, v1}, {u1, v0}, {u0, v0}}
		out := verts[6*i : 6*i+6]
		for j := range out {
			out[j].X, out[j].Y = mvp.TransformPoint(pos[j].X, pos[j].Y)
			out[j].U, out[j].V = uv[j][0], uv[j][1]
		}
	}
	c.queueDraw(pip, img, first, n, false)
}

var fullSrc = Rect{X: 0, Y: 0, W: 1, H: 1}

// DrawTexturedRects draws each destination rectangle with the whole of img.
// An invalid img draws filled rectangles instead.
func (c *Context) DrawTexturedRects(img Image, rects []Rect) {
	if !c.inPass("DrawTexturedRects") {
		return
	}
	if !img.IsValid() {
		c.DrawFilledRects(rects)
		return
	}
	if len(rects) == 0 {
		return
	}
	trs := c.texScratch[:0]
	for _, r := range rects {
		trs = append(trs, TexturedRect{Dst: r, Src: fullSrc})
	}
	c.texScratch = trs
	c.drawTextured(img, trs)
}

// DrawTexturedRect draws img stretched over a destination rectangle.
func (c *Context) DrawTexturedRect(img Image, x, y, w, h float32) {
	if !c.inPass("DrawTexturedRect") {
		return
	}
	if !img.IsValid() {
		c.DrawFilledRect(x, y, w, h)
		return
	}
	c.drawTextured(img, []TexturedRect{{Dst: Rect{X: x, Y: y, W: w, H: h}, Src: fullSrc}})
}

// DrawTexturedRectsSrc draws sub-rectangles of img. Src rectangles are in
// texels and are normalized by the image size reported by the backend.
func (c *Context) DrawTexturedRectsSrc(img Image, rects []TexturedRect) {
	if !c.inPass("DrawTexturedRectsSrc") {
		return
	}
	if len(rects) == 0 {
		return
	}
	if !img.IsValid() {
		dst := c.rectScratch[:0]
		for _, r := range rects {
			dst = append(dst, r.Dst)
		}
		c.rectScratch = dst
		c.DrawFilledRects(dst)
		return
	}
	w, h, ok := c.backend.ImageSize(img)
	if !ok || w <= 0 || h <= 0 {
		Logger().Warn("gp: unknown image", "image", uint32(img))
		return
	}
	iw, ih := 1/float32(w), 1/float32(h)
	trs := c.texScratch[:0]
	for _, r := range rects {
		trs = append(trs, TexturedRect{
			Dst: r.Dst,
			Src: Rect{X: r.Src.X * iw, Y: r.Src.Y * ih, W: r.Src.W * iw, H: r.Src.H * ih},
		})
	}
	c.texScratch = trs
	c.drawTextured(img, trs)
}

// DrawTexturedRectSrc draws the src texel rectangle of img into dst.
func (c *Context) DrawTexturedRectSrc(img Image, dst, src Rect) {
	c.DrawTexturedRectsSrc(img, []TexturedRect{{Dst: dst, Src: src}})
}
