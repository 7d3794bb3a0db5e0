package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gp"
)

// LoadAction selects what happens to the render target when a pass begins.
type LoadAction uint8

const (
	// LoadActionClear clears the target to the pass clear color.
	LoadActionClear LoadAction = iota
	// LoadActionLoad keeps the existing contents of the target.
	LoadActionLoad
)

type span struct {
	start, end int
}

// frame is the state of the open render pass. The applied pipeline,
// bindings, uniform, viewport and scissor are cached so they can be
// restored when the pass is split.
type frame struct {
	active bool
	target hal.TextureView
	width  int
	height int
	clear  gp.Color

	encoder hal.CommandEncoder
	pass    hal.RenderPassEncoder

	viewport   gp.IRect
	scissor    gp.IRect
	pipeline   *pipelineEntry
	vertexBuf  *bufferEntry
	image      *imageEntry
	uniform    [gp.UniformSize]byte
	hasUniform bool

	// uniforms stages the uniform slots of the open submission.
	uniforms []byte
	// written holds the vertex ranges uploaded for the open submission.
	written map[*bufferEntry][]span

	// pending holds submitted work not yet known to be complete.
	pending []submission
}

type submission struct {
	encoder hal.CommandEncoder
	cmdBuf  hal.CommandBuffer
}

func (f *frame) overlaps(buf *bufferEntry, r span) bool {
	for _, w := range f.written[buf] {
		if r.start < w.end && w.start < r.end {
			return true
		}
	}
	return false
}

func (f *frame) markWritten(buf *bufferEntry, r span) {
	if f.written == nil {
		f.written = make(map[*bufferEntry][]span)
	}
	f.written[buf] = append(f.written[buf], r)
}

// BeginPass starts recording into target, a width x height color view in
// the configured color format. Viewport and scissor start at the full
// target.
func (b *Backend) BeginPass(target hal.TextureView, width, height int, load LoadAction, clearColor gp.Color) error {
	if b.closed {
		return ErrClosed
	}
	if b.frame.active {
		return ErrPassActive
	}
	if target == nil || width <= 0 || height <= 0 {
		return fmt.Errorf("native: invalid pass target %dx%d", width, height)
	}
	b.frame.target = target
	b.frame.width = width
	b.frame.height = height
	b.frame.clear = clearColor
	b.frame.viewport = gp.IRect{W: width, H: height}
	b.frame.scissor = gp.IRect{W: width, H: height}
	b.frame.pipeline = nil
	b.frame.vertexBuf = nil
	b.frame.image = nil
	b.frame.hasUniform = false

	if err := b.openPass(load); err != nil {
		return err
	}
	b.frame.active = true
	return nil
}

// EndPass ends the pass, submits it and waits for the GPU to finish.
func (b *Backend) EndPass() error {
	if !b.frame.active {
		return ErrNoPass
	}
	b.frame.active = false
	b.frame.target = nil
	err := b.submitPass()
	if werr := b.waitIdle(); err == nil {
		err = werr
	}
	return err
}

// openPass creates an encoder and begins a render pass on the frame target,
// then restores the cached state.
func (b *Backend) openPass(load LoadAction) error {
	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "gp_frame"})
	if err != nil {
		return fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("gp_frame"); err != nil {
		encoder.Destroy()
		return fmt.Errorf("native: begin encoding: %w", err)
	}

	loadOp := gputypes.LoadOpClear
	if load == LoadActionLoad {
		loadOp = gputypes.LoadOpLoad
	}
	c := b.frame.clear
	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "gp_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       b.frame.target,
				LoadOp:     loadOp,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)},
			},
		},
	})
	b.frame.encoder = encoder
	b.frame.pass = pass
	b.frame.uniforms = b.frame.uniforms[:0]
	clear(b.frame.written)

	b.setViewport(b.frame.viewport)
	b.setScissor(b.frame.scissor)
	if b.frame.pipeline != nil {
		pass.SetPipeline(b.frame.pipeline.raw)
		b.bindVertexState()
		if b.frame.hasUniform {
			b.pushUniform(b.frame.uniform[:])
		}
	}
	return nil
}

// submitPass ends the render pass, uploads the staged uniforms and submits
// the command buffer. The encoder and command buffer are released by
// waitIdle.
func (b *Backend) submitPass() error {
	pass, encoder := b.frame.pass, b.frame.encoder
	b.frame.pass, b.frame.encoder = nil, nil
	if pass == nil {
		return nil
	}
	pass.End()

	if len(b.frame.uniforms) > 0 {
		if err := b.queue.WriteBuffer(b.uniformBuf, 0, b.frame.uniforms); err != nil {
			encoder.DiscardEncoding()
			encoder.Destroy()
			return fmt.Errorf("native: write uniforms: %w", err)
		}
	}
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.Destroy()
		return fmt.Errorf("native: end encoding: %w", err)
	}
	b.frame.pending = append(b.frame.pending, submission{encoder: encoder, cmdBuf: cmdBuf})
	if _, err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("native: submit: %w", err)
	}
	return nil
}

// waitIdle blocks until the GPU is idle and releases submitted command
// buffers.
func (b *Backend) waitIdle() error {
	err := b.device.WaitIdle()
	for _, sub := range b.frame.pending {
		b.device.FreeCommandBuffer(sub.cmdBuf)
		sub.encoder.Destroy()
	}
	clear(b.frame.pending)
	b.frame.pending = b.frame.pending[:0]
	if err != nil {
		return fmt.Errorf("native: wait idle: %w", err)
	}
	return nil
}

// splitPass submits the recorded work and continues in a new pass that
// keeps the target contents.
func (b *Backend) splitPass() error {
	if err := b.submitPass(); err != nil {
		b.frame.active = false
		return err
	}
	// Staged uniforms and uploads are reused once the GPU has consumed them.
	if err := b.waitIdle(); err != nil {
		b.frame.active = false
		return err
	}
	if err := b.openPass(LoadActionLoad); err != nil {
		b.frame.active = false
		return err
	}
	gp.Logger().Debug("native: render pass split")
	return nil
}

// discardPass drops an open pass without submitting it.
func (b *Backend) discardPass() {
	if b.frame.pass != nil {
		b.frame.pass.End()
		b.frame.encoder.DiscardEncoding()
		b.frame.encoder.Destroy()
		b.frame.pass, b.frame.encoder = nil, nil
	}
	b.frame.active = false
	b.frame.target = nil
}

func (b *Backend) recording(op string) bool {
	if !b.frame.active {
		gp.Logger().Warn("native: call outside of BeginPass/EndPass", "op", op)
		return false
	}
	return true
}

// ApplyViewport sets the viewport in target pixels.
func (b *Backend) ApplyViewport(r gp.IRect) {
	if !b.recording("ApplyViewport") {
		return
	}
	b.frame.viewport = r
	b.setViewport(r)
}

func (b *Backend) setViewport(r gp.IRect) {
	b.frame.pass.SetViewport(float32(r.X), float32(r.Y), float32(max(r.W, 0)), float32(max(r.H, 0)), 0, 1)
}

// ApplyScissor sets the scissor rectangle, clamped to the target.
func (b *Backend) ApplyScissor(r gp.IRect) {
	if !b.recording("ApplyScissor") {
		return
	}
	b.frame.scissor = r
	b.setScissor(r)
}

func (b *Backend) setScissor(r gp.IRect) {
	x, y, w, h := clampRect(r, b.frame.width, b.frame.height)
	b.frame.pass.SetScissorRect(x, y, w, h)
}

// clampRect intersects r with the target bounds.
func clampRect(r gp.IRect, width, height int) (x, y, w, h uint32) {
	x0 := min(max(r.X, 0), width)
	y0 := min(max(r.Y, 0), height)
	x1 := min(max(r.X+r.W, x0), width)
	y1 := min(max(r.Y+r.H, y0), height)
	return uint32(x0), uint32(y0), uint32(x1 - x0), uint32(y1 - y0)
}

// ApplyPipeline binds a pipeline created by CreatePipeline.
func (b *Backend) ApplyPipeline(p gp.Pipeline) {
	if !b.recording("ApplyPipeline") {
		return
	}
	entry, ok := b.pipelines[p]
	if !ok {
		gp.Logger().Warn("native: unknown pipeline", "pipeline", uint32(p))
		return
	}
	b.frame.pipeline = entry
	b.frame.vertexBuf = nil
	b.frame.image = nil
	b.frame.hasUniform = false
	b.frame.pass.SetPipeline(entry.raw)
}

// ApplyBindings binds the vertex buffer and, for textured pipelines, the
// image.
func (b *Backend) ApplyBindings(bnd gp.Bindings) {
	if !b.recording("ApplyBindings") {
		return
	}
	buf, ok := b.buffers[bnd.VertexBuffer]
	if !ok {
		gp.Logger().Warn("native: unknown vertex buffer", "buffer", uint32(bnd.VertexBuffer))
		return
	}
	b.frame.vertexBuf = buf
	b.frame.image = nil
	if bnd.Image.IsValid() {
		img, ok := b.images[bnd.Image]
		if !ok {
			gp.Logger().Warn("native: unknown image", "image", uint32(bnd.Image))
		}
		b.frame.image = img
	}
	b.bindVertexState()
}

func (b *Backend) bindVertexState() {
	if b.frame.vertexBuf != nil {
		b.frame.pass.SetVertexBuffer(0, b.frame.vertexBuf.raw, 0)
	}
	if b.frame.image != nil && b.frame.pipeline != nil && b.frame.pipeline.textured {
		b.frame.pass.SetBindGroup(1, b.frame.image.group, nil)
	}
}

// ApplyUniforms stages data in the next uniform slot and binds it with a
// dynamic offset. A full uniform buffer splits the pass.
func (b *Backend) ApplyUniforms(data []byte) {
	if !b.recording("ApplyUniforms") {
		return
	}
	if len(data) > gp.UniformSize {
		data = data[:gp.UniformSize]
	}
	b.frame.uniform = [gp.UniformSize]byte{}
	copy(b.frame.uniform[:], data)
	b.frame.hasUniform = true

	if len(b.frame.uniforms)/uniformSlotSize >= b.opts.maxUniforms {
		// openPass re-pushes the current uniform.
		if err := b.splitPass(); err != nil {
			gp.Logger().Warn("native: split pass failed", "err", err)
		}
		return
	}
	b.pushUniform(b.frame.uniform[:])
}

// pushUniform appends a 256-byte slot and binds group 0 at its offset.
func (b *Backend) pushUniform(data []byte) {
	offset := len(b.frame.uniforms)
	var slot [uniformSlotSize]byte
	copy(slot[:], data)
	b.frame.uniforms = append(b.frame.uniforms, slot[:]...)
	b.frame.pass.SetBindGroup(0, b.uniformGroup, []uint32{uint32(offset)})
}

// Draw issues a non-indexed draw.
func (b *Backend) Draw(first, count int) {
	if !b.recording("Draw") {
		return
	}
	if count <= 0 || b.frame.pipeline == nil || b.frame.vertexBuf == nil {
		return
	}
	if b.frame.pipeline.textured && b.frame.image == nil {
		return
	}
	b.frame.pass.Draw(uint32(count), 1, uint32(first), 0)
}
