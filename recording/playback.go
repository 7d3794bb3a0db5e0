package recording

import (
	"fmt"

	"github.com/gogpu/gp"
)

// Recording is an immutable list of backend calls. It can be replayed to
// any gp.Backend.
type Recording struct {
	calls []Call
}

// Calls returns the recorded calls.
func (r *Recording) Calls() []Call {
	return r.calls
}

// Playback replays the recording to target. Pipelines and buffers created
// in the recording are created on target and their handles translated.
// images maps recorded image handles to target handles; unmapped images are
// replayed as gp.InvalidImage.
//
// Handles used by the recording but created before it began cannot be
// translated and make Playback fail.
func (r *Recording) Playback(target gp.Backend, images map[gp.Image]gp.Image) error {
	pipelines := make(map[gp.Pipeline]gp.Pipeline)
	buffers := make(map[gp.Buffer]gp.Buffer)

	for i, call := range r.calls {
		switch c := call.(type) {
		case CreatePipelineCall:
			desc := c.Desc
			p, err := target.CreatePipeline(&desc)
			if err != nil {
				return fmt.Errorf("recording: playback call %d: %w", i, err)
			}
			pipelines[c.Pipeline] = p
		case DestroyPipelineCall:
			if p, ok := pipelines[c.Pipeline]; ok {
				target.DestroyPipeline(p)
				delete(pipelines, c.Pipeline)
			}
		case CreateVertexBufferCall:
			b, err := target.CreateVertexBuffer(c.Label, c.Size)
			if err != nil {
				return fmt.Errorf("recording: playback call %d: %w", i, err)
			}
			buffers[c.Buffer] = b
		case DestroyBufferCall:
			if b, ok := buffers[c.Buffer]; ok {
				target.DestroyBuffer(b)
				delete(buffers, c.Buffer)
			}
		case UpdateBufferCall:
			b, ok := buffers[c.Buffer]
			if !ok {
				return fmt.Errorf("recording: playback call %d: unknown buffer %d", i, c.Buffer)
			}
			if err := target.UpdateBuffer(b, c.Offset, c.Data); err != nil {
				return fmt.Errorf("recording: playback call %d: %w", i, err)
			}
		case ViewportCall:
			target.ApplyViewport(c.Rect)
		case ScissorCall:
			target.ApplyScissor(c.Rect)
		case PipelineCall:
			p, ok := pipelines[c.Pipeline]
			if !ok {
				return fmt.Errorf("recording: playback call %d: unknown pipeline %d", i, c.Pipeline)
			}
			target.ApplyPipeline(p)
		case BindingsCall:
			b, ok := buffers[c.Bindings.VertexBuffer]
			if !ok {
				return fmt.Errorf("recording: playback call %d: unknown buffer %d", i, c.Bindings.VertexBuffer)
			}
			target.ApplyBindings(gp.Bindings{VertexBuffer: b, Image: images[c.Bindings.Image]})
		case UniformsCall:
			target.ApplyUniforms(c.Data)
		case DrawCall:
			target.Draw(c.First, c.Count)
		}
	}
	return nil
}
