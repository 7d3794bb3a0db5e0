package recording

import (
	"fmt"

	"github.com/gogpu/gp"
	"github.com/gogpu/gp/backend"
)

func init() {
	backend.Register(backend.Recording, func() (gp.Backend, error) {
		return NewRecorder(), nil
	})
}

// Recorder is a gp.Backend that performs no GPU work. It records every call
// as a typed Call and mirrors buffer uploads in memory so tests can inspect
// exactly what a gp.Context submitted.
//
// Example:
//
//	rec := recording.NewRecorder()
//	ctx, _ := gp.New(rec)
//	ctx.Begin(100, 100)
//	ctx.DrawFilledRect(0, 0, 10, 10)
//	ctx.Flush()
//	ctx.End()
//	draws := rec.CallsOf(recording.CallDraw)
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	calls     []Call
	nextID    uint32
	pipelines map[gp.Pipeline]gp.PipelineDesc
	buffers   map[gp.Buffer][]byte
	images    map[gp.Image][2]int

	// Errors injected into the next calls of the matching kind. They stay
	// set until cleared.
	FailCreatePipeline error
	FailCreateBuffer   error
	FailUpdateBuffer   error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		pipelines: make(map[gp.Pipeline]gp.PipelineDesc),
		buffers:   make(map[gp.Buffer][]byte),
		images:    make(map[gp.Image][2]int),
	}
}

func (r *Recorder) allocID() uint32 {
	r.nextID++
	return r.nextID
}

// AddImage registers a width x height image and returns its handle.
func (r *Recorder) AddImage(width, height int) gp.Image {
	id := gp.Image(r.allocID())
	r.images[id] = [2]int{width, height}
	return id
}

// CreatePipeline implements gp.Backend.
func (r *Recorder) CreatePipeline(desc *gp.PipelineDesc) (gp.Pipeline, error) {
	if r.FailCreatePipeline != nil {
		return 0, r.FailCreatePipeline
	}
	if desc == nil {
		return 0, fmt.Errorf("recording: nil pipeline descriptor")
	}
	id := gp.Pipeline(r.allocID())
	r.pipelines[id] = *desc
	r.calls = append(r.calls, CreatePipelineCall{Pipeline: id, Desc: *desc})
	return id, nil
}

// DestroyPipeline implements gp.Backend.
func (r *Recorder) DestroyPipeline(p gp.Pipeline) {
	delete(r.pipelines, p)
	r.calls = append(r.calls, DestroyPipelineCall{Pipeline: p})
}

// CreateVertexBuffer implements gp.Backend.
func (r *Recorder) CreateVertexBuffer(label string, size int) (gp.Buffer, error) {
	if r.FailCreateBuffer != nil {
		return 0, r.FailCreateBuffer
	}
	if size <= 0 {
		return 0, fmt.Errorf("recording: invalid buffer size %d", size)
	}
	id := gp.Buffer(r.allocID())
	r.buffers[id] = make([]byte, size)
	r.calls = append(r.calls, CreateVertexBufferCall{Buffer: id, Label: label, Size: size})
	return id, nil
}

// DestroyBuffer implements gp.Backend.
func (r *Recorder) DestroyBuffer(b gp.Buffer) {
	delete(r.buffers, b)
	r.calls = append(r.calls, DestroyBufferCall{Buffer: b})
}

// UpdateBuffer implements gp.Backend.
func (r *Recorder) UpdateBuffer(b gp.Buffer, offset int, data []byte) error {
	if r.FailUpdateBuffer != nil {
		return r.FailUpdateBuffer
	}
	mem, ok := r.buffers[b]
	if !ok {
		return fmt.Errorf("recording: unknown buffer %d", b)
	}
	if offset < 0 || offset+len(data) > len(mem) {
		return fmt.Errorf("recording: write [%d, %d) out of range (%d bytes)", offset, offset+len(data), len(mem))
	}
	copy(mem[offset:], data)
	r.calls = append(r.calls, UpdateBufferCall{Buffer: b, Offset: offset, Data: append([]byte(nil), data...)})
	return nil
}

// ImageSize implements gp.Backend.
func (r *Recorder) ImageSize(img gp.Image) (w, h int, ok bool) {
	size, ok := r.images[img]
	return size[0], size[1], ok
}

// ApplyViewport implements gp.Backend.
func (r *Recorder) ApplyViewport(rect gp.IRect) {
	r.calls = append(r.calls, ViewportCall{Rect: rect})
}

// ApplyScissor implements gp.Backend.
func (r *Recorder) ApplyScissor(rect gp.IRect) {
	r.calls = append(r.calls, ScissorCall{Rect: rect})
}

// ApplyPipeline implements gp.Backend.
func (r *Recorder) ApplyPipeline(p gp.Pipeline) {
	r.calls = append(r.calls, PipelineCall{Pipeline: p})
}

// ApplyBindings implements gp.Backend.
func (r *Recorder) ApplyBindings(b gp.Bindings) {
	r.calls = append(r.calls, BindingsCall{Bindings: b})
}

// ApplyUniforms implements gp.Backend.
func (r *Recorder) ApplyUniforms(data []byte) {
	r.calls = append(r.calls, UniformsCall{Data: append([]byte(nil), data...)})
}

// Draw implements gp.Backend.
func (r *Recorder) Draw(first, count int) {
	r.calls = append(r.calls, DrawCall{First: first, Count: count})
}

// --------------------------------------------------------------------------
// Inspection
// --------------------------------------------------------------------------

// Calls returns all recorded calls in order.
func (r *Recorder) Calls() []Call {
	return r.calls
}

// CallsOf returns the recorded calls of type t in order.
func (r *Recorder) CallsOf(t CallType) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Type() == t {
			out = append(out, c)
		}
	}
	return out
}

// Draws returns the recorded draw calls in order.
func (r *Recorder) Draws() []DrawCall {
	var out []DrawCall
	for _, c := range r.calls {
		if d, ok := c.(DrawCall); ok {
			out = append(out, d)
		}
	}
	return out
}

// Reset discards the recorded calls. Resources and buffer contents are
// kept.
func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
}

// Pipeline returns the descriptor a pipeline was created with.
func (r *Recorder) Pipeline(p gp.Pipeline) (gp.PipelineDesc, bool) {
	desc, ok := r.pipelines[p]
	return desc, ok
}

// BufferData returns the current contents of a buffer.
func (r *Recorder) BufferData(b gp.Buffer) []byte {
	return r.buffers[b]
}

// Finish returns an immutable Recording of the calls made so far and
// resets the call log.
func (r *Recorder) Finish() *Recording {
	calls := make([]Call, len(r.calls))
	copy(calls, r.calls)
	r.Reset()
	return &Recording{calls: calls}
}

var _ gp.Backend = (*Recorder)(nil)
