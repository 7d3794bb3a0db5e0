package recording

import "github.com/gogpu/gp"

// CallType identifies the type of a recorded backend call.
type CallType uint8

const (
	// Setup calls
	CallCreatePipeline     CallType = iota // Create a pipeline
	CallDestroyPipeline                    // Destroy a pipeline
	CallCreateVertexBuffer                 // Create a vertex buffer
	CallDestroyBuffer                      // Destroy a vertex buffer

	// Upload calls
	CallUpdateBuffer // Upload a buffer sub-range

	// Pass calls
	CallApplyViewport // Set viewport
	CallApplyScissor  // Set scissor rectangle
	CallApplyPipeline // Bind pipeline
	CallApplyBindings // Bind vertex buffer and image
	CallApplyUniforms // Upload uniform block
	CallDraw          // Draw a vertex range
)

// callTypeNames maps CallType values to their string representation.
var callTypeNames = [...]string{
	CallCreatePipeline:     "CreatePipeline",
	CallDestroyPipeline:    "DestroyPipeline",
	CallCreateVertexBuffer: "CreateVertexBuffer",
	CallDestroyBuffer:      "DestroyBuffer",
	CallUpdateBuffer:       "UpdateBuffer",
	CallApplyViewport:      "ApplyViewport",
	CallApplyScissor:       "ApplyScissor",
	CallApplyPipeline:      "ApplyPipeline",
	CallApplyBindings:      "ApplyBindings",
	CallApplyUniforms:      "ApplyUniforms",
	CallDraw:               "Draw",
}

// String returns the string representation of a CallType.
func (c CallType) String() string {
	if int(c) < len(callTypeNames) {
		return callTypeNames[c]
	}
	return "Unknown"
}

// Call is the interface implemented by all recorded calls.
type Call interface {
	// Type returns the CallType for this call.
	Type() CallType
}

// --------------------------------------------------------------------------
// Setup Calls
// --------------------------------------------------------------------------

// CreatePipelineCall records a successful CreatePipeline.
type CreatePipelineCall struct {
	// Pipeline is the handle returned to the caller.
	Pipeline gp.Pipeline
	// Desc is a copy of the descriptor.
	Desc gp.PipelineDesc
}

// Type implements Call.
func (CreatePipelineCall) Type() CallType { return CallCreatePipeline }

// DestroyPipelineCall records DestroyPipeline.
type DestroyPipelineCall struct {
	Pipeline gp.Pipeline
}

// Type implements Call.
func (DestroyPipelineCall) Type() CallType { return CallDestroyPipeline }

// CreateVertexBufferCall records a successful CreateVertexBuffer.
type CreateVertexBufferCall struct {
	Buffer gp.Buffer
	Label  string
	Size   int
}

// Type implements Call.
func (CreateVertexBufferCall) Type() CallType { return CallCreateVertexBuffer }

// DestroyBufferCall records DestroyBuffer.
type DestroyBufferCall struct {
	Buffer gp.Buffer
}

// Type implements Call.
func (DestroyBufferCall) Type() CallType { return CallDestroyBuffer }

// --------------------------------------------------------------------------
// Upload Calls
// --------------------------------------------------------------------------

// UpdateBufferCall records UpdateBuffer.
type UpdateBufferCall struct {
	Buffer gp.Buffer
	Offset int
	// Data is a copy of the uploaded bytes.
	Data []byte
}

// Type implements Call.
func (UpdateBufferCall) Type() CallType { return CallUpdateBuffer }

// --------------------------------------------------------------------------
// Pass Calls
// --------------------------------------------------------------------------

// ViewportCall records ApplyViewport.
type ViewportCall struct {
	Rect gp.IRect
}

// Type implements Call.
func (ViewportCall) Type() CallType { return CallApplyViewport }

// ScissorCall records ApplyScissor.
type ScissorCall struct {
	Rect gp.IRect
}

// Type implements Call.
func (ScissorCall) Type() CallType { return CallApplyScissor }

// PipelineCall records ApplyPipeline.
type PipelineCall struct {
	Pipeline gp.Pipeline
}

// Type implements Call.
func (PipelineCall) Type() CallType { return CallApplyPipeline }

// BindingsCall records ApplyBindings.
type BindingsCall struct {
	Bindings gp.Bindings
}

// Type implements Call.
func (BindingsCall) Type() CallType { return CallApplyBindings }

// UniformsCall records ApplyUniforms.
type UniformsCall struct {
	// Data is a copy of the uniform block.
	Data []byte
}

// Type implements Call.
func (UniformsCall) Type() CallType { return CallApplyUniforms }

// Color decodes the uniform block as an RGBA color.
func (c UniformsCall) Color() gp.Color {
	return DecodeColor(c.Data)
}

// DrawCall records Draw.
type DrawCall struct {
	First int
	Count int
}

// Type implements Call.
func (DrawCall) Type() CallType { return CallDraw }
