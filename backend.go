package gp

// Pipeline is an opaque handle to a backend render pipeline.
// The zero value is the invalid pipeline.
type Pipeline uint32

// Image is an opaque handle to a backend texture.
// The zero value ([InvalidImage]) means "untextured".
type Image uint32

// Buffer is an opaque handle to a backend vertex buffer.
type Buffer uint32

// InvalidImage is the handle used by untextured draws.
const InvalidImage Image = 0

// IsValid reports whether the pipeline handle is non-zero.
func (p Pipeline) IsValid() bool { return p != 0 }

// IsValid reports whether the image handle is non-zero.
func (i Image) IsValid() bool { return i != 0 }

// IsValid reports whether the buffer handle is non-zero.
func (b Buffer) IsValid() bool { return b != 0 }

// PrimitiveType selects how vertices are assembled.
type PrimitiveType uint8

const (
	PrimitivePoints PrimitiveType = iota
	PrimitiveLines
	PrimitiveLineStrip
	PrimitiveTriangles
	PrimitiveTriangleStrip

	primitiveCount
)

var primitiveNames = [...]string{
	PrimitivePoints:        "Points",
	PrimitiveLines:         "Lines",
	PrimitiveLineStrip:     "LineStrip",
	PrimitiveTriangles:     "Triangles",
	PrimitiveTriangleStrip: "TriangleStrip",
}

// String returns the string representation of a PrimitiveType.
func (p PrimitiveType) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return "Unknown"
}

// BlendMode selects how drawn pixels combine with the target.
type BlendMode uint8

const (
	// BlendNone overwrites the destination.
	BlendNone BlendMode = iota
	// BlendBlend is standard alpha blending (src-alpha, one-minus-src-alpha).
	BlendBlend
	// BlendAdd adds source to destination weighted by source alpha.
	BlendAdd
	// BlendMod multiplies the destination by the source color.
	BlendMod
	// BlendMul multiplies source and destination and blends by alpha.
	BlendMul

	blendModeCount
)

var blendModeNames = [...]string{
	BlendNone:  "None",
	BlendBlend: "Blend",
	BlendAdd:   "Add",
	BlendMod:   "Mod",
	BlendMul:   "Mul",
}

// String returns the string representation of a BlendMode.
func (b BlendMode) String() string {
	if int(b) < len(blendModeNames) {
		return blendModeNames[b]
	}
	return "Unknown"
}

// PipelineDesc describes one of the built-in pipelines.
//
// Solid pipelines consume [Vertex] data and output the uniform color.
// Textured pipelines consume [TexVertex] data and output the sampled texel
// multiplied by the uniform color.
type PipelineDesc struct {
	Label     string
	Primitive PrimitiveType
	Textured  bool
	Blend     BlendMode
}

// Bindings are the resources bound before a draw.
type Bindings struct {
	// VertexBuffer is either the plain or the textured vertex buffer.
	VertexBuffer Buffer
	// Image is InvalidImage for untextured draws.
	Image Image
}

// Backend is the GPU abstraction gp replays its command log against.
//
// Implementations own devices, shaders and buffers. gp calls the setup
// methods from New and Shutdown, and the Apply/Draw methods only from
// Context.Flush, in command order. A Backend is used from a single goroutine.
type Backend interface {
	// CreatePipeline builds a pipeline for desc.
	CreatePipeline(desc *PipelineDesc) (Pipeline, error)

	// DestroyPipeline releases a pipeline created by CreatePipeline.
	DestroyPipeline(p Pipeline)

	// CreateVertexBuffer allocates a vertex buffer of size bytes.
	CreateVertexBuffer(label string, size int) (Buffer, error)

	// DestroyBuffer releases a buffer created by CreateVertexBuffer.
	DestroyBuffer(b Buffer)

	// UpdateBuffer uploads data into b starting at offset bytes.
	UpdateBuffer(b Buffer, offset int, data []byte) error

	// ImageSize returns the pixel size of img. ok is false for unknown images.
	ImageSize(img Image) (w, h int, ok bool)

	// ApplyViewport sets the viewport in device pixels (top-left origin).
	ApplyViewport(r IRect)

	// ApplyScissor sets the scissor rectangle in device pixels.
	ApplyScissor(r IRect)

	// ApplyPipeline binds a pipeline. Bindings and uniforms must be applied
	// again after a pipeline change.
	ApplyPipeline(p Pipeline)

	// ApplyBindings binds the vertex buffer and optional image.
	ApplyBindings(b Bindings)

	// ApplyUniforms uploads the uniform block for the following draws.
	ApplyUniforms(data []byte)

	// Draw issues a non-indexed draw of count vertices starting at first,
	// with an instance count of 1.
	Draw(first, count int)
}
