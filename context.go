package gp

import (
	"fmt"
)

// Context is an immediate-mode 2D renderer. It owns the vertex, uniform and
// command arenas and the state stacks, and replays the command log against
// its Backend on Flush.
//
// A Context is not safe for concurrent use.
type Context struct {
	backend Backend
	desc    Desc
	valid   bool

	state          State
	stateStack     []State
	transformStack []Mat3

	vertices    arena[Vertex]
	texVertices arena[TexVertex]
	uniforms    arena[Uniform]
	commands    arena[Command]

	vertexBuf    Buffer
	texVertexBuf Buffer

	pipelines map[pipelineKey]Pipeline

	// staging is reused between flushes to encode vertex data.
	staging     []byte
	scratch     []Point
	rectScratch []Rect
	texScratch  []TexturedRect

	errCode ErrorCode
	errMsg  string
}

type pipelineKey struct {
	primitive PrimitiveType
	textured  bool
	blend     BlendMode
}

// builtinPipelines are created eagerly by New with the default blend mode.
var builtinPipelines = []pipelineKey{
	{primitive: PrimitiveTriangles, blend: BlendBlend},
	{primitive: PrimitivePoints, blend: BlendBlend},
	{primitive: PrimitiveLines, blend: BlendBlend},
	{primitive: PrimitiveTriangleStrip, blend: BlendBlend},
	{primitive: PrimitiveLineStrip, blend: BlendBlend},
	{primitive: PrimitiveTriangles, textured: true, blend: BlendBlend},
}

// New creates a Context drawing through b.
//
// New allocates the arenas, creates the two vertex buffers and the built-in
// pipelines. Any backend failure is returned wrapped in ErrInvalidBackend and
// leaves no backend resources behind.
func New(b Backend, opts ...Option) (*Context, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil backend", ErrInvalidBackend)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	desc := o.resolve()

	c := &Context{
		backend:        b,
		desc:           desc,
		stateStack:     make([]State, 0, MaxStateStackDepth),
		transformStack: make([]Mat3, 0, MaxTransformStackDepth),
		vertices:       newArena[Vertex](desc.MaxVertices),
		texVertices:    newArena[TexVertex](desc.MaxVertices),
		uniforms:       newArena[Uniform](desc.MaxUniforms),
		commands:       newArena[Command](desc.MaxCommands),
		pipelines:      make(map[pipelineKey]Pipeline, len(builtinPipelines)),
	}

	if err := c.setup(); err != nil {
		c.release()
		return nil, err
	}
	c.valid = true

	Logger().Debug("gp: context created",
		"max_vertices", desc.MaxVertices,
		"max_commands", desc.MaxCommands,
		"max_uniforms", desc.MaxUniforms)
	return c, nil
}

func (c *Context) setup() error {
	var err error
	c.vertexBuf, err = c.backend.CreateVertexBuffer("gp_vertices", c.desc.MaxVertices*VertexStride)
	if err != nil {
		return fmt.Errorf("%w: create vertex buffer: %w", ErrInvalidBackend, err)
	}
	c.texVertexBuf, err = c.backend.CreateVertexBuffer("gp_tex_vertices", c.desc.MaxVertices*TexVertexStride)
	if err != nil {
		return fmt.Errorf("%w: create textured vertex buffer: %w", ErrInvalidBackend, err)
	}
	for _, key := range builtinPipelines {
		if _, err := c.createPipeline(key); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidBackend, err)
		}
	}
	return nil
}

func (c *Context) createPipeline(key pipelineKey) (Pipeline, error) {
	desc := &PipelineDesc{
		Label:     pipelineLabel(key),
		Primitive: key.primitive,
		Textured:  key.textured,
		Blend:     key.blend,
	}
	p, err := c.backend.CreatePipeline(desc)
	if err != nil {
		return 0, fmt.Errorf("create pipeline %s: %w", desc.Label, err)
	}
	c.pipelines[key] = p
	Logger().Debug("gp: pipeline created", "label", desc.Label)
	return p, nil
}

func pipelineLabel(key pipelineKey) string {
	kind := "solid"
	if key.textured {
		kind = "textured"
	}
	return fmt.Sprintf("gp_%s_%s_%s", kind, key.primitive, key.blend)
}

// release destroys every backend resource owned by the context.
func (c *Context) release() {
	for key, p := range c.pipelines {
		c.backend.DestroyPipeline(p)
		delete(c.pipelines, key)
	}
	if c.texVertexBuf.IsValid() {
		c.backend.DestroyBuffer(c.texVertexBuf)
		c.texVertexBuf = 0
	}
	if c.vertexBuf.IsValid() {
		c.backend.DestroyBuffer(c.vertexBuf)
		c.vertexBuf = 0
	}
}

// Shutdown releases all backend resources. The context must not be used
// afterwards. Safe to call multiple times.
func (c *Context) Shutdown() {
	if !c.valid {
		return
	}
	c.release()
	c.valid = false
	c.stateStack = c.stateStack[:0]
	c.transformStack = c.transformStack[:0]
	Logger().Debug("gp: context shut down")
}

// IsValid reports whether the context was set up successfully and has not
// been shut down.
func (c *Context) IsValid() bool {
	return c.valid
}

// Desc returns the resolved configuration.
func (c *Context) Desc() Desc {
	return c.desc
}

// Backend returns the backend the context draws through.
func (c *Context) Backend() Backend {
	return c.backend
}

// inPass reports whether a Begin is active. Calls outside a pass are
// programming errors; they are logged and ignored.
func (c *Context) inPass(op string) bool {
	if !c.valid {
		Logger().Warn("gp: call on invalid context", "op", op)
		return false
	}
	if len(c.stateStack) == 0 {
		Logger().Warn("gp: call outside of Begin/End", "op", op)
		return false
	}
	return true
}
