package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gp"
)

type pipelineEntry struct {
	raw      hal.RenderPipeline
	textured bool
	desc     gp.PipelineDesc
}

var topologies = [...]gputypes.PrimitiveTopology{
	gp.PrimitivePoints:        gputypes.PrimitiveTopologyPointList,
	gp.PrimitiveLines:         gputypes.PrimitiveTopologyLineList,
	gp.PrimitiveLineStrip:     gputypes.PrimitiveTopologyLineStrip,
	gp.PrimitiveTriangles:     gputypes.PrimitiveTopologyTriangleList,
	gp.PrimitiveTriangleStrip: gputypes.PrimitiveTopologyTriangleStrip,
}

// blendState maps a blend mode to a color target blend state. BlendNone
// returns nil, which disables blending.
func blendState(mode gp.BlendMode) *gputypes.BlendState {
	var s gputypes.BlendState
	switch mode {
	case gp.BlendNone:
		return nil
	case gp.BlendBlend:
		s = gputypes.BlendStateAlpha()
	case gp.BlendAdd:
		s = gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorZero,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	case gp.BlendMod:
		s = gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDst,
				DstFactor: gputypes.BlendFactorZero,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorZero,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	case gp.BlendMul:
		s = gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDst,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDstAlpha,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	default:
		s = gputypes.BlendStateAlpha()
	}
	return &s
}

// vertexLayout returns the vertex buffer layout for plain or textured
// vertices.
func vertexLayout(textured bool) []gputypes.VertexBufferLayout {
	if !textured {
		return []gputypes.VertexBufferLayout{
			{
				ArrayStride: gp.VertexStride,
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes: []gputypes.VertexAttribute{
					{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				},
			},
		}
	}
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: gp.TexVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatUnorm16x2, Offset: 8, ShaderLocation: 1}, // uv
			},
		},
	}
}

// CreatePipeline builds a render pipeline for desc against the configured
// color format.
func (b *Backend) CreatePipeline(desc *gp.PipelineDesc) (gp.Pipeline, error) {
	if b.closed {
		return 0, ErrClosed
	}
	if desc == nil || int(desc.Primitive) >= len(topologies) {
		return 0, fmt.Errorf("native: invalid pipeline descriptor")
	}

	shader, layout := b.solidShader, b.solidLayout
	if desc.Textured {
		shader, layout = b.texturedShader, b.texturedLayout
	}

	raw, err := b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(desc.Textured),
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    b.opts.colorFormat,
					Blend:     blendState(desc.Blend),
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: topologies[desc.Primitive],
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return 0, fmt.Errorf("native: create pipeline %s: %w", desc.Label, err)
	}

	id := gp.Pipeline(b.allocID())
	b.pipelines[id] = &pipelineEntry{raw: raw, textured: desc.Textured, desc: *desc}
	return id, nil
}

// DestroyPipeline releases a pipeline.
func (b *Backend) DestroyPipeline(p gp.Pipeline) {
	entry, ok := b.pipelines[p]
	if !ok {
		return
	}
	if b.frame.pipeline == entry {
		b.frame.pipeline = nil
	}
	b.device.DestroyRenderPipeline(entry.raw)
	delete(b.pipelines, p)
}
