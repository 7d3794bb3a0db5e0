package gp

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestQuantizeUV(t *testing.T) {
	tests := []struct {
		in   float32
		want uint16
	}{
		{0, 0},
		{1, 65535},
		{0.5, 32768},
		{-0.5, 0},
		{2, 65535},
		{float32(math.NaN()), 0},
	}
	for _, tt := range tests {
		if got := quantizeUV(tt.in); got != tt.want {
			t.Errorf("quantizeUV(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAppendVertexBytes(t *testing.T) {
	buf := appendVertexBytes(nil, []Vertex{{X: 1, Y: -2}, {X: 0.5, Y: 3}})
	if len(buf) != 2*VertexStride {
		t.Fatalf("len = %d, want %d", len(buf), 2*VertexStride)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])); got != -2 {
		t.Errorf("vertex 0 Y = %v, want -2", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])); got != 0.5 {
		t.Errorf("vertex 1 X = %v, want 0.5", got)
	}

	// Reuses the buffer from the start.
	buf = appendVertexBytes(buf, []Vertex{{X: 7, Y: 8}})
	if len(buf) != VertexStride {
		t.Errorf("reused len = %d, want %d", len(buf), VertexStride)
	}
}

func TestAppendTexVertexBytes(t *testing.T) {
	buf := appendTexVertexBytes(nil, []TexVertex{{X: 1, Y: 2, U: 65535, V: 7}})
	if len(buf) != TexVertexStride {
		t.Fatalf("len = %d, want %d", len(buf), TexVertexStride)
	}
	if u := binary.LittleEndian.Uint16(buf[8:]); u != 65535 {
		t.Errorf("U = %d", u)
	}
	if v := binary.LittleEndian.Uint16(buf[10:]); v != 7 {
		t.Errorf("V = %d", v)
	}
}

func TestUniformBytes(t *testing.T) {
	b := Uniform{Color: RGBA(0.25, 0.5, 0.75, 1)}.Bytes()
	want := []float32{0.25, 0.5, 0.75, 1}
	for i, w := range want {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:])); got != w {
			t.Errorf("component %d = %v, want %v", i, got, w)
		}
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{CmdDraw.String(), "Draw"},
		{CmdScissor.String(), "Scissor"},
		{CommandType(99).String(), "Unknown"},
		{PrimitiveTriangleStrip.String(), "TriangleStrip"},
		{PrimitiveType(99).String(), "Unknown"},
		{BlendMul.String(), "Mul"},
		{BlendMode(99).String(), "Unknown"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestPipelineLabel(t *testing.T) {
	tests := []struct {
		key  pipelineKey
		want string
	}{
		{pipelineKey{primitive: PrimitiveTriangles, blend: BlendBlend}, "gp_solid_Triangles_Blend"},
		{pipelineKey{primitive: PrimitiveTriangles, textured: true, blend: BlendAdd}, "gp_textured_Triangles_Add"},
		{pipelineKey{primitive: PrimitiveLineStrip}, "gp_solid_LineStrip_None"},
	}
	for _, tt := range tests {
		if got := pipelineLabel(tt.key); got != tt.want {
			t.Errorf("pipelineLabel(%+v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestRectCorners(t *testing.T) {
	c := rectCorners(Rect{X: 1, Y: 2, W: 3, H: 4})
	want := [6]Point{{1, 6}, {4, 6}, {4, 2}, {1, 6}, {4, 2}, {1, 2}}
	if c != want {
		t.Errorf("rectCorners = %v, want %v", c, want)
	}
}
