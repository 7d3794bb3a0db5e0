package recording

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gp"
)

// DecodeVertices decodes plain vertex bytes as uploaded by gp.
func DecodeVertices(data []byte) []gp.Vertex {
	n := len(data) / gp.VertexStride
	out := make([]gp.Vertex, n)
	for i := range out {
		b := data[i*gp.VertexStride:]
		out[i] = gp.Vertex{
			X: math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		}
	}
	return out
}

// DecodeTexVertices decodes textured vertex bytes as uploaded by gp.
func DecodeTexVertices(data []byte) []gp.TexVertex {
	n := len(data) / gp.TexVertexStride
	out := make([]gp.TexVertex, n)
	for i := range out {
		b := data[i*gp.TexVertexStride:]
		out[i] = gp.TexVertex{
			X: math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
			U: binary.LittleEndian.Uint16(b[8:]),
			V: binary.LittleEndian.Uint16(b[10:]),
		}
	}
	return out
}

// DecodeColor decodes a uniform block as an RGBA color. Short input yields
// the zero color.
func DecodeColor(data []byte) gp.Color {
	if len(data) < gp.UniformSize {
		return gp.Color{}
	}
	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}
	return gp.Color{R: f(0), G: f(4), B: f(8), A: f(12)}
}
