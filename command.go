package gp

import (
	"encoding/binary"
	"math"
)

// CommandType identifies the variant of a Command.
type CommandType uint8

const (
	CmdNone     CommandType = iota // Empty slot
	CmdViewport                    // Set viewport
	CmdScissor                     // Set scissor rectangle
	CmdDraw                        // Draw a vertex range
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdNone:     "None",
	CmdViewport: "Viewport",
	CmdScissor:  "Scissor",
	CmdDraw:     "Draw",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// DrawArgs is the payload of a CmdDraw command.
type DrawArgs struct {
	Pipeline Pipeline
	// Image is InvalidImage for untextured draws. It also selects which
	// vertex arena VertexIndex refers to.
	Image       Image
	Uniform     int
	VertexIndex int
	NumVertices int
}

// Command is one record of the command log. Type selects which payload is
// meaningful: Draw for CmdDraw, Rect for CmdViewport and CmdScissor.
type Command struct {
	Type CommandType
	Draw DrawArgs
	Rect IRect

	// strip draws depend on vertex adjacency and never absorb other draws.
	strip bool
}

// Vertex is a position already transformed to clip space.
type Vertex struct {
	X, Y float32
}

// TexVertex is a clip-space position with texture coordinates quantized to
// 16-bit normalized integers.
type TexVertex struct {
	X, Y float32
	U, V uint16
}

// Uniform is the per-draw uniform block.
type Uniform struct {
	Color Color
}

// Byte sizes of the GPU-facing layouts.
const (
	VertexStride    = 8
	TexVertexStride = 12
	UniformSize     = 16
)

// quantizeUV converts a [0, 1] texture coordinate to a normalized uint16,
// clamping values outside the range.
func quantizeUV(f float32) uint16 {
	v := f*65535 + 0.5
	if !(v > 0) { // also catches NaN
		return 0
	}
	if v >= 65535 {
		return 65535
	}
	return uint16(v)
}

// appendVertexBytes encodes vertices into buf, growing it if needed, and
// returns the encoded slice.
func appendVertexBytes(buf []byte, verts []Vertex) []byte {
	buf = buf[:0]
	for i := range verts {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(verts[i].X))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(verts[i].Y))
	}
	return buf
}

// appendTexVertexBytes encodes textured vertices into buf.
func appendTexVertexBytes(buf []byte, verts []TexVertex) []byte {
	buf = buf[:0]
	for i := range verts {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(verts[i].X))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(verts[i].Y))
		buf = binary.LittleEndian.AppendUint16(buf, verts[i].U)
		buf = binary.LittleEndian.AppendUint16(buf, verts[i].V)
	}
	return buf
}

// Bytes encodes the uniform block as four little-endian float32 values.
func (u Uniform) Bytes() [UniformSize]byte {
	var b [UniformSize]byte
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(u.Color.R))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(u.Color.G))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(u.Color.B))
	binary.LittleEndian.PutUint32(b[12:], math.Float32bits(u.Color.A))
	return b
}
