package gp_test

import (
	"math"
	"testing"

	"github.com/gogpu/gp"
)

// pointAfter draws a point at (x, y) after setup and returns its clip-space
// position.
func pointAfter(t *testing.T, w, h int, x, y float32, setup func(ctx *gp.Context)) gp.Vertex {
	t.Helper()
	ctx, rec := newContext(t)
	ctx.Begin(w, h)
	setup(ctx)
	ctx.DrawPoint(x, y)
	ctx.Flush()
	ctx.End()
	verts := uploadedVertices(t, rec)
	if len(verts) != 1 {
		t.Fatalf("%d vertices, want 1", len(verts))
	}
	return verts[0]
}

func TestTransformComposition(t *testing.T) {
	twice := pointAfter(t, 100, 100, 0, 0, func(ctx *gp.Context) {
		ctx.Translate(10, 20)
		ctx.Translate(5, 5)
	})
	once := pointAfter(t, 100, 100, 0, 0, func(ctx *gp.Context) {
		ctx.Translate(15, 25)
	})
	if !near(twice.X, once.X) || !near(twice.Y, once.Y) {
		t.Errorf("composed %+v != single %+v", twice, once)
	}
}

func TestTransformPlacement(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float32
		setup func(ctx *gp.Context)
		want  gp.Vertex
	}{
		{
			name:  "identity",
			x:     50,
			y:     50,
			setup: func(ctx *gp.Context) {},
			want:  gp.Vertex{X: 0, Y: 0},
		},
		{
			// +x rotates onto +y, which is down on screen.
			name:  "rotate quarter turn",
			x:     10,
			y:     0,
			setup: func(ctx *gp.Context) { ctx.Rotate(math.Pi / 2) },
			want:  gp.Vertex{X: -1, Y: 0.8},
		},
		{
			name:  "rotate at center",
			x:     0,
			y:     0,
			setup: func(ctx *gp.Context) { ctx.RotateAt(math.Pi, 50, 50) },
			want:  gp.Vertex{X: 1, Y: -1},
		},
		{
			name:  "scale",
			x:     25,
			y:     25,
			setup: func(ctx *gp.Context) { ctx.Scale(2, 2) },
			want:  gp.Vertex{X: 0, Y: 0},
		},
		{
			name:  "scale at center",
			x:     25,
			y:     25,
			setup: func(ctx *gp.Context) { ctx.ScaleAt(2, 2, 50, 50) },
			want:  gp.Vertex{X: -1, Y: 1},
		},
		{
			name: "translate then scale",
			x:    10,
			y:    10,
			setup: func(ctx *gp.Context) {
				ctx.Translate(50, 50)
				ctx.Scale(0.5, 0.5)
			},
			want: gp.Vertex{X: 0.1, Y: -0.1},
		},
		{
			name:  "custom projection",
			x:     0.5,
			y:     0.5,
			setup: func(ctx *gp.Context) { ctx.Project(-1, 1, 1, -1) },
			want:  gp.Vertex{X: 0.5, Y: 0.5},
		},
		{
			name: "reset projection",
			x:    0,
			y:    0,
			setup: func(ctx *gp.Context) {
				ctx.Project(-1, 1, 1, -1)
				ctx.ResetProject()
			},
			want: gp.Vertex{X: -1, Y: 1},
		},
		{
			name: "projection keeps transform",
			x:    0,
			y:    0,
			setup: func(ctx *gp.Context) {
				ctx.Translate(0.5, 0)
				ctx.Project(-1, 1, 1, -1)
			},
			want: gp.Vertex{X: 0.5, Y: 0},
		},
		{
			name: "set transform",
			x:    1,
			y:    1,
			setup: func(ctx *gp.Context) {
				ctx.SetTransform(gp.Translate(49, 49))
			},
			want: gp.Vertex{X: 0, Y: 0},
		},
		{
			name: "reset transform",
			x:    50,
			y:    50,
			setup: func(ctx *gp.Context) {
				ctx.Translate(10, 10)
				ctx.ResetTransform()
			},
			want: gp.Vertex{X: 0, Y: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pointAfter(t, 100, 100, tt.x, tt.y, tt.setup)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("vertex = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSetTransformForcesAffine(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.Begin(10, 10)
	defer ctx.End()

	ctx.SetTransform(gp.Mat3{{1, 0, 2}, {0, 1, 3}, {4, 5, 6}})
	if got := ctx.Transform()[2]; got != [3]float32{0, 0, 1} {
		t.Errorf("bottom row = %v, want {0, 0, 1}", got)
	}
}

func TestTransformStackBalance(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.Begin(100, 100)
	defer ctx.End()

	ctx.Translate(3, 4)
	ctx.Rotate(0.3)
	before := ctx.Transform()
	beforeMVP := ctx.State().MVP

	const depth = 10
	for i := 0; i < depth; i++ {
		ctx.PushTransform()
		ctx.Translate(float32(i), 1)
		ctx.Rotate(0.1)
		ctx.Scale(1.5, 0.5)
	}
	for i := 0; i < depth; i++ {
		ctx.PopTransform()
	}

	if got := ctx.Transform(); got != before {
		t.Errorf("transform after balanced push/pop = %v, want %v", got, before)
	}
	if got := ctx.State().MVP; got != beforeMVP {
		t.Errorf("MVP after balanced push/pop = %v, want %v", got, beforeMVP)
	}
	if ctx.ErrorCode() != gp.ErrorCodeNone {
		t.Errorf("ErrorCode() = %v", ctx.ErrorCode())
	}
}

func TestTransformStackOverflow(t *testing.T) {
	ctx, rec := newContext(t)
	ctx.Begin(100, 100)

	for i := 0; i < gp.MaxTransformStackDepth; i++ {
		ctx.PushTransform()
	}
	if ctx.ErrorCode() != gp.ErrorCodeNone {
		t.Fatalf("ErrorCode() = %v before overflow", ctx.ErrorCode())
	}
	ctx.PushTransform()
	if ctx.ErrorCode() != gp.ErrorCodeTransformStackOverflow {
		t.Errorf("ErrorCode() = %v, want TransformStackOverflow", ctx.ErrorCode())
	}

	// Drawing continues without panicking but the pass is not submitted.
	ctx.DrawFilledRect(0, 0, 10, 10)
	ctx.Flush()
	for i := 0; i < gp.MaxTransformStackDepth; i++ {
		ctx.PopTransform()
	}
	ctx.End()

	if n := len(rec.Draws()); n != 0 {
		t.Errorf("%d draws after overflow, want 0", n)
	}
}

func TestTransformStackUnderflow(t *testing.T) {
	ctx, _ := newContext(t)
	ctx.Begin(100, 100)
	defer ctx.End()

	ctx.Translate(5, 5)
	before := ctx.Transform()
	ctx.PopTransform()
	if ctx.ErrorCode() != gp.ErrorCodeTransformStackUnderflow {
		t.Errorf("ErrorCode() = %v, want TransformStackUnderflow", ctx.ErrorCode())
	}
	if ctx.Transform() != before {
		t.Error("failed PopTransform changed the transform")
	}
}
