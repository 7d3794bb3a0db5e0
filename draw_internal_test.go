package gp

import "testing"

func TestUniformDedup(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Begin(100, 100)
	defer ctx.End()

	ctx.SetColor(1, 0, 0, 1)
	ctx.DrawFilledRect(0, 0, 1, 1)
	ctx.DrawPoint(1, 1)
	ctx.DrawLine(0, 0, 1, 1)
	if got := ctx.uniforms.size(); got != 1 {
		t.Errorf("%d uniforms for one color, want 1", got)
	}

	ctx.SetColor(0, 1, 0, 1)
	ctx.DrawPoint(1, 1)
	ctx.SetColor(1, 0, 0, 1)
	ctx.DrawPoint(1, 1)
	// Only the immediately preceding uniform is compared.
	if got := ctx.uniforms.size(); got != 3 {
		t.Errorf("%d uniforms, want 3", got)
	}
}

func TestQueueDrawMergeRules(t *testing.T) {
	tests := []struct {
		name      string
		second    func(ctx *Context, pip Pipeline)
		wantCmds  int
		wantCount int
	}{
		{
			name:      "contiguous",
			second:    func(ctx *Context, pip Pipeline) { ctx.queueDraw(pip, InvalidImage, 6, 6, false) },
			wantCmds:  1,
			wantCount: 12,
		},
		{
			name:      "gap",
			second:    func(ctx *Context, pip Pipeline) { ctx.queueDraw(pip, InvalidImage, 10, 6, false) },
			wantCmds:  2,
			wantCount: 6,
		},
		{
			name:      "other pipeline",
			second:    func(ctx *Context, pip Pipeline) { ctx.queueDraw(pip+100, InvalidImage, 6, 6, false) },
			wantCmds:  2,
			wantCount: 6,
		},
		{
			name:      "other image",
			second:    func(ctx *Context, pip Pipeline) { ctx.queueDraw(pip, Image(5), 6, 6, false) },
			wantCmds:  2,
			wantCount: 6,
		},
		{
			name:      "strip",
			second:    func(ctx *Context, pip Pipeline) { ctx.queueDraw(pip, InvalidImage, 6, 6, true) },
			wantCmds:  2,
			wantCount: 6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t)
			ctx.Begin(10, 10)
			defer ctx.End()

			pip := ctx.pipelines[pipelineKey{primitive: PrimitiveTriangles, blend: BlendBlend}]
			ctx.queueDraw(pip, InvalidImage, 0, 6, false)
			tt.second(ctx, pip)

			if got := ctx.commands.size(); got != tt.wantCmds {
				t.Fatalf("%d commands, want %d", got, tt.wantCmds)
			}
			if got := ctx.commands.buf[0].Draw.NumVertices; got != tt.wantCount {
				t.Errorf("first command has %d vertices, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestReplaySkipsEmptyDraws(t *testing.T) {
	ctx := newTestContext(t)
	nb := ctx.backend.(*nullBackend)

	draws := ctx.replay([]Command{
		{Type: CmdDraw, Draw: DrawArgs{Pipeline: 1, NumVertices: 0}},
		{Type: CmdDraw, Draw: DrawArgs{Pipeline: 1, NumVertices: 3}},
	})
	if draws != 1 || nb.draws != 1 {
		t.Errorf("replay issued %d draws (backend saw %d), want 1", draws, nb.draws)
	}
}

func TestBuiltinPipelinesCreated(t *testing.T) {
	ctx := newTestContext(t)
	for _, key := range builtinPipelines {
		if p, ok := ctx.pipelines[key]; !ok || !p.IsValid() {
			t.Errorf("pipeline %s missing", pipelineLabel(key))
		}
	}
}

func TestNewReleasesOnFailure(t *testing.T) {
	nb := &nullBackend{failing: ErrBackendFailure}
	if _, err := New(nb); err == nil {
		t.Fatal("New() succeeded with a failing backend")
	}
}

func TestTexturedRectsReuseScratch(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Begin(100, 100)
	defer ctx.End()

	img := Image(1)
	rects := []Rect{{X: 0, Y: 0, W: 4, H: 4}, {X: 4, Y: 0, W: 4, H: 4}}
	src := []TexturedRect{
		{Dst: rects[0], Src: Rect{X: 0, Y: 0, W: 32, H: 32}},
		{Dst: rects[1], Src: Rect{X: 32, Y: 0, W: 32, H: 32}},
	}
	tests := []struct {
		name string
		draw func()
	}{
		{"DrawTexturedRects", func() { ctx.DrawTexturedRects(img, rects) }},
		{"DrawTexturedRectsSrc", func() { ctx.DrawTexturedRectsSrc(img, src) }},
		{"DrawTexturedRectsSrc invalid image", func() { ctx.DrawTexturedRectsSrc(InvalidImage, src) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.draw()
			if allocs := testing.AllocsPerRun(20, tt.draw); allocs != 0 {
				t.Errorf("%v allocations per call, want 0", allocs)
			}
		})
	}
	if ctx.ErrorCode() != ErrorCodeNone {
		t.Errorf("ErrorCode() = %v, want None", ctx.ErrorCode())
	}
}
