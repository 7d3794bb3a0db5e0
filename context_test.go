package gp_test

import (
	"errors"
	"testing"

	"github.com/gogpu/gp"
	"github.com/gogpu/gp/recording"
)

// newContext creates a Context over a fresh Recorder with the setup calls
// already cleared from the log.
func newContext(t *testing.T, opts ...gp.Option) (*gp.Context, *recording.Recorder) {
	t.Helper()
	rec := recording.NewRecorder()
	ctx, err := gp.New(rec, opts...)
	if err != nil {
		t.Fatalf("gp.New() error = %v", err)
	}
	t.Cleanup(ctx.Shutdown)
	rec.Reset()
	return ctx, rec
}

func TestNewNilBackend(t *testing.T) {
	ctx, err := gp.New(nil)
	if ctx != nil {
		t.Error("gp.New(nil) returned a context")
	}
	if !errors.Is(err, gp.ErrInvalidBackend) {
		t.Errorf("gp.New(nil) error = %v, want ErrInvalidBackend", err)
	}
}

func TestNewCreatesResources(t *testing.T) {
	rec := recording.NewRecorder()
	ctx, err := gp.New(rec, gp.WithMaxVertices(100))
	if err != nil {
		t.Fatalf("gp.New() error = %v", err)
	}
	defer ctx.Shutdown()

	if !ctx.IsValid() {
		t.Error("IsValid() = false after New")
	}
	if ctx.Backend() != rec {
		t.Error("Backend() does not return the recorder")
	}

	bufs := rec.CallsOf(recording.CallCreateVertexBuffer)
	if len(bufs) != 2 {
		t.Fatalf("created %d vertex buffers, want 2", len(bufs))
	}
	if got := bufs[0].(recording.CreateVertexBufferCall).Size; got != 100*gp.VertexStride {
		t.Errorf("vertex buffer size = %d, want %d", got, 100*gp.VertexStride)
	}
	if got := bufs[1].(recording.CreateVertexBufferCall).Size; got != 100*gp.TexVertexStride {
		t.Errorf("textured vertex buffer size = %d, want %d", got, 100*gp.TexVertexStride)
	}

	pips := rec.CallsOf(recording.CallCreatePipeline)
	if len(pips) != 6 {
		t.Fatalf("created %d pipelines, want 6", len(pips))
	}
	textured := 0
	for _, c := range pips {
		desc := c.(recording.CreatePipelineCall).Desc
		if desc.Blend != gp.BlendBlend {
			t.Errorf("pipeline %s has blend %v, want Blend", desc.Label, desc.Blend)
		}
		if desc.Textured {
			textured++
		}
	}
	if textured != 1 {
		t.Errorf("%d textured pipelines, want 1", textured)
	}
}

func TestNewBackendFailure(t *testing.T) {
	injected := errors.New("device lost")
	tests := []struct {
		name         string
		setup        func(r *recording.Recorder)
		wantDestroys int
	}{
		{"buffer", func(r *recording.Recorder) { r.FailCreateBuffer = injected }, 0},
		{"pipeline", func(r *recording.Recorder) { r.FailCreatePipeline = injected }, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recording.NewRecorder()
			tt.setup(rec)

			ctx, err := gp.New(rec)
			if ctx != nil {
				t.Error("gp.New() returned a context on failure")
			}
			if !errors.Is(err, gp.ErrInvalidBackend) {
				t.Errorf("error = %v, want ErrInvalidBackend", err)
			}
			if !errors.Is(err, injected) {
				t.Errorf("error = %v, want wrapping the backend error", err)
			}
			if got := len(rec.CallsOf(recording.CallDestroyBuffer)); got != tt.wantDestroys {
				t.Errorf("destroyed %d buffers, want %d", got, tt.wantDestroys)
			}
		})
	}
}

func TestShutdown(t *testing.T) {
	rec := recording.NewRecorder()
	ctx, err := gp.New(rec)
	if err != nil {
		t.Fatalf("gp.New() error = %v", err)
	}
	rec.Reset()

	ctx.Shutdown()
	if ctx.IsValid() {
		t.Error("IsValid() = true after Shutdown")
	}
	if got := len(rec.CallsOf(recording.CallDestroyPipeline)); got != 6 {
		t.Errorf("destroyed %d pipelines, want 6", got)
	}
	if got := len(rec.CallsOf(recording.CallDestroyBuffer)); got != 2 {
		t.Errorf("destroyed %d buffers, want 2", got)
	}

	rec.Reset()
	ctx.Shutdown()
	ctx.Begin(10, 10)
	ctx.DrawFilledRect(0, 0, 1, 1)
	ctx.Flush()
	if n := len(rec.Calls()); n != 0 {
		t.Errorf("%d backend calls after Shutdown, want 0", n)
	}
}

func TestShutdownDestroysLazyPipelines(t *testing.T) {
	rec := recording.NewRecorder()
	ctx, err := gp.New(rec)
	if err != nil {
		t.Fatalf("gp.New() error = %v", err)
	}
	ctx.Begin(10, 10)
	ctx.SetBlendMode(gp.BlendAdd)
	ctx.DrawFilledRect(0, 0, 1, 1)
	ctx.End()
	rec.Reset()

	ctx.Shutdown()
	if got := len(rec.CallsOf(recording.CallDestroyPipeline)); got != 7 {
		t.Errorf("destroyed %d pipelines, want 7", got)
	}
}

func TestCallsOutsidePassAreIgnored(t *testing.T) {
	ctx, rec := newContext(t)

	ctx.SetColor(1, 0, 0, 1)
	ctx.Translate(5, 5)
	ctx.PushTransform()
	ctx.Viewport(0, 0, 5, 5)
	ctx.DrawFilledRect(0, 0, 1, 1)
	ctx.DrawTexturedRect(gp.InvalidImage, 0, 0, 1, 1)
	ctx.Clear()
	ctx.Flush()

	if n := len(rec.Calls()); n != 0 {
		t.Errorf("%d backend calls outside a pass, want 0", n)
	}
	if ctx.ErrorCode() != gp.ErrorCodeNone {
		t.Errorf("ErrorCode() = %v, want None", ctx.ErrorCode())
	}
}
