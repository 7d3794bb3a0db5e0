package gp

import "testing"

// nullBackend accepts every call and counts draws.
type nullBackend struct {
	next    uint32
	draws   int
	updates int
	failing error
}

func (b *nullBackend) id() uint32 { b.next++; return b.next }

func (b *nullBackend) CreatePipeline(*PipelineDesc) (Pipeline, error) {
	if b.failing != nil {
		return 0, b.failing
	}
	return Pipeline(b.id()), nil
}
func (b *nullBackend) DestroyPipeline(Pipeline) {}
func (b *nullBackend) CreateVertexBuffer(string, int) (Buffer, error) {
	if b.failing != nil {
		return 0, b.failing
	}
	return Buffer(b.id()), nil
}
func (b *nullBackend) DestroyBuffer(Buffer) {}
func (b *nullBackend) UpdateBuffer(Buffer, int, []byte) error {
	b.updates++
	return nil
}
func (b *nullBackend) ImageSize(img Image) (int, int, bool) {
	if !img.IsValid() {
		return 0, 0, false
	}
	return 64, 64, true
}
func (b *nullBackend) ApplyViewport(IRect)    {}
func (b *nullBackend) ApplyScissor(IRect)     {}
func (b *nullBackend) ApplyPipeline(Pipeline) {}
func (b *nullBackend) ApplyBindings(Bindings) {}
func (b *nullBackend) ApplyUniforms([]byte)   {}
func (b *nullBackend) Draw(int, int)          { b.draws++ }

func newTestContext(t *testing.T, opts ...Option) *Context {
	t.Helper()
	ctx, err := New(&nullBackend{}, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(ctx.Shutdown)
	return ctx
}
