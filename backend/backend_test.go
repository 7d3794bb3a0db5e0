package backend_test

import (
	"errors"
	"testing"

	"github.com/gogpu/gp"
	"github.com/gogpu/gp/backend"
	"github.com/gogpu/gp/recording"
)

func TestRegistryRecordingAutoRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.Recording) {
		t.Fatal("recording backend should be auto-registered")
	}

	b, err := backend.Get(backend.Recording)
	if err != nil {
		t.Fatalf("Get(recording) error = %v", err)
	}
	if _, ok := b.(*recording.Recorder); !ok {
		t.Errorf("Get(recording) returned %T, want *recording.Recorder", b)
	}
}

func TestRegistryGetUnregistered(t *testing.T) {
	b, err := backend.Get("nonexistent")
	if b != nil {
		t.Error("Get(nonexistent) should return nil")
	}
	if !errors.Is(err, backend.ErrBackendNotAvailable) {
		t.Errorf("Get(nonexistent) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestRegistryGetFactoryError(t *testing.T) {
	injected := errors.New("no adapter")
	backend.Register("failing", func() (gp.Backend, error) { return nil, injected })
	t.Cleanup(func() { backend.Unregister("failing") })

	if _, err := backend.Get("failing"); !errors.Is(err, injected) {
		t.Errorf("Get(failing) error = %v, want wrapping the factory error", err)
	}
}

func TestRegistryAvailable(t *testing.T) {
	backend.Register("zzz-test", func() (gp.Backend, error) { return recording.NewRecorder(), nil })
	t.Cleanup(func() { backend.Unregister("zzz-test") })

	available := backend.Available()
	found := false
	for i, name := range available {
		if name == "zzz-test" {
			found = true
		}
		if i > 0 && available[i-1] > name {
			t.Errorf("Available() not sorted: %v", available)
		}
	}
	if !found {
		t.Errorf("Available() = %v, want it to include zzz-test", available)
	}
}

func TestRegistryDefault(t *testing.T) {
	b, err := backend.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if b == nil {
		t.Fatal("Default() returned nil")
	}
	// The native backend is not linked into this test binary.
	if _, ok := b.(*recording.Recorder); !ok {
		t.Errorf("Default() returned %T, want *recording.Recorder", b)
	}
}

func TestRegistryDefaultSkipsFailingPriority(t *testing.T) {
	backend.Register(backend.Native, func() (gp.Backend, error) {
		return nil, errors.New("no GPU")
	})
	t.Cleanup(func() { backend.Unregister(backend.Native) })

	b, err := backend.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if _, ok := b.(*recording.Recorder); !ok {
		t.Errorf("Default() returned %T, want fallback to the recorder", b)
	}
}

func TestRegistryDefaultNone(t *testing.T) {
	backend.Unregister(backend.Recording)
	t.Cleanup(func() {
		backend.Register(backend.Recording, func() (gp.Backend, error) { return recording.NewRecorder(), nil })
	})

	if _, err := backend.Default(); !errors.Is(err, backend.ErrBackendNotAvailable) {
		t.Errorf("Default() error = %v, want ErrBackendNotAvailable", err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustDefault() did not panic with no backends")
		}
	}()
	backend.MustDefault()
}

func TestRegistryMustDefault(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("MustDefault() panicked: %v", r)
		}
	}()
	if b := backend.MustDefault(); b == nil {
		t.Error("MustDefault() returned nil")
	}
}

func TestRegistryUnregister(t *testing.T) {
	backend.Register("test-backend", func() (gp.Backend, error) { return recording.NewRecorder(), nil })

	if !backend.IsRegistered("test-backend") {
		t.Error("test-backend should be registered")
	}

	backend.Unregister("test-backend")

	if backend.IsRegistered("test-backend") {
		t.Error("test-backend should be unregistered")
	}
}

func TestRegistryRegisterNilPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Register(nil) did not panic")
		}
	}()
	backend.Register("nil", nil)
}

func TestDefaultBackendDrivesContext(t *testing.T) {
	b := backend.MustDefault()
	ctx, err := gp.New(b)
	if err != nil {
		t.Fatalf("gp.New() error = %v", err)
	}
	defer ctx.Shutdown()

	ctx.Begin(10, 10)
	ctx.DrawFilledRect(0, 0, 5, 5)
	ctx.Flush()
	ctx.End()

	if rec, ok := b.(*recording.Recorder); ok && len(rec.Draws()) != 1 {
		t.Errorf("%d draws, want 1", len(rec.Draws()))
	}
}
