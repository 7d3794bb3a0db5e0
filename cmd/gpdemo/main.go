// Command gpdemo draws a few frames with the gp batching renderer and
// reports the backend calls each frame produced.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gp"
	"github.com/gogpu/gp/backend"
	"github.com/gogpu/gp/backend/native"
	"github.com/gogpu/gp/recording"
)

type config struct {
	backend       string
	width, height int
	frames        int
}

func main() {
	var cfg config
	flag.StringVar(&cfg.backend, "backend", backend.Recording, "backend name (recording or native)")
	flag.IntVar(&cfg.width, "width", 800, "frame width")
	flag.IntVar(&cfg.height, "height", 600, "frame height")
	flag.IntVar(&cfg.frames, "frames", 3, "number of frames")
	verbose := flag.Bool("v", false, "log renderer diagnostics")
	flag.Parse()

	if *verbose {
		gp.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config) error {
	b, err := backend.Get(cfg.backend)
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	if nb, ok := b.(*native.Backend); ok {
		defer nb.Close()
	}

	ctx, err := gp.New(b)
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}
	defer ctx.Shutdown()

	var frame func(int) error
	switch be := b.(type) {
	case *recording.Recorder:
		checker := be.AddImage(8, 8)
		frame = func(i int) error { return recordFrame(ctx, be, checker, i, cfg.width, cfg.height) }
	case *native.Backend:
		rt, err := newTarget(be, cfg.width, cfg.height)
		if err != nil {
			return fmt.Errorf("create target: %w", err)
		}
		defer rt.destroy(be.Device())
		checker, err := be.CreateImage(checkerboard(8))
		if err != nil {
			return fmt.Errorf("create image: %w", err)
		}
		defer be.DestroyImage(checker)
		frame = func(i int) error { return nativeFrame(ctx, be, rt.view, checker, i, cfg.width, cfg.height) }
	default:
		return fmt.Errorf("unsupported backend %T", b)
	}

	for i := 0; i < cfg.frames; i++ {
		if err := frame(i); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

func recordFrame(ctx *gp.Context, rec *recording.Recorder, checker gp.Image, i, w, h int) error {
	drawScene(ctx, checker, i, w, h)
	if err := ctx.Err(); err != nil {
		return err
	}
	calls := rec.Finish().Calls()
	counts := make(map[recording.CallType]int)
	for _, c := range calls {
		counts[c.Type()]++
	}
	fmt.Printf("frame %d: %d calls, %d draws, %d uploads, %d pipeline binds\n",
		i, len(calls), counts[recording.CallDraw], counts[recording.CallUpdateBuffer], counts[recording.CallApplyPipeline])
	return nil
}

func nativeFrame(ctx *gp.Context, be *native.Backend, target hal.TextureView, checker gp.Image, i, w, h int) error {
	if err := be.BeginPass(target, w, h, native.LoadActionClear, gp.RGB(0, 0, 0)); err != nil {
		return err
	}
	drawScene(ctx, checker, i, w, h)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := be.EndPass(); err != nil {
		return err
	}
	fmt.Printf("frame %d: submitted\n", i)
	return nil
}

func drawScene(ctx *gp.Context, checker gp.Image, i, w, h int) {
	fw, fh := float32(w), float32(h)
	t := float32(i) * 0.25

	ctx.Begin(w, h)
	defer ctx.End()

	ctx.SetColor(0.1, 0.1, 0.15, 1)
	ctx.Clear()

	// Background bars
	bars := make([]gp.Rect, 0, 16)
	for j := 0; j < 16; j++ {
		bars = append(bars, gp.Rect{X: float32(j) * fw / 16, Y: 0, W: fw/16 - 2, H: fh})
	}
	ctx.SetColor(0.2, 0.25, 0.35, 1)
	ctx.DrawFilledRects(bars)

	// Rotating square
	ctx.PushTransform()
	ctx.RotateAt(t, fw/2, fh/2)
	ctx.SetColor(1, 0.6, 0.1, 1)
	ctx.DrawFilledRect(fw/2-50, fh/2-50, 100, 100)
	ctx.PopTransform()

	// Translucent triangles
	ctx.SetBlendMode(gp.BlendBlend)
	ctx.SetColor(0.3, 0.8, 1, 0.5)
	ctx.DrawFilledTriangle(100, fh-100, 200, fh-250, 300, fh-100)
	ctx.DrawFilledTriangle(150, fh-100, 250, fh-250, 350, fh-100)
	ctx.ResetBlendMode()

	// Sine wave
	pts := make([]gp.Point, 0, 64)
	for j := 0; j < 64; j++ {
		x := float32(j) * fw / 63
		y := fh/4 + 40*float32(math.Sin(float64(j)/6+float64(t)))
		pts = append(pts, gp.Pt(x, y))
	}
	ctx.SetColor(1, 1, 1, 1)
	ctx.DrawLinesStrip(pts)

	// Clipped checkerboard tiles
	ctx.Scissor(w-260, h-260, 200, 200)
	ctx.DrawTexturedRect(checker, fw-300, fh-300, 128, 128)
	ctx.DrawTexturedRect(checker, fw-172, fh-172, 128, 128)
	ctx.ResetScissor()

	ctx.Flush()
}

func checkerboard(n int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := color.NRGBA{R: 40, G: 40, B: 40, A: 255}
			if (x+y)%2 == 0 {
				c = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// target is an offscreen render target.
type target struct {
	tex  hal.Texture
	view hal.TextureView
}

func (t *target) destroy(device hal.Device) {
	device.DestroyTextureView(t.view)
	device.DestroyTexture(t.tex)
}

func newTarget(be *native.Backend, w, h int) (*target, error) {
	device := be.Device()
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "gpdemo_target",
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        be.ColorFormat(),
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, err
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: "gpdemo_target_view"})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, err
	}
	return &target{tex: tex, view: view}, nil
}
