// Package native implements gp.Backend on a gogpu/wgpu HAL device.
//
// The backend owns two pipeline families compiled from embedded WGSL
// shaders: a solid pipeline that outputs the uniform color and a textured
// pipeline that multiplies the sampled texel by it. Both are built for every
// primitive type and blend mode gp asks for.
//
// # Devices
//
// New opens a Vulkan adapter and owns the device. NewWithDevice and
// NewFromProvider draw on a device owned by the host application:
//
//	b, err := native.NewFromProvider(app.DeviceProvider())
//	if err != nil {
//		return err
//	}
//	defer b.Close()
//
// # Frames
//
// gp.Context.Flush must be called between BeginPass and EndPass:
//
//	if err := b.BeginPass(view, w, h, native.LoadActionClear, gp.Black); err != nil {
//		return err
//	}
//	ctx.Begin(w, h)
//	ctx.DrawFilledRect(10, 10, 100, 100)
//	ctx.Flush()
//	ctx.End()
//	return b.EndPass()
//
// Uniforms are staged per submission in a dynamic-offset uniform buffer
// with 256-byte slots. When a flush overwrites vertex data that draws
// recorded earlier in the same pass still read, the pass is submitted and
// reopened with LoadActionLoad, so several flushes per pass are safe.
//
// # Images
//
// CreateImage accepts any image.Image. Pixels are converted to
// non-premultiplied RGBA with golang.org/x/image/draw and scaled down when
// they exceed the device texture limit or WithMaxImageSize.
package native
