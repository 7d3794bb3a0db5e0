package native

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/draw"

	"github.com/gogpu/gp"
)

type bufferEntry struct {
	raw  hal.Buffer
	size int
}

// CreateVertexBuffer allocates a vertex buffer of size bytes.
func (b *Backend) CreateVertexBuffer(label string, size int) (gp.Buffer, error) {
	if b.closed {
		return 0, ErrClosed
	}
	if size <= 0 {
		return 0, fmt.Errorf("native: invalid buffer size %d", size)
	}
	raw, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(size),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return 0, fmt.Errorf("native: create buffer %s: %w", label, err)
	}
	id := gp.Buffer(b.allocID())
	b.buffers[id] = &bufferEntry{raw: raw, size: size}
	return id, nil
}

// DestroyBuffer releases a vertex buffer.
func (b *Backend) DestroyBuffer(buf gp.Buffer) {
	entry, ok := b.buffers[buf]
	if !ok {
		return
	}
	if b.frame.vertexBuf == entry {
		b.frame.vertexBuf = nil
	}
	delete(b.frame.written, entry)
	b.device.DestroyBuffer(entry.raw)
	delete(b.buffers, buf)
}

// UpdateBuffer writes data into buf at offset. If draws already recorded in
// the open pass read an overlapping range, the pass is submitted first so
// they see the old contents.
func (b *Backend) UpdateBuffer(buf gp.Buffer, offset int, data []byte) error {
	if b.closed {
		return ErrClosed
	}
	entry, ok := b.buffers[buf]
	if !ok {
		return fmt.Errorf("%w: buffer %d", ErrUnknownHandle, buf)
	}
	if len(data) == 0 {
		return nil
	}
	if offset < 0 || offset+len(data) > entry.size {
		return fmt.Errorf("%w: [%d, %d) of %d bytes", ErrOutOfRange, offset, offset+len(data), entry.size)
	}

	r := span{start: offset, end: offset + len(data)}
	if b.frame.active && b.frame.overlaps(entry, r) {
		if err := b.splitPass(); err != nil {
			return err
		}
	}
	if err := b.queue.WriteBuffer(entry.raw, uint64(offset), data); err != nil {
		return fmt.Errorf("native: write buffer: %w", err)
	}
	if b.frame.active {
		b.frame.markWritten(entry, r)
	}
	return nil
}

type imageEntry struct {
	tex   hal.Texture
	view  hal.TextureView
	group hal.BindGroup
	// width and height are the size of the source image. The texture may be
	// smaller when the image was scaled down.
	width  int
	height int
}

func (e *imageEntry) destroy(device hal.Device) {
	if e.group != nil {
		device.DestroyBindGroup(e.group)
	}
	if e.view != nil {
		device.DestroyTextureView(e.view)
	}
	if e.tex != nil {
		device.DestroyTexture(e.tex)
	}
}

// CreateImage uploads img as an RGBA8 texture. Pixels are stored
// non-premultiplied. Images larger than the maximum image size are scaled
// down, keeping the aspect ratio. ImageSize still reports the source size,
// so texel rectangles keep addressing the source pixels.
func (b *Backend) CreateImage(img image.Image) (gp.Image, error) {
	if b.closed {
		return gp.InvalidImage, ErrClosed
	}
	if img == nil || img.Bounds().Empty() {
		return gp.InvalidImage, ErrInvalidImage
	}
	pix := toNRGBA(img, b.maxImageSize)
	w, h := pix.Bounds().Dx(), pix.Bounds().Dy()

	entry, err := b.createTexture(w, h)
	if err != nil {
		return gp.InvalidImage, err
	}
	entry.width, entry.height = img.Bounds().Dx(), img.Bounds().Dy()
	err = b.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: entry.tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		pix.Pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(pix.Stride), RowsPerImage: uint32(h)},
		&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	)
	if err != nil {
		entry.destroy(b.device)
		return gp.InvalidImage, fmt.Errorf("native: upload image: %w", err)
	}

	id := gp.Image(b.allocID())
	b.images[id] = entry
	gp.Logger().Debug("native: image created", "image", uint32(id),
		"width", entry.width, "height", entry.height, "texture_width", w, "texture_height", h)
	return id, nil
}

func (b *Backend) createTexture(w, h int) (*imageEntry, error) {
	entry := &imageEntry{}
	var err error
	entry.tex, err = b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "gp_image",
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create texture: %w", err)
	}
	entry.view, err = b.device.CreateTextureView(entry.tex, &hal.TextureViewDescriptor{
		Label:         "gp_image_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		entry.destroy(b.device)
		return nil, fmt.Errorf("native: create texture view: %w", err)
	}
	entry.group, err = b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "gp_image_group",
		Layout: b.textureLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: entry.view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: b.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		entry.destroy(b.device)
		return nil, fmt.Errorf("native: create image bind group: %w", err)
	}
	return entry, nil
}

// DestroyImage releases an image created by CreateImage. Work that may
// reference the image is submitted and waited for first.
func (b *Backend) DestroyImage(img gp.Image) {
	entry, ok := b.images[img]
	if !ok {
		return
	}
	if b.frame.image == entry {
		b.frame.image = nil
	}
	switch {
	case b.frame.active:
		if err := b.splitPass(); err != nil {
			gp.Logger().Warn("native: split pass failed", "err", err)
		}
	case len(b.frame.pending) > 0:
		if err := b.waitIdle(); err != nil {
			gp.Logger().Warn("native: wait idle failed", "err", err)
		}
	}
	entry.destroy(b.device)
	delete(b.images, img)
}

// ImageSize returns the pixel size of the image img was created from.
func (b *Backend) ImageSize(img gp.Image) (w, h int, ok bool) {
	entry, ok := b.images[img]
	if !ok {
		return 0, 0, false
	}
	return entry.width, entry.height, true
}

// toNRGBA converts img to tightly packed non-premultiplied RGBA, scaling it
// down when either side exceeds maxSize.
func toNRGBA(img image.Image, maxSize int) *image.NRGBA {
	src := img.Bounds()
	w, h := fitSize(src.Dx(), src.Dy(), maxSize)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == src.Dx() && h == src.Dy() {
		if n, ok := img.(*image.NRGBA); ok && n.Stride == 4*w && n.Rect.Min == (image.Point{}) {
			return n
		}
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
		return dst
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// fitSize scales w x h down to fit within maxSize on both sides. A
// non-positive maxSize means no limit.
func fitSize(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		nh := h * maxSize / w
		return maxSize, max(nh, 1)
	}
	nw := w * maxSize / h
	return max(nw, 1), maxSize
}
