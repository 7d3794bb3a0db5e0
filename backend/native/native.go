package native

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // registers the Vulkan HAL backend

	"github.com/gogpu/gp"
	"github.com/gogpu/gp/backend"
)

func init() {
	backend.Register(backend.Native, func() (gp.Backend, error) {
		return New()
	})
}

// Backend implements gp.Backend on a wgpu HAL device.
//
// Drawing happens between BeginPass and EndPass, which record into a command
// encoder and submit it to the queue. A Backend is not safe for concurrent
// use.
type Backend struct {
	device   hal.Device
	queue    hal.Queue
	instance hal.Instance
	// ownsDevice is set when New opened the device.
	ownsDevice bool
	closed     bool

	opts         options
	maxImageSize int

	solidShader    hal.ShaderModule
	texturedShader hal.ShaderModule
	uniformLayout  hal.BindGroupLayout
	textureLayout  hal.BindGroupLayout
	solidLayout    hal.PipelineLayout
	texturedLayout hal.PipelineLayout
	sampler        hal.Sampler

	uniformBuf   hal.Buffer
	uniformGroup hal.BindGroup

	pipelines map[gp.Pipeline]*pipelineEntry
	buffers   map[gp.Buffer]*bufferEntry
	images    map[gp.Image]*imageEntry
	nextID    uint32

	frame frame
}

// New opens the first available Vulkan adapter, preferring discrete and
// integrated GPUs, and creates a backend on it.
func New(opts ...Option) (*Backend, error) {
	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", ErrNoGPU)
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("native: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoGPU
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	limits := gputypes.DefaultLimits()
	openDev, err := selected.Adapter.Open(gputypes.Features(0), limits)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("native: open device: %w", err)
	}

	b, err := newBackend(openDev.Device, openDev.Queue, int(limits.MaxTextureDimension2D), opts)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	b.instance = instance
	b.ownsDevice = true
	gp.Logger().Info("native: backend initialized", "adapter", selected.Info.Name)
	return b, nil
}

// NewWithDevice creates a backend on an existing device and queue. The
// caller keeps ownership of both.
func NewWithDevice(device hal.Device, queue hal.Queue, opts ...Option) (*Backend, error) {
	return newBackend(device, queue, int(gputypes.DefaultLimits().MaxTextureDimension2D), opts)
}

// NewFromProvider creates a backend sharing the device of a host
// application. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue. When no color format
// option is given, the provider's surface format is used.
func NewFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Backend, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if provider == nil {
		return nil, ErrNilDevice
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	all := append([]Option{WithColorFormat(provider.SurfaceFormat())}, opts...)
	return NewWithDevice(device, queue, all...)
}

func newBackend(device hal.Device, queue hal.Queue, deviceMaxImage int, opts []Option) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	b := &Backend{
		device:       device,
		queue:        queue,
		opts:         o,
		maxImageSize: deviceMaxImage,
		pipelines:    make(map[gp.Pipeline]*pipelineEntry),
		buffers:      make(map[gp.Buffer]*bufferEntry),
		images:       make(map[gp.Image]*imageEntry),
	}
	if o.maxImageSize > 0 && (b.maxImageSize <= 0 || o.maxImageSize < b.maxImageSize) {
		b.maxImageSize = o.maxImageSize
	}
	if err := b.createSharedResources(); err != nil {
		b.destroySharedResources()
		return nil, err
	}
	gp.Logger().Debug("native: backend created",
		"color_format", uint32(o.colorFormat),
		"max_image_size", b.maxImageSize,
		"max_uniforms", o.maxUniforms)
	return b, nil
}

// Device returns the HAL device the backend draws with.
func (b *Backend) Device() hal.Device { return b.device }

// Queue returns the HAL queue the backend submits to.
func (b *Backend) Queue() hal.Queue { return b.queue }

// ColorFormat returns the render target format pipelines are built for.
func (b *Backend) ColorFormat() gputypes.TextureFormat { return b.opts.colorFormat }

// Close waits for the GPU, then releases every resource created by the
// backend. A device opened by New is destroyed as well. An open pass is
// discarded.
func (b *Backend) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.discardPass()
	if err := b.waitIdle(); err != nil {
		gp.Logger().Warn("native: wait idle failed", "err", err)
	}
	for id, img := range b.images {
		img.destroy(b.device)
		delete(b.images, id)
	}
	for id, p := range b.pipelines {
		b.device.DestroyRenderPipeline(p.raw)
		delete(b.pipelines, id)
	}
	for id, buf := range b.buffers {
		b.device.DestroyBuffer(buf.raw)
		delete(b.buffers, id)
	}
	b.destroySharedResources()
	if b.ownsDevice {
		b.device.Destroy()
		if b.instance != nil {
			b.instance.Destroy()
			b.instance = nil
		}
	}
	gp.Logger().Debug("native: backend closed")
}

func (b *Backend) allocID() uint32 {
	b.nextID++
	return b.nextID
}

// createSharedResources builds the shaders, layouts, sampler and uniform
// buffer every pipeline uses.
func (b *Backend) createSharedResources() error {
	var err error
	if b.solidShader, err = createShaderModule(b.device, "solid", solidShaderSource); err != nil {
		return err
	}
	if b.texturedShader, err = createShaderModule(b.device, "textured", texturedShaderSource); err != nil {
		return err
	}

	b.uniformLayout, err = b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "gp_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{
					Type:             gputypes.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   gp.UniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("native: create uniform layout: %w", err)
	}

	b.textureLayout, err = b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "gp_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("native: create texture layout: %w", err)
	}

	b.solidLayout, err = b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "gp_solid_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("native: create solid pipeline layout: %w", err)
	}
	b.texturedLayout, err = b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "gp_textured_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.uniformLayout, b.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("native: create textured pipeline layout: %w", err)
	}

	b.sampler, err = b.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "gp_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    b.opts.filter,
		MinFilter:    b.opts.filter,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
		Anisotropy:   1,
	})
	if err != nil {
		return fmt.Errorf("native: create sampler: %w", err)
	}

	uniformBytes := uint64(b.opts.maxUniforms) * uniformSlotSize
	b.uniformBuf, err = b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "gp_uniforms",
		Size:  uniformBytes,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("native: create uniform buffer: %w", err)
	}
	b.uniformGroup, err = b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "gp_uniform_group",
		Layout: b.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: b.uniformBuf.NativeHandle(), Offset: 0, Size: gp.UniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("native: create uniform bind group: %w", err)
	}
	b.frame.uniforms = make([]byte, 0, uniformSlotSize*64)
	return nil
}

// destroySharedResources releases what createSharedResources built, in
// reverse order. Safe on partially created state.
func (b *Backend) destroySharedResources() {
	if b.uniformGroup != nil {
		b.device.DestroyBindGroup(b.uniformGroup)
		b.uniformGroup = nil
	}
	if b.uniformBuf != nil {
		b.device.DestroyBuffer(b.uniformBuf)
		b.uniformBuf = nil
	}
	if b.sampler != nil {
		b.device.DestroySampler(b.sampler)
		b.sampler = nil
	}
	if b.texturedLayout != nil {
		b.device.DestroyPipelineLayout(b.texturedLayout)
		b.texturedLayout = nil
	}
	if b.solidLayout != nil {
		b.device.DestroyPipelineLayout(b.solidLayout)
		b.solidLayout = nil
	}
	if b.textureLayout != nil {
		b.device.DestroyBindGroupLayout(b.textureLayout)
		b.textureLayout = nil
	}
	if b.uniformLayout != nil {
		b.device.DestroyBindGroupLayout(b.uniformLayout)
		b.uniformLayout = nil
	}
	if b.texturedShader != nil {
		b.device.DestroyShaderModule(b.texturedShader)
		b.texturedShader = nil
	}
	if b.solidShader != nil {
		b.device.DestroyShaderModule(b.solidShader)
		b.solidShader = nil
	}
}

var _ gp.Backend = (*Backend)(nil)
