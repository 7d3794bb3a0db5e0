package native

import "github.com/gogpu/gputypes"

// Defaults for backend options.
const (
	// DefaultColorFormat is the render target format pipelines are built for.
	DefaultColorFormat = gputypes.TextureFormatBGRA8Unorm

	// DefaultMaxUniforms is the number of uniform slots per submission.
	DefaultMaxUniforms = 16384

	// uniformSlotSize is the dynamic offset alignment for uniform slots.
	uniformSlotSize = 256
)

// Option configures a Backend.
type Option func(*options)

type options struct {
	colorFormat  gputypes.TextureFormat
	filter       gputypes.FilterMode
	maxImageSize int
	maxUniforms  int
}

func defaultOptions() options {
	return options{
		colorFormat: DefaultColorFormat,
		filter:      gputypes.FilterModeLinear,
		maxUniforms: DefaultMaxUniforms,
	}
}

// WithColorFormat sets the format of the render targets passed to
// BeginPass. TextureFormatUndefined keeps the default.
func WithColorFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		if f != gputypes.TextureFormatUndefined {
			o.colorFormat = f
		}
	}
}

// WithSampleFilter sets the filter used when sampling images.
func WithSampleFilter(f gputypes.FilterMode) Option {
	return func(o *options) {
		o.filter = f
	}
}

// WithMaxImageSize limits the size of uploaded images. Larger images are
// scaled down to fit. Zero uses the device limit.
func WithMaxImageSize(n int) Option {
	return func(o *options) {
		o.maxImageSize = n
	}
}

// WithMaxUniforms sets how many uniform blocks a single submission can hold.
// Running out splits the render pass.
func WithMaxUniforms(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxUniforms = n
		}
	}
}
