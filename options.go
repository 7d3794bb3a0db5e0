package gp

// Default arena capacities used when an option is zero or negative.
const (
	DefaultMaxVertices = 65536
	DefaultMaxCommands = 16384
)

// Fixed stack depths.
const (
	// MaxStateStackDepth bounds nesting of Begin/End.
	MaxStateStackDepth = 64
	// MaxTransformStackDepth bounds nesting of PushTransform/PopTransform.
	MaxTransformStackDepth = 64
)

// Option configures a Context during creation.
//
// Example:
//
//	ctx, err := gp.New(b, gp.WithMaxVertices(1<<20), gp.WithMaxCommands(1<<14))
type Option func(*options)

// options holds optional configuration for Context creation.
type options struct {
	maxVertices int
	maxCommands int
	maxUniforms int
}

// Desc is the resolved configuration of a Context.
type Desc struct {
	MaxVertices int
	MaxCommands int
	MaxUniforms int
}

// defaultOptions returns the default context options. Zero means "use the
// default" and is resolved in resolve.
func defaultOptions() options {
	return options{}
}

// WithMaxVertices sets the capacity of both vertex arenas.
func WithMaxVertices(n int) Option {
	return func(o *options) {
		o.maxVertices = n
	}
}

// WithMaxCommands sets the capacity of the command arena.
func WithMaxCommands(n int) Option {
	return func(o *options) {
		o.maxCommands = n
	}
}

// WithMaxUniforms sets the capacity of the uniform arena. It defaults to the
// command capacity since every draw command references at most one uniform.
func WithMaxUniforms(n int) Option {
	return func(o *options) {
		o.maxUniforms = n
	}
}

// resolve fills in defaults for unset values.
func (o options) resolve() Desc {
	d := Desc{
		MaxVertices: o.maxVertices,
		MaxCommands: o.maxCommands,
		MaxUniforms: o.maxUniforms,
	}
	if d.MaxVertices <= 0 {
		d.MaxVertices = DefaultMaxVertices
	}
	if d.MaxCommands <= 0 {
		d.MaxCommands = DefaultMaxCommands
	}
	if d.MaxUniforms <= 0 {
		d.MaxUniforms = d.MaxCommands
	}
	return d
}
