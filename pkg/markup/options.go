package markup

// Option configures compilation.
type Option func(*options)

type options struct {
	canvasWidth int
	maxDepth    int
}

func defaultOptions() *options {
	return &options{
		canvasWidth: DefaultCanvasWidth,
		maxDepth:    64,
	}
}

// WithCanvasWidth sets the reference canvas, in pixels, used for percentage
// image widths and the body width. Non-positive values are ignored.
func WithCanvasWidth(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.canvasWidth = px
		}
	}
}

// WithMaxDepth limits how deep the block tree may nest.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}
