package pagination

const (
	defaultSize    = 20
	defaultMaxSize = 100
)

// Options configures normalization behavior.
type Options struct {
	MaxSize int
}

type Option func(*Options)

// WithMaxSize caps the page size applied by Normalize.
func WithMaxSize(maxSize int) Option {
	return func(o *Options) {
		o.MaxSize = maxSize
	}
}

func defaultOptions() Options {
	return Options{MaxSize: defaultMaxSize}
}
